package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/tuna/cmd/tuna"
	"github.com/arthur-debert/tuna/internal/version"
)

func main() {
	rootCmd := tuna.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TUNA",
		Section: "1",
		Source:  "tuna " + version.Version,
		Manual:  "tuna manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
