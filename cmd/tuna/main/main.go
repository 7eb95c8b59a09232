package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tuna/cmd/tuna"
	"github.com/arthur-debert/tuna/pkg/style"
)

func main() {
	rootCmd := tuna.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Usage()
		os.Exit(1)
	}
}
