package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/tuna/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/tuna/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/tuna/internal/version.Date={{.Date}}
)

// String describes the build in one line
func String() string {
	return fmt.Sprintf("tuna %s (commit %s, built %s)", Version, Commit, Date)
}
