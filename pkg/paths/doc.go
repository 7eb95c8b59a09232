// Package paths provides centralized path handling for tuna.
// It resolves the user's home, the XDG config and state directories,
// and the root under which system configuration files (/etc/...) live.
package paths
