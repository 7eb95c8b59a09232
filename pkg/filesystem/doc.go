// Package filesystem provides filesystem implementations for tuna.
//
// This package contains implementations of the types.FS interface,
// the standard OS filesystem and an afero-backed one used by tests,
// plus the file helpers modules share: existence checks and the
// backup-then-replace write used for system config files.
package filesystem
