// Package types defines the small set of shared types used throughout tuna:
// the filesystem abstraction modules read and rewrite config files through,
// and the scope a run applies to.
package types
