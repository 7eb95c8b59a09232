// Package registry provides a generic, ordered registry and the fixed,
// ordered set of mirror modules tuna knows about.
package registry
