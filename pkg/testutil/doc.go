// Package testutil provides utilities for testing tuna components.
//
// Key components:
//   - Environment: in-memory host with a home, a system root, a fake runner
//     and a module context wired to scripted prompt input
//   - FakeRunner: scripted replacement for shell.Runner that records calls
//   - File assertions over the types.FS abstraction
//
// Usage guidelines:
//   - Module tests run against the in-memory filesystem, never the real host
//   - All test data is defined inline, not in external files
package testutil
