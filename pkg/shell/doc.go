// Package shell is tuna's boundary with the shell: it runs external
// package-manager commands and edits shell profile files so that environment
// variables reach future shell sessions.
package shell
