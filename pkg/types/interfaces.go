package types

import (
	"io/fs"
)

// FS is the filesystem surface modules use to inspect and edit config files.
// Production code uses the OS implementation; tests use an in-memory one.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
