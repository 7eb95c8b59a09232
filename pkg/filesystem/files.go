package filesystem

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/types"
)

// BackupSuffix is appended to a config file's path to name its backup
const BackupSuffix = ".tuna.bak"

// Exists reports whether path exists. Any stat error counts as absent.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// ReadOptional returns the file content, or nil when the file does not exist
func ReadOptional(fsys types.FS, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return data, nil
}

// BackupPath returns where the backup of path is kept
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to its backup location. An existing backup is kept so the
// first original survives repeated rewrites. A missing source is not an error.
func Backup(fsys types.FS, path string) error {
	backup := BackupPath(path)
	if Exists(fsys, backup) {
		return nil
	}

	data, err := ReadOptional(fsys, path)
	if err != nil || data == nil {
		return err
	}

	if err := fsys.WriteFile(backup, data, fileMode(fsys, path)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to back up %s", path)
	}
	return nil
}

// Restore moves the backup of path back into place. It reports false when
// there is no backup to restore.
func Restore(fsys types.FS, path string) (bool, error) {
	backup := BackupPath(path)
	if !Exists(fsys, backup) {
		return false, nil
	}
	if err := fsys.Rename(backup, path); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to restore %s", path)
	}
	return true, nil
}

// ReplaceFile backs up path and writes data in its place, creating parent
// directories as needed and keeping the original file mode.
func ReplaceFile(fsys types.FS, path string, data []byte) error {
	if err := Backup(fsys, path); err != nil {
		return err
	}
	return WriteFile(fsys, path, data)
}

// WriteFile writes data to path without taking a backup
func WriteFile(fsys types.FS, path string, data []byte) error {
	mode := fileMode(fsys, path)
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory for %s", path)
	}
	if err := fsys.WriteFile(path, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

func fileMode(fsys types.FS, path string) fs.FileMode {
	if info, err := fsys.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
