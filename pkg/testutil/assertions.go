package testutil

import (
	"strings"
	"testing"

	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/types"
)

// AssertFileContains checks that a file exists and contains substr
func AssertFileContains(t *testing.T, fsys types.FS, path, substr string) {
	t.Helper()

	data, err := filesystem.ReadOptional(fsys, path)
	if err != nil || data == nil {
		t.Errorf("Expected file %s to exist", path)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("File %s does not contain %q\nContent:\n%s", path, substr, data)
	}
}

// AssertFileNotContains checks that a file, if present, does not contain substr
func AssertFileNotContains(t *testing.T, fsys types.FS, path, substr string) {
	t.Helper()

	data, _ := filesystem.ReadOptional(fsys, path)
	if strings.Contains(string(data), substr) {
		t.Errorf("File %s unexpectedly contains %q\nContent:\n%s", path, substr, data)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if !filesystem.Exists(fsys, path) {
		t.Errorf("Expected file %s to exist", path)
	}
}

// AssertNoFile checks that a file does not exist
func AssertNoFile(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if filesystem.Exists(fsys, path) {
		t.Errorf("Expected file %s not to exist", path)
	}
}
