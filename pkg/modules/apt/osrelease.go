package apt

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/types"
)

// OSRelease is the os-release file identifying the distribution
const OSRelease = "/etc/os-release"

// readOSRelease parses KEY=value lines, unquoting values. A missing file
// yields an empty map.
func readOSRelease(fsys types.FS, path string) map[string]string {
	fields := make(map[string]string)
	data, err := filesystem.ReadOptional(fsys, path)
	if err != nil || data == nil {
		return fields
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}
	return fields
}
