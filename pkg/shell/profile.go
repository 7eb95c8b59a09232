package shell

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/paths"
	"github.com/arthur-debert/tuna/pkg/types"
)

// ProfileMarker tags every line tuna writes into a shell profile
const ProfileMarker = "# added by tuna"

// GlobalProfile is the drop-in file used for system-wide variables
const GlobalProfile = "/etc/profile.d/tuna.sh"

// userProfiles are the startup files checked, in order, for user scope
var userProfiles = []string{".bashrc", ".zshrc", ".profile"}

// Profile edits `export KEY=value` lines in the shell startup files of a scope.
// Variables set here reach future shell sessions, never the running process.
type Profile struct {
	fs    types.FS
	files []string
}

// NewProfile selects the startup files for scope. User scope edits every
// existing profile among .bashrc, .zshrc and .profile, falling back to
// .profile when none exists.
func NewProfile(fsys types.FS, p paths.Paths, scope types.Scope) *Profile {
	if scope.IsGlobal() {
		return &Profile{fs: fsys, files: []string{p.System(GlobalProfile)}}
	}

	var files []string
	for _, name := range userProfiles {
		path := p.UserFile(name)
		if filesystem.Exists(fsys, path) {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		files = []string{p.UserFile(".profile")}
	}
	return &Profile{fs: fsys, files: files}
}

// Files returns the startup files this profile edits
func (p *Profile) Files() []string {
	return p.files
}

// Get returns the value exported for key by the first file that sets it
func (p *Profile) Get(key string) (string, bool) {
	for _, path := range p.files {
		data, err := filesystem.ReadOptional(p.fs, path)
		if err != nil || data == nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			if value, ok := parseExport(line, key); ok {
				return value, true
			}
		}
	}
	return "", false
}

// Set exports key=value from every profile file, replacing earlier tuna lines
func (p *Profile) Set(key, value string) error {
	line := fmt.Sprintf("export %s=%q %s", key, value, ProfileMarker)
	for _, path := range p.files {
		data, err := filesystem.ReadOptional(p.fs, path)
		if err != nil {
			return err
		}

		lines := withoutExport(string(data), key)
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		if len(lines) == 0 {
			lines = []string{""}
		}
		lines[len(lines)-1] = line
		content := strings.Join(lines, "\n") + "\n"

		if err := filesystem.WriteFile(p.fs, path, []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

// Unset removes the tuna export of key from every profile file. The global
// drop-in file is removed once it holds nothing else.
func (p *Profile) Unset(key string) error {
	for _, path := range p.files {
		data, err := filesystem.ReadOptional(p.fs, path)
		if err != nil {
			return err
		}
		if data == nil {
			continue
		}

		content := strings.Join(withoutExport(string(data), key), "\n")
		if strings.HasSuffix(path, GlobalProfile) && strings.TrimSpace(content) == "" {
			if err := p.fs.Remove(path); err != nil {
				return err
			}
			continue
		}
		if content != "" {
			content += "\n"
		}
		if err := filesystem.WriteFile(p.fs, path, []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

// withoutExport splits content into lines, dropping tuna's export of key and
// the trailing empty line left by a final newline
func withoutExport(content, key string) []string {
	if content == "" {
		return nil
	}
	var kept []string
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		if _, ok := parseExport(line, key); ok && strings.Contains(line, ProfileMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func parseExport(line, key string) (string, bool) {
	line = strings.TrimSpace(line)
	prefix := "export " + key + "="
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, prefix), ProfileMarker))
	value = strings.Trim(value, `"'`)
	return value, true
}
