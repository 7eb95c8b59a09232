package types

// Scope selects whether changes apply system-wide or to the current user only
type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeGlobal Scope = "global"
)

// IsGlobal reports whether the scope targets system-wide configuration
func (s Scope) IsGlobal() bool {
	return s == ScopeGlobal
}

// ScopeFromFlag maps the --global flag to a scope
func ScopeFromFlag(global bool) Scope {
	if global {
		return ScopeGlobal
	}
	return ScopeUser
}
