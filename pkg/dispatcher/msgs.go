package dispatcher

// Per-module report lines. Each takes the module name first.
const (
	MsgOnline        = "%s is online (using the mirror)"
	MsgOffline       = "%s is offline (using its default upstream)"
	MsgAlreadyUp     = "%s is already configured to the mirror"
	MsgAlreadyDown   = "%s is already using its default upstream"
	MsgSwitchedUp    = "%s is now configured to the mirror"
	MsgSwitchedDown  = "%s is restored to its default upstream"
	MsgDeclined      = "%s: operation cancelled"
	MsgUnsupported   = "%s: %s is not supported, please do it manually"
	MsgFailed        = "%s: %v"
	MsgNoApplicable  = "No supported package manager found"
	MsgUnknownResult = "%s: unexpected result %q"
)
