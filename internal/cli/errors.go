package cli

import "errors"

var (
	errFlagRequiresArg    = errors.New("flag requires an argument")
	errSectionRequired    = errors.New("section name is required")
	errProtocolIDRequired = errors.New("protocol id is required")
	errIndexRequired      = errors.New("a numeric index is required")
	errIndexNotNumeric    = errors.New("index must be an integer")
	errPromptRequired     = errors.New("a prompt is required")
)
