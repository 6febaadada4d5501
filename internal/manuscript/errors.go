package manuscript

import "errors"

// Error variables for manuscript operations.
var (
	// ErrParse means the manuscript bytes do not decode as JSON/JSONC.
	ErrParse = errors.New("manuscript is not valid JSON")

	// ErrSchema means the document decoded but a required section is
	// missing or has the wrong shape.
	ErrSchema = errors.New("invalid manuscript schema")

	// ErrUnknownSection means a caller asked for a section name outside
	// the six recognized sections.
	ErrUnknownSection = errors.New("unknown section")

	// ErrOutOfRange means a cycle-day or spiral-step index is outside
	// its valid 1-indexed range.
	ErrOutOfRange = errors.New("index out of range")

	// ErrProtocolNotFound means no protocol with the requested id exists
	// in the loaded manuscript.
	ErrProtocolNotFound = errors.New("protocol not found")

	// Config errors.
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrManuscriptEmpty    = errors.New("manuscript path cannot be empty")
)
