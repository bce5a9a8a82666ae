package domain

// PermanentRegisterDef is one configured permanent register entry.
type PermanentRegisterDef struct {
	// Name is the single-letter register name.
	Name byte

	// Content is the configured text payload.
	Content string

	// Description is an optional human label shown in listings.
	Description string
}

// Config is the runtime configuration resolved from the config file and
// flags.
type Config struct {
	// MaxHistory is the ceiling for unpinned clips.
	MaxHistory int

	// ExitOnSelect closes the TUI after a clip is written to the
	// clipboard.
	ExitOnSelect bool

	// Verbose enables diagnostic logging to stderr.
	Verbose bool

	// PermanentRegisters are the configuration-sourced register
	// definitions.
	PermanentRegisters []PermanentRegisterDef
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{MaxHistory: DefaultMaxUnpinned}
}
