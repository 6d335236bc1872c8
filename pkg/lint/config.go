package lint

// DefaultMaxFileSize is the default input cap in bytes. Files larger
// than this are not linted at all.
const DefaultMaxFileSize = 1 << 20

// Config is the rule configuration observed by one lint invocation.
//
// A pass receives its Config by value and reads it as a single
// consistent snapshot: configuration changes replace the whole value
// at the call boundary and never mutate a snapshot a running pass can
// see.
type Config struct {
	// Enabled gates the entire engine. When false, Run returns nil.
	Enabled bool
	// MaxFileSize is the input cap in bytes; strictly larger inputs
	// produce no diagnostics.
	MaxFileSize int

	// Per-rule toggles.
	KeywordCasing      bool
	Semicolon          bool
	StringLiteral      bool
	Parentheses        bool
	TrailingWhitespace bool
	MissingComma       bool
	HiveVariable       bool
}

// DefaultConfig returns the stock configuration: linting on with a
// 1 MiB cap, every rule enabled except the two noisy heuristics
// (keyword casing and missing comma).
func DefaultConfig() Config {
	return Config{
		Enabled:            true,
		MaxFileSize:        DefaultMaxFileSize,
		KeywordCasing:      false,
		Semicolon:          true,
		StringLiteral:      true,
		Parentheses:        true,
		TrailingWhitespace: true,
		MissingComma:       false,
		HiveVariable:       true,
	}
}
