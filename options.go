package re2

import "log"

// Encoding selects how pattern and text bytes are interpreted.
type Encoding int

const (
	// EncodingUTF8 decodes text as UTF-8 runes.
	EncodingUTF8 Encoding = iota

	// EncodingLatin1 treats every byte as one rune (0x00-0xFF).
	EncodingLatin1
)

// DefaultMaxMem is the default memory budget for compiled programs, in
// bytes. Two thirds go to the forward program, one third to the reverse
// program built on first submatch search.
const DefaultMaxMem = 8 << 20

// Logger receives diagnostics when Options.LogErrors is set: parse and
// compile failures, and engine inconsistencies detected at match time.
// Injecting a Logger keeps the library off the global log state.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// stdLogger routes diagnostics to the stdlib logger.
type stdLogger struct{}

func (stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf("re2: "+format, args...)
}

// Options configures pattern compilation and matching.
//
// The zero value is not useful; start from DefaultOptions (or one of the
// presets) and adjust:
//
//	opts := re2.DefaultOptions()
//	opts.CaseSensitive = false
//	re := re2.CompileWithOptions(`hello`, opts)
type Options struct {
	// Encoding selects UTF-8 or Latin-1 interpretation of pattern and text.
	Encoding Encoding

	// PosixSyntax restricts the pattern to POSIX ERE syntax.
	// It implies LongestMatch. PerlClasses and WordBoundary re-enable
	// \d \s \w and \b \B, which POSIX leaves out.
	PosixSyntax bool

	// LongestMatch selects leftmost-longest instead of leftmost-first
	// semantics.
	LongestMatch bool

	// LogErrors emits a diagnostic through Logger on parse or compile
	// failure and on engine inconsistencies.
	LogErrors bool

	// MaxMem caps the memory of the compiled programs and the DFA state
	// caches, in bytes. Zero means DefaultMaxMem.
	MaxMem int64

	// Literal treats the whole pattern as a literal string.
	Literal bool

	// NeverNL keeps '.' and negated character classes from matching a
	// newline.
	NeverNL bool

	// CaseSensitive is the default; clearing it folds case (ASCII in
	// Latin-1 mode, Unicode in UTF-8 mode).
	CaseSensitive bool

	// PerlClasses enables \d \s \w under PosixSyntax.
	PerlClasses bool

	// WordBoundary enables \b \B under PosixSyntax.
	WordBoundary bool

	// OneLine makes ^ and $ match only at the ends of the text under
	// PosixSyntax. Perl syntax already behaves this way without (?m).
	OneLine bool

	// Logger is the diagnostic sink; nil uses the stdlib logger.
	Logger Logger
}

// DefaultOptions returns the standard configuration: UTF-8, Perl syntax,
// leftmost-first matching, error logging on.
func DefaultOptions() Options {
	return Options{
		Encoding:      EncodingUTF8,
		CaseSensitive: true,
		LogErrors:     true,
		MaxMem:        DefaultMaxMem,
	}
}

// Latin1Options is DefaultOptions with Latin-1 encoding.
func Latin1Options() Options {
	opts := DefaultOptions()
	opts.Encoding = EncodingLatin1
	return opts
}

// POSIXOptions is DefaultOptions with POSIX ERE syntax and leftmost-longest
// matching.
func POSIXOptions() Options {
	opts := DefaultOptions()
	opts.PosixSyntax = true
	opts.LongestMatch = true
	return opts
}

// QuietOptions is DefaultOptions with error logging off.
func QuietOptions() Options {
	opts := DefaultOptions()
	opts.LogErrors = false
	return opts
}

// maxMem returns the effective memory budget.
func (o *Options) maxMem() int64 {
	if o.MaxMem <= 0 {
		return DefaultMaxMem
	}
	return o.MaxMem
}

// logger returns the effective diagnostic sink.
func (o *Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return stdLogger{}
}
