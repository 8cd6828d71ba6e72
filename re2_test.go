package re2

import (
	"strings"
	"testing"
)

func TestCompileOk(t *testing.T) {
	for _, pattern := range []string{
		``, `abc`, `(\d+)-(\d+)`, `(?i)hello`, `a*b+c?`, `[a-z]+`, `^foo.*bar$`,
		`(?P<name>\w+)`, `\bword\b`, `α|β`,
	} {
		re := Compile(pattern)
		if !re.Ok() {
			t.Errorf("Compile(%q): not ok: %s", pattern, re.Error())
		}
		if re.Error() != "" {
			t.Errorf("Compile(%q): Error = %q, want empty", pattern, re.Error())
		}
		if re.ErrorCode() != NoError {
			t.Errorf("Compile(%q): ErrorCode = %v, want NoError", pattern, re.ErrorCode())
		}
		if re.ProgramSize() <= 0 {
			t.Errorf("Compile(%q): ProgramSize = %d, want > 0", pattern, re.ProgramSize())
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    ErrorCode
	}{
		{`[`, ErrorMissingBracket},
		{`(abc`, ErrorMissingParen},
		{`abc)`, ErrorMissingParen},
		{`a\`, ErrorTrailingBackslash},
		{`*`, ErrorRepeatArgument},
		{`a**`, ErrorRepeatOp},
		{`a{2,1}`, ErrorRepeatSize},
		{`(?P<>a)`, ErrorBadNamedCapture},
		{`\C`, ErrorBadEscape},
	}
	for _, tt := range tests {
		re := CompileWithOptions(tt.pattern, QuietOptions())
		if re.Ok() {
			t.Errorf("Compile(%q): unexpectedly ok", tt.pattern)
			continue
		}
		if re.ErrorCode() != tt.code {
			t.Errorf("Compile(%q): ErrorCode = %v, want %v", tt.pattern, re.ErrorCode(), tt.code)
		}
		if re.Error() == "" {
			t.Errorf("Compile(%q): empty error text", tt.pattern)
		}
	}
}

func TestErrorArg(t *testing.T) {
	re := CompileWithOptions(`a**`, QuietOptions())
	if re.Ok() {
		t.Fatal("a** compiled")
	}
	if re.ErrorArg() == "" {
		t.Error("ErrorArg is empty for a**")
	}
}

func TestPosixSyntax(t *testing.T) {
	// POSIX ERE has no \d unless PerlClasses turns it on.
	if CompileWithOptions(`\d+`, posixQuiet(false)).Ok() {
		t.Error(`\d compiled under plain POSIX syntax`)
	}
	re := CompileWithOptions(`\d+`, posixQuiet(true))
	if !re.Ok() {
		t.Fatalf(`\d with PerlClasses failed: %s`, re.Error())
	}
	if !PartialMatch("n=42", re) {
		t.Error("POSIX \\d+ did not match")
	}

	// POSIX mode matches leftmost-longest.
	longest := CompileWithOptions(`a|ab`, POSIXOptions())
	vec := make([]int, 2)
	if !longest.Match("ab", 0, Unanchored, vec) || vec[1] != 2 {
		t.Errorf("POSIX a|ab span = %v, want [0 2]", vec)
	}
}

func posixQuiet(perlClasses bool) Options {
	opts := POSIXOptions()
	opts.LogErrors = false
	opts.PerlClasses = perlClasses
	return opts
}

func TestInvalidRegexpIsInert(t *testing.T) {
	re := CompileWithOptions(`[`, QuietOptions())

	if FullMatch("anything", re) {
		t.Error("FullMatch on invalid pattern succeeded")
	}
	if PartialMatch("anything", re) {
		t.Error("PartialMatch on invalid pattern succeeded")
	}
	s := "anything"
	if Replace(&s, re, "x") {
		t.Error("Replace on invalid pattern succeeded")
	}
	if n := GlobalReplace(&s, re, "x"); n != 0 {
		t.Errorf("GlobalReplace on invalid pattern = %d, want 0", n)
	}
	if re.NumberOfCapturingGroups() != -1 {
		t.Errorf("NumberOfCapturingGroups = %d, want -1", re.NumberOfCapturingGroups())
	}
	if re.ProgramSize() != -1 {
		t.Errorf("ProgramSize = %d, want -1", re.ProgramSize())
	}
	var min, max string
	if re.PossibleMatchRange(&min, &max, 10) {
		t.Error("PossibleMatchRange on invalid pattern succeeded")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile(`[`) did not panic")
		}
	}()
	MustCompile(`[`)
}

func TestNumberOfCapturingGroups(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`abc`, 0},
		{`(a)`, 1},
		{`(a)(b)(c)`, 3},
		{`(a(b))`, 2},
		{`(?:a)`, 0},
		{`^foo(bar)`, 1},
	}
	for _, tt := range tests {
		re := Compile(tt.pattern)
		if got := re.NumberOfCapturingGroups(); got != tt.want {
			t.Errorf("NumberOfCapturingGroups(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func TestNamedCapturingGroups(t *testing.T) {
	re := Compile(`(?P<year>\d+)-(?P<month>\d+)-(\d+)`)
	groups := re.NamedCapturingGroups()
	want := map[string]int{"year": 1, "month": 2}
	if len(groups) != len(want) {
		t.Fatalf("NamedCapturingGroups = %v, want %v", groups, want)
	}
	for name, idx := range want {
		if groups[name] != idx {
			t.Errorf("group %q = %d, want %d", name, groups[name], idx)
		}
	}

	if got := Compile(`(a)(b)`).NamedCapturingGroups(); len(got) != 0 {
		t.Errorf("NamedCapturingGroups with no names = %v, want empty", got)
	}
}

func TestPrefixFactoring(t *testing.T) {
	re := Compile(`^hello(\d+)`)
	if re.prefix != "hello" {
		t.Fatalf("prefix = %q, want %q", re.prefix, "hello")
	}
	if re.prefixFoldCase {
		t.Error("prefixFoldCase = true, want false")
	}

	var n int
	if !PartialMatch("hello42", re, IntArg(&n)) || n != 42 {
		t.Errorf("PartialMatch with factored prefix: n = %d, want 42", n)
	}
	if PartialMatch("xhello42", re) {
		t.Error("PartialMatch matched despite ^ anchor")
	}

	// Case-folded prefixes are stored lowercase and compared ASCII-folded.
	opts := DefaultOptions()
	opts.CaseSensitive = false
	fre := CompileWithOptions(`^hello`, opts)
	if fre.prefix != "hello" || !fre.prefixFoldCase {
		t.Fatalf("fold prefix = %q/%v, want hello/true", fre.prefix, fre.prefixFoldCase)
	}
	for _, text := range []string{"hello", "HELLO", "HeLLo there"} {
		if !PartialMatch(text, fre) {
			t.Errorf("fold prefix did not match %q", text)
		}
	}
	if PartialMatch("hell", fre) {
		t.Error("fold prefix matched too-short text")
	}
}

func TestPrefixTransparency(t *testing.T) {
	// Factoring the prefix out must not change the observable spans.
	// The empty group ahead of the literal keeps the parser from factoring a
	// prefix, so plain runs "hello" through the program.
	plain := Compile(`^(?:)hello(\d+)`)
	factored := Compile(`^hello(\d+)`)
	for _, text := range []string{"hello42", "hello", "bye42", "", "hello7x"} {
		a := make([]int, 4)
		b := make([]int, 4)
		am := plain.Match(text, 0, Unanchored, a)
		bm := factored.Match(text, 0, Unanchored, b)
		if am != bm {
			t.Errorf("%q: matched %v vs %v", text, am, bm)
			continue
		}
		if am && !equalInts(a, b) {
			t.Errorf("%q: spans %v vs %v", text, a, b)
		}
	}
}

func TestOptionsPresets(t *testing.T) {
	if o := DefaultOptions(); !o.CaseSensitive || !o.LogErrors || o.MaxMem != DefaultMaxMem {
		t.Errorf("DefaultOptions = %+v", o)
	}
	if o := Latin1Options(); o.Encoding != EncodingLatin1 {
		t.Errorf("Latin1Options encoding = %v", o.Encoding)
	}
	if o := POSIXOptions(); !o.PosixSyntax || !o.LongestMatch {
		t.Errorf("POSIXOptions = %+v", o)
	}
	if o := QuietOptions(); o.LogErrors {
		t.Errorf("QuietOptions logs errors")
	}
}

// capturingLogger records diagnostics for assertions.
type capturingLogger struct {
	lines []string
}

func (l *capturingLogger) Errorf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestLoggerSink(t *testing.T) {
	logger := &capturingLogger{}
	opts := DefaultOptions()
	opts.Logger = logger
	re := CompileWithOptions(`[`, opts)
	if re.Ok() {
		t.Fatal("expected parse failure")
	}
	if len(logger.lines) == 0 {
		t.Error("parse failure was not logged to the injected sink")
	}

	logger.lines = nil
	FullMatch("x", re)
	if len(logger.lines) == 0 {
		t.Error("match on invalid pattern was not logged")
	}

	// Quiet options keep the sink silent.
	quiet := &capturingLogger{}
	qopts := QuietOptions()
	qopts.Logger = quiet
	qre := CompileWithOptions(`[`, qopts)
	FullMatch("x", qre)
	if len(quiet.lines) != 0 {
		t.Errorf("quiet pattern logged %v", quiet.lines)
	}
}

func TestLatin1(t *testing.T) {
	// 0xE9 is é in Latin-1; the pattern and text both carry raw bytes.
	re := CompileWithOptions("caf\xe9", Latin1Options())
	if !re.Ok() {
		t.Fatalf("latin-1 compile failed: %s", re.Error())
	}
	if !PartialMatch("un caf\xe9 noir", re) {
		t.Error("latin-1 literal did not match")
	}
	if PartialMatch("cafe", re) {
		t.Error("latin-1 literal matched wrong text")
	}

	// In Latin-1 mode '.' matches any byte, including ones that are not
	// valid UTF-8.
	dot := CompileWithOptions("a.c", Latin1Options())
	if !FullMatch("a\xffc", dot) {
		t.Error("latin-1 '.' did not match byte 0xFF")
	}
}

func TestReverseProgramPoison(t *testing.T) {
	// A budget large enough for the forward program but not for the reverse
	// one poisons the pattern on first unanchored submatch search.
	pattern := `(` + strings.Repeat(`a`, 200) + `)`
	opts := QuietOptions()
	opts.MaxMem = 3 * instMemBytes * 210 / 2 // forward fits in 2/3, reverse misses 1/3
	re := CompileWithOptions(pattern, opts)
	if !re.Ok() {
		t.Fatalf("forward compile over budget: %s", re.Error())
	}
	if re.reverseDFA() != nil {
		t.Fatal("reverse program unexpectedly fit its budget")
	}
	if re.Ok() {
		t.Error("pattern still ok after reverse-compile failure")
	}
	if re.ErrorCode() != ErrorPatternTooLarge {
		t.Errorf("ErrorCode = %v, want PatternTooLarge", re.ErrorCode())
	}
	vec := make([]int, 4)
	if re.Match(strings.Repeat("a", 300), 0, Unanchored, vec) {
		t.Error("poisoned pattern still matches")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
