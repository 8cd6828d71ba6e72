package re2

import "testing"

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{``, ``},
		{`abcABC123_`, `abcABC123_`},
		{`1.5-2.0?`, `1\.5\-2\.0\?`},
		{`(a|b)*`, `\(a\|b\)\*`},
		{`a b`, `a\ b`},
		{"a.b\x00c", `a\.b\x00c`},
		{"caf\xc3\xa9", "caf\xc3\xa9"}, // UTF-8 bytes pass through
		{`\`, `\\`},
	}
	for _, tt := range tests {
		if got := QuoteMeta(tt.in); got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteMetaRoundTrip(t *testing.T) {
	// A quoted string compiles to a pattern that full-matches the original.
	for _, s := range []string{
		"plain",
		"1.5-2.0?",
		"(parens) [brackets] {braces}",
		"unicode: καφές",
		"nul\x00digit0",
		`back\slash`,
	} {
		re := Compile(QuoteMeta(s))
		if !re.Ok() {
			t.Errorf("QuoteMeta(%q) produced invalid pattern: %s", s, re.Error())
			continue
		}
		if !FullMatch(s, re) {
			t.Errorf("FullMatch(%q, QuoteMeta(%q)) failed", s, s)
		}
	}
}

func TestPossibleMatchRange(t *testing.T) {
	tests := []struct {
		pattern string
		maxlen  int
		wantMin string
		ok      bool
	}{
		{`^abc`, 10, "abc", true},
		{`^abc\d`, 10, "abc0", true},
		{`abc`, 10, "abc", true},
		{`a|b`, 10, "a", true},
	}
	for _, tt := range tests {
		re := Compile(tt.pattern)
		var min, max string
		ok := re.PossibleMatchRange(&min, &max, tt.maxlen)
		if ok != tt.ok {
			t.Errorf("PossibleMatchRange(%q) = %v, want %v", tt.pattern, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if min != tt.wantMin {
			t.Errorf("PossibleMatchRange(%q) min = %q, want %q", tt.pattern, min, tt.wantMin)
		}
		if !(min < max) {
			t.Errorf("PossibleMatchRange(%q): min %q not below max %q", tt.pattern, min, max)
		}
	}
}

func TestPossibleMatchRangeContainsMatches(t *testing.T) {
	tests := []struct {
		pattern string
		matches []string
	}{
		{`^abc`, []string{"abc", "abcd", "abczzz"}},
		{`foo\d+`, []string{"foo0", "foo123", "foo999999"}},
		{`a|b|c`, []string{"a", "b", "c"}},
		{`ab*`, []string{"a", "ab", "abbbbbbbbbb"}},
	}
	for _, tt := range tests {
		re := Compile(tt.pattern)
		var min, max string
		if !re.PossibleMatchRange(&min, &max, 6) {
			t.Errorf("PossibleMatchRange(%q) failed", tt.pattern)
			continue
		}
		for _, m := range tt.matches {
			if !(min <= m && m < max) {
				t.Errorf("PossibleMatchRange(%q) = [%q, %q) excludes match %q",
					tt.pattern, min, max, m)
			}
		}
	}
}

func TestPossibleMatchRangeFoldedPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseSensitive = false
	re := CompileWithOptions(`^ab`, opts)
	var min, max string
	if !re.PossibleMatchRange(&min, &max, 10) {
		t.Fatal("PossibleMatchRange failed")
	}
	// The prefix is stored lowercase; the range minimum is its uppercase
	// form so every case variant falls inside.
	if min != "AB" {
		t.Errorf("min = %q, want AB", min)
	}
	for _, m := range []string{"AB", "Ab", "aB", "ab"} {
		if !(min <= m && m < max) {
			t.Errorf("[%q, %q) excludes %q", min, max, m)
		}
	}
}

func TestPossibleMatchRangeTruncation(t *testing.T) {
	re := Compile(`^abcdefgh`)
	var min, max string
	if !re.PossibleMatchRange(&min, &max, 4) {
		t.Fatal("PossibleMatchRange failed")
	}
	if min != "abcd" {
		t.Errorf("min = %q, want abcd", min)
	}
	if !(min <= "abcdefgh" && "abcdefgh" < max) {
		t.Errorf("[%q, %q) excludes the only match", min, max)
	}
}

func TestPossibleMatchRangeWordBoundary(t *testing.T) {
	// \b keeps the automaton walk out; with no literal prefix either,
	// nothing useful is known.
	re := Compile(`\bfoo`)
	var min, max string
	if re.PossibleMatchRange(&min, &max, 10) {
		t.Skip("walker handled word boundary")
	}
}
