package onepass

import (
	"regexp/syntax"
	"testing"

	"github.com/Saad505/re2/nfa"
)

func compile(t *testing.T, pattern string) *syntax.Prog {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return prog
}

func TestBuildAcceptsOnePassPatterns(t *testing.T) {
	for _, pattern := range []string{
		`abc`,
		`(\d+)-(\d+)`,
		`(a)(b)?`,
		`[a-f]+[0-9]+`,
		`^foo$`,
		`(?i)hello`,
	} {
		if _, err := Build(compile(t, pattern), false); err != nil {
			t.Errorf("Build(%q) rejected a one-pass pattern: %v", pattern, err)
		}
	}
}

func TestBuildRejectsAmbiguousPatterns(t *testing.T) {
	for _, pattern := range []string{
		`a*a`,
		`(ab|[a-c]d)c`,
		`a?a?a`,
		`(x*)(x*)`,
	} {
		if _, err := Build(compile(t, pattern), false); err == nil {
			t.Errorf("Build(%q) accepted an ambiguous pattern", pattern)
		}
	}
}

// TestSearchAgreesWithPikeVM checks the engine-equivalence property on the
// patterns the one-pass builder accepts.
func TestSearchAgreesWithPikeVM(t *testing.T) {
	tests := []struct {
		pattern string
		texts   []string
	}{
		{`(\d+)-(\d+)`, []string{"42-17", "42-", "7-8x", ""}},
		{`(a)(b)?`, []string{"a", "ab", "b"}},
		{`abc`, []string{"abc", "abd", "abcx"}},
		{`a+b`, []string{"aaab", "b", "ab"}},
		{`a+?b`, []string{"aaab"}},
		{`(?i)hello`, []string{"Hello", "HELLO", "hell"}},
		{`^foo$`, []string{"foo", "foox"}},
	}
	for _, tt := range tests {
		prog := compile(t, tt.pattern)
		d, err := Build(prog, false)
		if err != nil {
			t.Fatalf("Build(%q): %v", tt.pattern, err)
		}
		re, _ := syntax.Parse(tt.pattern, syntax.Perl)
		ncap := 2 * (1 + re.MaxCap())
		for _, text := range tt.texts {
			for _, kind := range []nfa.Kind{nfa.FirstMatch, nfa.FullMatch} {
				dcaps := make([]int, ncap)
				vcaps := make([]int, ncap)
				dok := d.Search(text, 0, len(text), kind, dcaps)
				vok := nfa.NewPikeVM(prog, false).Search(text, 0, len(text), nfa.Anchored, kind, vcaps)
				if dok != vok {
					t.Errorf("OnePass(%q, %q, %v) = %v, PikeVM = %v", tt.pattern, text, kind, dok, vok)
					continue
				}
				if dok && !equalInts(dcaps, vcaps) {
					t.Errorf("OnePass(%q, %q, %v) caps = %v, PikeVM = %v",
						tt.pattern, text, kind, dcaps, vcaps)
				}
			}
		}
	}
}

func TestSearchUnmatchedGroup(t *testing.T) {
	d, err := Build(compile(t, `(a)(b)?`), false)
	if err != nil {
		t.Fatal(err)
	}
	caps := make([]int, 6)
	if !d.Search("a", 0, 1, nfa.FullMatch, caps) {
		t.Fatal("full match failed")
	}
	want := []int{0, 1, 0, 1, -1, -1}
	if !equalInts(caps, want) {
		t.Errorf("caps = %v, want %v", caps, want)
	}
}

func TestSearchLazyVsGreedy(t *testing.T) {
	greedy, err := Build(compile(t, `a+`), false)
	if err != nil {
		t.Fatal(err)
	}
	caps := make([]int, 2)
	if !greedy.Search("aaa", 0, 3, nfa.FirstMatch, caps) || caps[1] != 3 {
		t.Errorf("greedy a+ = %v, want end 3", caps)
	}

	lazy, err := Build(compile(t, `a+?`), false)
	if err != nil {
		t.Fatal(err)
	}
	if !lazy.Search("aaa", 0, 3, nfa.FirstMatch, caps) || caps[1] != 1 {
		t.Errorf("lazy a+? = %v, want end 1", caps)
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
