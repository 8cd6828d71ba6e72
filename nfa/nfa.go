// Package nfa provides the nondeterministic search engines and the shared
// vocabulary used by every engine in this library.
//
// The engines execute compiled programs (*syntax.Prog) produced by the
// regexp/syntax compiler. Two engines live here:
//   - PikeVM: breadth-first NFA simulation with capture tracking. The
//     always-available baseline; handles every pattern, every anchor, every
//     match kind, in O(len(prog) * len(text)) time.
//   - BitState: bounded backtracking with a (instruction x position) visited
//     bit vector. Faster than the PikeVM on small program/text products,
//     with deterministically bounded memory.
//
// The deterministic engines live in dfa/lazy and dfa/onepass and import this
// package for the shared Anchor/Kind types and rune helpers.
package nfa

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// Anchor constrains where a match may start.
type Anchor int

const (
	// Unanchored allows the match to start at any position.
	Unanchored Anchor = iota

	// Anchored requires the match to start exactly at the search start.
	Anchored
)

// Kind selects the match semantics of a search.
type Kind int

const (
	// FirstMatch selects the leftmost-first (Perl-style) match.
	FirstMatch Kind = iota

	// LongestMatch selects the leftmost-longest (POSIX) match.
	LongestMatch

	// FullMatch requires the match to end exactly at the search end.
	FullMatch
)

// String returns a human-readable name for the match kind.
func (k Kind) String() string {
	switch k {
	case FirstMatch:
		return "FirstMatch"
	case LongestMatch:
		return "LongestMatch"
	case FullMatch:
		return "FullMatch"
	default:
		return "Unknown"
	}
}

// DecodeRune returns the rune starting at text[i] and its width in bytes.
// In Latin-1 mode every byte is its own rune.
func DecodeRune(text string, i int, latin1 bool) (rune, int) {
	if latin1 {
		return rune(text[i]), 1
	}
	return utf8.DecodeRuneInString(text[i:])
}

// DecodeLastRune returns the rune ending at text[i] (exclusive) and its width.
func DecodeLastRune(text string, i int, latin1 bool) (rune, int) {
	if latin1 {
		return rune(text[i-1]), 1
	}
	return utf8.DecodeLastRuneInString(text[:i])
}

// RuneAt returns the rune starting at position i, or -1 at end of text.
func RuneAt(text string, i int, latin1 bool) rune {
	if i >= len(text) {
		return -1
	}
	r, _ := DecodeRune(text, i, latin1)
	return r
}

// RuneBefore returns the rune ending at position i, or -1 at start of text.
func RuneBefore(text string, i int, latin1 bool) rune {
	if i <= 0 {
		return -1
	}
	r, _ := DecodeLastRune(text, i, latin1)
	return r
}

// ContextAt returns the zero-width assertions satisfied at byte position i.
// Positions are relative to the full text so that ^, $, and \b observe the
// real surroundings even when the search is restricted to a slice of it.
func ContextAt(text string, i int, latin1 bool) syntax.EmptyOp {
	return syntax.EmptyOpContext(RuneBefore(text, i, latin1), RuneAt(text, i, latin1))
}

// MatchesRune reports whether the consuming instruction i matches r.
func MatchesRune(i *syntax.Inst, r rune) bool {
	switch i.Op {
	case syntax.InstRune:
		return i.MatchRune(r)
	case syntax.InstRune1:
		return r == i.Rune[0]
	case syntax.InstRuneAny:
		return true
	case syntax.InstRuneAnyNotNL:
		return r != '\n'
	}
	return false
}

// Ranges returns the rune ranges matched by a consuming instruction, in
// ascending order. Case-folded single-rune instructions are expanded to
// their full fold orbit so the ranges are exact.
func Ranges(i *syntax.Inst) [][2]rune {
	switch i.Op {
	case syntax.InstRuneAny:
		return [][2]rune{{0, unicode.MaxRune}}
	case syntax.InstRuneAnyNotNL:
		return [][2]rune{{0, '\n' - 1}, {'\n' + 1, unicode.MaxRune}}
	case syntax.InstRune1:
		return [][2]rune{{i.Rune[0], i.Rune[0]}}
	case syntax.InstRune:
		if len(i.Rune) == 1 {
			rs := [][2]rune{{i.Rune[0], i.Rune[0]}}
			if syntax.Flags(i.Arg)&syntax.FoldCase != 0 {
				for r := unicode.SimpleFold(i.Rune[0]); r != i.Rune[0]; r = unicode.SimpleFold(r) {
					rs = append(rs, [2]rune{r, r})
				}
			}
			sortRanges(rs)
			return rs
		}
		rs := make([][2]rune, 0, len(i.Rune)/2)
		for j := 0; j+1 < len(i.Rune); j += 2 {
			rs = append(rs, [2]rune{i.Rune[j], i.Rune[j+1]})
		}
		return rs
	}
	return nil
}

func sortRanges(rs [][2]rune) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j][0] < rs[j-1][0]; j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

// HasWordBoundary reports whether the program contains \b or \B assertions.
// The lazy DFA refuses such programs; the boundary depends on both adjacent
// runes and does not fit its state model.
func HasWordBoundary(p *syntax.Prog) bool {
	for i := range p.Inst {
		inst := &p.Inst[i]
		if inst.Op == syntax.InstEmptyWidth {
			op := syntax.EmptyOp(inst.Arg)
			if op&(syntax.EmptyWordBoundary|syntax.EmptyNoWordBoundary) != 0 {
				return true
			}
		}
	}
	return false
}

// IsStartAnchored reports whether every match of re must begin at the start
// of the text. Conservative: false when unsure.
func IsStartAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if IsStartAnchored(sub) {
				return true
			}
			if !matchesOnlyEmpty(sub) {
				return false
			}
		}
		return false
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return false
		}
		for _, sub := range re.Sub {
			if !IsStartAnchored(sub) {
				return false
			}
		}
		return true
	case syntax.OpCapture, syntax.OpPlus:
		return len(re.Sub) == 1 && IsStartAnchored(re.Sub[0])
	}
	return false
}

// IsEndAnchored reports whether every match of re must end at the end of the
// text. Conservative: false when unsure.
func IsEndAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEndText:
		return true
	case syntax.OpConcat:
		for i := len(re.Sub) - 1; i >= 0; i-- {
			if IsEndAnchored(re.Sub[i]) {
				return true
			}
			if !matchesOnlyEmpty(re.Sub[i]) {
				return false
			}
		}
		return false
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return false
		}
		for _, sub := range re.Sub {
			if !IsEndAnchored(sub) {
				return false
			}
		}
		return true
	case syntax.OpCapture, syntax.OpPlus:
		return len(re.Sub) == 1 && IsEndAnchored(re.Sub[0])
	}
	return false
}

// matchesOnlyEmpty reports whether re can only ever match the empty string.
func matchesOnlyEmpty(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpCapture:
		return matchesOnlyEmpty(re.Sub[0])
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !matchesOnlyEmpty(sub) {
				return false
			}
		}
		return true
	}
	return false
}
