package literal

import (
	"regexp/syntax"
)

const (
	// maxPrefixLiterals caps the number of literals a prefilter will track.
	maxPrefixLiterals = 64

	// minPrefixLen rejects prefixes too short to filter effectively.
	minPrefixLen = 2
)

// ExtractPrefixSet returns a set of literal byte strings such that every
// match of re starts with one of them, or nil when no such set exists.
// The result feeds the multi-literal prefilter on the unanchored search
// path; it is an optimization contract, not a match: a candidate still has
// to be verified by a real engine.
//
// Case-folded literals are rejected rather than expanded, and an empty or
// emptyable leading element disqualifies the pattern (an empty match has no
// prefix to find).
func ExtractPrefixSet(re *syntax.Regexp, latin1 bool) []string {
	lits := prefixLiterals(re, latin1)
	if len(lits) == 0 || len(lits) > maxPrefixLiterals {
		return nil
	}
	for _, l := range lits {
		if len(l) < minPrefixLen {
			return nil
		}
	}
	return lits
}

// prefixLiterals walks the leading element of re and collects the literal
// prefixes of every alternative. nil means "no usable set".
func prefixLiterals(re *syntax.Regexp, latin1 bool) []string {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 || len(re.Rune) == 0 {
			return nil
		}
		var b []byte
		for _, r := range re.Rune {
			b = appendRune(b, r, latin1)
		}
		return []string{string(b)}

	case syntax.OpCapture:
		return prefixLiterals(re.Sub[0], latin1)

	case syntax.OpConcat:
		for _, sub := range re.Sub {
			switch sub.Op {
			case syntax.OpBeginText, syntax.OpBeginLine, syntax.OpEmptyMatch,
				syntax.OpWordBoundary, syntax.OpNoWordBoundary:
				// Zero-width: the prefix comes from the next element.
				continue
			}
			return prefixLiterals(sub, latin1)
		}
		return nil

	case syntax.OpAlternate:
		var all []string
		for _, sub := range re.Sub {
			lits := prefixLiterals(sub, latin1)
			if lits == nil {
				return nil
			}
			all = append(all, lits...)
			if len(all) > maxPrefixLiterals {
				return nil
			}
		}
		return all

	case syntax.OpPlus:
		// One iteration is mandatory, so its prefix is required.
		return prefixLiterals(re.Sub[0], latin1)
	}
	return nil
}
