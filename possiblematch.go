package re2

import (
	"github.com/Saad505/re2/literal"
)

// PossibleMatchRange computes byte strings min and max such that every
// string the pattern matches satisfies min <= m < max, with both bounds at
// most maxlen bytes. Useful for turning a pattern into a key-range scan.
// Returns false when nothing useful is known (invalid pattern, or the
// program gave no bounds and there is no literal prefix).
//
// The bounds combine the required literal prefix (for a case-folded prefix,
// min is the ASCII-uppercased form) with a greedy walk of the forward
// automaton over the remaining length budget; when the walk contributes
// nothing, max falls back to the lexicographic successor of the prefix.
func (re *Regexp) PossibleMatchRange(min, max *string, maxlen int) bool {
	if re.prog == nil {
		return false
	}

	n := len(re.prefix)
	if n > maxlen {
		n = maxlen
	}
	pmin := re.prefix[:n]
	pmax := re.prefix[:n]
	if re.prefixFoldCase {
		// The stored prefix is lowercase; the smallest matching form is the
		// uppercased one.
		b := []byte(pmin)
		for i := range b {
			if 'a' <= b[i] && b[i] <= 'z' {
				b[i] -= 'a' - 'A'
			}
		}
		pmin = string(b)
	}

	if rest := maxlen - n; rest > 0 {
		if dmin, dmax, ok := re.fdfa.PossibleMatchRange(rest); ok {
			*min = pmin + dmin
			*max = pmax + dmax
			return true
		}
	}
	if pmax == "" {
		*min = ""
		*max = ""
		return false
	}
	// The program contributed nothing, but the prefix still bounds the
	// match: round it up to admit any suffix.
	pmax = literal.PrefixSuccessor(pmax)
	if pmax == "" {
		*min = ""
		*max = ""
		return false
	}
	*min = pmin
	*max = pmax
	return true
}
