// Package literal analyzes parse trees for the literal structure the
// matching front end exploits: the required prefix of anchored patterns,
// literal prefix sets for prefiltering, and lexicographic successors for
// range bounds.
package literal

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// RequiredPrefix reports whether re is of the form "^ literal rest" and, if
// so, returns the literal as a byte string plus the rest of the pattern with
// both the anchor and the literal removed.
//
// When foldCase is true the returned prefix is lowercase and matching must
// compare ASCII case-insensitively. Case-folded literals qualify only when
// every rune is ASCII with a plain two-letter fold orbit; runes like 'k'
// (which also folds to the Kelvin sign) would make the byte comparison drop
// matches, so they are left to the engines.
//
// latin1 selects the byte encoding of the prefix.
func RequiredPrefix(re *syntax.Regexp, latin1 bool) (prefix string, foldCase bool, suffix *syntax.Regexp, ok bool) {
	if re.Op != syntax.OpConcat {
		return "", false, nil, false
	}
	i := 0
	for i < len(re.Sub) && re.Sub[i].Op == syntax.OpBeginText {
		i++
	}
	if i == 0 || i >= len(re.Sub) {
		return "", false, nil, false
	}
	lit := re.Sub[i]
	if lit.Op != syntax.OpLiteral || len(lit.Rune) == 0 {
		return "", false, nil, false
	}

	fold := lit.Flags&syntax.FoldCase != 0
	var b []byte
	for _, r := range lit.Rune {
		if fold {
			if r >= 0x80 || !asciiOnlyFold(r) {
				return "", false, nil, false
			}
			if 'A' <= r && r <= 'Z' {
				r += 'a' - 'A'
			}
		}
		b = appendRune(b, r, latin1)
	}

	rest := re.Sub[i+1:]
	switch len(rest) {
	case 0:
		suffix = &syntax.Regexp{Op: syntax.OpEmptyMatch, Flags: re.Flags}
	case 1:
		suffix = rest[0]
	default:
		sub := make([]*syntax.Regexp, len(rest))
		copy(sub, rest)
		suffix = &syntax.Regexp{Op: syntax.OpConcat, Sub: sub, Flags: re.Flags}
	}
	return string(b), fold, suffix, true
}

// asciiOnlyFold reports whether r's simple fold orbit stays within the ASCII
// upper/lower pair.
func asciiOnlyFold(r rune) bool {
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f >= 0x80 {
			return false
		}
	}
	return true
}

func appendRune(b []byte, r rune, latin1 bool) []byte {
	if latin1 {
		return append(b, byte(r))
	}
	return utf8.AppendRune(b, r)
}
