package re2

import (
	"regexp/syntax"
)

// instMemBytes is the assumed memory footprint of one compiled instruction,
// used to hold programs to the Options.MaxMem budget.
const instMemBytes = 40

// progMem estimates the memory footprint of a compiled program.
func progMem(p *syntax.Prog) int64 {
	return int64(len(p.Inst)) * instMemBytes
}

// reverseRegexp builds the structural reversal of a simplified parse tree:
// concatenations and literals reverse, everything else keeps its shape.
// Zero-width assertions are left as they are; the reverse scan evaluates
// them against original text positions, which makes op swapping unnecessary.
// Shared leaves are not copied; modified nodes are.
func reverseRegexp(re *syntax.Regexp) *syntax.Regexp {
	switch re.Op {
	case syntax.OpLiteral:
		n := copyNode(re)
		n.Rune = append([]rune(nil), re.Rune...)
		for i, j := 0, len(n.Rune)-1; i < j; i, j = i+1, j-1 {
			n.Rune[i], n.Rune[j] = n.Rune[j], n.Rune[i]
		}
		return n

	case syntax.OpConcat:
		n := copyNode(re)
		n.Sub = make([]*syntax.Regexp, len(re.Sub))
		for i, sub := range re.Sub {
			n.Sub[len(re.Sub)-1-i] = reverseRegexp(sub)
		}
		return n

	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest,
		syntax.OpRepeat, syntax.OpAlternate:
		n := copyNode(re)
		n.Sub = make([]*syntax.Regexp, len(re.Sub))
		for i, sub := range re.Sub {
			n.Sub[i] = reverseRegexp(sub)
		}
		return n
	}
	return re
}

func copyNode(re *syntax.Regexp) *syntax.Regexp {
	n := new(syntax.Regexp)
	*n = *re
	n.Sub = nil
	n.Sub0 = [1]*syntax.Regexp{}
	return n
}

// latin1ToUTF8 widens each byte of s to the rune with the same value, so the
// UTF-8 based parser sees Latin-1 bytes as their code points.
func latin1ToUTF8(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			rs := make([]rune, len(s))
			for j := 0; j < len(s); j++ {
				rs[j] = rune(s[j])
			}
			return string(rs)
		}
	}
	return s
}
