package lazy

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"

	"github.com/Saad505/re2/literal"
)

// PossibleMatchRange computes byte strings bounding every string this
// program can match: min <= m < max for every match m. maxlen caps the
// length of the bounds in bytes. Returns false when no useful bounds can be
// computed (unsupported program, exhausted cache, or an unbounded upper
// walk).
//
// The walk follows the determinized automaton greedily: the lower bound
// always takes the smallest live rune and stops at the first accepting
// position; the upper bound takes the largest live rune and is rounded up to
// a lexicographic successor, which keeps it an upper bound under truncation
// and dead ends.
func (d *DFA) PossibleMatchRange(maxlen int) (min, max string, ok bool) {
	if d.unsupported || d.reversed || maxlen <= 0 {
		return "", "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	lo, ok := d.walk(maxlen, false)
	if !ok {
		return "", "", false
	}
	hi, ok := d.walk(maxlen, true)
	if !ok {
		return "", "", false
	}
	hi = literal.PrefixSuccessor(hi)
	if hi == "" {
		return "", "", false
	}
	return lo, hi, true
}

// walk follows transitions from the start state, taking the smallest
// (largest, when high is set) live rune at each step, for at most maxlen
// bytes. The low walk stops at the first accepting position; the upper walk
// runs until a dead end or the length cap.
func (d *DFA) walk(maxlen int, high bool) (string, bool) {
	cur, err := d.startState()
	if err != nil {
		return "", false
	}
	prev := rune(-1)
	var out []byte
	for len(out) < maxlen {
		if !high && d.canMatch(cur, syntax.EmptyOpContext(prev, -1)) {
			break
		}
		next, r, err := d.step(cur, prev, high)
		if err != nil {
			return "", false
		}
		if next == nil {
			if len(out) == 0 && !d.canMatch(cur, syntax.EmptyOpContext(prev, -1)) {
				// The program matches nothing at all.
				return "", false
			}
			break
		}
		out = d.appendRune(out, r)
		prev = r
		cur = next
	}
	return string(out), true
}

// step finds the extreme class with a live transition out of cur and returns
// the target together with the extreme rune of that class. A nil state means
// no class has a live transition.
func (d *DFA) step(cur *state, prev rune, high bool) (*state, rune, error) {
	classes := int32(len(d.bounds))
	for i := int32(0); i < classes; i++ {
		class := i
		if high {
			class = classes - 1 - i
		}
		r := d.bounds[class]
		if high {
			r = d.classMax(class)
		}
		bits := syntax.EmptyOpContext(prev, r)
		t, err := d.transition(cur, class, bits, false, false)
		if err != nil {
			return nil, 0, err
		}
		if t != nil {
			return t, r, nil
		}
	}
	return nil, 0, nil
}

// classMax returns the largest rune of the class.
func (d *DFA) classMax(class int32) rune {
	top := unicode.MaxRune
	if d.latin1 {
		top = 0xFF
	}
	if int(class)+1 < len(d.bounds) && d.bounds[class+1]-1 < top {
		return d.bounds[class+1] - 1
	}
	return top
}

func (d *DFA) appendRune(out []byte, r rune) []byte {
	if d.latin1 {
		return append(out, byte(r))
	}
	return utf8.AppendRune(out, r)
}
