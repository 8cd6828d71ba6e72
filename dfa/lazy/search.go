package lazy

import (
	"github.com/Saad505/re2/nfa"
)

// SearchForward scans text[from:to] left to right and returns the byte
// offset where the match ends, or -1 if there is none. Zero-width
// assertions observe the full text, so a restricted range sees its real
// surroundings.
//
// FirstMatch runs the leftmost-first flavor (match-truncated state sets) and
// returns where the preferred match of the leftmost start ends; LongestMatch
// returns the last accepting position of the leftmost start; FullMatch
// requires acceptance exactly at to. The match start is not reported;
// compose with SearchReverse to recover it.
func (d *DFA) SearchForward(text string, from, to int, anchored bool, kind nfa.Kind) (int, error) {
	if d.unsupported {
		return -1, ErrUnsupported
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.startState()
	if err != nil {
		return -1, err
	}
	trunc := kind == nfa.FirstMatch
	injecting := !anchored
	lastMatch := -1

	pos := from
	for {
		bits := nfa.ContextAt(text, pos, d.latin1)
		if d.canMatch(cur, bits) {
			switch kind {
			case nfa.FirstMatch, nfa.LongestMatch:
				lastMatch = pos
				injecting = false
			case nfa.FullMatch:
				if pos == to {
					return pos, nil
				}
			}
		}
		if pos >= to {
			break
		}
		r, width := nfa.DecodeRune(text, pos, d.latin1)
		next, err := d.transition(cur, d.classOf(r), bits, injecting, trunc)
		if err != nil {
			return -1, err
		}
		if next == nil {
			// No live instruction survives this rune.
			if !injecting {
				return lastMatch, nil
			}
			next, err = d.startState()
			if err != nil {
				return -1, err
			}
		}
		cur = next
		pos += width
	}
	if kind == nfa.FullMatch {
		return -1, nil
	}
	return lastMatch, nil
}

// SearchReverse scans text[from:to] right to left with the reversed program,
// anchored at to, and returns the byte offset where the match starts, or -1.
// With LongestMatch it reports the smallest start, which is how the front
// end recovers the beginning of a match whose end the forward scan found.
func (d *DFA) SearchReverse(text string, from, to int, kind nfa.Kind) (int, error) {
	if d.unsupported {
		return -1, ErrUnsupported
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.startState()
	if err != nil {
		return -1, err
	}
	trunc := kind == nfa.FirstMatch
	lastMatch := -1

	pos := to
	for {
		// Assertions are predicates on original text positions; the scan
		// direction does not change their context.
		bits := nfa.ContextAt(text, pos, d.latin1)
		if d.canMatch(cur, bits) {
			lastMatch = pos
			if kind == nfa.FirstMatch {
				return lastMatch, nil
			}
		}
		if pos <= from {
			break
		}
		r, width := nfa.DecodeLastRune(text, pos, d.latin1)
		next, err := d.transition(cur, d.classOf(r), bits, false, trunc)
		if err != nil {
			return -1, err
		}
		if next == nil {
			return lastMatch, nil
		}
		cur = next
		pos -= width
	}
	return lastMatch, nil
}
