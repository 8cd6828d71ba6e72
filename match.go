package re2

import (
	"github.com/Saad505/re2/dfa/onepass"
	"github.com/Saad505/re2/nfa"
	"github.com/Saad505/re2/simd"
)

// Anchor constrains where a match may start and end.
type Anchor int

const (
	// Unanchored allows a match anywhere in the text.
	Unanchored Anchor = iota

	// AnchorStart requires the match to start at the search position.
	AnchorStart

	// AnchorBoth requires the match to cover exactly the searched text.
	AnchorBoth
)

// maxBitStateProg is the largest program the BitState engine is considered
// for; beyond it the bit vector admits only trivially short texts.
const maxBitStateProg = 500

// Match searches text[startpos:] under the given anchoring and reports
// whether the pattern matches. On success the capture spans are stored in
// submatch as byte-offset pairs into text: submatch[0],submatch[1] bound the
// whole match and submatch[2k],submatch[2k+1] bound group k, with -1,-1 for
// a group that did not participate. Pairs beyond the pattern's group count
// are set to -1. An empty submatch asks only whether a match exists.
//
// Match composes the engines: the forward DFA locates the match end and
// filters out non-matches, the reverse DFA recovers the match start, and a
// capture-tracking engine (one-pass, BitState, or PikeVM, in that order of
// preference) fills in group positions. Any engine running out of memory
// falls through to the next; the result does not depend on the path taken.
func (re *Regexp) Match(text string, startpos int, anchor Anchor, submatch []int) bool {
	re.mu.Lock()
	bad := re.errCode != NoError
	errText := re.errText
	re.mu.Unlock()
	if bad || re.suffix == nil {
		if re.options.LogErrors {
			re.options.logger().Errorf("invalid pattern %q: %s", re.pattern, errText)
		}
		return false
	}
	if startpos < 0 || startpos > len(text) {
		return false
	}

	nsubmatch := len(submatch) / 2
	from, to := startpos, len(text)

	ncap := 1 + re.numCaps
	if ncap > nsubmatch {
		ncap = nsubmatch
	}

	// Promote the anchor when the pattern enforces more than the caller
	// asked for; the stricter dispatch paths below are faster.
	if re.anchorStart && re.anchorEnd {
		anchor = AnchorBoth
	} else if re.anchorStart && anchor != AnchorBoth {
		anchor = AnchorStart
	}

	// A factored prefix always came from a "^ literal ..." pattern, so the
	// match, if any, starts exactly at the prefix.
	prefixLen := 0
	if re.prefix != "" {
		if from > 0 {
			return false
		}
		prefixLen = len(re.prefix)
		if to-from < prefixLen {
			return false
		}
		seg := text[from : from+prefixLen]
		if re.prefixFoldCase {
			if !simd.EqualFoldASCII(re.prefix, seg) {
				return false
			}
		} else if seg != re.prefix {
			return false
		}
		from += prefixLen
		if anchor != AnchorBoth {
			anchor = AnchorStart
		}
	}

	kind := nfa.FirstMatch
	if re.options.LongestMatch || re.options.PosixSyntax {
		kind = nfa.LongestMatch
	}
	if anchor == AnchorBoth {
		kind = nfa.FullMatch
	}

	progSize := len(re.prog.Inst)
	canOnePass := re.isOnePass && ncap <= onepass.MaxCaptures
	canBitState := progSize <= maxBitStateProg
	bitStateTextMax := nfa.MaxTextLen(progSize)

	skipped := false
	searchFrom := from
	ms, me := -1, -1

	if anchor == Unanchored {
		if re.pf != nil {
			p := re.pf.ScanStart(text, searchFrom)
			if p < 0 {
				return false
			}
			searchFrom = p
		}
		e, err := re.fdfa.SearchForward(text, searchFrom, to, false, kind)
		switch {
		case err != nil:
			skipped = true
		case e < 0:
			return false
		case nsubmatch == 0:
			return true
		default:
			rdfa := re.reverseDFA()
			if rdfa == nil {
				return false
			}
			s, rerr := rdfa.SearchReverse(text, searchFrom, e, nfa.LongestMatch)
			switch {
			case rerr != nil:
				skipped = true
			case s < 0:
				if re.options.LogErrors {
					re.options.logger().Errorf("DFA inconsistency in %q", re.pattern)
				}
				return false
			default:
				ms, me = s, e
			}
		}
	} else {
		// With the start pinned, a capture-tracking engine over a short
		// text beats running the DFA first and re-scanning for captures.
		switch {
		case canOnePass && len(text) <= 4096 && (ncap > 1 || len(text) <= 8):
			skipped = true
		case canBitState && len(text) <= bitStateTextMax && ncap > 1:
			skipped = true
		default:
			e, err := re.fdfa.SearchForward(text, from, to, true, kind)
			if err != nil {
				skipped = true
			} else if e < 0 {
				return false
			} else {
				ms, me = from, e
			}
		}
	}

	if !skipped && ncap <= 1 {
		// The DFAs pinned the match exactly; nothing else to discover.
		if ncap == 1 {
			submatch[0], submatch[1] = ms, me
		}
	} else {
		f1, t1 := searchFrom, to
		kind1 := kind
		anchored1 := anchor != Unanchored
		if !skipped {
			// The DFAs found the bounds; re-run a capture engine over just
			// that range, anchored at both ends.
			f1, t1 = ms, me
			anchored1 = true
			kind1 = nfa.FullMatch
		}

		vec := make([]int, 2*ncap)
		nanchor := nfa.Unanchored
		if anchored1 {
			nanchor = nfa.Anchored
		}
		var found bool
		var engine string
		switch {
		case canOnePass && anchored1:
			engine = "OnePass"
			found = re.onepass.Search(text, f1, t1, kind1, vec)
		case canBitState && t1-f1 <= bitStateTextMax:
			engine = "BitState"
			found = nfa.NewBitState(re.prog, re.latin1).Search(text, f1, t1, nanchor, kind1, vec)
		default:
			engine = "NFA"
			found = nfa.NewPikeVM(re.prog, re.latin1).Search(text, f1, t1, nanchor, kind1, vec)
		}
		if !found {
			if !skipped && re.options.LogErrors {
				re.options.logger().Errorf("Search%s inconsistency in %q", engine, re.pattern)
			}
			return false
		}
		copy(submatch[:2*ncap], vec)
	}

	// Widen the whole-match span back over the stripped prefix.
	if prefixLen > 0 && nsubmatch > 0 {
		submatch[0] -= prefixLen
	}
	for i := 2 * ncap; i < 2*nsubmatch; i++ {
		submatch[i] = -1
	}
	return true
}
