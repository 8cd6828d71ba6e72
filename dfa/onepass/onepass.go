// Package onepass implements a deterministic capture-tracking engine for
// one-pass programs.
//
// A program is one-pass when, at every step of an anchored match, at most one
// alternative can accept the next rune: no input ever requires the engine to
// weigh two nondeterministic choices. For such programs capture positions can
// be assigned during a single left-to-right scan with no per-thread state,
// which makes this the fastest capture-capable engine on the inputs it
// accepts.
//
// Build performs the one-pass check while flattening the program; it is
// conservative and fails with ErrNotOnePass on any potential ambiguity.
package onepass

import (
	"regexp/syntax"

	"github.com/Saad505/re2/nfa"
)

// MaxCaptures is the largest capture count (whole match plus groups) the
// front end will request from this engine. Larger requests go to engines
// that carry per-thread capture state.
const MaxCaptures = 5

// ErrNotOnePass reports that the program admits ambiguity and cannot be
// flattened into a one-pass automaton.
var ErrNotOnePass = &BuildError{Message: "onepass: program is not one-pass"}

// BuildError is returned when Build rejects a program.
type BuildError struct {
	Message string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return e.Message
}

// DFA is a flattened one-pass automaton. Nodes correspond to program
// counters reached after consuming a rune; edges carry the rune range, the
// zero-width conditions collected on the epsilon path, and the capture slots
// assigned along it.
//
// A DFA is immutable after Build and safe for concurrent use.
type DFA struct {
	prog   *syntax.Prog
	latin1 bool
	nodes  []node
	start  int32
}

type node struct {
	edges []edge

	// hasMatch marks an epsilon path to the match instruction; matchCond and
	// matchCaps describe it. matchRank orders it against the edges: edges
	// with index < matchRank outrank the match in leftmost-first semantics.
	hasMatch  bool
	matchCond syntax.EmptyOp
	matchCaps []uint32
	matchRank int
}

type edge struct {
	lo, hi rune
	cond   syntax.EmptyOp
	caps   []uint32
	next   int32
}

// Build flattens prog into a one-pass DFA, or fails with ErrNotOnePass.
func Build(prog *syntax.Prog, latin1 bool) (*DFA, error) {
	d := &DFA{prog: prog, latin1: latin1}
	index := make(map[uint32]int32)

	var build func(pc uint32) (int32, error)
	build = func(pc uint32) (int32, error) {
		if id, ok := index[pc]; ok {
			return id, nil
		}
		id := int32(len(d.nodes))
		index[pc] = id
		d.nodes = append(d.nodes, node{})

		var n node
		onPath := make(map[uint32]bool)
		var walk func(pc uint32, cond syntax.EmptyOp, caps []uint32) error
		walk = func(pc uint32, cond syntax.EmptyOp, caps []uint32) error {
			if onPath[pc] {
				// An epsilon revisit means two distinct paths reach the same
				// choice point; give up rather than reason about it.
				return ErrNotOnePass
			}
			onPath[pc] = true
			defer delete(onPath, pc)

			inst := &prog.Inst[pc]
			switch inst.Op {
			case syntax.InstFail:
				return nil
			case syntax.InstAlt, syntax.InstAltMatch:
				if err := walk(inst.Out, cond, caps); err != nil {
					return err
				}
				return walk(inst.Arg, cond, caps)
			case syntax.InstNop:
				return walk(inst.Out, cond, caps)
			case syntax.InstEmptyWidth:
				return walk(inst.Out, cond|syntax.EmptyOp(inst.Arg), caps)
			case syntax.InstCapture:
				caps = append(caps[:len(caps):len(caps)], inst.Arg)
				return walk(inst.Out, cond, caps)
			case syntax.InstMatch:
				if n.hasMatch {
					return ErrNotOnePass
				}
				n.hasMatch = true
				n.matchCond = cond
				n.matchCaps = caps
				n.matchRank = len(n.edges)
				return nil
			case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
				for _, rr := range nfa.Ranges(inst) {
					for _, e := range n.edges {
						if rr[0] <= e.hi && e.lo <= rr[1] {
							return ErrNotOnePass
						}
					}
					// next temporarily holds the target pc; it becomes a
					// node id once the walk is done, which keeps the
					// recursion out of the walk itself.
					n.edges = append(n.edges, edge{lo: rr[0], hi: rr[1], cond: cond, caps: caps, next: int32(inst.Out)})
				}
				return nil
			}
			return nil
		}
		if err := walk(pc, 0, nil); err != nil {
			return 0, err
		}
		for i := range n.edges {
			tid, err := build(uint32(n.edges[i].next))
			if err != nil {
				return 0, err
			}
			n.edges[i].next = tid
		}
		d.nodes[id] = n
		return id, nil
	}

	start, err := build(uint32(prog.Start))
	if err != nil {
		return nil, err
	}
	d.start = start
	return d, nil
}

// Search runs an anchored match over text[from:to]; the capture contract
// matches PikeVM.Search. Unanchored searches are not supported: the one-pass
// property only holds from the program start.
func (d *DFA) Search(text string, from, to int, kind nfa.Kind, caps []int) bool {
	slots := make([]int, len(caps))
	matchcap := make([]int, len(caps))
	for i := range slots {
		slots[i] = -1
	}
	if len(slots) > 0 {
		slots[0] = from
	}
	matched := false

	cur := &d.nodes[d.start]
	pos := from
	for {
		bits := nfa.ContextAt(text, pos, d.latin1)

		var viable *edge
		var viableIdx int
		var r rune
		width := 0
		if pos < to {
			r, width = nfa.DecodeRune(text, pos, d.latin1)
			for i := range cur.edges {
				e := &cur.edges[i]
				if e.lo <= r && r <= e.hi {
					if e.cond&^bits != 0 {
						break
					}
					viable = e
					viableIdx = i
					break
				}
			}
		}

		if cur.hasMatch && cur.matchCond&^bits == 0 {
			switch kind {
			case nfa.FullMatch:
				if pos == to {
					d.record(matchcap, slots, cur.matchCaps, pos)
					matched = true
				}
			case nfa.FirstMatch:
				d.record(matchcap, slots, cur.matchCaps, pos)
				matched = true
				if viable == nil || viableIdx >= cur.matchRank {
					// The match outranks any way forward.
					copy(caps, matchcap)
					return true
				}
			case nfa.LongestMatch:
				d.record(matchcap, slots, cur.matchCaps, pos)
				matched = true
			}
		}

		if viable == nil || pos >= to {
			break
		}
		for _, slot := range viable.caps {
			if int(slot) < len(slots) {
				slots[slot] = pos
			}
		}
		cur = &d.nodes[viable.next]
		pos += width
	}

	if matched {
		copy(caps, matchcap)
	}
	return matched
}

// record snapshots the working slots plus the match path's capture ops at
// the match position.
func (d *DFA) record(matchcap, slots []int, capOps []uint32, pos int) {
	copy(matchcap, slots)
	for _, slot := range capOps {
		if int(slot) < len(matchcap) {
			matchcap[slot] = pos
		}
	}
	if len(matchcap) > 1 {
		matchcap[1] = pos
	}
}
