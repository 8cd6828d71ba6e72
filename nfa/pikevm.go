package nfa

import (
	"regexp/syntax"
)

// PikeVM executes a compiled program by breadth-first simulation, carrying
// capture slots on every thread. It is the baseline engine: it handles any
// program, any anchor, and any match kind in O(len(prog) * len(text)) time,
// at the cost of per-thread capture bookkeeping.
//
// A PikeVM holds per-search scratch state and is not safe for concurrent use;
// callers create one per search (construction is two small allocations) or
// pool them.
type PikeVM struct {
	prog   *syntax.Prog
	latin1 bool

	clist *queue
	nlist *queue
	pool  []*thread

	matched  bool
	matchcap []int
}

// thread is one live path through the program, with its capture slots.
type thread struct {
	inst *syntax.Inst
	cap  []int
}

// queue is a sparse thread queue: O(1) insert and membership, with dense
// iteration in priority (insertion) order.
type queue struct {
	sparse []uint32
	dense  []queueEntry
}

type queueEntry struct {
	pc uint32
	t  *thread
}

func (q *queue) contains(pc uint32) bool {
	i := q.sparse[pc]
	return i < uint32(len(q.dense)) && q.dense[i].pc == pc
}

func (q *queue) clear() {
	q.dense = q.dense[:0]
}

// NewPikeVM creates a PikeVM for the given program. Latin-1 mode treats each
// byte as one rune instead of decoding UTF-8.
func NewPikeVM(prog *syntax.Prog, latin1 bool) *PikeVM {
	n := len(prog.Inst)
	return &PikeVM{
		prog:   prog,
		latin1: latin1,
		clist:  &queue{sparse: make([]uint32, n), dense: make([]queueEntry, 0, n)},
		nlist:  &queue{sparse: make([]uint32, n), dense: make([]queueEntry, 0, n)},
	}
}

// Search runs the program over text[from:to]. Zero-width assertions observe
// the full text, so a restricted range still sees its real surroundings.
//
// caps receives the match bounds and capture slots as byte offsets into text:
// caps[0],caps[1] bound the whole match, caps[2k],caps[2k+1] bound group k,
// -1 marks a group that did not participate. A nil or empty caps asks only
// whether a match exists. Returns whether a match (of the requested kind)
// was found.
func (m *PikeVM) Search(text string, from, to int, anchor Anchor, kind Kind, caps []int) bool {
	m.matched = false
	if cap(m.matchcap) < len(caps) {
		m.matchcap = make([]int, len(caps))
	} else {
		m.matchcap = m.matchcap[:len(caps)]
	}
	for i := range m.matchcap {
		m.matchcap[i] = -1
	}
	m.clist.clear()
	m.nlist.clear()

	// Scratch capture slots used while injecting start threads.
	inject := make([]int, len(caps))

	pos := from
	for {
		if len(m.clist.dense) == 0 {
			if m.matched {
				break
			}
			if anchor == Anchored && pos > from {
				break
			}
		}
		if !m.matched && (anchor == Unanchored || pos == from) && pos <= to {
			for i := range inject {
				inject[i] = -1
			}
			if len(inject) > 0 {
				inject[0] = pos
			}
			bits := ContextAt(text, pos, m.latin1)
			m.add(m.clist, uint32(m.prog.Start), pos, inject, bits, nil)
		}
		if len(m.clist.dense) == 0 && pos >= to {
			break
		}

		r := rune(-1)
		width := 0
		if pos < to {
			r, width = DecodeRune(text, pos, m.latin1)
		}
		nextBits := ContextAt(text, pos+width, m.latin1)
		if m.step(text, pos, to, r, width, nextBits, kind, len(caps) == 0) {
			// Existence established and nothing further can improve it.
			break
		}
		if pos >= to {
			break
		}
		pos += width
		m.clist, m.nlist = m.nlist, m.clist
		m.nlist.clear()
	}

	copy(caps, m.matchcap)
	return m.matched
}

// step advances every thread in clist across the rune r at pos, filling
// nlist with the surviving threads. Returns true when the search can stop
// immediately (existence-only query satisfied).
func (m *PikeVM) step(text string, pos, to int, r rune, width int, nextBits syntax.EmptyOp, kind Kind, existOnly bool) bool {
	for j := 0; j < len(m.clist.dense); j++ {
		t := m.clist.dense[j].t
		if t == nil {
			continue
		}
		inst := t.inst
		switch inst.Op {
		case syntax.InstMatch:
			if kind == FullMatch && pos != to {
				break
			}
			if existOnly {
				m.matched = true
				m.freeQueue(m.clist, j)
				return true
			}
			record := true
			if kind == LongestMatch && m.matched {
				record = t.cap[0] < m.matchcap[0] ||
					(t.cap[0] == m.matchcap[0] && pos > m.matchcap[1])
			}
			if record {
				copy(m.matchcap, t.cap)
				m.matchcap[1] = pos
			}
			m.matched = true
			if kind != LongestMatch {
				// Threads after j are lower priority; the leftmost-first
				// winner can only be replaced by an earlier thread.
				m.freeQueue(m.clist, j+1)
			}

		case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
			if pos < to && MatchesRune(inst, r) {
				t = m.add(m.nlist, inst.Out, pos+width, t.cap, nextBits, t)
			}
		}
		if t != nil {
			m.free(t)
			m.clist.dense[j].t = nil
		}
	}
	m.clist.clear()
	return false
}

// add pushes pc and its epsilon closure onto q at position pos, under the
// zero-width context bits. The spare thread t, if non-nil, is reused for the
// first consuming instruction reached; the (possibly consumed) spare is
// returned.
func (m *PikeVM) add(q *queue, pc uint32, pos int, cap []int, bits syntax.EmptyOp, t *thread) *thread {
	if q.contains(pc) {
		return t
	}
	q.sparse[pc] = uint32(len(q.dense))
	q.dense = append(q.dense, queueEntry{pc: pc})
	j := len(q.dense) - 1

	inst := &m.prog.Inst[pc]
	switch inst.Op {
	case syntax.InstFail:
		// dead end

	case syntax.InstAlt, syntax.InstAltMatch:
		t = m.add(q, inst.Out, pos, cap, bits, t)
		t = m.add(q, inst.Arg, pos, cap, bits, t)

	case syntax.InstEmptyWidth:
		if syntax.EmptyOp(inst.Arg)&^bits == 0 {
			t = m.add(q, inst.Out, pos, cap, bits, t)
		}

	case syntax.InstNop:
		t = m.add(q, inst.Out, pos, cap, bits, t)

	case syntax.InstCapture:
		if int(inst.Arg) < len(cap) {
			old := cap[inst.Arg]
			cap[inst.Arg] = pos
			m.add(q, inst.Out, pos, cap, bits, nil)
			cap[inst.Arg] = old
		} else {
			t = m.add(q, inst.Out, pos, cap, bits, t)
		}

	case syntax.InstMatch, syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
		if t == nil {
			t = m.alloc(len(cap))
		}
		t.inst = inst
		copy(t.cap, cap)
		q.dense[j].t = t
		t = nil
	}
	return t
}

// freeQueue returns the threads at and after index j to the pool.
func (m *PikeVM) freeQueue(q *queue, j int) {
	for k := j; k < len(q.dense); k++ {
		if q.dense[k].t != nil {
			m.free(q.dense[k].t)
			q.dense[k].t = nil
		}
	}
	q.dense = q.dense[:j]
}

func (m *PikeVM) alloc(ncap int) *thread {
	if n := len(m.pool); n > 0 {
		t := m.pool[n-1]
		m.pool = m.pool[:n-1]
		if cap(t.cap) < ncap {
			t.cap = make([]int, ncap)
		}
		t.cap = t.cap[:ncap]
		return t
	}
	return &thread{cap: make([]int, ncap)}
}

func (m *PikeVM) free(t *thread) {
	m.pool = append(m.pool, t)
}
