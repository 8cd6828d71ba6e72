// Package lazy implements a lazy DFA over compiled programs.
//
// States are determinized on demand during a search and cached, so the
// automaton only ever materializes the states a real input reaches. The
// alphabet is reduced to rune equivalence classes derived from the program's
// rune ranges: two runes in the same class are indistinguishable to every
// instruction, so they share transitions.
//
// The engine trades capability for speed: it reports only where a match ends
// (or, scanning in reverse, where it starts), never capture positions, and it
// refuses programs containing word-boundary assertions. When the state cache
// would exceed its memory budget the search fails with ErrCacheFull and the
// caller falls back to a capture-capable engine.
package lazy

import (
	"encoding/binary"
	"regexp/syntax"
	"sort"
	"sync"
	"unicode"

	"github.com/Saad505/re2/internal/sparse"
	"github.com/Saad505/re2/nfa"
)

// Config controls DFA construction.
type Config struct {
	// Latin1 treats every input byte as one rune.
	Latin1 bool

	// Reversed marks a program compiled from a reversed pattern; searches
	// scan the text right to left and report the match start.
	Reversed bool

	// MaxMem bounds the memory of the state cache, in bytes.
	MaxMem int64
}

// approxStateBytes is the assumed footprint of one cached state (instruction
// set, transition map, match cache). Used to turn MaxMem into a state count.
const approxStateBytes = 1024

// minStates is the floor below which a cache is useless; budgets smaller than
// this still get a few states so trivial programs can run.
const minStates = 16

// DFA is a lazily determinized automaton for one compiled program.
//
// A DFA is safe for concurrent use: the state cache is guarded by an internal
// mutex held for the duration of each search.
type DFA struct {
	prog        *syntax.Prog
	latin1      bool
	reversed    bool
	maxStates   int
	unsupported bool

	// bounds holds the sorted lower bounds of the rune equivalence classes.
	bounds []rune

	mu      sync.Mutex
	states  map[string]*state
	scratch *sparse.Set
}

// state is one determinized state: the set of program counters reached after
// the last consumed rune, before epsilon resolution. The set is ordered by
// thread priority (earlier means preferred), which is what lets the leftmost-
// first flavor truncate at a match.
type state struct {
	insts []uint32

	// sens is the union of zero-width assertions reachable from insts;
	// transition cache keys mask the position context down to these bits.
	sens syntax.EmptyOp

	// mayMatch is false when no path from insts reaches the match
	// instruction under any context, letting searches skip the match probe.
	mayMatch bool

	next  map[transKey]*state
	match map[syntax.EmptyOp]bool
}

// transKey distinguishes transitions by rune class, the relevant assertion
// context, whether the scan is injecting new starts, and whether the closure
// truncates at a match (the leftmost-first flavor) or keeps every thread
// (the leftmost-longest and full-match flavors).
type transKey struct {
	class  int32
	bits   syntax.EmptyOp
	inject bool
	trunc  bool
}

// New builds a lazy DFA for prog. The program is not copied; it must not be
// mutated afterwards.
func New(prog *syntax.Prog, cfg Config) *DFA {
	maxStates := int(cfg.MaxMem / approxStateBytes)
	if maxStates < minStates {
		maxStates = minStates
	}
	d := &DFA{
		prog:        prog,
		latin1:      cfg.Latin1,
		reversed:    cfg.Reversed,
		maxStates:   maxStates,
		unsupported: nfa.HasWordBoundary(prog),
		states:      make(map[string]*state),
		scratch:     sparse.New(uint32(len(prog.Inst))),
	}
	d.buildAlphabet()
	return d
}

// buildAlphabet collects the rune range boundaries of every consuming
// instruction into the sorted class lower bounds.
func (d *DFA) buildAlphabet() {
	set := map[rune]struct{}{0: {}}
	for i := range d.prog.Inst {
		inst := &d.prog.Inst[i]
		switch inst.Op {
		case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
			for _, rr := range nfa.Ranges(inst) {
				set[rr[0]] = struct{}{}
				if rr[1] < unicode.MaxRune {
					set[rr[1]+1] = struct{}{}
				}
			}
		}
	}
	d.bounds = make([]rune, 0, len(set))
	for r := range set {
		d.bounds = append(d.bounds, r)
	}
	sort.Slice(d.bounds, func(i, j int) bool { return d.bounds[i] < d.bounds[j] })
}

// classOf returns the equivalence class index of r.
func (d *DFA) classOf(r rune) int32 {
	lo, hi := 0, len(d.bounds)
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if d.bounds[mid] <= r {
			lo = mid
		} else {
			hi = mid
		}
	}
	return int32(lo)
}

// stateFor interns the canonical state for a raw instruction set. The
// caller's priority order is preserved; it is part of the state identity.
// Returns ErrCacheFull when a new state would exceed the budget.
func (d *DFA) stateFor(insts []uint32) (*state, error) {
	key := make([]byte, 4*len(insts))
	for i, pc := range insts {
		binary.BigEndian.PutUint32(key[4*i:], pc)
	}
	if s, ok := d.states[string(key)]; ok {
		return s, nil
	}
	if len(d.states) >= d.maxStates {
		return nil, ErrCacheFull
	}
	s := &state{
		insts: append([]uint32(nil), insts...),
		next:  make(map[transKey]*state),
		match: make(map[syntax.EmptyOp]bool),
	}
	d.analyze(s)
	d.states[string(key)] = s
	return s, nil
}

// analyze computes the assertion sensitivity and match reachability of a
// state by walking its full epsilon closure with every assertion assumed
// satisfiable.
func (d *DFA) analyze(s *state) {
	d.scratch.Clear()
	stack := append(make([]uint32, 0, 16), s.insts...)
	for _, pc := range stack {
		d.scratch.Insert(pc)
	}
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		inst := &d.prog.Inst[pc]
		push := func(out uint32) {
			if !d.scratch.Contains(out) {
				d.scratch.Insert(out)
				stack = append(stack, out)
			}
		}
		switch inst.Op {
		case syntax.InstAlt, syntax.InstAltMatch:
			push(inst.Out)
			push(inst.Arg)
		case syntax.InstNop, syntax.InstCapture:
			push(inst.Out)
		case syntax.InstEmptyWidth:
			s.sens |= syntax.EmptyOp(inst.Arg)
			push(inst.Out)
		case syntax.InstMatch:
			s.mayMatch = true
		}
	}
}

// resolve walks the epsilon closure of s under the given context bits,
// appending the reachable consuming instructions to consuming (in priority
// order) and reporting whether the match instruction is reachable. With
// trunc set, the walk stops at the first match reached: lower-priority
// threads can never beat it under leftmost-first semantics, so they leave
// the state set.
func (d *DFA) resolve(s *state, bits syntax.EmptyOp, consuming *[]uint32, trunc bool) bool {
	d.scratch.Clear()
	matched := false
	var walk func(pc uint32)
	walk = func(pc uint32) {
		if matched && trunc {
			return
		}
		if d.scratch.Contains(pc) {
			return
		}
		d.scratch.Insert(pc)
		inst := &d.prog.Inst[pc]
		switch inst.Op {
		case syntax.InstAlt, syntax.InstAltMatch:
			walk(inst.Out)
			walk(inst.Arg)
		case syntax.InstNop, syntax.InstCapture:
			walk(inst.Out)
		case syntax.InstEmptyWidth:
			if syntax.EmptyOp(inst.Arg)&^bits == 0 {
				walk(inst.Out)
			}
		case syntax.InstMatch:
			matched = true
		case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
			if consuming != nil {
				*consuming = append(*consuming, pc)
			}
		}
	}
	for _, pc := range s.insts {
		walk(pc)
	}
	return matched
}

// canMatch reports whether s can reach the match instruction under bits,
// caching per masked context.
func (d *DFA) canMatch(s *state, bits syntax.EmptyOp) bool {
	if !s.mayMatch {
		return false
	}
	masked := bits & s.sens
	if m, ok := s.match[masked]; ok {
		return m
	}
	m := d.resolve(s, masked, nil, false)
	s.match[masked] = m
	return m
}

// transition returns the state reached from s by consuming a rune of the
// given class under bits, determinizing and caching on first use. inject adds
// the program start to the target, modeling an unanchored scan.
func (d *DFA) transition(s *state, class int32, bits syntax.EmptyOp, inject, trunc bool) (*state, error) {
	key := transKey{class: class, bits: bits & s.sens, inject: inject, trunc: trunc}
	if t, ok := s.next[key]; ok {
		return t, nil
	}

	var consuming []uint32
	d.resolve(s, bits, &consuming, trunc)

	rep := d.bounds[class]
	var targets []uint32
	seen := make(map[uint32]struct{}, len(consuming))
	for _, pc := range consuming {
		inst := &d.prog.Inst[pc]
		if nfa.MatchesRune(inst, rep) {
			if _, dup := seen[inst.Out]; !dup {
				seen[inst.Out] = struct{}{}
				targets = append(targets, inst.Out)
			}
		}
	}
	if inject {
		start := uint32(d.prog.Start)
		if _, dup := seen[start]; !dup {
			targets = append(targets, start)
		}
	}

	var t *state
	if len(targets) > 0 {
		var err error
		t, err = d.stateFor(targets)
		if err != nil {
			return nil, err
		}
	}
	s.next[key] = t
	return t, nil
}

// startState returns the interned state holding only the program start.
func (d *DFA) startState() (*state, error) {
	return d.stateFor([]uint32{uint32(d.prog.Start)})
}
