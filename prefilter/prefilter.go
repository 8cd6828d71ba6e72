// Package prefilter narrows unanchored searches using literal prefixes
// extracted from the pattern.
//
// A prefilter never decides a match. It answers one question: given that
// every match must start with one of a known set of literals, what is the
// earliest position a match could start at? The orchestrator starts the real
// engine scan there, or skips the scan entirely when there is no candidate.
//
// Single literals are found with the SWAR substring search; sets of literals
// use an Aho-Corasick automaton.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/Saad505/re2/simd"
)

// Prefilter reports a lower bound on where a match can start.
type Prefilter interface {
	// ScanStart returns a position p >= from such that no match starts in
	// text[from:p], or -1 when no match can start at or after from.
	ScanStart(text string, from int) int
}

// New builds a prefilter for the given literal prefix set. Returns nil when
// the set is empty or the automaton cannot be built; callers treat a nil
// prefilter as "no filtering".
func New(lits []string) Prefilter {
	switch len(lits) {
	case 0:
		return nil
	case 1:
		return &literalPrefilter{lit: lits[0]}
	}
	b := ahocorasick.NewBuilder()
	maxLen := 0
	for _, l := range lits {
		b.AddPattern([]byte(l))
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	auto, err := b.Build()
	if err != nil {
		return nil
	}
	return &multiPrefilter{auto: auto, maxLen: maxLen}
}

// literalPrefilter filters on a single required literal prefix.
type literalPrefilter struct {
	lit string
}

func (p *literalPrefilter) ScanStart(text string, from int) int {
	i := simd.Memmem(text[from:], p.lit)
	if i < 0 {
		return -1
	}
	return from + i
}

// multiPrefilter filters on a set of literal prefixes with an Aho-Corasick
// automaton. The automaton reports the occurrence with the earliest end;
// an occurrence with an earlier start can end no earlier, so end-maxLen is a
// safe lower bound on every occurrence start, whatever the match semantics
// of the automaton.
type multiPrefilter struct {
	auto   *ahocorasick.Automaton
	maxLen int
}

func (p *multiPrefilter) ScanStart(text string, from int) int {
	m := p.auto.Find([]byte(text), from)
	if m == nil {
		return -1
	}
	start := m.End - p.maxLen
	if start < from {
		start = from
	}
	return start
}
