// Package re2 is the matching front end of an automata-based regular
// expression library.
//
// A compiled pattern is matched by one of several engines: a lazy DFA that
// finds match bounds fastest but tracks no captures, a one-pass DFA for
// programs without matching ambiguity, a bounded backtracker with
// deterministic memory, and a PikeVM that handles everything. The front end
// picks an engine per call from the pattern shape, the anchoring, the input
// size, and the capture demand, and falls back down the ladder when an
// engine gives up. None of this is visible in the results: every engine
// returns the same match.
//
// Construction never fails; an invalid pattern yields an inert Regexp whose
// operations all report "no match" and whose Error and ErrorCode describe
// the problem:
//
//	re := re2.Compile(`(\d+)-(\d+)`)
//	var a, b int
//	if re2.FullMatch("42-17", re, re2.IntArg(&a), re2.IntArg(&b)) {
//		// a == 42, b == 17
//	}
package re2

import (
	"regexp/syntax"
	"sync"

	"github.com/Saad505/re2/dfa/lazy"
	"github.com/Saad505/re2/dfa/onepass"
	"github.com/Saad505/re2/literal"
	"github.com/Saad505/re2/nfa"
	"github.com/Saad505/re2/prefilter"
)

// Regexp is a compiled pattern. It is immutable after construction except
// for fields built lazily under an internal mutex (the reverse program, the
// named-group map, and the error state should the reverse build fail), so a
// Regexp is safe for concurrent use.
type Regexp struct {
	pattern string
	options Options
	latin1  bool

	entire     *syntax.Regexp
	suffix     *syntax.Regexp
	simplified *syntax.Regexp

	prefix         string
	prefixFoldCase bool
	anchorStart    bool
	anchorEnd      bool

	prog      *syntax.Prog
	fdfa      *lazy.DFA
	onepass   *onepass.DFA
	isOnePass bool
	numCaps   int
	pf        prefilter.Prefilter

	mu          sync.Mutex
	rprog       *syntax.Prog
	rdfa        *lazy.DFA
	namedGroups map[string]int
	errText     string
	errCode     ErrorCode
	errArg      string
}

// Compile compiles pattern with DefaultOptions. Compilation never fails:
// check Ok or ErrorCode on the result. An invalid Regexp is inert; every
// matching operation on it reports no match.
func Compile(pattern string) *Regexp {
	return CompileWithOptions(pattern, DefaultOptions())
}

// MustCompile compiles pattern with DefaultOptions and panics if it is
// invalid. Use for patterns known valid at build time.
func MustCompile(pattern string) *Regexp {
	re := Compile(pattern)
	if !re.Ok() {
		panic("re2: Compile(`" + pattern + "`): " + re.Error())
	}
	return re
}

// CompileWithOptions compiles pattern under the given options.
func CompileWithOptions(pattern string, options Options) *Regexp {
	re := &Regexp{
		pattern: pattern,
		options: options,
		latin1:  options.Encoding == EncodingLatin1,
		numCaps: -1,
	}
	re.init()
	return re
}

// init parses and compiles the pattern, populating either the programs or
// the error state.
func (re *Regexp) init() {
	flags := syntax.ClassNL
	if !re.options.PosixSyntax {
		flags |= syntax.PerlX | syntax.UnicodeGroups | syntax.OneLine
	} else {
		if re.options.PerlClasses || re.options.WordBoundary {
			flags |= syntax.PerlX
		}
		if re.options.OneLine {
			flags |= syntax.OneLine
		}
	}
	if re.options.Literal {
		flags |= syntax.Literal
	}
	if re.options.NeverNL {
		flags &^= syntax.ClassNL
	}
	if !re.options.CaseSensitive {
		flags |= syntax.FoldCase
	}

	parseText := re.pattern
	if re.latin1 {
		parseText = latin1ToUTF8(re.pattern)
	}

	parsed, err := syntax.Parse(parseText, flags)
	if err != nil {
		serr, ok := err.(*syntax.Error)
		if ok {
			re.errCode = syntaxErrorCode(serr.Code)
			re.errArg = serr.Expr
		} else {
			re.errCode = ErrorInternal
		}
		re.errText = err.Error()
		if re.options.LogErrors {
			re.options.logger().Errorf("error parsing %q: %v", re.pattern, err)
		}
		return
	}
	re.entire = parsed
	re.numCaps = parsed.MaxCap()

	if prefix, fold, suffix, ok := literal.RequiredPrefix(parsed, re.latin1); ok {
		re.prefix = prefix
		re.prefixFoldCase = fold
		re.suffix = suffix
	} else {
		re.suffix = parsed
	}

	re.anchorStart = nfa.IsStartAnchored(re.suffix)
	re.anchorEnd = nfa.IsEndAnchored(re.suffix)

	// Two thirds of the budget go to the forward program: the forward side
	// runs two DFA flavors, the reverse side one.
	re.simplified = re.suffix.Simplify()
	prog, err := syntax.Compile(re.simplified)
	if err != nil || progMem(prog) > re.options.maxMem()*2/3 {
		if re.options.LogErrors {
			re.options.logger().Errorf("error compiling %q", re.pattern)
		}
		re.errText = "pattern too large - compile failed"
		re.errCode = ErrorPatternTooLarge
		return
	}
	re.prog = prog

	// The one-pass machine is built now rather than on demand: its memory
	// comes out of the forward share, which is hard to carve up once the
	// DFA exists.
	if op, err := onepass.Build(prog, re.latin1); err == nil {
		re.onepass = op
		re.isOnePass = true
	}

	re.fdfa = lazy.New(prog, lazy.Config{
		Latin1: re.latin1,
		MaxMem: re.options.maxMem() * 2 / 3,
	})

	if re.prefix == "" && !nfa.IsStartAnchored(re.suffix) {
		re.pf = prefilter.New(literal.ExtractPrefixSet(re.suffix, re.latin1))
	}
}

// reverseDFA returns the lazily built reverse-scan DFA, or nil when the
// reverse program exceeded its budget (which poisons the pattern).
func (re *Regexp) reverseDFA() *lazy.DFA {
	re.mu.Lock()
	defer re.mu.Unlock()
	if re.rdfa == nil && re.errCode == NoError {
		rprog, err := syntax.Compile(reverseRegexp(re.simplified))
		if err != nil || progMem(rprog) > re.options.maxMem()/3 {
			if re.options.LogErrors {
				re.options.logger().Errorf("error reverse compiling %q", re.pattern)
			}
			re.errText = "pattern too large - reverse compile failed"
			re.errCode = ErrorPatternTooLarge
			return nil
		}
		re.rprog = rprog
		re.rdfa = lazy.New(rprog, lazy.Config{
			Latin1:   re.latin1,
			Reversed: true,
			MaxMem:   re.options.maxMem() / 3,
		})
	}
	return re.rdfa
}

// Ok reports whether the pattern compiled and has not been poisoned by a
// reverse-compile failure.
func (re *Regexp) Ok() bool {
	re.mu.Lock()
	defer re.mu.Unlock()
	return re.errCode == NoError
}

// Error returns the compile error text, or "" when the pattern is usable.
func (re *Regexp) Error() string {
	re.mu.Lock()
	defer re.mu.Unlock()
	return re.errText
}

// ErrorCode returns the compile error classification.
func (re *Regexp) ErrorCode() ErrorCode {
	re.mu.Lock()
	defer re.mu.Unlock()
	return re.errCode
}

// ErrorArg returns the fragment of the pattern the parser blamed.
func (re *Regexp) ErrorArg() string {
	re.mu.Lock()
	defer re.mu.Unlock()
	return re.errArg
}

// String returns the pattern source text.
func (re *Regexp) String() string {
	return re.pattern
}

// Options returns the options the pattern was compiled with.
func (re *Regexp) Options() Options {
	return re.options
}

// ProgramSize returns the number of instructions in the forward program,
// or -1 for an invalid pattern. A rough complexity measure.
func (re *Regexp) ProgramSize() int {
	if re.prog == nil {
		return -1
	}
	return len(re.prog.Inst)
}

// NumberOfCapturingGroups returns the number of capturing groups in the
// pattern, or -1 for an invalid pattern.
func (re *Regexp) NumberOfCapturingGroups() int {
	return re.numCaps
}

// NamedCapturingGroups returns the mapping from capture name to 1-based
// group index. The map is built on first use and shared; callers must not
// modify it.
func (re *Regexp) NamedCapturingGroups() map[string]int {
	re.mu.Lock()
	defer re.mu.Unlock()
	if re.errCode != NoError || re.entire == nil {
		return map[string]int{}
	}
	if re.namedGroups == nil {
		groups := make(map[string]int)
		for i, name := range re.entire.CapNames() {
			if name != "" {
				groups[name] = i
			}
		}
		re.namedGroups = groups
	}
	return re.namedGroups
}
