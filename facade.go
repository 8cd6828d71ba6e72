package re2

// maxArgs caps the positional extraction targets of one variadic call.
const maxArgs = 16

// FullMatch reports whether re matches all of text, parsing each capture
// group into the corresponding Arg. The call fails when the pattern has
// fewer groups than args or when any Arg conversion fails.
//
//	var year, month int
//	re2.FullMatch("2024-06", re2.Compile(`(\d+)-(\d+)`),
//		re2.IntArg(&year), re2.IntArg(&month))
func FullMatch(text string, re *Regexp, args ...*Arg) bool {
	return re.doMatch(text, AnchorBoth, nil, args)
}

// PartialMatch reports whether re matches somewhere in text, parsing
// capture groups into args as FullMatch does.
func PartialMatch(text string, re *Regexp, args ...*Arg) bool {
	return re.doMatch(text, Unanchored, nil, args)
}

// Consume matches re at the beginning of *input and, on success, advances
// *input past the match. Capture groups parse into args.
//
// Useful for tokenizing:
//
//	input := "alpha beta gamma"
//	var word string
//	for re2.Consume(&input, re2.Compile(`(\w+)\s*`), re2.StringArg(&word)) {
//		// word: "alpha", "beta", "gamma"
//	}
func Consume(input *string, re *Regexp, args ...*Arg) bool {
	var consumed int
	if !re.doMatch(*input, AnchorStart, &consumed, args) {
		return false
	}
	*input = (*input)[consumed:]
	return true
}

// FindAndConsume matches re anywhere in *input and, on success, advances
// *input past the end of the match, skipping whatever preceded it.
func FindAndConsume(input *string, re *Regexp, args ...*Arg) bool {
	var consumed int
	if !re.doMatch(*input, Unanchored, &consumed, args) {
		return false
	}
	*input = (*input)[consumed:]
	return true
}

// doMatch runs Match with a capture vector sized to the arg list, then
// parses each group into its Arg.
func (re *Regexp) doMatch(text string, anchor Anchor, consumed *int, args []*Arg) bool {
	if len(args) > maxArgs {
		return false
	}
	nvec := 0
	if len(args) > 0 || consumed != nil {
		nvec = len(args) + 1
	}
	vec := make([]int, 2*nvec)

	if !re.Match(text, 0, anchor, vec) {
		return false
	}
	if consumed != nil {
		*consumed = vec[1]
	}
	if len(args) == 0 {
		return true
	}
	if re.NumberOfCapturingGroups() < len(args) {
		// More extraction targets than groups to fill them from.
		return false
	}
	for i, a := range args {
		lo, hi := vec[2*(i+1)], vec[2*(i+1)+1]
		var s string
		if lo >= 0 {
			s = text[lo:hi]
		}
		if !a.parse(s) {
			return false
		}
	}
	return true
}
