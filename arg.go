package re2

import (
	"strconv"
	"unicode/utf8"
)

// Arg converts a captured substring into a typed value. Construct one with
// the typed helpers (StringArg, IntArg, Hex, ...) and pass it to FullMatch,
// PartialMatch, Consume, or FindAndConsume; group k+1 of the match is parsed
// into the k-th Arg. A failed conversion makes the whole call report false,
// even when the pattern itself matched.
//
// A group that did not participate in the match parses as the empty string:
// string destinations become "", numeric destinations fail.
type Arg struct {
	parse func(s string) bool
}

// NullArg discards the captured substring. It never fails, so it suits
// groups that only need to participate, not convert.
func NullArg() *Arg {
	return &Arg{parse: func(string) bool { return true }}
}

// StringArg stores the captured substring.
func StringArg(dst *string) *Arg {
	return &Arg{parse: func(s string) bool {
		if dst != nil {
			*dst = s
		}
		return true
	}}
}

// BytesArg stores a copy of the captured substring.
func BytesArg(dst *[]byte) *Arg {
	return &Arg{parse: func(s string) bool {
		if dst != nil {
			*dst = []byte(s)
		}
		return true
	}}
}

// ByteArg requires a single-byte capture and stores it.
func ByteArg(dst *byte) *Arg {
	return &Arg{parse: func(s string) bool {
		if len(s) != 1 {
			return false
		}
		if dst != nil {
			*dst = s[0]
		}
		return true
	}}
}

// RuneArg requires a capture holding exactly one rune and stores it.
func RuneArg(dst *rune) *Arg {
	return &Arg{parse: func(s string) bool {
		if s == "" {
			return false
		}
		r, size := utf8.DecodeRuneInString(s)
		if size != len(s) || (r == utf8.RuneError && size == 1) {
			return false
		}
		if dst != nil {
			*dst = r
		}
		return true
	}}
}

// IntArg parses a decimal integer.
func IntArg(dst *int) *Arg { return signedArg(dst, strconv.IntSize, 10) }

// Int16Arg parses a decimal integer and range-checks it to 16 bits.
func Int16Arg(dst *int16) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseSigned(s, 10, 16)
		if ok && dst != nil {
			*dst = int16(v)
		}
		return ok
	}}
}

// Int32Arg parses a decimal integer and range-checks it to 32 bits.
func Int32Arg(dst *int32) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseSigned(s, 10, 32)
		if ok && dst != nil {
			*dst = int32(v)
		}
		return ok
	}}
}

// Int64Arg parses a decimal integer into 64 bits.
func Int64Arg(dst *int64) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseSigned(s, 10, 64)
		if ok && dst != nil {
			*dst = v
		}
		return ok
	}}
}

// UintArg parses a decimal unsigned integer. A leading minus sign fails.
func UintArg(dst *uint) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseUnsigned(s, 10, strconv.IntSize)
		if ok && dst != nil {
			*dst = uint(v)
		}
		return ok
	}}
}

// Uint16Arg parses a decimal unsigned integer and range-checks to 16 bits.
func Uint16Arg(dst *uint16) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseUnsigned(s, 10, 16)
		if ok && dst != nil {
			*dst = uint16(v)
		}
		return ok
	}}
}

// Uint32Arg parses a decimal unsigned integer and range-checks to 32 bits.
func Uint32Arg(dst *uint32) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseUnsigned(s, 10, 32)
		if ok && dst != nil {
			*dst = uint32(v)
		}
		return ok
	}}
}

// Uint64Arg parses a decimal unsigned integer into 64 bits.
func Uint64Arg(dst *uint64) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseUnsigned(s, 10, 64)
		if ok && dst != nil {
			*dst = v
		}
		return ok
	}}
}

// Float64Arg parses a floating point number. At most 199 bytes of input are
// accepted.
func Float64Arg(dst *float64) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseFloat(s, 64)
		if ok && dst != nil {
			*dst = v
		}
		return ok
	}}
}

// Float32Arg parses a floating point number narrowed to float32.
func Float32Arg(dst *float32) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseFloat(s, 32)
		if ok && dst != nil {
			*dst = float32(v)
		}
		return ok
	}}
}

// Hex parses a hexadecimal integer (an optional 0x prefix is accepted) into
// any of the integer pointer types accepted by radixArg.
func Hex(dst interface{}) *Arg { return radixArg(dst, 16) }

// Octal parses an octal integer.
func Octal(dst interface{}) *Arg { return radixArg(dst, 8) }

// CRadix parses an integer with C-style radix detection: 0x... is
// hexadecimal, a leading 0 is octal, anything else is decimal.
func CRadix(dst interface{}) *Arg { return radixArg(dst, 0) }

func signedArg(dst *int, bitSize, base int) *Arg {
	return &Arg{parse: func(s string) bool {
		v, ok := parseSigned(s, base, bitSize)
		if ok && dst != nil {
			*dst = int(v)
		}
		return ok
	}}
}

// radixArg dispatches on the destination type. An unsupported destination
// yields an Arg that always fails, surfacing the mistake as a non-match.
func radixArg(dst interface{}, base int) *Arg {
	switch d := dst.(type) {
	case *int:
		return &Arg{parse: func(s string) bool {
			v, ok := parseSigned(s, base, strconv.IntSize)
			if ok && d != nil {
				*d = int(v)
			}
			return ok
		}}
	case *int16:
		return &Arg{parse: func(s string) bool {
			v, ok := parseSigned(s, base, 16)
			if ok && d != nil {
				*d = int16(v)
			}
			return ok
		}}
	case *int32:
		return &Arg{parse: func(s string) bool {
			v, ok := parseSigned(s, base, 32)
			if ok && d != nil {
				*d = int32(v)
			}
			return ok
		}}
	case *int64:
		return &Arg{parse: func(s string) bool {
			v, ok := parseSigned(s, base, 64)
			if ok && d != nil {
				*d = v
			}
			return ok
		}}
	case *uint:
		return &Arg{parse: func(s string) bool {
			v, ok := parseUnsigned(s, base, strconv.IntSize)
			if ok && d != nil {
				*d = uint(v)
			}
			return ok
		}}
	case *uint16:
		return &Arg{parse: func(s string) bool {
			v, ok := parseUnsigned(s, base, 16)
			if ok && d != nil {
				*d = uint16(v)
			}
			return ok
		}}
	case *uint32:
		return &Arg{parse: func(s string) bool {
			v, ok := parseUnsigned(s, base, 32)
			if ok && d != nil {
				*d = uint32(v)
			}
			return ok
		}}
	case *uint64:
		return &Arg{parse: func(s string) bool {
			v, ok := parseUnsigned(s, base, 64)
			if ok && d != nil {
				*d = v
			}
			return ok
		}}
	case nil:
		return &Arg{parse: func(s string) bool {
			_, ok := parseSigned(s, base, 64)
			return ok
		}}
	}
	return &Arg{parse: func(string) bool { return false }}
}

// splitRadix resolves the effective base and strips any radix prefix the
// base implies, keeping the sign in place for strconv.
func splitRadix(s string, base int) (string, int) {
	sign := ""
	t := s
	if len(t) > 0 && (t[0] == '+' || t[0] == '-') {
		sign, t = t[:1], t[1:]
	}
	switch base {
	case 16:
		if len(t) > 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
			t = t[2:]
		}
	case 0:
		switch {
		case len(t) > 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X'):
			t, base = t[2:], 16
		case len(t) > 1 && t[0] == '0':
			base = 8
		default:
			base = 10
		}
	}
	return sign + t, base
}

func parseSigned(s string, base, bitSize int) (int64, bool) {
	if s == "" {
		return 0, false
	}
	s, base = splitRadix(s, base)
	v, err := strconv.ParseInt(s, base, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseUnsigned(s string, base, bitSize int) (uint64, bool) {
	if s == "" || s[0] == '-' {
		return 0, false
	}
	if s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	s, base = splitRadix(s, base)
	v, err := strconv.ParseUint(s, base, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

// maxFloatLen bounds the input accepted by the float parsers.
const maxFloatLen = 200

func parseFloat(s string, bitSize int) (float64, bool) {
	if s == "" || len(s) >= maxFloatLen {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}
