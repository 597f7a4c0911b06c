package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// LeadingZeros controls zero padding in numeric range patterns.
type LeadingZeros int

const (
	// NoLeadingZeros never matches zero padded numbers.
	NoLeadingZeros LeadingZeros = iota
	// OptionalLeadingZeros matches numbers with or without padding.
	OptionalLeadingZeros
	// RequiredLeadingZeros matches only numbers padded to the width of the
	// widest bound.
	RequiredLeadingZeros
)

func (lz LeadingZeros) String() string {
	switch lz {
	case NoLeadingZeros:
		return "none"
	case OptionalLeadingZeros:
		return "optional"
	case RequiredLeadingZeros:
		return "required"
	}
	return "LeadingZeros(" + strconv.Itoa(int(lz)) + ")"
}

// ParseLeadingZeros reads "none", "optional" or "required".
func ParseLeadingZeros(name string) (LeadingZeros, error) {
	switch name {
	case "", "none":
		return NoLeadingZeros, nil
	case "optional":
		return OptionalLeadingZeros, nil
	case "required":
		return RequiredLeadingZeros, nil
	}
	return 0, argError("leading zeros", name, "must be none, optional or required")
}

// NumericRange returns a pattern matching the decimal integers in
// [min, max]. The pattern is not anchored.
func NumericRange(min, max int64, lz LeadingZeros) (Pattern, error) {
	if min > max {
		return nil, patternError(nil, "numeric range minimum %d is greater than maximum %d", min, max)
	}
	if lz < NoLeadingZeros || lz > RequiredLeadingZeros {
		return nil, argError("leading zeros", lz.String(), "unknown policy")
	}

	switch {
	case min < 0 && max < 0:
		lo, hi := magnitude(max), magnitude(min)
		return Seq(Lit("-"), unsignedRange(lo, hi, len(hi), lz)), nil
	case min < 0:
		neg, pos := magnitude(min), strconv.FormatInt(max, 10)
		width := len(neg)
		if len(pos) > width {
			width = len(pos)
		}
		return Alt(
			Seq(Lit("-"), unsignedRange("0", neg, width, lz)),
			unsignedRange("0", pos, width, lz),
		), nil
	default:
		hi := strconv.FormatInt(max, 10)
		return unsignedRange(strconv.FormatInt(min, 10), hi, len(hi), lz), nil
	}
}

// MustNumericRange is like NumericRange but panics on failure.
func MustNumericRange(min, max int64, lz LeadingZeros) Pattern {
	p, err := NumericRange(min, max, lz)
	if err != nil {
		panic(fmt.Sprintf("pattern: NumericRange(%d, %d): %v", min, max, err))
	}
	return p
}

// magnitude returns the decimal digits of |v| for a negative v.
func magnitude(v int64) string {
	return strconv.FormatUint(uint64(-(v+1))+1, 10)
}

// unsignedRange covers [lo, hi] given as decimal strings without padding.
// Bounds of different lengths are split at powers of ten; every piece is
// padded up to width as lz dictates.
func unsignedRange(lo, hi string, width int, lz LeadingZeros) Pattern {
	if len(lo) == len(hi) {
		return padded(sameLengthRange(lo, hi), width-len(lo), lz)
	}

	var pieces []Pattern
	from := lo
	for n := len(lo); n < len(hi); n++ {
		pieces = append(pieces, padded(sameLengthRange(from, strings.Repeat("9", n)), width-n, lz))
		from = "1" + strings.Repeat("0", n)
	}
	pieces = append(pieces, padded(sameLengthRange(from, hi), width-len(hi), lz))
	return Alt(pieces...)
}

// padded prefixes p with up to zeros leading zeros.
func padded(p Pattern, zeros int, lz LeadingZeros) Pattern {
	if zeros <= 0 {
		return p
	}
	switch lz {
	case OptionalLeadingZeros:
		return Seq(Repeat(Char('0'), 0, zeros), p)
	case RequiredLeadingZeros:
		return Seq(Lit(strings.Repeat("0", zeros)), p)
	default:
		return p
	}
}

// sameLengthRange covers [lo, hi] for two decimal strings of equal length.
func sameLengthRange(lo, hi string) Pattern {
	if lo == hi {
		return Lit(lo)
	}
	if len(lo) == 1 {
		return DigitRange(int(lo[0]-'0'), int(hi[0]-'0'))
	}

	prefix := 0
	for prefix < len(lo) && lo[prefix] == hi[prefix] {
		prefix++
	}
	if prefix > 0 {
		return Seq(Lit(lo[:prefix]), sameLengthRange(lo[prefix:], hi[prefix:]))
	}

	var terms []Pattern
	first, last := int(lo[0]-'0'), int(hi[0]-'0')
	loRest, hiRest := lo[1:], hi[1:]
	rest := len(loRest)

	midLo, midHi := first+1, last-1
	if allDigits(loRest, '0') {
		midLo = first
	} else {
		terms = append(terms, upFrom(lo)...)
	}
	if allDigits(hiRest, '9') {
		midHi = last
	}
	if midLo <= midHi {
		terms = append(terms, DigitPattern("", midLo, midHi, rest))
	}
	if !allDigits(hiRest, '9') {
		terms = append(terms, downTo(hi)...)
	}

	if len(terms) == 1 {
		return terms[0]
	}
	return Alt(terms...)
}

// upFrom covers lo[0] followed by every suffix from lo[1:] up to all nines.
// lo[1:] must not be all zeros.
func upFrom(lo string) []Pattern {
	rest := lo[1:]
	last := strings.LastIndexFunc(rest, func(r rune) bool { return r != '0' })

	terms := []Pattern{
		DigitPattern(lo[:last+1], int(rest[last]-'0'), 9, len(rest)-1-last),
	}
	for i := last - 1; i >= 0; i-- {
		if d := int(rest[i] - '0'); d < 9 {
			terms = append(terms, DigitPattern(lo[:i+1], d+1, 9, len(rest)-1-i))
		}
	}
	return terms
}

// downTo covers hi[0] followed by every suffix from all zeros up to hi[1:].
// hi[1:] must not be all nines.
func downTo(hi string) []Pattern {
	rest := hi[1:]
	last := strings.LastIndexFunc(rest, func(r rune) bool { return r != '9' })

	var terms []Pattern
	for i := 0; i < last; i++ {
		if d := int(rest[i] - '0'); d > 0 {
			terms = append(terms, DigitPattern(hi[:i+1], 0, d-1, len(rest)-1-i))
		}
	}
	return append(terms, DigitPattern(hi[:last+1], 0, int(rest[last]-'0'), len(rest)-1-last))
}

func allDigits(s string, d byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != d {
			return false
		}
	}
	return true
}

// DigitRange matches one digit in [lo, hi]: \d for 0-9, otherwise a set.
func DigitRange(lo, hi int) Pattern {
	if lo == 0 && hi == 9 {
		return DigitChar()
	}
	return RangeSet(CharacterRange{Start: Char(rune('0' + lo)), End: Char(rune('0' + hi))})
}

// DigitPattern matches prefix, one digit in [lo, hi] and trailing further
// digits.
func DigitPattern(prefix string, lo, hi, trailing int) Pattern {
	c := Seq()
	if prefix != "" {
		c.Add(Lit(prefix))
	}
	c.Add(DigitRange(lo, hi))
	if trailing > 0 {
		c.Add(Exactly(DigitChar(), trailing))
	}
	return c
}
