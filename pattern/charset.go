package pattern

import (
	"sort"
	"strings"
)

// CharacterRange is an inclusive range of literal characters.
type CharacterRange struct {
	Start *Character
	End   *Character
}

// NewRange returns the range start-end of plain characters.
func NewRange(start, end rune) (CharacterRange, error) {
	return RangeOf(Char(start), Char(end))
}

// RangeOf returns a range between two character nodes. Both endpoints must
// be *Character literals; classes such as \d are rejected.
func RangeOf(start, end Pattern) (CharacterRange, error) {
	lo, ok := start.(*Character)
	if !ok {
		return CharacterRange{}, argError("start", nodeName(start), "range endpoints must be character literals")
	}
	hi, ok := end.(*Character)
	if !ok {
		return CharacterRange{}, argError("end", nodeName(end), "range endpoints must be character literals")
	}
	if lo.value > hi.value {
		return CharacterRange{}, argError("range", lo.form(true)+"-"+hi.form(true), "start is greater than end")
	}
	return CharacterRange{Start: lo, End: hi}, nil
}

// MustRange is like NewRange but panics on an inverted range.
func MustRange(start, end rune) CharacterRange {
	r, err := NewRange(start, end)
	if err != nil {
		panic("pattern: " + err.Error())
	}
	return r
}

// Single reports whether the range holds one character.
func (r CharacterRange) Single() bool { return r.Start.value == r.End.value }

// Adjacent reports whether the range holds exactly two consecutive characters.
func (r CharacterRange) Adjacent() bool { return r.End.value-r.Start.value == 1 }

// Contains reports whether c lies in the range.
func (r CharacterRange) Contains(c rune) bool {
	return r.Start.value <= c && c <= r.End.value
}

// String returns the range as written inside a set.
func (r CharacterRange) String() string {
	if r.Single() {
		return r.Start.setForm()
	}
	return r.Start.setForm() + "-" + r.End.setForm()
}

func (r CharacterRange) copyRange() CharacterRange {
	start, end := *r.Start, *r.End
	return CharacterRange{Start: &start, End: &end}
}

type rangeEvent struct {
	char   *Character
	isEnd  bool
	source int
}

// Overlap merges ranges into the smallest set of disjoint ranges covering
// the same characters. Ranges that overlap or touch (end and next start are
// one apart) are fused. Each result is ordered by the smallest input index
// it absorbed.
func Overlap(ranges []CharacterRange) []CharacterRange {
	if len(ranges) == 0 {
		return nil
	}

	events := make([]rangeEvent, 0, 2*len(ranges))
	for i, r := range ranges {
		events = append(events,
			rangeEvent{char: r.Start, source: i},
			rangeEvent{char: r.End, isEnd: true, source: i})
	}
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.char.value != b.char.value {
			return a.char.value < b.char.value
		}
		// Starts before ends so a single character range opens before it closes.
		return !a.isEnd && b.isEnd
	})

	type tagged struct {
		r   CharacterRange
		tag int
	}
	var merged []tagged

	open := 0
	var start *Character
	tag := 0
	for i, e := range events {
		if !e.isEnd {
			if open == 0 && start == nil {
				start = e.char
				tag = e.source
			}
			if e.source < tag {
				tag = e.source
			}
			open++
			continue
		}

		open--
		if open > 0 {
			continue
		}
		if i+1 < len(events) && events[i+1].char.value-e.char.value <= 1 {
			continue
		}
		merged = append(merged, tagged{r: CharacterRange{Start: start, End: e.char}, tag: tag})
		start = nil
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].tag < merged[j].tag })
	out := make([]CharacterRange, len(merged))
	for i, m := range merged {
		out[i] = m.r
	}
	return out
}

// CharacterSet matches one character from a bracketed set: [...], [^...] or
// with a subtraction [...-[...]].
type CharacterSet struct {
	Ranges           []CharacterRange
	Chars            []SetMember
	SubtractedRanges []CharacterRange
	SubtractedChars  []SetMember
	Negated          bool
}

// Set returns a set of the given members.
func Set(members ...SetMember) *CharacterSet {
	return &CharacterSet{Chars: members}
}

// NotSet returns a negated set of the given members.
func NotSet(members ...SetMember) *CharacterSet {
	return &CharacterSet{Chars: members, Negated: true}
}

// SetOf returns a set of plain characters.
func SetOf(chars ...rune) *CharacterSet {
	members := make([]SetMember, len(chars))
	for i, c := range chars {
		members[i] = Char(c)
	}
	return Set(members...)
}

// RangeSet returns a set of ranges.
func RangeSet(ranges ...CharacterRange) *CharacterSet {
	return &CharacterSet{Ranges: ranges}
}

// AddRanges appends ranges.
func (c *CharacterSet) AddRanges(ranges ...CharacterRange) *CharacterSet {
	c.Ranges = append(c.Ranges, ranges...)
	return c
}

// AddChars appends members.
func (c *CharacterSet) AddChars(members ...SetMember) *CharacterSet {
	c.Chars = append(c.Chars, members...)
	return c
}

// SubtractRanges removes ranges from the set.
func (c *CharacterSet) SubtractRanges(ranges ...CharacterRange) *CharacterSet {
	c.SubtractedRanges = append(c.SubtractedRanges, ranges...)
	return c
}

// SubtractChars removes members from the set.
func (c *CharacterSet) SubtractChars(members ...SetMember) *CharacterSet {
	c.SubtractedChars = append(c.SubtractedChars, members...)
	return c
}

// Negate toggles negation.
func (c *CharacterSet) Negate() *CharacterSet {
	c.Negated = !c.Negated
	return c
}

// MergeRanges replaces the included and subtracted ranges by their Overlap.
func (c *CharacterSet) MergeRanges() *CharacterSet {
	c.Ranges = Overlap(c.Ranges)
	c.SubtractedRanges = Overlap(c.SubtractedRanges)
	return c
}

func (c *CharacterSet) hasBase() bool {
	return len(c.Ranges) > 0 || len(c.Chars) > 0
}

func (c *CharacterSet) hasSubtraction() bool {
	return len(c.SubtractedRanges) > 0 || len(c.SubtractedChars) > 0
}

func (c *CharacterSet) build(s *state) error {
	if !c.hasBase() {
		if c.hasSubtraction() {
			return patternError(c, "subtraction without any included character")
		}
		return nil
	}

	if err := checkEndpoints(c, c.Ranges); err != nil {
		return err
	}
	if err := checkEndpoints(c, c.SubtractedRanges); err != nil {
		return err
	}

	if !c.Negated && !c.hasSubtraction() {
		if len(c.Chars) == 1 && len(c.Ranges) == 0 {
			return s.write(c.Chars[0])
		}
		if len(c.Ranges) == 1 && len(c.Chars) == 0 && c.Ranges[0].Single() {
			return s.write(c.Ranges[0].Start)
		}
	}

	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	if err := writeMembers(&b, c, c.Ranges, c.Chars); err != nil {
		return err
	}
	if c.hasSubtraction() {
		s.features.Subtraction = true
		b.WriteString("-[")
		if err := writeMembers(&b, c, c.SubtractedRanges, c.SubtractedChars); err != nil {
			return err
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	s.writeString(b.String())
	return nil
}

// checkEndpoints rejects ranges with a missing or inverted endpoint.
func checkEndpoints(set *CharacterSet, ranges []CharacterRange) error {
	for _, r := range ranges {
		if r.Start == nil || r.End == nil {
			return patternError(set, "range with a missing endpoint")
		}
		if r.Start.value > r.End.value {
			return patternError(set, "range %s-%s is inverted", r.Start.setForm(), r.End.setForm())
		}
	}
	return nil
}

func writeMembers(b *strings.Builder, set *CharacterSet, ranges []CharacterRange, chars []SetMember) error {
	for _, r := range ranges {
		b.WriteString(r.String())
	}
	for _, m := range chars {
		if m == nil {
			return patternError(set, "nil set member")
		}
		b.WriteString(m.setForm())
	}
	return nil
}

func (c *CharacterSet) copyPattern(s *state) (Pattern, error) {
	chars, err := copyMembers(s, c.Chars)
	if err != nil {
		return nil, err
	}
	subtracted, err := copyMembers(s, c.SubtractedChars)
	if err != nil {
		return nil, err
	}
	return &CharacterSet{
		Ranges:           copyRanges(c.Ranges),
		Chars:            chars,
		SubtractedRanges: copyRanges(c.SubtractedRanges),
		SubtractedChars:  subtracted,
		Negated:          c.Negated,
	}, nil
}

func copyRanges(ranges []CharacterRange) []CharacterRange {
	if ranges == nil {
		return nil
	}
	out := make([]CharacterRange, len(ranges))
	for i, r := range ranges {
		out[i] = r.copyRange()
	}
	return out
}

func copyMembers(s *state, members []SetMember) ([]SetMember, error) {
	if members == nil {
		return nil, nil
	}
	out := make([]SetMember, len(members))
	for i, m := range members {
		cp, err := s.copy(m)
		if err != nil {
			return nil, err
		}
		out[i] = cp.(SetMember)
	}
	return out, nil
}

func (c *CharacterSet) unwrap(*state) (Pattern, error) { return c, nil }
func (c *CharacterSet) single(*state) (bool, error)    { return true, nil }

// A set with only subtracted members is not empty: rendering it fails.
func (c *CharacterSet) empty(*state) (bool, error) {
	return !c.hasBase() && !c.hasSubtraction(), nil
}
