package pattern

import (
	"strconv"
	"unicode"
)

// AnchorKind selects a zero-width assertion.
type AnchorKind int

const (
	LineStart AnchorKind = iota
	LineEnd
	StringStart
	StringEndOrNewline
	StringEnd
	ContiguousMatch
	WordBoundary
	NonWordBoundary
)

var anchorForms = [...]string{
	LineStart:          `^`,
	LineEnd:            `$`,
	StringStart:        `\A`,
	StringEndOrNewline: `\Z`,
	StringEnd:          `\z`,
	ContiguousMatch:    `\G`,
	WordBoundary:       `\b`,
	NonWordBoundary:    `\B`,
}

// Anchor is a zero-width assertion. Anchors cannot be quantified.
type Anchor struct {
	Kind AnchorKind
}

// Start returns ^.
func Start() *Anchor { return &Anchor{Kind: LineStart} }

// End returns $.
func End() *Anchor { return &Anchor{Kind: LineEnd} }

// Boundary returns \b.
func Boundary() *Anchor { return &Anchor{Kind: WordBoundary} }

// NewAnchor returns an anchor of the given kind.
func NewAnchor(kind AnchorKind) *Anchor { return &Anchor{Kind: kind} }

func (a *Anchor) build(s *state) error {
	if a.Kind < 0 || int(a.Kind) >= len(anchorForms) {
		return patternError(a, "unknown anchor kind %d", a.Kind)
	}
	s.writeString(anchorForms[a.Kind])
	return nil
}

func (a *Anchor) copyPattern(*state) (Pattern, error) { return &Anchor{Kind: a.Kind}, nil }
func (a *Anchor) unwrap(*state) (Pattern, error)      { return a, nil }
func (a *Anchor) empty(*state) (bool, error)          { return false, nil }
func (a *Anchor) single(*state) (bool, error)         { return true, nil }

// MaxBackreference is the largest group number written as \N. Larger numbers
// are ambiguous with octal escapes.
const MaxBackreference = 9

// Backreference matches the text captured by an earlier group, addressed by
// number or by name.
type Backreference struct {
	Number int
	Name   string
}

// Backref returns \N. Numbers outside 1..MaxBackreference fail when rendered.
func Backref(number int) *Backreference {
	return &Backreference{Number: number}
}

// NamedBackref returns \k<name>.
func NamedBackref(name string) (*Backreference, error) {
	if err := validName("name", name); err != nil {
		return nil, err
	}
	return &Backreference{Name: name}, nil
}

func (b *Backreference) build(s *state) error {
	if b.Name != "" {
		s.writeString(`\k<` + b.Name + `>`)
		return nil
	}
	if b.Number < 1 || b.Number > MaxBackreference {
		return patternError(b, "backreference number %d is outside 1..%d", b.Number, MaxBackreference)
	}
	s.writeString(`\` + strconv.Itoa(b.Number))
	return nil
}

func (b *Backreference) copyPattern(*state) (Pattern, error) {
	cp := *b
	return &cp, nil
}

func (b *Backreference) unwrap(*state) (Pattern, error) { return b, nil }
func (b *Backreference) empty(*state) (bool, error)     { return false, nil }
func (b *Backreference) single(*state) (bool, error)    { return true, nil }

// validName checks a group name: one or more letters, digits or underscores.
func validName(arg, name string) error {
	if name == "" {
		return argError(arg, name, "must not be empty")
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return argError(arg, name, "may only contain letters, digits and underscores")
		}
	}
	return nil
}
