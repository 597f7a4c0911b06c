package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// SetMember is a node that stands for one character and may appear inside a
// CharacterSet: a *Character or a *Class.
type SetMember interface {
	Pattern
	setForm() string
}

type charKind int

const (
	charPlain charKind = iota
	charNull
	charBell
	charBackspace
	charFormFeed
	charNewLine
	charCarriageReturn
	charTab
	charVerticalTab
	charControl
	charHex
	charOctal
	charUnicode
)

var charEscapes = map[charKind]string{
	charNull:           `\0`,
	charBell:           `\a`,
	charBackspace:      `\b`,
	charFormFeed:       `\f`,
	charNewLine:        `\n`,
	charCarriageReturn: `\r`,
	charTab:            `\t`,
	charVerticalTab:    `\v`,
}

// Character is a single literal character. Besides plain runes it can be
// spelled as a control, hex, octal or unicode escape; the spelling is kept
// when the character is rendered.
type Character struct {
	kind  charKind
	value rune
}

// Char returns a plain character literal.
func Char(r rune) *Character {
	return &Character{kind: charPlain, value: r}
}

// NullChar returns \0.
func NullChar() *Character { return &Character{kind: charNull, value: 0} }

// Bell returns \a.
func Bell() *Character { return &Character{kind: charBell, value: '\a'} }

// Backspace returns the backspace character, [\b] outside a set.
func Backspace() *Character { return &Character{kind: charBackspace, value: '\b'} }

// FormFeed returns \f.
func FormFeed() *Character { return &Character{kind: charFormFeed, value: '\f'} }

// NewLine returns \n.
func NewLine() *Character { return &Character{kind: charNewLine, value: '\n'} }

// CarriageReturn returns \r.
func CarriageReturn() *Character { return &Character{kind: charCarriageReturn, value: '\r'} }

// Tab returns \t.
func Tab() *Character { return &Character{kind: charTab, value: '\t'} }

// VerticalTab returns \v.
func VerticalTab() *Character { return &Character{kind: charVerticalTab, value: '\v'} }

// Control returns the control character \cX for an ASCII letter.
func Control(letter rune) (*Character, error) {
	if letter > unicode.MaxASCII || !unicode.IsLetter(letter) {
		return nil, argError("control", string(letter), "must be an ASCII letter")
	}
	upper := unicode.ToUpper(letter)
	return &Character{kind: charControl, value: upper - '@'}, nil
}

// Hex returns \xHH from exactly two hex digits.
func Hex(digits string) (*Character, error) {
	if len(digits) != 2 {
		return nil, argError("hex", digits, "must be two hex digits")
	}
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return nil, argError("hex", digits, "must be two hex digits")
	}
	return &Character{kind: charHex, value: rune(v)}, nil
}

// Octal returns \NNN from two or three octal digits.
func Octal(digits string) (*Character, error) {
	if len(digits) < 2 || len(digits) > 3 {
		return nil, argError("octal", digits, "must be two or three octal digits")
	}
	v, err := strconv.ParseUint(digits, 8, 16)
	if err != nil {
		return nil, argError("octal", digits, "must be two or three octal digits")
	}
	return &Character{kind: charOctal, value: rune(v)}, nil
}

// Unicode returns \uHHHH from exactly four hex digits.
func Unicode(digits string) (*Character, error) {
	if len(digits) != 4 {
		return nil, argError("unicode", digits, "must be four hex digits")
	}
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return nil, argError("unicode", digits, "must be four hex digits")
	}
	return &Character{kind: charUnicode, value: rune(v)}, nil
}

// Value returns the numeric character value.
func (c *Character) Value() rune { return c.value }

// form renders the character; inSet selects the set escaping table.
func (c *Character) form(inSet bool) string {
	switch c.kind {
	case charPlain:
		if inSet {
			return escapeSetRune(c.value)
		}
		return escapeLiteralRune(c.value)
	case charBackspace:
		if inSet {
			return `\b`
		}
		return `[\b]`
	case charControl:
		return `\c` + string(c.value+'@')
	case charHex:
		return fmt.Sprintf(`\x%02X`, c.value)
	case charOctal:
		// Three digits keep \NN from being read as a backreference.
		return fmt.Sprintf(`\%03o`, c.value)
	case charUnicode:
		return fmt.Sprintf(`\u%04X`, c.value)
	default:
		return charEscapes[c.kind]
	}
}

func (c *Character) setForm() string { return c.form(true) }

func (c *Character) build(s *state) error {
	s.writeString(c.form(false))
	return nil
}

func (c *Character) copyPattern(*state) (Pattern, error) {
	cp := *c
	return &cp, nil
}

func (c *Character) unwrap(*state) (Pattern, error) { return c, nil }
func (c *Character) empty(*state) (bool, error)     { return false, nil }
func (c *Character) single(*state) (bool, error)    { return true, nil }

// ClassKind selects a predefined character class.
type ClassKind int

const (
	Word ClassKind = iota
	NonWord
	Digit
	NonDigit
	Space
	NonSpace
	Category
	NonCategory
)

var classForms = map[ClassKind]string{
	Word:     `\w`,
	NonWord:  `\W`,
	Digit:    `\d`,
	NonDigit: `\D`,
	Space:    `\s`,
	NonSpace: `\S`,
}

// Class is a predefined character class such as \d or \p{Lu}.
type Class struct {
	Kind ClassKind
	Name string // unicode category or block for Category and NonCategory
}

// WordChar returns \w.
func WordChar() *Class { return &Class{Kind: Word} }

// NonWordChar returns \W.
func NonWordChar() *Class { return &Class{Kind: NonWord} }

// DigitChar returns \d.
func DigitChar() *Class { return &Class{Kind: Digit} }

// NonDigitChar returns \D.
func NonDigitChar() *Class { return &Class{Kind: NonDigit} }

// SpaceChar returns \s.
func SpaceChar() *Class { return &Class{Kind: Space} }

// NonSpaceChar returns \S.
func NonSpaceChar() *Class { return &Class{Kind: NonSpace} }

// InCategory returns \p{name} for a unicode category or named block.
func InCategory(name string) (*Class, error) {
	if err := validCategory(name); err != nil {
		return nil, err
	}
	return &Class{Kind: Category, Name: name}, nil
}

// NotInCategory returns \P{name}.
func NotInCategory(name string) (*Class, error) {
	if err := validCategory(name); err != nil {
		return nil, err
	}
	return &Class{Kind: NonCategory, Name: name}, nil
}

func validCategory(name string) error {
	if name == "" {
		return argError("category", name, "must not be empty")
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return argError("category", name, "must be an ASCII category or block name")
		}
	}
	return nil
}

func (c *Class) form() string {
	switch c.Kind {
	case Category:
		return `\p{` + c.Name + `}`
	case NonCategory:
		return `\P{` + c.Name + `}`
	default:
		return classForms[c.Kind]
	}
}

func (c *Class) setForm() string { return c.form() }

func (c *Class) build(s *state) error {
	if (c.Kind == Category || c.Kind == NonCategory) && strings.TrimSpace(c.Name) == "" {
		return patternError(c, "category name is empty")
	}
	s.writeString(c.form())
	return nil
}

func (c *Class) copyPattern(*state) (Pattern, error) {
	cp := *c
	return &cp, nil
}

func (c *Class) unwrap(*state) (Pattern, error) { return c, nil }
func (c *Class) empty(*state) (bool, error)     { return false, nil }
func (c *Class) single(*state) (bool, error)    { return true, nil }

// Wildcard matches any single character: `.`.
type Wildcard struct{}

// Any returns the single character wildcard.
func Any() *Wildcard { return &Wildcard{} }

func (w *Wildcard) build(s *state) error {
	s.writeString(".")
	return nil
}

func (w *Wildcard) copyPattern(*state) (Pattern, error) { return &Wildcard{}, nil }
func (w *Wildcard) unwrap(*state) (Pattern, error)      { return w, nil }
func (w *Wildcard) empty(*state) (bool, error)          { return false, nil }
func (w *Wildcard) single(*state) (bool, error)         { return true, nil }
