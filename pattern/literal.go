package pattern

import (
	"strings"
	"unicode/utf8"
)

// literalMeta lists the characters escaped with a backslash in free text.
const literalMeta = `$()*+.?[\]^{|}`

// setMeta lists the characters escaped with a backslash inside a character set.
const setMeta = `]^-\`

func escapeLiteralRune(r rune) string {
	if strings.ContainsRune(literalMeta, r) {
		return `\` + string(r)
	}
	return string(r)
}

func escapeSetRune(r rune) string {
	if strings.ContainsRune(setMeta, r) {
		return `\` + string(r)
	}
	return string(r)
}

// EscapeLiteral escapes every metacharacter of text.
func EscapeLiteral(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(literalMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Literal matches Text verbatim.
type Literal struct {
	Text string
}

// Lit returns a literal node for text.
func Lit(text string) *Literal {
	return &Literal{Text: text}
}

// SetText replaces the literal text.
func (l *Literal) SetText(text string) *Literal {
	l.Text = text
	return l
}

func (l *Literal) build(s *state) error {
	s.writeString(EscapeLiteral(l.Text))
	return nil
}

func (l *Literal) copyPattern(*state) (Pattern, error) { return &Literal{Text: l.Text}, nil }
func (l *Literal) unwrap(*state) (Pattern, error)      { return l, nil }
func (l *Literal) empty(*state) (bool, error)          { return l.Text == "", nil }

// A literal is atomic only when it is a single character.
func (l *Literal) single(*state) (bool, error) {
	return utf8.RuneCountInString(l.Text) <= 1, nil
}

// Raw is emitted without any escaping. It is never treated as atomic.
type Raw struct {
	Text string
}

// RawText returns a node that emits text as is.
func RawText(text string) *Raw {
	return &Raw{Text: text}
}

func (r *Raw) build(s *state) error {
	s.writeString(r.Text)
	return nil
}

func (r *Raw) copyPattern(*state) (Pattern, error) { return &Raw{Text: r.Text}, nil }
func (r *Raw) unwrap(*state) (Pattern, error)      { return r, nil }
func (r *Raw) empty(*state) (bool, error)          { return r.Text == "", nil }
func (r *Raw) single(*state) (bool, error)         { return r.Text == "", nil }
