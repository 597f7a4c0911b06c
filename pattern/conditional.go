package pattern

import (
	"strconv"
	"strings"
)

// ConditionKind is the discriminant of a Conditional.
type ConditionKind int

const (
	// IfGroupNumber tests whether a numbered group has captured.
	IfGroupNumber ConditionKind = iota
	// IfGroupName tests whether a named group has captured.
	IfGroupName
	// IfExpression tests whether Expression matches at the current position.
	IfExpression
)

// Conditional matches Yes when the condition holds and No otherwise:
// (?(cond)yes|no).
type Conditional struct {
	Kind       ConditionKind
	Group      int
	Name       string
	Expression Pattern
	Yes        Pattern
	No         Pattern // optional
}

// IfGroup returns a conditional on a numbered group.
func IfGroup(group int, yes, no Pattern) *Conditional {
	return &Conditional{Kind: IfGroupNumber, Group: group, Yes: yes, No: no}
}

// IfNamed returns a conditional on a named group.
func IfNamed(name string, yes, no Pattern) (*Conditional, error) {
	if err := validName("name", name); err != nil {
		return nil, err
	}
	return &Conditional{Kind: IfGroupName, Name: name, Yes: yes, No: no}, nil
}

// IfMatch returns a conditional on an expression.
func IfMatch(expression, yes, no Pattern) *Conditional {
	return &Conditional{Kind: IfExpression, Expression: expression, Yes: yes, No: no}
}

func (c *Conditional) opening() string { return "(?(" }

func (c *Conditional) contents(s *state) error {
	switch c.Kind {
	case IfGroupNumber:
		if c.Group < 0 {
			return patternError(c, "group number %d is negative", c.Group)
		}
		s.writeString(strconv.Itoa(c.Group))
	case IfGroupName:
		if c.Name == "" {
			return patternError(c, "group name is empty")
		}
		s.writeString(c.Name)
	case IfExpression:
		empty, err := s.isEmpty(c.Expression)
		if err != nil {
			return err
		}
		if empty {
			return patternError(c, "condition expression is empty")
		}
		if err := s.write(c.Expression); err != nil {
			return err
		}
	default:
		return patternError(c, "unknown condition kind %d", c.Kind)
	}
	s.writeString(")")

	if err := s.writeBranch(c.Yes); err != nil {
		return err
	}
	noEmpty, err := s.isEmpty(c.No)
	if err != nil {
		return err
	}
	if !noEmpty {
		s.writeString("|")
		return s.writeBranch(c.No)
	}
	return nil
}

func (c *Conditional) build(s *state) error           { return s.writeGroup(c) }
func (c *Conditional) unwrap(*state) (Pattern, error) { return c, nil }
func (c *Conditional) single(*state) (bool, error)    { return true, nil }

func (c *Conditional) empty(s *state) (bool, error) {
	yes, err := s.isEmpty(c.Yes)
	if err != nil || !yes {
		return false, err
	}
	return s.isEmpty(c.No)
}

func (c *Conditional) copyPattern(s *state) (Pattern, error) {
	cp := *c
	var err error
	if cp.Expression, err = s.copy(c.Expression); err != nil {
		return nil, err
	}
	if cp.Yes, err = s.copy(c.Yes); err != nil {
		return nil, err
	}
	if cp.No, err = s.copy(c.No); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Modifier is a set of inline options.
type Modifier uint8

const (
	IgnoreCase Modifier = 1 << iota
	Multiline
	ExplicitCapture
	Singleline
	IgnorePatternWhitespace
)

var modifierLetters = []struct {
	flag   Modifier
	letter byte
}{
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{ExplicitCapture, 'n'},
	{Singleline, 's'},
	{IgnorePatternWhitespace, 'x'},
}

func (m Modifier) String() string {
	var b strings.Builder
	for _, l := range modifierLetters {
		if m&l.flag != 0 {
			b.WriteByte(l.letter)
		}
	}
	return b.String()
}

// ParseModifier reads option letters such as "im".
func ParseModifier(letters string) (Modifier, error) {
	var m Modifier
	for i := 0; i < len(letters); i++ {
		found := false
		for _, l := range modifierLetters {
			if letters[i] == l.letter {
				m |= l.flag
				found = true
			}
		}
		if !found {
			return 0, argError("modifier", letters, "unknown option letter "+strconv.QuoteRune(rune(letters[i])))
		}
	}
	return m, nil
}

// InlineModifier turns options on and off. With a nil Child it applies to
// the rest of the enclosing group: (?on-off). Otherwise only to Child:
// (?on-off:child).
type InlineModifier struct {
	On    Modifier
	Off   Modifier
	Child Pattern
}

// Modify returns an inline modifier group.
func Modify(on, off Modifier, child Pattern) *InlineModifier {
	return &InlineModifier{On: on, Off: off, Child: child}
}

func (g *InlineModifier) flags() string {
	out := g.On.String()
	if g.Off != 0 {
		out += "-" + g.Off.String()
	}
	return out
}

func (g *InlineModifier) opening() string {
	if g.Child == nil {
		return "(?" + g.flags()
	}
	return "(?" + g.flags() + ":"
}

func (g *InlineModifier) contents(s *state) error {
	if g.On&g.Off != 0 {
		return patternError(g, "options %q are both set and cleared", (g.On & g.Off).String())
	}
	return s.write(g.Child)
}

func (g *InlineModifier) build(s *state) error           { return s.writeGroup(g) }
func (g *InlineModifier) unwrap(*state) (Pattern, error) { return g, nil }
func (g *InlineModifier) single(*state) (bool, error)    { return true, nil }

func (g *InlineModifier) empty(s *state) (bool, error) {
	if g.Child == nil {
		return g.On == 0 && g.Off == 0, nil
	}
	return s.isEmpty(g.Child)
}

func (g *InlineModifier) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &InlineModifier{On: g.On, Off: g.Off, Child: child}, nil
}

// Comment is ignored by the engine: (?#text).
type Comment struct {
	Text string
}

// NewComment returns a comment. The text cannot contain a closing parenthesis.
func NewComment(text string) (*Comment, error) {
	if strings.ContainsRune(text, ')') {
		return nil, argError("comment", text, "must not contain ')'")
	}
	return &Comment{Text: text}, nil
}

func (g *Comment) opening() string { return "(?#" }

func (g *Comment) contents(s *state) error {
	if strings.ContainsRune(g.Text, ')') {
		return patternError(g, "comment contains ')'")
	}
	s.writeString(g.Text)
	return nil
}

func (g *Comment) build(s *state) error                { return s.writeGroup(g) }
func (g *Comment) copyPattern(*state) (Pattern, error) { return &Comment{Text: g.Text}, nil }
func (g *Comment) unwrap(*state) (Pattern, error)      { return g, nil }
func (g *Comment) empty(*state) (bool, error)          { return g.Text == "", nil }
func (g *Comment) single(*state) (bool, error)         { return true, nil }
