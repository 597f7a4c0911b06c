package definition

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/KromDaniel/regcraft/pattern"
	"github.com/alecthomas/participle/v2/lexer"
)

// Named is a resolved definition.
type Named struct {
	Name    string
	Pos     lexer.Position
	Pattern pattern.Pattern
}

// reserved names are keywords of the grammar and cannot name a definition.
var reserved = map[string]bool{
	"pattern": true, "digit": true, "notdigit": true, "word": true, "notword": true,
	"space": true, "notspace": true, "any": true, "start": true, "end": true,
	"eol": true, "contiguous": true, "boundary": true, "notboundary": true,
	"range": true, "capture": true, "atomic": true, "ahead": true, "notahead": true,
	"behind": true, "notbehind": true, "char": true, "raw": true, "category": true,
	"notcategory": true, "hex": true, "octal": true, "unicode": true, "control": true,
	"comment": true, "backref": true, "if": true, "modify": true, "except": true,
	"lazy": true, "none": true, "optional": true, "required": true,
}

// Load parses and resolves src.
func Load(filename, src string) ([]Named, error) {
	f, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return f.Resolve()
}

// LoadFile reads, parses and resolves a description file.
func LoadFile(path string) ([]Named, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Load(path, string(data))
}

// Resolve turns each definition into a pattern tree in file order.
//
// Every definition is first bound to an empty non-capturing group; references
// point at that group and the group's child is filled in afterwards. A
// definition that refers to itself therefore yields a cyclic tree, which
// pattern.String reports as a *pattern.RecursionError.
func (f *File) Resolve() ([]Named, error) {
	r := &resolver{nodes: make(map[string]*pattern.NonCaptureGroup)}
	out := make([]Named, 0, len(f.Definitions))

	for _, d := range f.Definitions {
		if reserved[d.Name] {
			return nil, fmt.Errorf("%s: %q is a keyword", d.Pos, d.Name)
		}
		if _, dup := r.nodes[d.Name]; dup {
			return nil, fmt.Errorf("%s: pattern %q defined twice", d.Pos, d.Name)
		}
		r.nodes[d.Name] = pattern.Group(nil)
	}

	for _, d := range f.Definitions {
		p, err := r.expr(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", d.Name, err)
		}
		node := r.nodes[d.Name]
		node.Child = p
		out = append(out, Named{Name: d.Name, Pos: d.Pos, Pattern: node})
	}
	return out, nil
}

type resolver struct {
	nodes map[string]*pattern.NonCaptureGroup
}

func (r *resolver) expr(e *Expr) (pattern.Pattern, error) {
	branches := make([]pattern.Pattern, 0, len(e.Branches))
	for _, b := range e.Branches {
		p, err := r.sequence(b)
		if err != nil {
			return nil, err
		}
		branches = append(branches, p)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return pattern.Alt(branches...), nil
}

func (r *resolver) sequence(s *Sequence) (pattern.Pattern, error) {
	terms := make([]pattern.Pattern, 0, len(s.Terms))
	for _, t := range s.Terms {
		p, err := r.term(t)
		if err != nil {
			return nil, err
		}
		terms = append(terms, p)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return pattern.Seq(terms...), nil
}

func (r *resolver) term(t *Term) (pattern.Pattern, error) {
	p, err := r.atom(t.Atom)
	if err != nil {
		return nil, err
	}
	if t.Quant == nil {
		return p, nil
	}

	var q *pattern.Quantifier
	switch {
	case t.Quant.Op == "*":
		q = pattern.ZeroOrMore(p)
	case t.Quant.Op == "+":
		q = pattern.OneOrMore(p)
	case t.Quant.Op == "?":
		q = pattern.Optional(p)
	case !t.Quant.Comma:
		q = pattern.Exactly(p, *t.Quant.Min)
	case t.Quant.Max == nil:
		q = pattern.AtLeast(p, *t.Quant.Min)
	default:
		if *t.Quant.Max < *t.Quant.Min {
			return nil, fmt.Errorf("%s: quantifier {%d,%d} is inverted", t.Pos, *t.Quant.Min, *t.Quant.Max)
		}
		q = pattern.Repeat(p, *t.Quant.Min, *t.Quant.Max)
	}
	if t.Quant.Lazy {
		q.Lazy()
	}
	return q, nil
}

func (r *resolver) atom(a *Atom) (pattern.Pattern, error) {
	switch {
	case a.Literal != nil:
		return pattern.Lit(*a.Literal), nil
	case a.Group != nil:
		p, err := r.expr(a.Group)
		if err != nil {
			return nil, err
		}
		return pattern.Group(p), nil
	case a.Set != nil:
		return r.set(a.Set)
	case a.Range != nil:
		lz, err := pattern.ParseLeadingZeros(a.Range.Zeros)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Pos, err)
		}
		p, err := pattern.NumericRange(a.Range.Min.Int(), a.Range.Max.Int(), lz)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Pos, err)
		}
		return p, nil
	case a.Call != nil:
		return r.call(a)
	case a.Text != nil:
		p, err := stringCall(a.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Pos, err)
		}
		return p, nil
	case a.Backref != nil:
		if a.Backref.Name != nil {
			b, err := pattern.NamedBackref(*a.Backref.Name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", a.Pos, err)
			}
			return b, nil
		}
		return pattern.Backref(*a.Backref.Number), nil
	case a.Cond != nil:
		return r.cond(a)
	case a.Modify != nil:
		return r.modify(a)
	case a.Class != nil:
		return class(*a.Class), nil
	case a.Anchor != nil:
		return anchor(*a.Anchor), nil
	case a.Ref != nil:
		node, ok := r.nodes[*a.Ref]
		if !ok {
			return nil, fmt.Errorf("%s: unknown pattern %q", a.Pos, *a.Ref)
		}
		return node, nil
	}
	return nil, fmt.Errorf("%s: empty atom", a.Pos)
}

func (r *resolver) call(a *Atom) (pattern.Pattern, error) {
	c := a.Call
	body, err := r.expr(c.Body)
	if err != nil {
		return nil, err
	}

	var p pattern.Pattern
	switch c.Func {
	case "capture":
		switch {
		case c.Other != "":
			p, err = pattern.Balancing(c.Name, c.Other, body)
		case c.Named:
			p, err = pattern.Named(c.Name, body)
		default:
			p = pattern.Capture(body)
		}
	case "atomic":
		p = pattern.Atomic(body)
	case "ahead":
		p = pattern.Ahead(body)
	case "notahead":
		p = pattern.NotAhead(body)
	case "behind":
		p = pattern.Behind(body)
	case "notbehind":
		p = pattern.NotBehind(body)
	default:
		err = fmt.Errorf("unknown group %q", c.Func)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Pos, err)
	}
	if c.Func != "capture" && c.Named {
		return nil, fmt.Errorf("%s: %s cannot be named", a.Pos, c.Func)
	}
	return p, nil
}

func (r *resolver) cond(a *Atom) (pattern.Pattern, error) {
	yes, err := r.expr(a.Cond.Yes)
	if err != nil {
		return nil, err
	}
	var no pattern.Pattern
	if a.Cond.No != nil {
		if no, err = r.expr(a.Cond.No); err != nil {
			return nil, err
		}
	}
	if a.Cond.Name != nil {
		c, err := pattern.IfNamed(*a.Cond.Name, yes, no)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Pos, err)
		}
		return c, nil
	}
	return pattern.IfGroup(*a.Cond.Group, yes, no), nil
}

func (r *resolver) modify(a *Atom) (pattern.Pattern, error) {
	on, off, err := parseFlags(a.Modify.Flags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Pos, err)
	}
	body, err := r.expr(a.Modify.Body)
	if err != nil {
		return nil, err
	}
	return pattern.Modify(on, off, body), nil
}

// parseFlags reads "on-off" option letters such as "i-m".
func parseFlags(flags string) (on, off pattern.Modifier, err error) {
	onText, offText, _ := strings.Cut(flags, "-")
	if on, err = pattern.ParseModifier(onText); err != nil {
		return 0, 0, err
	}
	if off, err = pattern.ParseModifier(offText); err != nil {
		return 0, 0, err
	}
	return on, off, nil
}

func (r *resolver) set(s *Set) (pattern.Pattern, error) {
	set := &pattern.CharacterSet{Negated: s.Negated}
	ranges, chars, err := setItems(s.Items)
	if err != nil {
		return nil, err
	}
	set.AddRanges(ranges...).AddChars(chars...)

	ranges, chars, err = setItems(s.Except)
	if err != nil {
		return nil, err
	}
	set.SubtractRanges(ranges...).SubtractChars(chars...)
	return set, nil
}

func setItems(items []*SetItem) ([]pattern.CharacterRange, []pattern.SetMember, error) {
	var (
		ranges []pattern.CharacterRange
		chars  []pattern.SetMember
	)
	for _, it := range items {
		switch {
		case it.Class != nil:
			chars = append(chars, class(*it.Class).(pattern.SetMember))
		case it.Category != nil:
			c, err := pattern.InCategory(*it.Category)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", it.Pos, err)
			}
			chars = append(chars, c)
		case it.To != nil:
			from, err := oneRune(*it.From)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", it.Pos, err)
			}
			to, err := oneRune(*it.To)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", it.Pos, err)
			}
			rng, err := pattern.NewRange(from, to)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", it.Pos, err)
			}
			ranges = append(ranges, rng)
		default:
			// A multi-character string adds each of its characters.
			for _, c := range *it.From {
				chars = append(chars, pattern.Char(c))
			}
		}
	}
	return ranges, chars, nil
}

func oneRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func stringCall(c *StringCall) (pattern.Pattern, error) {
	switch c.Func {
	case "char":
		r, err := oneRune(c.Arg)
		if err != nil {
			return nil, err
		}
		return pattern.Char(r), nil
	case "raw":
		return pattern.RawText(c.Arg), nil
	case "category":
		return pattern.InCategory(c.Arg)
	case "notcategory":
		return pattern.NotInCategory(c.Arg)
	case "hex":
		return pattern.Hex(c.Arg)
	case "octal":
		return pattern.Octal(c.Arg)
	case "unicode":
		return pattern.Unicode(c.Arg)
	case "control":
		r, err := oneRune(c.Arg)
		if err != nil {
			return nil, err
		}
		return pattern.Control(r)
	case "comment":
		return pattern.NewComment(c.Arg)
	}
	return nil, fmt.Errorf("unknown function %q", c.Func)
}

func class(name string) pattern.Pattern {
	switch name {
	case "digit":
		return pattern.DigitChar()
	case "notdigit":
		return pattern.NonDigitChar()
	case "word":
		return pattern.WordChar()
	case "notword":
		return pattern.NonWordChar()
	case "space":
		return pattern.SpaceChar()
	case "notspace":
		return pattern.NonSpaceChar()
	}
	return pattern.Any()
}

func anchor(name string) pattern.Pattern {
	switch name {
	case "^":
		return pattern.Start()
	case "$":
		return pattern.End()
	case "start":
		return pattern.NewAnchor(pattern.StringStart)
	case "end":
		return pattern.NewAnchor(pattern.StringEnd)
	case "eol":
		return pattern.NewAnchor(pattern.StringEndOrNewline)
	case "contiguous":
		return pattern.NewAnchor(pattern.ContiguousMatch)
	case "boundary":
		return pattern.Boundary()
	}
	return pattern.NewAnchor(pattern.NonWordBoundary)
}
