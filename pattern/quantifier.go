package pattern

import "strconv"

// Unbounded is the Max of a quantifier without an upper bound.
const Unbounded = -1

// Quantifier repeats Child between Min and Max times.
type Quantifier struct {
	Child  Pattern
	Min    int
	Max    int // Unbounded for no upper bound
	Greedy bool
}

// Repeat returns a greedy quantifier {min,max}.
func Repeat(child Pattern, min, max int) *Quantifier {
	return &Quantifier{Child: child, Min: min, Max: max, Greedy: true}
}

// Exactly returns {n}.
func Exactly(child Pattern, n int) *Quantifier { return Repeat(child, n, n) }

// AtLeast returns {n,}.
func AtLeast(child Pattern, n int) *Quantifier { return Repeat(child, n, Unbounded) }

// Optional returns ?.
func Optional(child Pattern) *Quantifier { return Repeat(child, 0, 1) }

// ZeroOrMore returns *.
func ZeroOrMore(child Pattern) *Quantifier { return Repeat(child, 0, Unbounded) }

// OneOrMore returns +.
func OneOrMore(child Pattern) *Quantifier { return Repeat(child, 1, Unbounded) }

// Lazy makes the quantifier match as few repetitions as possible.
func (q *Quantifier) Lazy() *Quantifier {
	q.Greedy = false
	return q
}

// SetChild replaces the repeated node.
func (q *Quantifier) SetChild(child Pattern) *Quantifier {
	q.Child = child
	return q
}

func (q *Quantifier) exactly(n int) bool { return q.Min == n && q.Max == n }

func (q *Quantifier) validate() error {
	switch {
	case q.Min < 0:
		return patternError(q, "minimum %d is negative", q.Min)
	case q.Max < Unbounded:
		return patternError(q, "maximum %d is negative", q.Max)
	case q.Max != Unbounded && q.Max < q.Min:
		return patternError(q, "maximum %d is less than minimum %d", q.Max, q.Min)
	}
	return nil
}

func (q *Quantifier) suffix() string {
	var out string
	switch {
	case q.Min == 0 && q.Max == 1:
		out = "?"
	case q.Min == 0 && q.Max == Unbounded:
		out = "*"
	case q.Min == 1 && q.Max == Unbounded:
		out = "+"
	case q.Min == q.Max:
		out = "{" + strconv.Itoa(q.Min) + "}"
	case q.Max == Unbounded:
		out = "{" + strconv.Itoa(q.Min) + ",}"
	default:
		out = "{" + strconv.Itoa(q.Min) + "," + strconv.Itoa(q.Max) + "}"
	}
	if !q.Greedy {
		out += "?"
	}
	return out
}

func (q *Quantifier) build(s *state) error {
	empty, err := s.isEmpty(q)
	if err != nil || empty {
		return err
	}
	child, err := s.unwrap(q.Child)
	if err != nil {
		return err
	}
	switch c := child.(type) {
	case *Anchor:
		return patternError(q, "cannot quantify anchor %s", anchorForms[c.Kind])
	case *Comment:
		return patternError(q, "cannot quantify a comment")
	case *InlineModifier:
		if c.Child == nil {
			return patternError(q, "cannot quantify an inline modifier")
		}
	}

	if q.exactly(1) {
		return s.write(child)
	}
	if err := s.writeSingle(child); err != nil {
		return err
	}
	s.writeString(q.suffix())
	return nil
}

func (q *Quantifier) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(q.Child)
	if err != nil {
		return nil, err
	}
	return &Quantifier{Child: child, Min: q.Min, Max: q.Max, Greedy: q.Greedy}, nil
}

func (q *Quantifier) unwrap(s *state) (Pattern, error) {
	if q.exactly(1) {
		return s.unwrap(q.Child)
	}
	return q, nil
}

func (q *Quantifier) empty(s *state) (bool, error) {
	if err := q.validate(); err != nil {
		return false, err
	}
	if q.Max == 0 {
		return true, nil
	}
	child, err := s.unwrap(q.Child)
	if err != nil {
		return false, err
	}
	return s.isEmpty(child)
}

func (q *Quantifier) single(s *state) (bool, error) {
	empty, err := s.isEmpty(q)
	if err != nil || empty {
		return true, err
	}
	if q.exactly(1) {
		return s.isSingle(q.Child)
	}
	return false, nil
}
