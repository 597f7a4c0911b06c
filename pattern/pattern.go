// Package pattern builds .NET-dialect regular expressions from a tree of nodes.
//
// A tree is assembled from leaves (Literal, Character, Class, Anchor,
// Backreference, Raw, Wildcard, CharacterSet) and containers (Concat, Or,
// Quantifier and the group family). Rendering a tree applies the escaping
// rules of the dialect and adds the minimum number of non-capturing groups:
//
//	p := pattern.Seq(
//		pattern.Start(),
//		pattern.Exactly(pattern.Capture(pattern.Lit("abc")), 3),
//		pattern.End(),
//	)
//	s, err := pattern.String(p) // ^(abc){3}$
//
// Nodes are mutable and may be shared inside one tree; a shared node is
// rendered once and replayed. A node that contains itself is reported as a
// *RecursionError instead of looping. Rendering the same tree from several
// goroutines at once is not supported.
package pattern

// Pattern is one node of a pattern tree.
//
// The method set is unexported: the variants of this package are the only
// implementations. Every query goes through a state so results are memoised
// and cycles are detected.
type Pattern interface {
	build(s *state) error
	copyPattern(s *state) (Pattern, error)
	unwrap(s *state) (Pattern, error)
	empty(s *state) (bool, error)
	single(s *state) (bool, error)
}

// String renders p into the regular expression dialect.
func String(p Pattern) (string, error) {
	s := newState()
	if err := s.write(p); err != nil {
		return "", err
	}
	return s.out.String(), nil
}

// Features lists syntax of a rendered pattern that RE2 parsers accept
// without error but read with a different meaning.
type Features struct {
	// Subtraction is set when a character set uses -[...] subtraction. RE2
	// reads [a-z-[aeiou]] as a class followed by a literal ].
	Subtraction bool
}

// RE2Safe reports whether RE2 engines read the pattern as written.
func (f Features) RE2Safe() bool { return !f.Subtraction }

// StringFeatures is like String and also reports the features the output
// uses.
func StringFeatures(p Pattern) (string, Features, error) {
	s := newState()
	if err := s.write(p); err != nil {
		return "", Features{}, err
	}
	return s.out.String(), s.features, nil
}

// MustString is like String but panics if p cannot be rendered.
func MustString(p Pattern) string {
	out, err := String(p)
	if err != nil {
		panic(`pattern: String(` + nodeName(p) + `): ` + err.Error())
	}
	return out
}

// Copy returns a deep copy of p. Nodes shared inside p are copied once per
// occurrence, so the result has no aliasing with p or with itself.
func Copy(p Pattern) (Pattern, error) {
	return newState().copy(p)
}

// Unwrap returns the node that p renders as once trivial containers are removed.
func Unwrap(p Pattern) (Pattern, error) {
	return newState().unwrap(p)
}

// IsEmpty reports whether p renders as the empty string.
func IsEmpty(p Pattern) (bool, error) {
	return newState().isEmpty(p)
}

// IsSingle reports whether p can be quantified without a wrapping group.
func IsSingle(p Pattern) (bool, error) {
	return newState().isSingle(p)
}

// nodeName returns the variant name used in error messages.
func nodeName(p Pattern) string {
	switch n := p.(type) {
	case nil:
		return "<nil>"
	case *Literal:
		return "Literal"
	case *Raw:
		return "Raw"
	case *Character:
		return "Character"
	case *Class:
		return "Class"
	case *Wildcard:
		return "Wildcard"
	case *Anchor:
		return "Anchor"
	case *Backreference:
		return "Backreference"
	case *CharacterSet:
		return "CharacterSet"
	case *Concat:
		return "Concat"
	case *Or:
		return "Or"
	case *Quantifier:
		return "Quantifier"
	case *CaptureGroup:
		return "CaptureGroup"
	case *NonCaptureGroup:
		return "NonCaptureGroup"
	case *NamedGroup:
		return "NamedGroup"
	case *BalancingGroup:
		return "BalancingGroup"
	case *AtomicGroup:
		return "AtomicGroup"
	case *Lookaround:
		return n.Kind.String()
	case *Conditional:
		return "Conditional"
	case *InlineModifier:
		return "InlineModifier"
	case *Comment:
		return "Comment"
	default:
		return "Pattern"
	}
}
