package pattern

// CaptureGroup is a numbered capturing group: (...).
type CaptureGroup struct {
	Child Pattern
}

// Capture returns a capturing group around child.
func Capture(child Pattern) *CaptureGroup {
	return &CaptureGroup{Child: child}
}

func (g *CaptureGroup) opening() string                { return "(" }
func (g *CaptureGroup) contents(s *state) error        { return s.write(g.Child) }
func (g *CaptureGroup) build(s *state) error           { return s.writeGroup(g) }
func (g *CaptureGroup) unwrap(*state) (Pattern, error) { return g, nil }
func (g *CaptureGroup) empty(s *state) (bool, error)   { return s.isEmpty(g.Child) }
func (g *CaptureGroup) single(*state) (bool, error)    { return true, nil }

func (g *CaptureGroup) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &CaptureGroup{Child: child}, nil
}

// NonCaptureGroup groups without capturing. It carries no meaning of its own:
// it unwraps to its child, and (?:...) is written only where the
// surroundings need it.
type NonCaptureGroup struct {
	Child Pattern
}

// Group returns a non-capturing group around child.
func Group(child Pattern) *NonCaptureGroup {
	return &NonCaptureGroup{Child: child}
}

func (g *NonCaptureGroup) build(s *state) error { return s.write(g.Child) }

func (g *NonCaptureGroup) unwrap(s *state) (Pattern, error) {
	if g.Child == nil {
		return g, nil
	}
	return s.unwrap(g.Child)
}

func (g *NonCaptureGroup) empty(s *state) (bool, error)  { return s.isEmpty(g.Child) }
func (g *NonCaptureGroup) single(s *state) (bool, error) { return s.isSingle(g.Child) }

func (g *NonCaptureGroup) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &NonCaptureGroup{Child: child}, nil
}

// NamedGroup is a named capturing group: (?<name>...).
type NamedGroup struct {
	Name  string
	Child Pattern
}

// Named returns a named capturing group.
func Named(name string, child Pattern) (*NamedGroup, error) {
	if err := validName("name", name); err != nil {
		return nil, err
	}
	return &NamedGroup{Name: name, Child: child}, nil
}

func (g *NamedGroup) opening() string                { return "(?<" + g.Name + ">" }
func (g *NamedGroup) contents(s *state) error        { return s.write(g.Child) }
func (g *NamedGroup) build(s *state) error           { return s.writeGroup(g) }
func (g *NamedGroup) unwrap(*state) (Pattern, error) { return g, nil }
func (g *NamedGroup) empty(s *state) (bool, error)   { return s.isEmpty(g.Child) }
func (g *NamedGroup) single(*state) (bool, error)    { return true, nil }

func (g *NamedGroup) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &NamedGroup{Name: g.Name, Child: child}, nil
}

// BalancingGroup deletes the latest capture of Other and, when Name is set,
// captures the text in between as Name: (?<name-other>...).
type BalancingGroup struct {
	Name  string
	Other string
	Child Pattern
}

// Balancing returns a balancing group. name may be empty.
func Balancing(name, other string, child Pattern) (*BalancingGroup, error) {
	if name != "" {
		if err := validName("name", name); err != nil {
			return nil, err
		}
	}
	if err := validName("other", other); err != nil {
		return nil, err
	}
	return &BalancingGroup{Name: name, Other: other, Child: child}, nil
}

func (g *BalancingGroup) opening() string                { return "(?<" + g.Name + "-" + g.Other + ">" }
func (g *BalancingGroup) contents(s *state) error        { return s.write(g.Child) }
func (g *BalancingGroup) build(s *state) error           { return s.writeGroup(g) }
func (g *BalancingGroup) unwrap(*state) (Pattern, error) { return g, nil }
func (g *BalancingGroup) empty(s *state) (bool, error)   { return s.isEmpty(g.Child) }
func (g *BalancingGroup) single(*state) (bool, error)    { return true, nil }

func (g *BalancingGroup) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &BalancingGroup{Name: g.Name, Other: g.Other, Child: child}, nil
}

// AtomicGroup never backtracks into its child once it matched: (?>...).
type AtomicGroup struct {
	Child Pattern
}

// Atomic returns an atomic group.
func Atomic(child Pattern) *AtomicGroup {
	return &AtomicGroup{Child: child}
}

func (g *AtomicGroup) opening() string                { return "(?>" }
func (g *AtomicGroup) contents(s *state) error        { return s.write(g.Child) }
func (g *AtomicGroup) build(s *state) error           { return s.writeGroup(g) }
func (g *AtomicGroup) unwrap(*state) (Pattern, error) { return g, nil }
func (g *AtomicGroup) empty(s *state) (bool, error)   { return s.isEmpty(g.Child) }
func (g *AtomicGroup) single(*state) (bool, error)    { return true, nil }

func (g *AtomicGroup) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &AtomicGroup{Child: child}, nil
}

// LookaroundKind is the direction and polarity of a lookaround.
type LookaroundKind int

const (
	Lookahead LookaroundKind = iota
	NegativeLookahead
	Lookbehind
	NegativeLookbehind
)

func (k LookaroundKind) String() string {
	switch k {
	case Lookahead:
		return "Lookahead"
	case NegativeLookahead:
		return "NegativeLookahead"
	case Lookbehind:
		return "Lookbehind"
	case NegativeLookbehind:
		return "NegativeLookbehind"
	}
	return "Lookaround"
}

func (k LookaroundKind) negative() bool {
	return k == NegativeLookahead || k == NegativeLookbehind
}

// Lookaround asserts that Child does or does not match next to the current
// position.
type Lookaround struct {
	Kind  LookaroundKind
	Child Pattern
}

// Ahead returns (?=child).
func Ahead(child Pattern) *Lookaround { return &Lookaround{Kind: Lookahead, Child: child} }

// NotAhead returns (?!child).
func NotAhead(child Pattern) *Lookaround { return &Lookaround{Kind: NegativeLookahead, Child: child} }

// Behind returns (?<=child).
func Behind(child Pattern) *Lookaround { return &Lookaround{Kind: Lookbehind, Child: child} }

// NotBehind returns (?<!child).
func NotBehind(child Pattern) *Lookaround { return &Lookaround{Kind: NegativeLookbehind, Child: child} }

func (g *Lookaround) opening() string {
	switch g.Kind {
	case NegativeLookahead:
		return "(?!"
	case Lookbehind:
		return "(?<="
	case NegativeLookbehind:
		return "(?<!"
	default:
		return "(?="
	}
}

func (g *Lookaround) contents(s *state) error        { return s.write(g.Child) }
func (g *Lookaround) build(s *state) error           { return s.writeGroup(g) }
func (g *Lookaround) unwrap(*state) (Pattern, error) { return g, nil }
func (g *Lookaround) single(*state) (bool, error)    { return true, nil }

// An empty negative lookaround never matches, so it is kept.
func (g *Lookaround) empty(s *state) (bool, error) {
	if g.Kind.negative() {
		return false, nil
	}
	return s.isEmpty(g.Child)
}

func (g *Lookaround) copyPattern(s *state) (Pattern, error) {
	child, err := s.copy(g.Child)
	if err != nil {
		return nil, err
	}
	return &Lookaround{Kind: g.Kind, Child: child}, nil
}
