package pattern

// Concat matches its children one after another.
type Concat struct {
	Children []Pattern
}

// Seq returns a concatenation of children.
func Seq(children ...Pattern) *Concat {
	return &Concat{Children: children}
}

// Add appends children.
func (c *Concat) Add(children ...Pattern) *Concat {
	c.Children = append(c.Children, children...)
	return c
}

// nonEmpty returns the children that render as something.
func (c *Concat) nonEmpty(s *state) ([]Pattern, error) {
	var out []Pattern
	for _, child := range c.Children {
		empty, err := s.isEmpty(child)
		if err != nil {
			return nil, err
		}
		if !empty {
			out = append(out, child)
		}
	}
	return out, nil
}

func (c *Concat) build(s *state) error {
	children, err := c.nonEmpty(s)
	if err != nil {
		return err
	}
	if len(children) == 1 {
		return s.write(children[0])
	}
	for i, child := range children {
		start := s.out.Len()
		if err := s.writeBranch(child); err != nil {
			return err
		}
		if i > 0 {
			s.separateEscape(start)
		}
	}
	return nil
}

func (c *Concat) copyPattern(s *state) (Pattern, error) {
	children, err := s.copyAll(c.Children)
	if err != nil {
		return nil, err
	}
	return &Concat{Children: children}, nil
}

func (c *Concat) unwrap(s *state) (Pattern, error) {
	children, err := c.nonEmpty(s)
	if err != nil {
		return nil, err
	}
	if len(children) == 1 {
		return s.unwrap(children[0])
	}
	return c, nil
}

func (c *Concat) empty(s *state) (bool, error) {
	children, err := c.nonEmpty(s)
	return len(children) == 0, err
}

func (c *Concat) single(s *state) (bool, error) {
	children, err := c.nonEmpty(s)
	if err != nil {
		return false, err
	}
	switch len(children) {
	case 0:
		return true, nil
	case 1:
		return s.isSingle(children[0])
	default:
		return false, nil
	}
}

// Or matches any one of its children. An empty child is a valid branch
// that matches the empty string.
type Or struct {
	Children []Pattern
}

// Alt returns an alternation of children.
func Alt(children ...Pattern) *Or {
	return &Or{Children: children}
}

// Add appends branches.
func (o *Or) Add(children ...Pattern) *Or {
	o.Children = append(o.Children, children...)
	return o
}

func (o *Or) build(s *state) error {
	for i, child := range o.Children {
		if i > 0 {
			s.writeString("|")
		}
		if err := s.write(child); err != nil {
			return err
		}
	}
	return nil
}

func (o *Or) copyPattern(s *state) (Pattern, error) {
	children, err := s.copyAll(o.Children)
	if err != nil {
		return nil, err
	}
	return &Or{Children: children}, nil
}

func (o *Or) unwrap(s *state) (Pattern, error) {
	if len(o.Children) == 1 {
		return s.unwrap(o.Children[0])
	}
	return o, nil
}

// empty is true for no branches, or for a single branch that renders
// nothing. Two or more branches always write a separator.
func (o *Or) empty(s *state) (bool, error) {
	switch len(o.Children) {
	case 0:
		return true, nil
	case 1:
		return s.isEmpty(o.Children[0])
	default:
		return false, nil
	}
}

func (o *Or) single(s *state) (bool, error) {
	switch len(o.Children) {
	case 0:
		return true, nil
	case 1:
		return s.isSingle(o.Children[0])
	default:
		return false, nil
	}
}
