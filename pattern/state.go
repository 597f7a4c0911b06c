package pattern

import "bytes"

type query int

const (
	queryString query = iota
	queryUnwrap
	queryEmpty
	querySingle
	queryCopy
	numQueries
)

var queryNames = [numQueries]string{
	queryString: "string",
	queryUnwrap: "unwrap",
	queryEmpty:  "emptiness",
	querySingle: "atomicity",
	queryCopy:   "copy",
}

// state is the per-call traversal context. It keeps one stack of in-progress
// nodes per query for cycle detection and one cache per query, except copy.
//
// Rendering writes into a single buffer. The text a node produced is the
// slice of the buffer between the offset recorded before its build and the
// end of the buffer afterwards; that slice is cached and spliced back in when
// the same node is rendered again.
type state struct {
	out      bytes.Buffer
	stacks   [numQueries][]Pattern
	features Features

	rendered  map[Pattern]string
	unwrapped map[Pattern]Pattern
	empties   map[Pattern]bool
	singles   map[Pattern]bool
}

func newState() *state {
	return &state{
		rendered:  make(map[Pattern]string),
		unwrapped: make(map[Pattern]Pattern),
		empties:   make(map[Pattern]bool),
		singles:   make(map[Pattern]bool),
	}
}

// compute evaluates fn for p under query q. A nil cache disables memoisation;
// hit, when set, is called with the cached value instead of fn.
func compute[T any](s *state, q query, cache map[Pattern]T, p Pattern, fn func() (T, error), hit func(T)) (T, error) {
	if cache != nil {
		if v, ok := cache[p]; ok {
			if hit != nil {
				hit(v)
			}
			return v, nil
		}
	}

	var zero T
	for _, active := range s.stacks[q] {
		if active == p {
			path := make([]Pattern, 0, len(s.stacks[q])+1)
			path = append(path, s.stacks[q]...)
			path = append(path, p)
			return zero, &RecursionError{Query: queryNames[q], Path: path, Node: p}
		}
	}

	s.stacks[q] = append(s.stacks[q], p)
	v, err := fn()
	s.stacks[q] = s.stacks[q][:len(s.stacks[q])-1]
	if err != nil {
		return zero, err
	}
	if cache != nil {
		cache[p] = v
	}
	return v, nil
}

// write renders p into the output buffer.
func (s *state) write(p Pattern) error {
	if p == nil {
		return nil
	}
	_, err := compute(s, queryString, s.rendered, p, func() (string, error) {
		start := s.out.Len()
		if err := p.build(s); err != nil {
			return "", err
		}
		return string(s.out.Bytes()[start:]), nil
	}, func(text string) {
		s.out.WriteString(text)
	})
	return err
}

func (s *state) writeString(text string) {
	s.out.WriteString(text)
}

// insert splices text into the output at offset at.
func (s *state) insert(at int, text string) {
	tail := append([]byte(text), s.out.Bytes()[at:]...)
	s.out.Truncate(at)
	s.out.Write(tail)
}

// separateEscape keeps a one-digit escape ending before offset at, such as
// \1 or \0, from absorbing a digit that starts at at: \1 then 0 would read
// as \10. The escape is wrapped as (?:\1).
func (s *state) separateEscape(at int) {
	b := s.out.Bytes()
	if at < 2 || at >= len(b) || !isDigit(b[at]) || !isDigit(b[at-1]) {
		return
	}
	slashes := 0
	for i := at - 2; i >= 0 && b[i] == '\\'; i-- {
		slashes++
	}
	if slashes%2 == 0 {
		return
	}
	s.insert(at, ")")
	s.insert(at-2, "(?:")
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// writeSingle renders p, wrapping it in a non-capturing group unless it is
// atomic.
func (s *state) writeSingle(p Pattern) error {
	single, err := s.isSingle(p)
	if err != nil {
		return err
	}
	if single {
		return s.write(p)
	}
	s.writeString("(?:")
	if err := s.write(p); err != nil {
		return err
	}
	s.writeString(")")
	return nil
}

// writeBranch renders p where a bare alternation would leak into its
// surroundings: next to concatenation siblings or as a conditional branch.
func (s *state) writeBranch(p Pattern) error {
	u, err := s.unwrap(p)
	if err != nil {
		return err
	}
	if or, ok := u.(*Or); ok && len(or.Children) > 1 {
		s.writeString("(?:")
		if err := s.write(u); err != nil {
			return err
		}
		s.writeString(")")
		return nil
	}
	return s.write(u)
}

func (s *state) unwrap(p Pattern) (Pattern, error) {
	if p == nil {
		return nil, nil
	}
	return compute(s, queryUnwrap, s.unwrapped, p, func() (Pattern, error) {
		return p.unwrap(s)
	}, nil)
}

func (s *state) isEmpty(p Pattern) (bool, error) {
	if p == nil {
		return true, nil
	}
	return compute(s, queryEmpty, s.empties, p, func() (bool, error) {
		return p.empty(s)
	}, nil)
}

func (s *state) isSingle(p Pattern) (bool, error) {
	if p == nil {
		return true, nil
	}
	return compute(s, querySingle, s.singles, p, func() (bool, error) {
		return p.single(s)
	}, nil)
}

func (s *state) copy(p Pattern) (Pattern, error) {
	if p == nil {
		return nil, nil
	}
	return compute(s, queryCopy, nil, p, func() (Pattern, error) {
		return p.copyPattern(s)
	}, nil)
}

// copyAll copies every pattern of ps.
func (s *state) copyAll(ps []Pattern) ([]Pattern, error) {
	if ps == nil {
		return nil, nil
	}
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		c, err := s.copy(p)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// groupNode is a member of the group family: the shared wrapper writes the
// opening delimiter and the closing parenthesis around contents.
type groupNode interface {
	Pattern
	opening() string
	contents(s *state) error
}

// writeGroup renders g, or nothing at all when g is empty.
func (s *state) writeGroup(g groupNode) error {
	empty, err := s.isEmpty(g)
	if err != nil || empty {
		return err
	}
	s.writeString(g.opening())
	if err := g.contents(s); err != nil {
		return err
	}
	s.writeString(")")
	return nil
}
