package regcraft

import (
	"errors"
	"fmt"
	"time"

	"github.com/KromDaniel/regcraft/pattern"
	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
)

// CompileOptions configures the regexp2 hand-off.
type CompileOptions struct {
	// Options are the regexp2 compile options, such as regexp2.IgnoreCase.
	Options regexp2.RegexOptions

	// MatchTimeout bounds each match. Zero keeps regexp2.DefaultMatchTimeout.
	MatchTimeout time.Duration
}

// DefaultCompileOptions is used by MustCompile. Callers may pass their own
// CompileOptions to Compile instead of changing it.
var DefaultCompileOptions = CompileOptions{Options: regexp2.None}

// Render returns the .NET-dialect source of p.
func Render(p pattern.Pattern) (string, error) {
	return pattern.String(p)
}

// Compile renders p and compiles it with regexp2.
func Compile(p pattern.Pattern, opts CompileOptions) (*regexp2.Regexp, error) {
	src, err := pattern.String(p)
	if err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(src, opts.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %q: %w", src, err)
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}
	return re, nil
}

// MustCompile is like Compile with DefaultCompileOptions but panics on error.
func MustCompile(p pattern.Pattern) *regexp2.Regexp {
	re, err := Compile(p, DefaultCompileOptions)
	if err != nil {
		panic("regcraft: " + err.Error())
	}
	return re
}

// ErrNotRE2 is returned by CompileRE2 for patterns that RE2 would read with
// a different meaning.
var ErrNotRE2 = errors.New("pattern uses syntax RE2 reads differently")

// CompileRE2 renders p and compiles it with coregex. Only the RE2 subset is
// accepted: lookarounds, backreferences, atomic and balancing groups and
// conditionals fail to parse, and character class subtraction is rejected
// with ErrNotRE2 before compiling.
func CompileRE2(p pattern.Pattern) (*coregex.Regex, error) {
	src, features, err := pattern.StringFeatures(p)
	if err != nil {
		return nil, err
	}
	if !features.RE2Safe() {
		return nil, fmt.Errorf("failed to compile %q: %w", src, ErrNotRE2)
	}
	re, err := coregex.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %q: %w", src, err)
	}
	return re, nil
}
