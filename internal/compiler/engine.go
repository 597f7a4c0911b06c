package compiler

import (
	"fmt"
	"regexp"

	"github.com/KromDaniel/regcraft/pattern"
	"github.com/coregx/coregex"
	"github.com/dave/jennifer/jen"
	"github.com/dlclark/regexp2"
)

// Engine selects the regex package the generated code compiles with.
type Engine string

const (
	// EngineRegexp2 compiles with github.com/dlclark/regexp2, which accepts
	// the full .NET dialect.
	EngineRegexp2 Engine = "regexp2"
	// EngineRegexp compiles with the standard library. Only RE2 syntax is
	// accepted, so lookarounds, backreferences and atomic groups fail
	// verification.
	EngineRegexp Engine = "regexp"
	// EngineCoregex compiles with github.com/coregx/coregex (RE2 syntax).
	EngineCoregex Engine = "coregex"
)

const (
	regexp2Path = "github.com/dlclark/regexp2"
	coregexPath = "github.com/coregx/coregex"
)

// Engines lists the supported engines in display order.
var Engines = []Engine{EngineRegexp2, EngineRegexp, EngineCoregex}

// ParseEngine maps a name to an Engine. The empty name selects regexp2.
func ParseEngine(name string) (Engine, error) {
	if name == "" {
		return EngineRegexp2, nil
	}
	for _, e := range Engines {
		if string(e) == name {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown engine %q (want regexp2, regexp or coregex)", name)
}

// Verify compiles src with the engine and reports the engine's error.
func (e Engine) Verify(src string) error {
	var err error
	switch e {
	case EngineRegexp2:
		_, err = regexp2.Compile(src, regexp2.None)
	case EngineRegexp:
		_, err = regexp.Compile(src)
	case EngineCoregex:
		_, err = coregex.Compile(src)
	default:
		return fmt.Errorf("unknown engine %q", string(e))
	}
	return err
}

// Check is Verify preceded by a rejection of features the engine would
// misread. Only regexp2 reads every feature as written.
func (e Engine) Check(src string, features pattern.Features) error {
	if e != EngineRegexp2 && !features.RE2Safe() {
		return fmt.Errorf("%s reads character class subtraction as a different class", string(e))
	}
	return e.Verify(src)
}

// mustCompile returns the generated initializer compiling the constant id.
func (e Engine) mustCompile(id string) *jen.Statement {
	switch e {
	case EngineRegexp:
		return jen.Qual("regexp", "MustCompile").Call(jen.Id(id))
	case EngineCoregex:
		return jen.Qual(coregexPath, "MustCompile").Call(jen.Id(id))
	default:
		return jen.Qual(regexp2Path, "MustCompile").Call(jen.Id(id), jen.Qual(regexp2Path, "None"))
	}
}
