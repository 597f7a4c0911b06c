// Package codegen provides code generation helpers and constants.
package codegen

// Names used in generated code
const (
	PatternSuffix = "Pattern"
	GeneratorName = "regcraft"
)

// PatternConst returns the name of the constant holding the pattern source.
func PatternConst(name string) string {
	return Identifier(name) + PatternSuffix
}

// Identifier returns the exported Go identifier for a definition name.
// Names that do not start with an ASCII letter get an "X" prefix.
func Identifier(name string) string {
	if name == "" || !isLetter(name[0]) {
		return "X" + name
	}
	return UpperFirst(name)
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
