// Package definition reads pattern description files.
//
// A description file is a list of named definitions:
//
//	// dotted quad
//	pattern Octet = range(0, 255);
//	pattern IPv4  = ^ Octet "." Octet "." Octet "." Octet $;
//
// A definition may refer to any other definition by name. Every reference
// resolves to the same node, so a definition used several times is
// rendered once.
package definition

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed description file.
type File struct {
	Definitions []*Definition `parser:"@@*"`
}

// Definition is one `pattern Name = expr;` entry.
type Definition struct {
	Pos  lexer.Position
	Name string `parser:"'pattern' @Ident '='"`
	Expr *Expr  `parser:"@@ ';'"`
}

// Expr is an alternation of sequences.
type Expr struct {
	Branches []*Sequence `parser:"@@ ( '|' @@ )*"`
}

// Sequence is a run of terms matched one after another.
type Sequence struct {
	Terms []*Term `parser:"@@+"`
}

// Term is an atom with an optional quantifier.
type Term struct {
	Pos   lexer.Position
	Atom  *Atom       `parser:"@@"`
	Quant *Quantifier `parser:"@@?"`
}

// Quantifier is one of * + ? {n} {n,} {n,m}, optionally followed by lazy.
type Quantifier struct {
	Op    string `parser:"( @( '*' | '+' | '?' )"`
	Min   *int   `parser:"| '{' @Int"`
	Comma bool   `parser:"  @','?"`
	Max   *int   `parser:"  @Int? '}' )"`
	Lazy  bool   `parser:"@'lazy'?"`
}

// Atom is a single operand.
type Atom struct {
	Pos     lexer.Position
	Literal *string     `parser:"  @String"`
	Group   *Expr       `parser:"| '(' @@ ')'"`
	Set     *Set        `parser:"| @@"`
	Range   *Range      `parser:"| @@"`
	Call    *Call       `parser:"| @@"`
	Text    *StringCall `parser:"| @@"`
	Backref *Backref    `parser:"| @@"`
	Cond    *Cond       `parser:"| @@"`
	Modify  *Modify     `parser:"| @@"`
	Class   *string     `parser:"| @( 'digit' | 'notdigit' | 'word' | 'notword' | 'space' | 'notspace' | 'any' )"`
	Anchor  *string     `parser:"| @( '^' | '$' | 'start' | 'end' | 'eol' | 'contiguous' | 'boundary' | 'notboundary' )"`
	Ref     *string     `parser:"| @Ident"`
}

// Set is a bracketed character set: [ items ], [^ items ] or
// [ items except items ].
type Set struct {
	Negated bool       `parser:"'[' @'^'?"`
	Items   []*SetItem `parser:"@@*"`
	Except  []*SetItem `parser:"( 'except' @@+ )? ']'"`
}

// SetItem is a character, a range of characters or a class inside a set.
type SetItem struct {
	Pos      lexer.Position
	From     *string `parser:"  @String"`
	To       *string `parser:"  ( '-' @String )?"`
	Category *string `parser:"| 'category' '(' @String ')'"`
	Class    *string `parser:"| @( 'digit' | 'notdigit' | 'word' | 'notword' | 'space' | 'notspace' )"`
}

// Range is a numeric range: range(min, max[, none|optional|required]).
type Range struct {
	Min   *Number `parser:"'range' '(' @@ ','"`
	Max   *Number `parser:"@@"`
	Zeros string  `parser:"( ',' @( 'none' | 'optional' | 'required' ) )? ')'"`
}

// Number is a signed integer.
type Number struct {
	Negative bool  `parser:"@'-'?"`
	Value    int64 `parser:"@Int"`
}

// Int returns the signed value.
func (n *Number) Int() int64 {
	if n.Negative {
		return -n.Value
	}
	return n.Value
}

// Call is a group around an expression, such as capture<name>(...) or the
// balancing capture<name-other>(...).
type Call struct {
	Func  string `parser:"@( 'capture' | 'atomic' | 'ahead' | 'notahead' | 'behind' | 'notbehind' )"`
	Named bool   `parser:"( @'<'"`
	Name  string `parser:"  @Ident?"`
	Other string `parser:"  ( '-' @Ident )? '>' )?"`
	Body  *Expr  `parser:"'(' @@ ')'"`
}

// StringCall is a leaf built from a string argument, such as char("x").
type StringCall struct {
	Func string `parser:"@( 'char' | 'raw' | 'category' | 'notcategory' | 'hex' | 'octal' | 'unicode' | 'control' | 'comment' )"`
	Arg  string `parser:"'(' @String ')'"`
}

// Backref refers to an earlier group by number or name.
type Backref struct {
	Number *int    `parser:"'backref' '(' ( @Int"`
	Name   *string `parser:"| @Ident ) ')'"`
}

// Cond is if(group, yes[, no]).
type Cond struct {
	Group *int    `parser:"'if' '(' ( @Int"`
	Name  *string `parser:"| @Ident ) ','"`
	Yes   *Expr   `parser:"@@"`
	No    *Expr   `parser:"( ',' @@ )? ')'"`
}

// Modify is modify("on-off", expr).
type Modify struct {
	Flags string `parser:"'modify' '(' @String ','"`
	Body  *Expr  `parser:"@@ ')'"`
}

var descriptionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[-=|*+?(){}\[\],;<>^$]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(descriptionLexer),
	participle.Unquote("String"),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses a description file. filename is only used in positions.
func Parse(filename, src string) (*File, error) {
	return parser.ParseString(filename, src)
}
