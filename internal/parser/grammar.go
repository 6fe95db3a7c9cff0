// Package parser turns expression source text into expr.Expr trees, via a
// github.com/alecthomas/participle/v2 struct-tag grammar in the same style
// as the teacher's own expression-language parser: a lexer of token rules
// feeding a precedence-climbing cascade of grammar structs, each level
// responsible for one binary-operator precedence tier.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes identifiers, the boolean/quantifier keywords,
// operator symbols (ASCII and unicode spellings both accepted), and
// punctuation, mirroring the token-rule style of the teacher's lexer.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Biconditional", Pattern: `<->|↔`},
	{Name: "Implies", Pattern: `->|→`},
	{Name: "And", Pattern: `&&|&|∧`},
	{Name: "Or", Pattern: `\|\||\||∨`},
	{Name: "Not", Pattern: `!|¬|~`},
	{Name: "Comma", Pattern: `,`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
})

// astExpr is the top grammar rule: a biconditional chain.
type astExpr struct {
	Left  *astImplication `parser:"@@"`
	Rest  []*astImplication `parser:"( Biconditional @@ )*"`
}

// astImplication is right-associative: p -> q -> r means p -> (q -> r).
type astImplication struct {
	Left  *astDisjunction `parser:"@@"`
	Right *astImplication `parser:"( Implies @@ )?"`
}

type astDisjunction struct {
	Left *astConjunction   `parser:"@@"`
	Rest []*astConjunction `parser:"( Or @@ )*"`
}

type astConjunction struct {
	Left *astUnary   `parser:"@@"`
	Rest []*astUnary `parser:"( And @@ )*"`
}

type astUnary struct {
	Nots []string `parser:"@Not*"`
	Atom *astAtom `parser:"@@"`
}

type astAtom struct {
	Quant *astQuant `parser:"  @@"`
	Call  *astCall  `parser:"| @@"`
	Paren *astExpr  `parser:"| LParen @@ RParen"`
}

type astCall struct {
	Ident string     `parser:"@Ident"`
	Args  []*astExpr `parser:"( LParen ( @@ ( Comma @@ )* )? RParen )?"`
}

type astQuant struct {
	Kind string   `parser:"@('forall' | 'exists')"`
	Name string   `parser:"@Ident Comma"`
	Body *astExpr `parser:"@@"`
}

var exprParser = participle.MustBuild[astExpr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
	participle.Unquote(),
)
