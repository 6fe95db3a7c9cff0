// Package expr implements the logical expression algebra: the tagged-variant
// AST, free variables, capture-avoiding substitution, unification,
// normalization transforms, and CNF conversion that every other package in
// this module builds on.
package expr

import (
	"fmt"
	"sort"
	"strings"
)

// AssocOp is the operator of an n-ary associative connective.
type AssocOp int

const (
	And AssocOp = iota
	Or
	Bicon
	Equiv
	Plus
	Mult
)

func (op AssocOp) String() string {
	switch op {
	case And:
		return "∧"
	case Or:
		return "∨"
	case Bicon:
		return "↔"
	case Equiv:
		return "≡"
	case Plus:
		return "+"
	case Mult:
		return "*"
	default:
		return "?"
	}
}

// IsCommutative reports whether operands of op may be freely reordered.
// All associative connectives implemented today happen to be commutative;
// this stays a method rather than a constant so that adding a
// non-commutative associative op later doesn't require touching call sites.
func (op AssocOp) IsCommutative() bool { return true }

// QuantKind distinguishes universal from existential quantification.
type QuantKind int

const (
	Forall QuantKind = iota
	Exists
)

func (k QuantKind) String() string {
	if k == Forall {
		return "∀"
	}
	return "∃"
}

func (k QuantKind) Opposite() QuantKind {
	if k == Forall {
		return Exists
	}
	return Forall
}

// Expr is a logical expression. The concrete cases are Bottom, Top, Var,
// Apply, Not, Impl, Assoc, and Quant (§3 of the data model). Expr values are
// immutable; every transform returns a new tree.
type Expr interface {
	isExpr()
	String() string
}

type Bottom struct{}

func (Bottom) isExpr()         {}
func (Bottom) String() string  { return "⊥" }

type Top struct{}

func (Top) isExpr()        {}
func (Top) String() string { return "⊤" }

type Var struct {
	Name string
}

func (Var) isExpr() {}
func (v Var) String() string { return v.Name }

// Apply is a function/predicate application. Head is itself an Expr so that
// the data model can unify function application and (eventually) lambda
// application; the parser only ever produces a Var head (see note in
// InferArities), but the type accepts any expression.
type Apply struct {
	Head Expr
	Args []Expr
}

func (Apply) isExpr() {}
func (a Apply) String() string {
	var b strings.Builder
	b.WriteString(a.Head.String())
	if len(a.Args) > 0 {
		parts := make([]string, len(a.Args))
		for i, arg := range a.Args {
			parts[i] = arg.String()
		}
		b.WriteString("(")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	return b.String()
}

type Not struct {
	Body Expr
}

func (Not) isExpr() {}
func (n Not) String() string { return "¬" + n.Body.String() }

type Impl struct {
	Antecedent Expr
	Consequent Expr
}

func (Impl) isExpr() {}
func (i Impl) String() string {
	return fmt.Sprintf("(%s → %s)", i.Antecedent.String(), i.Consequent.String())
}

// Assoc is an n-ary associative connective. The parser's convention is
// len(Operands) >= 2, but transforms may legally produce 0 or 1 operands
// (e.g. combine_associative_ops on an empty premise set); disjuncts/conjuncts
// and their inverse constructors handle those as the connective's identity.
type Assoc struct {
	Op       AssocOp
	Operands []Expr
}

func (Assoc) isExpr() {}
func (a Assoc) String() string {
	parts := make([]string, len(a.Operands))
	for i, o := range a.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " "+a.Op.String()+" ") + ")"
}

type Quant struct {
	Kind QuantKind
	Name string
	Body Expr
}

func (Quant) isExpr() {}
func (q Quant) String() string {
	return fmt.Sprintf("(%s %s, %s)", q.Kind.String(), q.Name, q.Body.String())
}

// Equal is structural (syntactic) equality, not alpha-equivalence. Rules
// that need alpha-equivalence compare ReplacingBoundVars(a) to
// ReplacingBoundVars(b) instead (§4.1).
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Bottom:
		_, ok := b.(Bottom)
		return ok
	case Top:
		_, ok := b.(Top)
		return ok
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Apply:
		y, ok := b.(Apply)
		if !ok || len(x.Args) != len(y.Args) || !Equal(x.Head, y.Head) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Not:
		y, ok := b.(Not)
		return ok && Equal(x.Body, y.Body)
	case Impl:
		y, ok := b.(Impl)
		return ok && Equal(x.Antecedent, y.Antecedent) && Equal(x.Consequent, y.Consequent)
	case Assoc:
		y, ok := b.(Assoc)
		if !ok || x.Op != y.Op || len(x.Operands) != len(y.Operands) {
			return false
		}
		for i := range x.Operands {
			if !Equal(x.Operands[i], y.Operands[i]) {
				return false
			}
		}
		return true
	case Quant:
		y, ok := b.(Quant)
		return ok && x.Kind == y.Kind && x.Name == y.Name && Equal(x.Body, y.Body)
	default:
		return false
	}
}

// AlphaEqual compares two expressions up to renaming of bound variables.
func AlphaEqual(a, b Expr) bool {
	return Equal(ReplacingBoundVars(a), ReplacingBoundVars(b))
}

// rank gives a total order over expression shapes so that
// SortCommutativeOps has a stable comparator, mirroring the teacher's
// derived Ord on the AST enum.
func rank(e Expr) int {
	switch e.(type) {
	case Bottom:
		return 0
	case Top:
		return 1
	case Var:
		return 2
	case Apply:
		return 3
	case Not:
		return 4
	case Impl:
		return 5
	case Assoc:
		return 6
	case Quant:
		return 7
	default:
		return 99
	}
}

// Less is a total order over expressions used to canonicalize the order of
// commutative operands.
func Less(a, b Expr) bool {
	return compare(a, b) < 0
}

func compare(a, b Expr) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch x := a.(type) {
	case Bottom, Top:
		return 0
	case Var:
		y := b.(Var)
		return strings.Compare(x.Name, y.Name)
	case Apply:
		y := b.(Apply)
		if c := compare(x.Head, y.Head); c != 0 {
			return c
		}
		if len(x.Args) != len(y.Args) {
			return len(x.Args) - len(y.Args)
		}
		for i := range x.Args {
			if c := compare(x.Args[i], y.Args[i]); c != 0 {
				return c
			}
		}
		return 0
	case Not:
		y := b.(Not)
		return compare(x.Body, y.Body)
	case Impl:
		y := b.(Impl)
		if c := compare(x.Antecedent, y.Antecedent); c != 0 {
			return c
		}
		return compare(x.Consequent, y.Consequent)
	case Assoc:
		y := b.(Assoc)
		if int(x.Op) != int(y.Op) {
			return int(x.Op) - int(y.Op)
		}
		if len(x.Operands) != len(y.Operands) {
			return len(x.Operands) - len(y.Operands)
		}
		for i := range x.Operands {
			if c := compare(x.Operands[i], y.Operands[i]); c != 0 {
				return c
			}
		}
		return 0
	case Quant:
		y := b.(Quant)
		if x.Kind != y.Kind {
			return int(x.Kind) - int(y.Kind)
		}
		return compare(x.Body, y.Body)
	default:
		return 0
	}
}

func sortExprs(es []Expr) {
	sort.SliceStable(es, func(i, j int) bool { return Less(es[i], es[j]) })
}

func isSorted(es []Expr) bool {
	for i := 1; i < len(es); i++ {
		if Less(es[i], es[i-1]) {
			return false
		}
	}
	return true
}
