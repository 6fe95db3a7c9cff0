package parser

import (
	"fmt"

	"aris/internal/expr"
)

// Parse parses source into an expression tree, the concrete realization of
// the external-collaborator contract "parse(str) -> option<Expr>": nil
// error and a non-nil Expr on success, a descriptive error otherwise.
func Parse(source string) (expr.Expr, error) {
	ast, err := exprParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return buildExpr(ast), nil
}

func buildExpr(a *astExpr) expr.Expr {
	left := buildImplication(a.Left)
	if len(a.Rest) == 0 {
		return left
	}
	operands := []expr.Expr{left}
	for _, r := range a.Rest {
		operands = append(operands, buildImplication(r))
	}
	return expr.Assoc{Op: expr.Bicon, Operands: operands}
}

func buildImplication(a *astImplication) expr.Expr {
	left := buildDisjunction(a.Left)
	if a.Right == nil {
		return left
	}
	return expr.Impl{Antecedent: left, Consequent: buildImplication(a.Right)}
}

func buildDisjunction(a *astDisjunction) expr.Expr {
	left := buildConjunction(a.Left)
	if len(a.Rest) == 0 {
		return left
	}
	operands := []expr.Expr{left}
	for _, r := range a.Rest {
		operands = append(operands, buildConjunction(r))
	}
	return expr.Assoc{Op: expr.Or, Operands: operands}
}

func buildConjunction(a *astConjunction) expr.Expr {
	left := buildUnary(a.Left)
	if len(a.Rest) == 0 {
		return left
	}
	operands := []expr.Expr{left}
	for _, r := range a.Rest {
		operands = append(operands, buildUnary(r))
	}
	return expr.Assoc{Op: expr.And, Operands: operands}
}

func buildUnary(a *astUnary) expr.Expr {
	e := buildAtom(a.Atom)
	for i := 0; i < len(a.Nots); i++ {
		e = expr.Not{Body: e}
	}
	return e
}

func buildAtom(a *astAtom) expr.Expr {
	switch {
	case a.Quant != nil:
		kind := expr.Forall
		if a.Quant.Kind == "exists" {
			kind = expr.Exists
		}
		return expr.Quant{Kind: kind, Name: a.Quant.Name, Body: buildExpr(a.Quant.Body)}
	case a.Call != nil:
		if len(a.Call.Args) == 0 {
			return literalOrVar(a.Call.Ident)
		}
		args := make([]expr.Expr, len(a.Call.Args))
		for i, arg := range a.Call.Args {
			args[i] = buildExpr(arg)
		}
		return expr.Apply{Head: expr.Var{Name: a.Call.Ident}, Args: args}
	case a.Paren != nil:
		return buildExpr(a.Paren)
	default:
		return expr.Bottom{}
	}
}

func literalOrVar(name string) expr.Expr {
	switch name {
	case "T", "true", "top":
		return expr.Top{}
	case "F", "false", "bottom":
		return expr.Bottom{}
	default:
		return expr.Var{Name: name}
	}
}
