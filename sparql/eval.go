package sparql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/c360studio/semshapes/rdf"
)

// Binding maps variable names (without sigils) to bound terms. Each
// solution row returned by Select is an independent Binding.
type Binding map[string]rdf.Term

// clone copies the binding so backtracking branches stay independent.
func (b Binding) clone() Binding {
	out := make(Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Select evaluates the query against the graph and returns one Binding
// per solution. The context bounds execution: evaluation checks for
// cancellation between pattern matches, so a caller-supplied deadline
// terminates long-running queries.
func Select(ctx context.Context, g *rdf.Graph, q *Query) ([]Binding, error) {
	initial := Binding{}
	for _, bind := range q.Binds {
		initial[bind.Var] = bind.Term
	}

	var solutions []Binding
	err := matchPatterns(ctx, g, q.Patterns, initial, func(b Binding) error {
		for _, f := range q.Filters {
			ok, err := evalExpr(f, b)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		solutions = append(solutions, project(q, b))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return solutions, nil
}

// project restricts a solution to the query's projected variables.
// SELECT * keeps every binding.
func project(q *Query, b Binding) Binding {
	if len(q.Vars) == 0 {
		return b.clone()
	}
	out := make(Binding, len(q.Vars))
	for _, v := range q.Vars {
		if t, ok := b[v]; ok {
			out[v] = t
		}
	}
	return out
}

// matchPatterns recursively joins the remaining patterns against the
// graph, invoking emit for every complete solution.
func matchPatterns(ctx context.Context, g *rdf.Graph, patterns []TriplePattern, b Binding, emit func(Binding) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("query cancelled: %w", err)
	}
	if len(patterns) == 0 {
		return emit(b)
	}

	head, rest := patterns[0], patterns[1:]

	for _, t := range candidates(g, head, b) {
		next, ok := unify(head, t, b)
		if !ok {
			continue
		}
		if err := matchPatterns(ctx, g, rest, next, emit); err != nil {
			return err
		}
	}
	return nil
}

// candidates narrows the triples scanned for a pattern using the graph's
// subject index when the subject is already known.
func candidates(g *rdf.Graph, p TriplePattern, b Binding) []rdf.Triple {
	var subject *rdf.Term
	if t, ok := resolve(p.Subject, b); ok {
		subject = &t
	}
	var predicate *rdf.Term
	if t, ok := resolve(p.Predicate, b); ok {
		predicate = &t
	}
	if subject == nil && predicate == nil {
		return g.Triples()
	}
	return g.TriplesWith(subject, predicate)
}

// resolve returns the concrete term for a pattern position when it is a
// constant or an already-bound variable.
func resolve(pt PatternTerm, b Binding) (rdf.Term, bool) {
	if !pt.IsVar {
		return pt.Term, true
	}
	t, ok := b[pt.Var]
	return t, ok
}

// unify extends the binding with the pattern positions matched against a
// concrete triple, or reports failure.
func unify(p TriplePattern, t rdf.Triple, b Binding) (Binding, bool) {
	next := b
	copied := false

	bind := func(pt PatternTerm, value rdf.Term) bool {
		if !pt.IsVar {
			return pt.Term == value
		}
		if bound, ok := next[pt.Var]; ok {
			return bound == value
		}
		if !copied {
			next = next.clone()
			copied = true
		}
		next[pt.Var] = value
		return true
	}

	if !bind(p.Subject, t.Subject) {
		return nil, false
	}
	if !bind(p.Predicate, t.Predicate) {
		return nil, false
	}
	if !bind(p.Object, t.Object) {
		return nil, false
	}
	return next, true
}

// evalExpr evaluates a filter expression against a solution.
func evalExpr(e Expr, b Binding) (bool, error) {
	switch expr := e.(type) {
	case Comparison:
		return evalComparison(expr, b)
	case Logical:
		left, err := evalExpr(expr.Left, b)
		if err != nil {
			return false, err
		}
		if expr.Op == "&&" && !left {
			return false, nil
		}
		if expr.Op == "||" && left {
			return true, nil
		}
		return evalExpr(expr.Right, b)
	case Not:
		inner, err := evalExpr(expr.Inner, b)
		if err != nil {
			return false, err
		}
		return !inner, nil
	default:
		return false, fmt.Errorf("unsupported filter expression %T", e)
	}
}

func evalComparison(c Comparison, b Binding) (bool, error) {
	left, err := operandTerm(c.Left, b)
	if err != nil {
		return false, err
	}
	right, err := operandTerm(c.Right, b)
	if err != nil {
		return false, err
	}

	// Equality works on whole terms; ordering needs comparable values.
	switch c.Op {
	case "=":
		return left == right, nil
	case "!=":
		return left != right, nil
	}

	if ln, lok := numericValue(left); lok {
		if rn, rok := numericValue(right); rok {
			return compareOrdered(c.Op, ln, rn)
		}
	}
	if left.IsLiteral() && right.IsLiteral() {
		return compareOrdered(c.Op, left.Value, right.Value)
	}
	return false, fmt.Errorf("operands of %s are not comparable", c.Op)
}

func compareOrdered[T float64 | string](op string, a, b T) (bool, error) {
	switch op {
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", op)
	}
}

func operandTerm(o Operand, b Binding) (rdf.Term, error) {
	if !o.IsVar {
		return o.Term, nil
	}
	t, ok := b[o.Var]
	if !ok {
		return rdf.Term{}, fmt.Errorf("unbound variable ?%s in filter", o.Var)
	}
	return t, nil
}

// numericValue extracts a float64 from a literal whose lexical form
// parses as a number.
func numericValue(t rdf.Term) (float64, bool) {
	if !t.IsLiteral() {
		return 0, false
	}
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
