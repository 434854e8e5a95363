package validator

import (
	"fmt"
	"strconv"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// rangeBounds carries the four optional inequality bounds shared by
// property and node shapes.
type rangeBounds struct {
	minInclusive *float64
	maxInclusive *float64
	minExclusive *float64
	maxExclusive *float64
}

// CheckValues enforces enumeration, required-value and range constraints
// on the values reachable via the property shape's path.
func CheckValues(g *rdf.Graph, focus rdf.Term, ps *shapes.PropertyShape) []report.Result {
	values := PropertyValues(g, focus, ps.Path)

	var out []report.Result
	bounds := rangeBounds{ps.MinInclusive, ps.MaxInclusive, ps.MinExclusive, ps.MaxExclusive}
	for _, v := range values {
		if len(ps.In) > 0 && !termInSet(v, ps.In) {
			res := buildViolation(focus, ps.ID, shacl.InConstraintComponent,
				shapeMessage(ps.Message, fmt.Sprintf("value %s is not in the allowed set %s", v, formatTermSet(ps.In))))
			res.Path = termRef(ps.Path)
			res.Value = termRef(v)
			res.Details = map[string]string{"actual_value": termDetail(v)}
			out = append(out, res)
		}
		for _, res := range rangeChecks(v, bounds, focus, ps.ID, ps.Message) {
			res.Path = termRef(ps.Path)
			out = append(out, res)
		}
	}

	// has_value looks at the whole value set: at most one violation no
	// matter how many values exist.
	if ps.HasValue != nil && !termInSet(*ps.HasValue, values) {
		res := buildViolation(focus, ps.ID, shacl.HasValueConstraintComponent,
			shapeMessage(ps.Message, fmt.Sprintf("required value %s is absent", *ps.HasValue)))
		res.Path = termRef(ps.Path)
		out = append(out, res)
	}
	return out
}

// CheckNodeValues applies enumeration, required-value and range
// constraints to the focus node itself.
func CheckNodeValues(focus rdf.Term, ns *shapes.NodeShape) []report.Result {
	var out []report.Result

	if len(ns.In) > 0 && !termInSet(focus, ns.In) {
		res := buildViolation(focus, ns.ID, shacl.InConstraintComponent,
			shapeMessage(ns.Message, fmt.Sprintf("node %s is not in the allowed set %s", focus, formatTermSet(ns.In))))
		res.Value = termRef(focus)
		res.Details = map[string]string{"actual_value": termDetail(focus)}
		out = append(out, res)
	}
	if ns.HasValue != nil && focus != *ns.HasValue {
		res := buildViolation(focus, ns.ID, shacl.HasValueConstraintComponent,
			shapeMessage(ns.Message, fmt.Sprintf("node is not the required value %s", *ns.HasValue)))
		res.Value = termRef(focus)
		out = append(out, res)
	}

	bounds := rangeBounds{ns.MinInclusive, ns.MaxInclusive, ns.MinExclusive, ns.MaxExclusive}
	out = append(out, rangeChecks(focus, bounds, focus, ns.ID, ns.Message)...)
	return out
}

// rangeChecks compares one value against each active bound. Non-numeric
// values are skipped.
func rangeChecks(v rdf.Term, b rangeBounds, focus, shapeID rdf.Term, override string) []report.Result {
	n, ok := NumericValue(v)
	if !ok {
		return nil
	}

	fail := func(component, msg string) report.Result {
		res := buildViolation(focus, shapeID, component, shapeMessage(override, msg))
		res.Value = termRef(v)
		res.Details = map[string]string{"actual_value": termDetail(v)}
		return res
	}

	var out []report.Result
	if b.minInclusive != nil && n < *b.minInclusive {
		out = append(out, fail(shacl.MinInclusiveConstraintComponent,
			fmt.Sprintf("value %s is below the minimum %s", v.Value, formatBound(*b.minInclusive))))
	}
	if b.maxInclusive != nil && n > *b.maxInclusive {
		out = append(out, fail(shacl.MaxInclusiveConstraintComponent,
			fmt.Sprintf("value %s exceeds the maximum %s", v.Value, formatBound(*b.maxInclusive))))
	}
	if b.minExclusive != nil && n <= *b.minExclusive {
		out = append(out, fail(shacl.MinExclusiveConstraintComponent,
			fmt.Sprintf("value %s is not above the exclusive minimum %s", v.Value, formatBound(*b.minExclusive))))
	}
	if b.maxExclusive != nil && n >= *b.maxExclusive {
		out = append(out, fail(shacl.MaxExclusiveConstraintComponent,
			fmt.Sprintf("value %s is not below the exclusive maximum %s", v.Value, formatBound(*b.maxExclusive))))
	}
	return out
}

func termInSet(t rdf.Term, set []rdf.Term) bool {
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

// termDetail renders a term for the details map: lexical form for
// literals, N-Triples form otherwise.
func termDetail(t rdf.Term) string {
	if t.IsLiteral() {
		return t.Value
	}
	return t.String()
}

func formatTermSet(set []rdf.Term) string {
	s := "["
	for i, t := range set {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + "]"
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
