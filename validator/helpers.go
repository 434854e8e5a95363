package validator

import (
	"strconv"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
)

// PropertyValues returns every object reachable from the focus node via
// the given predicate.
func PropertyValues(g *rdf.Graph, focus, path rdf.Term) []rdf.Term {
	return g.Objects(focus, path)
}

// IsInstanceOf reports whether the graph directly asserts the node as an
// instance of the class. Membership is by direct rdf:type assertion
// only; there is no subclass closure.
func IsInstanceOf(g *rdf.Graph, node, class rdf.Term) bool {
	return g.Contains(rdf.NewTriple(node, rdf.NewIRI(rdf.RdfType), class))
}

// IsDatatype reports whether the term is a literal carrying the given
// datatype IRI. A plain literal without a language tag counts as
// xsd:string.
func IsDatatype(t rdf.Term, datatype rdf.Term) bool {
	if !t.IsLiteral() {
		return false
	}
	dt := t.Datatype
	if dt == "" && t.Language == "" {
		dt = rdf.XsdString
	}
	return dt == datatype.Value
}

// StringValue extracts the lexical form of a literal. Non-literals
// return false so string checks can skip them.
func StringValue(t rdf.Term) (string, bool) {
	if !t.IsLiteral() {
		return "", false
	}
	return t.Value, true
}

// NumericValue extracts a float64 from a literal whose lexical form
// parses as a number. Non-literals and non-numeric literals return
// false so numeric checks can skip them.
func NumericValue(t rdf.Term) (float64, bool) {
	if !t.IsLiteral() {
		return 0, false
	}
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// buildViolation assembles a violation-severity result attributed to a
// shape and constraint component. Callers fill Path, Value and Details
// as the check requires.
func buildViolation(focus, shapeID rdf.Term, component, message string) report.Result {
	comp := rdf.NewIRI(component)
	src := shapeID
	return report.Result{
		FocusNode:           focus,
		Message:             message,
		Severity:            report.SeverityViolation,
		SourceShape:         &src,
		ConstraintComponent: &comp,
	}
}

// shapeMessage prefers the shape's message override when present.
func shapeMessage(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func termRef(t rdf.Term) *rdf.Term { return &t }
