package report

import (
	"errors"
	"fmt"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// ErrNoReport is returned when the parsed graph contains no subject with
// a sh:conforms assertion.
var ErrNoReport = errors.New("no validation report found in graph")

// Parse reconstructs a Report from serialized Turtle text. The input is
// never mutated. A graph without a conformance marker, or with an
// unreadable conformance value, is a malformed report and surfaces as an
// explicit error; an unrecognized severity IRI on an individual result
// is not an error and conservatively defaults to violation severity.
func Parse(text string) (*Report, error) {
	g, err := rdf.DecodeTurtle(text)
	if err != nil {
		return nil, fmt.Errorf("parse report graph: %w", err)
	}
	return FromGraph(g)
}

// FromGraph reconstructs a Report from an already-parsed report graph.
func FromGraph(g *rdf.Graph) (*Report, error) {
	conformsPred := rdf.NewIRI(shacl.Conforms)
	subjects := g.SubjectsWith(conformsPred)
	if len(subjects) == 0 {
		return nil, ErrNoReport
	}
	reportNode := subjects[0]

	conformsTerms := g.Objects(reportNode, conformsPred)
	conforms, err := parseConforms(conformsTerms[0])
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, node := range g.Objects(reportNode, rdf.NewIRI(shacl.Result)) {
		results = append(results, parseResult(g, node))
	}

	r := New(results)
	// The conformance flag is read from the report, not recomputed:
	// the report is the artifact under inspection.
	r.Conforms = conforms
	return r, nil
}

// parseConforms accepts a boolean literal or the strings "true"/"false".
func parseConforms(t rdf.Term) (bool, error) {
	if !t.IsLiteral() {
		return false, fmt.Errorf("conforms value %s is not a literal", t)
	}
	switch t.Value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("conforms value %q is not a boolean", t.Value)
	}
}

func parseResult(g *rdf.Graph, node rdf.Term) Result {
	res := Result{
		Severity: SeverityViolation,
		Message:  "",
	}

	if v, ok := firstObject(g, node, shacl.FocusNode); ok {
		res.FocusNode = v
	}
	if v, ok := firstObject(g, node, shacl.ResultMessage); ok {
		res.Message = v.Value
	}
	if v, ok := firstObject(g, node, shacl.ResultSeverity); ok && v.IsIRI() {
		res.Severity = SeverityFromIRI(v.Value)
	}
	if v, ok := firstObject(g, node, shacl.ResultPath); ok {
		res.Path = &v
	}
	if v, ok := firstObject(g, node, shacl.Value); ok {
		res.Value = &v
	}
	if v, ok := firstObject(g, node, shacl.SourceShape); ok {
		res.SourceShape = &v
	}
	if v, ok := firstObject(g, node, shacl.SourceConstraintComponent); ok {
		res.ConstraintComponent = &v
	}

	return res
}

func firstObject(g *rdf.Graph, subject rdf.Term, predicate string) (rdf.Term, bool) {
	objects := g.Objects(subject, rdf.NewIRI(predicate))
	if len(objects) == 0 {
		return rdf.Term{}, false
	}
	return objects[0], true
}
