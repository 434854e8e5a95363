package validator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/sparql"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// CheckQueries evaluates each query constraint for the focus node. The
// constraint's query template is rewritten by substituting the reserved
// $this placeholder with the focus node, executed against the graph, and
// every returned row becomes one violation carrying the constraint's
// message and the row's bindings as details.
//
// A constraint whose rewritten query fails to parse or execute is
// skipped with a warning: one broken rule never aborts the rest of the
// run. Callers bound execution with the context deadline; a timeout is
// treated like any other execution failure.
func CheckQueries(ctx context.Context, g *rdf.Graph, focus rdf.Term, constraints []shapes.QueryConstraint) []report.Result {
	var out []report.Result
	for _, qc := range constraints {
		rewritten := substituteFocus(qc.Query, focus)

		q, err := sparql.Parse(rewritten)
		if err != nil {
			slog.Warn("skipping query constraint: parse failed",
				"shape", qc.Shape.Value, "error", err)
			continue
		}
		rows, err := sparql.Select(ctx, g, q)
		if err != nil {
			slog.Warn("skipping query constraint: execution failed",
				"shape", qc.Shape.Value, "error", err)
			continue
		}

		for _, row := range rows {
			res := buildViolation(focus, qc.Shape, shacl.SPARQLConstraintComponent, qc.Message)
			res.Details = make(map[string]string, len(row))
			for name, term := range row {
				res.Details[name] = termDetail(term)
			}
			out = append(out, res)
		}
	}
	return out
}

// substituteFocus rewrites the $this placeholder for one focus node.
// The substitution is textual, not grammatical: a query embedding the
// literal substring "$this" inside a string would be corrupted. This
// matches the established template contract.
//
// For an IRI focus node, "SELECT $this" becomes "SELECT ?this", every
// remaining $this becomes the bracketed IRI, and a BIND for ?this is
// inserted after the first "WHERE {" only when the projection still
// mentions ?this. The blank-node path only substitutes the label and
// never inserts a BIND, so "SELECT $this" projections are not supported
// for blank focus nodes.
func substituteFocus(template string, focus rdf.Term) string {
	switch {
	case focus.IsIRI():
		iri := "<" + focus.Value + ">"
		q := strings.ReplaceAll(template, "SELECT $this", "SELECT ?this")
		q = strings.ReplaceAll(q, "$this", iri)
		if projectsThis(q) {
			q = insertThisBind(q, iri)
		}
		return q
	case focus.IsBlankNode():
		return strings.ReplaceAll(template, "$this", "_:"+focus.Value)
	default:
		return template
	}
}

// projectsThis reports whether ?this appears in the projection clause,
// i.e. before the WHERE keyword.
func projectsThis(q string) bool {
	if idx := strings.Index(q, "WHERE"); idx >= 0 {
		return strings.Contains(q[:idx], "?this")
	}
	return strings.Contains(q, "?this")
}

// insertThisBind places a BIND for ?this immediately after the first
// "WHERE {" so the projected variable is bound in every solution.
func insertThisBind(q, iri string) string {
	const marker = "WHERE {"
	idx := strings.Index(q, marker)
	if idx < 0 {
		return q
	}
	pos := idx + len(marker)
	return q[:pos] + " BIND(" + iri + " AS ?this)" + q[pos:]
}
