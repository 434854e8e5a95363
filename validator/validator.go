package validator

import (
	"context"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
)

// ValidateNode runs every constraint family for one (focus node, shape)
// pair and concatenates the results: node-level checks first, then each
// property shape in declaration order, then the query constraints. A
// shape with no active constraints always returns nil.
func ValidateNode(ctx context.Context, g *rdf.Graph, focus rdf.Term, shape *shapes.NodeShape) []report.Result {
	var out []report.Result

	out = append(out, CheckNodeType(g, focus, shape)...)
	out = append(out, CheckNodeStrings(focus, shape)...)
	out = append(out, CheckNodeValues(focus, shape)...)

	for _, ps := range shape.Properties {
		out = append(out, CheckType(g, focus, ps)...)
		out = append(out, CheckStrings(g, focus, ps)...)
		out = append(out, CheckValues(g, focus, ps)...)
		out = append(out, CheckQualified(g, focus, ps)...)
	}

	out = append(out, CheckQueries(ctx, g, focus, shape.Queries)...)
	return out
}
