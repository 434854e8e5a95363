package validator

import (
	"fmt"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// CheckType enforces the datatype and class constraints of a property
// shape against every value reachable via its path. The two checks run
// independently, so a single value can produce up to two violations,
// and no value short-circuits the rest.
func CheckType(g *rdf.Graph, focus rdf.Term, ps *shapes.PropertyShape) []report.Result {
	if ps.Datatype == nil && ps.Class == nil {
		return nil
	}

	var out []report.Result
	for _, v := range PropertyValues(g, focus, ps.Path) {
		if ps.Datatype != nil && !IsDatatype(v, *ps.Datatype) {
			res := buildViolation(focus, ps.ID, shacl.DatatypeConstraintComponent,
				shapeMessage(ps.Message, fmt.Sprintf("value %s does not have datatype <%s>", v, ps.Datatype.Value)))
			res.Path = termRef(ps.Path)
			res.Value = termRef(v)
			out = append(out, res)
		}
		if ps.Class != nil && !IsInstanceOf(g, v, *ps.Class) {
			res := buildViolation(focus, ps.ID, shacl.ClassConstraintComponent,
				shapeMessage(ps.Message, fmt.Sprintf("value %s is not an instance of <%s>", v, ps.Class.Value)))
			res.Path = termRef(ps.Path)
			res.Value = termRef(v)
			out = append(out, res)
		}
	}
	return out
}

// CheckNodeType applies datatype, class and node-kind constraints to the
// focus node itself.
func CheckNodeType(g *rdf.Graph, focus rdf.Term, ns *shapes.NodeShape) []report.Result {
	var out []report.Result

	if ns.NodeKind != nil && !ns.NodeKind.Matches(focus) {
		res := buildViolation(focus, ns.ID, shacl.NodeKindConstraintComponent,
			shapeMessage(ns.Message, fmt.Sprintf("node %s does not have node kind <%s>", focus, string(*ns.NodeKind))))
		res.Value = termRef(focus)
		out = append(out, res)
	}
	if ns.Datatype != nil && !IsDatatype(focus, *ns.Datatype) {
		res := buildViolation(focus, ns.ID, shacl.DatatypeConstraintComponent,
			shapeMessage(ns.Message, fmt.Sprintf("node %s does not have datatype <%s>", focus, ns.Datatype.Value)))
		res.Value = termRef(focus)
		out = append(out, res)
	}
	if ns.Class != nil && !IsInstanceOf(g, focus, *ns.Class) {
		res := buildViolation(focus, ns.ID, shacl.ClassConstraintComponent,
			shapeMessage(ns.Message, fmt.Sprintf("node %s is not an instance of <%s>", focus, ns.Class.Value)))
		res.Value = termRef(focus)
		out = append(out, res)
	}
	return out
}
