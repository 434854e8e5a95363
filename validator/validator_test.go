package validator

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/vocabulary/code"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

var (
	classFunction = rdf.NewIRI("https://x.dev/Function")
	propName      = rdf.NewIRI("https://x.dev/name")
	propCalls     = rdf.NewIRI("https://x.dev/calls")
	shapeID       = rdf.NewIRI("https://x.dev/shape/FunctionShape")
	fn1           = rdf.NewIRI("https://x.dev/entity/fn1")
)

func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }
func iriPtr(s string) *rdf.Term     { t := rdf.NewIRI(s); return &t }
func mustRe(s string) *regexp.Regexp { return regexp.MustCompile(s) }

func propShape(mutate func(*shapes.PropertyShape)) *shapes.PropertyShape {
	ps := &shapes.PropertyShape{ID: shapeID, Path: propName}
	if mutate != nil {
		mutate(ps)
	}
	return ps
}

func TestNoActiveConstraintsConform(t *testing.T) {
	g := rdf.NewGraph(
		rdf.NewTriple(fn1, propName, rdf.NewLiteral("anything")),
	)
	ps := propShape(nil)
	assert.Empty(t, CheckType(g, fn1, ps))
	assert.Empty(t, CheckStrings(g, fn1, ps))
	assert.Empty(t, CheckValues(g, fn1, ps))
	assert.Empty(t, CheckQualified(g, fn1, ps))

	ns := &shapes.NodeShape{ID: shapeID, Properties: []*shapes.PropertyShape{ps}}
	assert.Empty(t, ValidateNode(context.Background(), g, fn1, ns))
}

func TestCheckTypeDatatypeAndClassIndependent(t *testing.T) {
	other := rdf.NewIRI("https://x.dev/entity/other")
	g := rdf.NewGraph(
		rdf.NewTriple(fn1, propCalls, other),
	)
	ps := &shapes.PropertyShape{
		ID:       shapeID,
		Path:     propCalls,
		Datatype: iriPtr(rdf.XsdString),
		Class:    &classFunction,
	}

	// An IRI value fails the datatype check; one without a type
	// assertion fails the class check too.
	out := CheckType(g, fn1, ps)
	require.Len(t, out, 2)
	assert.Equal(t, rdf.NewIRI(shacl.DatatypeConstraintComponent), *out[0].ConstraintComponent)
	assert.Equal(t, rdf.NewIRI(shacl.ClassConstraintComponent), *out[1].ConstraintComponent)
	for _, res := range out {
		assert.Equal(t, fn1, res.FocusNode)
		assert.Equal(t, propCalls, *res.Path)
		assert.Equal(t, other, *res.Value)
		assert.Equal(t, shapeID, *res.SourceShape)
	}

	// Asserting the class clears the class violation only.
	g.Add(rdf.NewTriple(other, rdf.NewIRI(rdf.RdfType), classFunction))
	out = CheckType(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Equal(t, rdf.NewIRI(shacl.DatatypeConstraintComponent), *out[0].ConstraintComponent)
}

func TestCheckStringsPattern(t *testing.T) {
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.Pattern = mustRe("^[A-Z]")
	})

	g := rdf.NewGraph(rdf.NewTriple(fn1, propName, rdf.NewLiteral("Alice")))
	assert.Empty(t, CheckStrings(g, fn1, ps))

	g = rdf.NewGraph(rdf.NewTriple(fn1, propName, rdf.NewLiteral("alice")))
	out := CheckStrings(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "^[A-Z]")
	assert.Equal(t, "alice", out[0].Details["actual_value"])
	assert.Equal(t, rdf.NewIRI(shacl.PatternConstraintComponent), *out[0].ConstraintComponent)
}

func TestCheckStringsSkipsNonLiterals(t *testing.T) {
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.Pattern = mustRe("^[A-Z]")
		ps.MinLength = intPtr(3)
	})
	g := rdf.NewGraph(
		rdf.NewTriple(fn1, propName, rdf.NewIRI("https://x.dev/not-a-literal")),
	)
	assert.Empty(t, CheckStrings(g, fn1, ps))
}

func TestCheckStringsMinLength(t *testing.T) {
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.MinLength = intPtr(5)
	})
	g := rdf.NewGraph(rdf.NewTriple(fn1, propName, rdf.NewLiteral("ab")))

	out := CheckStrings(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Equal(t, "5", out[0].Details["expected_min_length"])
	assert.Equal(t, "2", out[0].Details["actual_length"])
}

func TestCheckNodeStringsLanguageIn(t *testing.T) {
	ns := &shapes.NodeShape{ID: shapeID, LanguageIn: []string{"en", "de"}}

	assert.Empty(t, CheckNodeStrings(rdf.NewLangLiteral("hello", "en"), ns))

	tests := []struct {
		name  string
		focus rdf.Term
	}{
		{"non-literal", fn1},
		{"no language tag", rdf.NewLiteral("hello")},
		{"disallowed tag", rdf.NewLangLiteral("bonjour", "fr")},
	}
	messages := map[string]bool{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CheckNodeStrings(tt.focus, ns)
			require.Len(t, out, 1)
			assert.Equal(t, rdf.NewIRI(shacl.LanguageInConstraintComponent), *out[0].ConstraintComponent)
			messages[out[0].Message] = true
		})
	}
	assert.Len(t, messages, 3, "each failure mode should carry a distinct message")
}

func TestCheckValuesMaxInclusiveBoundary(t *testing.T) {
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.MaxInclusive = floatPtr(255)
	})

	g := rdf.NewGraph(rdf.NewTriple(fn1, propName, rdf.NewInteger(300)))
	out := CheckValues(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Equal(t, "300", out[0].Details["actual_value"])
	assert.Equal(t, rdf.NewIRI(shacl.MaxInclusiveConstraintComponent), *out[0].ConstraintComponent)

	g = rdf.NewGraph(rdf.NewTriple(fn1, propName, rdf.NewInteger(255)))
	assert.Empty(t, CheckValues(g, fn1, ps))
}

func TestCheckValuesIn(t *testing.T) {
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.In = []rdf.Term{rdf.NewLiteral("go"), rdf.NewLiteral("python")}
	})
	g := rdf.NewGraph(rdf.NewTriple(fn1, propName, rdf.NewLiteral("rust")))

	out := CheckValues(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, `"go"`)
	assert.Equal(t, "rust", out[0].Details["actual_value"])
}

func TestCheckValuesHasValue(t *testing.T) {
	required := rdf.NewLiteral("main")
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.HasValue = &required
	})

	g := rdf.NewGraph(
		rdf.NewTriple(fn1, propName, rdf.NewLiteral("init")),
		rdf.NewTriple(fn1, propName, rdf.NewLiteral("main")),
		rdf.NewTriple(fn1, propName, rdf.NewLiteral("shutdown")),
	)
	assert.Empty(t, CheckValues(g, fn1, ps))

	g = rdf.NewGraph(
		rdf.NewTriple(fn1, propName, rdf.NewLiteral("init")),
		rdf.NewTriple(fn1, propName, rdf.NewLiteral("shutdown")),
	)
	out := CheckValues(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Equal(t, rdf.NewIRI(shacl.HasValueConstraintComponent), *out[0].ConstraintComponent)
}

func TestCheckNodeValuesBounds(t *testing.T) {
	ns := &shapes.NodeShape{
		ID:           shapeID,
		MinExclusive: floatPtr(0),
		MaxExclusive: floatPtr(100),
	}

	assert.Empty(t, CheckNodeValues(rdf.NewInteger(50), ns))

	out := CheckNodeValues(rdf.NewInteger(0), ns)
	require.Len(t, out, 1)
	assert.Equal(t, rdf.NewIRI(shacl.MinExclusiveConstraintComponent), *out[0].ConstraintComponent)

	out = CheckNodeValues(rdf.NewInteger(100), ns)
	require.Len(t, out, 1)
	assert.Equal(t, rdf.NewIRI(shacl.MaxExclusiveConstraintComponent), *out[0].ConstraintComponent)
}

func TestCheckNodeTypeNodeKind(t *testing.T) {
	kind := shapes.NodeKindIRI
	ns := &shapes.NodeShape{ID: shapeID, NodeKind: &kind}
	g := rdf.NewGraph()

	assert.Empty(t, CheckNodeType(g, fn1, ns))

	out := CheckNodeType(g, rdf.NewLiteral("not an iri"), ns)
	require.Len(t, out, 1)
	assert.Equal(t, rdf.NewIRI(shacl.NodeKindConstraintComponent), *out[0].ConstraintComponent)
}

func TestCheckQualified(t *testing.T) {
	ps := propShape(func(ps *shapes.PropertyShape) {
		ps.Path = propCalls
		ps.QualifiedClass = &classFunction
		ps.QualifiedMinCount = intPtr(2)
	})

	callee1 := rdf.NewIRI("https://x.dev/entity/callee1")
	callee2 := rdf.NewIRI("https://x.dev/entity/callee2")
	g := rdf.NewGraph(
		rdf.NewTriple(fn1, propCalls, callee1),
		rdf.NewTriple(fn1, propCalls, callee2),
		rdf.NewTriple(callee1, rdf.NewIRI(rdf.RdfType), classFunction),
	)

	out := CheckQualified(g, fn1, ps)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].Details["expected_min_count"])
	assert.Equal(t, "1", out[0].Details["actual_qualified_count"])
	assert.Equal(t, "2", out[0].Details["total_value_count"])

	g.Add(rdf.NewTriple(callee2, rdf.NewIRI(rdf.RdfType), classFunction))
	assert.Empty(t, CheckQualified(g, fn1, ps))
}

func TestCheckQualifiedDisabledWithoutBothFields(t *testing.T) {
	g := rdf.NewGraph(rdf.NewTriple(fn1, propCalls, rdf.NewIRI("https://x.dev/x")))

	onlyClass := propShape(func(ps *shapes.PropertyShape) {
		ps.Path = propCalls
		ps.QualifiedClass = &classFunction
	})
	assert.Empty(t, CheckQualified(g, fn1, onlyClass))

	onlyCount := propShape(func(ps *shapes.PropertyShape) {
		ps.Path = propCalls
		ps.QualifiedMinCount = intPtr(1)
	})
	assert.Empty(t, CheckQualified(g, fn1, onlyCount))
}

func lineGraph(start, end int) *rdf.Graph {
	return rdf.NewGraph(
		rdf.NewTriple(fn1, rdf.NewIRI(rdf.RdfType), classFunction),
		rdf.NewTriple(fn1, rdf.NewIRI("https://x.dev/startLine"), rdf.NewInteger(int64(start))),
		rdf.NewTriple(fn1, rdf.NewIRI("https://x.dev/endLine"), rdf.NewInteger(int64(end))),
	)
}

func TestCheckQueriesLineOrder(t *testing.T) {
	constraints := []shapes.QueryConstraint{{
		Query: `SELECT ?start ?end WHERE {
			$this <https://x.dev/startLine> ?start .
			$this <https://x.dev/endLine> ?end .
			FILTER(?end < ?start)
		}`,
		Message: "end line precedes start line",
		Shape:   shapeID,
	}}

	out := CheckQueries(context.Background(), lineGraph(10, 20), fn1, constraints)
	assert.Empty(t, out)

	out = CheckQueries(context.Background(), lineGraph(20, 10), fn1, constraints)
	require.Len(t, out, 1)
	assert.Equal(t, "end line precedes start line", out[0].Message)
	assert.Equal(t, fn1, out[0].FocusNode)
	assert.Equal(t, shapeID, *out[0].SourceShape)
	assert.Equal(t, rdf.NewIRI(shacl.SPARQLConstraintComponent), *out[0].ConstraintComponent)
	assert.Equal(t, "20", out[0].Details["start"])
	assert.Equal(t, "10", out[0].Details["end"])
}

func TestCheckQueriesFailOpen(t *testing.T) {
	constraints := []shapes.QueryConstraint{
		{Query: "SELECT WHERE broken", Message: "never fires", Shape: shapeID},
		{Query: `SELECT ?s WHERE { $this <https://x.dev/startLine> ?s }`, Message: "fires", Shape: shapeID},
	}

	out := CheckQueries(context.Background(), lineGraph(1, 2), fn1, constraints)
	require.Len(t, out, 1, "the broken rule is skipped, the valid one still runs")
	assert.Equal(t, "fires", out[0].Message)
}

func TestSubstituteFocusIRI(t *testing.T) {
	q := substituteFocus("SELECT $this ?n WHERE { $this <https://x.dev/name> ?n }", fn1)
	assert.Contains(t, q, "SELECT ?this ?n")
	assert.Contains(t, q, "WHERE { BIND(<https://x.dev/entity/fn1> AS ?this)")
	assert.Contains(t, q, "<https://x.dev/entity/fn1> <https://x.dev/name> ?n")

	// Without a projected ?this there is no BIND insertion.
	q = substituteFocus("SELECT ?n WHERE { $this <https://x.dev/name> ?n }", fn1)
	assert.NotContains(t, q, "BIND")
	assert.Contains(t, q, "<https://x.dev/entity/fn1> <https://x.dev/name> ?n")
}

func TestSubstituteFocusBlankNode(t *testing.T) {
	q := substituteFocus("SELECT ?n WHERE { $this <https://x.dev/name> ?n }", rdf.NewBlankNode("proc0"))
	assert.Contains(t, q, "_:proc0 <https://x.dev/name> ?n")
	assert.NotContains(t, q, "BIND")
}

func TestCheckQueriesProjectedThis(t *testing.T) {
	constraints := []shapes.QueryConstraint{{
		Query: `SELECT $this ?start WHERE {
			$this <https://x.dev/startLine> ?start .
			FILTER(?start > 5)
		}`,
		Message: "starts too late",
		Shape:   shapeID,
	}}

	out := CheckQueries(context.Background(), lineGraph(10, 20), fn1, constraints)
	require.Len(t, out, 1)
	assert.Equal(t, "<https://x.dev/entity/fn1>", out[0].Details["this"])
	assert.Equal(t, "10", out[0].Details["start"])
}

func TestCheckQueriesBlankFocus(t *testing.T) {
	proc := rdf.NewBlankNode("proc0")
	g := rdf.NewGraph(
		rdf.NewTriple(proc, rdf.NewIRI("https://x.dev/restarts"), rdf.NewInteger(9)),
	)
	constraints := []shapes.QueryConstraint{{
		Query:   `SELECT ?r WHERE { $this <https://x.dev/restarts> ?r . FILTER(?r > 5) }`,
		Message: "restart budget exceeded",
		Shape:   shapeID,
	}}

	out := CheckQueries(context.Background(), g, proc, constraints)
	require.Len(t, out, 1)
	assert.Equal(t, proc, out[0].FocusNode)
	assert.Equal(t, "9", out[0].Details["r"])
}

func TestValidateSupervisionShape(t *testing.T) {
	supShapeID := rdf.NewIRI("https://x.dev/shape/SupervisorShape")
	ns := &shapes.NodeShape{
		ID:          supShapeID,
		TargetClass: iriPtr(code.ClassSupervisionTree),
		Properties: []*shapes.PropertyShape{
			{
				ID:                supShapeID,
				Path:              rdf.NewIRI(code.PropSupervises),
				QualifiedClass:    iriPtr(code.ClassProcessAbstraction),
				QualifiedMinCount: intPtr(2),
			},
			{
				ID:    supShapeID,
				Path:  rdf.NewIRI(code.PropOwnsTable),
				Class: iriPtr(code.ClassTable),
			},
		},
	}

	sup := rdf.NewIRI("https://x.dev/entity/sup1")
	proc1 := rdf.NewIRI("https://x.dev/entity/proc1")
	proc2 := rdf.NewIRI("https://x.dev/entity/proc2")
	table := rdf.NewIRI("https://x.dev/entity/sessions")
	g := rdf.NewGraph(
		rdf.NewTriple(sup, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(code.ClassSupervisionTree)),
		rdf.NewTriple(sup, rdf.NewIRI(code.PropSupervises), proc1),
		rdf.NewTriple(sup, rdf.NewIRI(code.PropSupervises), proc2),
		rdf.NewTriple(proc1, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(code.ClassProcessAbstraction)),
		rdf.NewTriple(sup, rdf.NewIRI(code.PropOwnsTable), table),
	)

	// One child is untyped and the table lacks its class assertion.
	out := ValidateNode(context.Background(), g, sup, ns)
	require.Len(t, out, 2)
	assert.Equal(t, rdf.NewIRI(shacl.QualifiedMinCountConstraintComponent), *out[0].ConstraintComponent)
	assert.Equal(t, "1", out[0].Details["actual_qualified_count"])
	assert.Equal(t, rdf.NewIRI(shacl.ClassConstraintComponent), *out[1].ConstraintComponent)
	assert.Equal(t, table, *out[1].Value)

	g.Add(rdf.NewTriple(proc2, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(code.ClassProcessAbstraction)))
	g.Add(rdf.NewTriple(table, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(code.ClassTable)))
	assert.Empty(t, ValidateNode(context.Background(), g, sup, ns))
}

func TestValidateNodeConcatenatesFamilies(t *testing.T) {
	ns := &shapes.NodeShape{
		ID:          shapeID,
		TargetClass: &classFunction,
		Properties: []*shapes.PropertyShape{
			propShape(func(ps *shapes.PropertyShape) {
				ps.Pattern = mustRe("^[A-Z]")
				ps.Datatype = iriPtr(rdf.XsdString)
			}),
		},
		Queries: []shapes.QueryConstraint{{
			Query:   `SELECT ?end WHERE { $this <https://x.dev/endLine> ?end . FILTER(?end < 15) }`,
			Message: "function too short",
			Shape:   shapeID,
		}},
	}

	g := lineGraph(5, 10)
	g.Add(rdf.NewTriple(fn1, propName, rdf.NewLiteral("handleRequest")))

	out := ValidateNode(context.Background(), g, fn1, ns)
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Message, "^[A-Z]")
	assert.Equal(t, "function too short", out[1].Message)
}
