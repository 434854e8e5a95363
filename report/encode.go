package report

import (
	"fmt"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// Graph converts the report to its SHACL graph representation: one
// sh:ValidationReport node carrying sh:conforms and one sh:result link
// per finding.
func (r *Report) Graph() *rdf.Graph {
	g := rdf.NewGraph()
	reportNode := rdf.NewBlankNode("report")

	g.Add(rdf.NewTriple(reportNode, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(shacl.ClassValidationReport)))
	g.Add(rdf.NewTriple(reportNode, rdf.NewIRI(shacl.Conforms), rdf.NewBoolean(r.Conforms)))

	i := 0
	for _, bucket := range [][]Result{r.Violations, r.Warnings, r.Info} {
		for _, res := range bucket {
			node := rdf.NewBlankNode(fmt.Sprintf("result%d", i))
			i++
			g.Add(rdf.NewTriple(reportNode, rdf.NewIRI(shacl.Result), node))
			addResult(g, node, res)
		}
	}
	return g
}

// Encode serializes the report as Turtle. The output is the exact
// inverse of Parse: encoding then parsing yields a report with the same
// conforms flag and the same findings per severity bucket.
func (r *Report) Encode() string {
	return rdf.EncodeTurtle(r.Graph(), rdf.DefaultPrefixes())
}

func addResult(g *rdf.Graph, node rdf.Term, res Result) {
	g.Add(rdf.NewTriple(node, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(shacl.ClassValidationResult)))
	g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.FocusNode), res.FocusNode))
	g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.ResultSeverity), rdf.NewIRI(res.Severity.IRI())))

	if res.Message != "" {
		g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.ResultMessage), rdf.NewLiteral(res.Message)))
	}
	if res.Path != nil {
		g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.ResultPath), *res.Path))
	}
	if res.Value != nil {
		g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.Value), *res.Value))
	}
	if res.SourceShape != nil {
		g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.SourceShape), *res.SourceShape))
	}
	if res.ConstraintComponent != nil {
		g.Add(rdf.NewTriple(node, rdf.NewIRI(shacl.SourceConstraintComponent), *res.ConstraintComponent))
	}
}
