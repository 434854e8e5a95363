// Package shapes defines the shape data model: node-level and
// property-level constraint bundles applied to graph nodes during
// validation, plus a YAML loader for shape-definition files.
//
// Every constraint field is independently optional. A nil field means
// "constraint not active" and a shape with no active constraints always
// conforms. Shapes are value objects: built once by the loader (or by
// hand in tests) and never mutated by validators.
package shapes

import (
	"regexp"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// NodeKind restricts the term variant of a focus node.
type NodeKind string

const (
	// NodeKindIRI requires the focus node to be an IRI.
	NodeKindIRI NodeKind = NodeKind(shacl.NodeKindIRI)

	// NodeKindBlankNode requires the focus node to be a blank node.
	NodeKindBlankNode NodeKind = NodeKind(shacl.NodeKindBlankNode)

	// NodeKindLiteral requires the focus node to be a literal.
	NodeKindLiteral NodeKind = NodeKind(shacl.NodeKindLiteral)
)

// Matches reports whether the term's variant satisfies the node kind.
func (k NodeKind) Matches(t rdf.Term) bool {
	switch k {
	case NodeKindIRI:
		return t.IsIRI()
	case NodeKindBlankNode:
		return t.IsBlankNode()
	case NodeKindLiteral:
		return t.IsLiteral()
	default:
		return false
	}
}

// QueryConstraint is a caller-supplied parameterized query rule. The
// query template contains the reserved $this placeholder standing for
// the focus node; every result row the rewritten query returns becomes
// one violation.
type QueryConstraint struct {
	// Query is the SELECT-style query template.
	Query string

	// Message is attached to every violation the constraint produces.
	Message string

	// Shape identifies the owning shape for result attribution.
	Shape rdf.Term
}

// PropertyShape constrains the values reachable from a focus node via a
// single predicate IRI. There is no path algebra: Path is always one
// predicate.
type PropertyShape struct {
	// ID identifies the shape in validation results.
	ID rdf.Term

	// Path is the predicate whose objects are validated.
	Path rdf.Term

	// Message overrides the default violation message when set.
	Message string

	// Type constraints.
	Datatype *rdf.Term
	Class    *rdf.Term

	// String constraints.
	Pattern   *regexp.Regexp
	MinLength *int
	MaxLength *int

	// Value constraints.
	In           []rdf.Term
	HasValue     *rdf.Term
	MinInclusive *float64
	MaxInclusive *float64
	MinExclusive *float64
	MaxExclusive *float64

	// Qualified cardinality constraints. Both must be set for the
	// check to be active; either alone disables it.
	QualifiedClass    *rdf.Term
	QualifiedMinCount *int
}

// NodeShape applies the same constraint vocabulary to the focus node
// itself, plus node-kind and language restrictions, and owns the
// property shapes and query constraints evaluated for each focus node.
type NodeShape struct {
	// ID identifies the shape in validation results.
	ID rdf.Term

	// TargetClass selects focus nodes by direct rdf:type assertion
	// when the engine derives targets from the graph.
	TargetClass *rdf.Term

	// Message overrides the default violation message when set.
	Message string

	// Node-level constraints.
	NodeKind     *NodeKind
	LanguageIn   []string
	Datatype     *rdf.Term
	Class        *rdf.Term
	Pattern      *regexp.Regexp
	MinLength    *int
	MaxLength    *int
	In           []rdf.Term
	HasValue     *rdf.Term
	MinInclusive *float64
	MaxInclusive *float64
	MinExclusive *float64
	MaxExclusive *float64

	// Properties are the property shapes evaluated per focus node.
	Properties []*PropertyShape

	// Queries are the query-based constraints evaluated per focus node.
	Queries []QueryConstraint
}
