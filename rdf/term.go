package rdf

import (
	"fmt"
	"strings"
)

// TermKind classifies an RDF term as an IRI, a blank node, or a literal.
type TermKind string

const (
	// KindIRI identifies an IRI reference term.
	KindIRI TermKind = "iri"

	// KindBlankNode identifies a blank node term.
	KindBlankNode TermKind = "blank"

	// KindLiteral identifies a literal term.
	KindLiteral TermKind = "literal"
)

// String returns the string representation of the TermKind.
func (k TermKind) String() string {
	return string(k)
}

// Term is an immutable RDF term. Equality is structural: two terms are
// equal when their kind, value, datatype, and language all match, so Term
// values can be compared with == and used as map keys.
type Term struct {
	// Kind is the term variant tag.
	Kind TermKind

	// Value holds the IRI string, the blank node label, or the
	// literal's lexical form depending on Kind.
	Value string

	// Datatype is the datatype IRI for literals. Empty means plain
	// string (xsd:string semantics).
	Datatype string

	// Language is the optional language tag for literals.
	Language string
}

// NewIRI creates an IRI term.
func NewIRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// NewBlankNode creates a blank node term with the given local label.
func NewBlankNode(label string) Term {
	return Term{Kind: KindBlankNode, Value: label}
}

// NewLiteral creates a plain string literal.
func NewLiteral(lexical string) Term {
	return Term{Kind: KindLiteral, Value: lexical}
}

// NewTypedLiteral creates a literal with an explicit datatype IRI.
func NewTypedLiteral(lexical, datatype string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// NewLangLiteral creates a language-tagged string literal.
func NewLangLiteral(lexical, language string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Language: language}
}

// NewInteger creates an xsd:integer literal.
func NewInteger(v int64) Term {
	return NewTypedLiteral(fmt.Sprintf("%d", v), XsdInteger)
}

// NewDecimal creates an xsd:decimal literal.
func NewDecimal(v float64) Term {
	return NewTypedLiteral(strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), "."), XsdDecimal)
}

// NewBoolean creates an xsd:boolean literal.
func NewBoolean(v bool) Term {
	return NewTypedLiteral(fmt.Sprintf("%t", v), XsdBoolean)
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlankNode reports whether the term is a blank node.
func (t Term) IsBlankNode() bool { return t.Kind == KindBlankNode }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsZero reports whether the term is the zero value (no variant set).
func (t Term) IsZero() bool { return t.Kind == "" }

// String renders the term in N-Triples syntax. IRIs are bracketed,
// blank nodes use the _: prefix, and literals are quoted with optional
// datatype or language annotations.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlankNode:
		return "_:" + t.Value
	case KindLiteral:
		quoted := `"` + escapeLiteral(t.Value) + `"`
		if t.Language != "" {
			return quoted + "@" + t.Language
		}
		if t.Datatype != "" {
			return quoted + "^^<" + t.Datatype + ">"
		}
		return quoted
	default:
		return ""
	}
}

// escapeLiteral escapes special characters for N-Triples/Turtle output.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
