// Package astindex extracts code entities from source trees and emits
// them as triples in the code vocabulary. Extractors register per
// language; the indexer walks resolved directories and accumulates one
// graph describing modules, functions and process abstractions.
package astindex

import (
	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/vocabulary/code"
)

// Kind classifies an extracted entity.
type Kind string

const (
	KindModule   Kind = "module"
	KindFunction Kind = "function"
	KindProcess  Kind = "process"
)

// Class returns the vocabulary class IRI for the kind.
func (k Kind) Class() string {
	switch k {
	case KindFunction:
		return code.ClassFunction
	case KindProcess:
		return code.ClassProcessAbstraction
	default:
		return code.ClassModule
	}
}

// Entity is one extracted code artifact. Extractors fill the fields that
// apply to the entity's kind and leave the rest zero.
type Entity struct {
	// IRI is the deterministic entity identifier.
	IRI string

	Kind     Kind
	Name     string
	Path     string
	Language string

	StartLine int
	EndLine   int

	// Function attributes.
	Arity    int
	Exported bool

	DocComment string

	// Hash is the content hash of the declaring file.
	Hash string

	// DefinedIn is the IRI of the declaring module entity.
	DefinedIn string
}

// Triples renders the entity as code-vocabulary triples.
func (e *Entity) Triples() []rdf.Triple {
	subject := rdf.NewIRI(e.IRI)
	triples := []rdf.Triple{
		rdf.NewTriple(subject, rdf.NewIRI(rdf.RdfType), rdf.NewIRI(e.Kind.Class())),
		rdf.NewTriple(subject, rdf.NewIRI(code.PropName), rdf.NewLiteral(e.Name)),
		rdf.NewTriple(subject, rdf.NewIRI(code.PropPath), rdf.NewLiteral(e.Path)),
		rdf.NewTriple(subject, rdf.NewIRI(code.PropLanguage), rdf.NewLiteral(e.Language)),
	}

	if e.StartLine > 0 {
		triples = append(triples, rdf.NewTriple(subject, rdf.NewIRI(code.PropStartLine), rdf.NewInteger(int64(e.StartLine))))
	}
	if e.EndLine > 0 {
		triples = append(triples, rdf.NewTriple(subject, rdf.NewIRI(code.PropEndLine), rdf.NewInteger(int64(e.EndLine))))
	}
	if e.Kind == KindFunction {
		triples = append(triples,
			rdf.NewTriple(subject, rdf.NewIRI(code.PropArity), rdf.NewInteger(int64(e.Arity))),
			rdf.NewTriple(subject, rdf.NewIRI(code.PropExported), rdf.NewBoolean(e.Exported)))
	}
	if e.DocComment != "" {
		triples = append(triples, rdf.NewTriple(subject, rdf.NewIRI(code.PropDocComment), rdf.NewLiteral(e.DocComment)))
	}
	if e.Hash != "" {
		triples = append(triples, rdf.NewTriple(subject, rdf.NewIRI(code.PropHash), rdf.NewLiteral(e.Hash)))
	}
	if e.DefinedIn != "" {
		triples = append(triples, rdf.NewTriple(subject, rdf.NewIRI(code.PropDefinedIn), rdf.NewIRI(e.DefinedIn)))
	}
	return triples
}

// FileResult holds everything extracted from one source file.
type FileResult struct {
	// Module is the entity for the file itself.
	Module *Entity

	// Entities are all extracted entities including the module.
	Entities []*Entity

	// Path is the file path relative to the repository root.
	Path string

	// Hash is the content hash.
	Hash string
}

// Triples renders every extracted entity as triples.
func (r *FileResult) Triples() []rdf.Triple {
	var triples []rdf.Triple
	for _, e := range r.Entities {
		triples = append(triples, e.Triples()...)
	}
	return triples
}
