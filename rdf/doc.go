// Package rdf provides the triple/graph data model for the semshapes
// validation engine: immutable terms (IRI, blank node, literal), triples,
// a duplicate-free graph with subject/predicate lookup, and a Turtle
// codec whose encoder and decoder are exact inverses.
//
// The model is deliberately small. Subjects and objects are plain value
// types compared with ==, graphs index only by subject, and there is no
// inference of any kind: a triple is in the graph iff it was asserted.
package rdf
