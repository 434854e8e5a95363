// Package code defines the source-code-analysis ontology: the classes
// and properties that extracted code facts use. Extractors emit triples
// in this vocabulary and shape definitions constrain them.
package code
