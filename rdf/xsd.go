package rdf

// XML Schema datatype IRIs used for literal typing.
//
// Only the datatypes the validators interpret are listed here; anything
// else is carried opaquely in Term.Datatype.
const (
	XsdString   = "http://www.w3.org/2001/XMLSchema#string"
	XsdBoolean  = "http://www.w3.org/2001/XMLSchema#boolean"
	XsdInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	XsdDecimal  = "http://www.w3.org/2001/XMLSchema#decimal"
	XsdFloat    = "http://www.w3.org/2001/XMLSchema#float"
	XsdDouble   = "http://www.w3.org/2001/XMLSchema#double"
	XsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// RdfType is the rdf:type predicate IRI asserting class membership.
const RdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
