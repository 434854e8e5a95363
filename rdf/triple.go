package rdf

// Triple is an atomic subject-predicate-object fact. Subjects are IRIs or
// blank nodes, predicates are always IRIs, and objects may be any term.
type Triple struct {
	Subject   Term `json:"subject"`
	Predicate Term `json:"predicate"`
	Object    Term `json:"object"`
}

// NewTriple creates a triple from its three terms.
func NewTriple(subject, predicate, object Term) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// String renders the triple as an N-Triples statement.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// key is the canonical identity of a triple, used for duplicate detection.
func (t Triple) key() string {
	return t.Subject.String() + "\x00" + t.Predicate.String() + "\x00" + t.Object.String()
}
