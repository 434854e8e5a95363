package rdf

import (
	"sort"
	"strings"
)

// DefaultPrefixes returns the namespace prefixes used for Turtle output.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":  "http://www.w3.org/2001/XMLSchema#",
		"sh":   "http://www.w3.org/ns/shacl#",
	}
}

// EncodeNTriples serializes the graph in N-Triples format, one statement
// per line in insertion order.
func EncodeNTriples(g *Graph) string {
	var sb strings.Builder
	for _, t := range g.Triples() {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// EncodeTurtle serializes the graph in Turtle format with the given
// prefix table, grouping statements by subject. The output is accepted
// by DecodeTurtle, which is the round-trip contract the report parser
// relies on.
func EncodeTurtle(g *Graph, prefixes map[string]string) string {
	var sb strings.Builder

	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString("@prefix " + name + ": <" + prefixes[name] + "> .\n")
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}

	// Preserve first-seen subject order for stable output.
	var order []string
	grouped := make(map[string][]Triple)
	for _, t := range g.Triples() {
		k := t.Subject.String()
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], t)
	}

	for _, k := range order {
		triples := grouped[k]
		sb.WriteString(formatTerm(triples[0].Subject, prefixes))
		sb.WriteString("\n")
		for i, t := range triples {
			sb.WriteString("    " + formatTerm(t.Predicate, prefixes) + " " + formatTerm(t.Object, prefixes))
			if i < len(triples)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatTerm renders a term in Turtle syntax, contracting IRIs against
// the prefix table where possible.
func formatTerm(t Term, prefixes map[string]string) string {
	switch t.Kind {
	case KindIRI:
		if t.Value == RdfType {
			return "a"
		}
		if name, local, ok := contractIRI(t.Value, prefixes); ok {
			return name + ":" + local
		}
		return "<" + t.Value + ">"
	case KindLiteral:
		if t.Language == "" && t.Datatype != "" {
			quoted := `"` + escapeLiteral(t.Value) + `"`
			if name, local, ok := contractIRI(t.Datatype, prefixes); ok {
				return quoted + "^^" + name + ":" + local
			}
			return quoted + "^^<" + t.Datatype + ">"
		}
		return t.String()
	default:
		return t.String()
	}
}

// contractIRI finds a prefix whose namespace is a proper prefix of the
// IRI and whose remainder is a simple local name.
func contractIRI(iri string, prefixes map[string]string) (name, local string, ok bool) {
	for pname, ns := range prefixes {
		if !strings.HasPrefix(iri, ns) || len(iri) == len(ns) {
			continue
		}
		rest := iri[len(ns):]
		if isLocalName(rest) {
			return pname, rest, true
		}
	}
	return "", "", false
}

// isLocalName reports whether s is usable as a Turtle prefixed-name local
// part without escaping.
func isLocalName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return s != ""
}
