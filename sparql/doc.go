// Package sparql implements the small SELECT-query subset the
// query-based validator executes against an in-memory rdf.Graph.
//
// Supported grammar:
//
//	SELECT ?a ?b ...  |  SELECT *
//	WHERE {
//	    BIND(<iri> AS ?var)            // constant bindings
//	    ?s <pred> ?o .                 // basic graph patterns
//	    FILTER(?a < ?b && ?c != "x")   // comparisons over bindings
//	}
//
// Pattern positions accept variables, IRIs, blank nodes, literals, bare
// numbers and booleans, and the "a" keyword for rdf:type. Evaluation is
// a straightforward backtracking join over the graph with no reordering
// or indexes beyond the graph's subject lookup: this is a correctness-
// first evaluator, not a query planner.
package sparql
