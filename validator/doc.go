// Package validator implements the constraint checks applied to graph
// nodes during validation. Each family (type, string, value, qualified
// cardinality, query-based) is a pure function of (graph, focus node,
// shape) returning zero or more violation results; the orchestrator in
// this package concatenates the families for one (focus node, shape)
// pair.
//
// Constraint fields on a shape are independently optional: a nil field
// means the check is inactive and contributes nothing. Values that are
// the wrong kind for a check (a non-literal where a string is expected)
// are skipped rather than reported; the type family owns kind mismatches.
package validator
