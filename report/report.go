// Package report provides the validation report model: per-finding
// results tagged with a severity, the report aggregate partitioned by
// severity, and a Turtle serializer/parser pair that round-trips the
// report through its SHACL graph representation.
package report

import (
	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// Severity tags a validation result. Violations make a report
// non-conformant; warnings and info entries do not.
type Severity string

const (
	// SeverityViolation is a constraint failure.
	SeverityViolation Severity = "violation"

	// SeverityWarning is a non-fatal finding.
	SeverityWarning Severity = "warning"

	// SeverityInfo is an informational finding.
	SeverityInfo Severity = "info"
)

// IRI returns the SHACL severity IRI for the tag.
func (s Severity) IRI() string {
	switch s {
	case SeverityWarning:
		return shacl.SeverityWarning
	case SeverityInfo:
		return shacl.SeverityInfo
	default:
		return shacl.SeverityViolation
	}
}

// SeverityFromIRI maps a severity IRI to its tag. Unrecognized IRIs map
// to SeverityViolation: a finding with a garbled severity is never
// silently downgraded or dropped.
func SeverityFromIRI(iri string) Severity {
	switch iri {
	case shacl.SeverityWarning:
		return SeverityWarning
	case shacl.SeverityInfo:
		return SeverityInfo
	default:
		return SeverityViolation
	}
}

// Result is a single detected non-conformance. Results are created once
// by a validator and never mutated.
type Result struct {
	// FocusNode is the node that was being validated.
	FocusNode rdf.Term

	// Path is the property path the finding concerns, when any.
	Path *rdf.Term

	// Value is the specific offending value, when any.
	Value *rdf.Term

	// Message describes the finding.
	Message string

	// Severity classifies the finding.
	Severity Severity

	// SourceShape identifies the shape that produced the finding.
	SourceShape *rdf.Term

	// ConstraintComponent identifies the constraint family.
	ConstraintComponent *rdf.Term

	// Details carries extra key/value context, e.g. the bound
	// variables of a query-based constraint.
	Details map[string]string
}

// Report is the aggregate outcome of a validation run, partitioned by
// severity. Reports are constructed once and never mutated.
type Report struct {
	Conforms   bool
	Violations []Result
	Warnings   []Result
	Info       []Result
}

// New builds a report from a flat result list, partitioning by severity.
// The report conforms iff no result carries violation severity.
func New(results []Result) *Report {
	r := &Report{Conforms: true}
	for _, res := range results {
		switch res.Severity {
		case SeverityWarning:
			r.Warnings = append(r.Warnings, res)
		case SeverityInfo:
			r.Info = append(r.Info, res)
		default:
			r.Violations = append(r.Violations, res)
			r.Conforms = false
		}
	}
	return r
}

// IssueCount returns the total number of findings across all severities.
func (r *Report) IssueCount() int {
	return len(r.Violations) + len(r.Warnings) + len(r.Info)
}

// HasViolations reports whether any violation-severity finding exists.
func (r *Report) HasViolations() bool {
	return len(r.Violations) > 0
}
