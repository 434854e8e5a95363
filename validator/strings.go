package validator

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// CheckStrings enforces pattern and length constraints on every value
// reachable via the property shape's path. Non-literal values are
// skipped; the type family reports kind mismatches.
func CheckStrings(g *rdf.Graph, focus rdf.Term, ps *shapes.PropertyShape) []report.Result {
	var out []report.Result
	for _, v := range PropertyValues(g, focus, ps.Path) {
		for _, res := range stringChecks(v, ps.Pattern, ps.MinLength, ps.MaxLength, focus, ps.ID, ps.Message) {
			res.Path = termRef(ps.Path)
			out = append(out, res)
		}
	}
	return out
}

// CheckNodeStrings applies pattern, length and language constraints to
// the focus node itself.
func CheckNodeStrings(focus rdf.Term, ns *shapes.NodeShape) []report.Result {
	out := stringChecks(focus, ns.Pattern, ns.MinLength, ns.MaxLength, focus, ns.ID, ns.Message)

	if len(ns.LanguageIn) > 0 {
		if res, ok := languageCheck(focus, ns); ok {
			out = append(out, res)
		}
	}
	return out
}

// stringChecks runs the shared pattern/minLength/maxLength checks on one
// value. Each check extracts the string independently and skips
// non-literals.
func stringChecks(v rdf.Term, pattern *regexp.Regexp, minLength, maxLength *int, focus, shapeID rdf.Term, override string) []report.Result {
	var out []report.Result

	if pattern != nil {
		if s, ok := StringValue(v); ok && !pattern.MatchString(s) {
			res := buildViolation(focus, shapeID, shacl.PatternConstraintComponent,
				shapeMessage(override, fmt.Sprintf("value %q does not match pattern %q", s, pattern.String())))
			res.Value = termRef(v)
			res.Details = map[string]string{
				"pattern":      pattern.String(),
				"actual_value": s,
			}
			out = append(out, res)
		}
	}
	if minLength != nil {
		if s, ok := StringValue(v); ok && len(s) < *minLength {
			res := buildViolation(focus, shapeID, shacl.MinLengthConstraintComponent,
				shapeMessage(override, fmt.Sprintf("value %q is shorter than minimum length %d", s, *minLength)))
			res.Value = termRef(v)
			res.Details = map[string]string{
				"expected_min_length": strconv.Itoa(*minLength),
				"actual_length":       strconv.Itoa(len(s)),
			}
			out = append(out, res)
		}
	}
	if maxLength != nil {
		if s, ok := StringValue(v); ok && len(s) > *maxLength {
			res := buildViolation(focus, shapeID, shacl.MaxLengthConstraintComponent,
				shapeMessage(override, fmt.Sprintf("value %q exceeds maximum length %d", s, *maxLength)))
			res.Value = termRef(v)
			res.Details = map[string]string{
				"expected_max_length": strconv.Itoa(*maxLength),
				"actual_length":       strconv.Itoa(len(s)),
			}
			out = append(out, res)
		}
	}
	return out
}

// languageCheck validates the focus node's language tag against the
// allowed set. A non-literal node, a literal without a language tag and
// a disallowed tag each get their own message.
func languageCheck(focus rdf.Term, ns *shapes.NodeShape) (report.Result, bool) {
	fail := func(msg string) (report.Result, bool) {
		res := buildViolation(focus, ns.ID, shacl.LanguageInConstraintComponent, shapeMessage(ns.Message, msg))
		res.Value = termRef(focus)
		return res, true
	}

	if !focus.IsLiteral() {
		return fail(fmt.Sprintf("node %s is not a literal and cannot carry a language tag", focus))
	}
	if focus.Language == "" {
		return fail(fmt.Sprintf("literal %q has no language tag; expected one of %v", focus.Value, ns.LanguageIn))
	}
	for _, lang := range ns.LanguageIn {
		if focus.Language == lang {
			return report.Result{}, false
		}
	}
	return fail(fmt.Sprintf("language tag %q is not in the allowed set %v", focus.Language, ns.LanguageIn))
}
