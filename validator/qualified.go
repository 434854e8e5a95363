package validator

import (
	"fmt"
	"strconv"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
	"github.com/c360studio/semshapes/shapes"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

// CheckQualified counts the path values that are direct instances of the
// qualified class and emits exactly one violation when the count falls
// short of the required minimum. The check is opt-in per shape: it is
// inactive unless both the class and the minimum count are set.
func CheckQualified(g *rdf.Graph, focus rdf.Term, ps *shapes.PropertyShape) []report.Result {
	if ps.QualifiedClass == nil || ps.QualifiedMinCount == nil {
		return nil
	}

	values := PropertyValues(g, focus, ps.Path)
	qualified := 0
	for _, v := range values {
		if IsInstanceOf(g, v, *ps.QualifiedClass) {
			qualified++
		}
	}
	if qualified >= *ps.QualifiedMinCount {
		return nil
	}

	res := buildViolation(focus, ps.ID, shacl.QualifiedMinCountConstraintComponent,
		shapeMessage(ps.Message, fmt.Sprintf("expected at least %d values of class <%s>, found %d of %d",
			*ps.QualifiedMinCount, ps.QualifiedClass.Value, qualified, len(values))))
	res.Path = termRef(ps.Path)
	res.Details = map[string]string{
		"expected_min_count":     strconv.Itoa(*ps.QualifiedMinCount),
		"actual_qualified_count": strconv.Itoa(qualified),
		"total_value_count":      strconv.Itoa(len(values)),
	}
	return []report.Result{res}
}
