package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/vocabulary/shacl"
)

func termPtr(t rdf.Term) *rdf.Term { return &t }

func sampleViolation(focus, msg string) Result {
	return Result{
		FocusNode:           rdf.NewIRI(focus),
		Path:                termPtr(rdf.NewIRI("https://x.dev/name")),
		Value:               termPtr(rdf.NewLiteral("bad value")),
		Message:             msg,
		Severity:            SeverityViolation,
		SourceShape:         termPtr(rdf.NewIRI("https://x.dev/shape/FunctionShape")),
		ConstraintComponent: termPtr(rdf.NewIRI(shacl.PatternConstraintComponent)),
	}
}

func TestNewPartitionsBySeverity(t *testing.T) {
	r := New([]Result{
		{FocusNode: rdf.NewIRI("https://x.dev/a"), Severity: SeverityViolation},
		{FocusNode: rdf.NewIRI("https://x.dev/b"), Severity: SeverityWarning},
		{FocusNode: rdf.NewIRI("https://x.dev/c"), Severity: SeverityInfo},
		{FocusNode: rdf.NewIRI("https://x.dev/d"), Severity: SeverityWarning},
	})

	assert.False(t, r.Conforms)
	assert.Len(t, r.Violations, 1)
	assert.Len(t, r.Warnings, 2)
	assert.Len(t, r.Info, 1)
	assert.Equal(t, 4, r.IssueCount())
	assert.True(t, r.HasViolations())
}

func TestNewConformsWithoutViolations(t *testing.T) {
	r := New([]Result{
		{FocusNode: rdf.NewIRI("https://x.dev/a"), Severity: SeverityWarning},
	})
	assert.True(t, r.Conforms)
	assert.False(t, r.HasViolations())

	assert.True(t, New(nil).Conforms)
}

func TestRoundTrip(t *testing.T) {
	original := New([]Result{
		sampleViolation("https://x.dev/entity/fn1", "name must match pattern"),
		sampleViolation("https://x.dev/entity/fn2", "name too short"),
		{
			FocusNode: rdf.NewIRI("https://x.dev/entity/fn3"),
			Message:   "consider adding a doc comment",
			Severity:  SeverityWarning,
		},
	})
	require.False(t, original.Conforms)

	parsed, err := Parse(original.Encode())
	require.NoError(t, err)

	assert.Equal(t, original.Conforms, parsed.Conforms)
	require.Len(t, parsed.Violations, 2)
	require.Len(t, parsed.Warnings, 1)
	assert.Empty(t, parsed.Info)

	messages := []string{parsed.Violations[0].Message, parsed.Violations[1].Message}
	assert.ElementsMatch(t, []string{"name must match pattern", "name too short"}, messages)

	for _, v := range parsed.Violations {
		assert.Equal(t, rdf.NewIRI("https://x.dev/name"), *v.Path)
		assert.Equal(t, rdf.NewLiteral("bad value"), *v.Value)
		assert.Equal(t, rdf.NewIRI("https://x.dev/shape/FunctionShape"), *v.SourceShape)
		assert.Equal(t, rdf.NewIRI(shacl.PatternConstraintComponent), *v.ConstraintComponent)
	}

	w := parsed.Warnings[0]
	assert.Equal(t, rdf.NewIRI("https://x.dev/entity/fn3"), w.FocusNode)
	assert.Nil(t, w.Path)
	assert.Nil(t, w.Value)
}

func TestRoundTripConformingReport(t *testing.T) {
	parsed, err := Parse(New(nil).Encode())
	require.NoError(t, err)
	assert.True(t, parsed.Conforms)
	assert.Zero(t, parsed.IssueCount())
}

func TestParseMissingConforms(t *testing.T) {
	text := `<https://x.dev/thing> <https://x.dev/name> "not a report" .`
	_, err := Parse(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoReport)
}

func TestParseMalformedTurtle(t *testing.T) {
	_, err := Parse(`_:report <http://www.w3.org/ns/shacl#conforms`)
	assert.Error(t, err)
}

func TestParseBadConformsValue(t *testing.T) {
	text := `_:report <http://www.w3.org/ns/shacl#conforms> "maybe" .`
	_, err := Parse(text)
	assert.Error(t, err)
}

func TestParseUnrecognizedSeverityDefaultsToViolation(t *testing.T) {
	text := `@prefix sh: <http://www.w3.org/ns/shacl#> .
_:report a sh:ValidationReport ;
	sh:conforms false ;
	sh:result _:r0 .
_:r0 a sh:ValidationResult ;
	sh:focusNode <https://x.dev/entity/fn1> ;
	sh:resultSeverity <https://x.dev/CustomSeverity> ;
	sh:resultMessage "odd severity" .
`
	parsed, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, parsed.Violations, 1)
	assert.Equal(t, SeverityViolation, parsed.Violations[0].Severity)
}

func TestParseResultWithoutMessage(t *testing.T) {
	text := `@prefix sh: <http://www.w3.org/ns/shacl#> .
_:report sh:conforms false ;
	sh:result _:r0 .
_:r0 sh:focusNode <https://x.dev/entity/fn1> ;
	sh:resultSeverity sh:Violation .
`
	parsed, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, parsed.Violations, 1)
	assert.Equal(t, "", parsed.Violations[0].Message)
}

func TestSeverityIRIRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityViolation, SeverityWarning, SeverityInfo} {
		assert.Equal(t, s, SeverityFromIRI(s.IRI()))
	}
	assert.Equal(t, SeverityViolation, SeverityFromIRI("https://x.dev/nonsense"))
}
