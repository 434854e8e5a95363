package shapes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshapes/rdf"
)

const shapeYAML = `
prefixes:
  code: https://semshapes.dev/ontology/code/
  xsd: http://www.w3.org/2001/XMLSchema#
shapes:
  - id: https://semshapes.dev/shapes/FunctionShape
    targetClass: code:Function
    nodeKind: iri
    properties:
      - path: code:name
        datatype: xsd:string
        pattern: "^[a-zA-Z_]"
        minLength: 1
        message: function names must be identifiers
      - path: code:startLine
        maxInclusive: 100000
      - path: code:definedIn
        qualifiedClass: code:Module
        qualifiedMinCount: 1
    sparql:
      - message: endLine must not precede startLine
        query: |
          SELECT ?start ?end WHERE {
            $this <https://semshapes.dev/ontology/code/startLine> ?start .
            $this <https://semshapes.dev/ontology/code/endLine> ?end .
            FILTER(?end < ?start)
          }
`

func TestParseShapes(t *testing.T) {
	shapes, err := Parse([]byte(shapeYAML))
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	shape := shapes[0]
	assert.Equal(t, rdf.NewIRI("https://semshapes.dev/shapes/FunctionShape"), shape.ID)
	require.NotNil(t, shape.TargetClass)
	assert.Equal(t, "https://semshapes.dev/ontology/code/Function", shape.TargetClass.Value)
	require.NotNil(t, shape.NodeKind)
	assert.Equal(t, NodeKindIRI, *shape.NodeKind)

	require.Len(t, shape.Properties, 3)

	name := shape.Properties[0]
	assert.Equal(t, "https://semshapes.dev/ontology/code/name", name.Path.Value)
	require.NotNil(t, name.Datatype)
	assert.Equal(t, rdf.XsdString, name.Datatype.Value)
	require.NotNil(t, name.Pattern)
	assert.True(t, name.Pattern.MatchString("valid_name"))
	require.NotNil(t, name.MinLength)
	assert.Equal(t, 1, *name.MinLength)
	assert.Equal(t, "function names must be identifiers", name.Message)

	start := shape.Properties[1]
	require.NotNil(t, start.MaxInclusive)
	assert.Equal(t, float64(100000), *start.MaxInclusive)
	assert.Nil(t, start.Datatype)

	qualified := shape.Properties[2]
	require.NotNil(t, qualified.QualifiedClass)
	require.NotNil(t, qualified.QualifiedMinCount)
	assert.Equal(t, 1, *qualified.QualifiedMinCount)

	require.Len(t, shape.Queries, 1)
	assert.Contains(t, shape.Queries[0].Query, "$this")
	assert.Equal(t, shape.ID, shape.Queries[0].Shape)
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "shapes:\n  - targetClass: http://x/T\n"},
		{"bad pattern", "shapes:\n  - id: http://x/S\n    pattern: '['\n"},
		{"bad nodeKind", "shapes:\n  - id: http://x/S\n    nodeKind: triple\n"},
		{"property missing path", "shapes:\n  - id: http://x/S\n    properties:\n      - minLength: 1\n"},
		{"empty sparql query", "shapes:\n  - id: http://x/S\n    sparql:\n      - message: m\n        query: \"  \"\n"},
		{"negative minLength", "shapes:\n  - id: http://x/S\n    minLength: -1\n"},
		{"qualifiedClass on node shape", "shapes:\n  - id: http://x/S\n    qualifiedClass: http://x/T\n"},
		{"qualifiedMinCount on node shape", "shapes:\n  - id: http://x/S\n    qualifiedMinCount: 1\n"},
		{"not yaml", ": ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestYamlTermConversion(t *testing.T) {
	prefixes := map[string]string{"code": "https://semshapes.dev/ontology/code/"}

	assert.Equal(t, rdf.NewIRI("http://x/a"), yamlTerm("http://x/a", nil))
	assert.Equal(t, rdf.NewIRI("https://semshapes.dev/ontology/code/Function"), yamlTerm("code:Function", prefixes))
	assert.Equal(t, rdf.NewLiteral("plain"), yamlTerm("plain", nil))
	assert.Equal(t, rdf.NewInteger(5), yamlTerm(5, nil))
	assert.Equal(t, rdf.NewBoolean(true), yamlTerm(true, nil))
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("shapes:\n  - id: http://x/A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("shapes:\n  - id: http://x/B\n"), 0o644))

	shapes, err := LoadGlob(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	assert.Len(t, shapes, 2)
}

func TestNodeKindMatches(t *testing.T) {
	assert.True(t, NodeKindIRI.Matches(rdf.NewIRI("http://x/a")))
	assert.True(t, NodeKindBlankNode.Matches(rdf.NewBlankNode("b")))
	assert.True(t, NodeKindLiteral.Matches(rdf.NewLiteral("l")))
	assert.False(t, NodeKindIRI.Matches(rdf.NewLiteral("l")))
}
