package identifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semshapes/vocabulary/code"
)

func TestEntityIRIDeterministic(t *testing.T) {
	a := EntityIRI("function", "internal/server.go", "handleRequest")
	b := EntityIRI("function", "internal/server.go", "handleRequest")
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, code.EntityNamespace))
}

func TestEntityIRIDistinguishesParts(t *testing.T) {
	a := EntityIRI("function", "a.go", "run")
	b := EntityIRI("function", "b.go", "run")
	c := EntityIRI("module", "a.go", "run")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestContentHashStable(t *testing.T) {
	h1 := ContentHash([]byte("package main"))
	h2 := ContentHash([]byte("package main"))
	h3 := ContentHash([]byte("package main\n"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}
