package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobBase(t *testing.T) {
	assert.Equal(t, "shapes", globBase(filepath.Join("shapes", "**", "*.yaml")))
	assert.Equal(t, filepath.Join("a", "b"), globBase(filepath.Join("a", "b", "*.yaml")))
	assert.Equal(t, ".", globBase("*.yaml"))
}

func TestWatchRootsDeduplicates(t *testing.T) {
	roots := watchRoots(
		filepath.Join("data", "graph.ttl"),
		[]string{filepath.Join("data", "*.yaml"), filepath.Join("shapes", "*.yaml")},
	)
	assert.Equal(t, []string{"data", "shapes"}, roots)
}
