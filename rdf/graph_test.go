package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTriple(s, p, o string) Triple {
	return Triple{Subject: NewIRI(s), Predicate: NewIRI(p), Object: NewIRI(o)}
}

func TestGraphDeduplicates(t *testing.T) {
	g := NewGraph()
	tr := testTriple("http://x/s", "http://x/p", "http://x/o")

	assert.True(t, g.Add(tr))
	assert.False(t, g.Add(tr))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(tr))
}

func TestGraphTriplesWith(t *testing.T) {
	s1 := NewIRI("http://x/s1")
	s2 := NewIRI("http://x/s2")
	p1 := NewIRI("http://x/p1")
	p2 := NewIRI("http://x/p2")

	g := NewGraph(
		Triple{Subject: s1, Predicate: p1, Object: NewLiteral("a")},
		Triple{Subject: s1, Predicate: p2, Object: NewLiteral("b")},
		Triple{Subject: s2, Predicate: p1, Object: NewLiteral("c")},
	)

	t.Run("by subject", func(t *testing.T) {
		assert.Len(t, g.TriplesWith(&s1, nil), 2)
	})

	t.Run("by subject and predicate", func(t *testing.T) {
		got := g.TriplesWith(&s1, &p1)
		require.Len(t, got, 1)
		assert.Equal(t, NewLiteral("a"), got[0].Object)
	})

	t.Run("by predicate", func(t *testing.T) {
		assert.Len(t, g.TriplesWith(nil, &p1), 2)
	})

	t.Run("no match", func(t *testing.T) {
		missing := NewIRI("http://x/none")
		assert.Empty(t, g.TriplesWith(&missing, nil))
	})
}

func TestGraphObjects(t *testing.T) {
	s := NewIRI("http://x/s")
	p := NewIRI("http://x/p")
	g := NewGraph(
		Triple{Subject: s, Predicate: p, Object: NewLiteral("a")},
		Triple{Subject: s, Predicate: p, Object: NewLiteral("b")},
	)

	objects := g.Objects(s, p)
	assert.ElementsMatch(t, []Term{NewLiteral("a"), NewLiteral("b")}, objects)
}

func TestGraphSubjectsWith(t *testing.T) {
	p := NewIRI("http://x/p")
	g := NewGraph(
		Triple{Subject: NewIRI("http://x/s1"), Predicate: p, Object: NewLiteral("a")},
		Triple{Subject: NewIRI("http://x/s1"), Predicate: p, Object: NewLiteral("b")},
		Triple{Subject: NewBlankNode("r0"), Predicate: p, Object: NewLiteral("c")},
	)

	subjects := g.SubjectsWith(p)
	assert.Len(t, subjects, 2)
}
