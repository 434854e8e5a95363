package rdf

// Graph is an unordered, duplicate-free collection of triples with a
// subject/predicate lookup index. Validators treat a Graph as read-only
// input; once populated it is safe to share across goroutines that only
// call query methods.
type Graph struct {
	triples []Triple
	seen    map[string]struct{}

	// bySubject indexes triple positions by subject identity.
	bySubject map[string][]int
}

// NewGraph creates a graph containing the given triples. Duplicates are
// silently collapsed.
func NewGraph(triples ...Triple) *Graph {
	g := &Graph{
		seen:      make(map[string]struct{}),
		bySubject: make(map[string][]int),
	}
	for _, t := range triples {
		g.Add(t)
	}
	return g
}

// Add inserts a triple, returning false when an identical triple is
// already present.
func (g *Graph) Add(t Triple) bool {
	k := t.key()
	if _, dup := g.seen[k]; dup {
		return false
	}
	g.seen[k] = struct{}{}
	g.triples = append(g.triples, t)
	sk := t.Subject.String()
	g.bySubject[sk] = append(g.bySubject[sk], len(g.triples)-1)
	return true
}

// Len returns the number of distinct triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Contains reports whether an identical triple is present.
func (g *Graph) Contains(t Triple) bool {
	_, ok := g.seen[t.key()]
	return ok
}

// TriplesWith returns all triples matching the given subject and/or
// predicate. A nil argument is a wildcard; at least one is expected in
// practice.
func (g *Graph) TriplesWith(subject, predicate *Term) []Triple {
	var out []Triple
	if subject != nil {
		for _, i := range g.bySubject[subject.String()] {
			t := g.triples[i]
			if predicate == nil || t.Predicate == *predicate {
				out = append(out, t)
			}
		}
		return out
	}
	for _, t := range g.triples {
		if predicate == nil || t.Predicate == *predicate {
			out = append(out, t)
		}
	}
	return out
}

// Objects returns the objects of all triples with the given subject and
// predicate.
func (g *Graph) Objects(subject, predicate Term) []Term {
	var out []Term
	for _, i := range g.bySubject[subject.String()] {
		t := g.triples[i]
		if t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// SubjectsWith returns the distinct subjects of all triples with the
// given predicate. Used by the report parser to locate report nodes.
func (g *Graph) SubjectsWith(predicate Term) []Term {
	var out []Term
	dedup := make(map[string]struct{})
	for _, t := range g.triples {
		if t.Predicate != predicate {
			continue
		}
		k := t.Subject.String()
		if _, ok := dedup[k]; ok {
			continue
		}
		dedup[k] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}
