package rdf

// Graph is an in-memory statement sink: the set of links grown during one
// or more parses. It implements GraphHandler.
type Graph struct {
	triples []Triple
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Link implements GraphHandler by appending the statement.
func (g *Graph) Link(subject Term, predicate IRI, object Term) error {
	g.triples = append(g.triples, Triple{S: subject, P: predicate, O: object})
	return nil
}

// Len returns the number of statements in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the statements in emission order. The returned slice is
// owned by the graph.
func (g *Graph) Triples() []Triple { return g.triples }

// Has reports whether the graph contains the exact statement.
func (g *Graph) Has(subject Term, predicate IRI, object Term) bool {
	for _, t := range g.triples {
		if t.S == subject && t.P == predicate && t.O == object {
			return true
		}
	}
	return false
}
