package rdf

import "strconv"

// blankNodeGenerator mints process-unique blank node identifiers for one
// parse. The counter is owned by the parser instance, never shared, and
// never reset mid-parse, so identifiers are never reused even when the
// corresponding node is discarded.
type blankNodeGenerator struct {
	counter int
}

// next returns a fresh blank node. Identifiers are "bn" followed by a
// strictly increasing counter seeded at 0.
func (g *blankNodeGenerator) next() BlankNode {
	id := "bn" + strconv.Itoa(g.counter)
	g.counter++
	return BlankNode{ID: id}
}
