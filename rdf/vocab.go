package rdf

// RDFNS is the RDF syntax namespace.
const RDFNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// Vocabulary references emitted by the parser itself.
var (
	iriType       = IRI{Value: RDFNS + "type"}
	iriSubject    = IRI{Value: RDFNS + "subject"}
	iriPredicate  = IRI{Value: RDFNS + "predicate"}
	iriObject     = IRI{Value: RDFNS + "object"}
	iriStatement  = IRI{Value: RDFNS + "Statement"}
	iriXMLLiteral = IRI{Value: RDFNS + "XMLLiteral"}
)
