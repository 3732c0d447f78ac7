// Package rdf provides a streaming RDF/XML parser with a compact RDF model.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// The package converts RDF/XML markup into subject-predicate-object
// statements, streamed rather than buffered:
//   - Decode: NewDecoder() returns a pull-style decoder with Next().
//   - Parse: Parse() and ParseString() stream statements to a GraphHandler.
//   - Events: Parser implements ContentHandler, so any tokenizer producing
//     structural events (element start/end, character data, prefix
//     mappings) can drive it directly; NewDecoder wires encoding/xml.
//
// The parser covers the RDF/XML abbreviations: typed node elements,
// rdf:about/rdf:ID/rdf:nodeID subject identification, rdf:resource and
// rdf:nodeID object shorthands, rdf:datatype and parseType="Literal"
// literals with verbatim XML capture, parseType="Resource" blank nodes,
// property attributes on node and property elements, and rdf:ID statement
// reification.
//
// Example (decoding):
//
//	dec := rdf.NewDecoder(strings.NewReader(input), rdf.OptBaseURI("http://example.org/doc"))
//	defer dec.Close()
//
//	for {
//	    triple, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process triple.S, triple.P, triple.O
//	}
//
// Unresolvable namespace prefixes drop the affected statement and surface
// through Decoder.Warnings or the OptWarningHandler hook; structural
// violations abort the parse with ErrStackCorruption. Limits for untrusted
// input are configured with OptMaxDepth and OptMaxTriples.
//
// Parsing other RDF serializations, schema validation and writing RDF/XML
// back out are out of scope.
package rdf
