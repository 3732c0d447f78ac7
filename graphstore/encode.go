package graphstore

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/geoknoesis/rdfxml-go/rdf"
	"github.com/zeebo/xxh3"
)

const (
	// Encoded term size: tag byte + 16 bytes of 128-bit hash or inline data.
	encodedTermSize = 17

	// Maximum size for inline literal payloads (16 bytes of UTF-8).
	maxInlineSize = 16
)

// Term tags. Hashed tags store their lexical payload in the id2str table.
const (
	tagIRI byte = iota + 1
	tagBlankNode
	tagLiteral
	tagInlineLiteral
)

// fieldSep joins the lexical form, datatype and language of a literal in
// its id2str payload. U+001F cannot appear in XML content.
const fieldSep = "\x1f"

// encodedTerm is a term encoded as a tag byte followed by up to 16 bytes
// of data.
type encodedTerm [encodedTermSize]byte

// termEncoder encodes RDF terms into fixed-size keys using 128-bit xxhash3.
type termEncoder struct{}

// hash128 computes the 128-bit xxhash3 hash of s.
func (termEncoder) hash128(s string) [16]byte {
	hash := xxh3.Hash128([]byte(s))
	var result [16]byte
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// encode encodes a term. For hashed terms it also returns the payload to
// store in the id2str table.
func (e termEncoder) encode(term rdf.Term) (encodedTerm, *string, error) {
	var encoded encodedTerm

	switch t := term.(type) {
	case rdf.IRI:
		encoded[0] = tagIRI
		hash := e.hash128(t.Value)
		copy(encoded[1:], hash[:])
		return encoded, &t.Value, nil
	case rdf.BlankNode:
		encoded[0] = tagBlankNode
		hash := e.hash128(t.ID)
		copy(encoded[1:], hash[:])
		return encoded, &t.ID, nil
	case rdf.Literal:
		if t.Datatype.Value == "" && t.Lang == "" && len(t.Lexical) <= maxInlineSize {
			encoded[0] = tagInlineLiteral
			copy(encoded[1:], t.Lexical)
			return encoded, nil, nil
		}
		payload := t.Lexical + fieldSep + t.Datatype.Value + fieldSep + t.Lang
		encoded[0] = tagLiteral
		hash := e.hash128(payload)
		copy(encoded[1:], hash[:])
		return encoded, &payload, nil
	default:
		return encoded, nil, fmt.Errorf("graphstore: unknown term type %T", term)
	}
}

// decode reconstructs a term. payload must be provided for hashed tags.
func (termEncoder) decode(encoded encodedTerm, payload *string) (rdf.Term, error) {
	switch encoded[0] {
	case tagIRI:
		if payload == nil {
			return nil, fmt.Errorf("graphstore: missing payload for IRI term")
		}
		return rdf.IRI{Value: *payload}, nil
	case tagBlankNode:
		if payload == nil {
			return nil, fmt.Errorf("graphstore: missing payload for blank node term")
		}
		return rdf.BlankNode{ID: *payload}, nil
	case tagInlineLiteral:
		data := encoded[1:]
		end := len(data)
		for end > 0 && data[end-1] == 0 {
			end--
		}
		return rdf.Literal{Lexical: string(data[:end])}, nil
	case tagLiteral:
		if payload == nil {
			return nil, fmt.Errorf("graphstore: missing payload for literal term")
		}
		parts := strings.SplitN(*payload, fieldSep, 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("graphstore: malformed literal payload")
		}
		lit := rdf.Literal{Lexical: parts[0], Lang: parts[2]}
		if parts[1] != "" {
			lit.Datatype = rdf.IRI{Value: parts[1]}
		}
		return lit, nil
	default:
		return nil, fmt.Errorf("graphstore: unknown term tag %d", encoded[0])
	}
}

// hashed reports whether a tag needs an id2str lookup to decode.
func hashed(tag byte) bool {
	return tag == tagIRI || tag == tagBlankNode || tag == tagLiteral
}

// tripleKey concatenates encoded terms into one big-endian key for
// lexicographic ordering.
func tripleKey(terms ...encodedTerm) []byte {
	key := make([]byte, 0, len(terms)*encodedTermSize)
	for _, term := range terms {
		key = append(key, term[:]...)
	}
	return key
}
