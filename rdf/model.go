package rdf

import "fmt"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI. Identity is by string value: two IRIs denote
// the same reference exactly when their values are equal.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// BlankNode represents an RDF blank node, identified only within one
// parse/document scope.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal. Datatype and language are stored
// verbatim; no syntax validation is performed.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// newLiteral builds a literal from raw text plus optional datatype and
// language tag.
func newLiteral(text, datatype, lang string) Literal {
	lit := Literal{Lexical: text}
	if datatype != "" {
		lit.Datatype = IRI{Value: datatype}
	}
	if lang != "" {
		lit.Lang = lang
	}
	return lit
}

// Triple is an RDF triple. Triples are never mutated after emission.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// String returns an N-Triples style rendering of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.S.String(), t.P.String(), t.O.String())
}
