package rdf

// Attr is one attribute of a structural element-start event, in document
// order. QName is the attribute name as written, including any prefix.
type Attr struct {
	QName string
	Value string
}

// ContentHandler receives structural markup events in well-formed document
// order. The event source (tokenizer) delivers one event at a time and
// waits for each call to return before issuing the next. Malformed nesting
// is a precondition violation; the handler performs no well-formedness
// checks of its own.
type ContentHandler interface {
	// StartDocument initializes the handler for one parse.
	StartDocument() error
	// EndDocument releases all parse state. The handler is not reusable
	// afterward.
	EndDocument() error
	// StartPrefixMapping binds prefix to uri for the scope of the next
	// element. The empty prefix denotes the default namespace.
	StartPrefixMapping(prefix, uri string)
	// EndPrefixMapping removes the innermost binding of prefix.
	EndPrefixMapping(prefix string)
	// StartElement delivers an element-start event with its namespace URI
	// (may be empty), local name, qualified name and ordered attributes.
	StartElement(uri, local, qname string, attrs []Attr) error
	// Characters delivers a slice of character data.
	Characters(text string) error
	// EndElement delivers the element-end event matching an earlier
	// StartElement.
	EndElement(uri, local, qname string) error
}

// GraphHandler receives statements as they are detected. The object is an
// IRI, a BlankNode or a Literal. Link is never called after document end.
type GraphHandler interface {
	Link(subject Term, predicate IRI, object Term) error
}

// GraphHandlerFunc adapts a function to a GraphHandler.
type GraphHandlerFunc func(subject Term, predicate IRI, object Term) error

// Link calls the underlying function.
func (f GraphHandlerFunc) Link(subject Term, predicate IRI, object Term) error {
	return f(subject, predicate, object)
}
