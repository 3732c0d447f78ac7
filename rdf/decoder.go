package rdf

import (
	"context"
	"encoding/xml"
	"io"
	"strings"
)

// Decoder streams triples parsed from RDF/XML input.
type Decoder interface {
	Next() (Triple, error)
	Err() error
	Close() error
	// Warnings returns recoverable data errors seen so far (statements
	// dropped over unresolved prefixes).
	Warnings() []error
}

// xmlDecoder drives the parsing state machine from an encoding/xml token
// stream. encoding/xml resolves namespaces itself, so the driver tracks
// xmlns declarations on its own to synthesize prefix-mapping events and to
// reconstruct qualified names.
type xmlDecoder struct {
	dec    *xml.Decoder
	parser *Parser

	// prefix bookkeeping for qualified-name reconstruction
	uriPrefixes map[string][]string // namespace URI -> declared prefixes
	scopes      [][]nsBinding       // declarations per open element

	queue   []Triple
	started bool
	closed  bool
	err     error
}

// NewDecoder returns a pull-style decoder reading one RDF/XML document
// from r.
func NewDecoder(r io.Reader, opts ...Option) Decoder {
	d := &xmlDecoder{
		dec:         xml.NewDecoder(r),
		uriPrefixes: make(map[string][]string),
	}
	sink := GraphHandlerFunc(func(s Term, p IRI, o Term) error {
		d.queue = append(d.queue, Triple{S: s, P: p, O: o})
		return nil
	})
	d.parser = NewParser(sink, opts...)
	return d
}

// Next returns the next parsed triple, or io.EOF at document end.
func (d *xmlDecoder) Next() (Triple, error) {
	for {
		if len(d.queue) > 0 {
			next := d.queue[0]
			d.queue = d.queue[1:]
			return next, nil
		}
		if d.err != nil {
			return Triple{}, d.err
		}
		if d.closed {
			return Triple{}, io.EOF
		}
		if !d.started {
			d.started = true
			if err := d.parser.StartDocument(); err != nil {
				d.err = err
				return Triple{}, err
			}
		}
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				d.closed = true
				if err := d.parser.EndDocument(); err != nil {
					d.err = err
					return Triple{}, err
				}
				continue
			}
			d.err = wrapParseError("", d.dec.InputOffset(), err)
			return Triple{}, d.err
		}
		if err := d.handleToken(tok); err != nil {
			d.err = err
			return Triple{}, err
		}
	}
}

func (d *xmlDecoder) Err() error { return d.err }

func (d *xmlDecoder) Close() error {
	d.closed = true
	d.queue = nil
	return nil
}

func (d *xmlDecoder) Warnings() []error { return d.parser.Warnings() }

func (d *xmlDecoder) handleToken(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return d.handleStart(t)
	case xml.EndElement:
		return d.handleEnd(t)
	case xml.CharData:
		return d.parser.Characters(string(t))
	}
	// Comments, directives and processing instructions carry no structure.
	return nil
}

// nsBinding records one xmlns declaration so exactly that declaration can
// be removed when its scope closes.
type nsBinding struct {
	prefix string
	uri    string
}

func (d *xmlDecoder) handleStart(t xml.StartElement) error {
	var declared []nsBinding
	for _, attr := range t.Attr {
		if prefix, uri, ok := namespaceDecl(attr); ok {
			d.parser.StartPrefixMapping(prefix, uri)
			d.bind(prefix, uri)
			declared = append(declared, nsBinding{prefix: prefix, uri: uri})
		}
	}
	d.scopes = append(d.scopes, declared)

	attrs := make([]Attr, 0, len(t.Attr))
	for _, attr := range t.Attr {
		attrs = append(attrs, Attr{QName: d.attrQName(attr.Name), Value: attr.Value})
	}

	uri, qname := d.elementName(t.Name)
	err := d.parser.StartElement(uri, t.Name.Local, qname, attrs)
	return wrapParseError(qname, d.dec.InputOffset(), err)
}

func (d *xmlDecoder) handleEnd(t xml.EndElement) error {
	uri, qname := d.elementName(t.Name)
	err := d.parser.EndElement(uri, t.Name.Local, qname)
	if n := len(d.scopes); n > 0 {
		declared := d.scopes[n-1]
		d.scopes = d.scopes[:n-1]
		for i := len(declared) - 1; i >= 0; i-- {
			d.parser.EndPrefixMapping(declared[i].prefix)
			d.unbind(declared[i].prefix, declared[i].uri)
		}
	}
	return wrapParseError(qname, d.dec.InputOffset(), err)
}

func (d *xmlDecoder) bind(prefix, uri string) {
	d.uriPrefixes[uri] = append(d.uriPrefixes[uri], prefix)
}

// unbind removes the innermost declaration of prefix for uri. The same
// prefix may be bound to other URIs in enclosing scopes; those bindings
// stay untouched.
func (d *xmlDecoder) unbind(prefix, uri string) {
	prefixes := d.uriPrefixes[uri]
	for i := len(prefixes) - 1; i >= 0; i-- {
		if prefixes[i] == prefix {
			d.uriPrefixes[uri] = append(prefixes[:i], prefixes[i+1:]...)
			return
		}
	}
}

// prefixFor returns the innermost prefix declared for a namespace URI.
func (d *xmlDecoder) prefixFor(uri string) (string, bool) {
	prefixes := d.uriPrefixes[uri]
	if len(prefixes) == 0 {
		return "", false
	}
	return prefixes[len(prefixes)-1], true
}

// elementName splits a token name into the namespace URI and qualified name
// handed to the parser. An undeclared prefix passes through encoding/xml in
// the Space field; it is forwarded in the qualified name only, so prefix
// resolution fails where it can be reported.
func (d *xmlDecoder) elementName(name xml.Name) (uri, qname string) {
	if name.Space == "" {
		return "", name.Local
	}
	if len(d.uriPrefixes[name.Space]) == 0 {
		return "", name.Space + ":" + name.Local
	}
	return name.Space, d.elementQName(name)
}

// elementQName rebuilds the qualified name of an element from its resolved
// namespace.
func (d *xmlDecoder) elementQName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := d.prefixFor(name.Space); ok {
		if prefix == "" {
			return name.Local
		}
		return prefix + ":" + name.Local
	}
	// Unresolvable prefixes pass through encoding/xml in the Space field.
	return name.Space + ":" + name.Local
}

// attrQName rebuilds the qualified name of an attribute. Unprefixed
// attributes carry no namespace; xmlns declarations and xml:* attributes
// keep their reserved prefixes.
func (d *xmlDecoder) attrQName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	case "xml":
		return "xml:" + name.Local
	}
	// Default-namespace bindings do not apply to attributes; pick the
	// innermost non-empty prefix for the namespace.
	prefixes := d.uriPrefixes[name.Space]
	for i := len(prefixes) - 1; i >= 0; i-- {
		if prefixes[i] != "" {
			return prefixes[i] + ":" + name.Local
		}
	}
	return name.Space + ":" + name.Local
}

// namespaceDecl reports whether attr declares a namespace and returns the
// declared prefix and URI.
func namespaceDecl(attr xml.Attr) (prefix, uri string, ok bool) {
	if attr.Name.Space == "xmlns" {
		return attr.Name.Local, attr.Value, true
	}
	if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
		return "", attr.Value, true
	}
	return "", "", false
}

// Parse parses one RDF/XML document from r and streams statements to h.
// If ctx is nil, context.Background() is used. Cancellation is checked
// between statements.
func Parse(ctx context.Context, r io.Reader, h GraphHandler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dec := NewDecoder(r, opts...)
	defer dec.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		triple, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := h.Link(triple.S, triple.P, triple.O); err != nil {
			return err
		}
	}
}

// ParseString parses an RDF/XML document held in a string.
func ParseString(ctx context.Context, input string, h GraphHandler, opts ...Option) error {
	return Parse(ctx, strings.NewReader(input), h, opts...)
}
