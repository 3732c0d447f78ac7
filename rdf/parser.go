package rdf

import (
	"strings"
)

// Parser is the RDF/XML parsing state machine. It consumes structural
// markup events through the ContentHandler interface and forwards detected
// statements to a GraphHandler, synchronously, one event at a time.
//
// A Parser serves exactly one document: after EndDocument (or a fatal
// error) it rejects further events. Blank node identifiers are unique per
// Parser instance.
type Parser struct {
	opts   Options
	graph  GraphHandler
	refs   resolver
	blanks blankNodeGenerator

	frames   frameStack
	subjects subjectStack

	// reified is the pending reification reference, at most one per
	// predicate element, cleared when the triple it annotates is emitted.
	reified *IRI

	emitted  int64
	warnings []error

	started bool
	done    bool
	err     error
}

// elemEvent carries one element-start or element-end event.
type elemEvent struct {
	uri   string
	local string
	qname string
	attrs []Attr
}

// startActions dispatches element-start events on the state at the top of
// the stack.
var startActions = [numStates]func(*Parser, elemEvent) error{
	stateNone:      (*Parser).startInNone,
	stateSubject:   (*Parser).startInSubject,
	statePredicate: (*Parser).startInPredicate,
	stateObject:    (*Parser).startInObject,
	stateLiteral:   (*Parser).startInLiteral,
}

// endActions dispatches element-end events on the state of the frame just
// popped.
var endActions = [numStates]func(*Parser, *frame) error{
	stateNone:      (*Parser).endInNone,
	stateSubject:   (*Parser).endInSubject,
	statePredicate: (*Parser).endInPredicate,
	stateObject:    (*Parser).endInObject,
	stateLiteral:   (*Parser).endInLiteral,
}

// NewParser returns a parser forwarding statements to graph.
func NewParser(graph GraphHandler, opts ...Option) *Parser {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options = normalizeOptions(options)

	p := &Parser{opts: options, graph: graph}
	p.refs = resolver{base: options.BaseURI, prefixes: newPrefixTable()}
	return p
}

// Warnings returns the recoverable data errors collected so far. Empty when
// a WarningHandler option is set.
func (p *Parser) Warnings() []error { return p.warnings }

// StartDocument implements ContentHandler.
func (p *Parser) StartDocument() error {
	if err := p.guard(); err != nil {
		return err
	}
	if p.started {
		p.err = ErrStackCorruption
		return p.err
	}
	p.started = true
	p.frames.push(&frame{state: stateNone})
	return nil
}

// EndDocument implements ContentHandler. All stacks, buffers and the prefix
// table are released; the parser is not reusable afterward.
func (p *Parser) EndDocument() error {
	if err := p.guard(); err != nil {
		return err
	}
	balanced := p.started && p.frames.len() == 1 && p.subjects.len() == 0
	p.done = true
	p.frames = frameStack{}
	p.subjects = subjectStack{}
	p.refs.prefixes.clear()
	p.reified = nil
	if !balanced {
		p.err = ErrStackCorruption
		return p.err
	}
	return nil
}

// StartPrefixMapping implements ContentHandler.
func (p *Parser) StartPrefixMapping(prefix, uri string) {
	if p.err != nil || p.done {
		return
	}
	p.refs.prefixes.begin(prefix, uri)
}

// EndPrefixMapping implements ContentHandler.
func (p *Parser) EndPrefixMapping(prefix string) {
	if p.err != nil || p.done {
		return
	}
	p.refs.prefixes.end(prefix)
}

// StartElement implements ContentHandler.
func (p *Parser) StartElement(uri, local, qname string, attrs []Attr) error {
	if err := p.guard(); err != nil {
		return err
	}
	top := p.frames.peek()
	if top == nil {
		p.err = ErrStackCorruption
		return p.err
	}
	if p.opts.MaxDepth > 0 && p.frames.len()+top.literalDepth >= p.opts.MaxDepth {
		p.err = ErrDepthExceeded
		return p.err
	}
	if err := startActions[top.state](p, elemEvent{uri: uri, local: local, qname: qname, attrs: attrs}); err != nil {
		p.err = err
		return err
	}
	return nil
}

// Characters implements ContentHandler. Text is buffered only while the
// top state reads a literal or a predicate value; it is ignored otherwise.
func (p *Parser) Characters(text string) error {
	if err := p.guard(); err != nil {
		return err
	}
	top := p.frames.peek()
	if top == nil {
		p.err = ErrStackCorruption
		return p.err
	}
	if top.state == stateLiteral || top.state == statePredicate {
		top.buf.WriteString(text)
	}
	return nil
}

// EndElement implements ContentHandler.
func (p *Parser) EndElement(uri, local, qname string) error {
	if err := p.guard(); err != nil {
		return err
	}
	top := p.frames.peek()
	if top == nil {
		p.err = ErrStackCorruption
		return p.err
	}
	if top.state == stateLiteral && top.literalDepth > 0 {
		// This end tag closes an element inside the XML literal body, not
		// the literal itself.
		appendLiteralEndTag(&top.buf, uri, local)
		top.literalDepth--
		return nil
	}
	f := p.frames.pop()
	if p.frames.len() == 0 {
		// The document frame was consumed: an element-end arrived without a
		// matching element-start.
		p.err = ErrStackCorruption
		return p.err
	}
	if err := endActions[f.state](p, f); err != nil {
		p.err = err
		return err
	}
	// A pending reification reference never outlives the element that set
	// it. It stays unconsumed when a shorthand earlier in attribute order
	// already emitted the element's statement.
	p.reified = nil
	return nil
}

// guard rejects events after a fatal error or after document end.
func (p *Parser) guard() error {
	if p.err != nil {
		return p.err
	}
	if p.done {
		p.err = ErrDocumentEnded
		return p.err
	}
	return nil
}

// startInNone handles the document root: the grammar's wrapper tag records
// an optional base override, anything else opens a subject node.
func (p *Parser) startInNone(ev elemEvent) error {
	if p.checkRdfQName("RDF", ev.qname) {
		if base, ok := attrValue(ev.attrs, "xml:base"); ok {
			p.refs.base = base
		}
		p.frames.push(&frame{state: stateNone, lang: p.langFor(ev)})
		return nil
	}
	node, err := p.parseNode(ev)
	if err != nil {
		return err
	}
	p.subjects.push(node)
	p.frames.push(&frame{state: stateSubject, subjectPushed: true, lang: p.langFor(ev)})
	return nil
}

// startInSubject handles an element naming a predicate of the current
// subject, evaluating attribute shorthands in document order with a
// first-match-wins policy.
func (p *Parser) startInSubject(ev elemEvent) error {
	f := &frame{state: statePredicate, lang: p.langFor(ev)}

	predicate, err := p.refs.resolve(ev.uri, ev.local, ev.qname)
	if err != nil {
		// Data error: drop every statement of this predicate element but
		// keep the frame so stack discipline holds.
		p.warn(err)
		f.satisfied = true
		f.dropped = true
		p.frames.push(f)
		return nil
	}
	f.predicate = predicate

	var arcs []Attr
scan:
	for _, a := range ev.attrs {
		switch {
		case p.checkRdfQName("resource", a.QName):
			if err := p.emit(p.subjects.peek(), predicate, p.refs.resolveNamespace(a.Value, "")); err != nil {
				return err
			}
			f.satisfied = true
			break scan
		case p.checkRdfQName("datatype", a.QName):
			f.state = stateLiteral
			f.datatype = a.Value
		case p.checkRdfQName("parseType", a.QName):
			switch a.Value {
			case "Literal":
				f.state = stateLiteral
				f.datatype = iriXMLLiteral.Value
				f.literalDepth = 0
			case "Resource":
				node := p.blanks.next()
				if err := p.emit(p.subjects.peek(), predicate, node); err != nil {
					return err
				}
				p.subjects.push(node)
				f.state = stateSubject
				f.subjectPushed = true
				f.satisfied = true
				// Remaining attributes are not scanned for arcs after
				// parseType=Resource.
				break scan
			default:
				// Unsupported parseType values are ignored.
			}
		case p.checkRdfQName("nodeID", a.QName):
			if err := p.emit(p.subjects.peek(), predicate, BlankNode{ID: a.Value}); err != nil {
				return err
			}
			f.satisfied = true
		case p.checkRdfQName("ID", a.QName):
			ref := p.refs.resolveLocal("#" + a.Value)
			p.reified = &ref
		case isMarkupAttr(a.QName):
			// Namespace declarations and xml:* attributes are markup, not
			// data.
		default:
			arcs = append(arcs, a)
		}
	}

	if len(arcs) > 0 {
		// Implicit arcs run from a fresh blank node to literal values; the
		// blank node becomes the object of the main statement.
		node := p.blanks.next()
		if err := p.emit(p.subjects.peek(), predicate, node); err != nil {
			return err
		}
		f.satisfied = true
		for _, arc := range arcs {
			pred, err := p.refs.resolveQName(arc.QName)
			if err != nil {
				p.warn(err)
				continue
			}
			if err := p.emitPlain(node, pred, Literal{Lexical: arc.Value}); err != nil {
				return err
			}
		}
	}

	p.frames.push(f)
	return nil
}

// startInPredicate handles a nested resource node: the element is parsed as
// a node, the pending statement is emitted immediately, and the node opens
// a new subject frame for its own children.
func (p *Parser) startInPredicate(ev elemEvent) error {
	parent := p.frames.peek()
	node, err := p.parseNode(ev)
	if err != nil {
		return err
	}
	if !parent.dropped {
		if err := p.emit(p.subjects.peek(), parent.predicate, node); err != nil {
			return err
		}
	}
	p.subjects.push(node)
	p.frames.push(&frame{
		state:         statePredicate,
		predicate:     parent.predicate,
		subjectPushed: true,
		satisfied:     true,
		dropped:       parent.dropped,
		lang:          p.langFor(ev),
	})
	return nil
}

// startInObject is unreachable from well-formed event streams; the frame
// keeps the stack balanced regardless.
func (p *Parser) startInObject(ev elemEvent) error {
	p.frames.push(&frame{state: stateObject, satisfied: true, lang: p.langFor(ev)})
	return nil
}

// startInLiteral captures the start tag verbatim into the XML literal body.
// Element starts inside a literal never change parser state.
func (p *Parser) startInLiteral(ev elemEvent) error {
	top := p.frames.peek()
	top.literalDepth++
	appendLiteralStartTag(&top.buf, ev.uri, ev.local)
	return nil
}

func (p *Parser) endInNone(f *frame) error { return nil }

func (p *Parser) endInSubject(f *frame) error {
	return p.popNodeSubject(f)
}

func (p *Parser) endInPredicate(f *frame) error {
	if err := p.popNodeSubject(f); err != nil {
		return err
	}
	if f.satisfied || f.dropped {
		return nil
	}
	subject := p.subjects.peek()
	if subject == nil {
		return ErrStackCorruption
	}
	return p.emit(subject, f.predicate, newLiteral(f.buf.String(), "", f.lang))
}

func (p *Parser) endInObject(f *frame) error {
	// Vestigial per the grammar: the buffered text would become the pending
	// object of an outer element. No statement is emitted here.
	return nil
}

func (p *Parser) endInLiteral(f *frame) error {
	if f.satisfied || f.dropped {
		return nil
	}
	subject := p.subjects.peek()
	if subject == nil {
		return ErrStackCorruption
	}
	return p.emit(subject, f.predicate, newLiteral(f.buf.String(), f.datatype, f.lang))
}

// popNodeSubject pops the subject stack for frames that opened a node.
func (p *Parser) popNodeSubject(f *frame) error {
	if !f.subjectPushed {
		return nil
	}
	if p.subjects.pop() == nil {
		return ErrStackCorruption
	}
	return nil
}

// parseNode determines the reference of a node element from its identifying
// attributes (about, nodeID, ID), minting a blank node when none is
// present, and emits the node's immediate statements: a type statement for
// typed elements and one literal statement per remaining attribute.
func (p *Parser) parseNode(ev elemEvent) (Term, error) {
	var node Term
	var arcs []Attr
	for _, a := range ev.attrs {
		switch {
		case p.checkRdfQName("about", a.QName):
			if node == nil {
				node = p.refs.resolveNamespace(a.Value, "")
			}
		case p.checkRdfQName("nodeID", a.QName):
			if node == nil {
				node = BlankNode{ID: a.Value}
			}
		case p.checkRdfQName("ID", a.QName):
			if node == nil {
				node = p.refs.resolveLocal("#" + a.Value)
			}
		case isMarkupAttr(a.QName):
		default:
			arcs = append(arcs, a)
		}
	}
	if node == nil {
		node = p.blanks.next()
	}

	if !p.checkRdfQName("Description", ev.qname) {
		typeRef, err := p.refs.resolve(ev.uri, ev.local, ev.qname)
		if err != nil {
			p.warn(err)
		} else if err := p.emitPlain(node, iriType, typeRef); err != nil {
			return nil, err
		}
	}
	for _, arc := range arcs {
		pred, err := p.refs.resolveQName(arc.QName)
		if err != nil {
			p.warn(err)
			continue
		}
		if err := p.emitPlain(node, pred, Literal{Lexical: arc.Value}); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// emit forwards one statement to the sink and, when a reification reference
// is pending, the four statements describing the statement itself, in
// fixed order. The pending reference is cleared before they are emitted.
func (p *Parser) emit(subject Term, predicate IRI, object Term) error {
	if err := p.emitPlain(subject, predicate, object); err != nil {
		return err
	}
	if p.reified == nil {
		return nil
	}
	ref := *p.reified
	p.reified = nil
	if err := p.emitPlain(ref, iriSubject, subject); err != nil {
		return err
	}
	if err := p.emitPlain(ref, iriPredicate, predicate); err != nil {
		return err
	}
	if err := p.emitPlain(ref, iriObject, object); err != nil {
		return err
	}
	return p.emitPlain(ref, iriType, iriStatement)
}

// emitPlain forwards one statement to the sink without touching the
// pending reification reference.
func (p *Parser) emitPlain(subject Term, predicate IRI, object Term) error {
	if p.opts.MaxTriples > 0 && p.emitted >= p.opts.MaxTriples {
		return ErrTripleLimitExceeded
	}
	p.emitted++
	return p.graph.Link(subject, predicate, object)
}

// checkRdfQName reports whether qname names local in the RDF namespace:
// either through the conventional rdf prefix or unprefixed while the RDF
// namespace is the default.
func (p *Parser) checkRdfQName(local, qname string) bool {
	if qname == "rdf:"+local {
		return true
	}
	return p.refs.prefixes.rdfDefault() &&
		!strings.Contains(qname, ":") && qname == local
}

// langFor returns the language tag in scope for a new frame: the element's
// own xml:lang when present, the enclosing frame's tag otherwise.
func (p *Parser) langFor(ev elemEvent) string {
	if lang, ok := attrValue(ev.attrs, "xml:lang"); ok {
		return lang
	}
	if top := p.frames.peek(); top != nil {
		return top.lang
	}
	return ""
}

func (p *Parser) warn(err error) {
	if p.opts.WarningHandler != nil {
		p.opts.WarningHandler(err)
		return
	}
	p.warnings = append(p.warnings, err)
}

// attrValue returns the value of the attribute with the given qualified
// name.
func attrValue(attrs []Attr, qname string) (string, bool) {
	for _, a := range attrs {
		if a.QName == qname {
			return a.Value, true
		}
	}
	return "", false
}

// isMarkupAttr reports whether a qualified attribute name belongs to the
// markup layer (namespace declarations and xml:* attributes) rather than
// the data.
func isMarkupAttr(qname string) bool {
	return qname == "xmlns" ||
		strings.HasPrefix(qname, "xmlns:") ||
		strings.HasPrefix(qname, "xml:")
}

// appendLiteralStartTag re-serializes a start tag into an XML literal body.
func appendLiteralStartTag(buf *strings.Builder, uri, local string) {
	buf.WriteByte('<')
	if uri != "" {
		buf.WriteString(uri)
		buf.WriteByte(':')
	}
	buf.WriteString(local)
	buf.WriteByte('>')
}

// appendLiteralEndTag re-serializes an end tag into an XML literal body.
func appendLiteralEndTag(buf *strings.Builder, uri, local string) {
	buf.WriteString("</")
	if uri != "" {
		buf.WriteString(uri)
		buf.WriteByte(':')
	}
	buf.WriteString(local)
	buf.WriteByte('>')
}
