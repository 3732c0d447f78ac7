package rdf

// prefixTable maps namespace prefixes to namespace URIs, scoped by paired
// prefix-mapping start/end events. Redeclaring a prefix in a nested scope
// shadows the outer binding until the matching end event.
type prefixTable struct {
	bindings map[string][]string
}

func newPrefixTable() *prefixTable {
	return &prefixTable{bindings: make(map[string][]string)}
}

// begin binds prefix to uri, shadowing any outer binding.
func (t *prefixTable) begin(prefix, uri string) {
	t.bindings[prefix] = append(t.bindings[prefix], uri)
}

// end removes the innermost binding of prefix.
func (t *prefixTable) end(prefix string) {
	stack := t.bindings[prefix]
	if n := len(stack); n > 0 {
		t.bindings[prefix] = stack[:n-1]
	}
}

// lookup returns the current URI bound to prefix.
func (t *prefixTable) lookup(prefix string) (string, bool) {
	stack := t.bindings[prefix]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1], true
}

// rdfDefault reports whether the RDF namespace is currently the unprefixed
// default namespace.
func (t *prefixTable) rdfDefault() bool {
	uri, ok := t.lookup("")
	return ok && uri == RDFNS
}

// clear releases all bindings.
func (t *prefixTable) clear() {
	t.bindings = nil
}
