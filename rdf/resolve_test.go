package rdf

import (
	"errors"
	"testing"
)

func TestResolvePrecedence(t *testing.T) {
	prefixes := newPrefixTable()
	prefixes.begin("ex", "http://example.org/")
	r := resolver{base: "http://base/", prefixes: prefixes}

	// A namespace URI wins over the qualified name.
	got, err := r.resolve("http://ns/", "title", "ex:title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (IRI{Value: "http://ns/title"}) {
		t.Fatalf("expected namespace resolution, got %v", got)
	}

	// Without a namespace the qualified name is resolved through the table.
	got, err = r.resolve("", "title", "ex:title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (IRI{Value: "http://example.org/title"}) {
		t.Fatalf("expected prefix resolution, got %v", got)
	}

	// A bare local name falls back to the base URI.
	got, err = r.resolve("", "title", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (IRI{Value: "http://base/title"}) {
		t.Fatalf("expected base resolution, got %v", got)
	}
}

func TestResolveRelativeNamespace(t *testing.T) {
	r := resolver{base: "http://base/", prefixes: newPrefixTable()}
	if got := r.resolveNamespace("doc", ""); got != (IRI{Value: "http://base/doc"}) {
		t.Fatalf("expected base-resolved reference, got %v", got)
	}
	if got := r.resolveNamespace("http://abs/doc", ""); got != (IRI{Value: "http://abs/doc"}) {
		t.Fatalf("expected absolute reference untouched, got %v", got)
	}
	if got := r.resolveNamespace("urn:x", ""); got != (IRI{Value: "urn:x"}) {
		t.Fatalf("expected urn untouched, got %v", got)
	}
}

func TestResolveUnboundPrefix(t *testing.T) {
	r := resolver{prefixes: newPrefixTable()}
	_, err := r.resolveQName("dc:title")
	if !errors.Is(err, ErrUnresolvedPrefix) {
		t.Fatalf("expected ErrUnresolvedPrefix, got %v", err)
	}
}

func TestResolveUnprefixedName(t *testing.T) {
	prefixes := newPrefixTable()
	r := resolver{base: "http://base/", prefixes: prefixes}

	got, err := r.resolveQName("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (IRI{Value: "http://base/title"}) {
		t.Fatalf("expected base fallback, got %v", got)
	}

	prefixes.begin("", "http://default/")
	got, err = r.resolveQName("title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (IRI{Value: "http://default/title"}) {
		t.Fatalf("expected default namespace, got %v", got)
	}
}

func TestPrefixShadowing(t *testing.T) {
	table := newPrefixTable()
	table.begin("ex", "http://outer/")
	table.begin("ex", "http://inner/")

	if uri, _ := table.lookup("ex"); uri != "http://inner/" {
		t.Fatalf("expected inner binding, got %q", uri)
	}
	table.end("ex")
	if uri, _ := table.lookup("ex"); uri != "http://outer/" {
		t.Fatalf("expected outer binding restored, got %q", uri)
	}
	table.end("ex")
	if _, ok := table.lookup("ex"); ok {
		t.Fatalf("expected binding removed")
	}
	// Unbalanced end events are tolerated.
	table.end("ex")
}

func TestRDFDefaultNamespaceScoped(t *testing.T) {
	table := newPrefixTable()
	if table.rdfDefault() {
		t.Fatalf("expected no default binding")
	}
	table.begin("", RDFNS)
	if !table.rdfDefault() {
		t.Fatalf("expected RDF default namespace")
	}
	table.begin("", "http://other/")
	if table.rdfDefault() {
		t.Fatalf("expected shadowed default namespace")
	}
	table.end("")
	if !table.rdfDefault() {
		t.Fatalf("expected RDF default namespace restored")
	}
}

func TestBlankNodeGenerator(t *testing.T) {
	var gen blankNodeGenerator
	if got := gen.next(); got != (BlankNode{ID: "bn0"}) {
		t.Fatalf("expected bn0, got %v", got)
	}
	if got := gen.next(); got != (BlankNode{ID: "bn1"}) {
		t.Fatalf("expected bn1, got %v", got)
	}
}
