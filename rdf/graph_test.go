package rdf

import "testing"

func TestGraphLinkAndHas(t *testing.T) {
	g := NewGraph()
	s := IRI{Value: "urn:s"}
	p := IRI{Value: "urn:p"}
	o := Literal{Lexical: "v", Lang: "en"}

	if err := g.Link(s, p, o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.Len())
	}
	if !g.Has(s, p, o) {
		t.Fatalf("expected statement present")
	}
	if g.Has(s, p, Literal{Lexical: "v"}) {
		t.Fatalf("language-tagged and plain literals must not match")
	}
	if g.Has(s, p, BlankNode{ID: "v"}) {
		t.Fatalf("terms of different kinds must not match")
	}
}

func TestTermStrings(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{IRI{Value: "urn:s"}, "<urn:s>"},
		{BlankNode{ID: "bn0"}, "_:bn0"},
		{Literal{Lexical: "v"}, `"v"`},
		{Literal{Lexical: "v", Lang: "en"}, `"v"@en`},
		{Literal{Lexical: "1", Datatype: IRI{Value: "urn:int"}}, `"1"^^<urn:int>`},
	}
	for _, tt := range tests {
		if got := tt.term.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTripleString(t *testing.T) {
	triple := Triple{
		S: IRI{Value: "urn:s"},
		P: IRI{Value: "urn:p"},
		O: Literal{Lexical: "v"},
	}
	if got, want := triple.String(), `<urn:s> <urn:p> "v" .`; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
