package rdf

import (
	"errors"
	"testing"
)

var (
	exS = IRI{Value: "http://example.org/s"}
	exP = IRI{Value: "http://example.org/p"}
	exQ = IRI{Value: "http://example.org/q"}
	exO = IRI{Value: "http://example.org/o"}
)

func TestGraphAddIgnoresDuplicates(t *testing.T) {
	g := NewGraph()
	triple := Triple{S: exS, P: exP, O: exO}
	if err := g.Add(triple, triple); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.Len())
	}
}

func TestGraphAddCanonicalLiterals(t *testing.T) {
	g := NewGraph()
	err := g.Add(
		Triple{S: exS, P: exP, O: Literal{Lexical: "a"}},
		Triple{S: exS, P: exP, O: Literal{Lexical: "a", Datatype: XSDString}},
		Triple{S: exS, P: exQ, O: Literal{Lexical: "b", Lang: "en"}},
		Triple{S: exS, P: exQ, O: Literal{Lexical: "b", Lang: "en", Datatype: RDFLangString}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 triples, got %d: %v", g.Len(), g.Triples())
	}
	typed := Literal{Lexical: "a", Datatype: XSDString}
	if !g.Contains(exS, exP, typed) {
		t.Fatalf("expected graph to contain %v", typed)
	}
	if got := g.CountObjectRefs(typed); got != 1 {
		t.Fatalf("expected 1 reference, got %d", got)
	}
	if got := len(g.Match(nil, IRI{}, typed)); got != 1 {
		t.Fatalf("object match: expected 1, got %d", got)
	}
	if o := g.ObjectsOf(exS, exP)[0].(Literal); o.Datatype != (IRI{}) {
		t.Fatalf("expected plain literal, got %v", o)
	}
}

func TestParseTurtleStringDatatypeIsImplicit(t *testing.T) {
	doc, err := ParseTurtleString(`@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
<http://example.org/s> <http://example.org/p> "a", "a"^^xsd:string .`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Graph.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", doc.Graph.Len())
	}
}

func TestGraphRejectsInvalidTriples(t *testing.T) {
	cases := []Triple{
		{S: nil, P: exP, O: exO},
		{S: exS, P: IRI{}, O: exO},
		{S: exS, P: exP, O: nil},
		{S: Literal{Lexical: "x"}, P: exP, O: exO},
	}
	for _, tc := range cases {
		g := NewGraph()
		if err := g.Add(tc); !errors.Is(err, ErrInvalidTriple) {
			t.Fatalf("expected ErrInvalidTriple for %v, got %v", tc, err)
		}
		if Code(g.Add(tc)) != ErrCodeInvalidTriple {
			t.Fatalf("unexpected code for %v", tc)
		}
	}
}

func TestGraphMatch(t *testing.T) {
	g := NewGraph()
	b := BlankNode{ID: "b1"}
	lit := Literal{Lexical: "v"}
	_ = g.Add(
		Triple{S: exS, P: exP, O: exO},
		Triple{S: exS, P: exQ, O: b},
		Triple{S: b, P: exP, O: lit},
	)
	if got := len(g.Match(nil, IRI{}, nil)); got != 3 {
		t.Fatalf("wildcard match: expected 3, got %d", got)
	}
	if got := len(g.Match(exS, IRI{}, nil)); got != 2 {
		t.Fatalf("subject match: expected 2, got %d", got)
	}
	if got := len(g.Match(nil, exP, nil)); got != 2 {
		t.Fatalf("predicate match: expected 2, got %d", got)
	}
	if got := len(g.Match(nil, IRI{}, b)); got != 1 {
		t.Fatalf("object match: expected 1, got %d", got)
	}
	if !g.Contains(b, exP, lit) || g.Contains(b, exQ, lit) {
		t.Fatal("unexpected Contains result")
	}
	if !g.Contains(nil, exQ, nil) {
		t.Fatal("expected pattern match with wildcards")
	}
}

func TestGraphIndexes(t *testing.T) {
	g := NewGraph()
	b := BlankNode{ID: "b1"}
	_ = g.Add(
		Triple{S: exS, P: exP, O: b},
		Triple{S: exO, P: exP, O: b},
		Triple{S: exS, P: exQ, O: exO},
		Triple{S: exS, P: exP, O: exO},
	)
	if g.CountObjectRefs(b) != 2 {
		t.Fatalf("expected 2 references, got %d", g.CountObjectRefs(b))
	}
	if !g.HasSubject(exS) || g.HasSubject(b) {
		t.Fatal("unexpected HasSubject result")
	}
	preds := g.Predicates(exS)
	if len(preds) != 2 || preds[0] != exP || preds[1] != exQ {
		t.Fatalf("unexpected predicates: %v", preds)
	}
	if objs := g.ObjectsOf(exS, exP); len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %v", objs)
	}
	if subjects := g.Subjects(); len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %v", subjects)
	}
	if objects := g.Objects(); len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %v", objects)
	}
}

func TestGraphPrefixesAreCopied(t *testing.T) {
	g := NewGraph()
	g.SetPrefix("ex", "http://example.org/")
	prefixes := g.Prefixes()
	prefixes["other"] = "http://other.org/"
	if _, ok := g.Prefix("other"); ok {
		t.Fatal("Prefixes must return a copy")
	}
}

func TestLiteralDatatypeIRI(t *testing.T) {
	cases := []struct {
		lit  Literal
		want IRI
	}{
		{Literal{Lexical: "a"}, XSDString},
		{Literal{Lexical: "a", Lang: "en"}, RDFLangString},
		{Literal{Lexical: "1", Datatype: XSDInteger}, XSDInteger},
	}
	for _, tc := range cases {
		if got := tc.lit.DatatypeIRI(); got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.lit, tc.want, got)
		}
	}
}

func TestTripleString(t *testing.T) {
	triple := Triple{S: BlankNode{ID: "b1"}, P: exP, O: Literal{Lexical: "v", Lang: "en"}}
	want := `_:b1 <http://example.org/p> "v"@en`
	if triple.String() != want {
		t.Fatalf("expected %s, got %s", want, triple.String())
	}
}
