package rdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustParseTurtle(t *testing.T, input string, opts ...Option) *Document {
	t.Helper()
	doc, err := ParseTurtleString(input, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestTurtleDirectiveAndPrefixedName(t *testing.T) {
	doc := mustParseTurtle(t, "@prefix ex: <http://example.org/> .\nex:s ex:p \"v\" .\n")
	triples := doc.Graph.Triples()
	if len(triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(triples))
	}
	if triples[0].P.Value != "http://example.org/p" {
		t.Fatalf("unexpected predicate: %s", triples[0].P.Value)
	}
	if ns, ok := doc.Graph.Prefix("ex"); !ok || ns != "http://example.org/" {
		t.Fatalf("prefix not recorded: %q %v", ns, ok)
	}
}

func TestTurtleSPARQLStyleDirectives(t *testing.T) {
	doc := mustParseTurtle(t, "PREFIX ex: <http://example.org/>\nBASE <http://example.org/base/>\nex:s ex:p <o> .\n")
	triples := doc.Graph.Triples()
	if got := triples[0].O.(IRI).Value; got != "http://example.org/base/o" {
		t.Fatalf("unexpected object: %s", got)
	}
	if doc.Base != "http://example.org/base/" {
		t.Fatalf("unexpected base: %s", doc.Base)
	}
}

func TestTurtleBaseIRI(t *testing.T) {
	doc := mustParseTurtle(t, "@base <http://example.org/> .\n<rel> <http://example.org/p> <http://example.org/o> .\n")
	if iri, ok := doc.Graph.Triples()[0].S.(IRI); !ok || iri.Value != "http://example.org/rel" {
		t.Fatalf("unexpected base IRI resolution: %#v", doc.Graph.Triples()[0].S)
	}
}

func TestTurtleOptionBaseIRI(t *testing.T) {
	doc := mustParseTurtle(t, "<rel> <http://example.org/p> <o> .\n", OptBaseIRI("http://example.org/dir/"))
	if got := doc.Graph.Triples()[0].S.(IRI).Value; got != "http://example.org/dir/rel" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

func TestTurtleRelativeIRIWithoutBase(t *testing.T) {
	doc := mustParseTurtle(t, "<> <http://example.org/p> <rel> .\n")
	triple := doc.Graph.Triples()[0]
	if got := triple.S.(IRI).Value; got != "" {
		t.Fatalf("expected empty relative IRI, got %q", got)
	}
	if got := triple.O.(IRI).Value; got != "rel" {
		t.Fatalf("expected relative IRI to stay verbatim, got %q", got)
	}
}

func TestTurtleVerbA(t *testing.T) {
	doc := mustParseTurtle(t, "<http://example.org/s> a <http://example.org/C> .\n")
	if doc.Graph.Triples()[0].P != RDFType {
		t.Fatalf("expected rdf:type, got %s", doc.Graph.Triples()[0].P)
	}
}

func TestTurtleLiterals(t *testing.T) {
	input := `@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
<http://example.org/s> <http://example.org/p> "hello"@en , "7"^^xsd:int , 1.5 , 1e3 , -3 , true , """line1
line2""" , 'single' , "esc\t\"q\"" .
`
	doc := mustParseTurtle(t, input)
	objects := doc.Graph.ObjectsOf(IRI{Value: "http://example.org/s"}, IRI{Value: "http://example.org/p"})
	want := []Literal{
		{Lexical: "hello", Lang: "en"},
		{Lexical: "7", Datatype: IRI{Value: XSDNamespace + "int"}},
		{Lexical: "1.5", Datatype: XSDDecimal},
		{Lexical: "1e3", Datatype: XSDDouble},
		{Lexical: "-3", Datatype: XSDInteger},
		{Lexical: "true", Datatype: XSDBoolean},
		{Lexical: "line1\nline2"},
		{Lexical: "single"},
		{Lexical: "esc\t\"q\""},
	}
	if len(objects) != len(want) {
		t.Fatalf("expected %d objects, got %d: %v", len(want), len(objects), objects)
	}
	for i, w := range want {
		if objects[i] != w {
			t.Fatalf("object %d: expected %#v, got %#v", i, w, objects[i])
		}
	}
}

func TestTurtleNumberBeforeDot(t *testing.T) {
	doc := mustParseTurtle(t, "<http://example.org/s> <http://example.org/p> 3.")
	lit := doc.Graph.Triples()[0].O.(Literal)
	if lit.Lexical != "3" || lit.Datatype != XSDInteger {
		t.Fatalf("unexpected literal: %#v", lit)
	}
}

func TestTurtleBlankNodeMetadata(t *testing.T) {
	input := "_:x <http://example.org/p> _:y .\n_:y <http://example.org/p> [] .\n"
	doc := mustParseTurtle(t, input)
	meta := doc.BlankNodes
	if meta.Len() != 3 {
		t.Fatalf("expected 3 registered blank nodes, got %d", meta.Len())
	}
	labels := meta.Labels()
	if strings.Join(labels, ",") != "x,y" {
		t.Fatalf("unexpected labels: %v", labels)
	}
	triples := doc.Graph.Triples()
	x := triples[0].S.(BlankNode)
	if label, ok := meta.Label(x); !ok || label != "x" {
		t.Fatalf("unexpected label for first node: %q", label)
	}
	anon := triples[1].O.(BlankNode)
	if _, ok := meta.Label(anon); ok {
		t.Fatal("anonymous node must not carry a label")
	}
	if order, ok := meta.Order(anon); !ok || order != 2 {
		t.Fatalf("expected anonymous node order 2, got %d", order)
	}
	if x.ID == "x" {
		t.Fatal("blank node identity must not reuse the source label")
	}
}

func TestTurtleCollections(t *testing.T) {
	doc := mustParseTurtle(t, "<http://example.org/s> <http://example.org/p> ( 1 2 ) .\n")
	if doc.Graph.Len() != 5 {
		t.Fatalf("expected 5 triples, got %d", doc.Graph.Len())
	}
	if len(doc.Graph.Match(nil, RDFRest, RDFNil)) != 1 {
		t.Fatal("expected the list to end in rdf:nil")
	}

	empty := mustParseTurtle(t, "<http://example.org/s> <http://example.org/p> () .\n")
	if o := empty.Graph.Triples()[0].O; o != RDFNil {
		t.Fatalf("expected rdf:nil for empty collection, got %v", o)
	}
}

func TestTurtleBlankNodePropertyListSubject(t *testing.T) {
	doc := mustParseTurtle(t, "[ <http://example.org/p> <http://example.org/o> ] .\n[] <http://example.org/q> 1 .\n")
	if doc.Graph.Len() != 2 {
		t.Fatalf("expected 2 triples, got %d", doc.Graph.Len())
	}
	if _, err := ParseTurtleString("[] .\n"); err == nil {
		t.Fatal("expected error for empty blank node statement")
	}
}

func TestTurtleByteOrderMark(t *testing.T) {
	doc := mustParseTurtle(t, "\uFEFF<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n")
	if doc.Graph.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", doc.Graph.Len())
	}
}

func TestTurtleUnknownPrefix(t *testing.T) {
	input := "@prefix ex: <http://example.org/> .\nfoo:s ex:p ex:o .\n"
	_, err := ParseTurtleString(input)
	if err == nil {
		t.Fatal("expected error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if parseErr.Line != 2 || parseErr.Format != "turtle" {
		t.Fatalf("unexpected position: %+v", parseErr)
	}
	if Code(err) != ErrCodeParseError {
		t.Fatalf("unexpected code: %s", Code(err))
	}
}

func TestTurtleInvalidPredicate(t *testing.T) {
	if _, err := ParseTurtleString("_:b1 \"literal\" <http://example.org/o> .\n"); err == nil {
		t.Fatal("expected predicate error")
	}
	if _, err := ParseTurtleString("<http://example.org/s> _:p <http://example.org/o> .\n"); err == nil {
		t.Fatal("expected error for blank node predicate")
	}
}

func TestTurtleMissingDot(t *testing.T) {
	if _, err := ParseTurtleString("<http://example.org/s> <http://example.org/p> <http://example.org/o>"); err == nil {
		t.Fatal("expected error for missing dot")
	}
}

func TestTurtleDepthLimit(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> [ <http://example.org/p> [ <http://example.org/p> [ <http://example.org/p> 1 ] ] ] .\n"
	_, err := ParseTurtleString(input, OptMaxDepth(2))
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected depth error, got %v", err)
	}
	if Code(err) != ErrCodeDepthExceeded {
		t.Fatalf("unexpected code: %s", Code(err))
	}
	if _, err := ParseTurtleString(input); err != nil {
		t.Fatalf("default depth should accept input: %v", err)
	}
}

func TestTurtleStrictIRIValidation(t *testing.T) {
	input := "<//host/x> <http://example.org/p> <http://example.org/o> .\n"
	if _, err := ParseTurtleString(input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseTurtleString(input, OptStrictIRIValidation()); err == nil {
		t.Fatal("expected strict validation error")
	}
}

func TestTurtleContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseTurtle(ctx, strings.NewReader("<http://example.org/s> <http://example.org/p> 1 .\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if Code(err) != ErrCodeContextCanceled {
		t.Fatalf("unexpected code: %s", Code(err))
	}
}
