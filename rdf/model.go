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
// The set of implementations is closed: IRI, BlankNode and Literal.
type Term interface {
	Kind() TermKind
	String() string
	isTerm()
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// IsZero reports whether the IRI is empty.
func (i IRI) IsZero() bool { return i.Value == "" }

func (IRI) isTerm() {}

// BlankNode represents an RDF blank node.
//
// ID is the node identity inside one graph. It is not the label written in
// Turtle source; original labels are kept in BlankNodeMetadata.
type BlankNode struct {
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

func (BlankNode) isTerm() {}

// Literal represents an RDF literal.
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

// DatatypeIRI returns the effective datatype: rdf:langString for language
// tagged literals and xsd:string for literals without an explicit datatype.
func (l Literal) DatatypeIRI() IRI {
	switch {
	case l.Lang != "":
		return RDFLangString
	case l.Datatype.Value == "":
		return XSDString
	default:
		return l.Datatype
	}
}

func (Literal) isTerm() {}

// Triple is an RDF triple.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// String renders the triple in N-Triples like notation.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", termString(t.S), termString(t.P), termString(t.O))
}

func termString(t Term) string {
	switch v := t.(type) {
	case IRI:
		return "<" + v.Value + ">"
	case nil:
		return "<nil>"
	default:
		return v.String()
	}
}

// IsResource reports whether the term can be a subject (IRI or blank node).
func IsResource(t Term) bool {
	switch t.(type) {
	case IRI, BlankNode:
		return true
	default:
		return false
	}
}

// IsBlank reports whether the term is a blank node.
func IsBlank(t Term) bool {
	_, ok := t.(BlankNode)
	return ok
}
