package rdf

import "fmt"

// Graph is a set of triples with a declared prefix table.
//
// Triples keep their insertion order for iteration, but no consumer may rely
// on it for output order. A Graph is not safe for concurrent mutation; once
// built it can be read from many goroutines.
type Graph struct {
	triples   []Triple
	seen      map[Triple]struct{}
	bySubject map[Term][]int
	byObject  map[Term][]int
	prefixes  map[string]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen:      map[Triple]struct{}{},
		bySubject: map[Term][]int{},
		byObject:  map[Term][]int{},
		prefixes:  map[string]string{},
	}
}

// Add inserts triples, ignoring duplicates. Literals are stored in their
// canonical form, so "a" and "a"^^xsd:string are the same object.
func (g *Graph) Add(triples ...Triple) error {
	for _, t := range triples {
		if err := validateTriple(t); err != nil {
			return err
		}
		t.O = canonicalTerm(t.O)
		if _, ok := g.seen[t]; ok {
			continue
		}
		g.seen[t] = struct{}{}
		idx := len(g.triples)
		g.triples = append(g.triples, t)
		g.bySubject[t.S] = append(g.bySubject[t.S], idx)
		g.byObject[t.O] = append(g.byObject[t.O], idx)
	}
	return nil
}

// canonicalTerm drops datatypes implied by the literal form: xsd:string for
// plain literals and rdf:langString for language tagged ones.
func canonicalTerm(t Term) Term {
	l, ok := t.(Literal)
	if !ok {
		return t
	}
	if (l.Lang == "" && l.Datatype == XSDString) || (l.Lang != "" && l.Datatype == RDFLangString) {
		l.Datatype = IRI{}
	}
	return l
}

func validateTriple(t Triple) error {
	if t.S == nil || t.O == nil || t.P.Value == "" {
		return fmt.Errorf("%w: missing statement fields", ErrInvalidTriple)
	}
	if !IsResource(t.S) {
		return fmt.Errorf("%w: subject must be an IRI or blank node: %s", ErrInvalidTriple, t.S)
	}
	return nil
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns a copy of all triples.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Match returns the triples matching the pattern. A nil subject or object and
// a zero predicate act as wildcards.
func (g *Graph) Match(s Term, p IRI, o Term) []Triple {
	if o != nil {
		o = canonicalTerm(o)
	}
	var candidates []int
	switch {
	case s != nil:
		candidates = g.bySubject[s]
	case o != nil:
		candidates = g.byObject[o]
	default:
		out := make([]Triple, 0, len(g.triples))
		for _, t := range g.triples {
			if p.Value == "" || t.P == p {
				out = append(out, t)
			}
		}
		return out
	}
	var out []Triple
	for _, idx := range candidates {
		t := g.triples[idx]
		if (s == nil || t.S == s) && (p.Value == "" || t.P == p) && (o == nil || t.O == o) {
			out = append(out, t)
		}
	}
	return out
}

// Contains reports whether at least one triple matches the pattern.
func (g *Graph) Contains(s Term, p IRI, o Term) bool {
	if s != nil && p.Value != "" && o != nil {
		_, ok := g.seen[Triple{S: s, P: p, O: canonicalTerm(o)}]
		return ok
	}
	return len(g.Match(s, p, o)) > 0
}

// HasSubject reports whether the term has outgoing triples.
func (g *Graph) HasSubject(s Term) bool { return len(g.bySubject[s]) > 0 }

// CountObjectRefs returns how many triples use the term as their object.
func (g *Graph) CountObjectRefs(o Term) int { return len(g.byObject[canonicalTerm(o)]) }

// Subjects returns the distinct subjects in first-appearance order.
func (g *Graph) Subjects() []Term {
	return g.distinct(func(t Triple) Term { return t.S })
}

// Objects returns the distinct objects in first-appearance order.
func (g *Graph) Objects() []Term {
	return g.distinct(func(t Triple) Term { return t.O })
}

func (g *Graph) distinct(pick func(Triple) Term) []Term {
	seen := map[Term]struct{}{}
	var out []Term
	for _, t := range g.triples {
		term := pick(t)
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// Predicates returns the distinct predicates of a subject.
func (g *Graph) Predicates(s Term) []IRI {
	seen := map[IRI]struct{}{}
	var out []IRI
	for _, idx := range g.bySubject[s] {
		p := g.triples[idx].P
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ObjectsOf returns the objects of all triples with the given subject and predicate.
func (g *Graph) ObjectsOf(s Term, p IRI) []Term {
	var out []Term
	for _, idx := range g.bySubject[s] {
		if t := g.triples[idx]; t.P == p {
			out = append(out, t.O)
		}
	}
	return out
}

// SetPrefix declares a namespace prefix.
func (g *Graph) SetPrefix(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Prefix returns the namespace declared for prefix.
func (g *Graph) Prefix(prefix string) (string, bool) {
	ns, ok := g.prefixes[prefix]
	return ns, ok
}

// Prefixes returns a copy of the declared prefix table.
func (g *Graph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}
