package formatter

import (
	"strings"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// comparators holds the total orders of one render. All methods return a
// negative number, zero or a positive number like strings.Compare.
type comparators struct {
	prefixes *prefixTable
	meta     *rdf.BlankNodeMetadata
	// seq is the generated sequence number of each labeled blank node.
	seq map[rdf.BlankNode]int

	predicateIndex map[rdf.IRI]int
	objectIndex    map[rdf.Term]int
}

func newComparators(style *Style, prefixes *prefixTable, meta *rdf.BlankNodeMetadata) *comparators {
	c := &comparators{
		prefixes:       prefixes,
		meta:           meta,
		seq:            map[rdf.BlankNode]int{},
		predicateIndex: map[rdf.IRI]int{},
		objectIndex:    map[rdf.Term]int{},
	}
	for i, p := range style.PredicateOrder {
		if _, dup := c.predicateIndex[p]; !dup {
			c.predicateIndex[p] = i
		}
	}
	for i, o := range style.ObjectOrder {
		if _, dup := c.objectIndex[o]; !dup {
			c.objectIndex[o] = i
		}
	}
	return c
}

func kindRank(t rdf.Term) int {
	switch t.(type) {
	case rdf.IRI:
		return 0
	case rdf.BlankNode:
		return 1
	case rdf.Literal:
		return 2
	default:
		return 3
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareNodes is the canonical node order: IRIs, then blank nodes, then
// literals.
func (c *comparators) compareNodes(a, b rdf.Term) int {
	if ra, rb := kindRank(a), kindRank(b); ra != rb {
		return ra - rb
	}
	switch x := a.(type) {
	case rdf.IRI:
		return c.compareIRIs(x, b.(rdf.IRI))
	case rdf.BlankNode:
		return c.compareBlankNodes(x, b.(rdf.BlankNode))
	case rdf.Literal:
		y := b.(rdf.Literal)
		if r := strings.Compare(x.Lexical, y.Lexical); r != 0 {
			return r
		}
		if r := strings.Compare(x.Lang, y.Lang); r != 0 {
			return r
		}
		return strings.Compare(x.DatatypeIRI().Value, y.DatatypeIRI().Value)
	}
	return 0
}

func (c *comparators) compareIRIs(a, b rdf.IRI) int {
	if r := strings.Compare(c.prefixes.shortForm(a.Value), c.prefixes.shortForm(b.Value)); r != 0 {
		return r
	}
	return strings.Compare(a.Value, b.Value)
}

// compareBlankNodes orders by parse order, then generated sequence number,
// then identifier. A node that has a key sorts before one that has not.
func (c *comparators) compareBlankNodes(a, b rdf.BlankNode) int {
	oa, aok := c.meta.Order(a)
	ob, bok := c.meta.Order(b)
	switch {
	case aok && bok && oa != ob:
		return compareInts(oa, ob)
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	}
	sa, aok := c.seq[a]
	sb, bok := c.seq[b]
	switch {
	case aok && bok && sa != sb:
		return compareInts(int64(sa), int64(sb))
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}

func (c *comparators) comparePredicates(a, b rdf.IRI) int {
	ia, aok := c.predicateIndex[a]
	ib, bok := c.predicateIndex[b]
	switch {
	case aok && bok && ia != ib:
		return ia - ib
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	}
	return c.compareIRIs(a, b)
}

func (c *comparators) compareObjects(a, b rdf.Term) int {
	ia, aok := c.objectIndex[a]
	ib, bok := c.objectIndex[b]
	switch {
	case aok && bok && ia != ib:
		return ia - ib
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	}
	return c.compareNodes(a, b)
}
