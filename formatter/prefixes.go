package formatter

import (
	"sort"
	"strings"

	"github.com/geoknoesis/turtlefmt/rdf"
)

type prefixEntry struct {
	prefix    string
	namespace string
}

// prefixTable is the prefix mapping of one render: the graph's declared
// prefixes plus known prefixes whose name the graph does not declare.
type prefixTable struct {
	entries   []prefixEntry
	emptyBase string
	short     map[string]string
}

func newPrefixTable(g *rdf.Graph, style *Style) *prefixTable {
	declared := g.Prefixes()
	for _, known := range style.KnownPrefixes {
		if _, ok := declared[known.Prefix]; !ok {
			declared[known.Prefix] = known.IRI
		}
	}
	index := make(map[string]int, len(style.PrefixOrder))
	for i, p := range style.PrefixOrder {
		if _, dup := index[p]; !dup {
			index[p] = i
		}
	}
	t := &prefixTable{emptyBase: style.EmptyBase, short: map[string]string{}}
	for p, ns := range declared {
		t.entries = append(t.entries, prefixEntry{prefix: p, namespace: ns})
	}
	sort.Slice(t.entries, func(i, j int) bool {
		return comparePrefixNames(index, t.entries[i].prefix, t.entries[j].prefix) < 0
	})
	return t
}

// comparePrefixNames orders listed prefixes by their position, then all
// others by name.
func comparePrefixNames(index map[string]int, a, b string) int {
	ia, aok := index[a]
	ib, bok := index[b]
	switch {
	case aok && bok && ia != ib:
		return ia - ib
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	}
	return strings.Compare(a, b)
}

// used returns the entries in output order, dropping those no IRI of the
// graph starts with unless keepUnused is set.
func (t *prefixTable) used(g *rdf.Graph, keepUnused bool) []prefixEntry {
	if keepUnused {
		return t.entries
	}
	iris := usedIRIs(g)
	var out []prefixEntry
	for _, e := range t.entries {
		for _, iri := range iris {
			if strings.HasPrefix(iri, e.namespace) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// usedIRIs lists the IRIs in subject, predicate or object position and the
// datatypes of literals.
func usedIRIs(g *rdf.Graph) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(iri string) {
		if _, ok := seen[iri]; ok {
			return
		}
		seen[iri] = struct{}{}
		out = append(out, iri)
	}
	for _, t := range g.Triples() {
		if s, ok := t.S.(rdf.IRI); ok {
			add(s.Value)
		}
		add(t.P.Value)
		switch o := t.O.(type) {
		case rdf.IRI:
			add(o.Value)
		case rdf.Literal:
			add(o.DatatypeIRI().Value)
		}
	}
	return out
}

// shortForm returns the shortest prefixed name for iri, or the IRI in angle
// brackets when no prefix yields a legal local name. The empty base is
// removed first.
func (t *prefixTable) shortForm(iri string) string {
	if s, ok := t.short[iri]; ok {
		return s
	}
	s := t.computeShortForm(iri)
	t.short[iri] = s
	return s
}

func (t *prefixTable) computeShortForm(iri string) string {
	stripped := iri
	if t.emptyBase != "" {
		stripped = strings.TrimPrefix(iri, t.emptyBase)
	}
	best := ""
	for _, e := range t.entries {
		if !strings.HasPrefix(stripped, e.namespace) {
			continue
		}
		local := stripped[len(e.namespace):]
		if !rdf.IsPNLocal(local) {
			continue
		}
		candidate := e.prefix + ":" + local
		if best == "" || len(candidate) < len(best) || (len(candidate) == len(best) && candidate < best) {
			best = candidate
		}
	}
	if best != "" && rdf.ValidateIRI(stripped) == nil {
		return best
	}
	return "<" + stripped + ">"
}
