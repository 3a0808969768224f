package rdf

import "sort"

// Isomorphic reports whether two graphs contain the same triples up to a
// bijective renaming of blank nodes.
func Isomorphic(a, b *Graph) bool {
	if a.Len() != b.Len() {
		return false
	}
	aTriples, bTriples := a.Triples(), b.Triples()
	aBlanks, bBlanks := isoBlankNodes(aTriples), isoBlankNodes(bTriples)
	if len(aBlanks) != len(bBlanks) {
		return false
	}
	target := map[Triple]struct{}{}
	for _, t := range bTriples {
		target[t] = struct{}{}
	}
	if len(aBlanks) == 0 {
		for _, t := range aTriples {
			if _, ok := target[t]; !ok {
				return false
			}
		}
		return true
	}

	// Trying high-degree nodes first prunes the search early.
	aDegree, bDegree := isoDegrees(aTriples), isoDegrees(bTriples)
	sort.SliceStable(aBlanks, func(i, j int) bool { return aDegree[aBlanks[i]] > aDegree[aBlanks[j]] })

	mapping := map[BlankNode]BlankNode{}
	used := map[BlankNode]bool{}
	var search func(idx int) bool
	search = func(idx int) bool {
		if idx == len(aBlanks) {
			return isoAllMapped(aTriples, mapping, target)
		}
		source := aBlanks[idx]
		for _, candidate := range bBlanks {
			if used[candidate] || aDegree[source] != bDegree[candidate] {
				continue
			}
			mapping[source] = candidate
			if isoConsistent(aTriples, mapping, target) {
				used[candidate] = true
				if search(idx + 1) {
					return true
				}
				used[candidate] = false
			}
			delete(mapping, source)
		}
		return false
	}
	return search(0)
}

func isoBlankNodes(triples []Triple) []BlankNode {
	seen := map[BlankNode]struct{}{}
	var out []BlankNode
	add := func(t Term) {
		if b, ok := t.(BlankNode); ok {
			if _, dup := seen[b]; !dup {
				seen[b] = struct{}{}
				out = append(out, b)
			}
		}
	}
	for _, t := range triples {
		add(t.S)
		add(t.O)
	}
	return out
}

func isoDegrees(triples []Triple) map[BlankNode]int {
	degrees := map[BlankNode]int{}
	for _, t := range triples {
		if b, ok := t.S.(BlankNode); ok {
			degrees[b]++
		}
		if b, ok := t.O.(BlankNode); ok {
			degrees[b]++
		}
	}
	return degrees
}

func isoMap(t Term, mapping map[BlankNode]BlankNode) (Term, bool) {
	b, ok := t.(BlankNode)
	if !ok {
		return t, true
	}
	mapped, ok := mapping[b]
	return mapped, ok
}

// isoConsistent checks every triple whose blank nodes are all mapped already.
func isoConsistent(triples []Triple, mapping map[BlankNode]BlankNode, target map[Triple]struct{}) bool {
	for _, t := range triples {
		s, sok := isoMap(t.S, mapping)
		o, ook := isoMap(t.O, mapping)
		if !sok || !ook {
			continue
		}
		if _, ok := target[Triple{S: s, P: t.P, O: o}]; !ok {
			return false
		}
	}
	return true
}

func isoAllMapped(triples []Triple, mapping map[BlankNode]BlankNode, target map[Triple]struct{}) bool {
	for _, t := range triples {
		s, sok := isoMap(t.S, mapping)
		o, ook := isoMap(t.O, mapping)
		if !sok || !ook {
			return false
		}
		if _, ok := target[Triple{S: s, P: t.P, O: o}]; !ok {
			return false
		}
	}
	return true
}
