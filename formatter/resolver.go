package formatter

import (
	"sort"

	"github.com/geoknoesis/turtlefmt/rdf"
)

// resolveBlankNodes decides which blank nodes cannot be written inline and
// labels them. A node is labeled when it is the object of more than one
// triple or when it lies on a cycle of unlabeled blank nodes. Generated
// sequence numbers are recorded in cmp.seq.
func resolveBlankNodes(g *rdf.Graph, meta *rdf.BlankNodeMetadata, style *Style, cmp *comparators) (map[rdf.BlankNode]string, error) {
	named := map[rdf.BlankNode]bool{}
	var order []rdf.BlankNode
	for _, b := range resolverCandidates(g, meta, cmp) {
		if named[b] {
			continue
		}
		if g.CountObjectRefs(b) > 1 || hasBlankNodeCycle(g, b, named) {
			named[b] = true
			order = append(order, b)
		}
	}

	labels := make(map[rdf.BlankNode]string, len(order))
	assigned := map[string]bool{}
	sourceLabels := len(meta.Labels())
	seq := 0
	for _, b := range order {
		if label, ok := meta.Label(b); ok {
			labels[b] = label
			assigned[label] = true
			continue
		}
		limit := len(assigned) + sourceLabels + 1
		found := false
		for attempt := 0; attempt < limit && !found; attempt++ {
			label := style.BlankNodeIDs(b, seq)
			n := seq
			seq++
			if !rdf.IsBlankNodeLabel(label) {
				return nil, styleErrorf("BlankNodeIDs", "generated label %q is not a valid blank node label", label)
			}
			if assigned[label] || meta.HasLabel(label) {
				continue
			}
			labels[b] = label
			assigned[label] = true
			cmp.seq[b] = n
			found = true
		}
		if !found {
			return nil, styleErrorf("BlankNodeIDs", "no unused label after %d attempts", limit)
		}
	}
	return labels, nil
}

// resolverCandidates returns the nodes labeled in the source followed by all
// other blank nodes used as objects, each group in canonical order.
func resolverCandidates(g *rdf.Graph, meta *rdf.BlankNodeMetadata, cmp *comparators) []rdf.BlankNode {
	labeled := meta.LabeledNodes(g)
	isLabeled := make(map[rdf.BlankNode]bool, len(labeled))
	for _, b := range labeled {
		isLabeled[b] = true
	}
	var others []rdf.BlankNode
	for _, o := range g.Objects() {
		if b, ok := o.(rdf.BlankNode); ok && !isLabeled[b] {
			others = append(others, b)
		}
	}
	byCanonical := func(nodes []rdf.BlankNode) {
		sort.SliceStable(nodes, func(i, j int) bool { return cmp.compareBlankNodes(nodes[i], nodes[j]) < 0 })
	}
	byCanonical(labeled)
	byCanonical(others)
	return append(labeled, others...)
}

// hasBlankNodeCycle reports whether start can reach itself through blank
// node objects that are not named yet. Named nodes cut the search.
func hasBlankNodeCycle(g *rdf.Graph, start rdf.BlankNode, named map[rdf.BlankNode]bool) bool {
	visited := map[rdf.BlankNode]bool{}
	stack := []rdf.BlankNode{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		for _, t := range g.Match(n, rdf.IRI{}, nil) {
			o, ok := t.O.(rdf.BlankNode)
			if !ok || named[o] {
				continue
			}
			if o == start {
				return true
			}
			stack = append(stack, o)
		}
	}
	return false
}
