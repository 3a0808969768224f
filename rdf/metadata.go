package rdf

import "sort"

// BlankNodeMetadata records what a parser knew about blank nodes: the order
// in which each node first appeared and the label written in the source, if
// any. A nil *BlankNodeMetadata is valid and knows nothing.
type BlankNodeMetadata struct {
	order  map[BlankNode]int64
	labels map[BlankNode]string
	all    map[string]struct{}
	next   int64
}

// NewBlankNodeMetadata returns empty metadata.
func NewBlankNodeMetadata() *BlankNodeMetadata {
	return &BlankNodeMetadata{
		order:  map[BlankNode]int64{},
		labels: map[BlankNode]string{},
		all:    map[string]struct{}{},
	}
}

// Register records the first appearance of an anonymous node.
func (m *BlankNodeMetadata) Register(b BlankNode) {
	if _, ok := m.order[b]; ok {
		return
	}
	m.order[b] = m.next
	m.next++
}

// RegisterLabeled records the first appearance of a node written as _:label.
func (m *BlankNodeMetadata) RegisterLabeled(b BlankNode, label string) {
	m.Register(b)
	if _, ok := m.labels[b]; !ok {
		m.labels[b] = label
	}
	m.all[label] = struct{}{}
}

// Order returns the zero-based first-appearance index of the node.
func (m *BlankNodeMetadata) Order(b BlankNode) (int64, bool) {
	if m == nil {
		return 0, false
	}
	idx, ok := m.order[b]
	return idx, ok
}

// Label returns the original label of the node.
func (m *BlankNodeMetadata) Label(b BlankNode) (string, bool) {
	if m == nil {
		return "", false
	}
	label, ok := m.labels[b]
	return label, ok
}

// HasLabel reports whether label appeared anywhere in the source.
func (m *BlankNodeMetadata) HasLabel(label string) bool {
	if m == nil {
		return false
	}
	_, ok := m.all[label]
	return ok
}

// Labels returns every label seen in the source, sorted.
func (m *BlankNodeMetadata) Labels() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.all))
	for label := range m.all {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// LabeledNodes returns the nodes of g that carry an original label.
func (m *BlankNodeMetadata) LabeledNodes(g *Graph) []BlankNode {
	if m == nil {
		return nil
	}
	var out []BlankNode
	for b := range m.labels {
		if g.HasSubject(b) || g.CountObjectRefs(b) > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered nodes.
func (m *BlankNodeMetadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}
