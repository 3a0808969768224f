package rdf

import "testing"

func TestBlankNodeMetadataNilIsEmpty(t *testing.T) {
	var meta *BlankNodeMetadata
	if _, ok := meta.Order(BlankNode{ID: "b1"}); ok {
		t.Fatal("nil metadata must not know an order")
	}
	if _, ok := meta.Label(BlankNode{ID: "b1"}); ok {
		t.Fatal("nil metadata must not know a label")
	}
	if meta.HasLabel("x") || meta.Labels() != nil || meta.Len() != 0 {
		t.Fatal("nil metadata must be empty")
	}
	if meta.LabeledNodes(NewGraph()) != nil {
		t.Fatal("nil metadata must have no labeled nodes")
	}
}

func TestBlankNodeMetadataKeepsFirstAppearance(t *testing.T) {
	meta := NewBlankNodeMetadata()
	a, b := BlankNode{ID: "b1"}, BlankNode{ID: "b2"}
	meta.RegisterLabeled(a, "zed")
	meta.Register(b)
	meta.Register(a)
	meta.RegisterLabeled(a, "other")

	if order, _ := meta.Order(a); order != 0 {
		t.Fatalf("expected order 0, got %d", order)
	}
	if order, _ := meta.Order(b); order != 1 {
		t.Fatalf("expected order 1, got %d", order)
	}
	if label, _ := meta.Label(a); label != "zed" {
		t.Fatalf("expected first label to win, got %q", label)
	}
	if !meta.HasLabel("other") {
		t.Fatal("every label seen in the source must be recorded")
	}
	labels := meta.Labels()
	if len(labels) != 2 || labels[0] != "other" || labels[1] != "zed" {
		t.Fatalf("unexpected labels: %v", labels)
	}
}

func TestBlankNodeMetadataLabeledNodes(t *testing.T) {
	meta := NewBlankNodeMetadata()
	used, unused := BlankNode{ID: "b2"}, BlankNode{ID: "b1"}
	meta.RegisterLabeled(used, "x")
	meta.RegisterLabeled(unused, "y")
	g := NewGraph()
	_ = g.Add(Triple{S: exS, P: exP, O: used})
	nodes := meta.LabeledNodes(g)
	if len(nodes) != 1 || nodes[0] != used {
		t.Fatalf("unexpected labeled nodes: %v", nodes)
	}
}
