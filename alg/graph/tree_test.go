package graph

import "testing"

func TestIsTree(t *testing.T) {
	cases := []struct {
		heads []int
		tree  bool
	}{
		{[]int{0}, true},
		{[]int{0, 0}, true},
		{[]int{0, 2, 0}, true},
		{[]int{0, 2, 1}, false},
		{[]int{0, 1}, false},
		{[]int{0, 3, 0}, false},
		{[]int{0, 0, 3, 1}, true},
		{[]int{0, 2, 3, 1}, false},
		{[]int{0, 0, 3, 2}, false},
		{[]int{0, 0, 1, 2, 3, 4}, true},
	}
	for _, c := range cases {
		if got := IsTree(c.heads); got != c.tree {
			t.Errorf("IsTree(%v) = %v, expected %v", c.heads, got, c.tree)
		}
	}
}

func TestIsProjective(t *testing.T) {
	// 1 -> 3 crosses 2 -> 4
	if IsProjective([]int{0, 0, 0, 1, 2}) {
		t.Error("Expected crossing edges to be non-projective")
	}
	if !IsProjective([]int{0, 2, 0, 2, 3}) {
		t.Error("Expected nested edges to be projective")
	}
	// root attachments cross with inner edges
	if IsProjective([]int{0, 3, 0, 0}) {
		t.Error("Expected 0->2 to cross 3->1")
	}
}

func TestFromHeads(t *testing.T) {
	g := FromHeads([]int{0, 2, 0})
	if g.NumberOfVertices() != 3 {
		t.Errorf("Expected 3 vertices, got %d", g.NumberOfVertices())
	}
	if g.NumberOfEdges() != 2 {
		t.Fatalf("Expected 2 edges, got %d", g.NumberOfEdges())
	}
	e := g.GetDirectedEdge(0)
	if e.From() != 2 || e.To() != 1 {
		t.Errorf("Expected edge 2->1, got %d->%d", e.From(), e.To())
	}
}

func TestDirected(t *testing.T) {
	g, err := Directed(FromHeads([]int{0, 2, 0, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if g.VertexCount() != 4 || g.EdgeCount() != 3 {
		t.Errorf("Expected 4 vertices and 3 edges, got %d and %d", g.VertexCount(), g.EdgeCount())
	}
	if !g.HasEdge("2", "1") || !g.HasEdge("0", "2") || !g.HasEdge("2", "3") {
		t.Error("Expected head to modifier edges 2->1, 0->2, 2->3")
	}
	if g.HasEdge("1", "2") {
		t.Error("Expected edges to be directed")
	}
}
