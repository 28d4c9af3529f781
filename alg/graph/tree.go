package graph

import (
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"github.com/pkg/errors"
)

// InRange reports whether every head points at a node of the sentence.
func InRange(heads []int) bool {
	for i := 1; i < len(heads); i++ {
		if heads[i] < 0 || heads[i] >= len(heads) || heads[i] == i {
			return false
		}
	}
	return true
}

// IsTree reports whether heads describe a tree rooted at node 0: every
// non-root node reaches the root by following heads. With every node but
// the root having exactly one head, that holds when the head edges are
// acyclic.
func IsTree(heads []int) bool {
	if !InRange(heads) {
		return false
	}
	g, err := Directed(FromHeads(heads))
	if err != nil {
		return false
	}
	cyclic, err := dfs.HasCycle(g)
	return err == nil && !cyclic
}

// Directed copies g into a directed lvlath graph with vertices named by
// their index.
func Directed(g DirectedGraph) (*core.Graph, error) {
	directed, err := core.NewGraph(core.WithDirected(true))
	if err != nil {
		return nil, err
	}
	for _, v := range g.GetVertices() {
		if err := directed.AddVertex(strconv.Itoa(v)); err != nil {
			return nil, errors.Wrapf(err, "vertex %d", v)
		}
	}
	for _, i := range g.GetEdges() {
		e := g.GetDirectedEdge(i)
		if _, err := directed.AddEdge(strconv.Itoa(e.From()), strconv.Itoa(e.To()), 0); err != nil {
			return nil, errors.Wrapf(err, "edge %d -> %d", e.From(), e.To())
		}
	}
	return directed, nil
}

// Crosses reports whether the spans of two edges cross when drawn above the
// sentence.
func Crosses(e1, e2 DirectedEdge) bool {
	min1, max1 := span(e1)
	min2, max2 := span(e2)
	return (min1 < min2 && min2 < max1 && max1 < max2) ||
		(min2 < min1 && min1 < max2 && max2 < max1)
}

func span(e DirectedEdge) (int, int) {
	if e.From() < e.To() {
		return e.From(), e.To()
	}
	return e.To(), e.From()
}

// IsProjective reports whether heads form a tree none of whose edges cross.
func IsProjective(heads []int) bool {
	if !IsTree(heads) {
		return false
	}
	g := FromHeads(heads)
	for i := 0; i < g.NumberOfEdges(); i++ {
		for j := i + 1; j < g.NumberOfEdges(); j++ {
			if Crosses(g.GetDirectedEdge(i), g.GetDirectedEdge(j)) {
				return false
			}
		}
	}
	return true
}
