package graph

type BasicVertex int

// BasicDirectedEdge holds an edge id, its source and its target.
type BasicDirectedEdge [3]int

type BasicGraph struct {
	Vertices []BasicVertex
	Edges    []BasicDirectedEdge
}

var _ Vertex = *new(BasicVertex)
var _ DirectedEdge = BasicDirectedEdge{}
var _ DirectedGraph = &BasicGraph{}

func (b BasicVertex) ID() int {
	return int(b)
}

func (e BasicDirectedEdge) ID() int {
	return e[0]
}

func (e BasicDirectedEdge) From() int {
	return e[1]
}

func (e BasicDirectedEdge) To() int {
	return e[2]
}

func (e BasicDirectedEdge) Vertices() []int {
	return []int{e[1], e[2]}
}

func (g *BasicGraph) GetVertices() []int {
	vertices := make([]int, len(g.Vertices))
	for i := range g.Vertices {
		vertices[i] = i
	}
	return vertices
}

func (g *BasicGraph) GetEdges() []int {
	edges := make([]int, len(g.Edges))
	for i := range g.Edges {
		edges[i] = i
	}
	return edges
}

func (g *BasicGraph) GetVertex(i int) Vertex {
	return g.Vertices[i]
}

func (g *BasicGraph) GetEdge(i int) Edge {
	return Edge(g.Edges[i])
}

func (g *BasicGraph) NumberOfVertices() int {
	return len(g.Vertices)
}

func (g *BasicGraph) NumberOfEdges() int {
	return len(g.Edges)
}

func (g *BasicGraph) GetDirectedEdge(i int) DirectedEdge {
	return g.Edges[i]
}

// FromHeads builds the graph of a head vector: one vertex per node and an
// edge head[i] -> i for every node but the root.
func FromHeads(heads []int) *BasicGraph {
	g := &BasicGraph{
		Vertices: make([]BasicVertex, len(heads)),
		Edges:    make([]BasicDirectedEdge, 0, len(heads)),
	}
	for i := range heads {
		g.Vertices[i] = BasicVertex(i)
		if i > 0 {
			g.Edges = append(g.Edges, BasicDirectedEdge{i - 1, heads[i], i})
		}
	}
	return g
}
