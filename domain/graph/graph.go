package graph

// Graph is a node/edge collection pair returned by queries. It is a view
// built fresh per request, never persisted, and keeps insertion order.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// NewGraph creates an empty graph view
func NewGraph() *Graph {
	return &Graph{
		Nodes: []*Node{},
		Edges: []*Edge{},
	}
}

// AddNode appends a node unless one with the same id is already present
func (g *Graph) AddNode(node *Node) {
	if node == nil {
		return
	}
	for _, existing := range g.Nodes {
		if existing.ID == node.ID {
			return
		}
	}
	g.Nodes = append(g.Nodes, node)
}

// AddEdge appends an edge unless one with the same id is already present
func (g *Graph) AddEdge(edge *Edge) {
	if edge == nil {
		return
	}
	for _, existing := range g.Edges {
		if existing.ID == edge.ID {
			return
		}
	}
	g.Edges = append(g.Edges, edge)
}

// HasNode reports whether a node with the given id is in the view
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// NodeCount returns the number of nodes in the view
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges in the view
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}
