package domain

// GridUnit is the layout quantum for decompiled graphs. Every coordinate
// the decompiler emits is a multiple of it, so re-imported flows land on
// the editor's grid intersections.
const GridUnit = 20

// Placement is a node plus its canvas position. Wiring is carried by the
// node's input ports, exactly as in a live flow.
type Placement struct {
	Node Node `json:"node" yaml:"node"`
	X    int  `json:"x" yaml:"x"`
	Y    int  `json:"y" yaml:"y"`
}

// Connection is one edge of a laid-out graph, in the from→to direction
// editors draw it.
type Connection struct {
	FromNode string `json:"from_node" yaml:"from_node"`
	FromPort int    `json:"from_port" yaml:"from_port"`
	ToNode   string `json:"to_node" yaml:"to_node"`
	ToPort   int    `json:"to_port" yaml:"to_port"`
}

// GraphDescription is the decompiler's output: nodes with deterministic
// grid-aligned coordinates, ready to hand back to the editor.
type GraphDescription struct {
	Nodes []Placement `json:"nodes" yaml:"nodes"`
}

// Graph converts the description back into a compilable node map.
func (g GraphDescription) Graph() map[string]Node {
	nodes := make(map[string]Node, len(g.Nodes))
	for _, p := range g.Nodes {
		nodes[p.Node.ID] = p.Node
	}
	return nodes
}

// Connections derives the edge list from the nodes' input ports.
func (g GraphDescription) Connections() []Connection {
	var conns []Connection
	for _, p := range g.Nodes {
		for i, in := range p.Node.Inputs {
			if in.Upstream == nil {
				continue
			}
			conns = append(conns, Connection{
				FromNode: in.Upstream.NodeID,
				FromPort: in.Upstream.Port,
				ToNode:   p.Node.ID,
				ToPort:   i,
			})
		}
	}
	return conns
}
