package dsl

import (
	"fmt"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// NodeBuilder configures a single node fluently.
type NodeBuilder struct {
	node domain.Node
}

// Title sets the display title used in generated rule names.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.node.Title = title
	return n
}

// From wires the next free input slot to the upstream node's first output.
// Gates grow an indexed slot per call; single-input nodes get "in".
func (n *NodeBuilder) From(upstreamID string) *NodeBuilder {
	return n.FromPort(upstreamID, 0)
}

// FromPort wires the next free input slot to a specific upstream output.
func (n *NodeBuilder) FromPort(upstreamID string, port int) *NodeBuilder {
	name := "in"
	if n.node.Type == domain.NodeTypeLogicGate {
		name = fmt.Sprintf("in_%d", len(n.node.Inputs))
	}
	n.node.Inputs = append(n.node.Inputs, domain.Port{
		Name:     name,
		Upstream: &domain.PortRef{NodeID: upstreamID, Port: port},
	})
	return n
}

// OpenInput adds an unwired input slot, mimicking an editor slot the user
// has not connected yet.
func (n *NodeBuilder) OpenInput() *NodeBuilder {
	n.node.Inputs = append(n.node.Inputs, domain.Port{Name: "in"})
	return n
}

// Set stores one config value on the node.
func (n *NodeBuilder) Set(key string, value any) *NodeBuilder {
	if n.node.Config == nil {
		n.node.Config = make(map[string]any)
	}
	n.node.Config[key] = value
	return n
}
