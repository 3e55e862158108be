// Package dsl provides a fluent builder for flow graphs, so hosts and
// tests can construct compilable flows without hand-assembling node maps.
package dsl

import (
	"github.com/autograph-dev/autograph/pkg/domain"
)

// Builder accumulates nodes and wiring for one flow.
type Builder struct {
	name  string
	nodes map[string]*NodeBuilder
}

// New creates a builder for a named flow.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Trigger adds a trigger node whose config carries the catalog type string.
func (b *Builder) Trigger(id, kind string, config map[string]any) *NodeBuilder {
	return b.add(id, domain.NodeTypeTrigger, "", kind, config)
}

// Condition adds a condition node.
func (b *Builder) Condition(id, kind string, config map[string]any) *NodeBuilder {
	return b.add(id, domain.NodeTypeCondition, "", kind, config)
}

// Gate adds a logic gate of the given kind.
func (b *Builder) Gate(id string, kind domain.GateKind) *NodeBuilder {
	return b.add(id, domain.NodeTypeLogicGate, kind, "", nil)
}

// Delay adds a delay gate holding the given number of seconds.
func (b *Builder) Delay(id string, seconds int) *NodeBuilder {
	return b.add(id, domain.NodeTypeLogicGate, domain.GateDelay, "", map[string]any{"seconds": seconds})
}

// Action adds an action node.
func (b *Builder) Action(id, kind string, config map[string]any) *NodeBuilder {
	return b.add(id, domain.NodeTypeAction, "", kind, config)
}

// Node adds a node of an arbitrary type, for graphs that exercise the
// compiler's permissive fallbacks.
func (b *Builder) Node(id string, typ domain.NodeType) *NodeBuilder {
	return b.add(id, typ, "", "", nil)
}

func (b *Builder) add(id string, typ domain.NodeType, gate domain.GateKind, kind string, config map[string]any) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	cfg := make(map[string]any, len(config)+1)
	for k, v := range config {
		cfg[k] = v
	}
	if kind != "" {
		cfg["type"] = kind
	}
	if len(cfg) == 0 {
		cfg = nil
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:      id,
			Type:    typ,
			Gate:    gate,
			Config:  cfg,
			Outputs: []domain.Port{{Name: "out"}},
		},
	}
	b.nodes[id] = nb
	return nb
}

// Build assembles the flow snapshot. The builder stays usable afterwards;
// each call produces an independent node map.
func (b *Builder) Build() domain.Flow {
	nodes := make(map[string]domain.Node, len(b.nodes))
	for id, nb := range b.nodes {
		nodes[id] = nb.node
	}
	return domain.Flow{Name: b.name, Nodes: nodes}
}
