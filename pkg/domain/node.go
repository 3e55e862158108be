package domain

// NodeType discriminates the role of a node in a flow graph.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"
	NodeTypeCondition NodeType = "condition"
	NodeTypeLogicGate NodeType = "logic_gate"
	NodeTypeAction    NodeType = "action"
	// NodeTypeUnknown covers node kinds introduced by newer editors.
	// The compiler treats them as pass-through rather than failing.
	NodeTypeUnknown NodeType = "unknown"
)

// GateKind selects the behavior of a logic gate node.
type GateKind string

const (
	GateAnd   GateKind = "and"
	GateOr    GateKind = "or"
	GateNot   GateKind = "not"
	GateDelay GateKind = "delay"
)

// PortRef points at an output port on another node.
// Ports hold non-owning references; the flow's node map owns all nodes.
type PortRef struct {
	NodeID string `json:"node_id" yaml:"node_id"`
	Port   int    `json:"port" yaml:"port"`
}

// Port is a slot on a node. Input ports may be wired to an upstream node's
// output via Upstream; output ports leave it nil.
type Port struct {
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Upstream *PortRef `json:"upstream,omitempty" yaml:"upstream,omitempty"`
}

// Node is one element of a user-authored flow graph.
// Config is an opaque string-keyed map; its shape is defined by the catalog
// entry named under the "type" key and is only decoded where a specific
// field is consumed.
type Node struct {
	ID      string         `json:"id" yaml:"id"`
	Type    NodeType       `json:"type" yaml:"type"`
	Gate    GateKind       `json:"gate,omitempty" yaml:"gate,omitempty"` // set only for logic gates
	Title   string         `json:"title,omitempty" yaml:"title,omitempty"`
	Inputs  []Port         `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []Port         `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ConnectedInputs returns the input ports that are actually wired,
// preserving declaration order. Multi-input gates use this to skip
// empty slots left by the editor.
func (n Node) ConnectedInputs() []Port {
	connected := make([]Port, 0, len(n.Inputs))
	for _, p := range n.Inputs {
		if p.Upstream != nil {
			connected = append(connected, p)
		}
	}
	return connected
}

// FirstUpstream returns the first wired input, or nil if the node has none.
func (n Node) FirstUpstream() *PortRef {
	for _, p := range n.Inputs {
		if p.Upstream != nil {
			return p.Upstream
		}
	}
	return nil
}

// Flow is a compilable snapshot of the editor graph.
type Flow struct {
	Name  string          `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes map[string]Node `json:"nodes" yaml:"nodes"`

	// Serialized is the editor's own opaque payload. The compiler never
	// parses it; it is carried into the round-trip metadata so the editor
	// can re-open the flow later.
	Serialized string `json:"serialized,omitempty" yaml:"serialized,omitempty"`
}
