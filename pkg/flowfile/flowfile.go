// Package flowfile reads and writes flow graphs as YAML documents. The
// CLI uses it for file-based workflows; editors that speak the JSON API
// never touch it.
package flowfile

import (
	"fmt"
	"os"
	"sort"

	"github.com/autograph-dev/autograph/pkg/domain"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a flow. Node wiring is expressed as
// "inputs: [{from: node-id}]" rather than port structs, which keeps the
// files hand-editable.
type document struct {
	Name  string             `yaml:"name,omitempty"`
	Nodes map[string]docNode `yaml:"nodes"`
}

type docNode struct {
	Type   string         `yaml:"type"`
	Gate   string         `yaml:"gate,omitempty"`
	Title  string         `yaml:"title,omitempty"`
	Config map[string]any `yaml:"config,omitempty"`
	Inputs []docInput     `yaml:"inputs,omitempty"`
}

type docInput struct {
	From string `yaml:"from"`
	Port int    `yaml:"port,omitempty"`
}

// Parse decodes a YAML flow document. The raw bytes are preserved in
// Flow.Serialized so the compiled result can round-trip the source.
func Parse(data []byte) (domain.Flow, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Flow{}, fmt.Errorf("failed to parse flow document: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return domain.Flow{}, fmt.Errorf("flow document has no nodes")
	}

	nodes := make(map[string]domain.Node, len(doc.Nodes))
	for id, dn := range doc.Nodes {
		node := domain.Node{
			ID:      id,
			Type:    parseNodeType(dn.Type),
			Gate:    domain.GateKind(dn.Gate),
			Title:   dn.Title,
			Config:  dn.Config,
			Outputs: []domain.Port{{Name: "out"}},
		}
		for i, in := range dn.Inputs {
			name := "in"
			if node.Type == domain.NodeTypeLogicGate {
				name = fmt.Sprintf("in_%d", i)
			}
			port := domain.Port{Name: name}
			if in.From != "" {
				port.Upstream = &domain.PortRef{NodeID: in.From, Port: in.Port}
			}
			node.Inputs = append(node.Inputs, port)
		}
		nodes[id] = node
	}

	return domain.Flow{
		Name:       doc.Name,
		Nodes:      nodes,
		Serialized: string(data),
	}, nil
}

// Load reads and parses a flow document from disk.
func Load(path string) (domain.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Flow{}, fmt.Errorf("failed to read flow file: %w", err)
	}
	return Parse(data)
}

// Marshal renders a flow back into document form with deterministic field
// order, so saved files diff cleanly.
func Marshal(flow domain.Flow) ([]byte, error) {
	doc := document{
		Name:  flow.Name,
		Nodes: make(map[string]docNode, len(flow.Nodes)),
	}

	ids := make([]string, 0, len(flow.Nodes))
	for id := range flow.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := flow.Nodes[id]
		dn := docNode{
			Type:   string(n.Type),
			Gate:   string(n.Gate),
			Title:  n.Title,
			Config: n.Config,
		}
		for _, in := range n.Inputs {
			if in.Upstream == nil {
				continue
			}
			dn.Inputs = append(dn.Inputs, docInput{
				From: in.Upstream.NodeID,
				Port: in.Upstream.Port,
			})
		}
		doc.Nodes[id] = dn
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal flow document: %w", err)
	}
	return out, nil
}

func parseNodeType(s string) domain.NodeType {
	switch domain.NodeType(s) {
	case domain.NodeTypeTrigger, domain.NodeTypeCondition, domain.NodeTypeLogicGate, domain.NodeTypeAction:
		return domain.NodeType(s)
	default:
		return domain.NodeTypeUnknown
	}
}
