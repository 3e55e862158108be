// Package validator runs the structural pre-checks a flow must pass before
// compilation is worth attempting. It inspects wiring only and never walks
// paths, so it stays cheap enough for the editor to call on every change.
package validator

import (
	"sort"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// Validate checks a flow's structure and returns one diagnostic per
// finding, in deterministic node order. An empty slice means the flow is
// structurally compilable (the compiler may still report path-level
// problems such as cycles).
func Validate(flow domain.Flow) []domain.Diagnostic {
	var diags []domain.Diagnostic

	triggers := 0
	actions := 0
	for _, n := range flow.Nodes {
		switch n.Type {
		case domain.NodeTypeTrigger:
			triggers++
		case domain.NodeTypeAction:
			actions++
		}
	}

	if triggers == 0 {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityError,
			Message:  "flow has no trigger nodes",
		})
	}
	if actions == 0 {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityError,
			Message:  "flow has no action nodes",
		})
	}

	consumers := downstreamConsumers(flow.Nodes)

	for _, id := range sortedIDs(flow.Nodes) {
		n := flow.Nodes[id]
		switch n.Type {
		case domain.NodeTypeAction:
			if len(n.ConnectedInputs()) == 0 {
				diags = append(diags, domain.Diagnostic{
					Severity: domain.SeverityError,
					Message:  "action node has no connected input",
					NodeID:   n.ID,
					NodeType: n.Type,
				})
			}
		case domain.NodeTypeLogicGate:
			// A fully disconnected gate is just editor clutter; a gate
			// somebody depends on with nothing feeding it is broken.
			if len(n.ConnectedInputs()) == 0 && consumers[n.ID] > 0 {
				diags = append(diags, domain.Diagnostic{
					Severity: domain.SeverityError,
					Message:  "gate has downstream consumers but no inputs",
					NodeID:   n.ID,
					NodeType: n.Type,
				})
			}
		}
	}

	return diags
}

// downstreamConsumers counts, per node, how many input ports elsewhere
// reference its outputs.
func downstreamConsumers(nodes map[string]domain.Node) map[string]int {
	counts := make(map[string]int)
	for _, n := range nodes {
		for _, in := range n.Inputs {
			if in.Upstream != nil {
				counts[in.Upstream.NodeID]++
			}
		}
	}
	return counts
}

func sortedIDs(nodes map[string]domain.Node) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
