// Package decompiler performs the inverse transform of the compiler: it
// lays an existing automation back out as an editable flow graph with
// deterministic, grid-aligned coordinates.
package decompiler

import (
	"fmt"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// Layout constants. Columns and row spacing are fixed, not configurable,
// so repeated decompiles of the same rule are byte-identical.
const (
	colTriggerX   = domain.GridUnit * 2  // column 1: the trigger
	colConditionX = domain.GridUnit * 16 // column 2: conditions
	colGateX      = domain.GridUnit * 23 // AND bridge, when needed
	colActionX    = domain.GridUnit * 30 // column 3: actions
	rowSpacing    = domain.GridUnit * 6
)

// Decompile converts one automation into a laid-out graph description.
// Pure function: no side effects, same input always yields the same
// output. The produced graph recompiles to a semantically equal rule.
func Decompile(rule domain.Automation) domain.GraphDescription {
	var desc domain.GraphDescription

	condCount := len(rule.Conditions)
	midY := 0
	if condCount > 1 {
		// rowSpacing is an even number of grid units, so the midpoint of
		// the condition column stays on the grid.
		midY = (condCount - 1) * rowSpacing / 2
	}

	trigger := domain.Node{
		ID:      "trigger",
		Type:    domain.NodeTypeTrigger,
		Outputs: []domain.Port{{Name: "out"}},
		Config:  configWithType(string(rule.Trigger.Type), rule.Trigger.Config),
	}
	desc.Nodes = append(desc.Nodes, domain.Placement{Node: trigger, X: colTriggerX, Y: midY})

	condIDs := make([]string, condCount)
	for i, cond := range rule.Conditions {
		id := fmt.Sprintf("condition-%d", i+1)
		condIDs[i] = id
		node := domain.Node{
			ID:   id,
			Type: domain.NodeTypeCondition,
			Inputs: []domain.Port{{
				Name:     "in",
				Upstream: &domain.PortRef{NodeID: trigger.ID},
			}},
			Outputs: []domain.Port{{Name: "out"}},
			Config:  configWithType(string(cond.Type), cond.Config),
		}
		desc.Nodes = append(desc.Nodes, domain.Placement{Node: node, X: colConditionX, Y: i * rowSpacing})
	}

	// Bridge: with zero conditions the trigger feeds the actions directly,
	// one condition feeds them itself, and two or more get folded through
	// a synthesized AND gate.
	preAction := trigger.ID
	switch {
	case condCount == 1:
		preAction = condIDs[0]
	case condCount > 1:
		gate := domain.Node{
			ID:      "gate-and",
			Type:    domain.NodeTypeLogicGate,
			Gate:    domain.GateAnd,
			Outputs: []domain.Port{{Name: "out"}},
		}
		for i, condID := range condIDs {
			gate.Inputs = append(gate.Inputs, domain.Port{
				Name:     fmt.Sprintf("in_%d", i),
				Upstream: &domain.PortRef{NodeID: condID},
			})
		}
		desc.Nodes = append(desc.Nodes, domain.Placement{Node: gate, X: colGateX, Y: midY})
		preAction = gate.ID
	}

	for i, action := range rule.Actions {
		node := domain.Node{
			ID:   fmt.Sprintf("action-%d", i+1),
			Type: domain.NodeTypeAction,
			Inputs: []domain.Port{{
				Name:     "in",
				Upstream: &domain.PortRef{NodeID: preAction},
			}},
			Config: configWithType(string(action.Type), action.Config),
		}
		desc.Nodes = append(desc.Nodes, domain.Placement{Node: node, X: colActionX, Y: i * rowSpacing})
	}

	return desc
}

// configWithType rebuilds a node config map with the catalog type string
// folded back in under "type", the shape the compiler consumes.
func configWithType(kind string, cfg map[string]any) map[string]any {
	out := make(map[string]any, len(cfg)+1)
	for k, v := range cfg {
		out[k] = v
	}
	out["type"] = kind
	return out
}
