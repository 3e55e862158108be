package decompiler

import (
	"testing"

	"github.com/autograph-dev/autograph/internal/compiler"
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRule(condCount int) domain.Automation {
	rule := domain.Automation{
		ID:      "rule-1",
		Name:    "Porch light",
		Enabled: true,
		Trigger: domain.Trigger{Type: domain.TriggerNodeOnline, Config: map[string]any{"node": "porch"}},
		Actions: []domain.Action{{Type: domain.ActionNotify, Config: map[string]any{"channel": "push"}}},
	}
	conds := []domain.Condition{
		{Type: domain.ConditionTimeRange, Config: map[string]any{"start": "18:00"}},
		{Type: domain.ConditionBatteryAbove, Config: map[string]any{"percent": 20}},
		{Type: domain.ConditionDayOfWeek},
	}
	rule.Conditions = conds[:condCount]
	return rule
}

func placements(desc domain.GraphDescription) map[string]domain.Placement {
	out := make(map[string]domain.Placement, len(desc.Nodes))
	for _, p := range desc.Nodes {
		out[p.Node.ID] = p
	}
	return out
}

func TestDecompileBareRule(t *testing.T) {
	desc := Decompile(sampleRule(0))
	byID := placements(desc)

	require.Len(t, desc.Nodes, 2)
	trigger := byID["trigger"]
	action := byID["action-1"]

	assert.Equal(t, domain.NodeTypeTrigger, trigger.Node.Type)
	assert.Equal(t, "node_online", trigger.Node.Config["type"])
	assert.Equal(t, "porch", trigger.Node.Config["node"])

	// No conditions: the action wires straight to the trigger.
	require.Len(t, action.Node.Inputs, 1)
	assert.Equal(t, "trigger", action.Node.Inputs[0].Upstream.NodeID)
}

func TestDecompileSingleConditionInline(t *testing.T) {
	desc := Decompile(sampleRule(1))
	byID := placements(desc)

	require.Len(t, desc.Nodes, 3)
	assert.NotContains(t, byID, "gate-and")

	cond := byID["condition-1"]
	assert.Equal(t, "time_range", cond.Node.Config["type"])
	assert.Equal(t, "trigger", cond.Node.Inputs[0].Upstream.NodeID)

	action := byID["action-1"]
	assert.Equal(t, "condition-1", action.Node.Inputs[0].Upstream.NodeID)
}

func TestDecompileMultipleConditionsBridgeThroughAndGate(t *testing.T) {
	desc := Decompile(sampleRule(3))
	byID := placements(desc)

	gate := byID["gate-and"]
	require.Equal(t, domain.GateAnd, gate.Node.Gate)
	require.Len(t, gate.Node.Inputs, 3)
	for i, in := range gate.Node.Inputs {
		assert.Equal(t, byID["condition-"+string(rune('1'+i))].Node.ID, in.Upstream.NodeID)
	}

	// The gate sits at the vertical midpoint of the condition column,
	// level with the trigger.
	assert.Equal(t, byID["trigger"].Y, gate.Y)
	assert.Equal(t, rowSpacing, gate.Y)

	action := byID["action-1"]
	assert.Equal(t, "gate-and", action.Node.Inputs[0].Upstream.NodeID)
}

func TestDecompileCoordinatesAreGridAligned(t *testing.T) {
	desc := Decompile(sampleRule(3))
	for _, p := range desc.Nodes {
		assert.Zerof(t, p.X%domain.GridUnit, "node %s X=%d off grid", p.Node.ID, p.X)
		assert.Zerof(t, p.Y%domain.GridUnit, "node %s Y=%d off grid", p.Node.ID, p.Y)
	}
}

func TestDecompileIsDeterministic(t *testing.T) {
	a := Decompile(sampleRule(2))
	b := Decompile(sampleRule(2))
	assert.Equal(t, a, b)
}

func TestDecompileRecompilesToEquivalentRule(t *testing.T) {
	rule := sampleRule(2)
	desc := Decompile(rule)

	result := compiler.Compile(domain.Flow{Name: rule.Name, Nodes: desc.Graph()}, compiler.Options{})
	require.True(t, result.IsSuccess(), "errors: %v", result.Errors)
	require.Len(t, result.Automations, 1)

	got := result.Automations[0]
	assert.Equal(t, rule.Trigger.Type, got.Trigger.Type)
	assert.Equal(t, rule.Trigger.Config, got.Trigger.Config)
	require.Len(t, got.Conditions, len(rule.Conditions))
	for i := range rule.Conditions {
		assert.Equal(t, rule.Conditions[i].Type, got.Conditions[i].Type)
		assert.Equal(t, rule.Conditions[i].Config, got.Conditions[i].Config)
	}
	require.Len(t, got.Actions, len(rule.Actions))
	assert.Equal(t, rule.Actions[0].Type, got.Actions[0].Type)
	assert.Equal(t, rule.Actions[0].Config, got.Actions[0].Config)
}
