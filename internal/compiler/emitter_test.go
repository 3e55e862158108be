package compiler

import (
	"testing"

	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeduplicatesIdenticalPaths(t *testing.T) {
	// Two actions hanging off the same chain share one automation.
	b := dsl.New("Shared chain")
	b.Trigger("t", "battery_low", map[string]any{"node": "gate"})
	b.Condition("c", "node_online", nil).From("t")
	b.Action("a1", "notify", nil).Title("Ping").From("c")
	b.Action("a2", "record_event", nil).Title("Log it").From("c")

	result := compileFlow(t, b.Build())

	require.True(t, result.IsSuccess(), "errors: %v", diagMessages(result.Errors))
	require.Len(t, result.Automations, 1)

	auto := result.Automations[0]
	require.Len(t, auto.Actions, 2)
	assert.Equal(t, domain.ActionNotify, auto.Actions[0].Type)
	assert.Equal(t, domain.ActionRecordEvent, auto.Actions[1].Type)

	require.NotNil(t, result.RoundTrip)
	assert.Equal(t, []string{auto.ID}, result.RoundTrip.ActionRules["a1"])
	assert.Equal(t, []string{auto.ID}, result.RoundTrip.ActionRules["a2"])
}

func TestEmitDeduplicatesAcrossTriggerNodes(t *testing.T) {
	// Separate trigger nodes with identical type and config are one
	// structural path; the signature ignores node identity.
	b := dsl.New("Twins")
	b.Trigger("t1", "schedule", map[string]any{"cron": "0 9 * * *", "tz": "UTC"})
	b.Trigger("t2", "schedule", map[string]any{"tz": "UTC", "cron": "0 9 * * *"})
	b.Action("a1", "notify", nil).From("t1")
	b.Action("a2", "notify", nil).From("t2")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	require.Len(t, result.Automations[0].Actions, 2)
}

func TestEmitUnknownTriggerDropsBucket(t *testing.T) {
	b := dsl.New("Bad trigger")
	b.Trigger("t", "sunspot_activity", nil)
	b.Action("a", "notify", nil).From("t")

	result := compileFlow(t, b.Build())

	assert.True(t, result.IsEmpty())
	assert.True(t, hasDiag(result.Errors, `unknown trigger type "sunspot_activity"`))
	// The offending node is attributed so the editor can highlight it.
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "t", result.Errors[0].NodeID)
}

func TestEmitUnknownActionFallsBackToNotify(t *testing.T) {
	b := dsl.New("Bad action")
	b.Trigger("t", "schedule", nil)
	b.Action("a", "launch_rocket", map[string]any{"pad": 39}).From("t")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	require.Len(t, result.Automations[0].Actions, 1)
	assert.Equal(t, domain.ActionNotify, result.Automations[0].Actions[0].Type)
	assert.True(t, hasDiag(result.Warnings, "falling back to notification"))
}

func TestEmitRuleNaming(t *testing.T) {
	b := dsl.New("Porch")
	b.Trigger("t", "node_online", nil)
	b.Action("a", "notify", nil).Title("Ping").From("t")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	assert.Equal(t, "Porch: Node comes online → Ping", result.Automations[0].Name)
}

func TestEmitRuleNamingNumbersMultipleRules(t *testing.T) {
	b := dsl.New("Comings and goings")
	b.Trigger("t1", "enters_geofence", nil)
	b.Trigger("t2", "exits_geofence", nil)
	b.Gate("or", domain.GateOr).From("t1").From("t2")
	b.Action("a", "notify", nil).Title("Ping").From("or")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 2)
	assert.Equal(t, "Comings and goings 1: Enters geofence → Ping", result.Automations[0].Name)
	assert.Equal(t, "Comings and goings 2: Exits geofence → Ping", result.Automations[1].Name)
}

func TestEmitRuleNameFallsBackWithoutFlowName(t *testing.T) {
	b := dsl.New("")
	b.Trigger("t", "battery_low", nil)
	b.Action("a", "record_event", nil).From("t")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	// Untitled actions use the catalog display name.
	assert.Equal(t, "Automation: Battery low → Record event", result.Automations[0].Name)
}

func TestEmitRuleDescription(t *testing.T) {
	b := dsl.New("Evenings")
	b.Trigger("t", "node_offline", nil)
	b.Condition("c1", "time_range", nil).From("t")
	b.Condition("c2", "day_of_week", nil).From("c1")
	b.Delay("d", 90).From("c2")
	b.Action("a", "notify", nil).Title("Ping").From("d")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	assert.Equal(t,
		"When: Node goes offline · If: Time of day AND Day of week · After: 1m30s delay · Then: Ping",
		result.Automations[0].Description)
}

func TestEmitNoConditionsSerializeAsAbsent(t *testing.T) {
	b := dsl.New("Plain")
	b.Trigger("t", "schedule", nil)
	b.Action("a", "notify", nil).From("t")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	assert.Nil(t, result.Automations[0].Conditions)
}

func TestCompileNoActionsShortCircuits(t *testing.T) {
	b := dsl.New("Trigger only")
	b.Trigger("t", "schedule", nil)

	result := compileFlow(t, b.Build())

	assert.True(t, result.IsEmpty())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "flow contains no action nodes", result.Errors[0].Message)
	assert.Nil(t, result.RoundTrip)
}

func TestCompileUnwiredActionDoesNotBlockOthers(t *testing.T) {
	b := dsl.New("Partial")
	b.Trigger("t", "schedule", nil)
	b.Action("a1", "notify", nil).From("t")
	b.Action("a2", "notify", nil).OpenInput()

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	assert.True(t, hasDiag(result.Errors, "not wired to anything"))
	assert.Equal(t, "a2", result.Errors[0].NodeID)
}

func TestCompileWarnsAboutDisconnectedNodes(t *testing.T) {
	b := dsl.New("Clutter")
	b.Trigger("t", "schedule", nil)
	b.Action("a", "notify", nil).From("t")
	b.Condition("parked", "time_range", nil).From("t")
	b.Gate("spare", domain.GateOr)

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 1)
	assert.True(t, hasDiag(result.Warnings, "not connected to any output"))

	var flagged []string
	for _, w := range result.Warnings {
		flagged = append(flagged, w.NodeID)
	}
	assert.Contains(t, flagged, "parked")
	assert.Contains(t, flagged, "spare")
}

func TestCompileRoundTripCarriesSerializedGraph(t *testing.T) {
	b := dsl.New("Persisted")
	b.Trigger("t", "schedule", nil)
	b.Action("a", "notify", nil).From("t")
	flow := b.Build()
	flow.Serialized = `{"editor":"payload"}`

	result := compileFlow(t, flow)

	require.NotNil(t, result.RoundTrip)
	assert.Equal(t, "Persisted", result.RoundTrip.FlowName)
	assert.Equal(t, `{"editor":"payload"}`, result.RoundTrip.SerializedGraph)
}

func TestEmitRuleIDsAreUnique(t *testing.T) {
	b := dsl.New("Fork")
	b.Trigger("t1", "node_online", nil)
	b.Trigger("t2", "node_offline", nil)
	b.Gate("or", domain.GateOr).From("t1").From("t2")
	b.Action("a", "notify", nil).From("or")

	result := compileFlow(t, b.Build())

	require.Len(t, result.Automations, 2)
	assert.NotEmpty(t, result.Automations[0].ID)
	assert.NotEqual(t, result.Automations[0].ID, result.Automations[1].ID)
}
