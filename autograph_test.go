package autograph_test

import (
	"testing"

	"github.com/autograph-dev/autograph"
	"github.com/autograph-dev/autograph/internal/observability"
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/dsl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func porchFlow(name string) domain.Flow {
	b := dsl.New(name)
	b.Trigger("t", "node_online", map[string]any{"node": "porch"})
	b.Condition("c", "time_range", map[string]any{"start": "18:00"}).From("t")
	b.Action("a", "notify", nil).Title("Ping").From("c")
	return b.Build()
}

func TestCompilerCompile(t *testing.T) {
	c := autograph.New()
	result := c.Compile(porchFlow("Porch light"))

	require.True(t, result.IsSuccess(), "errors: %v", result.Errors)
	require.Len(t, result.Automations, 1)
	assert.Equal(t, "Porch light: Node comes online → Ping", result.Automations[0].Name)
}

func TestCompilerDefaultFlowName(t *testing.T) {
	c := autograph.New(autograph.WithDefaultFlowName("Untitled"))
	result := c.Compile(porchFlow(""))

	require.Len(t, result.Automations, 1)
	assert.Equal(t, "Untitled", result.RoundTrip.FlowName)
}

func TestCompilerMaxPathsOption(t *testing.T) {
	b := dsl.New("Fan out")
	b.Trigger("t1", "node_online", nil)
	b.Trigger("t2", "node_offline", nil)
	b.Gate("or", domain.GateOr).From("t1").From("t2")
	b.Action("a", "notify", nil).From("or")

	c := autograph.New(autograph.WithMaxPaths(1))
	result := c.Compile(b.Build())
	assert.True(t, result.IsEmpty())
	assert.NotEmpty(t, result.Errors)
}

func TestCompilerDecompileRoundTrip(t *testing.T) {
	c := autograph.New()
	compiled := c.Compile(porchFlow("Porch light"))
	require.Len(t, compiled.Automations, 1)

	desc := c.Decompile(compiled.Automations[0])
	require.NotEmpty(t, desc.Nodes)
	for _, p := range desc.Nodes {
		assert.Zero(t, p.X%domain.GridUnit)
		assert.Zero(t, p.Y%domain.GridUnit)
	}

	recompiled := c.Compile(domain.Flow{Name: "Porch light", Nodes: desc.Graph()})
	require.True(t, recompiled.IsSuccess(), "errors: %v", recompiled.Errors)
	require.Len(t, recompiled.Automations, 1)
	assert.Equal(t, compiled.Automations[0].Trigger.Type, recompiled.Automations[0].Trigger.Type)
	assert.Equal(t, compiled.Automations[0].Conditions, recompiled.Automations[0].Conditions)
}

func TestCompilerValidate(t *testing.T) {
	c := autograph.New()
	assert.Empty(t, c.Validate(porchFlow("OK")))

	b := dsl.New("Broken")
	b.Action("a", "notify", nil).OpenInput()
	assert.NotEmpty(t, c.Validate(b.Build()))
}

func TestCompilerRecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	c := autograph.New(autograph.WithMetrics(metrics))

	c.Compile(porchFlow("Porch light"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Compiles.WithLabelValues(observability.StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RulesEmitted))

	// A flow with no actions counts as an errored compile.
	b := dsl.New("Empty")
	b.Trigger("t", "schedule", nil)
	c.Compile(b.Build())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Compiles.WithLabelValues(observability.StatusError)))
}
