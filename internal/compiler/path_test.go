package compiler

import (
	"testing"

	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalSortsMapKeys(t *testing.T) {
	a := map[string]any{"zone": "home", "radius": 50}
	b := map[string]any{"radius": 50, "zone": "home"}
	assert.Equal(t, canonical(a), canonical(b))
	assert.Equal(t, `{"radius":50,"zone":"home"}`, canonical(a))
}

func TestCanonicalNestedStructures(t *testing.T) {
	v := map[string]any{
		"days":  []any{"mon", "tue"},
		"inner": map[string]any{"b": 2, "a": 1},
	}
	assert.Equal(t, `{"days":["mon","tue"],"inner":{"a":1,"b":2}}`, canonical(v))
}

func TestCanonicalScalars(t *testing.T) {
	assert.Equal(t, `"x"`, canonical("x"))
	assert.Equal(t, `42`, canonical(42))
	assert.Equal(t, `true`, canonical(true))
	assert.Equal(t, `null`, canonical(nil))
}

func TestSignatureIgnoresConditionOrder(t *testing.T) {
	// Grouping treats condition sets, not sequences, as identity: the same
	// predicates in a different order merge into one rule.
	c1 := domain.Condition{Type: domain.ConditionTimeRange, Config: map[string]any{"start": "18:00"}}
	c2 := domain.Condition{Type: domain.ConditionDayOfWeek, Config: map[string]any{"days": []any{"sat"}}}

	a := compiledPath{triggerType: "schedule", conditions: []domain.Condition{c1, c2}}
	b := compiledPath{triggerType: "schedule", conditions: []domain.Condition{c2, c1}}
	assert.Equal(t, a.signature(), b.signature())
}

func TestSignatureDistinguishesDelay(t *testing.T) {
	a := compiledPath{triggerType: "schedule", delaySeconds: 0}
	b := compiledPath{triggerType: "schedule", delaySeconds: 60}
	assert.NotEqual(t, a.signature(), b.signature())
}

func TestCloneIsolatesConditions(t *testing.T) {
	orig := compiledPath{conditions: []domain.Condition{{Type: domain.ConditionNodeOnline}}}
	cp := orig.clone()
	cp.conditions[0].Type = domain.ConditionNodeOffline
	assert.Equal(t, domain.ConditionNodeOnline, orig.conditions[0].Type)
}
