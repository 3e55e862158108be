package domain

// KeyDelaySeconds is the private trigger-config key the emitter uses to
// carry a path's merged delay to the execution engine. It lives inside the
// trigger config so no schema change is needed on the engine side.
const KeyDelaySeconds = "_delay_seconds"

// Trigger is the event slot of a compiled automation.
type Trigger struct {
	Type   TriggerType    `json:"type" yaml:"type"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Condition is one AND-combined predicate of a compiled automation.
type Condition struct {
	Type   ConditionType  `json:"type" yaml:"type"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Action is one effect of a compiled automation.
type Action struct {
	Type   ActionType     `json:"type" yaml:"type"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Automation is the executable unit consumed by the rule engine: exactly
// one trigger, one or more actions, and zero or more conditions that the
// engine combines with AND.
type Automation struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool        `json:"enabled" yaml:"enabled"`
	Trigger     Trigger     `json:"trigger" yaml:"trigger"`
	Actions     []Action    `json:"actions" yaml:"actions"`
	Conditions  []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}
