package domain

import "fmt"

// Severity splits diagnostics into two classes: errors drop the affected
// path or action from the output, warnings mean output was produced but
// degraded. Nothing the compiler reports is fatal to the process.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a structured compile-time finding. NodeID and NodeType are
// filled whenever the offending node is known so the editor can highlight it.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	NodeID   string   `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	NodeType NodeType `json:"node_type,omitempty" yaml:"node_type,omitempty"`
}

func (d Diagnostic) String() string {
	if d.NodeID == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s (node %s)", d.Severity, d.Message, d.NodeID)
}

// RoundTrip is the metadata persisted alongside compiled automations so a
// stored flow can be re-opened and re-edited later.
type RoundTrip struct {
	FlowName        string `json:"flow_name,omitempty" yaml:"flow_name,omitempty"`
	SerializedGraph string `json:"serialized_graph,omitempty" yaml:"serialized_graph,omitempty"`

	// RuleIDs lists every emitted automation, in emission order.
	RuleIDs []string `json:"rule_ids" yaml:"rule_ids"`

	// ActionRules maps each action node ID to the automations it ended up
	// in. One-to-many: OR forks can place a single action node's output
	// into several automations.
	ActionRules map[string][]string `json:"action_rules" yaml:"action_rules"`
}

// CompilationResult is the complete outcome of one compile invocation.
// It is created once and never mutated afterward.
type CompilationResult struct {
	Automations []Automation `json:"automations" yaml:"automations"`
	Errors      []Diagnostic `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings    []Diagnostic `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	RoundTrip   *RoundTrip   `json:"round_trip,omitempty" yaml:"round_trip,omitempty"`
}

// IsSuccess reports whether compilation produced at least one automation
// with no errors. Callers should check IsEmpty as well: an error-free
// compile of a degenerate flow is a distinct UI case from a failed one.
func (r *CompilationResult) IsSuccess() bool {
	return len(r.Errors) == 0 && len(r.Automations) > 0
}

// IsEmpty reports whether compilation produced no automations at all.
func (r *CompilationResult) IsEmpty() bool {
	return len(r.Automations) == 0
}
