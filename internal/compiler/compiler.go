// Package compiler transforms a user-built flow graph (triggers,
// conditions, logic gates, actions) into executable automations. The
// tracer enumerates paths backward from each action node, the emitter
// groups structurally identical paths and produces the final rules.
package compiler

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// DefaultMaxPaths bounds the number of paths a single fan-out gate may
// produce. Nested OR gates multiply path counts, so the cap turns a
// potential blow-up into an ordinary node-attributed error.
const DefaultMaxPaths = 512

// Options tune a single compile invocation.
type Options struct {
	// MaxPaths overrides DefaultMaxPaths. Zero means the default;
	// a negative value disables the guard.
	MaxPaths int

	// Logger receives debug-level trace output. Nil disables logging.
	Logger *slog.Logger
}

// collector accumulates diagnostics for one compile call. It is owned by
// Compile and threaded through the tracer and emitter, so concurrent
// compiles never share mutable state.
type collector struct {
	errors   []domain.Diagnostic
	warnings []domain.Diagnostic
}

func (c *collector) errorf(node *domain.Node, format string, args ...any) {
	c.errors = append(c.errors, diagnostic(domain.SeverityError, node, format, args...))
}

func (c *collector) warnf(node *domain.Node, format string, args ...any) {
	c.warnings = append(c.warnings, diagnostic(domain.SeverityWarning, node, format, args...))
}

func diagnostic(sev domain.Severity, node *domain.Node, format string, args ...any) domain.Diagnostic {
	d := domain.Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		d.NodeID = node.ID
		d.NodeType = node.Type
	}
	return d
}

// Compile runs the full transform over one flow snapshot. It never fails
// hard: malformed graphs yield a result whose Errors explain what was
// dropped. Safe for concurrent use as long as each call gets its own flow
// snapshot.
func Compile(flow domain.Flow, opts Options) *domain.CompilationResult {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxPaths := opts.MaxPaths
	if maxPaths == 0 {
		maxPaths = DefaultMaxPaths
	}

	diags := &collector{}
	result := &domain.CompilationResult{}

	actionIDs := actionNodeIDs(flow.Nodes)
	if len(actionIDs) == 0 {
		diags.errorf(nil, "flow contains no action nodes")
		result.Errors = diags.errors
		result.Warnings = diags.warnings
		return result
	}

	tr := &tracer{nodes: flow.Nodes, diags: diags, maxPaths: maxPaths}

	// Trace every action node independently with a fresh visited set, so a
	// broken branch never bleeds into its neighbors.
	traced := make(map[string][]compiledPath, len(actionIDs))
	for _, id := range actionIDs {
		action := flow.Nodes[id]
		inputs := action.ConnectedInputs()
		if len(inputs) == 0 {
			diags.errorf(&action, "action node is not wired to anything")
			continue
		}
		var paths []compiledPath
		for _, in := range inputs {
			visited := map[string]bool{id: true}
			paths = append(paths, tr.trace(in.Upstream.NodeID, visited)...)
		}
		logger.Debug("traced action node", "node", id, "paths", len(paths))
		traced[id] = paths
	}

	automations, actionRules := emit(flow, actionIDs, traced, diags)

	warnDisconnected(flow.Nodes, diags)

	ruleIDs := make([]string, len(automations))
	for i, a := range automations {
		ruleIDs[i] = a.ID
	}

	result.Automations = automations
	result.Errors = diags.errors
	result.Warnings = diags.warnings
	result.RoundTrip = &domain.RoundTrip{
		FlowName:        flow.Name,
		SerializedGraph: flow.Serialized,
		RuleIDs:         ruleIDs,
		ActionRules:     actionRules,
	}
	return result
}

// actionNodeIDs returns the flow's action node IDs in sorted order, so
// emission order (and therefore rule numbering) is deterministic.
func actionNodeIDs(nodes map[string]domain.Node) []string {
	var ids []string
	for id, n := range nodes {
		if n.Type == domain.NodeTypeAction {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// warnDisconnected flags condition and gate nodes nothing consumes. Users
// park half-wired nodes mid-edit, so these are warnings, not errors.
func warnDisconnected(nodes map[string]domain.Node, diags *collector) {
	referenced := make(map[string]bool)
	for _, n := range nodes {
		for _, in := range n.Inputs {
			if in.Upstream != nil {
				referenced[in.Upstream.NodeID] = true
			}
		}
	}

	var ids []string
	for id, n := range nodes {
		if n.Type != domain.NodeTypeCondition && n.Type != domain.NodeTypeLogicGate {
			continue
		}
		if !referenced[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		node := nodes[id]
		diags.warnf(&node, "node is not connected to any output")
	}
}
