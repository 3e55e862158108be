package compiler

import (
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DefaultDelaySeconds is applied when a delay gate carries no usable
// "seconds" field in its config.
const DefaultDelaySeconds = 300

// tracer walks the graph backward from an action node to every reachable
// trigger, producing one compiledPath per independent branch. It owns no
// state across invocations; the diagnostics collector belongs to the
// enclosing compile call.
type tracer struct {
	nodes    map[string]domain.Node
	diags    *collector
	maxPaths int
}

// trace follows the wiring upstream from nodeID. The visited set holds the
// IDs on the active traversal stack: an ID is added on entry and removed on
// exit, so sibling branches through the same node are fine while any true
// cycle is caught.
func (t *tracer) trace(nodeID string, visited map[string]bool) []compiledPath {
	node, ok := t.nodes[nodeID]
	if !ok {
		t.diags.errorf(nil, "wire references missing node %q", nodeID)
		return nil
	}
	if visited[nodeID] {
		t.diags.errorf(&node, "cycle detected at node %q", nodeID)
		return nil
	}
	visited[nodeID] = true
	defer delete(visited, nodeID)

	switch node.Type {
	case domain.NodeTypeTrigger:
		return []compiledPath{t.seedTrigger(node)}

	case domain.NodeTypeCondition:
		return t.traceCondition(node, visited)

	case domain.NodeTypeLogicGate:
		switch node.Gate {
		case domain.GateAnd:
			return t.traceAnd(node, visited)
		case domain.GateOr:
			return t.traceOr(node, visited)
		case domain.GateNot:
			return t.traceNot(node, visited)
		case domain.GateDelay:
			return t.traceDelay(node, visited)
		default:
			t.diags.warnf(&node, "unknown gate kind %q, following first input", node.Gate)
			return t.traceThrough(node, visited)
		}

	default:
		// Unknown (or misplaced) node kinds fall through along their first
		// wired input so forward-compatible graphs still compile.
		t.diags.warnf(&node, "unrecognized node type %q, following first input", node.Type)
		return t.traceThrough(node, visited)
	}
}

// seedTrigger starts a fresh path from a trigger node's configuration.
// The type string is not resolved here; the emitter validates it against
// the catalog so a bad trigger drops only its own bucket.
func (t *tracer) seedTrigger(node domain.Node) compiledPath {
	kind, cfg := splitConfig(node.Config)
	return compiledPath{
		triggerType:   kind,
		triggerConfig: cfg,
		triggerNodeID: node.ID,
	}
}

func (t *tracer) traceCondition(node domain.Node, visited map[string]bool) []compiledPath {
	upstream := node.FirstUpstream()
	if upstream == nil {
		t.diags.errorf(&node, "condition node has no upstream connection")
		return nil
	}

	paths := t.trace(upstream.NodeID, visited)

	kind, cfg := splitConfig(node.Config)
	condType, ok := domain.ParseConditionType(kind)
	if !ok {
		// Unresolvable condition kinds degrade gracefully: the path passes
		// through unaffected instead of killing the branch.
		t.diags.warnf(&node, "unknown condition type %q, condition skipped", kind)
		return paths
	}

	cond := domain.Condition{Type: condType, Config: cfg}
	for i := range paths {
		// The new condition sits closer to the consumer than everything
		// collected upstream, so it goes at the end of the earliest-first
		// list.
		paths[i].conditions = append(paths[i].conditions, cond)
	}
	return paths
}

// traceAnd folds every wired branch into a cross product: conditions
// concatenate, delays max-merge, and the first branch's trigger wins.
func (t *tracer) traceAnd(node domain.Node, visited map[string]bool) []compiledPath {
	inputs := node.ConnectedInputs()
	if len(inputs) == 0 {
		t.diags.errorf(&node, "AND gate has no connected inputs")
		return nil
	}

	var branches [][]compiledPath
	for _, in := range inputs {
		// Each branch gets its own copy of the visited set so siblings
		// cannot poison each other's cycle detection. The gate's own ID
		// stays in the parent set, so a loop back to the gate is caught.
		branch := t.trace(in.Upstream.NodeID, copyVisited(visited))
		branches = append(branches, branch)
	}

	merged := branches[0]
	triggerWarned := false
	for _, branch := range branches[1:] {
		var next []compiledPath
		for _, left := range merged {
			for _, right := range branch {
				if !triggerWarned && !sameTrigger(left, right) {
					t.diags.warnf(&node, "AND gate joins branches with different triggers; keeping the first")
					triggerWarned = true
				}
				combined := left.clone()
				combined.conditions = append(combined.conditions, right.conditions...)
				combined.delaySeconds = maxDelay(left.delaySeconds, right.delaySeconds)
				next = append(next, combined)
			}
		}
		merged = next
	}

	if len(merged) == 0 {
		t.diags.errorf(&node, "AND gate produced no traceable paths")
		return nil
	}
	return t.capped(node, merged)
}

// traceOr concatenates every branch's paths: each one becomes an
// independently compiled automation downstream.
func (t *tracer) traceOr(node domain.Node, visited map[string]bool) []compiledPath {
	inputs := node.ConnectedInputs()
	if len(inputs) == 0 {
		t.diags.errorf(&node, "OR gate has no connected inputs")
		return nil
	}

	var merged []compiledPath
	for _, in := range inputs {
		merged = append(merged, t.trace(in.Upstream.NodeID, copyVisited(visited))...)
	}
	return t.capped(node, merged)
}

// traceNot inverts the condition nearest the gate on every path via the
// catalog's inverse table. A path with no conditions passes through with a
// warning: NOT of a bare trigger has nothing to negate.
func (t *tracer) traceNot(node domain.Node, visited map[string]bool) []compiledPath {
	upstream := node.FirstUpstream()
	if upstream == nil {
		t.diags.errorf(&node, "NOT gate has no upstream connection")
		return nil
	}

	paths := t.trace(upstream.NodeID, visited)
	for i := range paths {
		if len(paths[i].conditions) == 0 {
			t.diags.warnf(&node, "NOT gate applied to a path without conditions, ignored")
			continue
		}
		last := len(paths[i].conditions) - 1
		cond := paths[i].conditions[last]
		inv, ok := cond.Type.Inverse()
		if !ok {
			t.diags.warnf(&node, "condition type %q has no inverse, left unchanged", cond.Type)
			continue
		}
		paths[i].conditions[last] = domain.Condition{Type: inv, Config: cond.Config}
	}
	return paths
}

func (t *tracer) traceDelay(node domain.Node, visited map[string]bool) []compiledPath {
	upstream := node.FirstUpstream()
	if upstream == nil {
		t.diags.errorf(&node, "delay gate has no upstream connection")
		return nil
	}

	seconds := delaySeconds(node.Config)
	paths := t.trace(upstream.NodeID, visited)
	for i := range paths {
		paths[i].delaySeconds = maxDelay(paths[i].delaySeconds, seconds)
	}
	return paths
}

// traceThrough is the permissive fallback: follow the first wired input,
// contributing nothing of its own to the path.
func (t *tracer) traceThrough(node domain.Node, visited map[string]bool) []compiledPath {
	upstream := node.FirstUpstream()
	if upstream == nil {
		t.diags.errorf(&node, "node has no upstream connection")
		return nil
	}
	return t.trace(upstream.NodeID, visited)
}

// capped enforces the path-count guard on fan-out gates. Nested OR chains
// can multiply path counts, so exceeding the limit is a hard error that
// drops the branch instead of letting the compile blow up.
func (t *tracer) capped(node domain.Node, paths []compiledPath) []compiledPath {
	if t.maxPaths > 0 && len(paths) > t.maxPaths {
		t.diags.errorf(&node, "gate fans out into %d paths, exceeding the limit of %d", len(paths), t.maxPaths)
		return nil
	}
	return paths
}

func sameTrigger(a, b compiledPath) bool {
	if a.triggerNodeID != "" || b.triggerNodeID != "" {
		return a.triggerNodeID == b.triggerNodeID
	}
	return a.triggerType == b.triggerType
}

func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited))
	for k, v := range visited {
		out[k] = v
	}
	return out
}

// splitConfig pulls the catalog type string out of a node config, returning
// the remaining payload as a copy. Tolerant of missing or non-string type
// values: those come back as "" and are resolved (and reported) later.
func splitConfig(cfg map[string]any) (string, map[string]any) {
	out := copyConfig(cfg)
	kind, _ := out["type"].(string)
	delete(out, "type")
	if len(out) == 0 {
		out = nil
	}
	return kind, out
}

func delaySeconds(cfg map[string]any) int {
	var parsed struct {
		Seconds int `mapstructure:"seconds"`
	}
	if err := mapstructure.WeakDecode(cfg, &parsed); err != nil || parsed.Seconds <= 0 {
		return DefaultDelaySeconds
	}
	return parsed.Seconds
}
