package compiler

import (
	"fmt"
	"strings"
	"time"

	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/google/uuid"
)

// bucket collects every (action, path) pair that shares a structural
// signature. All paths in a bucket are identical, so any representative
// will do.
type bucket struct {
	path    compiledPath
	actions []string
}

// emit groups traced paths by signature and produces the final automation
// list plus the action-node→rule-IDs round-trip map.
func emit(flow domain.Flow, actionIDs []string, traced map[string][]compiledPath, diags *collector) ([]domain.Automation, map[string][]string) {
	buckets := make(map[string]*bucket)
	var order []string

	for _, actionID := range actionIDs {
		for _, path := range traced[actionID] {
			sig := path.signature()
			b, ok := buckets[sig]
			if !ok {
				b = &bucket{path: path}
				buckets[sig] = b
				order = append(order, sig)
			}
			if !contains(b.actions, actionID) {
				b.actions = append(b.actions, actionID)
			}
		}
	}

	multiple := len(order) > 1
	actionRules := make(map[string][]string)
	var automations []domain.Automation

	for i, sig := range order {
		b := buckets[sig]
		auto, ok := emitBucket(flow, b, i, multiple, diags)
		if !ok {
			continue
		}
		automations = append(automations, auto)
		for _, actionID := range b.actions {
			actionRules[actionID] = append(actionRules[actionID], auto.ID)
		}
	}
	return automations, actionRules
}

func emitBucket(flow domain.Flow, b *bucket, index int, multiple bool, diags *collector) (domain.Automation, bool) {
	path := b.path

	trigType, ok := domain.ParseTriggerType(path.triggerType)
	if !ok {
		node := triggerNode(flow, path)
		diags.errorf(node, "unknown trigger type %q", path.triggerType)
		return domain.Automation{}, false
	}

	actions, titles := resolveActions(flow, b.actions, diags)

	trigCfg := copyConfig(path.triggerConfig)
	if path.delaySeconds > 0 {
		if trigCfg == nil {
			trigCfg = make(map[string]any, 1)
		}
		trigCfg[domain.KeyDelaySeconds] = path.delaySeconds
	}

	auto := domain.Automation{
		ID:          uuid.NewString(),
		Name:        ruleName(flow.Name, trigType, titles, index, multiple),
		Description: ruleDescription(trigType, path, titles),
		Enabled:     true,
		Trigger:     domain.Trigger{Type: trigType, Config: trigCfg},
		Actions:     actions,
		Conditions:  normalizeConditions(path.conditions),
	}
	return auto, true
}

// resolveActions maps action node IDs to catalog actions. An unresolvable
// action type degrades to a notification rather than leaving the rule
// silently empty.
func resolveActions(flow domain.Flow, actionIDs []string, diags *collector) ([]domain.Action, []string) {
	actions := make([]domain.Action, 0, len(actionIDs))
	titles := make([]string, 0, len(actionIDs))

	for _, id := range actionIDs {
		node := flow.Nodes[id]
		kind, cfg := splitConfig(node.Config)

		actType, ok := domain.ParseActionType(kind)
		if !ok {
			diags.warnf(&node, "unknown action type %q, falling back to notification", kind)
			actType = domain.ActionNotify
		}

		actions = append(actions, domain.Action{Type: actType, Config: cfg})
		if node.Title != "" {
			titles = append(titles, node.Title)
		} else {
			titles = append(titles, actType.DisplayName())
		}
	}
	return actions, titles
}

func ruleName(flowName string, trig domain.TriggerType, actionTitles []string, index int, multiple bool) string {
	base := flowName
	if base == "" {
		base = "Automation"
	}
	suffix := fmt.Sprintf("%s → %s", trig.DisplayName(), strings.Join(actionTitles, ", "))
	if multiple {
		// Several rules came out of one flow; number them so the list
		// stays navigable.
		return fmt.Sprintf("%s %d: %s", base, index+1, suffix)
	}
	return fmt.Sprintf("%s: %s", base, suffix)
}

func ruleDescription(trig domain.TriggerType, path compiledPath, actionTitles []string) string {
	clauses := []string{"When: " + trig.DisplayName()}

	if len(path.conditions) > 0 {
		names := make([]string, len(path.conditions))
		for i, c := range path.conditions {
			names[i] = c.Type.DisplayName()
		}
		clauses = append(clauses, "If: "+strings.Join(names, " AND "))
	}

	if path.delaySeconds > 0 {
		d := time.Duration(path.delaySeconds) * time.Second
		clauses = append(clauses, fmt.Sprintf("After: %s delay", d))
	}

	clauses = append(clauses, "Then: "+strings.Join(actionTitles, ", "))
	return strings.Join(clauses, " · ")
}

// normalizeConditions turns an empty list into nil so "no conditions"
// serializes as an absent field, the shape the engine expects.
func normalizeConditions(conds []domain.Condition) []domain.Condition {
	if len(conds) == 0 {
		return nil
	}
	return append([]domain.Condition(nil), conds...)
}

func triggerNode(flow domain.Flow, path compiledPath) *domain.Node {
	if path.triggerNodeID == "" {
		return nil
	}
	if node, ok := flow.Nodes[path.triggerNodeID]; ok {
		return &node
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
