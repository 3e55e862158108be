package compiler

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// compiledPath is the per-branch intermediate result of tracing backward
// from an action node to a trigger. It is created during tracing, consumed
// by the emitter, and never persisted.
type compiledPath struct {
	triggerType   string
	triggerConfig map[string]any
	triggerNodeID string

	// conditions is ordered earliest-first: index 0 is the condition
	// nearest the trigger, the last element is the one nearest whatever
	// consumes the path. NOT gates rely on that to invert the right one.
	conditions []domain.Condition

	// delaySeconds is max-merged when delays stack or branches fold.
	delaySeconds int
}

func (p compiledPath) clone() compiledPath {
	out := p
	out.conditions = append([]domain.Condition(nil), p.conditions...)
	return out
}

// signature is the canonical grouping key: trigger type, canonical trigger
// config, sorted canonical condition list, and delay. Two paths with equal
// signatures are structurally identical and merge into one automation.
func (p compiledPath) signature() string {
	conds := make([]string, len(p.conditions))
	for i, c := range p.conditions {
		conds[i] = string(c.Type) + "=" + canonical(c.Config)
	}
	sort.Strings(conds)

	var sb strings.Builder
	sb.WriteString(p.triggerType)
	sb.WriteByte('|')
	sb.WriteString(canonical(p.triggerConfig))
	sb.WriteByte('|')
	sb.WriteString(strings.Join(conds, ";"))
	sb.WriteByte('|')
	fmt.Fprintf(&sb, "%d", p.delaySeconds)
	return sb.String()
}

// canonical serializes a config value with sorted map keys at every level,
// so semantically identical maps produce identical signatures regardless
// of insertion order.
func canonical(v any) string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = jsonString(k) + ":" + canonical(val[k])
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = canonical(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return jsonString(val)
	}
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Config maps come from editors and may hold odd values; fall back
		// to fmt so the signature stays total.
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(b)
}

func copyConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}
	return out
}

func maxDelay(a, b int) int {
	if a > b {
		return a
	}
	return b
}
