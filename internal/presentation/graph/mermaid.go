package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart (graph LR) for a flow.
// Node shapes follow role semantics:
// - Trigger: ((Circle))
// - Condition: [/Parallelogram/]
// - Logic gate: {{Hexagon}} labelled with the gate kind
// - Action: [[Subroutine]]
// Edges are drawn in trigger→action direction, the way users read flows,
// even though the wiring is stored on the consuming node's input ports.
func GenerateMermaid(flow domain.Flow) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make([]string, 0, len(flow.Nodes))
	for id := range flow.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := flow.Nodes[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeTrigger:
			opener, closer = "((", "))"
		case domain.NodeTypeCondition:
			opener, closer = "[/", "/]"
		case domain.NodeTypeLogicGate:
			opener, closer = "{{", "}}"
		case domain.NodeTypeAction:
			opener, closer = "[[", "]]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, nodeLabel(node), closer))

		for _, in := range node.Inputs {
			if in.Upstream == nil {
				continue
			}
			safeFrom := sanitizeMermaidID(in.Upstream.NodeID)
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeFrom, safeID))
		}
	}

	return sb.String()
}

func nodeLabel(node domain.Node) string {
	if node.Title != "" {
		return escapeMermaidLabel(node.Title)
	}
	if node.Type == domain.NodeTypeLogicGate {
		return strings.ToUpper(string(node.Gate))
	}
	if kind, ok := node.Config["type"].(string); ok && kind != "" {
		return escapeMermaidLabel(kind)
	}
	return escapeMermaidLabel(node.ID)
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
