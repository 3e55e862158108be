// Package autograph compiles user-built flow graphs into executable
// automation rules, and decompiles existing rules back into editable,
// laid-out graphs.
//
// A flow is a directed graph of typed nodes: triggers (events), conditions
// (predicates), logic gates (AND/OR/NOT/DELAY) and actions. The compiler
// traces backward from every action node to each reachable trigger,
// forking on OR gates, folding on AND gates, inverting conditions through
// NOT gates and max-merging delays, then groups structurally identical
// paths into single automations with generated names and descriptions.
//
// The graph is only ever compiled, never executed here; evaluation of the
// resulting rules belongs to the host's rule engine.
//
// Quick start:
//
//	b := dsl.New("Porch light")
//	b.Trigger("t", "node_online", map[string]any{"node": "porch"})
//	b.Action("a", "notify", map[string]any{"message": "online"}).From("t")
//
//	result := autograph.New().Compile(b.Build())
//	if result.IsSuccess() {
//		// hand result.Automations to the rule engine
//	}
package autograph
