// Package domain holds the shared value types of the autograph compiler:
// the flow graph consumed from the editor (Node, Port, Flow), the compiled
// automations produced for the rule engine (Automation, Trigger, Condition,
// Action), the diagnostics model, and the closed trigger/condition/action
// catalog with its condition inverse table.
//
// Types here are plain values with no behavior beyond small accessors, so
// every other package can depend on them without pulling in compiler logic.
package domain
