package domain

import "sort"

// The catalog is the closed vocabulary shared with the rule execution
// engine. Triggers, conditions and actions are identified by the "type"
// key inside a node's config map; everything else in the map is payload
// the engine interprets.

// TriggerType identifies the event that can start an automation.
type TriggerType string

const (
	TriggerNodeOnline      TriggerType = "node_online"
	TriggerNodeOffline     TriggerType = "node_offline"
	TriggerBatteryLow      TriggerType = "battery_low"
	TriggerSchedule        TriggerType = "schedule"
	TriggerEntersGeofence  TriggerType = "enters_geofence"
	TriggerExitsGeofence   TriggerType = "exits_geofence"
	TriggerMessageReceived TriggerType = "message_received"
)

var triggerNames = map[TriggerType]string{
	TriggerNodeOnline:      "Node comes online",
	TriggerNodeOffline:     "Node goes offline",
	TriggerBatteryLow:      "Battery low",
	TriggerSchedule:        "Schedule",
	TriggerEntersGeofence:  "Enters geofence",
	TriggerExitsGeofence:   "Exits geofence",
	TriggerMessageReceived: "Message received",
}

// ParseTriggerType resolves a raw type string against the trigger catalog.
func ParseTriggerType(s string) (TriggerType, bool) {
	t := TriggerType(s)
	_, ok := triggerNames[t]
	return t, ok
}

// DisplayName returns the human-readable name used in rule names and
// descriptions. Unknown values fall back to the raw string.
func (t TriggerType) DisplayName() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return string(t)
}

// ConditionType identifies a predicate that gates a triggered path.
type ConditionType string

const (
	ConditionTimeRange       ConditionType = "time_range"
	ConditionDayOfWeek       ConditionType = "day_of_week"
	ConditionBatteryAbove    ConditionType = "battery_above"
	ConditionBatteryBelow    ConditionType = "battery_below"
	ConditionNodeOnline      ConditionType = "node_online"
	ConditionNodeOffline     ConditionType = "node_offline"
	ConditionWithinGeofence  ConditionType = "within_geofence"
	ConditionOutsideGeofence ConditionType = "outside_geofence"
)

var conditionNames = map[ConditionType]string{
	ConditionTimeRange:       "Time of day",
	ConditionDayOfWeek:       "Day of week",
	ConditionBatteryAbove:    "Battery above",
	ConditionBatteryBelow:    "Battery below",
	ConditionNodeOnline:      "Node is online",
	ConditionNodeOffline:     "Node is offline",
	ConditionWithinGeofence:  "Within geofence",
	ConditionOutsideGeofence: "Outside geofence",
}

// conditionInverses is the fixed bidirectional inverse table used by NOT
// gates. Types absent from the table invert to themselves, which loses the
// negation; the tracer flags that case with a warning upstream.
var conditionInverses = map[ConditionType]ConditionType{
	ConditionBatteryAbove:    ConditionBatteryBelow,
	ConditionBatteryBelow:    ConditionBatteryAbove,
	ConditionNodeOnline:      ConditionNodeOffline,
	ConditionNodeOffline:     ConditionNodeOnline,
	ConditionWithinGeofence:  ConditionOutsideGeofence,
	ConditionOutsideGeofence: ConditionWithinGeofence,
}

// ParseConditionType resolves a raw type string against the condition catalog.
func ParseConditionType(s string) (ConditionType, bool) {
	c := ConditionType(s)
	_, ok := conditionNames[c]
	return c, ok
}

// DisplayName returns the human-readable name for descriptions.
func (c ConditionType) DisplayName() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return string(c)
}

// Inverse returns the semantic opposite of the condition type and whether
// a true inverse exists. Types without one return themselves.
func (c ConditionType) Inverse() (ConditionType, bool) {
	if inv, ok := conditionInverses[c]; ok {
		return inv, true
	}
	return c, false
}

// ActionType identifies what an automation does when it fires.
type ActionType string

const (
	ActionNotify      ActionType = "notify"
	ActionSetSwitch   ActionType = "set_switch"
	ActionSendMessage ActionType = "send_message"
	ActionWebhook     ActionType = "webhook"
	ActionRecordEvent ActionType = "record_event"
)

var actionNames = map[ActionType]string{
	ActionNotify:      "Send notification",
	ActionSetSwitch:   "Set switch",
	ActionSendMessage: "Send message",
	ActionWebhook:     "Call webhook",
	ActionRecordEvent: "Record event",
}

// ParseActionType resolves a raw type string against the action catalog.
func ParseActionType(s string) (ActionType, bool) {
	a := ActionType(s)
	_, ok := actionNames[a]
	return a, ok
}

// DisplayName returns the human-readable name for rule names.
func (a ActionType) DisplayName() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return string(a)
}

// Catalog lists the full vocabulary, keyed by role. Adapters expose it so
// editors can populate their palettes without hardcoding the enums.
func Catalog() map[string][]string {
	triggers := make([]string, 0, len(triggerNames))
	for t := range triggerNames {
		triggers = append(triggers, string(t))
	}
	conditions := make([]string, 0, len(conditionNames))
	for c := range conditionNames {
		conditions = append(conditions, string(c))
	}
	actions := make([]string, 0, len(actionNames))
	for a := range actionNames {
		actions = append(actions, string(a))
	}
	return map[string][]string{
		"triggers":   sorted(triggers),
		"conditions": sorted(conditions),
		"actions":    sorted(actions),
	}
}

func sorted(values []string) []string {
	sort.Strings(values)
	return values
}
