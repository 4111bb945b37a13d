package item

import (
	"encoding/json"
	"time"
)

// ReminderValue is a "remind me N minutes before due" delta. A negative
// delta means no reminder is set and projects to nothing.
type ReminderValue struct {
	RemindDelta int
}

// NewReminderValue returns a reminder firing delta minutes before due.
func NewReminderValue(delta int) ReminderValue {
	return ReminderValue{RemindDelta: delta}
}

func (v ReminderValue) Data() map[string]interface{} {
	if v.RemindDelta < 0 {
		return nil
	}
	return map[string]interface{}{"remind_delta": v.RemindDelta}
}

func (v ReminderValue) Equal(other Value) bool {
	o, ok := other.(ReminderValue)
	return ok && v.RemindDelta == o.RemindDelta
}

func decodeReminderValue(raw json.RawMessage) (Value, bool) {
	var env struct {
		RemindDelta *int `json:"remind_delta"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.RemindDelta == nil {
		return nil, false
	}
	return ReminderValue{RemindDelta: *env.RemindDelta}, true
}

// Recurrence names understood by the projection. The config payload shape
// depends on the name: weekly repeats carry a weekday set, monthly repeats
// carry a repeat-on rule (e.g. "day_of_week" or "day_of_month").
const (
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// RecurrenceValue describes how a reminder repeats: a rule name, a step
// (every N weeks/months), a rule-specific config, and an optional end date.
type RecurrenceValue struct {
	Name     string
	Step     int
	Days     []string
	RepeatOn string
	Until    time.Time
}

// Data projects the recurrence descriptor. The config key branches on the
// rule name: weekly emits the weekday set, monthly emits the repeat-on
// rule, anything else emits no config.
func (v RecurrenceValue) Data() map[string]interface{} {
	if v.Name == "" {
		return nil
	}
	data := map[string]interface{}{
		"name": v.Name,
		"step": v.Step,
	}
	switch v.Name {
	case RecurrenceWeekly:
		days := make([]interface{}, 0, len(v.Days))
		for _, d := range v.Days {
			days = append(days, d)
		}
		data["config"] = map[string]interface{}{"days": days}
	case RecurrenceMonthly:
		data["config"] = map[string]interface{}{"repeat_on": v.RepeatOn}
	}
	if !v.Until.IsZero() {
		data["until"] = v.Until.UTC().Format(dateLayout)
	}
	return data
}

func (v RecurrenceValue) Equal(other Value) bool {
	o, ok := other.(RecurrenceValue)
	if !ok {
		return false
	}
	if v.Name != o.Name || v.Step != o.Step || v.RepeatOn != o.RepeatOn || !v.Until.Equal(o.Until) {
		return false
	}
	if len(v.Days) != len(o.Days) {
		return false
	}
	for i := range v.Days {
		if v.Days[i] != o.Days[i] {
			return false
		}
	}
	return true
}

func decodeRecurrenceValue(raw json.RawMessage) (Value, bool) {
	var env struct {
		Name   string `json:"name"`
		Step   int    `json:"step"`
		Config struct {
			Days     []string `json:"days"`
			RepeatOn string   `json:"repeat_on"`
		} `json:"config"`
		Until string `json:"until"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Name == "" {
		return nil, false
	}

	value := RecurrenceValue{
		Name:     env.Name,
		Step:     env.Step,
		Days:     env.Config.Days,
		RepeatOn: env.Config.RepeatOn,
	}
	if env.Until != "" {
		if t, err := time.Parse(dateLayout, env.Until); err == nil {
			value.Until = t.UTC()
		}
	}
	return value, true
}
