package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	StorageKey = "cigBreakStats"

	MinReminderMinutes     = 15
	MaxReminderMinutes     = 240
	DefaultReminderMinutes = 90
)

// Stats is the persisted record. The JSON names are the storage format.
type Stats struct {
	BreaksTaken     int `json:"breaksTaken"`
	YesCount        int `json:"yesCount"`
	NotYetCount     int `json:"notYetCount"`
	ReminderMinutes int `json:"reminderMinutes"`
}

func Defaults() Stats {
	return Stats{ReminderMinutes: DefaultReminderMinutes}
}

func ClampReminderMinutes(n int) int {
	if n < MinReminderMinutes {
		return MinReminderMinutes
	}
	if n > MaxReminderMinutes {
		return MaxReminderMinutes
	}
	return n
}

// Normalize enforces the record invariants: counters are never negative and
// the reminder cadence stays inside [15,240].
func (s Stats) Normalize() Stats {
	s.BreaksTaken = max(s.BreaksTaken, 0)
	s.YesCount = max(s.YesCount, 0)
	s.NotYetCount = max(s.NotYetCount, 0)
	s.ReminderMinutes = ClampReminderMinutes(s.ReminderMinutes)
	return s
}

func Encode(s Stats) ([]byte, error) {
	return json.Marshal(s.Normalize())
}

// Decode reads a stored record leniently. Anything that is not a JSON object
// yields Defaults; a field that is missing or not a non-negative number keeps
// its default. A zero cadence means unset.
func Decode(raw []byte) Stats {
	out := Defaults()
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return out
	}
	if n, ok := count(fields["breaksTaken"]); ok {
		out.BreaksTaken = n
	}
	if n, ok := count(fields["yesCount"]); ok {
		out.YesCount = n
	}
	if n, ok := count(fields["notYetCount"]); ok {
		out.NotYetCount = n
	}
	if n, ok := number(fields["reminderMinutes"]); ok && n != 0 {
		out.ReminderMinutes = ClampReminderMinutes(n)
	}
	return out
}

func count(v any) (int, bool) {
	n, ok := number(v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

func number(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}
