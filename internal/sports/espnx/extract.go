// Package espnx holds shared helpers for walking ESPN's scoreboard JSON,
// which arrives as untyped map[string]interface{} documents.
package espnx

import (
	"strconv"
	"strings"
	"time"
)

// ExtractString safely extracts a string from a map.
func ExtractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// ExtractMap safely extracts a nested map.
func ExtractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if nested, ok := v.(map[string]interface{}); ok {
			return nested
		}
	}
	return map[string]interface{}{}
}

// ExtractArray safely extracts a nested array.
func ExtractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arr, ok := v.([]interface{}); ok {
			return arr
		}
	}
	return nil
}

// ExtractInt safely extracts an int, coercing from JSON number or string.
func ExtractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return ParseInt(v)
	}
	return 0
}

// ParseInt coerces an interface{} to int.
func ParseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}

// ParseFloat coerces an interface{} to a float pointer, nil when the value
// is absent or not numeric.
func ParseFloat(v interface{}) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// StringOrNumber extracts a value that upstream delivers sometimes as a
// string and sometimes as a JSON number (e.g. golf's holes-through field).
func StringOrNumber(m map[string]interface{}, key, def string) string {
	switch v := m[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return def
}

// ParseEventDate parses ESPN's event date format ("2025-11-11T23:30Z").
func ParseEventDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t, nil
	}
	// Some feeds omit seconds.
	return time.Parse("2006-01-02T15:04Z07:00", dateStr)
}

// DaysUntil returns the whole calendar days from today until t.
// Negative for past dates, zero for today.
func DaysUntil(t, today time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := today.Date()
	eventDay := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(eventDay.Sub(nowDay).Hours() / 24)
}

// WithinWindow reports whether an event dated t falls in [today, today+days],
// bounds inclusive.
func WithinWindow(t, today time.Time, days int) bool {
	diff := DaysUntil(t, today)
	return diff >= 0 && diff <= days
}

// KeepableState reports whether a competition state is live or scheduled.
func KeepableState(state string) bool {
	return state == "in" || state == "pre"
}

// Competitor returns the competitor entry with the given homeAway side.
func Competitor(competitors []interface{}, side string) map[string]interface{} {
	for _, ci := range competitors {
		c, ok := ci.(map[string]interface{})
		if !ok {
			continue
		}
		if ExtractString(c, "homeAway") == side {
			return c
		}
	}
	return nil
}

// AbbreviationOr derives a fallback abbreviation from a display name when
// the upstream abbreviation is absent: first three letters, uppercased.
func AbbreviationOr(abbr, displayName string) string {
	if abbr != "" {
		return abbr
	}
	if len(displayName) >= 3 {
		return strings.ToUpper(displayName[:3])
	}
	return strings.ToUpper(displayName)
}

// RecordSummary pulls the first record summary ("10-2") off a competitor.
func RecordSummary(competitor map[string]interface{}) string {
	records := ExtractArray(competitor, "records")
	if len(records) == 0 {
		return ""
	}
	first, ok := records[0].(map[string]interface{})
	if !ok {
		return ""
	}
	return ExtractString(first, "summary")
}

// FirstBroadcast pulls the first broadcast name off a competition, or the
// given default when none is listed.
func FirstBroadcast(competition map[string]interface{}, def string) string {
	broadcasts := ExtractArray(competition, "broadcasts")
	if len(broadcasts) == 0 {
		return def
	}
	first, ok := broadcasts[0].(map[string]interface{})
	if !ok {
		return def
	}
	names := ExtractArray(first, "names")
	if len(names) == 0 {
		return def
	}
	if name, ok := names[0].(string); ok && name != "" {
		return name
	}
	return def
}

// Score coerces a competitor score to string form, "0" when absent.
func Score(competitor map[string]interface{}) string {
	switch v := competitor["score"].(type) {
	case string:
		if v == "" {
			return "0"
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "0"
	}
}
