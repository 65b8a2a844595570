package mail

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args is the loosely typed argument mapping of one operation call.
// Values may be missing, of the wrong type, or extra; accessors coerce
// and fall back to defaults instead of rejecting the call.
type Args map[string]any

// ArgumentError reports a parameter problem that prevents script synthesis.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Param, e.Reason)
}

func missing(param string) error {
	return &ArgumentError{Param: param, Reason: "is required"}
}

// String returns the trimmed string value of key, or def when absent or empty.
// Numbers and booleans are formatted rather than dropped.
func (a Args) String(key, def string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = formatNumber(t)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

// RequireString is String without a default: an absent or blank value is an error.
func (a Args) RequireString(key string) (string, error) {
	s := a.String(key, "")
	if s == "" {
		return "", missing(key)
	}
	return s, nil
}

// Int returns key as an int. JSON numbers arrive as float64 and numeric
// strings are parsed; anything else (or a negative value) yields def.
func (a Args) Int(key string, def int) int {
	var n int
	switch t := a[key].(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return def
		}
		n = int(t)
	case int:
		n = t
	case int64:
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return def
		}
		n = parsed
	default:
		return def
	}
	if n < 0 {
		return def
	}
	return n
}

// Bool returns key as a bool, accepting "true"/"false" strings.
func (a Args) Bool(key string, def bool) bool {
	switch t := a[key].(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// List splits a comma-separated string (or a JSON array of strings) into
// trimmed, non-empty entries.
func (a Args) List(key string) []string {
	var raw []string
	switch t := a[key].(type) {
	case string:
		raw = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, strings.Split(s, ",")...)
			}
		}
	case []string:
		raw = t
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
