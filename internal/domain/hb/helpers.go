package hb

import (
	"strconv"
	"strings"
	"time"
)

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true"), true
	default:
		return false, false
	}
}

func anyToStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func isListValue(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	default:
		return false
	}
}

// ParseTime parses the timestamp formats that occur in snapshot records:
// RFC3339 strings, bare dates, and unix epochs in seconds or milliseconds.
func ParseTime(value any) (time.Time, bool) {
	toSeconds := func(v int64) int64 {
		if v > 1_000_000_000_000 || v < -1_000_000_000_000 {
			return v / 1000
		}
		return v
	}

	switch t := value.(type) {
	case float64:
		return time.Unix(toSeconds(int64(t)), 0).UTC(), true
	case int:
		return time.Unix(toSeconds(int64(t)), 0).UTC(), true
	case int64:
		return time.Unix(toSeconds(t), 0).UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(toSeconds(i), 0).UTC(), true
		}
		if tm, err := time.Parse(time.RFC3339, s); err == nil {
			return tm.UTC(), true
		}
		if tm, err := time.Parse("2006-01-02", s); err == nil {
			return tm.UTC(), true
		}
	}

	return time.Time{}, false
}

// FormatDate renders any parseable timestamp as yyyy-mm-dd; unparseable
// input comes back unchanged so metadata stays inspectable.
func FormatDate(value any) string {
	if tm, ok := ParseTime(value); ok {
		return tm.Format("2006-01-02")
	}
	return asString(value)
}
