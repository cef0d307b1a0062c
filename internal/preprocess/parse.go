package preprocess

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date-string layouts attempted after the epoch-seconds interpretation
// fails, in order. Covers the formats lending-protocol exports emit.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp interprets a raw cell as a point in time. Numeric values
// (and numeric strings) are epoch seconds, fractional part preserved; other
// strings are tried against known date layouts. Returns false when nothing
// applies — the caller treats the value as missing, never as an error.
func ParseTimestamp(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case float64:
		return epochToTime(v), true
	case int:
		return epochToTime(float64(v)), true
	case int64:
		return epochToTime(float64(v)), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return epochToTime(f), true
		}
		return time.Time{}, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToTime(f), true
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// ParseNumeric interprets a raw cell as a float64. Returns false when the
// value is not numeric and not a numeric string.
func ParseNumeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case bool:
		return 0, false
	default:
		return 0, false
	}
}

func epochToTime(seconds float64) time.Time {
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}

// stringify renders a raw cell as a string for identifier comparison.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
