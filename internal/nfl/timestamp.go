package nfl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timestamps below this magnitude are epoch seconds, at or above it epoch
// milliseconds. 1e12 ms is September 2001; no NFL kickoff this service cares
// about sits below it.
const epochMillisThreshold = 1e12

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// NormalizeTimestamp coerces numbers, numeric strings and date strings into
// epoch milliseconds. Epoch-second inputs are scaled by 1000. Unparseable or
// empty input yields 0; the function never panics.
func NormalizeTimestamp(value any) int64 {
	switch typed := value.(type) {
	case nil:
		return 0
	case int:
		return scaleEpoch(float64(typed))
	case int64:
		return scaleEpoch(float64(typed))
	case float64:
		return scaleEpoch(typed)
	case float32:
		return scaleEpoch(float64(typed))
	case time.Time:
		if typed.IsZero() {
			return 0
		}
		return typed.UnixMilli()
	case string:
		return timestampFromText(typed)
	case fmt.Stringer:
		return timestampFromText(typed.String())
	default:
		return 0
	}
}

func scaleEpoch(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v < epochMillisThreshold {
		return int64(v * 1000)
	}
	return int64(v)
}

func timestampFromText(raw string) int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}

	if numeric, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return scaleEpoch(numeric)
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UnixMilli()
		}
	}
	return 0
}
