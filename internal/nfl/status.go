package nfl

import (
	"fmt"
	"regexp"
	"strings"
)

// Status is the normalized game status vocabulary shared by every upstream
// source. StatusUnknown means the input carried no recognizable signal; the
// caller decides the fallback.
type Status string

const (
	StatusUnknown    Status = ""
	StatusFinal      Status = "final"
	StatusInProgress Status = "in_progress"
	StatusPre        Status = "pre"
	StatusBye        Status = "bye"
	StatusPostponed  Status = "postponed"
	StatusCanceled   Status = "canceled"
	StatusDelayed    Status = "delayed"
)

// Activity is the per-starter classification consumed by league views.
type Activity string

const (
	ActivityUpcoming Activity = "upcoming"
	ActivityLive     Activity = "live"
	ActivityFinished Activity = "finished"
	ActivityInactive Activity = "inactive"
)

var periodTextRegex = regexp.MustCompile(`\b(q[1-4]|1st|2nd|3rd|4th)\b`)

// Word-bounded so "not started" does not read as overtime.
var overtimeTextRegex = regexp.MustCompile(`\bot\b`)

// statusObjectFields is the probe order for object-shaped status payloads.
// First field that normalizes to a known status wins.
var statusObjectFields = []string{
	"status",
	"state",
	"type",
	"phase",
	"description",
	"detail",
	"shortDetail",
	"short_detail",
	"display",
	"displayStatus",
	"display_status",
}

// NormalizeStatus classifies a raw status value of any shape into the
// Status vocabulary. Strings are bucketed by keyword; maps are probed over
// well-known fields recursively. It never panics and returns StatusUnknown
// for anything it cannot place.
func NormalizeStatus(value any) Status {
	switch typed := value.(type) {
	case nil:
		return StatusUnknown
	case string:
		return normalizeStatusText(typed)
	case Status:
		return normalizeStatusText(string(typed))
	case map[string]any:
		for _, field := range statusObjectFields {
			if normalized := NormalizeStatus(typed[field]); normalized != StatusUnknown {
				return normalized
			}
		}
		return StatusUnknown
	case fmt.Stringer:
		return normalizeStatusText(typed.String())
	case bool:
		return StatusUnknown
	default:
		return normalizeStatusText(fmt.Sprintf("%v", typed))
	}
}

func normalizeStatusText(raw string) Status {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return StatusUnknown
	}

	switch {
	case strings.Contains(text, "bye"):
		return StatusBye
	// The disruption buckets match before "final": "postponed" contains
	// "post" and must not read as a completed game.
	case strings.Contains(text, "postpon"):
		return StatusPostponed
	case strings.Contains(text, "cancel"):
		return StatusCanceled
	case strings.Contains(text, "delay"):
		return StatusDelayed
	case strings.Contains(text, "final"),
		strings.Contains(text, "complete"),
		strings.Contains(text, "ended"),
		strings.Contains(text, "post"),
		text == "finished":
		return StatusFinal
	case strings.Contains(text, "progress"),
		text == "in",
		strings.Contains(text, "live"),
		strings.Contains(text, "playing"),
		strings.Contains(text, "half"),
		strings.Contains(text, "quarter"),
		overtimeTextRegex.MatchString(text),
		periodTextRegex.MatchString(text):
		return StatusInProgress
	case strings.Contains(text, "sched"),
		strings.Contains(text, "pre"),
		strings.Contains(text, "upcoming"),
		strings.Contains(text, "not started"),
		strings.Contains(text, "preview"),
		strings.Contains(text, "pending"):
		return StatusPre
	default:
		return StatusUnknown
	}
}

// StatusActivity converts a normalized status into the player activity it
// implies. Bye, postponed, canceled and delayed all read as inactive: no
// fantasy points are in flight for that starter.
func StatusActivity(s Status) Activity {
	switch s {
	case StatusFinal:
		return ActivityFinished
	case StatusInProgress:
		return ActivityLive
	case StatusPre:
		return ActivityUpcoming
	case StatusBye, StatusPostponed, StatusCanceled, StatusDelayed:
		return ActivityInactive
	default:
		return ""
	}
}

// NormalizeQuarter maps period representations (numbers, "1st", "Q3",
// "HALF") onto the display set Q1..Q4, OT, HALFTIME. Unrecognized non-empty
// text passes through uppercased.
func NormalizeQuarter(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case int:
		return quarterFromNumber(float64(typed))
	case int64:
		return quarterFromNumber(float64(typed))
	case float64:
		return quarterFromNumber(typed)
	case string:
		return quarterFromText(typed)
	default:
		return quarterFromText(fmt.Sprintf("%v", typed))
	}
}

func quarterFromNumber(v float64) string {
	switch {
	case v >= 1 && v <= 4 && v == float64(int(v)):
		return fmt.Sprintf("Q%d", int(v))
	case v == 5:
		return "OT"
	default:
		return quarterFromText(fmt.Sprintf("%v", v))
	}
}

func quarterFromText(raw string) string {
	text := strings.ToUpper(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}

	switch {
	case text == "HALF" || text == "HALFTIME":
		return "HALFTIME"
	case strings.HasPrefix(text, "Q") && len(text) == 2:
		return text
	case strings.Contains(text, "OT"):
		return "OT"
	case strings.Contains(text, "1ST"):
		return "Q1"
	case strings.Contains(text, "2ND"):
		return "Q2"
	case strings.Contains(text, "3RD"):
		return "Q3"
	case strings.Contains(text, "4TH"):
		return "Q4"
	default:
		return text
	}
}
