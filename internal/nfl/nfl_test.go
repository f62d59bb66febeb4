package nfl

import (
	"testing"
	"time"
)

func TestNormalizeTeam_Aliases(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"JAC":   "JAX",
		"jac":   "JAX",
		" OAK ": "LV",
		"WFT":   "WAS",
		"STL":   "LAR",
		"LA":    "LAR",
		"SD":    "LAC",
		"HAW":   "SEA",
		"BALTI": "BAL",
		"NYJ":   "NYJ",
	}
	for input, want := range cases {
		if got := NormalizeTeam(input); got != want {
			t.Fatalf("NormalizeTeam(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeTeam_UnknownPassesThroughUppercased(t *testing.T) {
	t.Parallel()

	if got := NormalizeTeam("xfl1"); got != "XFL1" {
		t.Fatalf("NormalizeTeam(xfl1) = %q, want XFL1", got)
	}
	if got := NormalizeTeam("  "); got != "" {
		t.Fatalf("NormalizeTeam(blank) = %q, want empty", got)
	}
}

func TestNormalizeTeam_Idempotent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"JAC", "OAK", "WFT", "NYJ", "UNKNOWN"} {
		once := NormalizeTeam(input)
		if twice := NormalizeTeam(once); twice != once {
			t.Fatalf("NormalizeTeam not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeStatus_KeywordBuckets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input any
		want  Status
	}{
		{"STATUS_FINAL", StatusFinal},
		{"Final", StatusFinal},
		{"Game Completed", StatusFinal},
		{"post", StatusFinal},
		{"In Progress", StatusInProgress},
		{"live", StatusInProgress},
		{"Halftime", StatusInProgress},
		{"Q3 4:15", StatusInProgress},
		{"2nd Quarter", StatusInProgress},
		{"Bye Week", StatusBye},
		{"Postponed", StatusPostponed},
		{"Canceled", StatusCanceled},
		{"Weather Delay", StatusDelayed},
		{"Scheduled", StatusPre},
		{"pregame", StatusPre},
		{"Not Started", StatusPre},
		{"", StatusUnknown},
		{"???", StatusUnknown},
		{nil, StatusUnknown},
		{true, StatusUnknown},
	}

	for _, tc := range cases {
		if got := NormalizeStatus(tc.input); got != tc.want {
			t.Fatalf("NormalizeStatus(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeStatus_BeatsObjectShapes(t *testing.T) {
	t.Parallel()

	status := NormalizeStatus(map[string]any{
		"type":   map[string]any{"state": "post", "description": "Final"},
		"detail": "Q4 0:00",
	})
	if status != StatusFinal {
		t.Fatalf("nested object status = %q, want final", status)
	}

	// First matching probe field wins even when later fields disagree.
	status = NormalizeStatus(map[string]any{
		"state":  "in",
		"detail": "Final",
	})
	if status != StatusInProgress {
		t.Fatalf("probe order status = %q, want in_progress", status)
	}
}

func TestNormalizeStatus_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []any{"Final", "live", "bye", "Scheduled", "postponed"}
	for _, input := range inputs {
		once := NormalizeStatus(input)
		if twice := NormalizeStatus(string(once)); twice != once {
			t.Fatalf("NormalizeStatus not idempotent for %v: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeTimestamp_SecondsVsMillis(t *testing.T) {
	t.Parallel()

	const seconds = int64(1726430400)
	if got := NormalizeTimestamp(seconds); got != seconds*1000 {
		t.Fatalf("epoch seconds scaled to %d, want %d", got, seconds*1000)
	}
	if got := NormalizeTimestamp(seconds * 1000); got != seconds*1000 {
		t.Fatalf("epoch millis passed through as %d, want %d", got, seconds*1000)
	}
	if got := NormalizeTimestamp("1726430400"); got != seconds*1000 {
		t.Fatalf("numeric string scaled to %d, want %d", got, seconds*1000)
	}
}

func TestNormalizeTimestamp_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	// Just below 1e12 reads as seconds, at 1e12 reads as milliseconds.
	if got := NormalizeTimestamp(float64(1e12 - 1)); got != int64(1e12-1)*1000 {
		t.Fatalf("below threshold = %d, want seconds semantics", got)
	}
	if got := NormalizeTimestamp(float64(1e12)); got != int64(1e12) {
		t.Fatalf("at threshold = %d, want millis semantics", got)
	}
}

func TestNormalizeTimestamp_DateStrings(t *testing.T) {
	t.Parallel()

	want := time.Date(2023, 9, 7, 20, 15, 0, 0, time.UTC).UnixMilli()
	if got := NormalizeTimestamp("2023-09-07T20:15:00Z"); got != want {
		t.Fatalf("RFC3339 parsed to %d, want %d", got, want)
	}
	if got := NormalizeTimestamp("2023-09-07 20:15:00"); got != want {
		t.Fatalf("space layout parsed to %d, want %d", got, want)
	}
	if got := NormalizeTimestamp("not a date"); got != 0 {
		t.Fatalf("garbage parsed to %d, want 0", got)
	}
	if got := NormalizeTimestamp(nil); got != 0 {
		t.Fatalf("nil parsed to %d, want 0", got)
	}
}

func TestNormalizeQuarter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input any
		want  string
	}{
		{1, "Q1"},
		{4, "Q4"},
		{5, "OT"},
		{float64(3), "Q3"},
		{"Q2", "Q2"},
		{"half", "HALFTIME"},
		{"HALFTIME", "HALFTIME"},
		{"1st", "Q1"},
		{"4TH QTR", "Q4"},
		{"Overtime", "OT"},
		{nil, ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeQuarter(tc.input); got != tc.want {
			t.Fatalf("NormalizeQuarter(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestStatusActivity(t *testing.T) {
	t.Parallel()

	cases := map[Status]Activity{
		StatusFinal:      ActivityFinished,
		StatusInProgress: ActivityLive,
		StatusPre:        ActivityUpcoming,
		StatusBye:        ActivityInactive,
		StatusPostponed:  ActivityInactive,
		StatusCanceled:   ActivityInactive,
		StatusDelayed:    ActivityInactive,
		StatusUnknown:    "",
	}
	for status, want := range cases {
		if got := StatusActivity(status); got != want {
			t.Fatalf("StatusActivity(%q) = %q, want %q", status, got, want)
		}
	}
}
