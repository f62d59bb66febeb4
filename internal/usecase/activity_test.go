package usecase

import (
	"testing"
	"time"

	"github.com/gridironhq/keeper-league/internal/nfl"
)

var classifierNow = time.Date(2025, time.September, 14, 18, 0, 0, 0, time.UTC)

func ptrFloat(v float64) *float64 { return &v }

func TestClassifyActivity_ByeBeatsEverything(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID:              "4046",
		Team:                  "KC",
		IsBye:                 true,
		Points:                ptrFloat(24.7),
		StatsAvailable:        true,
		ScoreboardStatus:      "in_progress",
		ScoreboardActivityKey: "live",
		Kickoff:               classifierNow.Add(-time.Hour).UnixMilli(),
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityInactive {
		t.Fatalf("expected inactive on bye, got=%q", got)
	}
}

func TestClassifyActivity_FinalScoreboardStatus(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID:              "6794",
		Team:                  "NYJ",
		Opponent:              "BUF",
		Points:                ptrFloat(15.3),
		ScoreboardStatus:      "final",
		ScoreboardActivityKey: "finished",
		ScoreboardDetail:      "Q4 0:00",
		Kickoff:               classifierNow.Add(-5 * time.Hour).UnixMilli(),
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityFinished {
		t.Fatalf("expected finished, got=%q", got)
	}
}

func TestClassifyActivity_ZeroPointsAloneNeverFinished(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID: "8138",
		Team:     "DET",
		Opponent: "GB",
		Points:   ptrFloat(0),
	}

	got := ClassifyActivity(signals, classifierNow)
	if got == nfl.ActivityFinished {
		t.Fatalf("zero points without kickoff or status must not read as finished")
	}
}

func TestClassifyActivity_LiveDetailStaysLive(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID:         "4046",
		Team:             "KC",
		Opponent:         "LAC",
		Points:           ptrFloat(11.2),
		GameStatus:       "Q3 8:24",
		ScoreboardStatus: "in_progress",
		Kickoff:          classifierNow.Add(-2 * time.Hour).UnixMilli(),
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityLive {
		t.Fatalf("expected live, got=%q", got)
	}
}

func TestClassifyActivity_LiveDowngradesAfterCompletionBuffer(t *testing.T) {
	t.Parallel()

	// Kickoff long past, points on the board, but no live indicator from
	// any source. The buffer window decides the game is over.
	signals := StarterSignals{
		PlayerID: "4046",
		Team:     "KC",
		Opponent: "LAC",
		Points:   ptrFloat(22.5),
		Kickoff:  classifierNow.Add(-5 * time.Hour).UnixMilli(),
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityFinished {
		t.Fatalf("expected finished after completion buffer, got=%q", got)
	}
}

func TestClassifyActivity_LiveDowngradeNoKickoffWithPoints(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID:       "2133",
		Team:           "HOU",
		Opponent:       "IND",
		Points:         ptrFloat(9.8),
		StatsAvailable: true,
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityFinished {
		t.Fatalf("expected finished for no-kickoff points without live indicator, got=%q", got)
	}
}

func TestClassifyActivity_RecentKickoffWithoutLiveIndicatorStaysLive(t *testing.T) {
	t.Parallel()

	// Inside the three hour minimum game window the live verdict holds
	// even without a live detail string.
	signals := StarterSignals{
		PlayerID: "4046",
		Team:     "KC",
		Opponent: "LAC",
		Points:   ptrFloat(6.1),
		Kickoff:  classifierNow.Add(-90 * time.Minute).UnixMilli(),
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityLive {
		t.Fatalf("expected live inside minimum game window, got=%q", got)
	}
}

func TestClassifyActivity_FutureKickoffUpcoming(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID: "9509",
		Team:     "PHI",
		Opponent: "DAL",
		Kickoff:  classifierNow.Add(3 * time.Hour).UnixMilli(),
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityUpcoming {
		t.Fatalf("expected upcoming, got=%q", got)
	}
}

func TestClassifyActivity_PostponedIsInactiveNotFinished(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID:              "1466",
		Team:                  "CIN",
		Opponent:              "BAL",
		ScoreboardStatus:      "postponed",
		ScoreboardActivityKey: "inactive",
	}

	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityInactive {
		t.Fatalf("expected inactive for postponed game, got=%q", got)
	}
}

func TestClassifyActivity_NoGameContextInactive(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{PlayerID: ""}
	if got := ClassifyActivity(signals, classifierNow); got != nfl.ActivityInactive {
		t.Fatalf("expected inactive without player or game context, got=%q", got)
	}
}

func TestClassifyActivity_PureGivenFixedClock(t *testing.T) {
	t.Parallel()

	signals := StarterSignals{
		PlayerID:         "4046",
		Team:             "KC",
		Opponent:         "LAC",
		Points:           ptrFloat(11.2),
		GameStatus:       "Q2 0:42",
		ScoreboardStatus: "in_progress",
		Kickoff:          classifierNow.Add(-time.Hour).UnixMilli(),
	}

	first := ClassifyActivity(signals, classifierNow)
	for i := 0; i < 5; i++ {
		if got := ClassifyActivity(signals, classifierNow); got != first {
			t.Fatalf("expected stable classification, got %q then %q", first, got)
		}
	}
}
