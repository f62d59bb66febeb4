package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/gridironhq/keeper-league/internal/nfl"
)

const (
	// gameCompletionBuffer is how long after kickoff a game is assumed
	// over when no other signal corroborates it.
	gameCompletionBuffer = 4*time.Hour + 30*time.Minute

	// minGameDuration is the shortest window after kickoff before a
	// signal-less game may be downgraded from live to finished.
	minGameDuration = 3 * time.Hour
)

var livePeriodRegex = regexp.MustCompile(`\b(q[1-4]|1st|2nd|3rd|4th|ot)\b`)

// StarterSignals carries everything known about one starter's game from the
// roster, scoreboard, and stat sources. Zero values mean the signal is
// absent.
type StarterSignals struct {
	PlayerID string
	Team     string
	Opponent string

	IsBye          bool
	Points         *float64
	StatsAvailable bool

	// Kickoff is epoch milliseconds; 0 means unknown.
	Kickoff int64

	ActivityKey           string
	GameStatus            string
	RawGameStatus         string
	ScoreboardStatus      string
	ScoreboardActivityKey string
	ScoreboardDetail      string
}

// ClassifyActivity resolves a starter's game state from whatever mix of
// signals is present. It is pure: the same signals and clock always produce
// the same answer. Bye wins over everything; finished requires corroboration
// beyond zero points, never zero-points-and-no-kickoff alone.
func ClassifyActivity(signals StarterSignals, now time.Time) nfl.Activity {
	nowMillis := now.UnixMilli()

	scoreboardStatus := normalizeSignal(signals.ScoreboardStatus)
	scoreboardKey := normalizeSignal(signals.ScoreboardActivityKey)
	rawStatus := joinSignals(
		signals.GameStatus,
		signals.RawGameStatus,
		signals.ScoreboardDetail,
		scoreboardStatus,
	)

	if signals.IsBye ||
		strings.Contains(rawStatus, "bye") ||
		strings.Contains(scoreboardStatus, "bye") ||
		strings.Contains(scoreboardKey, "bye") {
		return nfl.ActivityInactive
	}

	backendKey := activityFromKeywords(normalizeSignal(signals.ActivityKey))
	if backendKey == "" {
		backendKey = activityFromKeywords(scoreboardKey)
	}

	rawStatusKey := activityFromRawStatus(rawStatus)
	if rawStatusKey == "" {
		rawStatusKey = activityFromKeywords(scoreboardKey)
	}
	if rawStatusKey == nfl.ActivityInactive {
		return nfl.ActivityInactive
	}

	resolved := rawStatusKey
	if resolved == "" {
		resolved = backendKey
	}

	hasKickoff := signals.Kickoff > 0
	kickoffHasPassed := hasKickoff && signals.Kickoff <= nowMillis
	kickoffLikelyFinished := hasKickoff && nowMillis-signals.Kickoff >= gameCompletionBuffer.Milliseconds()

	hasLiveDetail := livePeriodRegex.MatchString(rawStatus) ||
		strings.Contains(rawStatus, "half") ||
		strings.Contains(rawStatus, "quarter")
	hasFinishedDetail := finishedText(rawStatus)

	scoreboardHasFinished := scoreboardKey == "finished" || finishedText(scoreboardStatus)
	scoreboardHasLive := scoreboardKey == "live" ||
		containsAny(scoreboardStatus, "progress", "live", "playing")
	scoreboardHasUpcoming := scoreboardKey == "upcoming" ||
		containsAny(scoreboardStatus, "pre", "sched", "upcoming")
	scoreboardIsInactive := scoreboardKey == "inactive" ||
		containsAny(scoreboardStatus, "postpon", "cancel", "delay")

	hasFinishedSignal := scoreboardHasFinished ||
		resolved == nfl.ActivityFinished ||
		backendKey == nfl.ActivityFinished ||
		hasFinishedDetail ||
		kickoffLikelyFinished

	// Zero points is what Sleeper reports for every starter before
	// kickoff, so only a non-zero total counts as evidence of play.
	pointsScored := signals.Points != nil && *signals.Points != 0

	hasStartedSignal := hasFinishedSignal ||
		resolved == nfl.ActivityLive ||
		backendKey == nfl.ActivityLive ||
		scoreboardHasLive ||
		hasLiveDetail ||
		signals.StatsAvailable ||
		kickoffHasPassed ||
		pointsScored

	hasUpcomingSignal := resolved == nfl.ActivityUpcoming ||
		backendKey == nfl.ActivityUpcoming ||
		scoreboardHasUpcoming ||
		(!hasStartedSignal && hasKickoff && signals.Kickoff > nowMillis)

	if resolved == "" && hasFinishedSignal {
		resolved = nfl.ActivityFinished
	}
	if resolved == "" && hasStartedSignal {
		resolved = nfl.ActivityLive
	}
	if resolved == "" && hasUpcomingSignal {
		resolved = nfl.ActivityUpcoming
	}
	if resolved == "" && scoreboardIsInactive && !hasStartedSignal && !hasFinishedSignal {
		resolved = nfl.ActivityInactive
	}
	if resolved == "" && signals.Points != nil {
		switch {
		case hasFinishedSignal:
			resolved = nfl.ActivityFinished
		case hasStartedSignal:
			resolved = nfl.ActivityLive
		default:
			resolved = nfl.ActivityUpcoming
		}
	}
	if resolved == "" && (signals.PlayerID == "" || (signals.Team == "" && signals.Opponent == "")) {
		resolved = nfl.ActivityInactive
	}
	if resolved == "" {
		resolved = nfl.ActivityUpcoming
	}

	// A live verdict reached without any live indicator gets downgraded
	// once the game window has clearly elapsed.
	if resolved == nfl.ActivityLive {
		hasLiveIndicator := hasLiveDetail || scoreboardHasLive || scoreboardKey == "live"
		if !hasLiveIndicator {
			switch {
			case kickoffLikelyFinished:
				resolved = nfl.ActivityFinished
			case !hasKickoff && pointsScored:
				resolved = nfl.ActivityFinished
			case hasKickoff && kickoffHasPassed && !scoreboardHasUpcoming:
				if nowMillis-signals.Kickoff >= minGameDuration.Milliseconds() {
					resolved = nfl.ActivityFinished
				}
			}
		}
	}

	return resolved
}

func activityFromKeywords(key string) nfl.Activity {
	if key == "" {
		return ""
	}
	switch nfl.Activity(key) {
	case nfl.ActivityLive, nfl.ActivityUpcoming, nfl.ActivityFinished, nfl.ActivityInactive:
		return nfl.Activity(key)
	}
	switch {
	case containsAny(key, "live", "progress", "play"):
		return nfl.ActivityLive
	case containsAny(key, "final", "finish", "complete", "closed"):
		return nfl.ActivityFinished
	case containsAny(key, "inactive", "bye"):
		return nfl.ActivityInactive
	case containsAny(key, "pre", "sched", "upcoming", "not_started"):
		return nfl.ActivityUpcoming
	default:
		return ""
	}
}

func activityFromRawStatus(rawStatus string) nfl.Activity {
	if rawStatus == "" {
		return ""
	}
	switch {
	case finishedText(rawStatus):
		return nfl.ActivityFinished
	case containsAny(rawStatus, "in_progress", "live", "playing") ||
		livePeriodRegex.MatchString(rawStatus) ||
		containsAny(rawStatus, "half", "quarter"):
		return nfl.ActivityLive
	case containsAny(rawStatus, "pre", "sched", "upcoming", "not_started"):
		return nfl.ActivityUpcoming
	case strings.Contains(rawStatus, "bye"):
		return nfl.ActivityInactive
	default:
		return ""
	}
}

func normalizeSignal(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func joinSignals(values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := normalizeSignal(value); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// finishedText matches completed-game wording. "post" alone counts (ESPN's
// postgame state) but "postponed" must not.
func finishedText(text string) bool {
	if containsAny(text, "final", "complete", "finished", "closed") {
		return true
	}
	return strings.Contains(text, "post") && !strings.Contains(text, "postpon")
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
