package scoreboard

import (
	"strconv"
	"strings"

	"github.com/gridironhq/keeper-league/internal/nfl"
)

// GameMeta is one game's normalized scoreboard state. Both participating
// teams map to the same *GameMeta instance, so a later score correction is
// visible through either key.
type GameMeta struct {
	Status        nfl.Status   `json:"status"`
	ActivityKey   nfl.Activity `json:"activity_key"`
	RawStatusText string       `json:"raw_status_text,omitempty"`
	Detail        string       `json:"detail,omitempty"`
	StartTime     int64        `json:"start_time,omitempty"`
	LastUpdated   int64        `json:"last_updated,omitempty"`
	GameID        string       `json:"game_id,omitempty"`
	HomeTeam      string       `json:"home_team,omitempty"`
	AwayTeam      string       `json:"away_team,omitempty"`
	HomeScore     *float64     `json:"home_score,omitempty"`
	AwayScore     *float64     `json:"away_score,omitempty"`
	Quarter       string       `json:"quarter,omitempty"`
	Clock         string       `json:"clock,omitempty"`
	IsFinal       bool         `json:"is_final"`
	IsInProgress  bool         `json:"is_in_progress"`
	IsPre         bool         `json:"is_pre"`
	IsDelayed     bool         `json:"is_delayed"`
}

func buildGameMeta(game map[string]any, homeTeam, awayTeam string) *GameMeta {
	competition := firstCompetition(game)
	status := anyOf(game, "status")
	compStatus := anyOf(competition, "status")

	statusCandidates := []nfl.Status{
		nfl.NormalizeStatus(status),
		nfl.NormalizeStatus(fieldOf(status, "type")),
		nfl.NormalizeStatus(fieldOf(status, "state")),
		nfl.NormalizeStatus(fieldOf(status, "phase")),
		nfl.NormalizeStatus(fieldOf(status, "display_status")),
		nfl.NormalizeStatus(fieldOf(status, "displayStatus")),
		nfl.NormalizeStatus(fieldOf(status, "description")),
		nfl.NormalizeStatus(fieldOf(status, "detail")),
		nfl.NormalizeStatus(fieldOf(status, "shortDetail")),
		nfl.NormalizeStatus(anyOf(game, "status_text", "statusText")),
		nfl.NormalizeStatus(anyOf(game, "status_detail", "statusDetail")),
		nfl.NormalizeStatus(anyOf(game, "game_status", "gameStatus")),
		nfl.NormalizeStatus(anyOf(game, "state")),
		nfl.NormalizeStatus(anyOf(game, "phase")),
		nfl.NormalizeStatus(compStatus),
		nfl.NormalizeStatus(fieldOf(compStatus, "type")),
		nfl.NormalizeStatus(fieldOf(compStatus, "state")),
		nfl.NormalizeStatus(fieldOf(compStatus, "phase")),
		nfl.NormalizeStatus(fieldOf(compStatus, "description")),
		nfl.NormalizeStatus(fieldOf(compStatus, "detail")),
		nfl.NormalizeStatus(fieldOf(compStatus, "shortDetail")),
	}

	normalizedStatus := nfl.StatusUnknown
	for _, candidate := range statusCandidates {
		if candidate != nfl.StatusUnknown {
			normalizedStatus = candidate
			break
		}
	}

	rawStatusText := extractRawStatusText(game, competition)

	startTime := nfl.NormalizeTimestamp(firstNonNil(
		anyOf(game, "start_time", "startTime", "kickoff", "scheduled", "commence_time"),
		combinedDateTime(game),
		anyOf(game, "date"),
		anyOf(competition, "start_time", "startTime", "date"),
	))

	updated := nfl.NormalizeTimestamp(firstNonNil(
		anyOf(game, "updated", "last_updated", "lastUpdate"),
		fieldOf(status, "updated"),
		fieldOf(status, "lastUpdated"),
		fieldOf(compStatus, "updated"),
		fieldOf(compStatus, "lastUpdated"),
	))

	quarter := nfl.NormalizeQuarter(firstNonNil(
		anyOf(game, "quarter", "period", "current_period", "game_period"),
		fieldOf(status, "period"),
		fieldOf(status, "quarter"),
		fieldOf(compStatus, "period"),
		fieldOf(compStatus, "quarter"),
		anyOf(competition, "period"),
	))

	clock := extractClock(game)
	if clock == "" {
		clock = extractClock(competition)
	}

	detail := ""
	switch {
	case quarter != "" && clock != "":
		detail = quarter + " " + clock
	case quarter != "":
		detail = quarter
	case clock != "":
		detail = clock
	}
	if detail == "" && rawStatusText != "" {
		detail = rawStatusText
	}
	if detail == "" && normalizedStatus == nfl.StatusFinal {
		detail = "FINAL"
	}

	meta := &GameMeta{
		Status:        normalizedStatus,
		ActivityKey:   nfl.StatusActivity(normalizedStatus),
		RawStatusText: rawStatusText,
		Detail:        detail,
		StartTime:     startTime,
		LastUpdated:   updated,
		GameID:        stringOf(firstNonNil(anyOf(game, "id", "game_id", "gameId"), anyOf(competition, "id"))),
		HomeTeam:      homeTeam,
		AwayTeam:      awayTeam,
		HomeScore: parseScore(anyOf(game,
			"home_score", "homeScore", "home_points", "home_points_total")),
		AwayScore: parseScore(anyOf(game,
			"away_score", "awayScore", "away_points", "away_points_total")),
		Quarter: quarter,
		Clock:   clock,
	}
	if meta.HomeScore == nil {
		meta.HomeScore = parseScore(firstNonNil(
			fieldOf(anyOf(game, "score"), "home"),
			fieldOf(anyOf(game, "home"), "score"),
			fieldOf(anyOf(game, "scoring"), "home"),
		))
	}
	if meta.AwayScore == nil {
		meta.AwayScore = parseScore(firstNonNil(
			fieldOf(anyOf(game, "score"), "away"),
			fieldOf(anyOf(game, "away"), "score"),
			fieldOf(anyOf(game, "scoring"), "away"),
		))
	}

	checkStatuses := dedupeStatuses(
		normalizedStatus,
		nfl.NormalizeStatus(fieldOf(status, "type")),
		nfl.NormalizeStatus(fieldOf(status, "state")),
		nfl.NormalizeStatus(compStatus),
		nfl.NormalizeStatus(fieldOf(compStatus, "type")),
		nfl.NormalizeStatus(fieldOf(compStatus, "state")),
	)

	if meta.Status == nfl.StatusUnknown && len(checkStatuses) > 0 {
		meta.Status = checkStatuses[0]
		meta.ActivityKey = nfl.StatusActivity(meta.Status)
	}

	statusStates := lowerStrings(
		fieldOf(status, "state"),
		fieldOf(fieldOf(status, "type"), "state"),
		fieldOf(compStatus, "state"),
		fieldOf(fieldOf(compStatus, "type"), "state"),
	)

	completed := boolTrue(fieldOf(status, "completed")) ||
		boolTrue(fieldOf(fieldOf(status, "type"), "completed")) ||
		boolTrue(fieldOf(compStatus, "completed")) ||
		boolTrue(fieldOf(fieldOf(compStatus, "type"), "completed"))

	meta.IsFinal = containsStatus(checkStatuses, nfl.StatusFinal) ||
		boolTrue(anyOf(game, "final")) ||
		boolTrue(anyOf(game, "completed")) ||
		stringOf(fieldOf(status, "type")) == "final" ||
		stringOf(fieldOf(compStatus, "type")) == "final" ||
		containsString(statusStates, "post") ||
		containsString(statusStates, "postgame") ||
		completed

	meta.IsInProgress = containsStatus(checkStatuses, nfl.StatusInProgress) ||
		containsString(statusStates, "in") ||
		containsString(statusStates, "inprogress")

	meta.IsPre = containsStatus(checkStatuses, nfl.StatusPre) ||
		containsString(statusStates, "pre")

	meta.IsDelayed = containsStatus(checkStatuses, nfl.StatusDelayed) ||
		containsStatus(checkStatuses, nfl.StatusPostponed) ||
		containsStatus(checkStatuses, nfl.StatusCanceled) ||
		containsString(statusStates, "delay")

	applyCompetitorDetails(meta, competition)

	if meta.IsFinal && meta.Detail == "" {
		meta.Detail = "FINAL"
	}

	return meta
}

// applyCompetitorDetails fills team codes and scores from the competitors
// array when the flat game fields were missing. Role says home/away; when a
// competitor carries no role, position in the array decides.
func applyCompetitorDetails(meta *GameMeta, competition map[string]any) {
	competitors := sliceOf(competition, "competitors")
	for _, raw := range competitors {
		comp, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		role := strings.ToLower(stringOf(comp["homeAway"]))
		teamAbbr := competitorTeam(comp)
		score := competitorScore(comp)

		switch {
		case role == "home":
			if meta.HomeTeam == "" && teamAbbr != "" {
				meta.HomeTeam = teamAbbr
			}
			if score != nil {
				meta.HomeScore = score
			}
		case role == "away":
			if meta.AwayTeam == "" && teamAbbr != "" {
				meta.AwayTeam = teamAbbr
			}
			if score != nil {
				meta.AwayScore = score
			}
		case teamAbbr != "":
			if meta.HomeTeam == "" {
				meta.HomeTeam = teamAbbr
				if score != nil {
					meta.HomeScore = score
				}
			} else if meta.AwayTeam == "" {
				meta.AwayTeam = teamAbbr
				if score != nil {
					meta.AwayScore = score
				}
			}
		}
	}
}

func competitorTeam(comp map[string]any) string {
	team := anyOf(comp, "team")
	return nfl.NormalizeTeam(stringOf(firstNonNil(
		fieldOf(team, "abbreviation"),
		fieldOf(team, "shortDisplayName"),
		fieldOf(team, "displayName"),
		fieldOf(team, "name"),
		fieldOf(team, "location"),
	)))
}

func competitorScore(comp map[string]any) *float64 {
	if score := parseScore(comp["score"]); score != nil {
		return score
	}

	// Fall back to the last linescore entry.
	lines := sliceOf(comp, "linescores")
	if len(lines) == 0 {
		return nil
	}
	last, ok := lines[len(lines)-1].(map[string]any)
	if !ok {
		return nil
	}
	return parseScore(last["value"])
}

func extractRawStatusText(game, competition map[string]any) string {
	parts := make([]string, 0, 8)
	push := func(value any) {
		if text := strings.TrimSpace(stringOf(value)); text != "" {
			parts = append(parts, text)
		}
	}

	for _, key := range []string{
		"status_text", "statusText", "status_detail", "statusDetail",
		"display_status", "displayStatus", "short_detail", "shortDetail",
		"detail", "summary", "game_status", "gameStatus", "state", "phase",
	} {
		push(game[key])
	}

	switch status := game["status"].(type) {
	case string:
		push(status)
	case map[string]any:
		for _, key := range []string{
			"description", "detail", "shortDetail", "display",
			"displayStatus", "display_status", "state", "type", "phase",
		} {
			push(status[key])
		}
	}

	if competition != nil {
		push(competition["status_text"])
		push(competition["statusText"])
		if status, ok := competition["status"].(map[string]any); ok {
			for _, key := range []string{
				"description", "detail", "shortDetail", "display",
				"displayStatus", "display_status", "state", "type", "phase",
			} {
				push(status[key])
			}
		}
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func extractClock(game map[string]any) string {
	candidates := []any{
		game["clock"],
		game["game_clock"],
		game["display_clock"],
		game["displayClock"],
		fieldOf(anyOf(game, "status"), "clock"),
		fieldOf(anyOf(game, "status"), "displayClock"),
	}
	for _, candidate := range candidates {
		if text, ok := candidate.(string); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return strings.ToUpper(trimmed)
			}
		}
	}
	return ""
}

func combinedDateTime(game map[string]any) any {
	date := strings.TrimSpace(stringOf(game["game_date"]))
	clock := strings.TrimSpace(stringOf(game["game_time"]))
	if date == "" || clock == "" {
		return nil
	}
	return date + " " + clock
}

func firstCompetition(game map[string]any) map[string]any {
	competitions, ok := game["competitions"].([]any)
	if !ok || len(competitions) == 0 {
		return nil
	}
	first, _ := competitions[0].(map[string]any)
	return first
}

func parseScore(value any) *float64 {
	switch typed := value.(type) {
	case nil:
		return nil
	case float64:
		return &typed
	case int:
		v := float64(typed)
		return &v
	case int64:
		v := float64(typed)
		return &v
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return nil
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return &v
	default:
		return nil
	}
}

func anyOf(src map[string]any, keys ...string) any {
	if src == nil {
		return nil
	}
	for _, key := range keys {
		if value, ok := src[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func fieldOf(src any, key string) any {
	typed, ok := src.(map[string]any)
	if !ok {
		return nil
	}
	value, ok := typed[key]
	if !ok {
		return nil
	}
	return value
}

func sliceOf(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	values, _ := src[key].([]any)
	return values
}

func stringOf(value any) string {
	text, _ := value.(string)
	return strings.TrimSpace(text)
}

func firstNonNil(values ...any) any {
	for _, value := range values {
		if value == nil {
			continue
		}
		if text, ok := value.(string); ok && strings.TrimSpace(text) == "" {
			continue
		}
		return value
	}
	return nil
}

func boolTrue(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

func dedupeStatuses(values ...nfl.Status) []nfl.Status {
	out := make([]nfl.Status, 0, len(values))
	seen := make(map[nfl.Status]struct{}, len(values))
	for _, value := range values {
		if value == nfl.StatusUnknown {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func containsStatus(values []nfl.Status, target nfl.Status) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func lowerStrings(values ...any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if text, ok := value.(string); ok {
			if trimmed := strings.ToLower(strings.TrimSpace(text)); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
