package sleeper

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// FlexInt tolerates the mixed encodings Sleeper uses for ids: numbers,
// numeric strings, or null. Anything else decodes to zero.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var value string
		if err := sonic.Unmarshal(data, &value); err != nil {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(parsed)
		return nil
	}

	var number float64
	if err := sonic.Unmarshal(data, &number); err != nil {
		// Bracket slots may hold {"w": 1} style references before they
		// resolve. Treat them as unset.
		*f = 0
		return nil
	}
	*f = FlexInt(number)
	return nil
}

func (f FlexInt) Int() int { return int(f) }

func (f FlexInt) Int64() int64 { return int64(f) }

// State is the /state/nfl payload.
type State struct {
	Week         int    `json:"week"`
	DisplayWeek  int    `json:"display_week"`
	SeasonType   string `json:"season_type"`
	Season       string `json:"season"`
	LeagueSeason string `json:"league_season"`
}

// WeekNumber prefers display_week, which tracks what Sleeper shows users.
func (s State) WeekNumber() int {
	if s.DisplayWeek > 0 {
		return s.DisplayWeek
	}
	return s.Week
}

type League struct {
	LeagueID     string         `json:"league_id"`
	Name         string         `json:"name"`
	Season       string         `json:"season"`
	Status       string         `json:"status"`
	TotalRosters int            `json:"total_rosters"`
	Settings     LeagueSettings `json:"settings"`
	Metadata     map[string]any `json:"metadata"`
}

type LeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffTeams     int `json:"playoff_teams"`
	NumTeams         int `json:"num_teams"`
	Leg              int `json:"leg"`
}

// RegularSeasonWeeks derives the regular season length from the playoff
// start week.
func (s LeagueSettings) RegularSeasonWeeks() int {
	if s.PlayoffWeekStart <= 1 {
		return 0
	}
	return s.PlayoffWeekStart - 1
}

type Roster struct {
	RosterID int               `json:"roster_id"`
	OwnerID  string            `json:"owner_id"`
	Players  []string          `json:"players"`
	Starters []string          `json:"starters"`
	Metadata map[string]string `json:"metadata"`
	Settings RosterSettings    `json:"settings"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
}

// PointsFor combines the split integer/decimal encoding Sleeper uses.
func (s RosterSettings) PointsFor() float64 {
	return float64(s.Fpts) + float64(s.FptsDecimal)/100
}

func (s RosterSettings) PointsAgainst() float64 {
	return float64(s.FptsAgainst) + float64(s.FptsAgainstDecimal)/100
}

type User struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Metadata    map[string]string `json:"metadata"`
}

// Matchup is one roster's half of a weekly head-to-head pairing. Rosters
// sharing a MatchupID play each other; a null MatchupID means a bye.
type Matchup struct {
	RosterID       int                `json:"roster_id"`
	MatchupID      *int               `json:"matchup_id"`
	Points         float64            `json:"points"`
	Starters       []string           `json:"starters"`
	Players        []string           `json:"players"`
	StartersPoints []float64          `json:"starters_points"`
	PlayersPoints  map[string]float64 `json:"players_points"`
}

// BracketGame is one winners-bracket matchup. Unresolved slots decode to 0.
type BracketGame struct {
	Round    int     `json:"r"`
	MatchID  int     `json:"m"`
	Team1    FlexInt `json:"t1"`
	Team2    FlexInt `json:"t2"`
	Winner   FlexInt `json:"w"`
	Loser    FlexInt `json:"l"`
	Position FlexInt `json:"p"`
}

type Player struct {
	PlayerID         string   `json:"player_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	FullName         string   `json:"full_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
	Number           int      `json:"number"`
	ESPNID           FlexInt  `json:"espn_id"`
}

// DisplayName falls back to first/last when full_name is absent, which is
// common for team defenses.
func (p Player) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	return p.PlayerID
}

type ScheduleGame struct {
	GameID string `json:"game_id"`
	Week   int    `json:"week"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Home   string `json:"home"`
	Away   string `json:"away"`
}

type Draft struct {
	DraftID string `json:"draft_id"`
	Season  string `json:"season"`
	Status  string `json:"status"`
	Type    string `json:"type"`
}

type DraftPick struct {
	PlayerID string            `json:"player_id"`
	PickedBy string            `json:"picked_by"`
	RosterID FlexInt           `json:"roster_id"`
	Round    int               `json:"round"`
	PickNo   int               `json:"pick_no"`
	Metadata map[string]string `json:"metadata"`
}

// WeekStats is /stats/nfl/{type}/{season}/{week}: player id to raw stat map.
type WeekStats map[string]map[string]float64
