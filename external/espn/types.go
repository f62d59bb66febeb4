package espn

import "strings"

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
	Week   struct {
		Number int `json:"number"`
	} `json:"week"`
	Season struct {
		Year int `json:"year"`
		Type int `json:"type"`
	} `json:"season"`
}

type scoreboardEvent struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	Name         string             `json:"name"`
	Competitions []eventCompetition `json:"competitions"`
}

type eventCompetition struct {
	Status      competitionStatus `json:"status"`
	Competitors []competitor      `json:"competitors"`
	Venue       struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
}

type competitionStatus struct {
	Type struct {
		Name      string `json:"name"`
		State     string `json:"state"`
		Detail    string `json:"detail"`
		Completed bool   `json:"completed"`
	} `json:"type"`
	Period       int    `json:"period"`
	DisplayClock string `json:"displayClock"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		Abbreviation string `json:"abbreviation"`
		DisplayName  string `json:"displayName"`
	} `json:"team"`
}

type summaryResponse struct {
	Boxscore Boxscore `json:"boxscore"`
}

// Boxscore is the player-stats portion of an ESPN game summary.
type Boxscore struct {
	Players []TeamPlayers `json:"players"`
}

type TeamPlayers struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Statistics []StatCategory `json:"statistics"`
}

// StatCategory is one boxscore table ("passing", "rushing", ...). Keys and
// Labels run parallel to each athlete's Stats slice.
type StatCategory struct {
	Name     string         `json:"name"`
	Labels   []string       `json:"labels"`
	Keys     []string       `json:"keys"`
	Athletes []AthleteEntry `json:"athletes"`
}

type AthleteEntry struct {
	Athlete Athlete  `json:"athlete"`
	Stats   []string `json:"stats"`
}

type Athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
	Jersey      string `json:"jersey"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	Headshot struct {
		Href string `json:"href"`
	} `json:"headshot"`
}

// Game is one scoreboard event from the perspective of a single team.
type Game struct {
	GameID       string `json:"game_id"`
	StartTime    int64  `json:"start_time"`
	Status       string `json:"status"`
	StatusDetail string `json:"status_detail,omitempty"`
	Period       int    `json:"period,omitempty"`
	Clock        string `json:"clock,omitempty"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	HomeScore    int    `json:"home_score"`
	AwayScore    int    `json:"away_score"`
	Venue        string `json:"venue,omitempty"`
	Opponent     string `json:"opponent,omitempty"`
	IsHome       bool   `json:"is_home"`
}

// PlayerStats is one player's accumulated boxscore output for a game.
// Stats is keyed by category name, then by the category's key names, so
// Stats["rushing"]["rushingYards"] holds the raw display value.
type PlayerStats struct {
	ESPNID   int64                        `json:"espn_id"`
	Name     string                       `json:"name"`
	Position string                       `json:"position,omitempty"`
	Jersey   string                       `json:"jersey,omitempty"`
	Headshot string                       `json:"headshot,omitempty"`
	Stats    map[string]map[string]string `json:"stats"`

	PassingLine   string `json:"passing_line,omitempty"`
	RushingLine   string `json:"rushing_line,omitempty"`
	ReceivingLine string `json:"receiving_line,omitempty"`
	KickingLine   string `json:"kicking_line,omitempty"`
	DefensiveLine string `json:"defensive_line,omitempty"`
}

// StatLine joins the per-category display lines into one summary string.
func (p *PlayerStats) StatLine() string {
	parts := make([]string, 0, 5)
	for _, line := range []string{
		p.PassingLine,
		p.RushingLine,
		p.ReceivingLine,
		p.KickingLine,
		p.DefensiveLine,
	} {
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " • ")
}

// HasStats reports whether any boxscore category recorded output for the
// player. Used as a corroborating signal that their game actually ran.
func (p *PlayerStats) HasStats() bool {
	for _, category := range p.Stats {
		if len(category) > 0 {
			return true
		}
	}
	return false
}
