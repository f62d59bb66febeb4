package espn

import (
	"strconv"
	"strings"

	"github.com/gridironhq/keeper-league/internal/nfl"
)

// ParseGames flattens scoreboard events into a per-team lookup. Each game
// appears twice, once per team, with Opponent and IsHome filled from that
// team's perspective.
func ParseGames(events []scoreboardEvent) map[string]Game {
	gamesByTeam := make(map[string]Game, len(events)*2)

	for _, event := range events {
		if len(event.Competitions) == 0 {
			continue
		}
		competition := event.Competitions[0]

		var home, away *competitor
		for i := range competition.Competitors {
			switch strings.ToLower(competition.Competitors[i].HomeAway) {
			case "home":
				home = &competition.Competitors[i]
			case "away":
				away = &competition.Competitors[i]
			}
		}
		if home == nil || away == nil {
			continue
		}

		game := Game{
			GameID:       event.ID,
			StartTime:    nfl.NormalizeTimestamp(event.Date),
			Status:       competition.Status.Type.Name,
			StatusDetail: competition.Status.Type.Detail,
			Period:       competition.Status.Period,
			Clock:        competition.Status.DisplayClock,
			HomeTeam:     nfl.NormalizeTeam(home.Team.Abbreviation),
			AwayTeam:     nfl.NormalizeTeam(away.Team.Abbreviation),
			HomeScore:    parseIntScore(home.Score),
			AwayScore:    parseIntScore(away.Score),
			Venue:        competition.Venue.FullName,
		}

		if game.HomeTeam != "" {
			entry := game
			entry.Opponent = game.AwayTeam
			entry.IsHome = true
			gamesByTeam[game.HomeTeam] = entry
		}
		if game.AwayTeam != "" {
			entry := game
			entry.Opponent = game.HomeTeam
			entry.IsHome = false
			gamesByTeam[game.AwayTeam] = entry
		}
	}

	return gamesByTeam
}

// ParsePlayerStats extracts per-player stats from a boxscore. Values land
// under their category key names, and the well-known categories also get a
// display line.
func ParsePlayerStats(boxscore Boxscore) map[int64]*PlayerStats {
	playersByID := make(map[int64]*PlayerStats, 64)

	for _, teamStats := range boxscore.Players {
		for _, category := range teamStats.Statistics {
			for _, entry := range category.Athletes {
				espnID, err := strconv.ParseInt(strings.TrimSpace(entry.Athlete.ID), 10, 64)
				if err != nil || espnID <= 0 {
					continue
				}

				player, ok := playersByID[espnID]
				if !ok {
					name := entry.Athlete.DisplayName
					if name == "" {
						name = entry.Athlete.FullName
					}
					player = &PlayerStats{
						ESPNID:   espnID,
						Name:     name,
						Position: entry.Athlete.Position.Abbreviation,
						Jersey:   entry.Athlete.Jersey,
						Headshot: entry.Athlete.Headshot.Href,
						Stats:    make(map[string]map[string]string, 4),
					}
					playersByID[espnID] = player
				}

				categoryStats := make(map[string]string, len(entry.Stats))
				for i, value := range entry.Stats {
					if i < len(category.Keys) && category.Keys[i] != "" {
						categoryStats[category.Keys[i]] = value
					}
				}
				player.Stats[category.Name] = categoryStats

				applyDisplayLine(player, category.Name, entry.Stats)
			}
		}
	}

	return playersByID
}

// applyDisplayLine builds the human-readable line for the category. The stat
// column order is fixed per category on the boxscore endpoint.
func applyDisplayLine(player *PlayerStats, category string, stats []string) {
	if len(stats) == 0 {
		return
	}

	switch category {
	case "passing":
		// C/ATT column, e.g. "25/34".
		player.PassingLine = stats[0]
	case "rushing":
		if len(stats) < 2 {
			return
		}
		line := stats[0] + " CAR, " + stats[1] + " YDS"
		if len(stats) > 3 && countingStat(stats[3]) {
			line += ", " + stats[3] + " TD"
		}
		player.RushingLine = line
	case "receiving":
		if len(stats) < 2 {
			return
		}
		line := stats[0] + " REC, " + stats[1] + " YDS"
		if len(stats) > 3 && countingStat(stats[3]) {
			line += ", " + stats[3] + " TD"
		}
		player.ReceivingLine = line
	case "kicking":
		// FG, PCT, LONG, XP, PTS column order.
		if len(stats) < 5 {
			return
		}
		player.KickingLine = stats[0] + " FG, " + stats[3] + " XP, " + stats[4] + " PTS"
	case "defensive":
		// TOT, SOLO, SACKS, TFL, PD, QB HTS, TD column order.
		if len(stats) < 3 {
			return
		}
		player.DefensiveLine = stats[0] + " TOT, " + stats[2] + " SACKS"
	}
}

func countingStat(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != "0"
}

func parseIntScore(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
