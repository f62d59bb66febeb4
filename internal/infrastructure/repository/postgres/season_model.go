package postgres

import (
	"time"

	"github.com/gridironhq/keeper-league/internal/domain/season"
)

type teamSeasonTableModel struct {
	ID                int64      `db:"id"`
	Year              int        `db:"year"`
	NameID            string     `db:"name_id"`
	TeamName          string     `db:"team_name"`
	Wins              int        `db:"wins"`
	Losses            int        `db:"losses"`
	PointsFor         float64    `db:"points_for"`
	PointsAgainst     float64    `db:"points_against"`
	RegularSeasonRank *int       `db:"regular_season_rank"`
	PlayoffFinish     *int       `db:"playoff_finish"`
	Dues              *float64   `db:"dues"`
	Payout            *float64   `db:"payout"`
	DuesChumpion      *float64   `db:"dues_chumpion"`
	HighGame          *float64   `db:"high_game"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func (m teamSeasonTableModel) toDomain() season.TeamSeason {
	return season.TeamSeason{
		ID:                m.ID,
		Year:              m.Year,
		NameID:            m.NameID,
		TeamName:          m.TeamName,
		Wins:              m.Wins,
		Losses:            m.Losses,
		PointsFor:         m.PointsFor,
		PointsAgainst:     m.PointsAgainst,
		RegularSeasonRank: m.RegularSeasonRank,
		PlayoffFinish:     m.PlayoffFinish,
		Dues:              m.Dues,
		Payout:            m.Payout,
		DuesChumpion:      m.DuesChumpion,
		HighGame:          m.HighGame,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type leagueSettingsTableModel struct {
	Year            int        `db:"year"`
	LeagueID        string     `db:"league_id"`
	DraftDate       string     `db:"draft_date"`
	SyncStatus      string     `db:"sync_status"`
	LastSynced      *time.Time `db:"last_synced"`
	LastSyncAttempt *time.Time `db:"last_sync_attempt"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (m leagueSettingsTableModel) toDomain() season.LeagueSettings {
	return season.LeagueSettings{
		Year:            m.Year,
		LeagueID:        m.LeagueID,
		DraftDate:       m.DraftDate,
		SyncStatus:      m.SyncStatus,
		LastSynced:      m.LastSynced,
		LastSyncAttempt: m.LastSyncAttempt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
