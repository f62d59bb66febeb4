package season

import (
	"fmt"
	"strings"
	"time"
)

// TeamSeason is one manager's finished (or in-progress) year: record,
// scoring totals, finishes, and the manually tracked money fields.
type TeamSeason struct {
	ID                int64
	Year              int
	NameID            string
	TeamName          string
	Wins              int
	Losses            int
	PointsFor         float64
	PointsAgainst     float64
	RegularSeasonRank *int
	PlayoffFinish     *int
	Dues              *float64
	Payout            *float64
	DuesChumpion      *float64
	HighGame          *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (t TeamSeason) Validate() error {
	if t.Year <= 0 {
		return fmt.Errorf("team season year is required")
	}
	if strings.TrimSpace(t.NameID) == "" {
		return fmt.Errorf("team season name id is required")
	}
	if t.Wins < 0 || t.Losses < 0 {
		return fmt.Errorf("team season record cannot be negative")
	}

	return nil
}

// Sync status values for LeagueSettings.SyncStatus.
const (
	SyncStatusPending = "pending"
	SyncStatusSyncing = "syncing"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// LeagueSettings binds a year to its Sleeper league id and sync bookkeeping.
type LeagueSettings struct {
	Year            int
	LeagueID        string
	DraftDate       string
	SyncStatus      string
	LastSynced      *time.Time
	LastSyncAttempt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (l LeagueSettings) Validate() error {
	if l.Year <= 0 {
		return fmt.Errorf("league settings year is required")
	}

	return nil
}

// ChampionshipCount is one row of the all-time championships leaderboard.
type ChampionshipCount struct {
	NameID   string
	FullName string
	Count    int
}

// LeagueStats aggregates league-wide history for the stats endpoint.
type LeagueStats struct {
	Championships []ChampionshipCount
	TotalSeasons  int
	TotalManagers int
}
