package httpapi

import (
	"context"
	"time"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/domain/trade"
	"github.com/gridironhq/keeper-league/internal/usecase"
)

type createManagerRequest struct {
	NameID          string `json:"name_id" validate:"required,max=60"`
	FullName        string `json:"full_name" validate:"required,max=120"`
	SleeperUsername string `json:"sleeper_username" validate:"max=120"`
	SleeperUserID   string `json:"sleeper_user_id" validate:"max=60"`
	Email           string `json:"email" validate:"omitempty,email"`
	Active          bool   `json:"active"`
}

type updateManagerRequest struct {
	FullName        *string `json:"full_name" validate:"omitempty,max=120"`
	SleeperUsername *string `json:"sleeper_username" validate:"omitempty,max=120"`
	SleeperUserID   *string `json:"sleeper_user_id" validate:"omitempty,max=60"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Active          *bool   `json:"active"`
}

type sleeperIDRequest struct {
	NameID        string `json:"name_id" validate:"required,max=60"`
	SleeperUserID string `json:"sleeper_user_id" validate:"required,max=60"`
	Season        int    `json:"season" validate:"required,gt=0"`
}

type saveSeasonRequest struct {
	Year              int      `json:"year" validate:"required,gt=0"`
	NameID            string   `json:"name_id" validate:"required,max=60"`
	TeamName          string   `json:"team_name" validate:"max=120"`
	Wins              int      `json:"wins" validate:"gte=0"`
	Losses            int      `json:"losses" validate:"gte=0"`
	PointsFor         float64  `json:"points_for"`
	PointsAgainst     float64  `json:"points_against"`
	RegularSeasonRank *int     `json:"regular_season_rank"`
	PlayoffFinish     *int     `json:"playoff_finish"`
	Dues              *float64 `json:"dues"`
	Payout            *float64 `json:"payout"`
	DuesChumpion      *float64 `json:"dues_chumpion"`
	HighGame          *float64 `json:"high_game"`
}

type saveLeagueSettingsRequest struct {
	LeagueID  string `json:"league_id" validate:"max=60"`
	DraftDate string `json:"draft_date" validate:"max=40"`
}

type tradeRequest struct {
	Year         int     `json:"year" validate:"required,gt=0"`
	FromRosterID int     `json:"from_roster_id" validate:"required,gt=0"`
	ToRosterID   int     `json:"to_roster_id" validate:"required,gt=0"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description" validate:"max=500"`
}

type saveKeepersRequest struct {
	Keepers []keeperRecord `json:"keepers" validate:"dive"`
}

type keeperRecord struct {
	PlayerID          string   `json:"player_id" validate:"required,max=60"`
	PlayerName        string   `json:"player_name" validate:"max=120"`
	Position          string   `json:"position" validate:"max=10"`
	Team              string   `json:"team" validate:"max=10"`
	TradeFromRosterID *int     `json:"trade_from_roster_id"`
	TradeAmount       *float64 `json:"trade_amount"`
	TradeNote         string   `json:"trade_note" validate:"max=500"`
}

type setTradeLockRequest struct {
	Locked bool `json:"locked"`
}

type managerDTO struct {
	ID              int64  `json:"id"`
	NameID          string `json:"name_id"`
	FullName        string `json:"full_name"`
	SleeperUsername string `json:"sleeper_username,omitempty"`
	SleeperUserID   string `json:"sleeper_user_id,omitempty"`
	Email           string `json:"email,omitempty"`
	Active          bool   `json:"active"`
	CreatedAtUTC    string `json:"created_at_utc,omitempty"`
	UpdatedAtUTC    string `json:"updated_at_utc,omitempty"`
}

type sleeperIDDTO struct {
	ID            int64  `json:"id"`
	NameID        string `json:"name_id"`
	SleeperUserID string `json:"sleeper_user_id"`
	Season        int    `json:"season"`
}

type teamSeasonDTO struct {
	ID                int64    `json:"id"`
	Year              int      `json:"year"`
	NameID            string   `json:"name_id"`
	TeamName          string   `json:"team_name,omitempty"`
	Wins              int      `json:"wins"`
	Losses            int      `json:"losses"`
	PointsFor         float64  `json:"points_for"`
	PointsAgainst     float64  `json:"points_against"`
	RegularSeasonRank *int     `json:"regular_season_rank,omitempty"`
	PlayoffFinish     *int     `json:"playoff_finish,omitempty"`
	Dues              *float64 `json:"dues,omitempty"`
	Payout            *float64 `json:"payout,omitempty"`
	DuesChumpion      *float64 `json:"dues_chumpion,omitempty"`
	HighGame          *float64 `json:"high_game,omitempty"`
}

type leagueSettingsDTO struct {
	Year            int    `json:"year"`
	LeagueID        string `json:"league_id,omitempty"`
	DraftDate       string `json:"draft_date,omitempty"`
	SyncStatus      string `json:"sync_status"`
	LastSyncedUTC   string `json:"last_synced_utc,omitempty"`
	LastAttemptUTC  string `json:"last_sync_attempt_utc,omitempty"`
}

type championshipCountDTO struct {
	NameID   string `json:"name_id"`
	FullName string `json:"full_name"`
	Count    int    `json:"count"`
}

type leagueStatsDTO struct {
	Championships []championshipCountDTO `json:"championships"`
	TotalSeasons  int                    `json:"total_seasons"`
	TotalManagers int                    `json:"total_managers"`
}

type tradeDTO struct {
	ID           int64   `json:"id"`
	Year         int     `json:"year"`
	FromRosterID int     `json:"from_roster_id"`
	ToRosterID   int     `json:"to_roster_id"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description,omitempty"`
}

type keeperDTO struct {
	ID                int64    `json:"id"`
	Year              int      `json:"year"`
	RosterID          int      `json:"roster_id"`
	PlayerID          string   `json:"player_id"`
	PlayerName        string   `json:"player_name,omitempty"`
	Position          string   `json:"position,omitempty"`
	Team              string   `json:"team,omitempty"`
	TradeFromRosterID *int     `json:"trade_from_roster_id,omitempty"`
	TradeAmount       *float64 `json:"trade_amount,omitempty"`
	TradeNote         string   `json:"trade_note,omitempty"`
}

type keeperBoardDTO struct {
	Year         int         `json:"year"`
	Keepers      []keeperDTO `json:"keepers"`
	Locked       bool        `json:"locked"`
	LockedAtUTC  string      `json:"locked_at_utc,omitempty"`
	UpdatedAtUTC string      `json:"updated_at_utc,omitempty"`
}

type tradeLockDTO struct {
	SeasonYear  int    `json:"season_year"`
	Locked      bool   `json:"locked"`
	LockedAtUTC string `json:"locked_at_utc,omitempty"`
}

func managerToDTO(ctx context.Context, v manager.Manager) managerDTO {
	ctx, span := startSpan(ctx, "httpapi.managerToDTO")
	defer span.End()

	dto := managerDTO{
		ID:              v.ID,
		NameID:          v.NameID,
		FullName:        v.FullName,
		SleeperUsername: v.SleeperUsername,
		SleeperUserID:   v.SleeperUserID,
		Email:           v.Email,
		Active:          v.Active,
	}
	if !v.CreatedAt.IsZero() {
		dto.CreatedAtUTC = v.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !v.UpdatedAt.IsZero() {
		dto.UpdatedAtUTC = v.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func sleeperIDToDTO(v manager.SleeperIDMapping) sleeperIDDTO {
	return sleeperIDDTO{
		ID:            v.ID,
		NameID:        v.NameID,
		SleeperUserID: v.SleeperUserID,
		Season:        v.Season,
	}
}

func teamSeasonToDTO(ctx context.Context, v season.TeamSeason) teamSeasonDTO {
	ctx, span := startSpan(ctx, "httpapi.teamSeasonToDTO")
	defer span.End()

	return teamSeasonDTO{
		ID:                v.ID,
		Year:              v.Year,
		NameID:            v.NameID,
		TeamName:          v.TeamName,
		Wins:              v.Wins,
		Losses:            v.Losses,
		PointsFor:         v.PointsFor,
		PointsAgainst:     v.PointsAgainst,
		RegularSeasonRank: v.RegularSeasonRank,
		PlayoffFinish:     v.PlayoffFinish,
		Dues:              v.Dues,
		Payout:            v.Payout,
		DuesChumpion:      v.DuesChumpion,
		HighGame:          v.HighGame,
	}
}

func teamSeasonsToDTO(ctx context.Context, items []season.TeamSeason) []teamSeasonDTO {
	out := make([]teamSeasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamSeasonToDTO(ctx, item))
	}
	return out
}

func leagueSettingsToDTO(ctx context.Context, v season.LeagueSettings) leagueSettingsDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueSettingsToDTO")
	defer span.End()

	return leagueSettingsDTO{
		Year:           v.Year,
		LeagueID:       v.LeagueID,
		DraftDate:      v.DraftDate,
		SyncStatus:     v.SyncStatus,
		LastSyncedUTC:  formatOptionalTime(v.LastSynced),
		LastAttemptUTC: formatOptionalTime(v.LastSyncAttempt),
	}
}

func leagueStatsToDTO(ctx context.Context, v season.LeagueStats) leagueStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueStatsToDTO")
	defer span.End()

	championships := make([]championshipCountDTO, 0, len(v.Championships))
	for _, row := range v.Championships {
		championships = append(championships, championshipCountDTO{
			NameID:   row.NameID,
			FullName: row.FullName,
			Count:    row.Count,
		})
	}

	return leagueStatsDTO{
		Championships: championships,
		TotalSeasons:  v.TotalSeasons,
		TotalManagers: v.TotalManagers,
	}
}

func tradeToDTO(v trade.Trade) tradeDTO {
	return tradeDTO{
		ID:           v.ID,
		Year:         v.Year,
		FromRosterID: v.FromRosterID,
		ToRosterID:   v.ToRosterID,
		Amount:       v.Amount,
		Description:  v.Description,
	}
}

func keeperToDTO(v keeper.Keeper) keeperDTO {
	return keeperDTO{
		ID:                v.ID,
		Year:              v.Year,
		RosterID:          v.RosterID,
		PlayerID:          v.PlayerID,
		PlayerName:        v.PlayerName,
		Position:          v.Position,
		Team:              v.Team,
		TradeFromRosterID: v.TradeFromRosterID,
		TradeAmount:       v.TradeAmount,
		TradeNote:         v.TradeNote,
	}
}

func keepersToDTO(items []keeper.Keeper) []keeperDTO {
	out := make([]keeperDTO, 0, len(items))
	for _, item := range items {
		out = append(out, keeperToDTO(item))
	}
	return out
}

func keeperBoardToDTO(ctx context.Context, v usecase.KeeperBoard) keeperBoardDTO {
	ctx, span := startSpan(ctx, "httpapi.keeperBoardToDTO")
	defer span.End()

	return keeperBoardDTO{
		Year:         v.Year,
		Keepers:      keepersToDTO(v.Keepers),
		Locked:       v.Locked,
		LockedAtUTC:  formatOptionalTime(v.LockedAt),
		UpdatedAtUTC: formatOptionalTime(v.UpdatedAt),
	}
}

func tradeLockToDTO(v keeper.TradeLock) tradeLockDTO {
	return tradeLockDTO{
		SeasonYear:  v.SeasonYear,
		Locked:      v.Locked,
		LockedAtUTC: formatOptionalTime(v.LockedAt),
	}
}

func keeperInputsFromRecords(records []keeperRecord) []usecase.KeeperInput {
	out := make([]usecase.KeeperInput, 0, len(records))
	for _, record := range records {
		out = append(out, usecase.KeeperInput{
			PlayerID:          record.PlayerID,
			PlayerName:        record.PlayerName,
			Position:          record.Position,
			Team:              record.Team,
			TradeFromRosterID: record.TradeFromRosterID,
			TradeAmount:       record.TradeAmount,
			TradeNote:         record.TradeNote,
		})
	}
	return out
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
