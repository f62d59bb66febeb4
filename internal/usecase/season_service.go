package usecase

import (
	"context"
	"fmt"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
)

type SaveSeasonInput struct {
	Year              int    `validate:"required,gt=0"`
	NameID            string `validate:"required"`
	TeamName          string
	Wins              int `validate:"gte=0"`
	Losses            int `validate:"gte=0"`
	PointsFor         float64
	PointsAgainst     float64
	RegularSeasonRank *int
	PlayoffFinish     *int
	Dues              *float64
	Payout            *float64
	DuesChumpion      *float64
	HighGame          *float64
}

type SaveLeagueSettingsInput struct {
	LeagueID  string
	DraftDate string
}

// SeasonService owns team season rows, per-year league settings, and the
// all-time league stats rollup.
type SeasonService struct {
	seasonRepo   season.Repository
	settingsRepo season.SettingsRepository
	managerRepo  manager.Repository
	logger       *logging.Logger
}

func NewSeasonService(
	seasonRepo season.Repository,
	settingsRepo season.SettingsRepository,
	managerRepo manager.Repository,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		seasonRepo:   seasonRepo,
		settingsRepo: settingsRepo,
		managerRepo:  managerRepo,
		logger:       logger,
	}
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]season.TeamSeason, error) {
	items, err := s.seasonRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	return items, nil
}

func (s *SeasonService) SeasonsByYear(ctx context.Context, year int) ([]season.TeamSeason, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	items, err := s.seasonRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list team seasons year=%d: %w", year, err)
	}
	return items, nil
}

// ManagerSeasons returns one manager's full history, newest first.
func (s *SeasonService) ManagerSeasons(ctx context.Context, nameID string) ([]season.TeamSeason, error) {
	nameID = normalizeNameID(nameID)
	if nameID == "" {
		return nil, fmt.Errorf("%w: manager name id is required", ErrInvalidInput)
	}

	if _, found, err := s.managerRepo.GetByNameID(ctx, nameID); err != nil {
		return nil, fmt.Errorf("get manager name_id=%s: %w", nameID, err)
	} else if !found {
		return nil, fmt.Errorf("%w: manager %s", ErrNotFound, nameID)
	}

	items, err := s.seasonRepo.ListByNameID(ctx, nameID)
	if err != nil {
		return nil, fmt.Errorf("list team seasons name_id=%s: %w", nameID, err)
	}
	return items, nil
}

func (s *SeasonService) CreateSeason(ctx context.Context, input SaveSeasonInput) (season.TeamSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	item := teamSeasonFromInput(input)
	if err := item.Validate(); err != nil {
		return season.TeamSeason{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.seasonRepo.GetByYearAndNameID(ctx, item.Year, item.NameID); err != nil {
		return season.TeamSeason{}, fmt.Errorf("check team season year=%d name_id=%s: %w", item.Year, item.NameID, err)
	} else if exists {
		return season.TeamSeason{}, fmt.Errorf("%w: team season already exists for %s in %d", ErrInvalidInput, item.NameID, item.Year)
	}

	created, err := s.seasonRepo.Create(ctx, item)
	if err != nil {
		return season.TeamSeason{}, fmt.Errorf("create team season year=%d name_id=%s: %w", item.Year, item.NameID, err)
	}

	s.logger.InfoContext(ctx, "team season created", "year", created.Year, "name_id", created.NameID)
	return created, nil
}

func (s *SeasonService) UpdateSeason(ctx context.Context, id int64, input SaveSeasonInput) (season.TeamSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpdateSeason")
	defer span.End()

	existing, found, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		return season.TeamSeason{}, fmt.Errorf("get team season id=%d: %w", id, err)
	}
	if !found {
		return season.TeamSeason{}, fmt.Errorf("%w: team season %d", ErrNotFound, id)
	}

	item := teamSeasonFromInput(input)
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	if err := item.Validate(); err != nil {
		return season.TeamSeason{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.seasonRepo.Update(ctx, item); err != nil {
		return season.TeamSeason{}, fmt.Errorf("update team season id=%d: %w", id, err)
	}
	return item, nil
}

func (s *SeasonService) DeleteSeason(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.DeleteSeason")
	defer span.End()

	deleted, err := s.seasonRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete team season id=%d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("%w: team season %d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "team season deleted", "id", id)
	return nil
}

// LeagueSettings returns the settings row for a year, or pending defaults
// when none has been saved yet.
func (s *SeasonService) LeagueSettings(ctx context.Context, year int) (season.LeagueSettings, error) {
	if year <= 0 {
		return season.LeagueSettings{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	settings, found, err := s.settingsRepo.GetSettings(ctx, year)
	if err != nil {
		return season.LeagueSettings{}, fmt.Errorf("get league settings year=%d: %w", year, err)
	}
	if !found {
		return season.LeagueSettings{Year: year, SyncStatus: season.SyncStatusPending}, nil
	}
	return settings, nil
}

// SaveLeagueSettings upserts the year's league id and draft date while
// leaving sync bookkeeping untouched.
func (s *SeasonService) SaveLeagueSettings(ctx context.Context, year int, input SaveLeagueSettingsInput) (season.LeagueSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SaveLeagueSettings")
	defer span.End()

	settings, err := s.LeagueSettings(ctx, year)
	if err != nil {
		return season.LeagueSettings{}, err
	}

	settings.LeagueID = input.LeagueID
	settings.DraftDate = input.DraftDate
	if err := settings.Validate(); err != nil {
		return season.LeagueSettings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.settingsRepo.UpsertSettings(ctx, settings); err != nil {
		return season.LeagueSettings{}, fmt.Errorf("save league settings year=%d: %w", year, err)
	}

	s.logger.InfoContext(ctx, "league settings saved", "year", year, "league_id", settings.LeagueID)
	return settings, nil
}

// LeagueStats aggregates the championship leaderboard and league totals.
func (s *SeasonService) LeagueStats(ctx context.Context) (season.LeagueStats, error) {
	counts, err := s.seasonRepo.ChampionshipCounts(ctx)
	if err != nil {
		return season.LeagueStats{}, fmt.Errorf("count championships: %w", err)
	}

	managers, err := s.managerRepo.List(ctx, true)
	if err != nil {
		return season.LeagueStats{}, fmt.Errorf("list managers: %w", err)
	}
	fullNames := make(map[string]string, len(managers))
	for _, m := range managers {
		fullNames[m.NameID] = m.FullName
	}
	for i := range counts {
		if name, ok := fullNames[counts[i].NameID]; ok && name != "" {
			counts[i].FullName = name
		}
	}

	years, err := s.seasonRepo.CountDistinctYears(ctx)
	if err != nil {
		return season.LeagueStats{}, fmt.Errorf("count seasons: %w", err)
	}

	return season.LeagueStats{
		Championships: counts,
		TotalSeasons:  years,
		TotalManagers: len(managers),
	}, nil
}

func teamSeasonFromInput(input SaveSeasonInput) season.TeamSeason {
	return season.TeamSeason{
		Year:              input.Year,
		NameID:            normalizeNameID(input.NameID),
		TeamName:          input.TeamName,
		Wins:              input.Wins,
		Losses:            input.Losses,
		PointsFor:         input.PointsFor,
		PointsAgainst:     input.PointsAgainst,
		RegularSeasonRank: input.RegularSeasonRank,
		PlayoffFinish:     input.PlayoffFinish,
		Dues:              input.Dues,
		Payout:            input.Payout,
		DuesChumpion:      input.DuesChumpion,
		HighGame:          input.HighGame,
	}
}
