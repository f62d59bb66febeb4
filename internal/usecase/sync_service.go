package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"

	"github.com/gridironhq/keeper-league/external/sleeper"
	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
)

const defaultHighGameWorkers = 4

type seasonSyncSource interface {
	League(ctx context.Context, leagueID string) (sleeper.League, error)
	Rosters(ctx context.Context, leagueID string) ([]sleeper.Roster, error)
	Users(ctx context.Context, leagueID string) ([]sleeper.User, error)
	Matchups(ctx context.Context, leagueID string, week int) ([]sleeper.Matchup, error)
	WinnersBracket(ctx context.Context, leagueID string) ([]sleeper.BracketGame, error)
}

// SyncResult summarizes one season sync run.
type SyncResult struct {
	Year           int      `json:"year"`
	LeagueID       string   `json:"league_id"`
	TeamsFound     int      `json:"teams_found"`
	TeamsSynced    int      `json:"teams_synced"`
	UnmatchedUsers []string `json:"unmatched_users,omitempty"`
}

// SyncService pulls a finished (or running) Sleeper season into the keeper
// league's own records: standings, playoff finishes, and high games, keyed
// to managers through their Sleeper user ids.
type SyncService struct {
	source        seasonSyncSource
	managerRepo   manager.Repository
	sleeperIDRepo manager.SleeperIDRepository
	seasonRepo    season.Repository
	settingsRepo  season.SettingsRepository
	logger        *logging.Logger
	clock         clockwork.Clock
	workers       int
}

func NewSyncService(
	source seasonSyncSource,
	managerRepo manager.Repository,
	sleeperIDRepo manager.SleeperIDRepository,
	seasonRepo season.Repository,
	settingsRepo season.SettingsRepository,
	logger *logging.Logger,
	clock clockwork.Clock,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &SyncService{
		source:        source,
		managerRepo:   managerRepo,
		sleeperIDRepo: sleeperIDRepo,
		seasonRepo:    seasonRepo,
		settingsRepo:  settingsRepo,
		logger:        logger,
		clock:         clock,
		workers:       defaultHighGameWorkers,
	}
}

// SetWorkers overrides the pool size used when scanning weekly matchups for
// high game totals. Values below 1 keep the default.
func (s *SyncService) SetWorkers(count int) {
	if count > 0 {
		s.workers = count
	}
}

// SyncSeason fetches the Sleeper league for the given year and upserts one
// team season per roster. Manual money fields on existing rows survive when
// preserveManualFields is set. Rosters whose owner cannot be matched to a
// manager are reported, not written.
func (s *SyncService) SyncSeason(ctx context.Context, year int, leagueID string, preserveManualFields bool) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSeason")
	defer span.End()

	if year <= 0 {
		return SyncResult{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	settings, hasSettings, err := s.settingsRepo.GetSettings(ctx, year)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load league settings year=%d: %w", year, err)
	}
	if strings.TrimSpace(leagueID) == "" {
		leagueID = settings.LeagueID
	}
	if strings.TrimSpace(leagueID) == "" {
		return SyncResult{}, fmt.Errorf("%w: no sleeper league id configured for year %d", ErrInvalidInput, year)
	}
	if !hasSettings {
		settings = season.LeagueSettings{Year: year}
	}
	settings.LeagueID = leagueID

	if err := s.markSyncStatus(ctx, &settings, season.SyncStatusSyncing, false); err != nil {
		return SyncResult{}, err
	}

	result, err := s.runSync(ctx, year, leagueID, preserveManualFields)
	if err != nil {
		if markErr := s.markSyncStatus(ctx, &settings, season.SyncStatusFailed, false); markErr != nil {
			s.logger.WarnContext(ctx, "could not record failed sync status", "year", year, "error", markErr)
		}
		return SyncResult{}, err
	}

	if err := s.markSyncStatus(ctx, &settings, season.SyncStatusSuccess, true); err != nil {
		return SyncResult{}, err
	}

	s.logger.InfoContext(ctx, "sleeper season sync completed",
		"year", year,
		"league_id", leagueID,
		"teams_found", result.TeamsFound,
		"teams_synced", result.TeamsSynced,
		"unmatched", len(result.UnmatchedUsers),
	)

	return result, nil
}

func (s *SyncService) markSyncStatus(ctx context.Context, settings *season.LeagueSettings, status string, synced bool) error {
	now := s.clock.Now().UTC()
	settings.SyncStatus = status
	if status == season.SyncStatusSyncing {
		settings.LastSyncAttempt = &now
	}
	if synced {
		settings.LastSynced = &now
	}
	if err := s.settingsRepo.UpsertSettings(ctx, *settings); err != nil {
		return fmt.Errorf("update sync status year=%d status=%s: %w", settings.Year, status, err)
	}
	return nil
}

func (s *SyncService) runSync(ctx context.Context, year int, leagueID string, preserveManualFields bool) (SyncResult, error) {
	lg, err := s.source.League(ctx, leagueID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch league league=%s: %w", leagueID, err)
	}
	rosters, err := s.source.Rosters(ctx, leagueID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch rosters league=%s: %w", leagueID, err)
	}
	users, err := s.source.Users(ctx, leagueID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch users league=%s: %w", leagueID, err)
	}

	managers, err := s.managerRepo.List(ctx, true)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list managers: %w", err)
	}
	var seasonalIDs []manager.SleeperIDMapping
	if s.sleeperIDRepo != nil {
		seasonalIDs, err = s.sleeperIDRepo.ListMappingsBySeason(ctx, year)
		if err != nil {
			return SyncResult{}, fmt.Errorf("list seasonal sleeper ids year=%d: %w", year, err)
		}
	}

	playoffFinishes := map[int]int{}
	bracket, err := s.source.WinnersBracket(ctx, leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "winners bracket unavailable, playoff finishes skipped", "league_id", leagueID, "error", err)
	} else {
		playoffFinishes = parsePlayoffBracket(bracket)
	}

	highGames := s.calculateHighGames(ctx, leagueID, lg.Settings.RegularSeasonWeeks())

	rows, unmatched := buildTeamSeasons(year, lg, rosters, users, managers, seasonalIDs, playoffFinishes, highGames)

	synced := 0
	for _, row := range rows {
		existing, found, err := s.seasonRepo.GetByYearAndNameID(ctx, year, row.NameID)
		if err != nil {
			return SyncResult{}, fmt.Errorf("load team season year=%d name_id=%s: %w", year, row.NameID, err)
		}
		if found {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			if preserveManualFields {
				row.Dues = existing.Dues
				row.Payout = existing.Payout
				row.DuesChumpion = existing.DuesChumpion
			}
			if _, err := s.seasonRepo.Update(ctx, row); err != nil {
				return SyncResult{}, fmt.Errorf("update team season year=%d name_id=%s: %w", year, row.NameID, err)
			}
		} else {
			if _, err := s.seasonRepo.Create(ctx, row); err != nil {
				return SyncResult{}, fmt.Errorf("create team season year=%d name_id=%s: %w", year, row.NameID, err)
			}
		}
		synced++
	}

	for _, name := range unmatched {
		s.logger.WarnContext(ctx, "roster owner has no manager mapping", "year", year, "sleeper_user", name)
	}

	return SyncResult{
		Year:           year,
		LeagueID:       leagueID,
		TeamsFound:     len(rosters),
		TeamsSynced:    synced,
		UnmatchedUsers: unmatched,
	}, nil
}

// calculateHighGames finds each roster's best single-week score across the
// regular season. Weeks are fetched on a worker pool; a week that cannot be
// fetched is skipped rather than failing the sync.
func (s *SyncService) calculateHighGames(ctx context.Context, leagueID string, regularWeeks int) map[int]float64 {
	if regularWeeks <= 0 {
		return map[int]float64{}
	}

	workerCount := s.workers
	if workerCount <= 0 {
		workerCount = defaultHighGameWorkers
	}
	if workerCount > regularWeeks {
		workerCount = regularWeeks
	}

	highGames := make(map[int]float64)
	var mu sync.Mutex

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.WarnContext(ctx, "could not create high game worker pool", "error", err)
		return map[int]float64{}
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for week := 1; week <= regularWeeks; week++ {
		week := week
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			matchups, err := s.source.Matchups(ctx, leagueID, week)
			if err != nil {
				s.logger.WarnContext(ctx, "high game week unavailable", "league_id", leagueID, "week", week, "error", err)
				return
			}

			mu.Lock()
			for _, m := range matchups {
				if best, ok := highGames[m.RosterID]; !ok || m.Points > best {
					highGames[m.RosterID] = m.Points
				}
			}
			mu.Unlock()
		}); err != nil {
			workers.Done()
			s.logger.WarnContext(ctx, "could not submit high game week", "week", week, "error", err)
		}
	}
	workers.Wait()

	return highGames
}

// parsePlayoffBracket maps roster ids to final finishes (1-4) from the
// winners bracket. The championship is the first fully seeded game of the
// deepest round; the third place game is any other seeded game in that same
// round, regardless of its position value.
func parsePlayoffBracket(bracket []sleeper.BracketGame) map[int]int {
	results := make(map[int]int)
	if len(bracket) == 0 {
		return results
	}

	championshipRound := 0
	for _, game := range bracket {
		if game.Round > championshipRound {
			championshipRound = game.Round
		}
	}

	var championship *sleeper.BracketGame
	for i := range bracket {
		game := bracket[i]
		if game.Round == championshipRound && game.Team1 > 0 && game.Team2 > 0 {
			championship = &bracket[i]
			break
		}
	}
	if championship == nil {
		return results
	}

	if championship.Winner > 0 {
		results[int(championship.Winner)] = 1
		runnerUp := championship.Team1
		if championship.Winner == championship.Team1 {
			runnerUp = championship.Team2
		}
		if runnerUp > 0 {
			results[int(runnerUp)] = 2
		}
	}

	for i := range bracket {
		game := bracket[i]
		if game.Round != championshipRound || game.Position == championship.Position {
			continue
		}
		if game.Team1 <= 0 || game.Team2 <= 0 || game.Winner <= 0 {
			continue
		}
		results[int(game.Winner)] = 3
		fourth := game.Team1
		if game.Winner == game.Team1 {
			fourth = game.Team2
		}
		if fourth > 0 {
			results[int(fourth)] = 4
		}
		break
	}

	return results
}

// buildTeamSeasons turns Sleeper rosters into team season rows. Rosters
// whose owner has no manager mapping are returned separately as unmatched.
func buildTeamSeasons(
	year int,
	lg sleeper.League,
	rosters []sleeper.Roster,
	users []sleeper.User,
	managers []manager.Manager,
	seasonalIDs []manager.SleeperIDMapping,
	playoffFinishes map[int]int,
	highGames map[int]float64,
) ([]season.TeamSeason, []string) {
	usersByID := make(map[string]sleeper.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	userIDToNameID := make(map[string]string, len(managers))
	for _, m := range managers {
		if m.SleeperUserID != "" {
			userIDToNameID[m.SleeperUserID] = m.NameID
		}
	}
	// Season-scoped overrides win over the manager's default id.
	for _, mapping := range seasonalIDs {
		if mapping.SleeperUserID != "" {
			userIDToNameID[mapping.SleeperUserID] = mapping.NameID
		}
	}

	ranked := make([]sleeper.Roster, len(rosters))
	copy(ranked, rosters)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Settings.Wins != ranked[j].Settings.Wins {
			return ranked[i].Settings.Wins > ranked[j].Settings.Wins
		}
		return ranked[i].Settings.PointsFor() > ranked[j].Settings.PointsFor()
	})
	rankByRoster := make(map[int]int, len(ranked))
	for i, r := range ranked {
		rankByRoster[r.RosterID] = i + 1
	}

	rows := make([]season.TeamSeason, 0, len(rosters))
	unmatched := make([]string, 0)
	for _, roster := range rosters {
		user := usersByID[roster.OwnerID]
		nameID := userIDToNameID[roster.OwnerID]
		if nameID == "" {
			label := user.Username
			if label == "" {
				label = roster.OwnerID
			}
			if label == "" {
				label = fmt.Sprintf("roster %d", roster.RosterID)
			}
			unmatched = append(unmatched, label)
			continue
		}

		teamName := roster.Metadata["team_name"]
		if teamName == "" {
			teamName = user.Metadata["team_name"]
		}
		if teamName == "" {
			teamName = user.DisplayName
		}
		if teamName == "" {
			teamName = leagueTeamName(lg, roster.RosterID)
		}

		rank := rankByRoster[roster.RosterID]
		row := season.TeamSeason{
			Year:              year,
			NameID:            nameID,
			TeamName:          teamName,
			Wins:              roster.Settings.Wins,
			Losses:            roster.Settings.Losses,
			PointsFor:         roundPoints(roster.Settings.PointsFor()),
			PointsAgainst:     roundPoints(roster.Settings.PointsAgainst()),
			RegularSeasonRank: &rank,
		}
		if finish, ok := playoffFinishes[roster.RosterID]; ok {
			finish := finish
			row.PlayoffFinish = &finish
		}
		if high, ok := highGames[roster.RosterID]; ok && high > 0 {
			high := roundPoints(high)
			row.HighGame = &high
		}

		rows = append(rows, row)
	}

	return rows, unmatched
}

// leagueTeamName digs team names out of league metadata, where older
// seasons stored them.
func leagueTeamName(lg sleeper.League, rosterID int) string {
	if len(lg.Metadata) == 0 {
		return ""
	}
	if nested, ok := lg.Metadata["team_names"].(map[string]any); ok {
		if name, ok := nested[fmt.Sprintf("%d", rosterID)].(string); ok && name != "" {
			return name
		}
	}
	if name, ok := lg.Metadata[fmt.Sprintf("team_name_%d", rosterID)].(string); ok {
		return name
	}
	return ""
}

func roundPoints(value float64) float64 {
	return math.Round(value*100) / 100
}
