package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/gridironhq/keeper-league/external/sleeper"
	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/infrastructure/repository/memory"
)

type fakeSyncSource struct {
	league         sleeper.League
	leagueErr      error
	rosters        []sleeper.Roster
	users          []sleeper.User
	matchupsByWeek map[int][]sleeper.Matchup
	bracket        []sleeper.BracketGame
	bracketErr     error
}

func (f *fakeSyncSource) League(context.Context, string) (sleeper.League, error) {
	return f.league, f.leagueErr
}

func (f *fakeSyncSource) Rosters(context.Context, string) ([]sleeper.Roster, error) {
	return f.rosters, nil
}

func (f *fakeSyncSource) Users(context.Context, string) ([]sleeper.User, error) {
	return f.users, nil
}

func (f *fakeSyncSource) Matchups(_ context.Context, _ string, week int) ([]sleeper.Matchup, error) {
	return f.matchupsByWeek[week], nil
}

func (f *fakeSyncSource) WinnersBracket(context.Context, string) ([]sleeper.BracketGame, error) {
	return f.bracket, f.bracketErr
}

func syncTestManagers() []manager.Manager {
	return []manager.Manager{
		{NameID: "john", FullName: "John Smith", SleeperUserID: "u1", Active: true},
		{NameID: "sara", FullName: "Sara Jones", SleeperUserID: "u2", Active: true},
		{NameID: "mike", FullName: "Mike Lee", SleeperUserID: "u3", Active: true},
		{NameID: "dave", FullName: "Dave Kim", SleeperUserID: "u4", Active: true},
	}
}

func syncTestSource() *fakeSyncSource {
	return &fakeSyncSource{
		league: sleeper.League{
			LeagueID: "L1",
			Season:   "2024",
			Settings: sleeper.LeagueSettings{PlayoffWeekStart: 3},
		},
		rosters: []sleeper.Roster{
			{RosterID: 1, OwnerID: "u1", Settings: sleeper.RosterSettings{Wins: 10, Losses: 4, Fpts: 1500, FptsDecimal: 50, FptsAgainst: 1300}},
			{RosterID: 2, OwnerID: "u2", Settings: sleeper.RosterSettings{Wins: 10, Losses: 4, Fpts: 1400, FptsAgainst: 1350}},
			{RosterID: 3, OwnerID: "u3", Settings: sleeper.RosterSettings{Wins: 4, Losses: 10, Fpts: 1200}},
			{RosterID: 4, OwnerID: "u4", Settings: sleeper.RosterSettings{Wins: 2, Losses: 12, Fpts: 1000}},
		},
		users: []sleeper.User{
			{UserID: "u1", Username: "john_s", DisplayName: "John", Metadata: map[string]string{"team_name": "Team John"}},
			{UserID: "u2", Username: "sara_j", DisplayName: "Sara"},
			{UserID: "u3", Username: "mike_l", DisplayName: "Mike"},
			{UserID: "u4", Username: "dave_k", DisplayName: "Dave"},
		},
		matchupsByWeek: map[int][]sleeper.Matchup{
			1: {
				{RosterID: 1, Points: 120.5}, {RosterID: 2, Points: 80},
				{RosterID: 3, Points: 90}, {RosterID: 4, Points: 70},
			},
			2: {
				{RosterID: 1, Points: 90}, {RosterID: 2, Points: 130.25},
				{RosterID: 3, Points: 85}, {RosterID: 4, Points: 95},
			},
		},
		bracket: []sleeper.BracketGame{
			{Round: 1, MatchID: 1, Team1: 1, Team2: 4, Winner: 1, Loser: 4, Position: 0},
			{Round: 1, MatchID: 2, Team1: 2, Team2: 3, Winner: 2, Loser: 3, Position: 0},
			{Round: 2, MatchID: 3, Team1: 1, Team2: 2, Winner: 1, Loser: 2, Position: 1},
			{Round: 2, MatchID: 4, Team1: 4, Team2: 3, Winner: 4, Loser: 3, Position: 3},
		},
	}
}

func TestSyncService_SyncSeason_BuildsStandingsAndFinishes(t *testing.T) {
	managerRepo := memory.NewManagerRepository(syncTestManagers())
	sleeperIDRepo := memory.NewSleeperIDRepository(nil)
	seasonRepo := memory.NewSeasonRepository(nil)
	settingsRepo := memory.NewSettingsRepository([]season.LeagueSettings{{Year: 2024, LeagueID: "L1"}})

	svc := NewSyncService(syncTestSource(), managerRepo, sleeperIDRepo, seasonRepo, settingsRepo, nil, fixedMatchupClock())

	result, err := svc.SyncSeason(t.Context(), 2024, "", true)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.TeamsFound != 4 || result.TeamsSynced != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.UnmatchedUsers) != 0 {
		t.Fatalf("expected no unmatched users, got=%v", result.UnmatchedUsers)
	}

	rows, err := seasonRepo.ListByYear(t.Context(), 2024)
	if err != nil {
		t.Fatalf("list seasons failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got=%d", len(rows))
	}

	byName := make(map[string]season.TeamSeason, len(rows))
	for _, row := range rows {
		byName[row.NameID] = row
	}

	john := byName["john"]
	if john.Wins != 10 || john.PointsFor != 1500.50 {
		t.Fatalf("unexpected john record: %+v", john)
	}
	if john.RegularSeasonRank == nil || *john.RegularSeasonRank != 1 {
		t.Fatalf("expected rank 1 on wins then points, got=%v", john.RegularSeasonRank)
	}
	if john.PlayoffFinish == nil || *john.PlayoffFinish != 1 {
		t.Fatalf("expected championship finish, got=%v", john.PlayoffFinish)
	}
	if john.HighGame == nil || *john.HighGame != 120.5 {
		t.Fatalf("unexpected high game: %v", john.HighGame)
	}
	if john.TeamName != "Team John" {
		t.Fatalf("unexpected team name: %s", john.TeamName)
	}

	sara := byName["sara"]
	if sara.RegularSeasonRank == nil || *sara.RegularSeasonRank != 2 {
		t.Fatalf("expected points tiebreak to rank sara second, got=%v", sara.RegularSeasonRank)
	}
	if sara.PlayoffFinish == nil || *sara.PlayoffFinish != 2 {
		t.Fatalf("expected runner-up finish, got=%v", sara.PlayoffFinish)
	}
	if sara.HighGame == nil || *sara.HighGame != 130.25 {
		t.Fatalf("unexpected high game: %v", sara.HighGame)
	}

	if dave := byName["dave"]; dave.PlayoffFinish == nil || *dave.PlayoffFinish != 3 {
		t.Fatalf("expected third place from consolation game, got=%v", dave.PlayoffFinish)
	}
	if mike := byName["mike"]; mike.PlayoffFinish == nil || *mike.PlayoffFinish != 4 {
		t.Fatalf("expected fourth place, got=%v", mike.PlayoffFinish)
	}

	settings, ok, err := settingsRepo.GetSettings(t.Context(), 2024)
	if err != nil || !ok {
		t.Fatalf("settings missing after sync: ok=%v err=%v", ok, err)
	}
	if settings.SyncStatus != season.SyncStatusSuccess {
		t.Fatalf("unexpected sync status: %s", settings.SyncStatus)
	}
	if settings.LastSynced == nil || settings.LastSyncAttempt == nil {
		t.Fatalf("expected sync timestamps recorded: %+v", settings)
	}
}

func TestSyncService_SyncSeason_PreservesManualFields(t *testing.T) {
	dues, payout, chumpion := 100.0, 250.0, 25.0
	managerRepo := memory.NewManagerRepository(syncTestManagers())
	seasonRepo := memory.NewSeasonRepository([]season.TeamSeason{
		{Year: 2024, NameID: "john", TeamName: "Old Name", Wins: 1, Dues: &dues, Payout: &payout, DuesChumpion: &chumpion},
	})
	settingsRepo := memory.NewSettingsRepository([]season.LeagueSettings{{Year: 2024, LeagueID: "L1"}})

	svc := NewSyncService(syncTestSource(), managerRepo, memory.NewSleeperIDRepository(nil), seasonRepo, settingsRepo, nil, fixedMatchupClock())

	if _, err := svc.SyncSeason(t.Context(), 2024, "", true); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	row, ok, err := seasonRepo.GetByYearAndNameID(t.Context(), 2024, "john")
	if err != nil || !ok {
		t.Fatalf("john row missing: ok=%v err=%v", ok, err)
	}
	if row.Wins != 10 {
		t.Fatalf("expected synced record to update wins, got=%d", row.Wins)
	}
	if row.Dues == nil || *row.Dues != 100 || row.Payout == nil || *row.Payout != 250 || row.DuesChumpion == nil || *row.DuesChumpion != 25 {
		t.Fatalf("expected manual fields preserved, got=%+v", row)
	}
}

func TestSyncService_SyncSeason_SeasonalOverrideWins(t *testing.T) {
	managerRepo := memory.NewManagerRepository(syncTestManagers())
	sleeperIDRepo := memory.NewSleeperIDRepository([]manager.SleeperIDMapping{
		{NameID: "sara", SleeperUserID: "u1", Season: 2024},
		{NameID: "john", SleeperUserID: "u2", Season: 2024},
	})
	seasonRepo := memory.NewSeasonRepository(nil)
	settingsRepo := memory.NewSettingsRepository([]season.LeagueSettings{{Year: 2024, LeagueID: "L1"}})

	svc := NewSyncService(syncTestSource(), managerRepo, sleeperIDRepo, seasonRepo, settingsRepo, nil, fixedMatchupClock())

	if _, err := svc.SyncSeason(t.Context(), 2024, "", true); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	row, ok, err := seasonRepo.GetByYearAndNameID(t.Context(), 2024, "sara")
	if err != nil || !ok {
		t.Fatalf("sara row missing: ok=%v err=%v", ok, err)
	}
	// The accounts were swapped for this season, so sara gets roster 1
	// even though u1 is john's default id.
	if row.Wins != 10 || row.PointsFor != 1500.50 {
		t.Fatalf("expected override to reassign roster 1, got=%+v", row)
	}

	johnRow, ok, err := seasonRepo.GetByYearAndNameID(t.Context(), 2024, "john")
	if err != nil || !ok {
		t.Fatalf("john row missing: ok=%v err=%v", ok, err)
	}
	if johnRow.PointsFor != 1400 {
		t.Fatalf("expected john reassigned to roster 2, got=%+v", johnRow)
	}
}

func TestSyncService_SyncSeason_ReportsUnmatchedOwners(t *testing.T) {
	managerRepo := memory.NewManagerRepository(syncTestManagers()[:3])
	seasonRepo := memory.NewSeasonRepository(nil)
	settingsRepo := memory.NewSettingsRepository([]season.LeagueSettings{{Year: 2024, LeagueID: "L1"}})

	svc := NewSyncService(syncTestSource(), managerRepo, memory.NewSleeperIDRepository(nil), seasonRepo, settingsRepo, nil, fixedMatchupClock())

	result, err := svc.SyncSeason(t.Context(), 2024, "", true)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.TeamsSynced != 3 {
		t.Fatalf("expected 3 synced teams, got=%d", result.TeamsSynced)
	}
	if len(result.UnmatchedUsers) != 1 || result.UnmatchedUsers[0] != "dave_k" {
		t.Fatalf("expected dave_k reported unmatched, got=%v", result.UnmatchedUsers)
	}
	if _, ok, _ := seasonRepo.GetByYearAndNameID(t.Context(), 2024, "dave"); ok {
		t.Fatalf("unmatched roster must not be written")
	}
}

func TestSyncService_SyncSeason_RequiresLeagueID(t *testing.T) {
	svc := NewSyncService(
		syncTestSource(),
		memory.NewManagerRepository(nil),
		memory.NewSleeperIDRepository(nil),
		memory.NewSeasonRepository(nil),
		memory.NewSettingsRepository(nil),
		nil,
		fixedMatchupClock(),
	)

	_, err := svc.SyncSeason(t.Context(), 2024, "", true)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a league id, got %v", err)
	}
}

func TestSyncService_SyncSeason_MarksFailureStatus(t *testing.T) {
	source := syncTestSource()
	source.leagueErr = errors.New("sleeper down")
	settingsRepo := memory.NewSettingsRepository([]season.LeagueSettings{{Year: 2024, LeagueID: "L1"}})

	svc := NewSyncService(
		source,
		memory.NewManagerRepository(syncTestManagers()),
		memory.NewSleeperIDRepository(nil),
		memory.NewSeasonRepository(nil),
		settingsRepo,
		nil,
		fixedMatchupClock(),
	)

	if _, err := svc.SyncSeason(t.Context(), 2024, "", true); err == nil {
		t.Fatalf("expected error when league fetch fails")
	}

	settings, _, _ := settingsRepo.GetSettings(t.Context(), 2024)
	if settings.SyncStatus != season.SyncStatusFailed {
		t.Fatalf("expected failed status recorded, got=%s", settings.SyncStatus)
	}
}

func TestParsePlayoffBracket_UnresolvedChampionship(t *testing.T) {
	t.Parallel()

	results := parsePlayoffBracket([]sleeper.BracketGame{
		{Round: 1, MatchID: 1, Team1: 1, Team2: 4, Winner: 1},
		{Round: 2, MatchID: 2, Team1: 1, Team2: 2},
	})
	if len(results) != 0 {
		t.Fatalf("expected no finishes before the championship resolves, got=%v", results)
	}
}
