package usecase

import (
	"errors"
	"testing"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/infrastructure/repository/memory"
)

func seasonTestService(seasons []season.TeamSeason, settings []season.LeagueSettings, managers []manager.Manager) (*SeasonService, *memory.SeasonRepository, *memory.SettingsRepository) {
	seasonRepo := memory.NewSeasonRepository(seasons)
	settingsRepo := memory.NewSettingsRepository(settings)
	return NewSeasonService(seasonRepo, settingsRepo, memory.NewManagerRepository(managers), nil), seasonRepo, settingsRepo
}

func TestSeasonService_CreateSeason_RejectsDuplicateYearManager(t *testing.T) {
	svc, _, _ := seasonTestService(nil, nil, nil)

	created, err := svc.CreateSeason(t.Context(), SaveSeasonInput{Year: 2023, NameID: "John", Wins: 8, Losses: 6})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.NameID != "john" {
		t.Fatalf("expected normalized name id, got=%s", created.NameID)
	}

	_, err = svc.CreateSeason(t.Context(), SaveSeasonInput{Year: 2023, NameID: "john", Wins: 9})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate year+manager rejected, got %v", err)
	}
}

func TestSeasonService_UpdateSeason_KeepsIdentity(t *testing.T) {
	svc, seasonRepo, _ := seasonTestService([]season.TeamSeason{
		{Year: 2023, NameID: "john", Wins: 8, Losses: 6},
	}, nil, nil)

	existing, ok, _ := seasonRepo.GetByYearAndNameID(t.Context(), 2023, "john")
	if !ok {
		t.Fatalf("seed row missing")
	}

	updated, err := svc.UpdateSeason(t.Context(), existing.ID, SaveSeasonInput{Year: 2023, NameID: "john", Wins: 9, Losses: 5})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != existing.ID || updated.Wins != 9 {
		t.Fatalf("unexpected updated row: %+v", updated)
	}

	if _, err := svc.UpdateSeason(t.Context(), 999, SaveSeasonInput{Year: 2023, NameID: "john"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSeasonService_ManagerSeasons_RequiresKnownManager(t *testing.T) {
	svc, _, _ := seasonTestService(
		[]season.TeamSeason{
			{Year: 2022, NameID: "john", Wins: 7},
			{Year: 2023, NameID: "john", Wins: 10},
			{Year: 2023, NameID: "sara", Wins: 8},
		},
		nil,
		[]manager.Manager{{NameID: "john", FullName: "John Smith", Active: true}},
	)

	items, err := svc.ManagerSeasons(t.Context(), "john")
	if err != nil {
		t.Fatalf("manager seasons failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 seasons, got=%d", len(items))
	}
	if items[0].Year != 2023 {
		t.Fatalf("expected newest season first, got=%d", items[0].Year)
	}

	if _, err := svc.ManagerSeasons(t.Context(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown manager, got %v", err)
	}
}

func TestSeasonService_LeagueSettings_DefaultsToPending(t *testing.T) {
	svc, _, _ := seasonTestService(nil, nil, nil)

	settings, err := svc.LeagueSettings(t.Context(), 2025)
	if err != nil {
		t.Fatalf("league settings failed: %v", err)
	}
	if settings.Year != 2025 || settings.SyncStatus != season.SyncStatusPending {
		t.Fatalf("expected pending defaults, got=%+v", settings)
	}
}

func TestSeasonService_SaveLeagueSettings_PreservesSyncBookkeeping(t *testing.T) {
	now := fixedMatchupClock().Now()
	svc, _, settingsRepo := seasonTestService(nil, []season.LeagueSettings{
		{Year: 2024, LeagueID: "OLD", SyncStatus: season.SyncStatusSuccess, LastSynced: &now, LastSyncAttempt: &now},
	}, nil)

	saved, err := svc.SaveLeagueSettings(t.Context(), 2024, SaveLeagueSettingsInput{LeagueID: "NEW", DraftDate: "2024-08-25"})
	if err != nil {
		t.Fatalf("save settings failed: %v", err)
	}
	if saved.LeagueID != "NEW" || saved.DraftDate != "2024-08-25" {
		t.Fatalf("unexpected saved settings: %+v", saved)
	}
	if saved.SyncStatus != season.SyncStatusSuccess || saved.LastSynced == nil {
		t.Fatalf("expected sync bookkeeping untouched, got=%+v", saved)
	}

	stored, ok, _ := settingsRepo.GetSettings(t.Context(), 2024)
	if !ok || stored.LeagueID != "NEW" {
		t.Fatalf("settings not persisted: ok=%v %+v", ok, stored)
	}
}

func TestSeasonService_LeagueStats_ResolvesFullNames(t *testing.T) {
	first := 1
	svc, _, _ := seasonTestService(
		[]season.TeamSeason{
			{Year: 2022, NameID: "john", PlayoffFinish: &first},
			{Year: 2023, NameID: "john", PlayoffFinish: &first},
			{Year: 2023, NameID: "sara"},
		},
		nil,
		[]manager.Manager{
			{NameID: "john", FullName: "John Smith", Active: true},
			{NameID: "sara", FullName: "Sara Jones", Active: true},
		},
	)

	stats, err := svc.LeagueStats(t.Context())
	if err != nil {
		t.Fatalf("league stats failed: %v", err)
	}
	if stats.TotalSeasons != 2 {
		t.Fatalf("expected 2 distinct years, got=%d", stats.TotalSeasons)
	}
	if stats.TotalManagers != 2 {
		t.Fatalf("expected 2 managers, got=%d", stats.TotalManagers)
	}
	if len(stats.Championships) != 1 {
		t.Fatalf("expected one champion row, got=%v", stats.Championships)
	}
	if stats.Championships[0].FullName != "John Smith" || stats.Championships[0].Count != 2 {
		t.Fatalf("unexpected champion row: %+v", stats.Championships[0])
	}
}
