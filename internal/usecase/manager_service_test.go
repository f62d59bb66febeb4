package usecase

import (
	"errors"
	"testing"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/infrastructure/repository/memory"
)

func TestManagerService_CreateManager_NormalizesAndRejectsDuplicates(t *testing.T) {
	svc := NewManagerService(memory.NewManagerRepository(nil), memory.NewSleeperIDRepository(nil), nil)

	created, err := svc.CreateManager(t.Context(), CreateManagerInput{
		NameID:   "  John ",
		FullName: " John Smith ",
		Active:   true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.NameID != "john" || created.FullName != "John Smith" {
		t.Fatalf("expected normalized fields, got=%+v", created)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	_, err = svc.CreateManager(t.Context(), CreateManagerInput{NameID: "JOHN", FullName: "Other"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected duplicate slug rejected, got %v", err)
	}
}

func TestManagerService_UpdateManager_AppliesPartialInput(t *testing.T) {
	repo := memory.NewManagerRepository([]manager.Manager{
		{NameID: "sara", FullName: "Sara Jones", SleeperUserID: "u2", Active: true},
	})
	svc := NewManagerService(repo, memory.NewSleeperIDRepository(nil), nil)

	newID := "u99"
	inactive := false
	updated, err := svc.UpdateManager(t.Context(), "sara", UpdateManagerInput{
		SleeperUserID: &newID,
		Active:        &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.SleeperUserID != "u99" || updated.Active {
		t.Fatalf("expected fields applied, got=%+v", updated)
	}
	if updated.FullName != "Sara Jones" {
		t.Fatalf("untouched field changed: %+v", updated)
	}

	if _, err := svc.UpdateManager(t.Context(), "nobody", UpdateManagerInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown manager, got %v", err)
	}
}

func TestManagerService_ListManagers_FiltersInactive(t *testing.T) {
	repo := memory.NewManagerRepository([]manager.Manager{
		{NameID: "active", FullName: "Active", Active: true},
		{NameID: "retired", FullName: "Retired", Active: false},
	})
	svc := NewManagerService(repo, memory.NewSleeperIDRepository(nil), nil)

	actives, err := svc.ListManagers(t.Context(), false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(actives) != 1 || actives[0].NameID != "active" {
		t.Fatalf("expected only active managers, got=%v", actives)
	}

	all, err := svc.ListManagers(t.Context(), true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both managers, got=%d", len(all))
	}
}

func TestManagerService_CreateSleeperID_RequiresKnownManager(t *testing.T) {
	repo := memory.NewManagerRepository([]manager.Manager{
		{NameID: "john", FullName: "John Smith", Active: true},
	})
	sleeperIDs := memory.NewSleeperIDRepository(nil)
	svc := NewManagerService(repo, sleeperIDs, nil)

	_, err := svc.CreateSleeperID(t.Context(), SleeperIDInput{NameID: "ghost", SleeperUserID: "u5", Season: 2023})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown manager, got %v", err)
	}

	created, err := svc.CreateSleeperID(t.Context(), SleeperIDInput{NameID: "john", SleeperUserID: "u5", Season: 2023})
	if err != nil {
		t.Fatalf("create mapping failed: %v", err)
	}
	if created.ID == 0 || created.Season != 2023 {
		t.Fatalf("unexpected mapping: %+v", created)
	}

	scoped, err := svc.ListSleeperIDs(t.Context(), 2023)
	if err != nil {
		t.Fatalf("list mappings failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].SleeperUserID != "u5" {
		t.Fatalf("expected season-scoped mapping, got=%v", scoped)
	}

	if none, _ := svc.ListSleeperIDs(t.Context(), 2022); len(none) != 0 {
		t.Fatalf("expected no mappings for other seasons, got=%v", none)
	}
}

func TestManagerService_DeleteSleeperID(t *testing.T) {
	repo := memory.NewManagerRepository([]manager.Manager{{NameID: "john", FullName: "John Smith"}})
	sleeperIDs := memory.NewSleeperIDRepository([]manager.SleeperIDMapping{
		{NameID: "john", SleeperUserID: "u5", Season: 2023},
	})
	svc := NewManagerService(repo, sleeperIDs, nil)

	if err := svc.DeleteSleeperID(t.Context(), 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteSleeperID(t.Context(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
