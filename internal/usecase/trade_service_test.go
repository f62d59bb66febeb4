package usecase

import (
	"errors"
	"testing"

	"github.com/gridironhq/keeper-league/internal/domain/trade"
	"github.com/gridironhq/keeper-league/internal/infrastructure/repository/memory"
)

func TestTradeService_CreateTrade_ValidatesRosters(t *testing.T) {
	svc := NewTradeService(memory.NewTradeRepository(nil), nil)

	created, err := svc.CreateTrade(t.Context(), TradeInput{
		Year:         2025,
		FromRosterID: 1,
		ToRosterID:   2,
		Amount:       25,
		Description:  " pick swap ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 || created.Description != "pick swap" {
		t.Fatalf("unexpected trade: %+v", created)
	}

	_, err = svc.CreateTrade(t.Context(), TradeInput{Year: 2025, FromRosterID: 1, ToRosterID: 1, Amount: 10})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected same-roster trade rejected, got %v", err)
	}
}

func TestTradeService_TradesByYear(t *testing.T) {
	repo := memory.NewTradeRepository([]trade.Trade{
		{Year: 2024, FromRosterID: 1, ToRosterID: 2, Amount: 10},
		{Year: 2025, FromRosterID: 3, ToRosterID: 4, Amount: 20},
	})
	svc := NewTradeService(repo, nil)

	items, err := svc.TradesByYear(t.Context(), 2025)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].FromRosterID != 3 {
		t.Fatalf("unexpected trades: %+v", items)
	}
}

func TestTradeService_UpdateAndDelete(t *testing.T) {
	repo := memory.NewTradeRepository([]trade.Trade{
		{Year: 2025, FromRosterID: 1, ToRosterID: 2, Amount: 10},
	})
	svc := NewTradeService(repo, nil)

	updated, err := svc.UpdateTrade(t.Context(), 1, TradeInput{Year: 2025, FromRosterID: 1, ToRosterID: 2, Amount: 35})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Amount != 35 {
		t.Fatalf("unexpected updated trade: %+v", updated)
	}

	if _, err := svc.UpdateTrade(t.Context(), 99, TradeInput{Year: 2025, FromRosterID: 1, ToRosterID: 2, Amount: 5}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown trade, got %v", err)
	}

	if err := svc.DeleteTrade(t.Context(), 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteTrade(t.Context(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
