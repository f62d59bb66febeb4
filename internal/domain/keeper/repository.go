package keeper

import "context"

// Repository describes keeper persistence needs from use cases.
type Repository interface {
	ListByYear(ctx context.Context, year int) ([]Keeper, error)
	ListByYearAndRoster(ctx context.Context, year, rosterID int) ([]Keeper, error)
	ReplaceForRoster(ctx context.Context, year, rosterID int, items []Keeper) ([]Keeper, error)

	GetTradeLock(ctx context.Context, year int) (TradeLock, bool, error)
	UpsertTradeLock(ctx context.Context, year int, locked bool) (TradeLock, error)
}
