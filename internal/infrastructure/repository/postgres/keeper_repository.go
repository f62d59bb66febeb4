package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
	qb "github.com/gridironhq/keeper-league/internal/platform/querybuilder"
)

type KeeperRepository struct {
	db *sqlx.DB
}

func NewKeeperRepository(db *sqlx.DB) *KeeperRepository {
	return &KeeperRepository{db: db}
}

func (r *KeeperRepository) ListByYear(ctx context.Context, year int) ([]keeper.Keeper, error) {
	query, args, err := qb.Select("*").From("keepers").
		Where(qb.Eq("year", year)).
		OrderBy("roster_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select keepers query: %w", err)
	}

	return r.selectKeepers(ctx, query, args)
}

func (r *KeeperRepository) ListByYearAndRoster(ctx context.Context, year, rosterID int) ([]keeper.Keeper, error) {
	query, args, err := qb.Select("*").From("keepers").
		Where(
			qb.Eq("year", year),
			qb.Eq("roster_id", rosterID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster keepers query: %w", err)
	}

	return r.selectKeepers(ctx, query, args)
}

func (r *KeeperRepository) selectKeepers(ctx context.Context, query string, args []any) ([]keeper.Keeper, error) {
	var rows []keeperTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select keepers: %w", err)
	}

	out := make([]keeper.Keeper, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// ReplaceForRoster swaps a roster's keeper set in one transaction so a
// failed save never leaves the roster half-written.
func (r *KeeperRepository) ReplaceForRoster(ctx context.Context, year, rosterID int, items []keeper.Keeper) ([]keeper.Keeper, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx replace keepers: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM keepers WHERE year = $1 AND roster_id = $2", year, rosterID); err != nil {
		return nil, fmt.Errorf("delete roster keepers: %w", err)
	}

	out := make([]keeper.Keeper, 0, len(items))
	for _, item := range items {
		item.Year = year
		item.RosterID = rosterID

		query, args, err := qb.InsertInto("keepers").
			Columns("year", "roster_id", "player_id", "player_name", "position", "team", "trade_from_roster_id", "trade_amount", "trade_note").
			Values(item.Year, item.RosterID, item.PlayerID, item.PlayerName, item.Position, item.Team, item.TradeFromRosterID, item.TradeAmount, item.TradeNote).
			Suffix("RETURNING id, created_at").
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build insert keeper query: %w", err)
		}
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert keeper player=%s: %w", item.PlayerID, err)
		}
		out = append(out, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace keepers: %w", err)
	}

	return out, nil
}

func (r *KeeperRepository) GetTradeLock(ctx context.Context, year int) (keeper.TradeLock, bool, error) {
	query, args, err := qb.Select("*").From("keeper_trade_locks").
		Where(qb.Eq("season_year", year)).
		ToSQL()
	if err != nil {
		return keeper.TradeLock{}, false, fmt.Errorf("build get keeper trade lock query: %w", err)
	}

	var row tradeLockTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return keeper.TradeLock{}, false, nil
		}
		return keeper.TradeLock{}, false, fmt.Errorf("get keeper trade lock: %w", err)
	}

	return row.toDomain(), true, nil
}

// UpsertTradeLock flips the lock. locked_at records when the season was
// last locked and survives an unlock.
func (r *KeeperRepository) UpsertTradeLock(ctx context.Context, year int, locked bool) (keeper.TradeLock, error) {
	const query = `
INSERT INTO keeper_trade_locks (season_year, locked, locked_at, updated_at)
VALUES ($1, $2, CASE WHEN $2 THEN NOW() END, NOW())
ON CONFLICT (season_year)
DO UPDATE SET
    locked = EXCLUDED.locked,
    locked_at = CASE WHEN EXCLUDED.locked THEN EXCLUDED.locked_at ELSE keeper_trade_locks.locked_at END,
    updated_at = EXCLUDED.updated_at
RETURNING season_year, locked, locked_at, updated_at`

	var row tradeLockTableModel
	if err := getContext(ctx, r.db, &row, query, year, locked); err != nil {
		return keeper.TradeLock{}, fmt.Errorf("upsert keeper trade lock: %w", err)
	}

	return row.toDomain(), nil
}
