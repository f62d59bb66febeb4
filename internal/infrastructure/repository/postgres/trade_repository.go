package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/keeper-league/internal/domain/trade"
	qb "github.com/gridironhq/keeper-league/internal/platform/querybuilder"
)

type TradeRepository struct {
	db *sqlx.DB
}

func NewTradeRepository(db *sqlx.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) ListByYear(ctx context.Context, year int) ([]trade.Trade, error) {
	query, args, err := qb.Select("*").From("trades").
		Where(qb.Eq("year", year)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select trades query: %w", err)
	}

	var rows []tradeTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select trades: %w", err)
	}

	out := make([]trade.Trade, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TradeRepository) Create(ctx context.Context, item trade.Trade) (trade.Trade, error) {
	query, args, err := qb.InsertInto("trades").
		Columns("year", "from_roster_id", "to_roster_id", "amount", "description").
		Values(item.Year, item.FromRosterID, item.ToRosterID, item.Amount, item.Description).
		Suffix("RETURNING id, created_at").
		ToSQL()
	if err != nil {
		return trade.Trade{}, fmt.Errorf("build insert trade query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return trade.Trade{}, fmt.Errorf("insert trade: %w", err)
	}

	return item, nil
}

func (r *TradeRepository) Update(ctx context.Context, item trade.Trade) (bool, error) {
	query, args, err := qb.Update("trades").
		Set("year", item.Year).
		Set("from_roster_id", item.FromRosterID).
		Set("to_roster_id", item.ToRosterID).
		Set("amount", item.Amount).
		Set("description", item.Description).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update trade query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update trade: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected update trade: %w", err)
	}

	return affected > 0, nil
}

func (r *TradeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM trades WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete trade: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete trade: %w", err)
	}

	return affected > 0, nil
}
