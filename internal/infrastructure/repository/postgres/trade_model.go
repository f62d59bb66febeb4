package postgres

import (
	"time"

	"github.com/gridironhq/keeper-league/internal/domain/trade"
)

type tradeTableModel struct {
	ID           int64     `db:"id"`
	Year         int       `db:"year"`
	FromRosterID int       `db:"from_roster_id"`
	ToRosterID   int       `db:"to_roster_id"`
	Amount       float64   `db:"amount"`
	Description  string    `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m tradeTableModel) toDomain() trade.Trade {
	return trade.Trade{
		ID:           m.ID,
		Year:         m.Year,
		FromRosterID: m.FromRosterID,
		ToRosterID:   m.ToRosterID,
		Amount:       m.Amount,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
	}
}
