package postgres

import (
	"time"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
)

type keeperTableModel struct {
	ID                int64     `db:"id"`
	Year              int       `db:"year"`
	RosterID          int       `db:"roster_id"`
	PlayerID          string    `db:"player_id"`
	PlayerName        string    `db:"player_name"`
	Position          string    `db:"position"`
	Team              string    `db:"team"`
	TradeFromRosterID *int      `db:"trade_from_roster_id"`
	TradeAmount       *float64  `db:"trade_amount"`
	TradeNote         string    `db:"trade_note"`
	CreatedAt         time.Time `db:"created_at"`
}

func (m keeperTableModel) toDomain() keeper.Keeper {
	return keeper.Keeper{
		ID:                m.ID,
		Year:              m.Year,
		RosterID:          m.RosterID,
		PlayerID:          m.PlayerID,
		PlayerName:        m.PlayerName,
		Position:          m.Position,
		Team:              m.Team,
		TradeFromRosterID: m.TradeFromRosterID,
		TradeAmount:       m.TradeAmount,
		TradeNote:         m.TradeNote,
		CreatedAt:         m.CreatedAt,
	}
}

type tradeLockTableModel struct {
	SeasonYear int        `db:"season_year"`
	Locked     bool       `db:"locked"`
	LockedAt   *time.Time `db:"locked_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

func (m tradeLockTableModel) toDomain() keeper.TradeLock {
	return keeper.TradeLock{
		SeasonYear: m.SeasonYear,
		Locked:     m.Locked,
		LockedAt:   m.LockedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
