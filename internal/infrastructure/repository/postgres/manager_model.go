package postgres

import (
	"time"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
)

type managerTableModel struct {
	ID              int64     `db:"id"`
	NameID          string    `db:"name_id"`
	FullName        string    `db:"full_name"`
	SleeperUsername string    `db:"sleeper_username"`
	SleeperUserID   string    `db:"sleeper_user_id"`
	Email           string    `db:"email"`
	Active          bool      `db:"active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m managerTableModel) toDomain() manager.Manager {
	return manager.Manager{
		ID:              m.ID,
		NameID:          m.NameID,
		FullName:        m.FullName,
		SleeperUsername: m.SleeperUsername,
		SleeperUserID:   m.SleeperUserID,
		Email:           m.Email,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type sleeperIDTableModel struct {
	ID            int64     `db:"id"`
	NameID        string    `db:"name_id"`
	SleeperUserID string    `db:"sleeper_user_id"`
	Season        int       `db:"season"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m sleeperIDTableModel) toDomain() manager.SleeperIDMapping {
	return manager.SleeperIDMapping{
		ID:            m.ID,
		NameID:        m.NameID,
		SleeperUserID: m.SleeperUserID,
		Season:        m.Season,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
