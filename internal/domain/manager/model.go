package manager

import (
	"fmt"
	"strings"
	"time"
)

// Manager is a league member across seasons, keyed by a stable name slug.
type Manager struct {
	ID              int64
	NameID          string
	FullName        string
	SleeperUsername string
	SleeperUserID   string
	Email           string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m Manager) Validate() error {
	if strings.TrimSpace(m.NameID) == "" {
		return fmt.Errorf("manager name id is required")
	}
	if strings.TrimSpace(m.FullName) == "" {
		return fmt.Errorf("manager full name is required")
	}

	return nil
}

// SleeperIDMapping overrides a manager's Sleeper user id for one season.
// Managers sometimes co-own or hand off a Sleeper account mid-history, so
// season-scoped mappings take precedence over Manager.SleeperUserID.
type SleeperIDMapping struct {
	ID            int64
	NameID        string
	SleeperUserID string
	Season        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s SleeperIDMapping) Validate() error {
	if strings.TrimSpace(s.NameID) == "" {
		return fmt.Errorf("mapping name id is required")
	}
	if strings.TrimSpace(s.SleeperUserID) == "" {
		return fmt.Errorf("mapping sleeper user id is required")
	}
	if s.Season <= 0 {
		return fmt.Errorf("mapping season is required")
	}

	return nil
}
