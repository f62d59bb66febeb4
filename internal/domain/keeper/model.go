package keeper

import (
	"fmt"
	"strings"
	"time"
)

// Keeper is one kept player on a roster for a season, including the
// optional preseason trade that moved the pick.
type Keeper struct {
	ID                int64
	Year              int
	RosterID          int
	PlayerID          string
	PlayerName        string
	Position          string
	Team              string
	TradeFromRosterID *int
	TradeAmount       *float64
	TradeNote         string
	CreatedAt         time.Time
}

func (k Keeper) Validate() error {
	if k.Year <= 0 {
		return fmt.Errorf("keeper year is required")
	}
	if k.RosterID <= 0 {
		return fmt.Errorf("keeper roster id is required")
	}
	if strings.TrimSpace(k.PlayerID) == "" {
		return fmt.Errorf("keeper player id is required")
	}

	return nil
}

// TradeLock freezes keeper selections for a season once the draft nears.
type TradeLock struct {
	SeasonYear int
	Locked     bool
	LockedAt   *time.Time
	UpdatedAt  *time.Time
}
