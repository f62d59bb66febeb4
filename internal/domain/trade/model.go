package trade

import (
	"fmt"
	"time"
)

// Trade is a manually recorded money trade between two rosters.
type Trade struct {
	ID           int64
	Year         int
	FromRosterID int
	ToRosterID   int
	Amount       float64
	Description  string
	CreatedAt    time.Time
}

func (t Trade) Validate() error {
	if t.Year <= 0 {
		return fmt.Errorf("trade year is required")
	}
	if t.FromRosterID <= 0 {
		return fmt.Errorf("trade from roster id is required")
	}
	if t.ToRosterID <= 0 {
		return fmt.Errorf("trade to roster id is required")
	}
	if t.FromRosterID == t.ToRosterID {
		return fmt.Errorf("trade rosters must differ")
	}

	return nil
}
