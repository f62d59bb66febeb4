package trade

import "context"

// Repository describes trade persistence needs from use cases.
type Repository interface {
	ListByYear(ctx context.Context, year int) ([]Trade, error)
	Create(ctx context.Context, item Trade) (Trade, error)
	Update(ctx context.Context, item Trade) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
