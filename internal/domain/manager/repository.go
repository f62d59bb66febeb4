package manager

import "context"

// Repository describes manager persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]Manager, error)
	GetByNameID(ctx context.Context, nameID string) (Manager, bool, error)
	Create(ctx context.Context, item Manager) (Manager, error)
	Update(ctx context.Context, item Manager) (bool, error)
	Delete(ctx context.Context, nameID string) (bool, error)
}

// SleeperIDRepository describes season-scoped Sleeper id override persistence.
type SleeperIDRepository interface {
	ListMappings(ctx context.Context) ([]SleeperIDMapping, error)
	ListMappingsBySeason(ctx context.Context, season int) ([]SleeperIDMapping, error)
	CreateMapping(ctx context.Context, item SleeperIDMapping) (SleeperIDMapping, error)
	UpdateMapping(ctx context.Context, item SleeperIDMapping) (bool, error)
	DeleteMapping(ctx context.Context, id int64) (bool, error)
}
