package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
)

type KeeperRepository struct {
	mu     sync.RWMutex
	items  map[int64]keeper.Keeper
	locks  map[int]keeper.TradeLock
	nextID int64
}

func NewKeeperRepository(keepers []keeper.Keeper) *KeeperRepository {
	items := make(map[int64]keeper.Keeper, len(keepers))
	var nextID int64 = 1
	for _, k := range keepers {
		if k.ID == 0 {
			k.ID = nextID
		}
		if k.ID >= nextID {
			nextID = k.ID + 1
		}
		items[k.ID] = k
	}

	return &KeeperRepository{
		items:  items,
		locks:  make(map[int]keeper.TradeLock),
		nextID: nextID,
	}
}

func sortKeepers(out []keeper.Keeper) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].RosterID != out[j].RosterID {
			return out[i].RosterID < out[j].RosterID
		}
		return out[i].ID < out[j].ID
	})
}

func (r *KeeperRepository) ListByYear(_ context.Context, year int) ([]keeper.Keeper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]keeper.Keeper, 0)
	for _, k := range r.items {
		if k.Year == year {
			out = append(out, k)
		}
	}
	sortKeepers(out)

	return out, nil
}

func (r *KeeperRepository) ListByYearAndRoster(_ context.Context, year, rosterID int) ([]keeper.Keeper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]keeper.Keeper, 0)
	for _, k := range r.items {
		if k.Year == year && k.RosterID == rosterID {
			out = append(out, k)
		}
	}
	sortKeepers(out)

	return out, nil
}

func (r *KeeperRepository) ReplaceForRoster(_ context.Context, year, rosterID int, items []keeper.Keeper) ([]keeper.Keeper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, k := range r.items {
		if k.Year == year && k.RosterID == rosterID {
			delete(r.items, id)
		}
	}

	out := make([]keeper.Keeper, 0, len(items))
	for _, k := range items {
		k.Year = year
		k.RosterID = rosterID
		k.ID = r.nextID
		r.nextID++
		r.items[k.ID] = k
		out = append(out, k)
	}
	sortKeepers(out)

	return out, nil
}

func (r *KeeperRepository) GetTradeLock(_ context.Context, year int) (keeper.TradeLock, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lock, ok := r.locks[year]
	return lock, ok, nil
}

func (r *KeeperRepository) UpsertTradeLock(_ context.Context, year int, locked bool) (keeper.TradeLock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	lock, ok := r.locks[year]
	if !ok {
		lock = keeper.TradeLock{SeasonYear: year}
	}
	lock.Locked = locked
	if locked {
		lock.LockedAt = &now
	}
	lock.UpdatedAt = &now
	r.locks[year] = lock

	return lock, nil
}
