package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
)

type ManagerRepository struct {
	mu     sync.RWMutex
	items  map[string]manager.Manager
	nextID int64
}

func NewManagerRepository(managers []manager.Manager) *ManagerRepository {
	items := make(map[string]manager.Manager, len(managers))
	var nextID int64 = 1
	for _, m := range managers {
		if m.ID == 0 {
			m.ID = nextID
		}
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
		items[m.NameID] = m
	}

	return &ManagerRepository{items: items, nextID: nextID}
}

func (r *ManagerRepository) List(_ context.Context, includeInactive bool) ([]manager.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manager.Manager, 0, len(r.items))
	for _, m := range r.items {
		if !includeInactive && !m.Active {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameID < out[j].NameID })

	return out, nil
}

func (r *ManagerRepository) GetByNameID(_ context.Context, nameID string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[nameID]
	return m, ok, nil
}

func (r *ManagerRepository) Create(_ context.Context, item manager.Manager) (manager.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.NameID] = item

	return item, nil
}

func (r *ManagerRepository) Update(_ context.Context, item manager.Manager) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.NameID]
	if !ok {
		return false, nil
	}
	item.ID = existing.ID
	r.items[item.NameID] = item

	return true, nil
}

func (r *ManagerRepository) Delete(_ context.Context, nameID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[nameID]; !ok {
		return false, nil
	}
	delete(r.items, nameID)

	return true, nil
}

type SleeperIDRepository struct {
	mu     sync.RWMutex
	items  map[int64]manager.SleeperIDMapping
	nextID int64
}

func NewSleeperIDRepository(mappings []manager.SleeperIDMapping) *SleeperIDRepository {
	items := make(map[int64]manager.SleeperIDMapping, len(mappings))
	var nextID int64 = 1
	for _, m := range mappings {
		if m.ID == 0 {
			m.ID = nextID
		}
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
		items[m.ID] = m
	}

	return &SleeperIDRepository{items: items, nextID: nextID}
}

func (r *SleeperIDRepository) ListMappings(_ context.Context) ([]manager.SleeperIDMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manager.SleeperIDMapping, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *SleeperIDRepository) ListMappingsBySeason(_ context.Context, seasonYear int) ([]manager.SleeperIDMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manager.SleeperIDMapping, 0)
	for _, m := range r.items {
		if m.Season == seasonYear {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *SleeperIDRepository) CreateMapping(_ context.Context, item manager.SleeperIDMapping) (manager.SleeperIDMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return item, nil
}

func (r *SleeperIDRepository) UpdateMapping(_ context.Context, item manager.SleeperIDMapping) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return false, nil
	}
	r.items[item.ID] = item

	return true, nil
}

func (r *SleeperIDRepository) DeleteMapping(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}
