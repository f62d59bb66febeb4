package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironhq/keeper-league/internal/domain/trade"
)

type TradeRepository struct {
	mu     sync.RWMutex
	items  map[int64]trade.Trade
	nextID int64
}

func NewTradeRepository(trades []trade.Trade) *TradeRepository {
	items := make(map[int64]trade.Trade, len(trades))
	var nextID int64 = 1
	for _, t := range trades {
		if t.ID == 0 {
			t.ID = nextID
		}
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
		items[t.ID] = t
	}

	return &TradeRepository{items: items, nextID: nextID}
}

func (r *TradeRepository) ListByYear(_ context.Context, year int) ([]trade.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trade.Trade, 0)
	for _, t := range r.items {
		if t.Year == year {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TradeRepository) Create(_ context.Context, item trade.Trade) (trade.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return item, nil
}

func (r *TradeRepository) Update(_ context.Context, item trade.Trade) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return false, nil
	}
	r.items[item.ID] = item

	return true, nil
}

func (r *TradeRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}
