package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironhq/keeper-league/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[int64]season.TeamSeason
	nextID int64
}

func NewSeasonRepository(seasons []season.TeamSeason) *SeasonRepository {
	items := make(map[int64]season.TeamSeason, len(seasons))
	var nextID int64 = 1
	for _, ts := range seasons {
		if ts.ID == 0 {
			ts.ID = nextID
		}
		if ts.ID >= nextID {
			nextID = ts.ID + 1
		}
		items[ts.ID] = ts
	}

	return &SeasonRepository{items: items, nextID: nextID}
}

func sortTeamSeasons(out []season.TeamSeason) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		ri, rj := rankOrMax(out[i].RegularSeasonRank), rankOrMax(out[j].RegularSeasonRank)
		if ri != rj {
			return ri < rj
		}
		return out[i].NameID < out[j].NameID
	})
}

func rankOrMax(rank *int) int {
	if rank == nil {
		return int(^uint(0) >> 1)
	}
	return *rank
}

func (r *SeasonRepository) ListAll(_ context.Context) ([]season.TeamSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.TeamSeason, 0, len(r.items))
	for _, ts := range r.items {
		out = append(out, ts)
	}
	sortTeamSeasons(out)

	return out, nil
}

func (r *SeasonRepository) ListByYear(_ context.Context, year int) ([]season.TeamSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.TeamSeason, 0)
	for _, ts := range r.items {
		if ts.Year == year {
			out = append(out, ts)
		}
	}
	sortTeamSeasons(out)

	return out, nil
}

func (r *SeasonRepository) ListByNameID(_ context.Context, nameID string) ([]season.TeamSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.TeamSeason, 0)
	for _, ts := range r.items {
		if ts.NameID == nameID {
			out = append(out, ts)
		}
	}
	sortTeamSeasons(out)

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id int64) (season.TeamSeason, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts, ok := r.items[id]
	return ts, ok, nil
}

func (r *SeasonRepository) GetByYearAndNameID(_ context.Context, year int, nameID string) (season.TeamSeason, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ts := range r.items {
		if ts.Year == year && ts.NameID == nameID {
			return ts, true, nil
		}
	}

	return season.TeamSeason{}, false, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.TeamSeason) (season.TeamSeason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return item, nil
}

func (r *SeasonRepository) Update(_ context.Context, item season.TeamSeason) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return false, nil
	}
	r.items[item.ID] = item

	return true, nil
}

func (r *SeasonRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}

func (r *SeasonRepository) CountDistinctYears(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	years := make(map[int]struct{})
	for _, ts := range r.items {
		years[ts.Year] = struct{}{}
	}

	return len(years), nil
}

func (r *SeasonRepository) ChampionshipCounts(_ context.Context) ([]season.ChampionshipCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, ts := range r.items {
		if ts.PlayoffFinish != nil && *ts.PlayoffFinish == 1 {
			counts[ts.NameID]++
		}
	}

	out := make([]season.ChampionshipCount, 0, len(counts))
	for nameID, count := range counts {
		out = append(out, season.ChampionshipCount{NameID: nameID, FullName: nameID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].NameID < out[j].NameID
	})

	return out, nil
}

type SettingsRepository struct {
	mu    sync.RWMutex
	items map[int]season.LeagueSettings
}

func NewSettingsRepository(settings []season.LeagueSettings) *SettingsRepository {
	items := make(map[int]season.LeagueSettings, len(settings))
	for _, s := range settings {
		items[s.Year] = s
	}

	return &SettingsRepository{items: items}
}

func (r *SettingsRepository) GetSettings(_ context.Context, year int) (season.LeagueSettings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[year]
	return s, ok, nil
}

func (r *SettingsRepository) ListSettings(_ context.Context) ([]season.LeagueSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.LeagueSettings, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })

	return out, nil
}

func (r *SettingsRepository) UpsertSettings(_ context.Context, item season.LeagueSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Year] = item

	return nil
}
