package season

import "context"

// Repository describes team season persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]TeamSeason, error)
	ListByYear(ctx context.Context, year int) ([]TeamSeason, error)
	ListByNameID(ctx context.Context, nameID string) ([]TeamSeason, error)
	GetByID(ctx context.Context, id int64) (TeamSeason, bool, error)
	GetByYearAndNameID(ctx context.Context, year int, nameID string) (TeamSeason, bool, error)
	Create(ctx context.Context, item TeamSeason) (TeamSeason, error)
	Update(ctx context.Context, item TeamSeason) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	CountDistinctYears(ctx context.Context) (int, error)
	ChampionshipCounts(ctx context.Context) ([]ChampionshipCount, error)
}

// SettingsRepository describes league settings persistence.
type SettingsRepository interface {
	GetSettings(ctx context.Context, year int) (LeagueSettings, bool, error)
	ListSettings(ctx context.Context) ([]LeagueSettings, error)
	UpsertSettings(ctx context.Context, item LeagueSettings) error
}
