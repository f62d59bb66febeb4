package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/keeper-league/internal/domain/season"
	qb "github.com/gridironhq/keeper-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// Seasons list newest year first, best rank first inside a year, with
// unranked rows last.
const teamSeasonOrder = "year DESC, regular_season_rank ASC NULLS LAST, name_id"

func (r *SeasonRepository) ListAll(ctx context.Context) ([]season.TeamSeason, error) {
	query, args, err := qb.Select("*").From("team_seasons").
		OrderBy(teamSeasonOrder).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team seasons query: %w", err)
	}

	return r.selectSeasons(ctx, query, args)
}

func (r *SeasonRepository) ListByYear(ctx context.Context, year int) ([]season.TeamSeason, error) {
	query, args, err := qb.Select("*").From("team_seasons").
		Where(qb.Eq("year", year)).
		OrderBy(teamSeasonOrder).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team seasons by year query: %w", err)
	}

	return r.selectSeasons(ctx, query, args)
}

func (r *SeasonRepository) ListByNameID(ctx context.Context, nameID string) ([]season.TeamSeason, error) {
	query, args, err := qb.Select("*").From("team_seasons").
		Where(qb.Eq("name_id", nameID)).
		OrderBy("year DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team seasons by manager query: %w", err)
	}

	return r.selectSeasons(ctx, query, args)
}

func (r *SeasonRepository) selectSeasons(ctx context.Context, query string, args []any) ([]season.TeamSeason, error) {
	var rows []teamSeasonTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team seasons: %w", err)
	}

	out := make([]season.TeamSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (season.TeamSeason, bool, error) {
	query, args, err := qb.Select("*").From("team_seasons").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return season.TeamSeason{}, false, fmt.Errorf("build get team season query: %w", err)
	}

	var row teamSeasonTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.TeamSeason{}, false, nil
		}
		return season.TeamSeason{}, false, fmt.Errorf("get team season by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetByYearAndNameID(ctx context.Context, year int, nameID string) (season.TeamSeason, bool, error) {
	query, args, err := qb.Select("*").From("team_seasons").
		Where(
			qb.Eq("year", year),
			qb.Eq("name_id", nameID),
		).
		ToSQL()
	if err != nil {
		return season.TeamSeason{}, false, fmt.Errorf("build get team season by year and manager query: %w", err)
	}

	var row teamSeasonTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.TeamSeason{}, false, nil
		}
		return season.TeamSeason{}, false, fmt.Errorf("get team season by year and manager: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.TeamSeason) (season.TeamSeason, error) {
	query, args, err := qb.InsertInto("team_seasons").
		Columns(
			"year", "name_id", "team_name", "wins", "losses",
			"points_for", "points_against", "regular_season_rank", "playoff_finish",
			"dues", "payout", "dues_chumpion", "high_game",
		).
		Values(
			item.Year, item.NameID, item.TeamName, item.Wins, item.Losses,
			item.PointsFor, item.PointsAgainst, item.RegularSeasonRank, item.PlayoffFinish,
			item.Dues, item.Payout, item.DuesChumpion, item.HighGame,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSQL()
	if err != nil {
		return season.TeamSeason{}, fmt.Errorf("build insert team season query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return season.TeamSeason{}, fmt.Errorf("insert team season: %w", err)
	}

	return item, nil
}

func (r *SeasonRepository) Update(ctx context.Context, item season.TeamSeason) (bool, error) {
	query, args, err := qb.Update("team_seasons").
		Set("team_name", item.TeamName).
		Set("wins", item.Wins).
		Set("losses", item.Losses).
		Set("points_for", item.PointsFor).
		Set("points_against", item.PointsAgainst).
		Set("regular_season_rank", item.RegularSeasonRank).
		Set("playoff_finish", item.PlayoffFinish).
		Set("dues", item.Dues).
		Set("payout", item.Payout).
		Set("dues_chumpion", item.DuesChumpion).
		Set("high_game", item.HighGame).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update team season query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update team season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected update team season: %w", err)
	}

	return affected > 0, nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM team_seasons WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete team season: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete team season: %w", err)
	}

	return affected > 0, nil
}

func (r *SeasonRepository) CountDistinctYears(ctx context.Context) (int, error) {
	var count int
	if err := getContext(ctx, r.db, &count, "SELECT COUNT(DISTINCT year) FROM team_seasons"); err != nil {
		return 0, fmt.Errorf("count distinct season years: %w", err)
	}

	return count, nil
}

func (r *SeasonRepository) ChampionshipCounts(ctx context.Context) ([]season.ChampionshipCount, error) {
	const query = `
SELECT ts.name_id, COALESCE(m.full_name, ts.name_id) AS full_name, COUNT(*) AS count
FROM team_seasons ts
LEFT JOIN managers m ON m.name_id = ts.name_id
WHERE ts.playoff_finish = 1
GROUP BY ts.name_id, m.full_name
ORDER BY count DESC, ts.name_id`

	type championshipRow struct {
		NameID   string `db:"name_id"`
		FullName string `db:"full_name"`
		Count    int    `db:"count"`
	}

	var rows []championshipRow
	if err := selectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("count championships: %w", err)
	}

	out := make([]season.ChampionshipCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, season.ChampionshipCount{
			NameID:   row.NameID,
			FullName: row.FullName,
			Count:    row.Count,
		})
	}

	return out, nil
}

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetSettings(ctx context.Context, year int) (season.LeagueSettings, bool, error) {
	query, args, err := qb.Select("*").From("league_settings").
		Where(qb.Eq("year", year)).
		ToSQL()
	if err != nil {
		return season.LeagueSettings{}, false, fmt.Errorf("build get league settings query: %w", err)
	}

	var row leagueSettingsTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.LeagueSettings{}, false, nil
		}
		return season.LeagueSettings{}, false, fmt.Errorf("get league settings: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SettingsRepository) ListSettings(ctx context.Context) ([]season.LeagueSettings, error) {
	query, args, err := qb.Select("*").From("league_settings").
		OrderBy("year DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league settings query: %w", err)
	}

	var rows []leagueSettingsTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league settings: %w", err)
	}

	out := make([]season.LeagueSettings, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SettingsRepository) UpsertSettings(ctx context.Context, item season.LeagueSettings) error {
	query, args, err := qb.InsertInto("league_settings").
		Columns("year", "league_id", "draft_date", "sync_status", "last_synced", "last_sync_attempt").
		Values(item.Year, item.LeagueID, item.DraftDate, item.SyncStatus, item.LastSynced, item.LastSyncAttempt).
		Suffix(`ON CONFLICT (year)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    draft_date = EXCLUDED.draft_date,
    sync_status = EXCLUDED.sync_status,
    last_synced = EXCLUDED.last_synced,
    last_sync_attempt = EXCLUDED.last_sync_attempt,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert league settings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league settings: %w", err)
	}

	return nil
}
