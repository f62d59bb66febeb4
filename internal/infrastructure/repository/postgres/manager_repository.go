package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
	qb "github.com/gridironhq/keeper-league/internal/platform/querybuilder"
)

type ManagerRepository struct {
	db *sqlx.DB
}

func NewManagerRepository(db *sqlx.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

func (r *ManagerRepository) List(ctx context.Context, includeInactive bool) ([]manager.Manager, error) {
	builder := qb.Select("*").From("managers").OrderBy("name_id")
	if !includeInactive {
		builder = builder.Where(qb.Eq("active", true))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select managers query: %w", err)
	}

	var rows []managerTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select managers: %w", err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ManagerRepository) GetByNameID(ctx context.Context, nameID string) (manager.Manager, bool, error) {
	query, args, err := qb.Select("*").From("managers").
		Where(qb.Eq("name_id", nameID)).
		ToSQL()
	if err != nil {
		return manager.Manager{}, false, fmt.Errorf("build get manager query: %w", err)
	}

	var row managerTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return manager.Manager{}, false, nil
		}
		return manager.Manager{}, false, fmt.Errorf("get manager by name_id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ManagerRepository) Create(ctx context.Context, item manager.Manager) (manager.Manager, error) {
	query, args, err := qb.InsertInto("managers").
		Columns("name_id", "full_name", "sleeper_username", "sleeper_user_id", "email", "active").
		Values(item.NameID, item.FullName, item.SleeperUsername, item.SleeperUserID, item.Email, item.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSQL()
	if err != nil {
		return manager.Manager{}, fmt.Errorf("build insert manager query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return manager.Manager{}, fmt.Errorf("insert manager: %w", err)
	}

	return item, nil
}

func (r *ManagerRepository) Update(ctx context.Context, item manager.Manager) (bool, error) {
	query, args, err := qb.Update("managers").
		Set("full_name", item.FullName).
		Set("sleeper_username", item.SleeperUsername).
		Set("sleeper_user_id", item.SleeperUserID).
		Set("email", item.Email).
		Set("active", item.Active).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("name_id", item.NameID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update manager query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update manager: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected update manager: %w", err)
	}

	return affected > 0, nil
}

func (r *ManagerRepository) Delete(ctx context.Context, nameID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM managers WHERE name_id = $1", nameID)
	if err != nil {
		return false, fmt.Errorf("delete manager: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete manager: %w", err)
	}

	return affected > 0, nil
}

type SleeperIDRepository struct {
	db *sqlx.DB
}

func NewSleeperIDRepository(db *sqlx.DB) *SleeperIDRepository {
	return &SleeperIDRepository{db: db}
}

func (r *SleeperIDRepository) ListMappings(ctx context.Context) ([]manager.SleeperIDMapping, error) {
	query, args, err := qb.Select("*").From("manager_sleeper_ids").
		OrderBy("season DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sleeper id mappings query: %w", err)
	}

	return r.selectMappings(ctx, query, args)
}

func (r *SleeperIDRepository) ListMappingsBySeason(ctx context.Context, season int) ([]manager.SleeperIDMapping, error) {
	query, args, err := qb.Select("*").From("manager_sleeper_ids").
		Where(qb.Eq("season", season)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sleeper id mappings by season query: %w", err)
	}

	return r.selectMappings(ctx, query, args)
}

func (r *SleeperIDRepository) selectMappings(ctx context.Context, query string, args []any) ([]manager.SleeperIDMapping, error) {
	var rows []sleeperIDTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sleeper id mappings: %w", err)
	}

	out := make([]manager.SleeperIDMapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SleeperIDRepository) CreateMapping(ctx context.Context, item manager.SleeperIDMapping) (manager.SleeperIDMapping, error) {
	query, args, err := qb.InsertInto("manager_sleeper_ids").
		Columns("name_id", "sleeper_user_id", "season").
		Values(item.NameID, item.SleeperUserID, item.Season).
		Suffix("RETURNING id, created_at, updated_at").
		ToSQL()
	if err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("build insert sleeper id mapping query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("insert sleeper id mapping: %w", err)
	}

	return item, nil
}

func (r *SleeperIDRepository) UpdateMapping(ctx context.Context, item manager.SleeperIDMapping) (bool, error) {
	query, args, err := qb.Update("manager_sleeper_ids").
		Set("name_id", item.NameID).
		Set("sleeper_user_id", item.SleeperUserID).
		Set("season", item.Season).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update sleeper id mapping query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update sleeper id mapping: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected update sleeper id mapping: %w", err)
	}

	return affected > 0, nil
}

func (r *SleeperIDRepository) DeleteMapping(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM manager_sleeper_ids WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete sleeper id mapping: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected delete sleeper id mapping: %w", err)
	}

	return affected > 0, nil
}
