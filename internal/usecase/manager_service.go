package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
)

type CreateManagerInput struct {
	NameID          string `validate:"required"`
	FullName        string `validate:"required"`
	SleeperUsername string
	SleeperUserID   string
	Email           string
	Active          bool
}

type UpdateManagerInput struct {
	FullName        *string
	SleeperUsername *string
	SleeperUserID   *string
	Email           *string
	Active          *bool
}

type SleeperIDInput struct {
	NameID        string `validate:"required"`
	SleeperUserID string `validate:"required"`
	Season        int    `validate:"required,gt=0"`
}

// ManagerService owns the league's manager roster and the season-scoped
// Sleeper account overrides used when a manager played under a different
// account for a year.
type ManagerService struct {
	repo          manager.Repository
	sleeperIDRepo manager.SleeperIDRepository
	logger        *logging.Logger
}

func NewManagerService(repo manager.Repository, sleeperIDRepo manager.SleeperIDRepository, logger *logging.Logger) *ManagerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ManagerService{
		repo:          repo,
		sleeperIDRepo: sleeperIDRepo,
		logger:        logger,
	}
}

func (s *ManagerService) ListManagers(ctx context.Context, includeInactive bool) ([]manager.Manager, error) {
	items, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return items, nil
}

func (s *ManagerService) GetManager(ctx context.Context, nameID string) (manager.Manager, error) {
	nameID = normalizeNameID(nameID)
	if nameID == "" {
		return manager.Manager{}, fmt.Errorf("%w: manager name id is required", ErrInvalidInput)
	}

	item, found, err := s.repo.GetByNameID(ctx, nameID)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("get manager name_id=%s: %w", nameID, err)
	}
	if !found {
		return manager.Manager{}, fmt.Errorf("%w: manager %s", ErrNotFound, nameID)
	}
	return item, nil
}

func (s *ManagerService) CreateManager(ctx context.Context, input CreateManagerInput) (manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.CreateManager")
	defer span.End()

	item := manager.Manager{
		NameID:          normalizeNameID(input.NameID),
		FullName:        strings.TrimSpace(input.FullName),
		SleeperUsername: strings.TrimSpace(input.SleeperUsername),
		SleeperUserID:   strings.TrimSpace(input.SleeperUserID),
		Email:           strings.TrimSpace(input.Email),
		Active:          input.Active,
	}
	if err := item.Validate(); err != nil {
		return manager.Manager{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, exists, err := s.repo.GetByNameID(ctx, item.NameID); err != nil {
		return manager.Manager{}, fmt.Errorf("check manager name_id=%s: %w", item.NameID, err)
	} else if exists {
		return manager.Manager{}, fmt.Errorf("%w: manager %s already exists", ErrInvalidInput, item.NameID)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("create manager name_id=%s: %w", item.NameID, err)
	}

	s.logger.InfoContext(ctx, "manager created", "name_id", created.NameID)
	return created, nil
}

func (s *ManagerService) UpdateManager(ctx context.Context, nameID string, input UpdateManagerInput) (manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.UpdateManager")
	defer span.End()

	item, err := s.GetManager(ctx, nameID)
	if err != nil {
		return manager.Manager{}, err
	}

	if input.FullName != nil {
		item.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.SleeperUsername != nil {
		item.SleeperUsername = strings.TrimSpace(*input.SleeperUsername)
	}
	if input.SleeperUserID != nil {
		item.SleeperUserID = strings.TrimSpace(*input.SleeperUserID)
	}
	if input.Email != nil {
		item.Email = strings.TrimSpace(*input.Email)
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	if err := item.Validate(); err != nil {
		return manager.Manager{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("update manager name_id=%s: %w", item.NameID, err)
	}
	if !updated {
		return manager.Manager{}, fmt.Errorf("%w: manager %s", ErrNotFound, item.NameID)
	}

	return item, nil
}

func (s *ManagerService) DeleteManager(ctx context.Context, nameID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.DeleteManager")
	defer span.End()

	nameID = normalizeNameID(nameID)
	if nameID == "" {
		return fmt.Errorf("%w: manager name id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, nameID)
	if err != nil {
		return fmt.Errorf("delete manager name_id=%s: %w", nameID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: manager %s", ErrNotFound, nameID)
	}

	s.logger.InfoContext(ctx, "manager deleted", "name_id", nameID)
	return nil
}

// ListSleeperIDs returns the override mappings, scoped to one season when
// season is positive.
func (s *ManagerService) ListSleeperIDs(ctx context.Context, seasonYear int) ([]manager.SleeperIDMapping, error) {
	var (
		items []manager.SleeperIDMapping
		err   error
	)
	if seasonYear > 0 {
		items, err = s.sleeperIDRepo.ListMappingsBySeason(ctx, seasonYear)
	} else {
		items, err = s.sleeperIDRepo.ListMappings(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list sleeper id mappings: %w", err)
	}
	return items, nil
}

func (s *ManagerService) CreateSleeperID(ctx context.Context, input SleeperIDInput) (manager.SleeperIDMapping, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.CreateSleeperID")
	defer span.End()

	item := manager.SleeperIDMapping{
		NameID:        normalizeNameID(input.NameID),
		SleeperUserID: strings.TrimSpace(input.SleeperUserID),
		Season:        input.Season,
	}
	if err := item.Validate(); err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// The mapping must point at a known manager.
	if _, found, err := s.repo.GetByNameID(ctx, item.NameID); err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("check manager name_id=%s: %w", item.NameID, err)
	} else if !found {
		return manager.SleeperIDMapping{}, fmt.Errorf("%w: manager %s", ErrNotFound, item.NameID)
	}

	created, err := s.sleeperIDRepo.CreateMapping(ctx, item)
	if err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("create sleeper id mapping name_id=%s season=%d: %w", item.NameID, item.Season, err)
	}
	return created, nil
}

func (s *ManagerService) UpdateSleeperID(ctx context.Context, id int64, input SleeperIDInput) (manager.SleeperIDMapping, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.UpdateSleeperID")
	defer span.End()

	item := manager.SleeperIDMapping{
		ID:            id,
		NameID:        normalizeNameID(input.NameID),
		SleeperUserID: strings.TrimSpace(input.SleeperUserID),
		Season:        input.Season,
	}
	if err := item.Validate(); err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.sleeperIDRepo.UpdateMapping(ctx, item)
	if err != nil {
		return manager.SleeperIDMapping{}, fmt.Errorf("update sleeper id mapping id=%d: %w", id, err)
	}
	if !updated {
		return manager.SleeperIDMapping{}, fmt.Errorf("%w: sleeper id mapping %d", ErrNotFound, id)
	}
	return item, nil
}

func (s *ManagerService) DeleteSleeperID(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.DeleteSleeperID")
	defer span.End()

	deleted, err := s.sleeperIDRepo.DeleteMapping(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sleeper id mapping id=%d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("%w: sleeper id mapping %d", ErrNotFound, id)
	}
	return nil
}

// normalizeNameID keeps manager slugs lowercase so lookups are stable no
// matter how the id was typed.
func normalizeNameID(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
