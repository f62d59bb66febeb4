package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridironhq/keeper-league/internal/domain/trade"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
)

type TradeInput struct {
	Year         int     `validate:"required,gt=0"`
	FromRosterID int     `validate:"required,gt=0"`
	ToRosterID   int     `validate:"required,gt=0"`
	Amount       float64 `validate:"gt=0"`
	Description  string
}

// TradeService owns the manually recorded money trades between rosters.
type TradeService struct {
	repo   trade.Repository
	logger *logging.Logger
}

func NewTradeService(repo trade.Repository, logger *logging.Logger) *TradeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TradeService{repo: repo, logger: logger}
}

func (s *TradeService) TradesByYear(ctx context.Context, year int) ([]trade.Trade, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list trades year=%d: %w", year, err)
	}
	return items, nil
}

func (s *TradeService) CreateTrade(ctx context.Context, input TradeInput) (trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.CreateTrade")
	defer span.End()

	item := tradeFromInput(input)
	if err := item.Validate(); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("create trade year=%d: %w", item.Year, err)
	}

	s.logger.InfoContext(ctx, "trade recorded",
		"year", created.Year,
		"from_roster", created.FromRosterID,
		"to_roster", created.ToRosterID,
		"amount", created.Amount,
	)
	return created, nil
}

func (s *TradeService) UpdateTrade(ctx context.Context, id int64, input TradeInput) (trade.Trade, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.UpdateTrade")
	defer span.End()

	item := tradeFromInput(input)
	item.ID = id
	if err := item.Validate(); err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("update trade id=%d: %w", id, err)
	}
	if !updated {
		return trade.Trade{}, fmt.Errorf("%w: trade %d", ErrNotFound, id)
	}
	return item, nil
}

func (s *TradeService) DeleteTrade(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.DeleteTrade")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete trade id=%d: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("%w: trade %d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "trade deleted", "id", id)
	return nil
}

func tradeFromInput(input TradeInput) trade.Trade {
	return trade.Trade{
		Year:         input.Year,
		FromRosterID: input.FromRosterID,
		ToRosterID:   input.ToRosterID,
		Amount:       input.Amount,
		Description:  strings.TrimSpace(input.Description),
	}
}
