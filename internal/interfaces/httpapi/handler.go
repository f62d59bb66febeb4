package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/gridironhq/keeper-league/internal/platform/logging"
	"github.com/gridironhq/keeper-league/internal/usecase"
)

type Handler struct {
	managerService *usecase.ManagerService
	seasonService  *usecase.SeasonService
	keeperService  *usecase.KeeperService
	tradeService   *usecase.TradeService
	matchupService *usecase.MatchupService
	syncService    *usecase.SyncService
	liveHub        *LiveHub
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	managerService *usecase.ManagerService,
	seasonService *usecase.SeasonService,
	keeperService *usecase.KeeperService,
	tradeService *usecase.TradeService,
	matchupService *usecase.MatchupService,
	syncService *usecase.SyncService,
	liveHub *LiveHub,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		managerService: managerService,
		seasonService:  seasonService,
		keeperService:  keeperService,
		tradeService:   tradeService,
		matchupService: matchupService,
		syncService:    syncService,
		liveHub:        liveHub,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// pathYear parses the {year} path segment shared by most routes.
func pathYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: invalid year %q", usecase.ErrInvalidInput, r.PathValue("year"))
	}
	return year, nil
}

func invalidQueryParam(name, value string) error {
	return fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, value)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", usecase.ErrInvalidInput, r.PathValue("id"))
	}
	return id, nil
}
