package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gridironhq/keeper-league/internal/usecase"
)

func (h *Handler) ListKeepers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListKeepers")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.keeperService.KeepersByYear(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list keepers failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, keeperBoardToDTO(ctx, board))
}

func (h *Handler) SaveRosterKeepers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveRosterKeepers")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rosterID, err := pathRosterID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveKeepersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.keeperService.SaveKeepers(ctx, year, rosterID, keeperInputsFromRecords(req.Keepers))
	if err != nil {
		h.logger.WarnContext(ctx, "save roster keepers failed", "year", year, "roster_id", rosterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, keepersToDTO(saved))
}

func (h *Handler) GetTradeLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTradeLock")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lock, err := h.keeperService.TradeLock(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get trade lock failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeLockToDTO(lock))
}

func (h *Handler) SetTradeLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTradeLock")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setTradeLockRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lock, err := h.keeperService.SetTradeLock(ctx, year, req.Locked)
	if err != nil {
		h.logger.WarnContext(ctx, "set trade lock failed", "year", year, "locked", req.Locked, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeLockToDTO(lock))
}

func (h *Handler) ListFinalRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFinalRosters")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rosters, err := h.keeperService.FinalRosters(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list final rosters failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosters)
}

func pathRosterID(r *http.Request) (int, error) {
	rosterID, err := strconv.Atoi(r.PathValue("rosterID"))
	if err != nil || rosterID <= 0 {
		return 0, fmt.Errorf("%w: invalid roster id %q", usecase.ErrInvalidInput, r.PathValue("rosterID"))
	}
	return rosterID, nil
}
