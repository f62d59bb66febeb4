package httpapi

import (
	"net/http"

	"github.com/gridironhq/keeper-league/internal/usecase"
)

func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTrades")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trades, err := h.tradeService.TradesByYear(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list trades failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tradeDTO, 0, len(trades))
	for _, item := range trades {
		items = append(items, tradeToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTrade")
	defer span.End()

	var req tradeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tradeService.CreateTrade(ctx, tradeInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create trade failed", "year", req.Year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tradeToDTO(item))
}

func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTrade")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tradeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tradeService.UpdateTrade(ctx, id, tradeInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update trade failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeToDTO(item))
}

func (h *Handler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTrade")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tradeService.DeleteTrade(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete trade failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func tradeInputFromRequest(req tradeRequest) usecase.TradeInput {
	return usecase.TradeInput{
		Year:         req.Year,
		FromRosterID: req.FromRosterID,
		ToRosterID:   req.ToRosterID,
		Amount:       req.Amount,
		Description:  req.Description,
	}
}
