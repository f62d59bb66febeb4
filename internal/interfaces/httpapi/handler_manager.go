package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gridironhq/keeper-league/internal/usecase"
)

func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagers")
	defer span.End()

	includeInactive := strings.EqualFold(r.URL.Query().Get("include_inactive"), "true")

	managers, err := h.managerService.ListManagers(ctx, includeInactive)
	if err != nil {
		h.logger.WarnContext(ctx, "list managers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]managerDTO, 0, len(managers))
	for _, item := range managers {
		items = append(items, managerToDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManager")
	defer span.End()

	nameID := strings.TrimSpace(r.PathValue("nameID"))

	item, err := h.managerService.GetManager(ctx, nameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager failed", "name_id", nameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, managerToDTO(ctx, item))
}

func (h *Handler) CreateManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateManager")
	defer span.End()

	var req createManagerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.managerService.CreateManager(ctx, usecase.CreateManagerInput{
		NameID:          req.NameID,
		FullName:        req.FullName,
		SleeperUsername: req.SleeperUsername,
		SleeperUserID:   req.SleeperUserID,
		Email:           req.Email,
		Active:          req.Active,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create manager failed", "name_id", req.NameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, managerToDTO(ctx, item))
}

func (h *Handler) UpdateManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateManager")
	defer span.End()

	nameID := strings.TrimSpace(r.PathValue("nameID"))

	var req updateManagerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.managerService.UpdateManager(ctx, nameID, usecase.UpdateManagerInput{
		FullName:        req.FullName,
		SleeperUsername: req.SleeperUsername,
		SleeperUserID:   req.SleeperUserID,
		Email:           req.Email,
		Active:          req.Active,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update manager failed", "name_id", nameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, managerToDTO(ctx, item))
}

func (h *Handler) DeleteManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteManager")
	defer span.End()

	nameID := strings.TrimSpace(r.PathValue("nameID"))

	if err := h.managerService.DeleteManager(ctx, nameID); err != nil {
		h.logger.WarnContext(ctx, "delete manager failed", "name_id", nameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) ListManagerSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagerSeasons")
	defer span.End()

	nameID := strings.TrimSpace(r.PathValue("nameID"))

	seasons, err := h.seasonService.ManagerSeasons(ctx, nameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list manager seasons failed", "name_id", nameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSeasonsToDTO(ctx, seasons))
}

func (h *Handler) ListSleeperIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSleeperIDs")
	defer span.End()

	seasonYear := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, invalidQueryParam("season", raw))
			return
		}
		seasonYear = parsed
	}

	mappings, err := h.managerService.ListSleeperIDs(ctx, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "list sleeper ids failed", "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]sleeperIDDTO, 0, len(mappings))
	for _, item := range mappings {
		items = append(items, sleeperIDToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateSleeperID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSleeperID")
	defer span.End()

	var req sleeperIDRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.managerService.CreateSleeperID(ctx, usecase.SleeperIDInput{
		NameID:        req.NameID,
		SleeperUserID: req.SleeperUserID,
		Season:        req.Season,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create sleeper id failed", "name_id", req.NameID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sleeperIDToDTO(item))
}

func (h *Handler) UpdateSleeperID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSleeperID")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sleeperIDRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.managerService.UpdateSleeperID(ctx, id, usecase.SleeperIDInput{
		NameID:        req.NameID,
		SleeperUserID: req.SleeperUserID,
		Season:        req.Season,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update sleeper id failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sleeperIDToDTO(item))
}

func (h *Handler) DeleteSleeperID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSleeperID")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.managerService.DeleteSleeperID(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete sleeper id failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
