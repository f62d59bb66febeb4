package httpapi

import (
	"net/http"

	"github.com/gridironhq/keeper-league/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.ListSeasons(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSeasonsToDTO(ctx, seasons))
}

func (h *Handler) ListSeasonsByYear(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonsByYear")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasons, err := h.seasonService.SeasonsByYear(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons by year failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSeasonsToDTO(ctx, seasons))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req saveSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.CreateSeason(ctx, seasonInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "year", req.Year, "name_id", req.NameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamSeasonToDTO(ctx, item))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.UpdateSeason(ctx, id, seasonInputFromRequest(req))
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSeasonToDTO(ctx, item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.seasonService.DeleteSeason(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) GetLeagueSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueSettings")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.seasonService.LeagueSettings(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get league settings failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueSettingsToDTO(ctx, settings))
}

func (h *Handler) SaveLeagueSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLeagueSettings")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveLeagueSettingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.seasonService.SaveLeagueSettings(ctx, year, usecase.SaveLeagueSettingsInput{
		LeagueID:  req.LeagueID,
		DraftDate: req.DraftDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save league settings failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueSettingsToDTO(ctx, settings))
}

func (h *Handler) GetLeagueStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStats")
	defer span.End()

	stats, err := h.seasonService.LeagueStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get league stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueStatsToDTO(ctx, stats))
}

func seasonInputFromRequest(req saveSeasonRequest) usecase.SaveSeasonInput {
	return usecase.SaveSeasonInput{
		Year:              req.Year,
		NameID:            req.NameID,
		TeamName:          req.TeamName,
		Wins:              req.Wins,
		Losses:            req.Losses,
		PointsFor:         req.PointsFor,
		PointsAgainst:     req.PointsAgainst,
		RegularSeasonRank: req.RegularSeasonRank,
		PlayoffFinish:     req.PlayoffFinish,
		Dues:              req.Dues,
		Payout:            req.Payout,
		DuesChumpion:      req.DuesChumpion,
		HighGame:          req.HighGame,
	}
}
