package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/usecase"
)

func (h *Handler) ListSeasonMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonMatchups")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID, managers, err := h.resolveLeagueContext(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve league context failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	weeks, err := h.matchupService.SeasonMatchups(ctx, leagueID, managers)
	if err != nil {
		h.logger.WarnContext(ctx, "list season matchups failed", "year", year, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeks)
}

func (h *Handler) ListPlayoffMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayoffMatchups")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID, managers, err := h.resolveLeagueContext(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve league context failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	rounds, err := h.matchupService.PlayoffMatchups(ctx, leagueID, managers)
	if err != nil {
		h.logger.WarnContext(ctx, "list playoff matchups failed", "year", year, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rounds)
}

func (h *Handler) GetActiveWeekMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveWeekMatchups")
	defer span.End()

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed <= 0 {
			writeError(ctx, w, invalidQueryParam("week", raw))
			return
		}
		week = parsed
	}

	leagueID, managers, err := h.resolveLeagueContext(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve league context failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	lineups, err := h.matchupService.WeeklyMatchupsWithLineups(ctx, leagueID, week, managers, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get active week matchups failed", "year", year, "week", week, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineups)
}

// resolveLeagueContext maps a season year to its configured Sleeper league
// id and the full manager list used for display names.
func (h *Handler) resolveLeagueContext(ctx context.Context, year int) (string, []manager.Manager, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.resolveLeagueContext")
	defer span.End()

	settings, err := h.seasonService.LeagueSettings(ctx, year)
	if err != nil {
		return "", nil, err
	}
	leagueID := strings.TrimSpace(settings.LeagueID)
	if leagueID == "" {
		return "", nil, fmt.Errorf("%w: no league id configured for %d", usecase.ErrInvalidInput, year)
	}

	managers, err := h.managerService.ListManagers(ctx, true)
	if err != nil {
		return "", nil, err
	}

	return leagueID, managers, nil
}
