package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironhq/keeper-league/internal/usecase"
)

type syncSeasonJobRequest struct {
	LeagueID             string `json:"league_id"`
	PreserveManualFields *bool  `json:"preserve_manual_fields"`
}

func (h *Handler) RunSyncSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncSeasonJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	year, err := pathYear(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := decodeSyncSeasonJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(req.LeagueID)
	if leagueID == "" {
		settings, err := h.seasonService.LeagueSettings(ctx, year)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		leagueID = strings.TrimSpace(settings.LeagueID)
	}
	if leagueID == "" {
		writeError(ctx, w, fmt.Errorf("%w: no league id configured for %d", usecase.ErrInvalidInput, year))
		return
	}

	// Manual money fields survive a resync unless the caller opts out.
	preserveManualFields := true
	if req.PreserveManualFields != nil {
		preserveManualFields = *req.PreserveManualFields
	}

	result, err := h.syncService.SyncSeason(ctx, year, leagueID, preserveManualFields)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync season job failed", "year", year, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeSyncSeasonJobRequest tolerates an empty body so schedulers can fire
// the job without a payload.
func decodeSyncSeasonJobRequest(r *http.Request) (syncSeasonJobRequest, error) {
	var req syncSeasonJobRequest
	if r.Body == nil {
		return req, nil
	}
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return syncSeasonJobRequest{}, nil
		}
		return req, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}
