package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironhq/keeper-league/internal/domain/keeper"
	"github.com/gridironhq/keeper-league/internal/domain/manager"
	"github.com/gridironhq/keeper-league/internal/domain/season"
	"github.com/gridironhq/keeper-league/internal/infrastructure/repository/memory"
	"github.com/gridironhq/keeper-league/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	managerRepo := memory.NewManagerRepository([]manager.Manager{
		{NameID: "john", FullName: "John Smith", SleeperUserID: "u1", Active: true},
		{NameID: "sara", FullName: "Sara Lee", SleeperUserID: "u2", Active: true},
	})
	sleeperIDRepo := memory.NewSleeperIDRepository(nil)
	seasonRepo := memory.NewSeasonRepository([]season.TeamSeason{
		{Year: 2024, NameID: "john", TeamName: "Team John", Wins: 10, Losses: 4},
	})
	settingsRepo := memory.NewSettingsRepository(nil)
	keeperRepo := memory.NewKeeperRepository([]keeper.Keeper{
		{Year: 2024, RosterID: 1, PlayerID: "4046", PlayerName: "Patrick Mahomes"},
	})
	if _, err := keeperRepo.UpsertTradeLock(t.Context(), 2024, true); err != nil {
		t.Fatalf("seed trade lock: %v", err)
	}
	tradeRepo := memory.NewTradeRepository(nil)

	managerService := usecase.NewManagerService(managerRepo, sleeperIDRepo, nil)
	seasonService := usecase.NewSeasonService(seasonRepo, settingsRepo, managerRepo, nil)
	keeperService := usecase.NewKeeperService(keeperRepo, settingsRepo, nil, nil, nil)
	tradeService := usecase.NewTradeService(tradeRepo, nil)
	matchupService := usecase.NewMatchupService(nil, nil, nil, nil, nil)

	handler := NewHandler(managerService, seasonService, keeperService, tradeService, matchupService, nil, nil, nil)
	return NewRouter(handler, nil, []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
}

func TestRouter_CreateAndGetManager(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"name_id":"Mike","full_name":"Mike Jones","active":true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/managers", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/managers/mike", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if got, _ := data["full_name"].(string); got != "Mike Jones" {
		t.Fatalf("expected full_name=Mike Jones, got %v", data["full_name"])
	}
}

func TestRouter_CreateManager_RejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/managers", strings.NewReader(`{"name_id":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestRouter_ListManagerSeasons(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/managers/john/seasons", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one season row, got %v", body["data"])
	}
}

func TestRouter_SaveKeepers_LockedSeason(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"keepers":[{"player_id":"6794","player_name":"Justin Jefferson"}]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/keepers/2024/rosters/1", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SaveKeepers_UnlockedSeason(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"keepers":[{"player_id":"6794","player_name":"Justin Jefferson","position":"WR","team":"MIN"}]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/keepers/2025/rosters/3", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one saved keeper, got %v", body["data"])
	}
}

func TestRouter_GetTradeLock(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/keepers/2024/trade-lock", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if locked, _ := data["locked"].(bool); !locked {
		t.Fatalf("expected locked=true, got %v", data["locked"])
	}
}

func TestRouter_LeagueSettingsDefault(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/2026/settings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body["data"])
	}
	if got, _ := data["sync_status"].(string); got != season.SyncStatusPending {
		t.Fatalf("expected sync_status=pending, got %v", data["sync_status"])
	}
}

func TestRouter_SeasonMatchups_RequiresLeagueID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/2024/matchups", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InternalJob_RejectsBadToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-season/2024", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}
