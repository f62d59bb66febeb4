package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	registerManagerRoutes(mux, handler)
	registerSeasonRoutes(mux, handler)
	registerMatchupRoutes(mux, handler)
	registerKeeperRoutes(mux, handler)
	registerTradeRoutes(mux, handler)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/managers", handler.ListManagers)
	mux.HandleFunc("POST /v1/managers", handler.CreateManager)
	mux.HandleFunc("GET /v1/managers/{nameID}", handler.GetManager)
	mux.HandleFunc("PUT /v1/managers/{nameID}", handler.UpdateManager)
	mux.HandleFunc("DELETE /v1/managers/{nameID}", handler.DeleteManager)
	mux.HandleFunc("GET /v1/managers/{nameID}/seasons", handler.ListManagerSeasons)

	mux.HandleFunc("GET /v1/manager-sleeper-ids", handler.ListSleeperIDs)
	mux.HandleFunc("POST /v1/manager-sleeper-ids", handler.CreateSleeperID)
	mux.HandleFunc("PUT /v1/manager-sleeper-ids/{id}", handler.UpdateSleeperID)
	mux.HandleFunc("DELETE /v1/manager-sleeper-ids/{id}", handler.DeleteSleeperID)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("POST /v1/seasons", handler.CreateSeason)
	mux.HandleFunc("PUT /v1/seasons/{id}", handler.UpdateSeason)
	mux.HandleFunc("DELETE /v1/seasons/{id}", handler.DeleteSeason)
	mux.HandleFunc("GET /v1/seasons/{year}", handler.ListSeasonsByYear)
	mux.HandleFunc("GET /v1/seasons/{year}/settings", handler.GetLeagueSettings)
	mux.HandleFunc("PUT /v1/seasons/{year}/settings", handler.SaveLeagueSettings)
	mux.HandleFunc("GET /v1/stats/league", handler.GetLeagueStats)
}

func registerMatchupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{year}/matchups", handler.ListSeasonMatchups)
	mux.HandleFunc("GET /v1/seasons/{year}/playoffs", handler.ListPlayoffMatchups)
	mux.HandleFunc("GET /v1/seasons/{year}/active-week/matchups", handler.GetActiveWeekMatchups)
	mux.HandleFunc("GET /v1/live/ws", handler.LiveMatchupsSocket)
}

func registerKeeperRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/keepers/{year}", handler.ListKeepers)
	mux.HandleFunc("PUT /v1/keepers/{year}/rosters/{rosterID}", handler.SaveRosterKeepers)
	mux.HandleFunc("GET /v1/keepers/{year}/trade-lock", handler.GetTradeLock)
	mux.HandleFunc("PUT /v1/keepers/{year}/trade-lock", handler.SetTradeLock)
	mux.HandleFunc("GET /v1/seasons/{year}/rosters", handler.ListFinalRosters)
}

func registerTradeRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/trades/{year}", handler.ListTrades)
	mux.HandleFunc("POST /v1/trades", handler.CreateTrade)
	mux.HandleFunc("PUT /v1/trades/{id}", handler.UpdateTrade)
	mux.HandleFunc("DELETE /v1/trades/{id}", handler.DeleteTrade)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-season/{year}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncSeasonJob)))
}
