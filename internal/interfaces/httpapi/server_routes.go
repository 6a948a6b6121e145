package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/videos/{videoID}/status", handler.GetVideoStatus)
	mux.HandleFunc("GET /v1/video-analyses", handler.ListVideoAnalyses)
	mux.HandleFunc("GET /v1/video-analyses/{analysisID}", handler.GetVideoAnalysis)
	mux.HandleFunc("GET /v1/video-analyses/{analysisID}/shot-map", handler.GetShotMap)
	mux.HandleFunc("GET /v1/match-logs", handler.ListMatchLogs)
	mux.HandleFunc("GET /v1/performance", handler.GetPerformance)
	mux.HandleFunc("GET /v1/league-table", handler.ListLeagueTable)
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, apiToken string) {
	mux.Handle("POST /v1/videos", RequireAuth(apiToken, http.HandlerFunc(handler.UploadVideo)))
	mux.Handle("DELETE /v1/video-analyses/{analysisID}", RequireAuth(apiToken, http.HandlerFunc(handler.DeleteVideoAnalysis)))
	mux.Handle("POST /v1/match-logs", RequireAuth(apiToken, http.HandlerFunc(handler.CreateMatchLog)))
	mux.Handle("PATCH /v1/match-logs/{matchID}", RequireAuth(apiToken, http.HandlerFunc(handler.PatchMatchLog)))
	mux.Handle("DELETE /v1/match-logs/{matchID}", RequireAuth(apiToken, http.HandlerFunc(handler.DeleteMatchLog)))
	mux.Handle("POST /v1/league-table/teams", RequireAuth(apiToken, http.HandlerFunc(handler.AddLeagueTeam)))
	mux.Handle("PATCH /v1/league-table/teams/{teamName}", RequireAuth(apiToken, http.HandlerFunc(handler.UpdateLeagueTeam)))
	mux.Handle("DELETE /v1/league-table/teams/{teamName}", RequireAuth(apiToken, http.HandlerFunc(handler.DeleteLeagueTeam)))
	mux.Handle("PUT /v1/settings", RequireAuth(apiToken, http.HandlerFunc(handler.SaveSettings)))
}
