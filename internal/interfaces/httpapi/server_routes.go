package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/elites", handler.ListElites)
	mux.HandleFunc("GET /v1/badges", handler.ListBadges)
	mux.HandleFunc("POST /v1/admin/elites", handler.UpdateElite)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/update-leaderboard", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunUpdateLeaderboardJob)))
	mux.Handle("POST /v1/internal/jobs/reconcile-badges", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileBadgesJob)))
}
