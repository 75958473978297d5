package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerPublicCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/modes/{mode}/weeks/{week}/fixtures", handler.ListFixturesByWeek)
}

func registerAuthorizedPredictionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/modes/{mode}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPrediction)))
	mux.Handle("DELETE /v1/modes/{mode}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.ResetPredictions)))
	mux.Handle("GET /v1/modes/{mode}/weeks/{week}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPredictionsByWeek)))
}

func registerAuthorizedStatsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/modes/{mode}/weeks/{week}/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetWeeklyStats)))
	mux.Handle("GET /v1/modes/{mode}/weeks/{week}/reveal", RequireAuth(verifier, http.HandlerFunc(handler.CanRevealWeek)))
	mux.Handle("GET /v1/modes/{mode}/progress", RequireAuth(verifier, http.HandlerFunc(handler.ListWeekProgress)))
	mux.Handle("GET /v1/modes/{mode}/summary", RequireAuth(verifier, http.HandlerFunc(handler.GetOverallSummary)))
}
