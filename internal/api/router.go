package api

import (
	"net/http"

	"pick-analytics-service/internal/api/handlers"
	"pick-analytics-service/internal/services"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// A non-positive maxUploadBytes selects handlers.DefaultMaxUploadBytes.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.AnalysisService, defaults services.Options, maxUploadBytes int64) http.Handler {
	r := mux.NewRouter()

	analyses := &handlers.AnalysisHandler{
		Service:        svc,
		Defaults:       defaults,
		MaxUploadBytes: maxUploadBytes,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/analyses", analyses.Create).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(requestIDMiddleware, loggingMiddleware)

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		gorillahandlers.ExposedHeaders([]string{requestIDHeader, "Content-Disposition"}),
	)
	return gorillahandlers.RecoveryHandler(gorillahandlers.PrintRecoveryStack(true))(cors(r))
}
