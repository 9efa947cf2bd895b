package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/handler/analyze"
	"github.com/yash6810/Plutus/internal/middleware"
	"github.com/yash6810/Plutus/internal/service/honeypot"
	"github.com/yash6810/Plutus/pkg/utils"
)

// NewRouter wires HTTP routes to the orchestration core. Health stays
// outside the authenticated group so probes need no key.
func NewRouter(orchestrator *honeypot.Orchestrator, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	analyzeHandler := analyze.New(orchestrator, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.APIKey(apiKey))
		analyzeHandler.RegisterRoutes(api)
	})

	return r
}
