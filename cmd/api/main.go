package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/config"
	"github.com/yash6810/Plutus/internal/handler"
	"github.com/yash6810/Plutus/internal/service/ai"
	"github.com/yash6810/Plutus/internal/service/callback"
	"github.com/yash6810/Plutus/internal/service/honeypot"
	"github.com/yash6810/Plutus/internal/service/policy"
	sessionstore "github.com/yash6810/Plutus/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded, using system environment only", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	detector, actor := buildCollaborators(ctx, cfg, logger)

	store := sessionstore.NewStore(logger)
	pol := policy.New(policy.Config{
		MaxTurns:                cfg.Agent.MaxTurns,
		MinIntelligenceKinds:    cfg.Agent.MinIntelligenceKinds,
		StaleTurnThreshold:      cfg.Agent.StaleTurnThreshold,
		ScamConfidenceThreshold: cfg.Agent.ScamConfidenceThreshold,
	})
	notifier := callback.New(callback.Config{
		Enabled:    cfg.Callback.Enabled,
		URL:        cfg.Callback.URL,
		Timeout:    cfg.Callback.Timeout,
		MaxRetries: cfg.Callback.MaxRetries,
	}, logger)

	orchestrator := honeypot.New(store, detector, actor, notifier, pol, honeypot.Config{
		DetectTimeout: cfg.Agent.DetectTimeout,
		ReplyTimeout:  cfg.Agent.ReplyTimeout,
	}, logger)

	go runSessionCleanup(ctx, store, cfg.Agent.SessionMaxAge, logger)

	router := handler.NewRouter(orchestrator, cfg.Server.APIKey, logger)
	startServer(ctx, cfg.Server, router, logger)
}

func newLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if os.Getenv("ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// buildCollaborators wires the model-backed detector and actor, falling back
// to the keyword heuristics when no model credentials are configured so the
// service still runs end to end.
func buildCollaborators(ctx context.Context, cfg *config.Config, logger *zap.Logger) (honeypot.Detector, honeypot.Actor) {
	if !cfg.AI.Enabled() {
		logger.Warn("model credentials not configured, using heuristic collaborators")
		return ai.HeuristicDetector{}, ai.HeuristicActor{}
	}

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		logger.Warn("failed to initialize chat model, using heuristic collaborators", zap.Error(err))
		return ai.HeuristicDetector{}, ai.HeuristicActor{}
	}

	detector, err := ai.NewDetector(ctx, chatModel, logger)
	if err != nil {
		logger.Warn("failed to build detector chain, using heuristic collaborators", zap.Error(err))
		return ai.HeuristicDetector{}, ai.HeuristicActor{}
	}

	actor, err := ai.NewActor(ctx, chatModel, logger)
	if err != nil {
		logger.Warn("failed to build actor chain, using heuristic collaborators", zap.Error(err))
		return ai.HeuristicDetector{}, ai.HeuristicActor{}
	}

	logger.Info("model-backed collaborators initialized", zap.String("model", cfg.AI.Model))
	return detector, actor
}

func runSessionCleanup(ctx context.Context, store *sessionstore.Store, maxAge time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.CleanupExpired(maxAge); removed > 0 {
				logger.Info("session cleanup pass", zap.Int("removed", removed))
			}
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("honeypot agent listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
