package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/model/session"
)

// Config controls the termination-callback delivery.
type Config struct {
	Enabled    bool
	URL        string
	Timeout    time.Duration
	MaxRetries int
}

// Client delivers final session snapshots to the configured endpoint. It is
// fire-and-forget from the orchestrator's point of view: delivery failure is
// logged and never retried indefinitely.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a callback client. Zero-valued timeout and retry settings fall
// back to 10s and 3 attempts.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Enabled reports whether deliveries will actually be sent.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled && c.cfg.URL != ""
}

// NotifyEnded posts the final snapshot, retrying with exponential backoff
// (2s, 4s, 8s) on failure. A disabled client reports success so callers
// never special-case it.
func (c *Client) NotifyEnded(ctx context.Context, snap session.Snapshot) error {
	if !c.Enabled() {
		c.logger.Debug("callback disabled, skipping",
			zap.String("sessionId", snap.SessionID))
		return nil
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode callback payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<attempt) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = c.post(ctx, body)
		if lastErr == nil {
			c.logger.Info("termination callback delivered",
				zap.String("sessionId", snap.SessionID),
				zap.Int("attempt", attempt+1))
			return nil
		}
		c.logger.Warn("termination callback attempt failed",
			zap.String("sessionId", snap.SessionID),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr))
	}
	return fmt.Errorf("callback failed after %d attempts: %w", c.cfg.MaxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		return fmt.Errorf("callback endpoint returned %d", resp.StatusCode)
	}
}
