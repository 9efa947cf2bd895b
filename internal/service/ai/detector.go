package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/model/chat"
	"github.com/yash6810/Plutus/internal/model/detection"
)

const detectorHistoryLimit = 5

// Detector classifies inbound messages with the configured chat model.
type Detector struct {
	chain      compose.Runnable[map[string]any, *schema.Message]
	maxRetries int
	logger     *zap.Logger
}

// NewDetector compiles the classification chain over chatModel.
func NewDetector(ctx context.Context, chatModel model.ChatModel, logger *zap.Logger) (*Detector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	chain, err := newChatChain(ctx, chatModel)
	if err != nil {
		return nil, err
	}
	return &Detector{chain: chain, maxRetries: 1, logger: logger}, nil
}

// Classify analyzes one message with a bounded history window. An empty
// message is inconclusive rather than an error.
func (d *Detector) Classify(ctx context.Context, message string, history []chat.Message) (detection.Result, error) {
	if strings.TrimSpace(message) == "" {
		return detection.Result{Confidence: 0.5, Reason: "empty message"}, nil
	}

	input := map[string]any{
		"system":  detectorSystemPrompt,
		"history": historyMessages(history, detectorHistoryLimit),
		"query":   detectorQuery(message),
	}

	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		response, err := d.chain.Invoke(ctx, input)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return detection.Result{}, ctx.Err()
			}
			continue
		}

		result, err := parseDetection(response.Content)
		if err != nil {
			// Malformed model output; worth one more attempt.
			d.logger.Warn("unparseable detection response", zap.Error(err))
			lastErr = err
			continue
		}

		d.logger.Debug("message classified",
			zap.Bool("isScam", result.IsScam),
			zap.Float64("confidence", result.Confidence))
		return result, nil
	}
	return detection.Result{}, fmt.Errorf("scam detection failed: %w", lastErr)
}

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseDetection decodes the model's JSON verdict, tolerating markdown code
// fences around it.
func parseDetection(raw string) (detection.Result, error) {
	text := strings.TrimSpace(raw)
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var payload struct {
		IsScam     bool     `json:"is_scam"`
		Confidence float64  `json:"confidence"`
		Reason     string   `json:"reason"`
		Indicators []string `json:"indicators"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return detection.Result{}, fmt.Errorf("invalid detection payload: %w", err)
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	reason := payload.Reason
	if reason == "" {
		reason = "No reason provided"
	}

	return detection.Result{
		IsScam:     payload.IsScam,
		Confidence: confidence,
		Reason:     reason,
		Indicators: payload.Indicators,
	}, nil
}
