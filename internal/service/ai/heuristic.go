package ai

import (
	"context"
	"math/rand"
	"strings"

	"github.com/yash6810/Plutus/internal/model/chat"
	"github.com/yash6810/Plutus/internal/model/detection"
	"github.com/yash6810/Plutus/internal/model/persona"
)

// strongIndicators are phrases that mark a message as a scam without model
// help. Used by the degraded-mode detector when no chat model is configured.
var strongIndicators = []string{
	"send otp",
	"share otp",
	"your account will be",
	"account suspended",
	"account blocked",
	"kyc update",
	"click here to verify",
	"won lottery",
	"lucky winner",
	"processing fee",
	"claim your prize",
	"legal action",
	"police complaint",
	"arrest warrant",
}

// HeuristicDetector is a keyword-only classifier used when no chat model is
// available. It is conservative: anything without a strong indicator is
// inconclusive, not benign, so the conversation is not cut short by mistake.
type HeuristicDetector struct{}

// Classify scans for strong scam indicators.
func (HeuristicDetector) Classify(_ context.Context, message string, _ []chat.Message) (detection.Result, error) {
	lower := strings.ToLower(message)
	var matched []string
	for _, indicator := range strongIndicators {
		if strings.Contains(lower, indicator) {
			matched = append(matched, indicator)
		}
	}

	if len(matched) > 0 {
		return detection.Result{
			IsScam:     true,
			Confidence: 0.75,
			Reason:     "matched strong scam indicators",
			Indicators: matched,
		}, nil
	}
	return detection.Result{
		Confidence: 0.5,
		Reason:     "no strong scam indicators matched",
	}, nil
}

// HeuristicActor serves canned persona replies when no chat model is
// available. The lines come from each persona's fallback pool, so degraded
// mode still stays in character.
type HeuristicActor struct{}

// Reply picks a canned in-character response.
func (HeuristicActor) Reply(_ context.Context, p persona.Persona, _ string, history []chat.Message) (string, error) {
	profile, ok := persona.Lookup(p)
	if !ok {
		profile, _ = persona.Lookup(persona.Default)
	}
	if len(history) == 0 {
		return profile.Openers[rand.Intn(len(profile.Openers))], nil
	}
	return profile.Fallbacks[rand.Intn(len(profile.Fallbacks))], nil
}
