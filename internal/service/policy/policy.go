package policy

import (
	"github.com/yash6810/Plutus/internal/model/detection"
	"github.com/yash6810/Plutus/internal/model/persona"
	"github.com/yash6810/Plutus/internal/model/session"
)

// Config holds the engagement thresholds.
type Config struct {
	// MaxTurns caps the conversation length.
	MaxTurns int
	// MinIntelligenceKinds is the number of distinct intelligence kinds that
	// satisfies the collection goal.
	MinIntelligenceKinds int
	// StaleTurnThreshold ends conversations that stop yielding intelligence.
	StaleTurnThreshold int
	// ScamConfidenceThreshold gates both engaging (scam at or above it) and
	// disengaging (benign at or above it).
	ScamConfidenceThreshold float64
}

// DefaultConfig mirrors the deployed defaults.
func DefaultConfig() Config {
	return Config{
		MaxTurns:                20,
		MinIntelligenceKinds:    2,
		StaleTurnThreshold:      5,
		ScamConfidenceThreshold: 0.7,
	}
}

// Verdict is the outcome of one policy evaluation.
type Verdict struct {
	Continue  bool
	EndReason session.EndReason
	Persona   persona.Persona
}

// Policy decides, from session state and the latest classification, whether
// to keep the scammer engaged. It is a pure function of its inputs.
type Policy struct {
	cfg Config
}

// New builds a policy, filling zero-valued fields from the defaults.
func New(cfg Config) *Policy {
	def := DefaultConfig()
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = def.MaxTurns
	}
	if cfg.MinIntelligenceKinds <= 0 {
		cfg.MinIntelligenceKinds = def.MinIntelligenceKinds
	}
	if cfg.StaleTurnThreshold <= 0 {
		cfg.StaleTurnThreshold = def.StaleTurnThreshold
	}
	if cfg.ScamConfidenceThreshold <= 0 {
		cfg.ScamConfidenceThreshold = def.ScamConfidenceThreshold
	}
	return &Policy{cfg: cfg}
}

// Config returns the effective thresholds.
func (p *Policy) Config() Config {
	return p.cfg
}

// ScamConfirmed reports whether the classification is strong enough to
// engage as a victim.
func (p *Policy) ScamConfirmed(result detection.Result) bool {
	return result.IsScam && result.Confidence >= p.cfg.ScamConfidenceThreshold
}

// Decide evaluates the end conditions against the staged session: the turn
// already counted and this turn's intelligence already merged. The rules are
// checked in a fixed precedence order and the first match wins; when the
// turn cap and the intelligence goal are both hit on the same turn, the cap
// is the reported reason.
func (p *Policy) Decide(staged *session.Session, result detection.Result, channel string) Verdict {
	verdict := Verdict{Persona: staged.Persona}
	if verdict.Persona == "" {
		verdict.Persona = persona.Select(result.Indicators, channel)
	}

	switch {
	case staged.TurnCount >= p.cfg.MaxTurns:
		verdict.EndReason = session.EndReasonMaxTurns
	case staged.Intelligence.KindCount() >= p.cfg.MinIntelligenceKinds:
		verdict.EndReason = session.EndReasonIntelligenceGoal
	case !result.IsScam && result.Confidence >= p.cfg.ScamConfidenceThreshold:
		verdict.EndReason = session.EndReasonNotAScam
	case staged.TurnCount > 3 && staged.TurnCount-staged.LastIntelligenceTurn >= p.cfg.StaleTurnThreshold:
		verdict.EndReason = session.EndReasonStaleConversation
	default:
		verdict.Continue = true
	}
	return verdict
}
