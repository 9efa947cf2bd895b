package honeypot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	analysis "github.com/yash6810/Plutus/internal/analysis/intel"
	"github.com/yash6810/Plutus/internal/model/chat"
	"github.com/yash6810/Plutus/internal/model/detection"
	"github.com/yash6810/Plutus/internal/model/intel"
	"github.com/yash6810/Plutus/internal/model/persona"
	"github.com/yash6810/Plutus/internal/model/session"
	sessionstore "github.com/yash6810/Plutus/internal/service/session"
	"github.com/yash6810/Plutus/internal/service/policy"
)

var (
	// ErrSessionEnded distinguishes "this conversation is over" from
	// transient failures: the caller must not retry with the same id.
	ErrSessionEnded = errors.New("session already ended")

	// ErrCollaborator marks a failed external call. The turn committed
	// nothing, so the same message may be retried safely.
	ErrCollaborator = errors.New("collaborator failure")

	// ErrCollaboratorTimeout is the timeout flavor of ErrCollaborator.
	ErrCollaboratorTimeout = errors.New("collaborator timeout")
)

// Detector classifies an inbound message given bounded recent history.
type Detector interface {
	Classify(ctx context.Context, message string, history []chat.Message) (detection.Result, error)
}

// Actor generates a persona-consistent reply to keep the scammer engaged.
type Actor interface {
	Reply(ctx context.Context, p persona.Persona, message string, history []chat.Message) (string, error)
}

// Notifier delivers the final session snapshot when a conversation ends.
type Notifier interface {
	NotifyEnded(ctx context.Context, snap session.Snapshot) error
}

// Config bounds the collaborator calls.
type Config struct {
	DetectTimeout time.Duration
	ReplyTimeout  time.Duration
	NotifyTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.DetectTimeout <= 0 {
		c.DetectTimeout = 10 * time.Second
	}
	if c.ReplyTimeout <= 0 {
		c.ReplyTimeout = 10 * time.Second
	}
	if c.NotifyTimeout <= 0 {
		c.NotifyTimeout = 45 * time.Second
	}
	return c
}

// Turn is one inbound message to process.
type Turn struct {
	SessionID string
	Message   chat.Message
	History   []chat.Message
	Channel   string
}

// Metrics summarizes the engagement after a turn.
type Metrics struct {
	ConversationTurn       int   `json:"conversationTurn"`
	ResponseTimeMs         int64 `json:"responseTimeMs"`
	TotalIntelligenceItems int   `json:"totalIntelligenceItems"`
}

// Result is the outcome of one processed turn.
type Result struct {
	SessionID             string            `json:"sessionId"`
	ScamDetected          bool              `json:"scamDetected"`
	AgentResponse         string            `json:"agentResponse"`
	ExtractedIntelligence intel.Report      `json:"extractedIntelligence"`
	EngagementMetrics     Metrics           `json:"engagementMetrics"`
	ContinueConversation  bool              `json:"continueConversation"`
	EndReason             session.EndReason `json:"endReason,omitempty"`
	AgentNotes            string            `json:"agentNotes"`
}

// Orchestrator sequences one turn: classify, extract, decide, reply, commit,
// and notify on termination. All session mutations are staged on a clone and
// committed once, so a failed turn leaves no trace and is safe to retry.
type Orchestrator struct {
	store     *sessionstore.Store
	detector  Detector
	actor     Actor
	notifier  Notifier
	policy    *policy.Policy
	extractor *analysis.Extractor
	validator *analysis.Validator
	cfg       Config
	logger    *zap.Logger
}

// New wires the orchestrator. Notifier may be nil when callbacks are
// disabled.
func New(store *sessionstore.Store, det Detector, actor Actor, notifier Notifier, pol *policy.Policy, cfg Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:     store,
		detector:  det,
		actor:     actor,
		notifier:  notifier,
		policy:    pol,
		extractor: analysis.NewExtractor(),
		validator: analysis.NewValidator(),
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}
}

// ProcessTurn runs the per-turn state machine under the session's lock.
func (o *Orchestrator) ProcessTurn(ctx context.Context, turn Turn) (Result, error) {
	started := time.Now()

	unlock := o.store.Lock(turn.SessionID)
	defer unlock()

	// Received: load or create. Ended sessions are rejected explicitly; a
	// caller wanting a fresh conversation must use a fresh id.
	sess := o.store.GetOrCreate(turn.SessionID)
	if sess.Ended() {
		return Result{}, fmt.Errorf("%w: session %s", ErrSessionEnded, sess.ID)
	}

	// Classified: the only failure mode that aborts before any staging.
	detectCtx, cancel := context.WithTimeout(ctx, o.cfg.DetectTimeout)
	result, err := o.detector.Classify(detectCtx, turn.Message.Text, turn.History)
	cancel()
	if err != nil {
		return Result{}, collaboratorError("classify", err)
	}

	// Extracted: stage this turn's confirmed items on a clone. Items whose
	// dedup key is already present are silently skipped.
	staged := sess.Clone()
	staged.TurnCount++
	items := o.validator.Confirm(o.extractor.Extract(turn.Message.Text))
	if added := staged.Intelligence.Merge(items); added > 0 {
		staged.LastIntelligenceTurn = staged.TurnCount
		o.logger.Debug("intelligence staged",
			zap.String("sessionId", staged.ID),
			zap.Int("newItems", added),
			zap.Int("turn", staged.TurnCount))
	}

	if !staged.ScamDetected && o.policy.ScamConfirmed(result) {
		staged.ScamDetected = true
		staged.ScamConfidence = result.Confidence
	}

	// Decided: evaluate the end conditions on the staged state.
	verdict := o.policy.Decide(staged, result, turn.Channel)
	staged.Persona = verdict.Persona

	// Replied: only engage once the scam is confirmed. Generation failures
	// abort pre-commit so the turn stays retryable.
	reply := ""
	if staged.ScamDetected {
		replyCtx, cancel := context.WithTimeout(ctx, o.cfg.ReplyTimeout)
		reply, err = o.actor.Reply(replyCtx, staged.Persona, turn.Message.Text, turn.History)
		cancel()
		if err != nil {
			return Result{}, collaboratorError("reply", err)
		}
	}

	// Committed: one atomic write of the whole staged state.
	staged.LastActivityAt = time.Now().UTC()
	if !verdict.Continue {
		staged.Status = session.StatusEnded
		staged.EndReason = verdict.EndReason
	}
	o.store.Commit(staged)

	o.logger.Info("turn processed",
		zap.String("sessionId", staged.ID),
		zap.Int("turn", staged.TurnCount),
		zap.Bool("scamDetected", staged.ScamDetected),
		zap.Bool("continue", verdict.Continue),
		zap.String("endReason", string(staged.EndReason)))

	if staged.Ended() && o.notifier != nil {
		// Fire-and-forget: delivery failure never rolls back the Ended
		// transition or blocks this turn's response.
		snap := staged.Snapshot()
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), o.cfg.NotifyTimeout)
			defer cancel()
			if err := o.notifier.NotifyEnded(notifyCtx, snap); err != nil {
				o.logger.Warn("termination callback failed",
					zap.String("sessionId", snap.SessionID),
					zap.Error(err))
			}
		}()
	}

	return buildResult(staged, result, reply, verdict.Continue, time.Since(started)), nil
}

// Summary returns the callback-shaped view of a session.
func (o *Orchestrator) Summary(id string) (session.Snapshot, error) {
	sess, err := o.store.Get(id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func buildResult(staged *session.Session, result detection.Result, reply string, cont bool, elapsed time.Duration) Result {
	var notes []string
	if result.Reason != "" {
		notes = append(notes, "Detection: "+result.Reason)
	}
	if staged.Persona != "" {
		notes = append(notes, "Persona: "+string(staged.Persona))
	}
	if staged.EndReason != session.EndReasonNone {
		notes = append(notes, "Ended: "+string(staged.EndReason))
	}

	return Result{
		SessionID:             staged.ID,
		ScamDetected:          staged.ScamDetected,
		AgentResponse:         reply,
		ExtractedIntelligence: staged.Intelligence.Report(),
		EngagementMetrics: Metrics{
			ConversationTurn:       staged.TurnCount,
			ResponseTimeMs:         elapsed.Milliseconds(),
			TotalIntelligenceItems: staged.Intelligence.Len(),
		},
		ContinueConversation: cont,
		EndReason:            staged.EndReason,
		AgentNotes:           strings.Join(notes, ". "),
	}
}

func collaboratorError(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrCollaboratorTimeout, stage, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrCollaborator, stage, err)
}
