package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yash6810/Plutus/internal/model/intel"
	"github.com/yash6810/Plutus/internal/model/persona"
)

// Status tracks the conversation lifecycle. The transition is monotonic:
// once ended, a session never becomes active again.
type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// EndReason records why a conversation was terminated.
type EndReason string

const (
	EndReasonNone              EndReason = ""
	EndReasonMaxTurns          EndReason = "max_turns_reached"
	EndReasonIntelligenceGoal  EndReason = "intelligence_goal_met"
	EndReasonNotAScam          EndReason = "not_a_scam"
	EndReasonStaleConversation EndReason = "stale_conversation"
)

// Session is the durable state of one scam-engagement conversation.
type Session struct {
	ID                   string
	TurnCount            int
	Persona              persona.Persona
	ScamDetected         bool
	ScamConfidence       float64
	Intelligence         *intel.Set
	LastIntelligenceTurn int
	Status               Status
	EndReason            EndReason
	CreatedAt            time.Time
	LastActivityAt       time.Time
}

// New provisions an active session. An empty id gets a generated one.
func New(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	return &Session{
		ID:             id,
		Intelligence:   intel.NewSet(),
		Status:         StatusActive,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Ended reports whether the conversation has been terminated.
func (s *Session) Ended() bool {
	return s.Status == StatusEnded
}

// Clone deep-copies the session so callers can stage mutations without
// touching the stored record.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Intelligence = s.Intelligence.Clone()
	return &clone
}

// Snapshot is the final per-session report delivered to the termination
// callback collaborator.
type Snapshot struct {
	SessionID              string       `json:"sessionId"`
	ScamDetected           bool         `json:"scamDetected"`
	TotalMessagesExchanged int          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  intel.Report `json:"extractedIntelligence"`
	PersonaUsed            string       `json:"personaUsed,omitempty"`
	EndReason              string       `json:"endReason,omitempty"`
	AgentNotes             string       `json:"agentNotes"`
	CreatedAt              time.Time    `json:"createdAt"`
	LastActivityAt         time.Time    `json:"updatedAt"`
}

// Snapshot builds the callback payload from the current state.
func (s *Session) Snapshot() Snapshot {
	var notes []string
	if s.Persona != "" {
		notes = append(notes, fmt.Sprintf("Persona: %s", s.Persona))
	}
	if s.EndReason != EndReasonNone {
		notes = append(notes, fmt.Sprintf("End reason: %s", s.EndReason))
	}
	if n := s.Intelligence.HighValueCount(); n > 0 {
		notes = append(notes, fmt.Sprintf("Extracted %d high-value items", n))
	}
	agentNotes := "Conversation completed."
	if len(notes) > 0 {
		agentNotes = strings.Join(notes, ". ")
	}

	return Snapshot{
		SessionID:              s.ID,
		ScamDetected:           s.ScamDetected,
		TotalMessagesExchanged: s.TurnCount,
		ExtractedIntelligence:  s.Intelligence.Report(),
		PersonaUsed:            string(s.Persona),
		EndReason:              string(s.EndReason),
		AgentNotes:             agentNotes,
		CreatedAt:              s.CreatedAt,
		LastActivityAt:         s.LastActivityAt,
	}
}
