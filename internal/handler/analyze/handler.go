package analyze

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yash6810/Plutus/internal/model/chat"
	"github.com/yash6810/Plutus/internal/service/honeypot"
	sessionstore "github.com/yash6810/Plutus/internal/service/session"
	"github.com/yash6810/Plutus/pkg/utils"
)

// Handler exposes the analysis pipeline over HTTP.
type Handler struct {
	orchestrator *honeypot.Orchestrator
	logger       *zap.Logger
}

// New creates the analyze handler.
func New(orchestrator *honeypot.Orchestrator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{orchestrator: orchestrator, logger: logger}
}

// RegisterRoutes mounts the analysis routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
}

type analyzeRequest struct {
	SessionID           string         `json:"sessionId"`
	Message             chat.Message   `json:"message"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
	Metadata            struct {
		Channel  string `json:"channel"`
		Language string `json:"language"`
		Locale   string `json:"locale"`
	} `json:"metadata"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if payload.Message.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "message.text is required")
		return
	}

	result, err := h.orchestrator.ProcessTurn(r.Context(), honeypot.Turn{
		SessionID: payload.SessionID,
		Message:   payload.Message,
		History:   payload.ConversationHistory,
		Channel:   payload.Metadata.Channel,
	})
	if err != nil {
		h.respondTurnError(w, payload.SessionID, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		honeypot.Result
	}{Status: "success", Result: result})
}

// respondTurnError maps the orchestrator's error taxonomy onto HTTP so
// callers can tell "retry" from "this conversation is over".
func (h *Handler) respondTurnError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, honeypot.ErrSessionEnded):
		utils.RespondError(w, http.StatusConflict, "conversation already ended")
	case errors.Is(err, honeypot.ErrCollaboratorTimeout):
		utils.RespondError(w, http.StatusGatewayTimeout, "analysis timed out, retry the message")
	case errors.Is(err, honeypot.ErrCollaborator):
		utils.RespondError(w, http.StatusBadGateway, "analysis temporarily unavailable, retry the message")
	default:
		h.logger.Error("turn processing failed",
			zap.String("sessionId", sessionID),
			zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	summary, err := h.orchestrator.Summary(sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, summary)
}
