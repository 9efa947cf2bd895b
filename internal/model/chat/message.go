package chat

// Sender values used across the conversation history.
const (
	SenderScammer = "scammer"
	SenderAgent   = "agent"
)

// Message is one turn of the conversation as supplied by the caller.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}
