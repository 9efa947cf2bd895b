package detection

// Result is the classification verdict for a single inbound message. It is
// consumed by the engagement policy and not stored beyond the decision it
// drives.
type Result struct {
	IsScam     bool     `json:"is_scam"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
	Indicators []string `json:"indicators"`
}
