package ipc

// Reply type constants. These must stay in sync with the session layer.
const (
	TypeDecisionResponse = "decision_response"
	TypeError            = "error"
)

// DecisionResponse answers a DecisionMessage. An empty Value with Pass set
// declines; otherwise Value is a candidate id or, for integer prompts, the
// amount.
type DecisionResponse struct {
	DecisionID string  `json:"decisionId"`
	Value      string  `json:"value"`
	Pass       bool    `json:"pass"`
	Score      float64 `json:"score"`
	Rationale  string  `json:"rationale,omitempty"`
}

// ErrorMessage tells the session a decision could not be answered, so it
// can fall back to its own default.
type ErrorMessage struct {
	DecisionID string `json:"decisionId,omitempty"`
	Error      string `json:"error"`
}
