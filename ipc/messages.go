package ipc

import "github.com/nstehr/holonet/holonet-core/model"

// These constants must stay in sync with the session layer's message types.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeDecision = "decision"
	TypeOutcome  = "outcome"
)

type HelloMessage struct {
	Player   string `json:"player"`
	Side     string `json:"side"`
	Opponent string `json:"opponent,omitempty"`
	GameID   string `json:"gameId,omitempty"`
	// Seed, when non-zero, overrides the configured random seed for this
	// game so a session can be replayed.
	Seed int64 `json:"seed,omitempty"`
}

type AckMessage struct {
	Status   string `json:"status"`
	Instance string `json:"instance"`
}

// DecisionMessage is one pending decision with the board it was asked on.
type DecisionMessage struct {
	DecisionID   string          `json:"decisionId"`
	Kind         string          `json:"kind"`
	Prompt       string          `json:"prompt"`
	NoPass       bool            `json:"noPass"`
	Min          int             `json:"min"`
	Max          int             `json:"max"`
	SourceCardID string          `json:"sourceCardId,omitempty"`
	Candidates   []CandidateData `json:"candidates"`
	State        model.GameState `json:"state"`
}

type CandidateData struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CardID    string `json:"cardId,omitempty"`
	Blueprint string `json:"blueprint,omitempty"`
	// Disabled marks an option shown but not selectable right now.
	Disabled bool `json:"disabled,omitempty"`
}

// OutcomeMessage reports what the game did with an answer.
type OutcomeMessage struct {
	DecisionID string `json:"decisionId"`
	Accepted   bool   `json:"accepted"`
	Reason     string `json:"reason,omitempty"`
}
