package decision

import (
	"fmt"
	"strings"

	"github.com/nstehr/holonet/holonet-core/model"
)

// Kind is the shape of a pending decision.
type Kind string

const (
	ActionChoice   Kind = "action_choice"
	CardSelection  Kind = "card_selection"
	ArbitraryCards Kind = "arbitrary_cards"
	Integer        Kind = "integer"
	MultipleChoice Kind = "multiple_choice"
)

// Candidate is one offered option. CardID and Blueprint are set when the
// option is about a specific card.
type Candidate struct {
	ID         string
	Text       string
	CardID     string
	Blueprint  string
	Selectable bool
}

// Context is one pending decision with the board it was asked on.
type Context struct {
	DecisionID string
	Kind       Kind
	Prompt     string
	Candidates []Candidate
	NoPass     bool
	Min        int
	Max        int
	// SourceCardID is the card the decision is about, when the session
	// reports one (e.g. the unit being deployed on a "where to" prompt).
	SourceCardID string
	State        model.GameState
}

// PassAllowed reports whether declining is structurally permitted.
func (c *Context) PassAllowed() bool {
	return !c.NoPass && c.Min == 0
}

func (c *Context) Candidate(id string) (Candidate, bool) {
	for _, cand := range c.Candidates {
		if cand.ID == id {
			return cand, true
		}
	}
	return Candidate{}, false
}

func (c *Context) PromptHas(s string) bool {
	return strings.Contains(strings.ToLower(c.Prompt), strings.ToLower(s))
}

// Reason is one entry of an action's rationale.
type Reason struct {
	Delta float64
	Why   string
}

func (r Reason) String() string {
	return fmt.Sprintf("%+.0f %s", r.Delta, r.Why)
}

// Action is a scored candidate. Pass actions carry no candidate id.
type Action struct {
	ID       string
	Pass     bool
	Category Category
	Score    float64
	Trail    []Reason
}

// Add adjusts the score and records why.
func (a *Action) Add(delta float64, why string) {
	a.Score += delta
	a.Trail = append(a.Trail, Reason{Delta: delta, Why: why})
}

// Rationale joins the trail into one line for logs and the journal.
func (a Action) Rationale() string {
	parts := make([]string, len(a.Trail))
	for i, r := range a.Trail {
		parts[i] = r.String()
	}
	return strings.Join(parts, "; ")
}
