package rules

import (
	"strings"

	"github.com/nstehr/holonet/holonet-core/model"
)

// Env is what a rule condition sees: one candidate of one pending decision
// plus the board snapshot. Helper methods are callable from expr expressions.
type Env struct {
	Turn     int
	Phase    string
	Kind     string
	Prompt   string
	Text     string
	Category string
	Mode     string
	State    model.GameState
}

func (e Env) Force() int { return e.State.Me.ForcePile }

// HandSize prefers the reported hand size over the visible hand, which can
// lag behind on some prompts.
func (e Env) HandSize() int {
	return max(e.State.Me.HandSize, len(e.State.Hand))
}

func (e Env) ReserveDeck() int { return e.State.Me.ReserveDeck }

func (e Env) LifeForce() int { return e.State.Me.LifeForce() }

func (e Env) TheirLifeForce() int { return e.State.Opponent.LifeForce() }

// PowerAdvantage is our total power on the table minus theirs.
func (e Env) PowerAdvantage() int {
	return e.State.TotalPower(true) - e.State.TotalPower(false)
}

func (e Env) TextHas(s string) bool {
	return strings.Contains(strings.ToLower(e.Text), strings.ToLower(s))
}

func (e Env) PromptHas(s string) bool {
	return strings.Contains(strings.ToLower(e.Prompt), strings.ToLower(s))
}

func (e Env) PhaseIs(p string) bool {
	return strings.EqualFold(e.Phase, p)
}
