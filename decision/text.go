package decision

import (
	"math/rand"
	"strconv"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/planner"
	"github.com/nstehr/holonet/holonet-core/rules"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// Owner is implemented by evaluators that are authoritative for categories.
// The text evaluator leaves those categories alone.
type Owner interface {
	Evaluator
	Owns() []Category
}

// TextEvaluator is the catch-all: it scores anything no specialist owns from
// the action text and the rule engine.
type TextEvaluator struct {
	engine   *rules.Engine
	profiles planner.ProfileSource
	global   config.Global
	rng      *rand.Rand
	owners   []Owner
	owned    map[Category]bool
}

func NewTextEvaluator(engine *rules.Engine, profiles planner.ProfileSource, g config.Global, rng *rand.Rand, owners ...Owner) *TextEvaluator {
	owned := make(map[Category]bool)
	for _, o := range owners {
		for _, c := range o.Owns() {
			owned[c] = true
		}
	}
	return &TextEvaluator{engine: engine, profiles: profiles, global: g, rng: rng, owners: owners, owned: owned}
}

func (e *TextEvaluator) Name() string { return "text" }

func (e *TextEvaluator) CanEvaluate(ctx *Context) bool {
	if ctx.Kind == Integer || len(ctx.Candidates) == 0 {
		return false
	}
	// Card choices carry no action text; a specialist that understands the
	// prompt takes the whole decision.
	if ctx.Kind == CardSelection || ctx.Kind == ArbitraryCards {
		for _, o := range e.owners {
			if o.CanEvaluate(ctx) {
				return false
			}
		}
	}
	return true
}

func (e *TextEvaluator) Evaluate(ctx *Context) []Action {
	prof := strategy.Neutral()
	if e.profiles != nil {
		prof = e.profiles.Profile(ctx.State)
	}

	var out []Action
	for _, c := range ctx.Candidates {
		cat := Classify(c.Text)
		if e.owned[cat] {
			continue
		}
		a := Action{ID: c.ID, Category: cat}
		switch cat {
		case Pass:
			a.Add(e.global.PassThreshold, "decline")
		case Unknown:
			if e.global.RandomSpread > 0 && e.rng != nil {
				a.Add((e.rng.Float64()*2-1)*e.global.RandomSpread, "unclassified option")
			}
		}

		if e.engine != nil {
			env := rules.Env{
				Turn:     ctx.State.Turn,
				Phase:    ctx.State.Phase,
				Kind:     string(ctx.Kind),
				Prompt:   ctx.Prompt,
				Text:     c.Text,
				Category: string(cat),
				Mode:     string(prof.Mode),
				State:    ctx.State,
			}
			for _, r := range e.engine.Evaluate(env) {
				a.Add(r.Delta, r.Reason)
			}
		}
		out = append(out, a)
	}
	return out
}

// AmountEvaluator answers integer prompts. Activation takes as much force as
// offered unless the reserve deck is thin; anything else takes the minimum.
type AmountEvaluator struct {
	reserveFloor int
}

func NewAmountEvaluator(cfg config.Config) *AmountEvaluator {
	return &AmountEvaluator{reserveFloor: cfg.Draw.MinForceAfterDraw}
}

func (e *AmountEvaluator) Name() string { return "amount" }

func (e *AmountEvaluator) CanEvaluate(ctx *Context) bool { return ctx.Kind == Integer }

func (e *AmountEvaluator) Evaluate(ctx *Context) []Action {
	n, why := ctx.Min, "minimum"
	if ctx.PromptHas("activate") {
		n, why = ctx.Max, "activate all offered force"
		if spare := ctx.State.Me.ReserveDeck - e.reserveFloor; spare < n {
			n, why = max(spare, ctx.Min), "keep the reserve deck alive"
		}
	}
	n = min(max(n, ctx.Min), max(ctx.Max, ctx.Min))
	a := Action{ID: strconv.Itoa(n), Category: Activate}
	if !ctx.PromptHas("activate") {
		a.Category = Unknown
	}
	a.Add(0, why)
	return []Action{a}
}
