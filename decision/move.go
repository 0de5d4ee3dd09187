package decision

import (
	"fmt"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
	"github.com/nstehr/holonet/holonet-core/planner"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// MoveEvaluator pulls units out of locations that cannot be saved and keeps
// them where they hold a lead.
type MoveEvaluator struct {
	cards    model.CardLookup
	profiles planner.ProfileSource
	move     config.Move
	deploy   config.Deploy
	battle   config.Battle
	tried    attempts
}

func NewMoveEvaluator(cards model.CardLookup, profiles planner.ProfileSource, cfg config.Config) *MoveEvaluator {
	return &MoveEvaluator{cards: cards, profiles: profiles, move: cfg.Move, deploy: cfg.Deploy, battle: cfg.Battle}
}

func (e *MoveEvaluator) Name() string { return "move" }

func (e *MoveEvaluator) CanEvaluate(ctx *Context) bool {
	if ctx.Kind == Integer {
		return false
	}
	for _, c := range ctx.Candidates {
		if Classify(c.Text) == Move {
			return true
		}
	}
	return false
}

func (e *MoveEvaluator) Evaluate(ctx *Context) []Action {
	prof := strategy.Neutral()
	if e.profiles != nil {
		prof = e.profiles.Profile(ctx.State)
	}
	_, units := planner.HandUnits(ctx.State, e.cards)
	analyses := planner.AnalyzeLocations(ctx.State, units, ctx.State.Me.ForcePile,
		prof.Margin(e.deploy.ReinforceMargin), e.deploy, e.battle)

	var out []Action
	for _, c := range ctx.Candidates {
		if Classify(c.Text) != Move {
			continue
		}
		a := Action{ID: c.ID, Category: Move}
		origin, ok := ctx.State.LocationOfCard(c.CardID)
		var from planner.LocationAnalysis
		if ok {
			for _, an := range analyses {
				if an.Index == origin.Index {
					from = an
					break
				}
			}
		}

		switch {
		case !ok:
			a.Add(e.move.DefaultScore, "origin unknown")
		case from.ShouldFlee:
			a.Add(e.move.FleeScore, fmt.Sprintf("%s is lost (behind by %d)", from.Name, -from.Differential()))
		case from.IControl || (from.Contested && from.Differential() > 0):
			a.Add(-e.move.AbandonLeadPenalty, "would abandon the lead at "+from.Name)
		default:
			a.Add(e.move.DefaultScore, "no reason to move")
		}

		if e.tried.tried(ctx.State.Turn, attemptKey(c)) {
			a.Add(-e.move.AttemptedPenalty, "already attempted this turn")
		}
		out = append(out, a)
	}
	return out
}

func (e *MoveEvaluator) Record(ctx *Context, chosen Action) {
	if chosen.Pass || chosen.Category != Move {
		return
	}
	if c, ok := ctx.Candidate(chosen.ID); ok {
		e.tried.mark(ctx.State.Turn, attemptKey(c))
	}
}

func (e *MoveEvaluator) Owns() []Category { return []Category{Move} }
