package decision

import (
	"fmt"
	"strings"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
	"github.com/nstehr/holonet/holonet-core/planner"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// BattleEvaluator decides where to start battles: only where we come out
// ahead by a clear margin.
type BattleEvaluator struct {
	profiles planner.ProfileSource
	battle   config.Battle
	deploy   config.Deploy
}

func NewBattleEvaluator(profiles planner.ProfileSource, cfg config.Config) *BattleEvaluator {
	return &BattleEvaluator{profiles: profiles, battle: cfg.Battle, deploy: cfg.Deploy}
}

func (e *BattleEvaluator) Name() string { return "battle" }

func (e *BattleEvaluator) CanEvaluate(ctx *Context) bool {
	if ctx.Kind == Integer {
		return false
	}
	for _, c := range ctx.Candidates {
		if Classify(c.Text) == Battle {
			return true
		}
	}
	return false
}

func (e *BattleEvaluator) Evaluate(ctx *Context) []Action {
	prof := strategy.Neutral()
	if e.profiles != nil {
		prof = e.profiles.Profile(ctx.State)
	}
	force := ctx.State.Me.ForcePile

	var out []Action
	for _, c := range ctx.Candidates {
		if Classify(c.Text) != Battle {
			continue
		}
		a := Action{ID: c.ID, Category: Battle}
		if force < e.battle.InitiateCost {
			a.Add(-e.deploy.UnaffordablePenalty, fmt.Sprintf("battle costs %d, have %d", e.battle.InitiateCost, force))
			out = append(out, a)
			continue
		}

		loc, ok := battleLocation(ctx, c)
		if !ok {
			loc, ok = bestBattleground(ctx.State)
		}
		if !ok || !loc.TheirPresence() {
			a.Add(-e.battle.EmptyPenalty, "no opponent to battle")
			out = append(out, a)
			continue
		}

		adv := loc.MyPower() - loc.TheirPower()
		if adv >= e.battle.FavorableAdvantage {
			score := (e.battle.BattleScore + e.battle.PerPowerBonus*float64(adv)) * prof.BattleMultiplier
			a.Add(score, fmt.Sprintf("ahead by %d at %s", adv, loc.Name))
		} else {
			a.Add(-e.battle.UnfavorablePenalty/prof.BattleMultiplier, fmt.Sprintf("advantage %d at %s is not enough", adv, loc.Name))
		}
		out = append(out, a)
	}
	return out
}

// battleLocation resolves the location a battle candidate refers to, by
// card id or by a location name in its text.
func battleLocation(ctx *Context, c Candidate) (model.Location, bool) {
	if c.CardID != "" {
		if loc, ok := ctx.State.LocationByCardID(c.CardID); ok {
			return loc, true
		}
		if loc, ok := ctx.State.LocationOfCard(c.CardID); ok {
			return loc, true
		}
	}
	text := strings.ToLower(c.Text)
	for _, loc := range ctx.State.Locations {
		if loc.Name != "" && strings.Contains(text, strings.ToLower(loc.Name)) {
			return loc, true
		}
	}
	return model.Location{}, false
}

// bestBattleground is the contested location with the largest advantage,
// for battle actions that do not name a location.
func bestBattleground(gs model.GameState) (model.Location, bool) {
	var best model.Location
	found := false
	for _, loc := range gs.Locations {
		if !loc.MyPresence() || !loc.TheirPresence() {
			continue
		}
		if !found || loc.MyPower()-loc.TheirPower() > best.MyPower()-best.TheirPower() {
			best, found = loc, true
		}
	}
	return best, found
}

func (e *BattleEvaluator) Owns() []Category { return []Category{Battle} }
