package planner

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// Planner computes a complete deployment plan for a snapshot.
type Planner interface {
	ComputePlan(gs model.GameState) (*Plan, error)
}

// ProfileSource supplies the strategy profile for a snapshot.
type ProfileSource interface {
	Profile(gs model.GameState) strategy.Profile
}

// Rules is the rules-based planner: locations first, then reinforcement of
// contested positions, then establishing at uncontested icon locations.
type Rules struct {
	Cards    model.CardLookup
	Deploy   config.Deploy
	Battle   config.Battle
	Profiles ProfileSource
}

func NewRules(cards model.CardLookup, cfg config.Config, profiles ProfileSource) *Rules {
	return &Rules{Cards: cards, Deploy: cfg.Deploy, Battle: cfg.Battle, Profiles: profiles}
}

func (r *Rules) profile(gs model.GameState) strategy.Profile {
	if r.Profiles == nil {
		return strategy.Neutral()
	}
	return r.Profiles.Profile(gs)
}

// ComputePlan never fails; an empty hand or budget yields a hold-back plan.
func (r *Rules) ComputePlan(gs model.GameState) (*Plan, error) {
	force := gs.Me.ForcePile
	reserved := min(r.Deploy.CombatReserve, max(force, 0))
	plan := &Plan{
		Turn:       gs.Turn,
		Phase:      gs.Phase,
		Budget:     force,
		Reserved:   reserved,
		Confidence: 1,
		Source:     "rules",
	}

	remaining := plan.Spendable()
	if remaining <= 0 {
		plan.Strategy = HoldBack
		slog.Debug("deployment plan: no spendable force", "turn", gs.Turn, "force", force)
		return plan, nil
	}

	locations, units := HandUnits(gs, r.Cards)
	prof := r.profile(gs)
	margin := prof.Margin(r.Deploy.ReinforceMargin)
	analyses := AnalyzeLocations(gs, units, force, margin, r.Deploy, r.Battle)

	var instructions []Instruction

	// Tier 0: location cards open new options, deploy every one we can pay for.
	for _, loc := range locations {
		if loc.Cost > remaining {
			continue
		}
		remaining -= loc.Cost
		instructions = append(instructions, Instruction{
			CardID:        loc.CardID,
			Blueprint:     loc.Blueprint,
			Title:         loc.Title,
			Tier:          TierLocation,
			LocationIndex: -1,
			Reason:        fmt.Sprintf("deploy location %s", loc.Title),
			Cost:          loc.Cost,
		})
	}

	used := make(map[string]bool)
	available := func(a LocationAnalysis) []Unit {
		var out []Unit
		for _, u := range units {
			if !used[u.CardID] && a.Accepts(u) {
				out = append(out, u)
			}
		}
		return out
	}
	commit := func(a LocationAnalysis, c Combination, tier Tier, why string) {
		for _, u := range c.Units {
			used[u.CardID] = true
			instructions = append(instructions, Instruction{
				CardID:         u.CardID,
				Blueprint:      u.Blueprint,
				Title:          u.Title,
				Tier:           tier,
				LocationIndex:  a.Index,
				LocationCardID: a.CardID,
				LocationName:   a.Name,
				Reason:         fmt.Sprintf("%s: %s to %s (+%d power)", why, u.Title, a.Name, u.Power),
				Power:          u.Power,
				Cost:           u.Cost,
			})
		}
		remaining -= c.Cost
	}

	// Tier 1: shore up contested locations we are losing but can still save.
	var reinforce []LocationAnalysis
	for _, a := range analyses {
		if a.Contested && a.Differential() < 0 && !a.ShouldFlee {
			reinforce = append(reinforce, a)
		}
	}
	sort.SliceStable(reinforce, func(i, j int) bool {
		if reinforce[i].BattleOpportunity != reinforce[j].BattleOpportunity {
			return reinforce[i].BattleOpportunity
		}
		return reinforce[i].Differential() < reinforce[j].Differential()
	})
	for _, a := range reinforce {
		deficit := -a.Differential()
		target := deficit + margin
		c := findCombination(available(a), remaining, target, false, r.Deploy.ExhaustiveLimit)
		if !c.MeetsGoal || len(c.Units) == 0 {
			slog.Debug("reinforcement unreachable", "location", a.Name, "deficit", deficit, "target", target, "best", c.Power)
			continue
		}
		commit(a, c, TierReinforce, fmt.Sprintf("reinforce (deficit %d)", deficit))
	}

	// Tier 2: take uncontested locations carrying their icons. Matching their
	// power does not give control, so the target must be beaten outright.
	var establish []LocationAnalysis
	for _, a := range analyses {
		if !a.Contested && a.TheirIcons > 0 && !a.MyPresence {
			establish = append(establish, a)
		}
	}
	sort.SliceStable(establish, func(i, j int) bool {
		return establish[i].TheirIcons > establish[j].TheirIcons
	})
	for _, a := range establish {
		c := findCombination(available(a), remaining, a.TheirPower, true, r.Deploy.ExhaustiveLimit)
		if !c.MeetsGoal || len(c.Units) == 0 {
			continue
		}
		commit(a, c, TierEstablish, fmt.Sprintf("establish (%d icons, opponent power %d)", a.TheirIcons, a.TheirPower))
	}

	sort.SliceStable(instructions, func(i, j int) bool {
		return instructions[i].Tier < instructions[j].Tier
	})
	plan.Instructions = instructions
	plan.Strategy = classify(instructions)
	for _, in := range instructions {
		plan.Committed += in.Cost
	}

	slog.Info("deployment plan computed",
		"turn", gs.Turn,
		"phase", gs.Phase,
		"strategy", plan.Strategy,
		"mode", prof.Mode,
		"instructions", len(plan.Instructions),
		"budget", plan.Budget,
		"reserved", plan.Reserved,
		"committed", plan.Committed,
	)
	return plan, nil
}

// HandUnits splits the hand into location cards and deployable units.
// Unknown cards are left out.
func HandUnits(gs model.GameState, cards model.CardLookup) (locations []Unit, units []Unit) {
	for _, hc := range gs.Hand {
		info, ok := cards.Lookup(hc.Blueprint)
		if !ok {
			slog.Debug("unknown card left out of plan", "blueprint", hc.Blueprint, "card", hc.CardID)
			continue
		}
		u := Unit{
			CardID:    hc.CardID,
			Blueprint: hc.Blueprint,
			Title:     info.Title,
			Power:     info.Power,
			Cost:      info.Cost,
			Ground:    info.DeploysToGround(),
			Space:     info.DeploysToSpace(),
		}
		switch {
		case info.Location:
			locations = append(locations, u)
		case info.Unit():
			units = append(units, u)
		}
	}
	return locations, units
}
