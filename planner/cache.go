package planner

import (
	"log/slog"

	"github.com/nstehr/holonet/holonet-core/model"
)

// Cache memoizes one plan per (turn, phase). It belongs to a single game
// instance and is not safe for concurrent use.
type Cache struct {
	planner Planner
	turn    int
	phase   string
	plan    *Plan
}

func NewCache(p Planner) *Cache {
	return &Cache{planner: p}
}

// Plan returns the plan for the snapshot's turn and phase, computing it on
// first request. A planner error degrades to a hold-back plan so callers
// always get a fully formed plan.
func (c *Cache) Plan(gs model.GameState) *Plan {
	if c.Valid(gs.Turn, gs.Phase) {
		return c.plan
	}

	plan, err := c.planner.ComputePlan(gs)
	if err != nil || plan == nil {
		slog.Warn("planner failed, holding back", "turn", gs.Turn, "phase", gs.Phase, "error", err)
		plan = &Plan{
			Turn:     gs.Turn,
			Phase:    gs.Phase,
			Strategy: HoldBack,
			Budget:   gs.Me.ForcePile,
			Source:   "fallback",
		}
	}
	c.plan = plan
	c.turn = gs.Turn
	c.phase = gs.Phase
	return plan
}

// Current returns the cached plan without computing one. It is nil before
// the first request and after Reset.
func (c *Cache) Current() *Plan {
	return c.plan
}

// Valid reports whether the cached plan belongs to the given turn and phase.
func (c *Cache) Valid(turn int, phase string) bool {
	return c.plan != nil && c.turn == turn && c.phase == phase
}

// ConfirmDeployment records a deployment the game accepted. It removes one
// instruction for the blueprint and reports whether one matched.
func (c *Cache) ConfirmDeployment(blueprint string, cost int) bool {
	if c.plan == nil {
		return false
	}
	matched := c.plan.consume(blueprint, cost)
	slog.Debug("deployment confirmed",
		"blueprint", blueprint,
		"planned", matched,
		"remaining", len(c.plan.Instructions),
		"complete", c.plan.Complete(),
	)
	return matched
}

// Reset drops the cached plan.
func (c *Cache) Reset() {
	c.plan = nil
}
