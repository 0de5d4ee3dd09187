package planner

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
)

var ErrLowConfidence = errors.New("plan confidence below threshold")

// Fallback asks Primary first and switches to Secondary when Primary fails or
// is not confident enough in its plan.
type Fallback struct {
	Primary       Planner
	Secondary     Planner
	MinConfidence float64
}

func (f Fallback) ComputePlan(gs model.GameState) (*Plan, error) {
	plan, err := f.Primary.ComputePlan(gs)
	if err == nil && plan != nil && plan.Confidence < f.MinConfidence {
		err = fmt.Errorf("%w: %.2f < %.2f", ErrLowConfidence, plan.Confidence, f.MinConfidence)
	}
	if err == nil && plan != nil {
		return plan, nil
	}
	slog.Warn("primary planner rejected, falling back", "turn", gs.Turn, "error", err)
	return f.Secondary.ComputePlan(gs)
}

// New selects the planner named in the deploy config. Only the rules planner
// ships with the core; any other name falls back to it.
func New(cards model.CardLookup, cfg config.Config, profiles ProfileSource, alternatives map[string]Planner) Planner {
	rules := NewRules(cards, cfg, profiles)
	if cfg.Deploy.Planner == "" || cfg.Deploy.Planner == "rules" {
		return rules
	}
	alt, ok := alternatives[cfg.Deploy.Planner]
	if !ok {
		slog.Warn("planner not available, using rules planner", "planner", cfg.Deploy.Planner)
		return rules
	}
	return Fallback{Primary: alt, Secondary: rules, MinConfidence: cfg.Deploy.MinConfidence}
}
