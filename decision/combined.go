package decision

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/nstehr/holonet/holonet-core/config"
)

// ErrNoDecision means no evaluator scored any offered candidate.
var ErrNoDecision = errors.New("no evaluator produced a candidate")

// Evaluator scores the candidates of the decisions it understands. It may
// keep memory across calls but never mutates the context.
type Evaluator interface {
	Name() string
	CanEvaluate(ctx *Context) bool
	Evaluate(ctx *Context) []Action
}

// Tracker is implemented by evaluators that remember what was attempted.
type Tracker interface {
	Record(ctx *Context, chosen Action)
}

// Combined runs a fixed, ordered list of evaluators and picks the best
// action. Earlier evaluators win ties.
type Combined struct {
	evaluators []Evaluator
	global     config.Global
	rng        *rand.Rand
}

func NewCombined(g config.Global, rng *rand.Rand, evaluators ...Evaluator) *Combined {
	if rng == nil {
		rng = NewRand(g.Seed)
	}
	return &Combined{evaluators: evaluators, global: g, rng: rng}
}

// NewRand returns the per-instance random source. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Decide returns the chosen action, which is a pass when the safety valve
// trips. Actions for candidates that are not offered or not selectable are
// ignored.
func (c *Combined) Decide(ctx *Context) (Action, error) {
	offered := make(map[string]bool, len(ctx.Candidates))
	for _, cand := range ctx.Candidates {
		if cand.Selectable {
			offered[cand.ID] = true
		}
	}

	var best Action
	found := false
	for _, ev := range c.evaluators {
		if !ev.CanEvaluate(ctx) {
			continue
		}
		for _, a := range ev.Evaluate(ctx) {
			if ctx.Kind != Integer && !offered[a.ID] {
				continue
			}
			slog.Debug("candidate scored",
				"decision", ctx.DecisionID,
				"evaluator", ev.Name(),
				"id", a.ID,
				"category", a.Category,
				"score", a.Score,
				"why", a.Rationale(),
			)
			if !found || a.Score > best.Score {
				best = a
				found = true
			}
		}
	}
	if !found {
		slog.Warn("no decision possible", "decision", ctx.DecisionID, "kind", ctx.Kind, "candidates", len(ctx.Candidates))
		return Action{}, ErrNoDecision
	}

	if best.Score < c.global.BadActionThreshold && ctx.PassAllowed() && c.rng.Float64() < c.global.PassChance {
		slog.Info("every option looks bad, passing",
			"decision", ctx.DecisionID,
			"best", best.ID,
			"score", best.Score,
		)
		pass := Action{Pass: true, Category: Pass, Score: best.Score}
		pass.Trail = append(pass.Trail, Reason{Why: "best option " + best.ID + " below bad-action threshold"})
		return pass, nil
	}

	slog.Info("decision made",
		"decision", ctx.DecisionID,
		"kind", ctx.Kind,
		"id", best.ID,
		"category", best.Category,
		"score", best.Score,
	)
	return best, nil
}

// Record tells every tracking evaluator what was executed.
func (c *Combined) Record(ctx *Context, chosen Action) {
	for _, ev := range c.evaluators {
		if t, ok := ev.(Tracker); ok {
			t.Record(ctx, chosen)
		}
	}
}
