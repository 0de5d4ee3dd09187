package rules

import (
	"fmt"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// Candidate categories as seen by rule conditions.
const (
	CategoryDraw     = "draw"
	CategoryActivate = "activate"
	CategoryPlay     = "play"
	CategoryPass     = "pass"
	CategoryUnknown  = "unknown"
)

// CompileProfile generates the full rule set for a profile: the built-in
// heuristics for the current doctrine plus any rules from the config.
func CompileProfile(p strategy.Profile, cfg config.Config) []*Rule {
	rules := CompileDoctrine(DoctrineFor(p, cfg))
	return append(rules, FromSpecs(cfg.Rules)...)
}

// CompileDoctrine generates the built-in rules from a doctrine's weights.
// Conditions are built with fmt.Sprintf from validated values, so the
// compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// --- Draw ---
	// One of the three fires per candidate: a starved force pile beats a
	// full hand beats a short hand.

	rules = append(rules, &Rule{
		Name:         "draw-starved",
		Priority:     520,
		Category:     CategoryDraw,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q && Force() - 1 < %d`, CategoryDraw, d.ForceFloor),
		Delta:        -d.DrawScore,
		Reason:       fmt.Sprintf("drawing leaves fewer than %d force", d.ForceFloor),
	})

	rules = append(rules, &Rule{
		Name:         "draw-full-hand",
		Priority:     510,
		Category:     CategoryDraw,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q && HandSize() >= %d`, CategoryDraw, d.TargetHandSize),
		Delta:        -d.FullHandPenalty,
		Reason:       fmt.Sprintf("hand already at %d cards", d.TargetHandSize),
	})

	rules = append(rules, &Rule{
		Name:         "draw-short-hand",
		Priority:     500,
		Category:     CategoryDraw,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q && HandSize() < %d`, CategoryDraw, d.TargetHandSize),
		Delta:        d.DrawScore * lerpf(0.8, 1.1, d.DrawAppetite),
		Reason:       fmt.Sprintf("hand below %d cards", d.TargetHandSize),
	})

	rules = append(rules, &Rule{
		Name:         "draw-thin-reserve",
		Priority:     490,
		Category:     "draw-reserve",
		Exclusive:    false,
		ConditionSrc: fmt.Sprintf(`Category == %q && ReserveDeck() <= %d`, CategoryDraw, d.ReserveFloor),
		Delta:        -lerpf(5, 20, d.Caution),
		Reason:       "reserve deck running low",
	})

	// --- Activation ---

	rules = append(rules, &Rule{
		Name:         "activate-protect-reserve",
		Priority:     410,
		Category:     CategoryActivate,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q && ReserveDeck() <= %d`, CategoryActivate, d.ReserveFloor),
		Delta:        -lerpf(10, 30, d.Caution),
		Reason:       "activation would drain a thin reserve deck",
	})

	rules = append(rules, &Rule{
		Name:         "activate-force",
		Priority:     400,
		Category:     CategoryActivate,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q`, CategoryActivate),
		Delta:        lerpf(10, 30, d.Expansion),
		Reason:       "force fuels deployment",
	})

	// --- Playing cards ---

	rules = append(rules, &Rule{
		Name:         "play-in-battle",
		Priority:     310,
		Category:     CategoryPlay,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q && PhaseIs("battle")`, CategoryPlay),
		Delta:        lerpf(5, 25, d.Aggression),
		Reason:       "card played during battle",
	})

	rules = append(rules, &Rule{
		Name:         "play-card",
		Priority:     300,
		Category:     CategoryPlay,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`Category == %q`, CategoryPlay),
		Delta:        5,
		Reason:       "play card",
	})

	// --- Passing ---

	if d.PassBias != 0 {
		rules = append(rules, &Rule{
			Name:         "pass-posture",
			Priority:     200,
			Category:     CategoryPass,
			Exclusive:    false,
			ConditionSrc: fmt.Sprintf(`Category == %q`, CategoryPass),
			Delta:        d.PassBias,
			Reason:       fmt.Sprintf("%s posture", d.Name),
		})
	}

	if d.Aggression >= 0.9 {
		rules = append(rules, &Rule{
			Name:         "unknown-desperate",
			Priority:     100,
			Category:     CategoryUnknown,
			Exclusive:    true,
			ConditionSrc: fmt.Sprintf(`Category == %q`, CategoryUnknown),
			Delta:        10,
			Reason:       "behind badly, try anything",
		})
	}

	return rules
}

// FromSpecs turns config-supplied rule specs into rules. Conditions are
// compiled by the engine, which rejects the whole set on a bad expression.
func FromSpecs(specs []config.RuleSpec) []*Rule {
	out := make([]*Rule, 0, len(specs))
	for _, s := range specs {
		out = append(out, &Rule{
			Name:         s.Name,
			Priority:     s.Priority,
			Category:     s.Category,
			Exclusive:    s.Exclusive,
			ConditionSrc: s.Condition,
			Delta:        s.Delta,
			Reason:       s.Reason,
		})
	}
	return out
}
