package rules

import (
	"math"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// Doctrine is the rule-facing posture derived from a strategy profile.
// Weights are 0.0–1.0; the compiler maps them to concrete rule parameters.
type Doctrine struct {
	Name         string  `json:"name"`
	Aggression   float64 `json:"aggression"`
	Caution      float64 `json:"caution"`
	DrawAppetite float64 `json:"draw_appetite"`
	Expansion    float64 `json:"expansion"`
	// PassBias shifts the score of declining; zero for a balanced profile.
	PassBias     float64 `json:"pass_bias"`

	TargetHandSize  int     `json:"target_hand_size"`
	ForceFloor      int     `json:"force_floor"`
	ReserveFloor    int     `json:"reserve_floor"`
	DrawScore       float64 `json:"draw_score"`
	FullHandPenalty float64 `json:"full_hand_penalty"`
}

// DoctrineFor maps profile multipliers onto doctrine weights. Each multiplier
// range in the mode table spans 0 to 1 here.
func DoctrineFor(p strategy.Profile, cfg config.Config) Doctrine {
	d := Doctrine{
		Name:            string(p.Mode),
		Aggression:      (p.BattleMultiplier - 0.8) / (1.5 - 0.8),
		Caution:         (p.PassMultiplier - 0.5) / (1.2 - 0.5),
		DrawAppetite:    (p.DrawMultiplier - 0.8) / (1.1 - 0.8),
		Expansion:       (p.DeployMultiplier - 0.9) / (1.3 - 0.9),
		PassBias:        (p.PassMultiplier - 1) * 50,
		TargetHandSize:  cfg.Draw.TargetHandSize,
		ForceFloor:      cfg.Draw.MinForceAfterDraw + p.RiskShift,
		ReserveFloor:    lerp(2, 6, (p.PassMultiplier-0.5)/(1.2-0.5)),
		DrawScore:       cfg.Draw.DrawScore,
		FullHandPenalty: cfg.Draw.FullHandPenalty,
	}
	d.Validate()
	return d
}

// Validate clamps all weights to their valid ranges.
func (d *Doctrine) Validate() {
	d.Aggression = clamp(d.Aggression, 0, 1)
	d.Caution = clamp(d.Caution, 0, 1)
	d.DrawAppetite = clamp(d.DrawAppetite, 0, 1)
	d.Expansion = clamp(d.Expansion, 0, 1)
	d.PassBias = clamp(d.PassBias, -25, 25)
	d.TargetHandSize = clampInt(d.TargetHandSize, 1, 20)
	d.ForceFloor = clampInt(d.ForceFloor, 0, 10)
	d.ReserveFloor = clampInt(d.ReserveFloor, 0, 10)
	d.DrawScore = clamp(d.DrawScore, 0, 200)
	d.FullHandPenalty = clamp(d.FullHandPenalty, 0, 200)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// lerpf linearly interpolates between min and max by t (0–1), returning a float64.
func lerpf(min, max, t float64) float64 {
	return min + (max-min)*t
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
