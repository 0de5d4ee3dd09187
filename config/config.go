package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// Config is the tuning document consumed by the decision core. Every value has
// a built-in default; a document only needs to carry what it overrides.
type Config struct {
	Deploy Deploy     `json:"deploy"`
	Battle Battle     `json:"battle"`
	Move   Move       `json:"move"`
	Draw   Draw       `json:"draw"`
	Global Global     `json:"global"`
	Rules  []RuleSpec `json:"rules"`
}

type Deploy struct {
	CombatReserve       int     `json:"combat_reserve"`
	ReinforceMargin     int     `json:"reinforce_margin"`
	FleeDeficit         int     `json:"flee_deficit"`
	ExhaustiveLimit     int     `json:"exhaustive_limit"`
	PlannedScore        float64 `json:"planned_score"`
	TierBonus           float64 `json:"tier_bonus"`
	OffPlanPenalty      float64 `json:"off_plan_penalty"`
	ExtraActionScore    float64 `json:"extra_action_score"`
	HoldBackPenalty     float64 `json:"hold_back_penalty"`
	UnaffordablePenalty float64 `json:"unaffordable_penalty"`
	AttemptedPenalty    float64 `json:"attempted_penalty"`
	UnknownCardScore    float64 `json:"unknown_card_score"`
	NoTargetPenalty     float64 `json:"no_target_penalty"`
	OverkillThreshold   int     `json:"overkill_threshold"`
	MinConfidence       float64 `json:"min_confidence"`
	Planner             string  `json:"planner"`
}

type Battle struct {
	InitiateCost       int     `json:"initiate_cost"`
	FavorableAdvantage int     `json:"favorable_advantage"`
	BattleScore        float64 `json:"battle_score"`
	PerPowerBonus      float64 `json:"per_power_bonus"`
	UnfavorablePenalty float64 `json:"unfavorable_penalty"`
	EmptyPenalty       float64 `json:"empty_penalty"`
}

type Move struct {
	FleeScore          float64 `json:"flee_score"`
	AbandonLeadPenalty float64 `json:"abandon_lead_penalty"`
	DefaultScore       float64 `json:"default_score"`
	AttemptedPenalty   float64 `json:"attempted_penalty"`
}

type Draw struct {
	TargetHandSize    int     `json:"target_hand_size"`
	DrawScore         float64 `json:"draw_score"`
	FullHandPenalty   float64 `json:"full_hand_penalty"`
	MinForceAfterDraw int     `json:"min_force_after_draw"`
}

type Global struct {
	PassThreshold      float64 `json:"pass_threshold"`
	BadActionThreshold float64 `json:"bad_action_threshold"`
	PassChance         float64 `json:"pass_chance"`
	ComfortableLead    float64 `json:"comfortable_lead"`
	DesperationDeficit float64 `json:"desperation_deficit"`
	EarlyTurns         int     `json:"early_turns"`
	RandomSpread       float64 `json:"random_spread"`
	Seed               int64   `json:"seed"`
}

// RuleSpec is an extra heuristic rule supplied by the document. Condition is
// an expr expression evaluated against the rule environment.
type RuleSpec struct {
	Name      string  `json:"name"`
	Priority  int     `json:"priority"`
	Category  string  `json:"category"`
	Exclusive bool    `json:"exclusive"`
	Condition string  `json:"condition"`
	Delta     float64 `json:"delta"`
	Reason    string  `json:"reason"`
}

// Default returns the built-in tuning.
func Default() Config {
	return Config{
		Deploy: Deploy{
			CombatReserve:       1,
			ReinforceMargin:     2,
			FleeDeficit:         6,
			ExhaustiveLimit:     8,
			PlannedScore:        80,
			TierBonus:           15,
			OffPlanPenalty:      40,
			ExtraActionScore:    15,
			HoldBackPenalty:     100,
			UnaffordablePenalty: 300,
			AttemptedPenalty:    500,
			UnknownCardScore:    -5,
			NoTargetPenalty:     200,
			OverkillThreshold:   8,
			MinConfidence:       0.6,
			Planner:             "rules",
		},
		Battle: Battle{
			InitiateCost:       1,
			FavorableAdvantage: 2,
			BattleScore:        60,
			PerPowerBonus:      5,
			UnfavorablePenalty: 80,
			EmptyPenalty:       150,
		},
		Move: Move{
			FleeScore:          70,
			AbandonLeadPenalty: 60,
			DefaultScore:       -10,
			AttemptedPenalty:   500,
		},
		Draw: Draw{
			TargetHandSize:    7,
			DrawScore:         30,
			FullHandPenalty:   40,
			MinForceAfterDraw: 2,
		},
		Global: Global{
			PassThreshold:      0,
			BadActionThreshold: -50,
			PassChance:         0.5,
			ComfortableLead:    8,
			DesperationDeficit: 20,
			EarlyTurns:         3,
			RandomSpread:       10,
		},
	}
}

// Parse decodes a document on top of the defaults, so absent sections and
// fields keep their built-in values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// Load reads the document at path. A missing file is not an error: the
// defaults are returned instead.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("config not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate clamps values that would break the planner or the evaluators.
func (c *Config) Validate() {
	c.Deploy.CombatReserve = clampInt(c.Deploy.CombatReserve, 0, 10)
	c.Deploy.ReinforceMargin = clampInt(c.Deploy.ReinforceMargin, 0, 10)
	c.Deploy.FleeDeficit = clampInt(c.Deploy.FleeDeficit, 1, 50)
	c.Deploy.ExhaustiveLimit = clampInt(c.Deploy.ExhaustiveLimit, 1, 16)
	c.Deploy.MinConfidence = clamp(c.Deploy.MinConfidence, 0, 1)
	if c.Deploy.Planner == "" {
		c.Deploy.Planner = "rules"
	}
	c.Battle.InitiateCost = clampInt(c.Battle.InitiateCost, 0, 10)
	c.Draw.TargetHandSize = clampInt(c.Draw.TargetHandSize, 1, 20)
	c.Global.PassChance = clamp(c.Global.PassChance, 0, 1)
	c.Global.EarlyTurns = clampInt(c.Global.EarlyTurns, 0, 20)
	if c.Global.RandomSpread < 0 {
		c.Global.RandomSpread = 0
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
