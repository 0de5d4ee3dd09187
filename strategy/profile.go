package strategy

import (
	"fmt"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
)

// Mode is the high-level posture derived from the position score.
type Mode string

const (
	Desperation Mode = "desperation"
	Aggressive  Mode = "aggressive"
	Balanced    Mode = "balanced"
	Defensive   Mode = "defensive"
	Crushing    Mode = "crushing"
)

// parityBand is how far above zero an early-game score may sit and still be
// pushed from balanced to aggressive.
const parityBand = 2.0

// Profile is advisory input for the planner and the evaluators. It never
// selects an action by itself.
type Profile struct {
	Mode     Mode
	Position Position

	DeployMultiplier float64
	BattleMultiplier float64
	PassMultiplier   float64
	DrawMultiplier   float64
	// RiskShift is added to the planner's safety margins. Negative values
	// accept thinner margins.
	RiskShift int
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (score %.1f)", p.Mode, p.Position.Score)
}

// Margin applies the profile's risk shift to a base margin, never going
// below zero.
func (p Profile) Margin(base int) int {
	m := base + p.RiskShift
	if m < 0 {
		return 0
	}
	return m
}

var modeTable = map[Mode]Profile{
	Desperation: {DeployMultiplier: 1.3, BattleMultiplier: 1.5, PassMultiplier: 0.5, DrawMultiplier: 0.8, RiskShift: -2},
	Aggressive:  {DeployMultiplier: 1.2, BattleMultiplier: 1.25, PassMultiplier: 0.8, DrawMultiplier: 0.9, RiskShift: -1},
	Balanced:    {DeployMultiplier: 1.0, BattleMultiplier: 1.0, PassMultiplier: 1.0, DrawMultiplier: 1.0, RiskShift: 0},
	Defensive:   {DeployMultiplier: 0.9, BattleMultiplier: 0.8, PassMultiplier: 1.2, DrawMultiplier: 1.1, RiskShift: 1},
	Crushing:    {DeployMultiplier: 1.1, BattleMultiplier: 1.3, PassMultiplier: 0.9, DrawMultiplier: 0.8, RiskShift: 1},
}

// ModeFor maps a position score to a mode. Early turns treat parity and mild
// disadvantage as aggressive because early board presence compounds.
func ModeFor(score float64, turn int, g config.Global) Mode {
	var mode Mode
	switch {
	case score < -g.DesperationDeficit:
		mode = Desperation
	case score < -g.ComfortableLead:
		mode = Aggressive
	case score > g.DesperationDeficit:
		mode = Crushing
	case score > g.ComfortableLead:
		mode = Defensive
	default:
		mode = Balanced
	}
	if mode == Balanced && turn <= g.EarlyTurns && score <= parityBand {
		mode = Aggressive
	}
	return mode
}

// Build derives the full profile for a snapshot.
func Build(gs model.GameState, g config.Global) Profile {
	pos := Evaluate(gs)
	mode := ModeFor(pos.Score, gs.Turn, g)
	p := modeTable[mode]
	p.Mode = mode
	p.Position = pos
	return p
}

// Neutral is the balanced profile with an empty position, used when no
// snapshot is available.
func Neutral() Profile {
	p := modeTable[Balanced]
	p.Mode = Balanced
	return p
}

// Profiler caches the profile for the current turn and phase.
type Profiler struct {
	global config.Global
	turn   int
	phase  string
	cached *Profile
}

func NewProfiler(g config.Global) *Profiler {
	return &Profiler{global: g}
}

// Profile returns the cached profile, rebuilding it when the turn or phase
// has moved on.
func (p *Profiler) Profile(gs model.GameState) Profile {
	if p.cached != nil && p.turn == gs.Turn && p.phase == gs.Phase {
		return *p.cached
	}
	prof := Build(gs, p.global)
	p.cached = &prof
	p.turn = gs.Turn
	p.phase = gs.Phase
	return prof
}
