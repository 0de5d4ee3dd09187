package planner

import (
	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
)

// LocationAnalysis is the per-cycle view of one location. It is rebuilt on
// every planning pass and never cached on its own.
type LocationAnalysis struct {
	Index      int
	CardID     string
	Name       string
	Ground     bool
	Space      bool
	MyPower    int
	TheirPower int
	MyIcons    int
	TheirIcons int

	MyPresence    bool
	TheirPresence bool

	// Exactly one of Contested, IControl, TheyControl holds, or none of them.
	Contested   bool
	IControl    bool
	TheyControl bool

	// ShouldFlee marks a contested location with a deficit too large to
	// recover with what we can deploy.
	ShouldFlee bool
	// BattleOpportunity marks a contested location we can flip to a
	// favorable differential while keeping enough force to start a battle.
	BattleOpportunity bool
}

// Differential is our power minus theirs.
func (a LocationAnalysis) Differential() int {
	return a.MyPower - a.TheirPower
}

// Neither reports an empty or unoccupied location.
func (a LocationAnalysis) Neither() bool {
	return !a.Contested && !a.IControl && !a.TheyControl
}

// Accepts reports whether a unit can be deployed here.
func (a LocationAnalysis) Accepts(u Unit) bool {
	return (a.Space && u.Space) || (a.Ground && u.Ground)
}

// AnalyzeLocations derives the flags for every location. units and force are
// what we could still deploy this phase; they drive ShouldFlee and
// BattleOpportunity.
func AnalyzeLocations(gs model.GameState, units []Unit, force int, margin int, dc config.Deploy, bc config.Battle) []LocationAnalysis {
	spendable := force - dc.CombatReserve
	out := make([]LocationAnalysis, 0, len(gs.Locations))
	for i, l := range gs.Locations {
		a := LocationAnalysis{
			Index:         l.Index,
			CardID:        l.CardID,
			Name:          l.Name,
			Ground:        l.Ground,
			Space:         l.Space,
			MyPower:       gs.MyPowerAt(i),
			TheirPower:    gs.TheirPowerAt(i),
			MyIcons:       l.MyIcons,
			TheirIcons:    l.TheirIcons,
			MyPresence:    l.MyPresence(),
			TheirPresence: l.TheirPresence(),
		}
		a.Contested = a.MyPresence && a.TheirPresence
		a.IControl = a.MyPresence && !a.TheirPresence
		a.TheyControl = a.TheirPresence && !a.MyPresence

		if a.Contested {
			fit := fitting(a, units)
			deficit := a.TheirPower - a.MyPower
			need := deficit + margin
			if deficit >= dc.FleeDeficit {
				a.ShouldFlee = !findCombination(fit, spendable, need, false, dc.ExhaustiveLimit).MeetsGoal
			}
			if need <= 0 {
				a.BattleOpportunity = force >= bc.InitiateCost
			} else {
				a.BattleOpportunity = findCombination(fit, force-bc.InitiateCost, need, false, dc.ExhaustiveLimit).MeetsGoal
			}
		}
		out = append(out, a)
	}
	return out
}

func fitting(a LocationAnalysis, units []Unit) []Unit {
	var out []Unit
	for _, u := range units {
		if a.Accepts(u) {
			out = append(out, u)
		}
	}
	return out
}
