package planner

import (
	"fmt"
	"strings"
)

// Tier orders instructions: locations first, then reinforcement, then
// establishing new presence.
type Tier int

const (
	TierLocation  Tier = 0
	TierReinforce Tier = 1
	TierEstablish Tier = 2
)

func (t Tier) String() string {
	switch t {
	case TierLocation:
		return "location"
	case TierReinforce:
		return "reinforce"
	case TierEstablish:
		return "establish"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Strategy is the overall shape of a plan.
type Strategy string

const (
	HoldBack        Strategy = "hold_back"
	DeployLocations Strategy = "deploy_locations"
	Reinforce       Strategy = "reinforce"
	Establish       Strategy = "establish"
)

// Instruction is one planned deployment.
type Instruction struct {
	CardID    string
	Blueprint string
	Title     string
	Tier      Tier
	// LocationIndex is -1 when the card is itself a location.
	LocationIndex  int
	LocationCardID string
	LocationName   string
	Reason         string
	Power          int
	Cost           int
}

// HasTarget reports whether the instruction names a location to deploy to.
func (in Instruction) HasTarget() bool {
	return in.LocationIndex >= 0
}

// Plan is the phase-scoped allocation of our hand. Instructions are removed
// as the matching deployments are confirmed.
type Plan struct {
	Turn         int
	Phase        string
	Strategy     Strategy
	Instructions []Instruction

	// Budget is the force pile at planning time; Reserved is held back for
	// battle; Committed is the cost of the planned instructions.
	Budget    int
	Reserved  int
	Committed int

	Spent       int
	Deployments int

	// Confidence is 1 for the rules planner; alternative planners report
	// their own.
	Confidence float64
	Source     string
}

// Spendable is the budget available to instructions.
func (p *Plan) Spendable() int {
	s := p.Budget - p.Reserved
	if s < 0 {
		return 0
	}
	return s
}

// Complete reports whether every instruction was executed and at least one
// deployment happened this phase. Only then are unplanned extras allowed.
func (p *Plan) Complete() bool {
	return len(p.Instructions) == 0 && p.Deployments > 0
}

// Pending is the cost of instructions not yet executed.
func (p *Plan) Pending() int {
	n := 0
	for _, in := range p.Instructions {
		n += in.Cost
	}
	return n
}

// ExtraBudget is what the current force pile leaves for unplanned actions
// once the battle reserve and the remaining instructions are covered.
func (p *Plan) ExtraBudget(force int) int {
	extra := force - p.Reserved - p.Pending()
	if extra < 0 {
		return 0
	}
	return extra
}

// InstructionFor returns the first instruction for a blueprint.
func (p *Plan) InstructionFor(blueprint string) (Instruction, bool) {
	for _, in := range p.Instructions {
		if in.Blueprint == blueprint {
			return in, true
		}
	}
	return Instruction{}, false
}

// consume removes exactly one instruction for the blueprint and records the
// deployment. It reports whether an instruction matched.
func (p *Plan) consume(blueprint string, cost int) bool {
	p.Deployments++
	for i, in := range p.Instructions {
		if in.Blueprint != blueprint {
			continue
		}
		p.Instructions = append(p.Instructions[:i:i], p.Instructions[i+1:]...)
		p.Spent += in.Cost
		return true
	}
	p.Spent += cost
	return false
}

// classify names the plan's strategy from its tiers.
func classify(instructions []Instruction) Strategy {
	if len(instructions) == 0 {
		return HoldBack
	}
	counts := map[Tier]int{}
	for _, in := range instructions {
		counts[in.Tier]++
	}
	switch {
	case counts[TierLocation] > 0:
		return DeployLocations
	case counts[TierReinforce] > 0 && counts[TierReinforce] >= counts[TierEstablish]:
		return Reinforce
	default:
		return Establish
	}
}

func (p *Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d %s: %s, budget %d (reserve %d, committed %d)",
		p.Turn, p.Phase, p.Strategy, p.Budget, p.Reserved, p.Committed)
	for _, in := range p.Instructions {
		fmt.Fprintf(&b, "\n  [%s] %s", in.Tier, in.Reason)
	}
	return b.String()
}
