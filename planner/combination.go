package planner

import (
	"math"
	"sort"
)

// ExhaustiveLimit is the largest candidate set searched subset by subset.
// Hands rarely hold more deployable units than this; past it the search
// falls back to a greedy pass.
const ExhaustiveLimit = 8

// Unit is a deployable card reduced to what allocation cares about.
type Unit struct {
	CardID    string
	Blueprint string
	Title     string
	Power     int
	Cost      int
	Ground    bool
	Space     bool
}

// Combination is a chosen subset of units.
type Combination struct {
	Units     []Unit
	Power     int
	Cost      int
	MeetsGoal bool
}

// FindOptimalCombination picks the units to commit toward a power target
// within budget. Goal-meeting subsets beat non-meeting ones; among meeting
// subsets the cheapest wins, otherwise the most powerful. With mustExceed the
// target has to be strictly beaten.
func FindOptimalCombination(units []Unit, budget, target int, mustExceed bool) Combination {
	return findCombination(units, budget, target, mustExceed, ExhaustiveLimit)
}

func findCombination(units []Unit, budget, target int, mustExceed bool, limit int) Combination {
	if budget < 0 {
		budget = 0
	}
	if len(units) <= limit {
		return exhaustiveCombination(units, budget, target, mustExceed)
	}
	return greedyCombination(units, budget, target, mustExceed)
}

func meets(power, target int, mustExceed bool) bool {
	if mustExceed {
		return power > target
	}
	return power >= target
}

func exhaustiveCombination(units []Unit, budget, target int, mustExceed bool) Combination {
	n := len(units)
	bestMeet, bestOther := -1, -1
	var meetPower, meetCost, otherPower, otherCost int

	for mask := 0; mask < 1<<n; mask++ {
		power, cost := 0, 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				power += units[i].Power
				cost += units[i].Cost
			}
		}
		if cost > budget {
			continue
		}
		if meets(power, target, mustExceed) {
			if bestMeet < 0 || cost < meetCost || (cost == meetCost && power > meetPower) {
				bestMeet, meetPower, meetCost = mask, power, cost
			}
			continue
		}
		if bestOther < 0 || power > otherPower || (power == otherPower && cost < otherCost) {
			bestOther, otherPower, otherCost = mask, power, cost
		}
	}

	if bestMeet >= 0 {
		return fromMask(units, bestMeet, true)
	}
	if bestOther >= 0 {
		return fromMask(units, bestOther, false)
	}
	return Combination{}
}

func fromMask(units []Unit, mask int, meetsGoal bool) Combination {
	c := Combination{MeetsGoal: meetsGoal}
	for i, u := range units {
		if mask&(1<<i) != 0 {
			c.Units = append(c.Units, u)
			c.Power += u.Power
			c.Cost += u.Cost
		}
	}
	return c
}

func efficiency(u Unit) float64 {
	if u.Cost <= 0 {
		return math.Inf(1)
	}
	return float64(u.Power) / float64(u.Cost)
}

// greedyCombination takes units by power per cost until the goal holds, then
// drops any expensive unit the goal does not need.
func greedyCombination(units []Unit, budget, target int, mustExceed bool) Combination {
	type ranked struct {
		unit  Unit
		index int
	}
	var pool []ranked
	for i, u := range units {
		if u.Power > 0 && u.Cost <= budget {
			pool = append(pool, ranked{u, i})
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		ei, ej := efficiency(pool[i].unit), efficiency(pool[j].unit)
		if ei != ej {
			return ei > ej
		}
		return pool[i].unit.Power > pool[j].unit.Power
	})

	var picked []ranked
	power, cost := 0, 0
	for _, r := range pool {
		if meets(power, target, mustExceed) {
			break
		}
		if cost+r.unit.Cost > budget {
			continue
		}
		picked = append(picked, r)
		power += r.unit.Power
		cost += r.unit.Cost
	}

	met := meets(power, target, mustExceed)
	if met {
		byCost := make([]int, len(picked))
		for i := range byCost {
			byCost[i] = i
		}
		sort.SliceStable(byCost, func(a, b int) bool {
			return picked[byCost[a]].unit.Cost > picked[byCost[b]].unit.Cost
		})
		drop := make(map[int]bool)
		for _, i := range byCost {
			// Free units cost nothing to keep and only add power.
			if picked[i].unit.Cost == 0 {
				continue
			}
			if meets(power-picked[i].unit.Power, target, mustExceed) {
				drop[i] = true
				power -= picked[i].unit.Power
				cost -= picked[i].unit.Cost
			}
		}
		kept := picked[:0]
		for i, r := range picked {
			if !drop[i] {
				kept = append(kept, r)
			}
		}
		picked = kept
	}

	// Report units in hand order, same as the exhaustive path.
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].index < picked[j].index })
	c := Combination{Power: power, Cost: cost, MeetsGoal: met}
	for _, r := range picked {
		c.Units = append(c.Units, r.unit)
	}
	return c
}
