package planner

import (
	"fmt"
	"testing"
)

func units(pc ...[2]int) []Unit {
	out := make([]Unit, len(pc))
	for i, v := range pc {
		out[i] = Unit{CardID: fmt.Sprintf("u%d", i), Power: v[0], Cost: v[1]}
	}
	return out
}

func ids(c Combination) []string {
	var out []string
	for _, u := range c.Units {
		out = append(out, u.CardID)
	}
	return out
}

func TestFindOptimalCombinationPrefersCheapestGoal(t *testing.T) {
	cands := units([2]int{4, 3}, [2]int{3, 2}, [2]int{2, 4})

	c := FindOptimalCombination(cands, 6, 5, false)
	if !c.MeetsGoal {
		t.Fatal("expected a goal-meeting combination")
	}
	if c.Power != 7 || c.Cost != 5 {
		t.Errorf("got power %d cost %d, want power 7 cost 5", c.Power, c.Cost)
	}
	if got := ids(c); len(got) != 2 || got[0] != "u0" || got[1] != "u1" {
		t.Errorf("units = %v, want [u0 u1]", got)
	}
}

func TestFindOptimalCombinationMustExceed(t *testing.T) {
	tests := []struct {
		name  string
		cands []Unit
		want  bool
	}{
		{"exactly matching is rejected", units([2]int{6, 4}), false},
		{"exceeding is accepted", units([2]int{7, 4}), true},
		{"pair exceeding is accepted", units([2]int{4, 2}, [2]int{3, 2}), true},
	}
	for _, tc := range tests {
		c := FindOptimalCombination(tc.cands, 10, 6, true)
		if c.MeetsGoal != tc.want {
			t.Errorf("%s: MeetsGoal = %v, want %v (power %d)", tc.name, c.MeetsGoal, tc.want, c.Power)
		}
	}
}

func TestFindOptimalCombinationBestEffort(t *testing.T) {
	// Nothing reaches 10; the strongest affordable subset is returned.
	cands := units([2]int{3, 2}, [2]int{4, 3}, [2]int{5, 6})
	c := FindOptimalCombination(cands, 5, 10, false)
	if c.MeetsGoal {
		t.Fatal("goal should be unreachable")
	}
	if c.Power != 7 || c.Cost != 5 {
		t.Errorf("got power %d cost %d, want power 7 cost 5", c.Power, c.Cost)
	}
}

func TestFindOptimalCombinationRespectsBudget(t *testing.T) {
	cands := units([2]int{9, 7}, [2]int{8, 6})
	c := FindOptimalCombination(cands, 5, 3, false)
	if c.MeetsGoal || len(c.Units) != 0 || c.Cost != 0 {
		t.Errorf("nothing affordable, got %+v", c)
	}
}

func TestFindOptimalCombinationEqualCostPrefersPower(t *testing.T) {
	cands := units([2]int{3, 2}, [2]int{5, 2})
	c := FindOptimalCombination(cands, 2, 3, false)
	if got := ids(c); len(got) != 1 || got[0] != "u1" {
		t.Errorf("units = %v, want [u1]", got)
	}
}

func TestGreedyCombinationLargeHand(t *testing.T) {
	// Ten units forces the greedy path.
	cands := units(
		[2]int{1, 3}, [2]int{2, 2}, [2]int{6, 2}, [2]int{1, 1}, [2]int{2, 4},
		[2]int{3, 0}, [2]int{4, 4}, [2]int{1, 5}, [2]int{2, 3}, [2]int{5, 5},
	)
	c := FindOptimalCombination(cands, 6, 9, false)
	if !c.MeetsGoal {
		t.Fatalf("expected greedy to meet goal, got %+v", c)
	}
	if c.Cost > 6 {
		t.Errorf("cost %d exceeds budget 6", c.Cost)
	}
	// Free 3-power unit plus the 6-power unit for 2 meets 9 exactly.
	if c.Power != 9 || c.Cost != 2 {
		t.Errorf("got power %d cost %d, want power 9 cost 2", c.Power, c.Cost)
	}
	if got := ids(c); len(got) != 2 || got[0] != "u2" || got[1] != "u5" {
		t.Errorf("units = %v, want [u2 u5] in hand order", got)
	}
}

func TestGreedyDropsRedundantUnits(t *testing.T) {
	cands := make([]Unit, 0, 10)
	cands = append(cands, units([2]int{1, 0}, [2]int{2, 1}, [2]int{8, 5})...)
	for i := 0; i < 7; i++ {
		cands = append(cands, Unit{CardID: fmt.Sprintf("filler%d", i), Power: 1, Cost: 9})
	}
	// Greedy takes 1/0, 2/1, then 8/5 to reach 8; the 2/1 becomes redundant
	// while the free unit is kept.
	c := findCombination(cands, 10, 8, false, 2)
	if !c.MeetsGoal {
		t.Fatalf("expected goal met, got %+v", c)
	}
	if c.Power != 9 || c.Cost != 5 {
		t.Errorf("got power %d cost %d, want power 9 cost 5", c.Power, c.Cost)
	}
}

func TestExhaustiveAndGreedyAgreeOnSimpleCase(t *testing.T) {
	cands := units([2]int{2, 1}, [2]int{5, 3}, [2]int{1, 1})
	ex := findCombination(cands, 4, 6, false, 8)
	gr := findCombination(cands, 4, 6, false, 0)
	if ex.MeetsGoal != gr.MeetsGoal || ex.Cost != gr.Cost || ex.Power != gr.Power {
		t.Errorf("exhaustive %+v and greedy %+v disagree", ex, gr)
	}
}
