package model

import "testing"

func testState() GameState {
	return GameState{
		Turn:  4,
		Phase: "Deploy",
		Me:    PlayerState{ForcePile: 6, UsedPile: 2, ReserveDeck: 20},
		Hand: []HandCard{
			{CardID: "h1", Blueprint: "1_100"},
			{CardID: "h2", Blueprint: "1_101"},
		},
		Locations: []Location{
			{
				Index: 0, CardID: "loc0", Name: "Tatooine: Mos Eisley", Ground: true, TheirIcons: 2,
				Cards: []InPlayCard{
					{CardID: "c1", Mine: true, Power: 3},
					{CardID: "c2", Mine: false, Power: 5},
					{CardID: "c3", Mine: false, Power: 1},
				},
			},
			{
				Index: 1, CardID: "loc1", Name: "Kessel", Space: true, MyIcons: 1,
				Cards: []InPlayCard{{CardID: "c4", Mine: true, Power: 0}},
			},
		},
	}
}

func TestPowerAccessors(t *testing.T) {
	gs := testState()

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"MyPowerAt(0)", gs.MyPowerAt(0), 3},
		{"TheirPowerAt(0)", gs.TheirPowerAt(0), 6},
		{"MyPowerAt(1)", gs.MyPowerAt(1), 0},
		{"MyPowerAt(-1)", gs.MyPowerAt(-1), 0},
		{"TheirPowerAt(9)", gs.TheirPowerAt(9), 0},
		{"TotalPower(mine)", gs.TotalPower(true), 3},
		{"TotalPower(theirs)", gs.TotalPower(false), 6},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %d, want %d", tc.name, tc.got, tc.want)
		}
	}
}

func TestPresenceWithZeroPower(t *testing.T) {
	gs := testState()
	if !gs.Locations[1].MyPresence() {
		t.Error("zero-power card should still count as presence")
	}
	if gs.Locations[1].TheirPresence() {
		t.Error("no opposing cards at Kessel, presence should be false")
	}
}

func TestLifeForce(t *testing.T) {
	gs := testState()
	if got := gs.Me.LifeForce(); got != 28 {
		t.Errorf("LifeForce() = %d, want 28", got)
	}
}

func TestLocationLookups(t *testing.T) {
	gs := testState()

	if l, ok := gs.LocationByCardID("loc1"); !ok || l.Name != "Kessel" {
		t.Errorf("LocationByCardID(loc1) = %q, %v", l.Name, ok)
	}
	if l, ok := gs.LocationOfCard("c2"); !ok || l.Index != 0 {
		t.Errorf("LocationOfCard(c2) = %d, %v; want 0, true", l.Index, ok)
	}
	if _, ok := gs.LocationOfCard("missing"); ok {
		t.Error("LocationOfCard(missing) should not be found")
	}
	if l, ok := gs.LocationNamed("kessel"); !ok || l.Index != 1 {
		t.Errorf("LocationNamed(kessel) = %d, %v; want 1, true", l.Index, ok)
	}
	if !gs.InHand("h2") || gs.InHand("c1") {
		t.Error("InHand reported wrong membership")
	}
}
