package agent

import (
	"testing"

	"github.com/nstehr/holonet/holonet-core/model"
)

func boardState(turn int, phase string) model.GameState {
	return model.GameState{
		Turn:  turn,
		Phase: phase,
		Me:    model.PlayerState{ForcePile: 6, ReserveDeck: 20},
		Hand: []model.HandCard{
			{CardID: "h0", Blueprint: "luke"},
			{CardID: "h1", Blueprint: "kid"},
			{CardID: "h2", Blueprint: "cantina"},
		},
		Locations: []model.Location{
			{Index: 0, CardID: "loc0", Name: "Mos Eisley", Ground: true, Cards: []model.InPlayCard{
				{CardID: "m1", Blueprint: "han", Mine: true, Power: 3},
				{CardID: "t1", Blueprint: "trooper", Power: 5},
			}},
		},
	}
}

func kinds(events []Event) map[EventKind]int {
	out := make(map[EventKind]int)
	for _, e := range events {
		out[e.Kind]++
	}
	return out
}

func TestDetectEventsNilPrev(t *testing.T) {
	if events := detectEvents(boardState(1, "deploy"), nil); events != nil {
		t.Errorf("expected nil events for nil prev, got %+v", events)
	}
}

func TestDetectEventsNoChange(t *testing.T) {
	gs := boardState(1, "deploy")
	prev := takeSnapshot(gs)
	if events := detectEvents(gs, &prev); len(events) != 0 {
		t.Errorf("expected 0 events, got %+v", events)
	}
}

func TestDetectEventsTurnAndPhase(t *testing.T) {
	gs := boardState(1, "deploy")
	prev := takeSnapshot(gs)

	gs.Phase = "battle"
	got := kinds(detectEvents(gs, &prev))
	if got[EventPhaseChanged] != 1 || got[EventTurnStarted] != 0 {
		t.Errorf("phase change events = %v", got)
	}

	gs.Turn = 2
	gs.Phase = "activate"
	got = kinds(detectEvents(gs, &prev))
	if got[EventPhaseChanged] != 1 || got[EventTurnStarted] != 1 {
		t.Errorf("turn change events = %v", got)
	}
}

func TestDetectEventsDeployment(t *testing.T) {
	gs := boardState(1, "deploy")
	prev := takeSnapshot(gs)

	// Luke leaves the hand for Mos Eisley, the Cantina becomes a location.
	gs.Hand = gs.Hand[1:2]
	gs.Locations[0].Cards = append(gs.Locations[0].Cards, model.InPlayCard{CardID: "h0", Blueprint: "luke", Mine: true, Power: 4})
	gs.Locations = append(gs.Locations, model.Location{Index: 1, CardID: "h2", Blueprint: "cantina", Name: "Cantina", Ground: true})

	var deployed []string
	for _, e := range detectEvents(gs, &prev) {
		if !e.Deployment() {
			t.Errorf("unexpected event %+v", e)
			continue
		}
		deployed = append(deployed, e.Blueprint)
	}
	if len(deployed) != 2 {
		t.Fatalf("deployments = %v, want luke and cantina", deployed)
	}
	seen := map[string]bool{deployed[0]: true, deployed[1]: true}
	if !seen["luke"] || !seen["cantina"] {
		t.Errorf("deployments = %v, want luke and cantina", deployed)
	}
}

func TestDetectEventsDiscardIsNotDeployment(t *testing.T) {
	gs := boardState(1, "deploy")
	prev := takeSnapshot(gs)

	gs.Hand = gs.Hand[1:]
	for _, e := range detectEvents(gs, &prev) {
		if e.Deployment() {
			t.Errorf("card that left the hand without reaching the table counted as deployed: %+v", e)
		}
	}
}

func TestDetectEventsCardLost(t *testing.T) {
	gs := boardState(1, "battle")
	prev := takeSnapshot(gs)

	gs.Locations[0].Cards = gs.Locations[0].Cards[1:]
	events := detectEvents(gs, &prev)
	if len(events) != 1 || events[0].Kind != EventCardLost || events[0].Blueprint != "han" {
		t.Errorf("events = %+v, want han lost", events)
	}
}
