package agent

import (
	"fmt"

	"github.com/nstehr/holonet/holonet-core/model"
)

// EventKind identifies something that changed between two consecutive
// decision snapshots.
type EventKind string

const (
	EventTurnStarted    EventKind = "turn_started"
	EventPhaseChanged   EventKind = "phase_changed"
	EventCardDeployed   EventKind = "card_deployed"
	EventLocationPlayed EventKind = "location_played"
	EventCardLost       EventKind = "card_lost"
)

// Event is one detected change. Blueprint is set for card events.
type Event struct {
	Kind      EventKind
	Turn      int
	CardID    string
	Blueprint string
	Detail    string
}

// stateSnapshot captures the diffable parts of a decision's board.
type stateSnapshot struct {
	turn   int
	phase  string
	hand   map[string]string // card id -> blueprint
	inPlay map[string]string // our cards at locations, card id -> blueprint
}

func takeSnapshot(gs model.GameState) stateSnapshot {
	snap := stateSnapshot{
		turn:   gs.Turn,
		phase:  gs.Phase,
		hand:   make(map[string]string, len(gs.Hand)),
		inPlay: make(map[string]string),
	}
	for _, c := range gs.Hand {
		snap.hand[c.CardID] = c.Blueprint
	}
	for _, l := range gs.Locations {
		for _, c := range l.Cards {
			if c.Mine {
				snap.inPlay[c.CardID] = c.Blueprint
			}
		}
	}
	return snap
}

// detectEvents compares the board against the previous snapshot. It returns
// nil on the first decision of a game.
func detectEvents(gs model.GameState, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(gs)

	if cur.turn != prev.turn {
		events = append(events, Event{
			Kind:   EventTurnStarted,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("turn %d -> %d", prev.turn, cur.turn),
		})
	}
	if cur.turn != prev.turn || cur.phase != prev.phase {
		events = append(events, Event{
			Kind:   EventPhaseChanged,
			Turn:   gs.Turn,
			Detail: fmt.Sprintf("%s -> %s", prev.phase, cur.phase),
		})
	}

	// A card that left the hand and is now on the table was deployed by us.
	for id, bp := range prev.hand {
		if gs.InHand(id) {
			continue
		}
		if _, ok := cur.inPlay[id]; ok {
			events = append(events, Event{Kind: EventCardDeployed, Turn: gs.Turn, CardID: id, Blueprint: bp})
			continue
		}
		if loc, ok := gs.LocationByCardID(id); ok {
			events = append(events, Event{
				Kind:      EventLocationPlayed,
				Turn:      gs.Turn,
				CardID:    id,
				Blueprint: bp,
				Detail:    loc.Name,
			})
		}
	}

	for id, bp := range prev.inPlay {
		if _, ok := cur.inPlay[id]; !ok {
			events = append(events, Event{Kind: EventCardLost, Turn: gs.Turn, CardID: id, Blueprint: bp})
		}
	}

	return events
}

// Deployment reports whether the event consumed force for the deployment plan.
func (e Event) Deployment() bool {
	return e.Kind == EventCardDeployed || e.Kind == EventLocationPlayed
}
