package model

import "strings"

// GameState is the board snapshot for one pending decision. The session layer
// owns it; the decision core only reads it through the accessors below.
type GameState struct {
	Turn      int         `json:"turn"`
	Phase     string      `json:"phase"`
	Side      string      `json:"side"`
	Me        PlayerState `json:"me"`
	Opponent  PlayerState `json:"opponent"`
	Hand      []HandCard  `json:"hand"`
	Locations []Location  `json:"locations"`
}

type PlayerState struct {
	Name        string `json:"name"`
	ForcePile   int    `json:"forcePile"`
	UsedPile    int    `json:"usedPile"`
	ReserveDeck int    `json:"reserveDeck"`
	LostPile    int    `json:"lostPile"`
	HandSize    int    `json:"handSize"`
}

// LifeForce is what a side can still lose before the game ends.
func (p PlayerState) LifeForce() int {
	return p.ForcePile + p.UsedPile + p.ReserveDeck
}

type HandCard struct {
	CardID    string `json:"cardId"`
	Blueprint string `json:"blueprint"`
}

// InPlayCard is a card on the table at a location. Power is the current
// in-play power, which may differ from the printed value.
type InPlayCard struct {
	CardID      string   `json:"cardId"`
	Blueprint   string   `json:"blueprint"`
	Mine        bool     `json:"mine"`
	Power       int      `json:"power"`
	Attachments []string `json:"attachments,omitempty"`
}

type Location struct {
	Index      int          `json:"index"`
	CardID     string       `json:"cardId"`
	Blueprint  string       `json:"blueprint"`
	Name       string       `json:"name"`
	Ground     bool         `json:"ground"`
	Space      bool         `json:"space"`
	MyIcons    int          `json:"myIcons"`
	TheirIcons int          `json:"theirIcons"`
	Cards      []InPlayCard `json:"cards"`
}

// MyPower sums the power of our cards present at the location.
func (l Location) MyPower() int {
	n := 0
	for _, c := range l.Cards {
		if c.Mine {
			n += c.Power
		}
	}
	return n
}

func (l Location) TheirPower() int {
	n := 0
	for _, c := range l.Cards {
		if !c.Mine {
			n += c.Power
		}
	}
	return n
}

// MyPresence reports whether we have any card at the location, even a
// zero-power one.
func (l Location) MyPresence() bool {
	for _, c := range l.Cards {
		if c.Mine {
			return true
		}
	}
	return false
}

func (l Location) TheirPresence() bool {
	for _, c := range l.Cards {
		if !c.Mine {
			return true
		}
	}
	return false
}

// MyPowerAt returns the power this side controls at location i, or 0 when i
// is out of range.
func (gs GameState) MyPowerAt(i int) int {
	if i < 0 || i >= len(gs.Locations) {
		return 0
	}
	return gs.Locations[i].MyPower()
}

func (gs GameState) TheirPowerAt(i int) int {
	if i < 0 || i >= len(gs.Locations) {
		return 0
	}
	return gs.Locations[i].TheirPower()
}

// InHand reports whether a card instance is still in our hand.
func (gs GameState) InHand(cardID string) bool {
	for _, c := range gs.Hand {
		if c.CardID == cardID {
			return true
		}
	}
	return false
}

func (gs GameState) HandCard(cardID string) (HandCard, bool) {
	for _, c := range gs.Hand {
		if c.CardID == cardID {
			return c, true
		}
	}
	return HandCard{}, false
}

// LocationByCardID finds the location whose own card has the given id.
func (gs GameState) LocationByCardID(cardID string) (Location, bool) {
	for _, l := range gs.Locations {
		if l.CardID == cardID {
			return l, true
		}
	}
	return Location{}, false
}

// LocationOfCard finds the location a card in play currently sits at.
func (gs GameState) LocationOfCard(cardID string) (Location, bool) {
	for _, l := range gs.Locations {
		for _, c := range l.Cards {
			if c.CardID == cardID {
				return l, true
			}
		}
	}
	return Location{}, false
}

// LocationNamed matches a location by name, case-insensitively.
func (gs GameState) LocationNamed(name string) (Location, bool) {
	for _, l := range gs.Locations {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Location{}, false
}

// TotalPower sums power across all locations for one side.
func (gs GameState) TotalPower(mine bool) int {
	n := 0
	for _, l := range gs.Locations {
		if mine {
			n += l.MyPower()
		} else {
			n += l.TheirPower()
		}
	}
	return n
}
