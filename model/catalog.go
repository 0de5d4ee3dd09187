package model

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// CardInfo holds the static, printed attributes of a card blueprint.
type CardInfo struct {
	Blueprint string `json:"blueprint"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Power     int    `json:"power"`
	Cost      int    `json:"cost"`
	Location  bool   `json:"location"`
	Character bool   `json:"character"`
	Starship  bool   `json:"starship"`
	Vehicle   bool   `json:"vehicle"`
	Unique    bool   `json:"unique"`
	// Ground and Space mark where a location card can be, or where a unit may
	// deploy. Starships default to space, characters and vehicles to ground.
	Ground bool `json:"ground"`
	Space  bool `json:"space"`
}

// Unit reports whether the card adds power when deployed.
func (c CardInfo) Unit() bool {
	return c.Character || c.Starship || c.Vehicle
}

// DeploysToSpace reports whether the unit can go to a space location.
func (c CardInfo) DeploysToSpace() bool {
	return c.Space || c.Starship
}

// DeploysToGround reports whether the unit can go to a ground location.
func (c CardInfo) DeploysToGround() bool {
	return c.Ground || c.Character || c.Vehicle
}

// CardLookup resolves a blueprint id to its static attributes. A miss means
// the card is unknown to us.
type CardLookup interface {
	Lookup(blueprint string) (CardInfo, bool)
}

// Catalog is an in-memory CardLookup loaded from JSON.
type Catalog struct {
	mu    sync.RWMutex
	cards map[string]CardInfo
}

func NewCatalog(cards ...CardInfo) *Catalog {
	c := &Catalog{cards: make(map[string]CardInfo, len(cards))}
	for _, card := range cards {
		c.cards[card.Blueprint] = card
	}
	return c
}

// LoadCatalogFile loads a JSON array of CardInfo.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card catalog: %w", err)
	}
	c := NewCatalog()
	if err := c.LoadFromJSON(data); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) LoadFromJSON(data []byte) error {
	var list []CardInfo
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse card catalog: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, card := range list {
		if card.Blueprint == "" {
			continue
		}
		c.cards[card.Blueprint] = card
	}
	return nil
}

func (c *Catalog) Lookup(blueprint string) (CardInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	card, ok := c.cards[blueprint]
	return card, ok
}

func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}
