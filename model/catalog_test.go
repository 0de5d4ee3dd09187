package model

import "testing"

func TestCatalogLoadFromJSON(t *testing.T) {
	c := NewCatalog()
	err := c.LoadFromJSON([]byte(`[
		{"blueprint": "1_1", "title": "Luke", "power": 3, "cost": 2, "character": true},
		{"blueprint": "1_2", "title": "X-wing", "power": 3, "cost": 3, "starship": true},
		{"blueprint": "", "title": "ignored"}
	]`))
	if err != nil {
		t.Fatalf("LoadFromJSON failed: %v", err)
	}
	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}

	luke, ok := c.Lookup("1_1")
	if !ok {
		t.Fatal("Lookup(1_1) missing")
	}
	if !luke.Unit() || !luke.DeploysToGround() || luke.DeploysToSpace() {
		t.Errorf("character domain flags wrong: %+v", luke)
	}

	xwing, _ := c.Lookup("1_2")
	if !xwing.DeploysToSpace() || xwing.DeploysToGround() {
		t.Errorf("starship domain flags wrong: %+v", xwing)
	}

	if _, ok := c.Lookup("9_9"); ok {
		t.Error("Lookup(9_9) should miss")
	}
}

func TestCatalogLoadInvalidJSON(t *testing.T) {
	c := NewCatalog()
	if err := c.LoadFromJSON([]byte(`{not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
