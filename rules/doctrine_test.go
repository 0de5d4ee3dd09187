package rules

import (
	"testing"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		min, max int
		t        float64
		want     int
	}{
		{2, 6, 0.0, 2},
		{2, 6, 1.0, 6},
		{2, 6, 0.5, 4},
		{5, 20, 0.7, 16}, // 5 + round(15*0.7) = 5 + round(10.5) = 5 + 11 = 16
	}
	for _, tc := range tests {
		got := lerp(tc.min, tc.max, tc.t)
		if got != tc.want {
			t.Errorf("lerp(%d, %d, %.1f) = %d, want %d", tc.min, tc.max, tc.t, got, tc.want)
		}
	}
}

func TestLerpf(t *testing.T) {
	got := lerpf(0.0, 1.0, 0.5)
	if got != 0.5 {
		t.Errorf("lerpf(0, 1, 0.5) = %f, want 0.5", got)
	}
	got = lerpf(-15, 15, 0.5)
	if got != 0 {
		t.Errorf("lerpf(-15, 15, 0.5) = %f, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.2, 0, 1, 0},
		{1.7, 0, 1, 1},
	}
	for _, tc := range tests {
		if got := clamp(tc.v, tc.min, tc.max); got != tc.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tc.v, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestDoctrineForModes(t *testing.T) {
	cfg := config.Default()
	g := cfg.Global

	desperate := DoctrineFor(strategy.Build(behindBy(30), g), cfg)
	defensive := DoctrineFor(strategy.Build(aheadBy(12), g), cfg)

	if desperate.Aggression < 0.99 {
		t.Errorf("desperation aggression = %v, want 1", desperate.Aggression)
	}
	if desperate.Caution > 0.01 {
		t.Errorf("desperation caution = %v, want 0", desperate.Caution)
	}
	if defensive.Caution < 0.99 {
		t.Errorf("defensive caution = %v, want 1", defensive.Caution)
	}
	if desperate.ForceFloor >= defensive.ForceFloor {
		t.Errorf("force floor desperate %d >= defensive %d", desperate.ForceFloor, defensive.ForceFloor)
	}
	if desperate.ReserveFloor != 2 || defensive.ReserveFloor != 6 {
		t.Errorf("reserve floors = %d, %d, want 2, 6", desperate.ReserveFloor, defensive.ReserveFloor)
	}
}

func TestDoctrineValidate(t *testing.T) {
	d := Doctrine{Aggression: 3, Caution: -1, TargetHandSize: 0, ForceFloor: -4, DrawScore: 1000}
	d.Validate()
	if d.Aggression != 1 || d.Caution != 0 {
		t.Errorf("weights = %v, %v, want 1, 0", d.Aggression, d.Caution)
	}
	if d.TargetHandSize != 1 || d.ForceFloor != 0 {
		t.Errorf("ints = %d, %d, want 1, 0", d.TargetHandSize, d.ForceFloor)
	}
	if d.DrawScore != 200 {
		t.Errorf("DrawScore = %v, want 200", d.DrawScore)
	}
}
