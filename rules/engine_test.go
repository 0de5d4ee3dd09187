package rules

import (
	"testing"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(CompileDoctrine(DoctrineFor(strategy.Neutral(), config.Default())))
	if err != nil {
		t.Fatalf("NewEngine(balanced doctrine) failed: %v", err)
	}
	if engine.Len() != 8 {
		t.Errorf("expected 8 rules, got %d", engine.Len())
	}
	// Verify priority ordering (descending).
	for i := 1; i < len(engine.rules); i++ {
		if engine.rules[i].Priority > engine.rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				engine.rules[i].Name, engine.rules[i].Priority,
				engine.rules[i-1].Name, engine.rules[i-1].Priority)
		}
	}
}

func TestEvaluateExclusiveCategory(t *testing.T) {
	engine, err := NewEngine([]*Rule{
		{Name: "low", Priority: 1, Category: "draw", ConditionSrc: `Category == "draw"`, Delta: 1},
		{Name: "high", Priority: 10, Category: "draw", Exclusive: true, ConditionSrc: `Category == "draw"`, Delta: 10},
		{Name: "other", Priority: 5, Category: "misc", ConditionSrc: `true`, Delta: 2},
		{Name: "never", Priority: 20, Category: "draw", Exclusive: true, ConditionSrc: `Category == "pass"`, Delta: 99},
	})
	if err != nil {
		t.Fatal(err)
	}

	fired := engine.Evaluate(Env{Category: "draw"})
	var names []string
	for _, r := range fired {
		names = append(names, r.Name)
	}
	if len(names) != 2 || names[0] != "high" || names[1] != "other" {
		t.Errorf("fired = %v, want [high other]", names)
	}
}

func TestEvaluateRuntimeErrorIsFalse(t *testing.T) {
	engine, err := NewEngine([]*Rule{
		{Name: "index", Priority: 1, Category: "x", ConditionSrc: `[1, 2][Force()] == 1`},
		{Name: "ok", Priority: 0, Category: "x", ConditionSrc: `Force() == 3`},
	})
	if err != nil {
		t.Fatal(err)
	}
	fired := engine.Evaluate(Env{State: model.GameState{Me: model.PlayerState{ForcePile: 3}}})
	if len(fired) != 1 || fired[0].Name != "ok" {
		t.Errorf("fired = %v, want only ok", fired)
	}
}

func TestSwapKeepsOldRulesOnFailure(t *testing.T) {
	engine, err := NewEngine([]*Rule{{Name: "a", ConditionSrc: `true`}})
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Swap([]*Rule{{Name: "broken", ConditionSrc: `Force( >`}}); err == nil {
		t.Fatal("Swap with a bad condition succeeded")
	}
	if engine.Len() != 1 || engine.Evaluate(Env{})[0].Name != "a" {
		t.Error("failed swap replaced the active rules")
	}

	if err := engine.Swap([]*Rule{{Name: "b", ConditionSrc: `true`}, {Name: "c", ConditionSrc: `false`}}); err != nil {
		t.Fatal(err)
	}
	if engine.Len() != 2 {
		t.Errorf("Len() = %d, want 2", engine.Len())
	}
}

func TestConfigRulesJoinProfileRules(t *testing.T) {
	cfg := config.Default()
	cfg.Rules = []config.RuleSpec{{
		Name:      "avoid-sabacc",
		Priority:  900,
		Category:  "play",
		Exclusive: true,
		Condition: `Category == "play" && TextHas("sabacc")`,
		Delta:     -50,
		Reason:    "never gamble",
	}}
	engine, err := NewEngine(CompileProfile(strategy.Neutral(), cfg))
	if err != nil {
		t.Fatal(err)
	}

	fired := engine.Evaluate(Env{Category: "play", Text: "Play Sabacc"})
	if len(fired) != 1 || fired[0].Name != "avoid-sabacc" {
		t.Fatalf("fired = %v, want only avoid-sabacc", fired)
	}
	if fired[0].Delta != -50 {
		t.Errorf("delta = %v, want -50", fired[0].Delta)
	}
}
