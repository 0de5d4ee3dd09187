package agent

import (
	"log/slog"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/rules"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// Strategist recompiles the heuristic rule set whenever the strategy profile
// changes mode, so the text evaluator's deltas follow the game's posture.
type Strategist struct {
	engine *rules.Engine
	cfg    config.Config
	mode   strategy.Mode
	swaps  int
}

// NewStrategist compiles the neutral rule set. Extra rules from the config
// that fail to compile are dropped with an error log so a bad document never
// stops the player.
func NewStrategist(cfg config.Config) (*Strategist, error) {
	neutral := strategy.Neutral()
	engine, err := rules.NewEngine(rules.CompileProfile(neutral, cfg))
	if err != nil {
		slog.Error("configured rules failed to compile, using generated rules only", "error", err)
		engine, err = rules.NewEngine(rules.CompileDoctrine(rules.DoctrineFor(neutral, cfg)))
		if err != nil {
			return nil, err
		}
	}
	return &Strategist{engine: engine, cfg: cfg, mode: neutral.Mode}, nil
}

func (s *Strategist) Engine() *rules.Engine { return s.engine }

// Update swaps the rule set when p is in a different mode from the one the
// current rules were compiled for. It reports whether a swap happened.
func (s *Strategist) Update(p strategy.Profile) bool {
	if p.Mode == s.mode {
		return false
	}

	if err := s.engine.Swap(rules.CompileProfile(p, s.cfg)); err != nil {
		slog.Error("strategist rule swap failed, using generated rules only", "mode", p.Mode, "error", err)
		if err := s.engine.Swap(rules.CompileDoctrine(rules.DoctrineFor(p, s.cfg))); err != nil {
			slog.Error("generated rule swap failed", "mode", p.Mode, "error", err)
			return false
		}
	}

	s.swaps++
	slog.Info("doctrine changed",
		"from", s.mode,
		"to", p.Mode,
		"score", p.Position.Score,
		"rules", s.engine.Len(),
		"swaps", s.swaps,
	)
	s.mode = p.Mode
	return true
}
