package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/decision"
	"github.com/nstehr/holonet/holonet-core/ipc"
	"github.com/nstehr/holonet/holonet-core/journal"
	"github.com/nstehr/holonet/holonet-core/model"
	"github.com/nstehr/holonet/holonet-core/planner"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

const journalTimeout = 2 * time.Second

// Agent owns the decision-making for a single game instance. Nothing in it is
// shared with other instances except the read-only catalog and config.
type Agent struct {
	Conn       *ipc.Connection
	InstanceID string
	Player     string
	Side       string
	GameID     string

	cfg      config.Config
	cards    model.CardLookup
	journal  journal.Store
	profiler *strategy.Profiler
	plans    *planner.Cache
	deploy   *decision.DeployEvaluator
	strat    *Strategist
	combined *decision.Combined
	prev     *stateSnapshot
}

// New builds an instance. conn may be nil when the agent is driven directly.
func New(conn *ipc.Connection, cards model.CardLookup, cfg config.Config, store journal.Store) (*Agent, error) {
	if store == nil {
		store = journal.Nop{}
	}
	a := &Agent{
		Conn:       conn,
		InstanceID: uuid.NewString(),
		cfg:        cfg,
		cards:      cards,
		journal:    store,
	}
	if err := a.build(cfg.Global.Seed); err != nil {
		return nil, err
	}
	if conn != nil {
		conn.Instance = a.InstanceID
	}
	return a, nil
}

// build wires a fresh set of caches and evaluators seeded with seed.
func (a *Agent) build(seed int64) error {
	strat, err := NewStrategist(a.cfg)
	if err != nil {
		return fmt.Errorf("build rules: %w", err)
	}
	rng := decision.NewRand(seed)

	a.profiler = strategy.NewProfiler(a.cfg.Global)
	a.plans = planner.NewCache(planner.New(a.cards, a.cfg, a.profiler, nil))
	a.strat = strat
	a.prev = nil

	deploy := decision.NewDeployEvaluator(a.cards, a.plans, a.profiler, a.cfg)
	a.deploy = deploy
	battle := decision.NewBattleEvaluator(a.profiler, a.cfg)
	move := decision.NewMoveEvaluator(a.cards, a.profiler, a.cfg)
	a.combined = decision.NewCombined(a.cfg.Global, rng,
		deploy,
		battle,
		move,
		decision.NewAmountEvaluator(a.cfg),
		decision.NewTextEvaluator(strat.Engine(), a.profiler, a.cfg.Global, rng, deploy, battle, move),
	)
	return nil
}

// HandleHello identifies the player. A seed in the hello replaces the
// configured one so the game can be replayed.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Player = hello.Player
	a.Side = hello.Side
	a.GameID = hello.GameID
	if hello.Seed != 0 {
		if err := a.build(hello.Seed); err != nil {
			return nil, err
		}
	}
	slog.Info("player identified",
		"instance", a.InstanceID,
		"player", a.Player,
		"side", a.Side,
		"opponent", hello.Opponent,
		"game", a.GameID,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Instance: a.InstanceID})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (a *Agent) HandleDecision(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.DecisionMessage
	if err := env.Decode(&msg); err != nil {
		return nil, err
	}

	resp, action, err := a.Decide(toContext(msg))
	if errors.Is(err, decision.ErrNoDecision) {
		reply, encErr := ipc.NewEnvelope(ipc.TypeError, ipc.ErrorMessage{DecisionID: msg.DecisionID, Error: err.Error()})
		if encErr != nil {
			return nil, encErr
		}
		return &reply, nil
	}
	if err != nil {
		return nil, err
	}

	reply, err := ipc.NewEnvelope(ipc.TypeDecisionResponse, ipc.DecisionResponse{
		DecisionID: resp.DecisionID,
		Value:      resp.Value,
		Pass:       resp.Pass,
		Score:      action.Score,
		Rationale:  action.Rationale(),
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Decide runs one decision through the instance: board diffing, profile and
// rule refresh, scoring, the answer, and bookkeeping.
func (a *Agent) Decide(ctx *decision.Context) (decision.Response, decision.Action, error) {
	a.observe(ctx.State)
	a.strat.Update(a.profiler.Profile(ctx.State))

	action, err := a.combined.Decide(ctx)
	if err != nil {
		return decision.Response{}, decision.Action{}, err
	}
	resp := decision.Respond(ctx, action)
	a.combined.Record(ctx, action)
	a.record(ctx, action, resp)
	return resp, action, nil
}

// HandleOutcome logs what the game did with an answer. A rejected answer
// keeps its attempt mark, so the same option is penalized next time.
func (a *Agent) HandleOutcome(env ipc.Envelope) (*ipc.Envelope, error) {
	var out ipc.OutcomeMessage
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	if !out.Accepted {
		slog.Warn("answer rejected", "instance", a.InstanceID, "decision", out.DecisionID, "reason", out.Reason)
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := a.journal.Outcome(ctx, a.InstanceID, out.DecisionID, out.Accepted); err != nil {
		slog.Error("journal outcome failed", "decision", out.DecisionID, "error", err)
	}
	return nil, nil
}

// observe diffs the board against the previous decision and feeds confirmed
// deployments to the plan cache.
func (a *Agent) observe(gs model.GameState) {
	for _, ev := range detectEvents(gs, a.prev) {
		switch {
		case ev.Deployment():
			cost := 0
			if info, ok := a.cards.Lookup(ev.Blueprint); ok {
				cost = info.Cost
			}
			planned := a.plans.ConfirmDeployment(ev.Blueprint, cost)
			a.deploy.ConfirmDeployment(gs.Turn, ev.CardID)
			if plan := a.plans.Current(); plan != nil {
				slog.Info("deployment confirmed",
					"instance", a.InstanceID,
					"card", ev.Blueprint,
					"planned", planned,
					"remaining", len(plan.Instructions),
				)
			}
		case ev.Kind == EventTurnStarted:
			// Last turn's plan must not absorb this turn's deployments.
			a.plans.Reset()
			slog.Info("turn started", "instance", a.InstanceID, "turn", ev.Turn, "force", gs.Me.ForcePile)
		default:
			slog.Debug("game event", "instance", a.InstanceID, "kind", ev.Kind, "card", ev.CardID, "detail", ev.Detail)
		}
	}
	snap := takeSnapshot(gs)
	a.prev = &snap
}

func (a *Agent) record(ctx *decision.Context, action decision.Action, resp decision.Response) {
	jctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	err := a.journal.Record(jctx, journal.Entry{
		Instance:   a.InstanceID,
		DecisionID: ctx.DecisionID,
		Turn:       ctx.State.Turn,
		Phase:      ctx.State.Phase,
		Kind:       string(ctx.Kind),
		Prompt:     ctx.Prompt,
		Chosen:     resp.Value,
		Category:   string(action.Category),
		Pass:       resp.Pass || action.Pass,
		Score:      action.Score,
		Rationale:  action.Rationale(),
	})
	if err != nil {
		slog.Error("journal write failed", "decision", ctx.DecisionID, "error", err)
	}
}

func toContext(msg ipc.DecisionMessage) *decision.Context {
	cands := make([]decision.Candidate, len(msg.Candidates))
	for i, c := range msg.Candidates {
		cands[i] = decision.Candidate{
			ID:         c.ID,
			Text:       c.Text,
			CardID:     c.CardID,
			Blueprint:  c.Blueprint,
			Selectable: !c.Disabled,
		}
	}
	return &decision.Context{
		DecisionID:   msg.DecisionID,
		Kind:         decision.Kind(msg.Kind),
		Prompt:       msg.Prompt,
		Candidates:   cands,
		NoPass:       msg.NoPass,
		Min:          msg.Min,
		Max:          msg.Max,
		SourceCardID: msg.SourceCardID,
		State:        msg.State,
	}
}
