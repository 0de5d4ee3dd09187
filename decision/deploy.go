package decision

import (
	"fmt"

	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/model"
	"github.com/nstehr/holonet/holonet-core/planner"
	"github.com/nstehr/holonet/holonet-core/strategy"
)

// DeployEvaluator is authoritative for deployment. It follows the phase plan
// rather than judging cards one at a time.
type DeployEvaluator struct {
	cards    model.CardLookup
	plans    *planner.Cache
	profiles planner.ProfileSource
	deploy   config.Deploy
	global   config.Global
	tried    attempts
}

func NewDeployEvaluator(cards model.CardLookup, plans *planner.Cache, profiles planner.ProfileSource, cfg config.Config) *DeployEvaluator {
	return &DeployEvaluator{cards: cards, plans: plans, profiles: profiles, deploy: cfg.Deploy, global: cfg.Global}
}

func (e *DeployEvaluator) Name() string { return "deploy" }

func (e *DeployEvaluator) CanEvaluate(ctx *Context) bool {
	if ctx.Kind == CardSelection {
		return isTargetPrompt(ctx)
	}
	if ctx.Kind == Integer {
		return false
	}
	for _, c := range ctx.Candidates {
		if Classify(c.Text) == Deploy {
			return true
		}
	}
	return false
}

func isTargetPrompt(ctx *Context) bool {
	return ctx.PromptHas("deploy") && (ctx.PromptHas("where") || ctx.PromptHas("location") || ctx.PromptHas(" to"))
}

func (e *DeployEvaluator) Evaluate(ctx *Context) []Action {
	if ctx.Kind == CardSelection {
		return e.evaluateTargets(ctx)
	}

	plan := e.plans.Plan(ctx.State)
	prof := e.profile(ctx.State)
	force := ctx.State.Me.ForcePile

	var out []Action
	for _, c := range ctx.Candidates {
		if Classify(c.Text) != Deploy {
			continue
		}
		a := Action{ID: c.ID, Category: Deploy}
		bp := blueprintOf(ctx, c)
		info, known := e.cards.Lookup(bp)

		switch {
		case plan.Strategy == planner.HoldBack:
			a.Add(e.global.PassThreshold-e.deploy.HoldBackPenalty, "plan holds back this phase")
		case bp == "":
			e.scoreGeneric(&a, plan, force)
		case !known:
			a.Add(e.deploy.UnknownCardScore, "unknown card "+bp)
		case info.Cost > force:
			a.Add(-e.deploy.UnaffordablePenalty, fmt.Sprintf("costs %d, have %d", info.Cost, force))
		case info.Unit() && !hasTarget(ctx.State, info):
			a.Add(-e.deploy.NoTargetPenalty, "no location on the table takes "+info.Title)
		default:
			if in, ok := plan.InstructionFor(bp); ok {
				a.Add(e.deploy.PlannedScore*prof.DeployMultiplier, in.Reason)
				if bonus := e.deploy.TierBonus * float64(planner.TierEstablish-in.Tier); bonus > 0 {
					a.Add(bonus, "tier "+in.Tier.String())
				}
			} else if plan.Complete() && info.Cost <= plan.ExtraBudget(force) {
				a.Add(e.deploy.ExtraActionScore*prof.DeployMultiplier, "plan complete, spare force")
			} else {
				a.Add(-e.deploy.OffPlanPenalty, "not in plan")
			}
		}

		if e.tried.tried(ctx.State.Turn, attemptKey(c)) {
			a.Add(-e.deploy.AttemptedPenalty, "already attempted this turn")
		}
		out = append(out, a)
	}
	return out
}

// scoreGeneric handles a bare "Deploy" action that opens a card choice later.
func (e *DeployEvaluator) scoreGeneric(a *Action, plan *planner.Plan, force int) {
	switch {
	case len(plan.Instructions) > 0:
		a.Add(e.deploy.PlannedScore, fmt.Sprintf("%d planned deployments left", len(plan.Instructions)))
	case plan.Complete() && plan.ExtraBudget(force) > 0:
		a.Add(e.deploy.ExtraActionScore, "plan complete, spare force")
	default:
		a.Add(-e.deploy.OffPlanPenalty, "nothing left to deploy")
	}
}

// evaluateTargets scores the locations offered for a deployment.
func (e *DeployEvaluator) evaluateTargets(ctx *Context) []Action {
	plan := e.plans.Plan(ctx.State)
	in, hasInstruction := e.instructionForPrompt(ctx, plan)
	info, known := e.cards.Lookup(in.Blueprint)
	if !hasInstruction && ctx.SourceCardID != "" {
		if hc, ok := ctx.State.HandCard(ctx.SourceCardID); ok {
			info, known = e.cards.Lookup(hc.Blueprint)
		}
	}

	var out []Action
	for _, c := range ctx.Candidates {
		a := Action{ID: c.ID, Category: Deploy}
		if plan.Strategy == planner.HoldBack {
			a.Add(e.global.PassThreshold-e.deploy.HoldBackPenalty, "plan holds back this phase")
			out = append(out, a)
			continue
		}
		loc, ok := ctx.State.LocationByCardID(c.CardID)
		if !ok && c.Text != "" {
			loc, ok = ctx.State.LocationNamed(c.Text)
		}
		if !ok {
			a.Add(-e.deploy.NoTargetPenalty, "not a location on the table")
			out = append(out, a)
			continue
		}
		if known && !fits(info, loc) {
			a.Add(-e.deploy.NoTargetPenalty, fmt.Sprintf("%s cannot deploy to %s", info.Title, loc.Name))
			out = append(out, a)
			continue
		}
		if hasInstruction && in.HasTarget() && in.LocationCardID == loc.CardID {
			a.Add(e.deploy.PlannedScore, "planned target "+loc.Name)
		}
		if lead := loc.MyPower() - loc.TheirPower(); loc.MyPresence() && lead >= e.deploy.OverkillThreshold {
			a.Add(-e.deploy.OffPlanPenalty, fmt.Sprintf("already ahead by %d", lead))
		}
		if loc.TheirIcons > 0 {
			a.Add(float64(loc.TheirIcons)*5, fmt.Sprintf("%d opponent icons", loc.TheirIcons))
		}
		if loc.TheirPresence() && loc.MyPower() < loc.TheirPower() {
			a.Add(10, "behind here")
		}
		out = append(out, a)
	}
	return out
}

// instructionForPrompt finds the instruction for the card being deployed:
// by source card first, then by a planned title named in the prompt.
func (e *DeployEvaluator) instructionForPrompt(ctx *Context, plan *planner.Plan) (planner.Instruction, bool) {
	if ctx.SourceCardID != "" {
		for _, in := range plan.Instructions {
			if in.CardID == ctx.SourceCardID {
				return in, true
			}
		}
		if hc, ok := ctx.State.HandCard(ctx.SourceCardID); ok {
			return plan.InstructionFor(hc.Blueprint)
		}
	}
	for _, in := range plan.Instructions {
		if in.Title != "" && ctx.PromptHas(in.Title) {
			return in, true
		}
	}
	return planner.Instruction{}, false
}

// Record marks executed deployments so a rejected one is not retried.
func (e *DeployEvaluator) Record(ctx *Context, chosen Action) {
	if chosen.Pass || chosen.Category != Deploy || ctx.Kind == CardSelection {
		return
	}
	if c, ok := ctx.Candidate(chosen.ID); ok {
		e.tried.mark(ctx.State.Turn, attemptKey(c))
	}
}

// ConfirmDeployment clears the attempt marks a successful deployment leaves
// behind: those of the deployed card and of the bare deploy action, which is
// offered again for the next card.
func (e *DeployEvaluator) ConfirmDeployment(turn int, cardID string) {
	e.tried.forget(turn, "|")
	if cardID != "" {
		e.tried.forget(turn, cardID+"|")
	}
}

func (e *DeployEvaluator) profile(gs model.GameState) strategy.Profile {
	if e.profiles == nil {
		return strategy.Neutral()
	}
	return e.profiles.Profile(gs)
}

func fits(info model.CardInfo, loc model.Location) bool {
	return (loc.Space && info.DeploysToSpace()) || (loc.Ground && info.DeploysToGround())
}

// blueprintOf resolves the blueprint behind a candidate, through the hand
// when only the card id is given.
// hasTarget reports whether any location on the table can take the unit.
func hasTarget(gs model.GameState, info model.CardInfo) bool {
	for _, loc := range gs.Locations {
		if fits(info, loc) {
			return true
		}
	}
	return false
}

func blueprintOf(ctx *Context, c Candidate) string {
	if c.Blueprint != "" {
		return c.Blueprint
	}
	if hc, ok := ctx.State.HandCard(c.CardID); ok {
		return hc.Blueprint
	}
	return ""
}

func (e *DeployEvaluator) Owns() []Category { return []Category{Deploy} }
