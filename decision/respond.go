package decision

import (
	"sort"
	"strconv"
	"strings"
)

// Response is the answer sent back for a decision. An empty Value is a pass.
type Response struct {
	DecisionID string
	Value      string
	Pass       bool
}

// declinePhrases are matched longest first so that a specific phrase beats a
// generic word that happens to appear in another candidate.
var declinePhrases = func() []string {
	p := []string{"do not", "don't", "no thanks", "decline", "cancel", "done", "pass", "skip", "none", "no"}
	sort.SliceStable(p, func(i, j int) bool { return len(p[i]) > len(p[j]) })
	return p
}()

// Respond turns a chosen action into the answer for the session. A pass on a
// decision kind that cannot carry an empty answer is mapped onto a decline
// candidate, or the last offered candidate when none reads like one.
func Respond(ctx *Context, chosen Action) Response {
	r := Response{DecisionID: ctx.DecisionID}
	if !chosen.Pass {
		r.Value = chosen.ID
		return r
	}
	if ctx.Kind == Integer {
		r.Value = strconv.Itoa(ctx.Min)
		return r
	}
	if acceptsEmpty(ctx) {
		r.Pass = true
		return r
	}
	if id, ok := declineCandidate(ctx.Candidates); ok {
		r.Value = id
		return r
	}
	if n := len(ctx.Candidates); n > 0 {
		r.Value = ctx.Candidates[n-1].ID
	}
	return r
}

func acceptsEmpty(ctx *Context) bool {
	switch ctx.Kind {
	case ActionChoice:
		return !ctx.NoPass
	case CardSelection, ArbitraryCards:
		return ctx.Min == 0
	default:
		return false
	}
}

func declineCandidate(cands []Candidate) (string, bool) {
	padded := make([]string, len(cands))
	for i, c := range cands {
		padded[i] = " " + strings.Join(tokens(c.Text), " ") + " "
	}
	for _, phrase := range declinePhrases {
		needle := " " + phrase + " "
		for i, c := range cands {
			if strings.Contains(padded[i], needle) {
				return c.ID, true
			}
		}
	}
	return "", false
}
