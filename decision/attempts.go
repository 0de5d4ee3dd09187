package decision

import "strings"

// attempts remembers which actions were executed this turn. A server that
// rejects an action tends to offer it again; the second offer must not win.
type attempts struct {
	turn int
	seen map[string]bool
}

func (a *attempts) sync(turn int) {
	if a.seen == nil || a.turn != turn {
		a.seen = make(map[string]bool)
		a.turn = turn
	}
}

func (a *attempts) mark(turn int, key string) {
	a.sync(turn)
	a.seen[key] = true
}

func (a *attempts) tried(turn int, key string) bool {
	a.sync(turn)
	return a.seen[key]
}

// attemptKey identifies an offered action across decision rounds. Candidate
// ids are positional in some prompts, so the card and the text are used.
func attemptKey(c Candidate) string {
	return c.CardID + "|" + strings.Join(tokens(c.Text), " ")
}

// forget drops every mark whose key starts with prefix.
func (a *attempts) forget(turn int, prefix string) {
	a.sync(turn)
	for key := range a.seen {
		if strings.HasPrefix(key, prefix) {
			delete(a.seen, key)
		}
	}
}
