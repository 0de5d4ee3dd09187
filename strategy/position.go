package strategy

import "github.com/nstehr/holonet/holonet-core/model"

// Weights applied to each differential when combining the position score.
const (
	lifeForceWeight = 0.5
	reserveWeight   = 0.25
	powerWeight     = 1.0
	drainWeight     = 2.0
)

// Position breaks the score into its differentials (ours minus theirs).
type Position struct {
	LifeForceDiff int
	ReserveDiff   int
	PowerDiff     int
	DrainDiff     int
	Score         float64
}

// Evaluate scores the snapshot from our point of view. Positive is ahead.
func Evaluate(gs model.GameState) Position {
	myDrain, theirDrain := DrainPotential(gs)
	pos := Position{
		LifeForceDiff: gs.Me.LifeForce() - gs.Opponent.LifeForce(),
		ReserveDiff:   gs.Me.ReserveDeck - gs.Opponent.ReserveDeck,
		PowerDiff:     gs.TotalPower(true) - gs.TotalPower(false),
		DrainDiff:     myDrain - theirDrain,
	}
	pos.Score = lifeForceWeight*float64(pos.LifeForceDiff) +
		reserveWeight*float64(pos.ReserveDiff) +
		powerWeight*float64(pos.PowerDiff) +
		drainWeight*float64(pos.DrainDiff)
	return pos
}

// DrainPotential counts the opposing icons at locations each side controls
// uncontested.
func DrainPotential(gs model.GameState) (mine, theirs int) {
	for _, l := range gs.Locations {
		me, them := l.MyPresence(), l.TheirPresence()
		switch {
		case me && !them:
			mine += l.TheirIcons
		case them && !me:
			theirs += l.MyIcons
		}
	}
	return mine, theirs
}
