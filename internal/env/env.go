// Package env wraps the kuhn engine in the reset/step surface expected
// by multi-agent training harnesses.
package env

import (
	rand "math/rand/v2"

	"github.com/lox/kuhnforbots/internal/kuhn"
	"github.com/lox/kuhnforbots/internal/randutil"
)

// NumPlayers is fixed for Kuhn poker.
const NumPlayers = 2

// Env drives a sequence of Kuhn poker hands from a seeded RNG. The
// engine itself is pure; Env owns the only mutable pieces, the RNG and
// the current state.
type Env struct {
	rng   *rand.Rand
	state kuhn.State
}

// New creates an environment whose deals derive deterministically from
// seed.
func New(seed int64) *Env {
	return &Env{rng: randutil.New(seed)}
}

// Reset deals a new hand and returns the initial state.
func (e *Env) Reset() kuhn.State {
	e.state = kuhn.NewGame(e.rng)
	return e.state
}

// Step advances the current hand by one action. Illegal actions
// surface the engine's kuhn.ErrIllegalAction unchanged.
func (e *Env) Step(action kuhn.Action) (kuhn.State, error) {
	next, err := kuhn.Step(e.state, action)
	if err != nil {
		return kuhn.State{}, err
	}
	e.state = next
	return next, nil
}

// State returns the current state snapshot.
func (e *Env) State() kuhn.State {
	return e.state
}

// CurrentPlayer returns the seat to act in the current hand.
func (e *Env) CurrentPlayer() int {
	return e.state.CurrentPlayer
}

// Terminated reports whether the current hand is over.
func (e *Env) Terminated() bool {
	return e.state.Terminated
}

// Rewards returns the per-seat payoffs of the current hand.
func (e *Env) Rewards() [NumPlayers]float64 {
	return e.state.Rewards
}

// LegalActions returns the current legal-action mask.
func (e *Env) LegalActions() [kuhn.NumActions]bool {
	return e.state.LegalActions
}

// Observe returns the partial view visible to the given seat.
func (e *Env) Observe(player int) [kuhn.ObservationSize]bool {
	return kuhn.Observe(e.state, player)
}
