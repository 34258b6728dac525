// Package bot provides the built-in agents that play Kuhn poker, both
// locally through the simulator and remotely over the wire.
package bot

import (
	rand "math/rand/v2"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// View is everything a single seat is allowed to know when deciding:
// its own card, the public action history, and the legal-action mask.
// The opponent's card never appears here.
type View struct {
	Seat        int
	Card        kuhn.Card
	History     []kuhn.Action
	Legal       [kuhn.NumActions]bool
	Observation [kuhn.ObservationSize]bool
}

// LegalActions returns the available actions in action-index order.
func (v View) LegalActions() []kuhn.Action {
	actions := make([]kuhn.Action, 0, kuhn.NumActions)
	for a := kuhn.Action(0); a < kuhn.NumActions; a++ {
		if v.Legal[a] {
			actions = append(actions, a)
		}
	}
	return actions
}

// Agent decides on an action given a seat's view of the hand. Agents
// draw any randomness they need from the supplied RNG so that hands
// stay reproducible under a fixed seed.
type Agent interface {
	Name() string
	Act(v View, rng *rand.Rand) kuhn.Action
}

// ViewFromState builds the view for the given seat. The caller supplies
// the public history it has tracked since the deal.
func ViewFromState(s kuhn.State, seat int, history []kuhn.Action) View {
	return View{
		Seat:        seat,
		Card:        s.Cards[seat],
		History:     history,
		Legal:       s.LegalActions,
		Observation: kuhn.Observe(s, seat),
	}
}
