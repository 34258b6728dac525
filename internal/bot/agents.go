package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// RandomAgent picks uniformly among the legal actions.
type RandomAgent struct{}

func (RandomAgent) Name() string { return "random" }

func (RandomAgent) Act(v View, rng *rand.Rand) kuhn.Action {
	actions := v.LegalActions()
	return actions[rng.IntN(len(actions))]
}

// CallingAgent never folds and never bets: it checks when it can and
// calls when it must.
type CallingAgent struct{}

func (CallingAgent) Name() string { return "call" }

func (CallingAgent) Act(v View, _ *rand.Rand) kuhn.Action {
	if v.Legal[kuhn.Check] {
		return kuhn.Check
	}
	return kuhn.Call
}

// ManiacAgent bets whenever it can and calls the rest down.
type ManiacAgent struct{}

func (ManiacAgent) Name() string { return "maniac" }

func (ManiacAgent) Act(v View, _ *rand.Rand) kuhn.Action {
	if v.Legal[kuhn.Bet] {
		return kuhn.Bet
	}
	return kuhn.Call
}

// Strategy supplies a mixed strategy per information set. The solver's
// trained policy implements this.
type Strategy interface {
	ActionProbs(card kuhn.Card, history []kuhn.Action) map[kuhn.Action]float64
}

// PolicyAgent samples actions from a trained strategy, falling back to
// uniform play at any information set the strategy does not cover.
type PolicyAgent struct {
	Label    string
	Strategy Strategy
}

func (p *PolicyAgent) Name() string {
	if p.Label != "" {
		return p.Label
	}
	return "policy"
}

func (p *PolicyAgent) Act(v View, rng *rand.Rand) kuhn.Action {
	probs := p.Strategy.ActionProbs(v.Card, v.History)
	if len(probs) == 0 {
		return RandomAgent{}.Act(v, rng)
	}

	// Sample among legal actions only, renormalising in case the
	// strategy carries stale mass on actions the mask forbids.
	total := 0.0
	for _, a := range v.LegalActions() {
		total += probs[a]
	}
	if total <= 0 {
		return RandomAgent{}.Act(v, rng)
	}
	target := rng.Float64() * total
	acc := 0.0
	actions := v.LegalActions()
	for _, a := range actions {
		acc += probs[a]
		if target < acc {
			return a
		}
	}
	return actions[len(actions)-1]
}

// New returns a built-in agent by name.
func New(name string) (Agent, error) {
	switch name {
	case "random", "rand":
		return RandomAgent{}, nil
	case "call":
		return CallingAgent{}, nil
	case "maniac":
		return ManiacAgent{}, nil
	default:
		return nil, fmt.Errorf("unknown agent type %q", name)
	}
}
