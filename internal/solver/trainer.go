package solver

import (
	"context"
	"fmt"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// allDeals enumerates the six equally likely ordered deals. The trainer
// walks every deal each iteration rather than sampling chance nodes.
var allDeals = [6][2]kuhn.Card{
	{kuhn.Jack, kuhn.Queen}, {kuhn.Jack, kuhn.King},
	{kuhn.Queen, kuhn.Jack}, {kuhn.Queen, kuhn.King},
	{kuhn.King, kuhn.Jack}, {kuhn.King, kuhn.Queen},
}

// Progress is emitted periodically during training.
type Progress struct {
	Iteration int
	InfoSets  int
	GameValue float64 // running average utility for the first player
}

// Config controls a training run.
type Config struct {
	Iterations int
	// ProgressEvery emits Progress every N iterations when OnProgress
	// is set. Zero disables reporting.
	ProgressEvery int
	OnProgress    func(Progress)
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must be non-negative, got %d", c.ProgressEvery)
	}
	return nil
}

// Trainer runs vanilla CFR over the exact Kuhn game tree.
type Trainer struct {
	cfg          Config
	regrets      *RegretTable
	iteration    int
	gameValueSum float64
}

// NewTrainer constructs a trainer for the given configuration.
func NewTrainer(cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Trainer{cfg: cfg, regrets: NewRegretTable()}, nil
}

// Run executes the configured number of CFR iterations and returns the
// resulting average-strategy policy. Cancelling the context stops
// training early and returns the policy accumulated so far.
func (t *Trainer) Run(ctx context.Context) (Policy, error) {
	for i := 0; i < t.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return t.Policy(), err
		}
		t.iterate()

		if t.cfg.ProgressEvery > 0 && t.cfg.OnProgress != nil && t.iteration%t.cfg.ProgressEvery == 0 {
			t.cfg.OnProgress(Progress{
				Iteration: t.iteration,
				InfoSets:  t.regrets.Size(),
				GameValue: t.GameValue(),
			})
		}
	}
	return t.Policy(), nil
}

// iterate performs one CFR pass over every chance outcome.
func (t *Trainer) iterate() {
	t.iteration++
	value := 0.0
	for _, cards := range allDeals {
		root, err := kuhn.Deal(0, cards)
		if err != nil {
			// Deals are enumerated statically; this cannot happen.
			panic(err)
		}
		util := t.cfr(root, nil, [2]float64{1, 1})
		value += util[0]
	}
	t.gameValueSum += value / float64(len(allDeals))
}

// cfr walks the subtree below s, updating regrets for the player at
// every decision node, and returns the expected utility for both seats
// under the current strategy profile.
func (t *Trainer) cfr(s kuhn.State, history []kuhn.Action, reach [2]float64) [2]float64 {
	if s.Terminated {
		return s.Rewards
	}

	player := s.CurrentPlayer
	actions := s.LegalActionList()
	key := InfoSetKey(s.Cards[player], history)
	entry := t.regrets.Get(key, actions)
	strat := entry.Strategy()

	var nodeUtil [2]float64
	actionUtil := make([][2]float64, len(actions))
	for i, a := range actions {
		next, err := kuhn.Step(s, a)
		if err != nil {
			// Actions come straight from the mask; this cannot happen.
			panic(err)
		}
		nextReach := reach
		nextReach[player] *= strat[i]
		u := t.cfr(next, append(history, a), nextReach)
		actionUtil[i] = u
		nodeUtil[0] += strat[i] * u[0]
		nodeUtil[1] += strat[i] * u[1]
	}

	// Counterfactual regret: weight by the opponent's reach.
	cfReach := reach[1-player]
	regrets := make([]float64, len(actions))
	for i := range actions {
		regrets[i] = cfReach * (actionUtil[i][player] - nodeUtil[player])
	}
	entry.Update(regrets, strat, reach[player])

	return nodeUtil
}

// GameValue returns the running average utility for the first player to
// act. It converges to -1/18, the known value of Kuhn poker.
func (t *Trainer) GameValue() float64 {
	if t.iteration == 0 {
		return 0
	}
	return t.gameValueSum / float64(t.iteration)
}

// Iterations returns the number of completed iterations.
func (t *Trainer) Iterations() int {
	return t.iteration
}

// Policy extracts the average strategy accumulated so far.
func (t *Trainer) Policy() Policy {
	policy := make(Policy, t.regrets.Size())
	for _, key := range t.regrets.Keys() {
		entry := t.regrets.entries[key]
		avg := entry.AverageStrategy()
		probs := make(map[kuhn.Action]float64, len(entry.Actions))
		for i, a := range entry.Actions {
			probs[a] = avg[i]
		}
		policy[key] = probs
	}
	return policy
}
