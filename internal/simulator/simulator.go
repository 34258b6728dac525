// Package simulator plays batches of hands between two agents and
// aggregates the results.
package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/kuhnforbots/internal/bot"
	"github.com/lox/kuhnforbots/internal/kuhn"
	"github.com/lox/kuhnforbots/internal/randutil"
	"github.com/lox/kuhnforbots/internal/statistics"
)

// Config holds configuration for running simulations.
type Config struct {
	Hands  int
	Seed   int64
	Logger *log.Logger
}

// Simulator runs hands between a hero agent and an opponent.
type Simulator struct {
	config   Config
	hero     bot.Agent
	opponent bot.Agent
}

// New creates a simulator pitting hero against opponent.
func New(config Config, hero, opponent bot.Agent) *Simulator {
	return &Simulator{config: config, hero: hero, opponent: opponent}
}

// Run executes the simulation and returns results from the hero's
// perspective. The hero's seat rotates every hand to cancel positional
// bias, and each hand derives its own seed so any single hand can be
// replayed in isolation.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	for hand := 0; hand < s.config.Hands; hand++ {
		handSeed := s.config.Seed + int64(hand)
		heroSeat := hand % 2

		result, err := s.playHand(handSeed, heroSeat)
		if err != nil {
			return nil, fmt.Errorf("hand %d (seed %d): %w", hand+1, handSeed, err)
		}
		stats.Add(result)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playHand runs a single hand with the hero in the given seat.
func (s *Simulator) playHand(handSeed int64, heroSeat int) (statistics.HandResult, error) {
	rng := randutil.New(handSeed)
	state := kuhn.NewGame(rng)

	agents := [2]bot.Agent{s.opponent, s.opponent}
	agents[heroSeat] = s.hero

	var history []kuhn.Action
	for !state.Terminated {
		seat := state.CurrentPlayer
		view := bot.ViewFromState(state, seat, history)
		action := agents[seat].Act(view, rng)

		next, err := kuhn.Step(state, action)
		if err != nil {
			// An agent returning an out-of-mask action is a bug, but a
			// single bad decision should not sink a long run: fall
			// back to the first legal action, as the server does.
			s.config.Logger.Warn("agent chose illegal action",
				"agent", agents[seat].Name(), "seat", seat, "action", action, "error", err)
			action = state.LegalActionList()[0]
			next, err = kuhn.Step(state, action)
			if err != nil {
				return statistics.HandResult{}, err
			}
		}

		history = append(history, action)
		state = next
	}

	s.config.Logger.Debug("hand complete",
		"seed", handSeed,
		"heroSeat", heroSeat,
		"cards", fmt.Sprintf("%s%s", state.Cards[0], state.Cards[1]),
		"rewards", state.Rewards)

	return statistics.HandResult{
		Net:      state.Rewards[heroSeat],
		Seed:     handSeed,
		Seat:     heroSeat,
		Showdown: history[len(history)-1] != kuhn.Fold,
	}, nil
}
