package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/kuhnforbots/cmd/kuhnforbots/shared"
	"github.com/lox/kuhnforbots/internal/bot"
	"github.com/lox/kuhnforbots/internal/simulator"
	"github.com/lox/kuhnforbots/internal/solver"
	"github.com/lox/kuhnforbots/internal/statistics"
)

// SimulateCmd runs a local simulation between two agents.
type SimulateCmd struct {
	Hands           int    `help:"Number of hands to play" default:"10000"`
	Seed            int64  `help:"Base RNG seed" default:"1"`
	Hero            string `help:"Hero agent (random, call, maniac, policy)" default:"policy"`
	Opponent        string `help:"Opponent agent (random, call, maniac, policy)" default:"random"`
	TrainIterations int    `help:"CFR iterations when a policy agent is requested" default:"100000"`
	Debug           bool   `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger("info", c.Debug)

	hero, err := c.makeAgent(c.Hero, "hero", logger)
	if err != nil {
		return err
	}
	opponent, err := c.makeAgent(c.Opponent, "villain", logger)
	if err != nil {
		return err
	}

	logger.Info("starting simulation",
		"hands", c.Hands, "hero", hero.Name(), "opponent", opponent.Name(), "seed", c.Seed)

	sim := simulator.New(simulator.Config{
		Hands:  c.Hands,
		Seed:   c.Seed,
		Logger: logger,
	}, hero, opponent)

	stats, err := sim.Run()
	if err != nil {
		return err
	}

	printSummary(stats, hero.Name(), opponent.Name())
	return nil
}

// makeAgent resolves an agent spec, training a CFR policy on demand.
func (c *SimulateCmd) makeAgent(spec, label string, logger *log.Logger) (bot.Agent, error) {
	if spec != "policy" {
		return bot.New(spec)
	}

	trainer, err := solver.NewTrainer(solver.Config{Iterations: c.TrainIterations})
	if err != nil {
		return nil, err
	}
	logger.Info("training policy agent", "label", label, "iterations", c.TrainIterations)
	policy, err := trainer.Run(context.Background())
	if err != nil {
		return nil, err
	}
	return &bot.PolicyAgent{Label: label, Strategy: policy}, nil
}

// printSummary prints simulation results from the hero's perspective.
func printSummary(stats *statistics.Statistics, hero, opponent string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== RESULTS: %s vs %s ===\n", hero, opponent)
	fmt.Printf("Hands played: %d\n", stats.Hands)
	fmt.Printf("Mean: %+.4f chips/hand\n", stats.Mean())
	fmt.Printf("Std Dev: %.4f  Std Error: %.4f\n", stats.StdDev(), stats.StdError())
	fmt.Printf("95%% CI: [%+.4f, %+.4f] chips/hand\n", low, high)
	fmt.Printf("Showdowns: %d (%.1f%%)  Folded pots: %d (%.1f%%)\n",
		stats.ShowdownHands, pct(stats.ShowdownHands, stats.Hands),
		stats.FoldHands, pct(stats.FoldHands, stats.Hands))
	fmt.Printf("By seat: first=%+.4f second=%+.4f\n", stats.SeatMean(0), stats.SeatMean(1))
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
