package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/lox/kuhnforbots/cmd/kuhnforbots/shared"
	"github.com/lox/kuhnforbots/internal/solver"
)

// SolveCmd trains a CFR strategy and prints it.
type SolveCmd struct {
	Iterations    int  `help:"Number of CFR iterations" default:"200000"`
	ProgressEvery int  `help:"Log progress every N iterations" default:"20000"`
	Debug         bool `help:"Enable debug logging"`
}

func (c *SolveCmd) Run() error {
	logger := shared.SetupLogger("info", c.Debug)

	trainer, err := solver.NewTrainer(solver.Config{
		Iterations:    c.Iterations,
		ProgressEvery: c.ProgressEvery,
		OnProgress: func(p solver.Progress) {
			logger.Info("training", "iteration", p.Iteration,
				"infosets", p.InfoSets, "gameValue", fmt.Sprintf("%.5f", p.GameValue))
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := trainer.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Printf("\nAverage strategy after %d iterations (game value %.5f, optimal -1/18 = %.5f):\n\n",
		trainer.Iterations(), trainer.GameValue(), -1.0/18.0)
	fmt.Print(policy.String())
	return nil
}
