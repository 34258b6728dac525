package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/lox/kuhnforbots/cmd/kuhnforbots/shared"
	"github.com/lox/kuhnforbots/internal/bot"
	"github.com/lox/kuhnforbots/internal/client"
)

// BotCmd connects a built-in agent to a running server.
type BotCmd struct {
	Server string `help:"Websocket URL of the server" default:"ws://localhost:8080/ws"`
	Name   string `help:"Bot name" default:"bot"`
	Type   string `help:"Agent type (random, call, maniac)" default:"random"`
	Seed   int64  `help:"RNG seed for the agent" default:"1"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *BotCmd) Run() error {
	logger := shared.SetupLogger("info", c.Debug)

	agent, err := bot.New(c.Type)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := client.New(c.Server, c.Name, agent, c.Seed, logger).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("session finished", "hands", result.Hands,
		"names", result.Names, "totals", result.Totals)
	return nil
}
