package main

import (
	"github.com/coder/quartz"

	"github.com/lox/kuhnforbots/cmd/kuhnforbots/shared"
	"github.com/lox/kuhnforbots/internal/server"
)

// ServerCmd runs the websocket server.
type ServerCmd struct {
	Config string `help:"Path to HCL config file" default:"kuhnforbots.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServerCmd) Run() error {
	config, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(config.Server.LogLevel, c.Debug)
	return server.NewServer(config, logger, quartz.NewReal()).Start()
}
