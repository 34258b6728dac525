package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Server   ServerCmd        `cmd:"" help:"Run the Kuhn poker server"`
	Bot      BotCmd           `cmd:"" help:"Connect a built-in bot to a server"`
	Simulate SimulateCmd      `cmd:"" help:"Run a local bot-vs-bot simulation"`
	Solve    SolveCmd         `cmd:"" help:"Solve Kuhn poker with CFR and print the strategy"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kuhnforbots"),
		kong.Description("Kuhn poker engine, solver and bot server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
