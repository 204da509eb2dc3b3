package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" help:"Path to HCL config file" type:"path"`
	Debug    bool             `help:"Enable debug logging"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play against three computer seats in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve the game to a browser client over websockets"`
	Simulate SimulateCmd      `cmd:"" help:"Run computer-only games and report per-seat statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardchomp"),
		kong.Description("Card Chomp Champions, a four-player trick-shedding card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// setupLogger configures structured logging for all commands
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
