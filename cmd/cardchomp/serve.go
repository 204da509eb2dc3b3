package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dnguyen/cardchomp/internal/config"
	"github.com/dnguyen/cardchomp/internal/server"
)

// ServeCmd runs the websocket server for the browser UI
type ServeCmd struct {
	Address string `help:"Listen address (overrides config)"`
	Port    int    `help:"Listen port (overrides config)" default:"0"`
}

// Run implements the kong command interface
func (cmd *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cmd.Address != "" {
		cfg.Server.Address = cmd.Address
	}
	if cmd.Port != 0 {
		cfg.Server.Port = cmd.Port
	}

	logger := setupLogger(cli.Debug || cfg.Server.LogLevel == "debug")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).Run(ctx)
}
