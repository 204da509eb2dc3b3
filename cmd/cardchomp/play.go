package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnguyen/cardchomp/internal/config"
	"github.com/dnguyen/cardchomp/internal/display"
	"github.com/dnguyen/cardchomp/internal/randutil"
)

// PlayCmd runs the interactive terminal table
type PlayCmd struct {
	Name string `help:"Your display name" default:""`
	Seed int64  `help:"RNG seed (0 for time-based)" default:"0"`
}

// Run implements the kong command interface
func (cmd *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cmd.Name != "" {
		cfg.Game.PlayerName = cmd.Name
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	model := display.NewModel(
		cfg.Game.PlayerName,
		cfg.Game.BotNames,
		randutil.New(seed),
		time.Duration(cfg.Game.ThinkDelayMs)*time.Millisecond,
	)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
