// Package config loads session configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration for a session
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings configures the websocket surface for the browser UI
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings configures the table
type GameSettings struct {
	PlayerName   string   `hcl:"player_name,optional"`
	BotNames     []string `hcl:"bot_names,optional"`
	ThinkDelayMs int      `hcl:"think_delay_ms,optional"`
	Seed         int64    `hcl:"seed,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			PlayerName:   "You",
			BotNames:     []string{"East", "North", "West"},
			ThinkDelayMs: 1000,
		},
	}
}

// Load reads configuration from an HCL file, applying defaults for anything
// the file omits. A missing path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config %s: %s", path, diags.Error())
	}

	// Blocks are optional in the file, so decode into pointer fields and
	// overlay whatever is present onto the defaults.
	var loaded struct {
		Server *ServerSettings `hcl:"server,block"`
		Game   *GameSettings   `hcl:"game,block"`
	}
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config %s: %s", path, diags.Error())
	}

	if loaded.Server != nil {
		merge(&cfg.Server.Address, loaded.Server.Address)
		if loaded.Server.Port != 0 {
			cfg.Server.Port = loaded.Server.Port
		}
		merge(&cfg.Server.LogLevel, loaded.Server.LogLevel)
	}
	if loaded.Game != nil {
		merge(&cfg.Game.PlayerName, loaded.Game.PlayerName)
		if len(loaded.Game.BotNames) > 0 {
			cfg.Game.BotNames = loaded.Game.BotNames
		}
		if loaded.Game.ThinkDelayMs != 0 {
			cfg.Game.ThinkDelayMs = loaded.Game.ThinkDelayMs
		}
		if loaded.Game.Seed != 0 {
			cfg.Game.Seed = loaded.Game.Seed
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func merge(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if len(c.Game.BotNames) != 3 {
		return fmt.Errorf("exactly 3 bot names required, got %d", len(c.Game.BotNames))
	}
	if c.Game.ThinkDelayMs < 0 {
		return fmt.Errorf("think_delay_ms must not be negative")
	}
	return nil
}
