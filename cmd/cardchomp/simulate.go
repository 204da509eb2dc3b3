package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/dnguyen/cardchomp/internal/bot"
	"github.com/dnguyen/cardchomp/internal/game"
	"github.com/dnguyen/cardchomp/internal/randutil"
)

// SimulateCmd runs computer-only games to exercise the engine and policy
type SimulateCmd struct {
	Games int   `default:"1000" help:"Number of games to simulate"`
	Seed  int64 `default:"0" help:"RNG seed (0 for time-based)"`
}

// maxTransitions bounds a single game; a four-seat game finishes in far
// fewer moves, so hitting it means the turn loop is wedged.
const maxTransitions = 10000

// Run implements the kong command interface
func (cmd *SimulateCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	policy := bot.Greedy{}

	state := game.NewSession("Seat 1", "Seat 2", "Seat 3", "Seat 4")
	logger.Info("simulation starting", "games", cmd.Games, "seed", seed)

	start := time.Now()
	instantWins := 0
	totalPlays := 0

	for i := 0; i < cmd.Games; i++ {
		next, err := game.NewGame(state, rng)
		if err != nil {
			return fmt.Errorf("dealing game %d: %w", i+1, err)
		}
		state = next

		if state.Status == game.Finished {
			instantWins++
			continue
		}

		transitions := 0
		for state.Status == game.Playing {
			transitions++
			if transitions > maxTransitions {
				return fmt.Errorf("game %d exceeded %d transitions, turn loop wedged", i+1, maxTransitions)
			}

			seatID := state.CurrentPlayerID
			cards, ok := policy.ChooseMove(state, seatID)
			if ok {
				state, err = state.ApplyPlay(seatID, cards)
			} else {
				state, err = state.ApplyPass(seatID)
			}
			if err != nil {
				return fmt.Errorf("game %d move rejected: %w", i+1, err)
			}
		}
		totalPlays += len(state.History)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nSimulated %d games in %s (%.0f games/sec)\n\n",
		cmd.Games, elapsed.Round(time.Millisecond), float64(cmd.Games)/elapsed.Seconds())

	players := make([]*game.Player, len(state.Players))
	copy(players, state.Players)
	sort.Slice(players, func(i, j int) bool {
		return players[i].GamesWon > players[j].GamesWon
	})
	for _, p := range players {
		fmt.Printf("  %-10s %5d wins (%.1f%%)\n",
			p.Name, p.GamesWon, 100*float64(p.GamesWon)/float64(cmd.Games))
	}
	if cmd.Games > 0 {
		fmt.Printf("\n  avg plays/game: %.1f\n", float64(totalPlays)/float64(cmd.Games))
	}
	if instantWins > 0 {
		fmt.Printf("  instant wins (13-card straight): %d\n", instantWins)
	}
	return nil
}
