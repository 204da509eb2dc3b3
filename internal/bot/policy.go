// Package bot implements move selection for computer-controlled seats. A
// Policy is advisory only: it never mutates game state, and the caller
// applies whatever it returns through the engine's Play and Pass actions, so
// a policy bug can never desynchronize hand ownership from the state machine.
package bot

import (
	"github.com/dnguyen/cardchomp/internal/deck"
	"github.com/dnguyen/cardchomp/internal/game"
)

// Policy chooses a move for a seat. It returns the cards to play, or
// ok=false to signal a pass.
type Policy interface {
	ChooseMove(state *game.State, seatID string) (cards []deck.Card, ok bool)
}

// PassPolicy always passes once the table has a play, and dumps its lowest
// single otherwise. Useful as a harness opponent in tests.
type PassPolicy struct{}

// ChooseMove implements Policy
func (PassPolicy) ChooseMove(state *game.State, seatID string) ([]deck.Card, bool) {
	if state.LastPlay != nil {
		return nil, false
	}
	p := state.Player(seatID)
	if p == nil || len(p.Hand) == 0 {
		return nil, false
	}
	low := []deck.Card{deck.Sorted(p.Hand)[0]}
	if game.IsLegal(low, nil, state.IsOpeningPlay()) {
		return low, true
	}
	return nil, false
}
