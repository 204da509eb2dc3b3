package game

import (
	"time"

	"github.com/dnguyen/cardchomp/internal/deck"
)

// Player is a seat at the table. Identity and the cumulative GamesWon counter
// survive across games in a session; everything else is reset by each deal.
type Player struct {
	ID        string
	Name      string
	Hand      []deck.Card
	IsAI      bool
	HasPassed bool
	GamesWon  int
}

// clone returns a deep copy of the player
func (p *Player) clone() *Player {
	c := *p
	c.Hand = make([]deck.Card, len(p.Hand))
	copy(c.Hand, p.Hand)
	return &c
}

// holds reports whether every given card is in the player's hand
func (p *Player) holds(cards []deck.Card) bool {
	for _, card := range cards {
		found := false
		for _, own := range p.Hand {
			if own == card {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// removeCards removes the given cards from the player's hand, preserving the
// sorted order of the remainder
func (p *Player) removeCards(cards []deck.Card) {
	remaining := p.Hand[:0]
	for _, own := range p.Hand {
		played := false
		for _, c := range cards {
			if own == c {
				played = true
				break
			}
		}
		if !played {
			remaining = append(remaining, own)
		}
	}
	p.Hand = remaining
}

// Play is a committed move, immutable once recorded
type Play struct {
	Type      PlayType
	Cards     []deck.Card
	PlayerID  string
	Timestamp time.Time
}

// CompletedGame summarizes a finished game for the session leaderboard
type CompletedGame struct {
	Winner    string
	Players   []*Player
	Plays     []Play
	Timestamp time.Time
}
