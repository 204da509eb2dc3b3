package game

import (
	rand "math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dnguyen/cardchomp/internal/deck"
)

// Status is the lifecycle phase of a game
type Status int

const (
	Waiting Status = iota
	Playing
	Finished
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the aggregate root for one session. Engine operations never
// mutate a State they are given: ApplyPlay and ApplyPass return a new State
// (or a rejection and the original, untouched). The caller owns the single
// authoritative instance.
type State struct {
	Players           []*Player
	CurrentPlayerID   string
	LastPlay          *Play
	Status            Status
	Winner            string
	History           []Play
	ConsecutivePasses int
	LastPlayerID      string
	CompletedGames    []CompletedGame
}

// NewSession creates session state with a human seat followed by three AI
// seats and no hands dealt. Names beyond the first are the AI display names.
func NewSession(humanName string, aiNames ...string) *State {
	if humanName == "" {
		humanName = "You"
	}
	if len(aiNames) == 0 {
		aiNames = []string{"East", "North", "West"}
	}
	players := []*Player{{ID: uuid.NewString(), Name: humanName}}
	for _, name := range aiNames {
		players = append(players, &Player{ID: uuid.NewString(), Name: name, IsAI: true})
	}
	return &State{Players: players, Status: Waiting}
}

// Player returns the player with the given id, or nil
func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil
func (s *State) CurrentPlayer() *Player {
	return s.Player(s.CurrentPlayerID)
}

// seatIndex returns the index of the player with the given id, or -1
func (s *State) seatIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// IsOpeningPlay reports whether the next play would be the very first play
// of the very first game in the session, which must include the 3♠.
func (s *State) IsOpeningPlay() bool {
	return len(s.CompletedGames) == 0 && len(s.History) == 0 && s.LastPlay == nil
}

// clone deep-copies the state. Committed plays and completed-game summaries
// are immutable once recorded, so those slices share backing arrays.
func (s *State) clone() *State {
	c := *s
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.History = make([]Play, len(s.History), len(s.History)+1)
	copy(c.History, s.History)
	c.CompletedGames = make([]CompletedGame, len(s.CompletedGames), len(s.CompletedGames)+1)
	copy(c.CompletedGames, s.CompletedGames)
	return &c
}

// nextActiveSeat scans forward circularly from current, skipping seats that
// passed this round, and returns the first eligible seat. A full circle with
// no eligible seat means the round reset should already have fired; the
// current seat is returned unchanged in that case.
func nextActiveSeat(players []*Player, current int) int {
	for step := 1; step < len(players); step++ {
		idx := (current + step) % len(players)
		if !players[idx].HasPassed {
			return idx
		}
	}
	return current
}

// NewGame deals a fresh game from the prior session state. The first game of
// a session opens with whoever holds the 3♠; later games open with the prior
// winner (seat 0 if the winner is gone). A game already in progress cannot
// be redealt. Seats are rotated so a human sits at the presentation front;
// the rotation preserves relative seat order and therefore never changes
// turn order semantics. A dealt hand holding all 13 ranks wins instantly
// before any play occurs.
func NewGame(prior *State, rng *rand.Rand) (*State, error) {
	if prior.Status == Playing {
		return nil, rejectf(ErrIllegalPlay, "game is still in progress")
	}
	s := prior.clone()

	hands, err := deck.Deal(deck.Shuffle(deck.New(), rng))
	if err != nil {
		return nil, rejectf(ErrInvariant, "deal failed: %v", err)
	}

	var openingSeat int
	if len(s.CompletedGames) == 0 {
		openingSeat = deck.FindOpeningHand(hands)
		if openingSeat < 0 {
			return nil, rejectf(ErrInvariant, "complete deck has no 3♠")
		}
	} else {
		openingSeat = s.seatIndex(s.Winner)
		if openingSeat < 0 {
			openingSeat = 0
		}
	}

	for i, p := range s.Players {
		p.Hand = hands[i]
		p.HasPassed = false
	}
	openingID := s.Players[openingSeat].ID

	// Presentation rotation: cycle AI front seats to the back until a human
	// holds the front seat. Relative order is preserved.
	for range s.Players {
		if !s.Players[0].IsAI {
			break
		}
		s.Players = append(s.Players[1:], s.Players[0])
	}

	s.CurrentPlayerID = openingID
	s.LastPlay = nil
	s.Status = Playing
	s.Winner = ""
	s.History = nil
	s.ConsecutivePasses = 0
	s.LastPlayerID = ""

	for _, p := range s.Players {
		if hasThirteenCardStraight(p.Hand) {
			s.finishGame(p)
			break
		}
	}
	return s, nil
}

// hasThirteenCardStraight reports whether a 13-card hand holds one card of
// each of the 13 ranks, 3 through 2
func hasThirteenCardStraight(hand []deck.Card) bool {
	if len(hand) != deck.HandSize {
		return false
	}
	var seen [13]bool
	for _, c := range hand {
		if seen[c.Rank] {
			return false
		}
		seen[c.Rank] = true
	}
	return true
}

// finishGame records the winner and appends the completed-game summary
func (s *State) finishGame(winner *Player) {
	s.Status = Finished
	s.Winner = winner.ID
	winner.GamesWon++

	snapshots := make([]*Player, len(s.Players))
	for i, p := range s.Players {
		snapshots[i] = p.clone()
	}
	plays := make([]Play, len(s.History))
	copy(plays, s.History)
	s.CompletedGames = append(s.CompletedGames, CompletedGame{
		Winner:    winner.ID,
		Players:   snapshots,
		Plays:     plays,
		Timestamp: time.Now(),
	})
}

// ApplyPlay commits a play for the given seat. On success it returns a new
// State with the full transition applied atomically: cards leave the hand,
// every pass flag clears, the play is recorded on the table and in history,
// the turn advances, and an emptied hand finishes the game. On rejection the
// original state is returned unchanged alongside the error.
func (s *State) ApplyPlay(seatID string, cards []deck.Card) (*State, error) {
	if s.Status != Playing {
		return s, rejectf(ErrIllegalPlay, "game is not in progress")
	}
	if seatID != s.CurrentPlayerID {
		return s, rejectf(ErrWrongTurn, "it is not that seat's turn")
	}
	actor := s.Player(seatID)
	if actor == nil {
		return s, rejectf(ErrWrongTurn, "unknown seat %s", seatID)
	}
	if actor.HasPassed {
		return s, rejectf(ErrAlreadyPassed, "%s already passed this round", actor.Name)
	}
	if !actor.holds(cards) {
		return s, rejectf(ErrInvalidSelection, "selection includes cards not in hand")
	}
	if err := CheckPlay(cards, s.LastPlay, s.IsOpeningPlay()); err != nil {
		return s, err
	}

	next := s.clone()
	actor = next.Player(seatID)

	played := deck.Sorted(cards)
	actor.removeCards(played)
	for _, p := range next.Players {
		p.HasPassed = false
	}

	play := Play{
		Type:      Classify(played),
		Cards:     played,
		PlayerID:  seatID,
		Timestamp: time.Now(),
	}
	next.LastPlay = &play
	next.History = append(next.History, play)
	next.ConsecutivePasses = 0
	next.LastPlayerID = seatID
	next.CurrentPlayerID = next.Players[nextActiveSeat(next.Players, next.seatIndex(seatID))].ID

	if len(actor.Hand) == 0 {
		next.finishGame(actor)
	}
	return next, nil
}

// ApplyPass marks the acting seat as passed for the rest of the round. A
// pass with an open table is accepted as the fallback for an unplayable
// opening hand. Once every other seat has passed since the last accepted
// play, the round resets: flags clear, the table empties, and the turn
// returns to the seat that made the last play.
func (s *State) ApplyPass(seatID string) (*State, error) {
	if s.Status != Playing {
		return s, rejectf(ErrIllegalPlay, "game is not in progress")
	}
	if seatID != s.CurrentPlayerID {
		return s, rejectf(ErrWrongTurn, "it is not that seat's turn")
	}

	next := s.clone()
	actor := next.Player(seatID)
	actor.HasPassed = true
	next.ConsecutivePasses++

	if next.ConsecutivePasses >= len(next.Players)-1 {
		for _, p := range next.Players {
			p.HasPassed = false
		}
		next.LastPlay = nil
		next.ConsecutivePasses = 0
		if next.LastPlayerID != "" {
			// The round passed back to whoever played last.
			next.CurrentPlayerID = next.LastPlayerID
		}
		next.LastPlayerID = ""
		return next, nil
	}

	next.CurrentPlayerID = next.Players[nextActiveSeat(next.Players, next.seatIndex(seatID))].ID
	return next, nil
}
