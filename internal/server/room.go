package server

import (
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dnguyen/cardchomp/internal/bot"
	"github.com/dnguyen/cardchomp/internal/deck"
	"github.com/dnguyen/cardchomp/internal/game"
	"github.com/dnguyen/cardchomp/internal/sched"
)

// Room drives one session: the single authoritative game state, one human
// client, and three server-side bot seats. All mutations happen under the
// room lock, so each Play or Pass is applied atomically with its turn
// advancement.
type Room struct {
	id     string
	logger *log.Logger

	mu         sync.Mutex
	state      *game.State
	humanID    string
	policy     bot.Policy
	rng        *rand.Rand
	scheduler  *sched.Scheduler
	thinkDelay time.Duration
	generation int // bumped whenever a pending bot move becomes stale

	send func(*Message)
}

// RoomOptions configures a room
type RoomOptions struct {
	PlayerName string
	BotNames   []string
	ThinkDelay time.Duration
	RNG        *rand.Rand
	Scheduler  *sched.Scheduler
}

// NewRoom creates a room and its session state. The send callback delivers
// outbound messages to the human client.
func NewRoom(opts RoomOptions, logger *log.Logger, send func(*Message)) *Room {
	state := game.NewSession(opts.PlayerName, opts.BotNames...)
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = sched.New(nil)
	}
	r := &Room{
		id:         uuid.NewString(),
		logger:     logger.WithPrefix("room"),
		state:      state,
		humanID:    state.Players[0].ID,
		policy:     bot.Greedy{},
		rng:        opts.RNG,
		scheduler:  scheduler,
		thinkDelay: opts.ThinkDelay,
		send:       send,
	}
	return r
}

// ID returns the room identifier
func (r *Room) ID() string {
	return r.id
}

// Start deals the first game and begins the play loop
func (r *Room) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startGameLocked()
}

// Close cancels any pending bot move
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.scheduler.Cancel()
}

// Handle dispatches one inbound client message
func (r *Room) Handle(msg *Message) {
	switch msg.Type {
	case MsgPlay:
		var data PlayData
		if err := unmarshalData(msg, &data); err != nil {
			r.sendError("bad_request", err.Error())
			return
		}
		r.handlePlay(data.Cards)
	case MsgPass:
		r.handlePass()
	case MsgNewGame:
		r.handleNewGame()
	case MsgLeaderboard:
		r.handleLeaderboard()
	default:
		r.sendError("bad_request", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (r *Room) handlePlay(ids []string) {
	cards, err := parseCardIDs(ids)
	if err != nil {
		r.sendError("bad_request", err.Error())
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.state.ApplyPlay(r.humanID, cards)
	if err != nil {
		r.sendError(rejectionCode(err), err.Error())
		return
	}
	r.commitLocked(next)
}

func (r *Room) handlePass() {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.state.ApplyPass(r.humanID)
	if err != nil {
		r.sendError(rejectionCode(err), err.Error())
		return
	}
	r.commitLocked(next)
}

func (r *Room) handleNewGame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Status == game.Playing {
		r.sendError("rejected", "game still in progress")
		return
	}
	if err := r.startGameLocked(); err != nil {
		r.logger.Error("new game failed", "error", err)
	}
}

func (r *Room) handleLeaderboard() {
	r.mu.Lock()
	entries := snapshotLeaderboard(r.state)
	r.mu.Unlock()
	r.sendMessage(MsgLeaderboardData, entries)
}

func (r *Room) startGameLocked() error {
	next, err := game.NewGame(r.state, r.rng)
	if err != nil {
		return err
	}
	r.logger.Info("game dealt",
		"game", len(next.CompletedGames)+1,
		"opens", next.CurrentPlayer().Name)
	r.commitLocked(next)
	return nil
}

// commitLocked installs the new state, notifies the client, and schedules
// the next bot move if an AI seat now holds the turn. Any previously pending
// bot move is stale from this point and will be discarded.
func (r *Room) commitLocked(next *game.State) {
	r.state = next
	r.generation++
	r.scheduler.Cancel()

	r.sendMessage(MsgState, snapshotState(next, r.humanID))

	if next.Status != game.Playing {
		if next.Status == game.Finished {
			r.logger.Info("game finished", "winner", next.Player(next.Winner).Name)
		}
		return
	}

	current := next.CurrentPlayer()
	if current == nil || !current.IsAI {
		return
	}

	seatID := current.ID
	gen := r.generation
	r.scheduler.Schedule(r.thinkDelay, func() {
		r.botMove(seatID, gen)
	})
}

// botMove applies a scheduled bot decision. The generation guard discards
// moves whose turn advanced, or whose game was torn down or redealt, while
// the thinking delay was elapsing.
func (r *Room) botMove(seatID string, gen int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation || r.state.Status != game.Playing || r.state.CurrentPlayerID != seatID {
		return
	}

	player := r.state.Player(seatID)
	cards, ok := r.policy.ChooseMove(r.state, seatID)

	var next *game.State
	var err error
	if ok {
		next, err = r.state.ApplyPlay(seatID, cards)
	} else {
		next, err = r.state.ApplyPass(seatID)
	}
	if err != nil {
		// The policy proposed an illegal move; pass instead of wedging the
		// turn loop.
		r.logger.Error("bot move rejected", "seat", player.Name, "error", err)
		next, err = r.state.ApplyPass(seatID)
		if err != nil {
			r.logger.Error("bot fallback pass rejected", "seat", player.Name, "error", err)
			return
		}
	}

	if ok {
		r.logger.Debug("bot played", "seat", player.Name, "cards", cardIDs(cards))
	} else {
		r.logger.Debug("bot passed", "seat", player.Name)
	}
	r.commitLocked(next)
}

func (r *Room) sendMessage(messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		r.logger.Error("encoding message failed", "type", messageType, "error", err)
		return
	}
	r.send(msg)
}

func (r *Room) sendError(code, message string) {
	r.sendMessage(MsgError, ErrorData{Code: code, Message: message})
}

// rejectionCode maps engine error categories to wire codes
func rejectionCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, game.ErrWrongTurn):
		return "wrong_turn"
	case errors.Is(err, game.ErrAlreadyPassed):
		return "already_passed"
	case errors.Is(err, game.ErrIllegalPlay):
		return "illegal_play"
	default:
		return "rejected"
	}
}

func cardIDs(cards []deck.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}

func parseCardIDs(ids []string) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		card, err := deck.ParseCard(id)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", id, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func unmarshalData(msg *Message, v any) error {
	if len(msg.Data) == 0 {
		return errors.New("missing message data")
	}
	return json.Unmarshal(msg.Data, v)
}
