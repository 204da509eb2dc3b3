package server

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnguyen/cardchomp/internal/bot"
	"github.com/dnguyen/cardchomp/internal/deck"
	"github.com/dnguyen/cardchomp/internal/game"
	"github.com/dnguyen/cardchomp/internal/randutil"
	"github.com/dnguyen/cardchomp/internal/sched"
)

const testThinkDelay = time.Second

// collector gathers outbound messages. Bot moves fire from the scheduler, so
// access is guarded.
type collector struct {
	mu   sync.Mutex
	msgs []*Message
}

func (c *collector) send(m *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
}

func (c *collector) byType(mt MessageType) []*Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Message
	for _, m := range c.msgs {
		if m.Type == mt {
			out = append(out, m)
		}
	}
	return out
}

// decodeLast unmarshals the most recent message of the given type into v
func (c *collector) decodeLast(t *testing.T, mt MessageType, v any) {
	t.Helper()
	msgs := c.byType(mt)
	require.NotEmpty(t, msgs, "no %s message sent", mt)
	require.NoError(t, json.Unmarshal(msgs[len(msgs)-1].Data, v))
}

func newTestRoom(t *testing.T, seed int64) (*Room, *quartz.Mock, *collector) {
	t.Helper()
	mockClock := quartz.NewMock(t)
	sink := &collector{}
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	room := NewRoom(RoomOptions{
		PlayerName: "You",
		ThinkDelay: testThinkDelay,
		RNG:        randutil.New(seed),
		Scheduler:  sched.New(mockClock),
	}, logger, sink.send)
	return room, mockClock, sink
}

// scriptedState builds a small hand-crafted state so tests control exactly
// whose turn it is and what is on the table.
func scriptedState(human *game.Player, bots ...*game.Player) *game.State {
	players := append([]*game.Player{human}, bots...)
	return &game.State{
		Players:         players,
		CurrentPlayerID: human.ID,
		Status:          game.Playing,
		CompletedGames:  []game.CompletedGame{{Winner: human.ID}},
	}
}

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cs, err := deck.ParseCards(s)
	require.NoError(t, err)
	return cs
}

func playMsg(t *testing.T, ids ...string) *Message {
	t.Helper()
	msg, err := NewMessage(MsgPlay, PlayData{Cards: ids})
	require.NoError(t, err)
	return msg
}

func TestStartDealsAndRedactsOpponentHands(t *testing.T) {
	room, _, sink := newTestRoom(t, 7)
	require.NoError(t, room.Start())

	var state StateData
	sink.decodeLast(t, MsgState, &state)

	assert.Equal(t, "playing", state.Status)
	require.Len(t, state.Players, 4)
	for i, p := range state.Players {
		assert.Equal(t, deck.HandSize, p.CardCount)
		if p.ID == room.humanID {
			assert.Len(t, p.Cards, deck.HandSize, "viewer sees own cards")
		} else {
			assert.Empty(t, p.Cards, "seat %d hand must be hidden", i)
		}
	}
	assert.Nil(t, state.LastPlay)
	assert.Empty(t, state.History)
}

// Plays a full game: bots act when the mock clock advances past the thinking
// delay, and the human seat is scripted with the same greedy policy.
func TestRoomPlaysAGameToCompletion(t *testing.T) {
	room, mockClock, sink := newTestRoom(t, 11)
	require.NoError(t, room.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for transitions := 0; ; transitions++ {
		require.Less(t, transitions, 1000, "game wedged")

		room.mu.Lock()
		status := room.state.Status
		current := room.state.CurrentPlayer()
		room.mu.Unlock()

		if status != game.Playing {
			break
		}
		if current.IsAI {
			mockClock.Advance(testThinkDelay).MustWait(ctx)
			continue
		}

		room.mu.Lock()
		cards, ok := bot.Greedy{}.ChooseMove(room.state, room.humanID)
		room.mu.Unlock()
		if ok {
			room.Handle(playMsg(t, cardIDs(cards)...))
		} else {
			msg, err := NewMessage(MsgPass, nil)
			require.NoError(t, err)
			room.Handle(msg)
		}
	}

	var state StateData
	sink.decodeLast(t, MsgState, &state)
	assert.Equal(t, "finished", state.Status)
	assert.NotEmpty(t, state.Winner)
	for _, p := range state.Players {
		assert.Len(t, p.Cards, p.CardCount, "finished game reveals every hand")
		if p.ID == state.Winner {
			assert.Zero(t, p.CardCount)
			assert.Equal(t, 1, p.GamesWon)
		}
	}
	assert.Empty(t, sink.byType(MsgError))

	// The finished game shows up on the leaderboard.
	msg, err := NewMessage(MsgLeaderboard, nil)
	require.NoError(t, err)
	room.Handle(msg)

	var entries []LeaderboardEntry
	sink.decodeLast(t, MsgLeaderboardData, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, state.Winner, entries[0].Winner)
	assert.NotEmpty(t, entries[0].WinnerName)

	// And a rematch deals fresh hands.
	msg, err = NewMessage(MsgNewGame, nil)
	require.NoError(t, err)
	room.Handle(msg)

	sink.decodeLast(t, MsgState, &state)
	if state.Status == "playing" {
		for _, p := range state.Players {
			assert.Equal(t, deck.HandSize, p.CardCount)
		}
	}
}

func TestRejectionLeavesStateUntouched(t *testing.T) {
	room, _, sink := newTestRoom(t, 3)

	human := &game.Player{ID: "you", Name: "You", Hand: mustCards(t, "4d 4h 7s")}
	rival := &game.Player{ID: "east", Name: "East", IsAI: true, Hand: mustCards(t, "5s 5c 9d")}
	state := scriptedState(human, rival)
	state.CurrentPlayerID = "east"
	room.state = state
	room.humanID = "you"

	room.Handle(playMsg(t, "4d", "4h"))

	var errData ErrorData
	sink.decodeLast(t, MsgError, &errData)
	assert.Equal(t, "wrong_turn", errData.Code)
	assert.Same(t, state, room.state, "rejected action must not replace the state")
	assert.Len(t, room.state.Player("you").Hand, 3)
}

// A client repeating the same card id in a play message must get a rejection
// rather than a committed play that unbalances hand accounting.
func TestRepeatedCardIDRejected(t *testing.T) {
	room, _, sink := newTestRoom(t, 3)

	human := &game.Player{ID: "you", Name: "You", Hand: mustCards(t, "4d 4h 7s")}
	rival := &game.Player{ID: "east", Name: "East", IsAI: true, Hand: mustCards(t, "5s 5c 9d")}
	state := scriptedState(human, rival)
	room.state = state
	room.humanID = "you"

	room.Handle(playMsg(t, "4d", "4d"))

	var errData ErrorData
	sink.decodeLast(t, MsgError, &errData)
	assert.Equal(t, "invalid_selection", errData.Code)
	assert.Same(t, state, room.state)
	assert.Len(t, room.state.Player("you").Hand, 3)
}

func TestHumanPlayCommits(t *testing.T) {
	room, _, sink := newTestRoom(t, 3)

	human := &game.Player{ID: "you", Name: "You", Hand: mustCards(t, "4d 4h 7s")}
	rival := &game.Player{ID: "east", Name: "East", IsAI: true, Hand: mustCards(t, "5s 5c 9d")}
	room.state = scriptedState(human, rival)
	room.humanID = "you"

	room.Handle(playMsg(t, "4d", "4h"))

	var state StateData
	sink.decodeLast(t, MsgState, &state)
	assert.Equal(t, "east", state.CurrentPlayerID)
	require.NotNil(t, state.LastPlay)
	assert.Equal(t, "Pair", state.LastPlay.Type)
	assert.ElementsMatch(t, []string{"4d", "4h"}, state.LastPlay.Cards)
	assert.Empty(t, sink.byType(MsgError))
}

func TestBadRequests(t *testing.T) {
	room, _, sink := newTestRoom(t, 3)
	require.NoError(t, room.Start())

	tests := []struct {
		name string
		msg  *Message
	}{
		{"unknown type", &Message{Type: MessageType("shout")}},
		{"play without data", &Message{Type: MsgPlay}},
		{"unparseable card id", playMsg(t, "9x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(sink.byType(MsgError))
			room.Handle(tt.msg)
			errs := sink.byType(MsgError)
			require.Len(t, errs, before+1)

			var errData ErrorData
			require.NoError(t, json.Unmarshal(errs[before].Data, &errData))
			assert.Equal(t, "bad_request", errData.Code)
		})
	}
}

func TestNewGameRejectedMidGame(t *testing.T) {
	room, _, sink := newTestRoom(t, 3)
	require.NoError(t, room.Start())

	msg, err := NewMessage(MsgNewGame, nil)
	require.NoError(t, err)
	room.Handle(msg)

	var errData ErrorData
	sink.decodeLast(t, MsgError, &errData)
	assert.Equal(t, "rejected", errData.Code)
}

// A bot move scheduled before Close must not touch the state afterwards.
func TestCloseDiscardsPendingBotMove(t *testing.T) {
	room, mockClock, sink := newTestRoom(t, 11)
	require.NoError(t, room.Start())

	room.mu.Lock()
	state := room.state
	seatID := state.CurrentPlayerID
	gen := room.generation
	room.mu.Unlock()

	room.Close()
	before := len(sink.byType(MsgState))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(testThinkDelay).MustWait(ctx)

	// Even a direct stale invocation is discarded by the generation guard.
	room.botMove(seatID, gen)

	assert.Same(t, state, room.state)
	assert.Len(t, sink.byType(MsgState), before)
}

func TestRejectionCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{game.ErrInvalidSelection, "invalid_selection"},
		{game.ErrWrongTurn, "wrong_turn"},
		{game.ErrAlreadyPassed, "already_passed"},
		{game.ErrIllegalPlay, "illegal_play"},
		{game.ErrInvariant, "rejected"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, rejectionCode(tt.err))
	}
}
