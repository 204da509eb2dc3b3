package server

import (
	"encoding/json"
	"time"

	"github.com/dnguyen/cardchomp/internal/game"
)

// MessageType discriminates websocket messages
type MessageType string

// Client → server
const (
	MsgPlay        MessageType = "play"
	MsgPass        MessageType = "pass"
	MsgNewGame     MessageType = "new_game"
	MsgLeaderboard MessageType = "leaderboard"
)

// Server → client
const (
	MsgState           MessageType = "state"
	MsgError           MessageType = "error"
	MsgLeaderboardData MessageType = "leaderboard_data"
)

// Message is the websocket envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return &Message{Type: messageType, Data: raw, Timestamp: time.Now()}, nil
}

// PlayData asks the engine to commit the human's selected cards, by card id
type PlayData struct {
	Cards []string `json:"cards"`
}

// ErrorData carries a rejection back to the client for display
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlayerView is a player as seen by the human client. Opponent hands are
// hidden until the game finishes; only counts are sent.
type PlayerView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	IsAI      bool     `json:"isAi"`
	CardCount int      `json:"cardCount"`
	Cards     []string `json:"cards,omitempty"`
	HasPassed bool     `json:"hasPassed"`
	GamesWon  int      `json:"gamesWon"`
}

// PlayView is a committed play in wire form
type PlayView struct {
	Type     string   `json:"type"`
	Cards    []string `json:"cards"`
	PlayerID string   `json:"playerId"`
}

// StateData is the engine state as seen by the human client
type StateData struct {
	Players           []PlayerView `json:"players"`
	CurrentPlayerID   string       `json:"currentPlayerId"`
	LastPlay          *PlayView    `json:"lastPlay"`
	Status            string       `json:"status"`
	Winner            string       `json:"winner,omitempty"`
	ConsecutivePasses int          `json:"consecutivePasses"`
	History           []PlayView   `json:"history"`
}

// LeaderboardEntry is one finished game in the session
type LeaderboardEntry struct {
	Winner     string         `json:"winner"`
	WinnerName string         `json:"winnerName"`
	Plays      int            `json:"plays"`
	GamesWon   map[string]int `json:"gamesWon"`
	Timestamp  time.Time      `json:"timestamp"`
}

// snapshotState renders engine state for the given viewer seat
func snapshotState(s *game.State, viewerID string) StateData {
	data := StateData{
		CurrentPlayerID:   s.CurrentPlayerID,
		Status:            s.Status.String(),
		Winner:            s.Winner,
		ConsecutivePasses: s.ConsecutivePasses,
	}
	for _, p := range s.Players {
		view := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			IsAI:      p.IsAI,
			CardCount: len(p.Hand),
			HasPassed: p.HasPassed,
			GamesWon:  p.GamesWon,
		}
		if p.ID == viewerID || s.Status == game.Finished {
			view.Cards = cardIDs(p.Hand)
		}
		data.Players = append(data.Players, view)
	}
	if s.LastPlay != nil {
		v := playView(*s.LastPlay)
		data.LastPlay = &v
	}
	for _, play := range s.History {
		data.History = append(data.History, playView(play))
	}
	return data
}

func playView(p game.Play) PlayView {
	return PlayView{Type: p.Type.String(), Cards: cardIDs(p.Cards), PlayerID: p.PlayerID}
}

func snapshotLeaderboard(s *game.State) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(s.CompletedGames))
	for _, g := range s.CompletedGames {
		entry := LeaderboardEntry{
			Winner:    g.Winner,
			Plays:     len(g.Plays),
			GamesWon:  make(map[string]int, len(g.Players)),
			Timestamp: g.Timestamp,
		}
		for _, p := range g.Players {
			entry.GamesWon[p.Name] = p.GamesWon
			if p.ID == g.Winner {
				entry.WinnerName = p.Name
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
