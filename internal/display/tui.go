// Package display renders an interactive terminal table for a human playing
// against three computer seats.
package display

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dnguyen/cardchomp/internal/bot"
	"github.com/dnguyen/cardchomp/internal/deck"
	"github.com/dnguyen/cardchomp/internal/game"
)

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Play   key.Binding
	Pass   key.Binding
	Deal   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Play:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Pass:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pass")),
		Deal:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// botTurnMsg fires when a bot seat's thinking delay elapses. The generation
// stamp discards messages that became stale because the turn moved on or a
// new game was dealt while the delay was pending.
type botTurnMsg struct {
	seatID     string
	generation int
}

// Model is the Bubble Tea model for an interactive session
type Model struct {
	state      *game.State
	humanID    string
	policy     bot.Policy
	rng        *rand.Rand
	thinkDelay time.Duration

	cursor     int
	selected   map[string]bool
	status     string
	statusErr  bool
	generation int
	quitting   bool

	keys   keyMap
	styles *Styles
	width  int
}

// NewModel creates the model for a fresh session
func NewModel(playerName string, botNames []string, rng *rand.Rand, thinkDelay time.Duration) *Model {
	state := game.NewSession(playerName, botNames...)
	return &Model{
		state:      state,
		humanID:    state.Players[0].ID,
		policy:     bot.Greedy{},
		rng:        rng,
		thinkDelay: thinkDelay,
		selected:   make(map[string]bool),
		keys:       defaultKeyMap(),
		styles:     DefaultStyles(),
		width:      80,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.deal()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case botTurnMsg:
		return m, m.applyBotTurn(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	human := m.state.Player(m.humanID)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(human.Hand)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(human.Hand) {
			id := human.Hand[m.cursor].ID()
			if m.selected[id] {
				delete(m.selected, id)
			} else {
				m.selected[id] = true
			}
		}

	case key.Matches(msg, m.keys.Play):
		return m, m.playSelected()

	case key.Matches(msg, m.keys.Pass):
		next, err := m.state.ApplyPass(m.humanID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("You passed")
		return m, m.commit(next)

	case key.Matches(msg, m.keys.Deal):
		if m.state.Status == game.Playing {
			m.setStatus("Game still in progress")
			return m, nil
		}
		return m, m.deal()
	}
	return m, nil
}

func (m *Model) playSelected() tea.Cmd {
	human := m.state.Player(m.humanID)
	var cards []deck.Card
	for _, c := range human.Hand {
		if m.selected[c.ID()] {
			cards = append(cards, c)
		}
	}

	next, err := m.state.ApplyPlay(m.humanID, cards)
	if err != nil {
		m.setError(err)
		return nil
	}
	m.setStatus(fmt.Sprintf("You played %s", renderCardsPlain(cards)))
	return m.commit(next)
}

// deal starts a new game
func (m *Model) deal() tea.Cmd {
	next, err := game.NewGame(m.state, m.rng)
	if err != nil {
		m.setError(err)
		return nil
	}
	cmd := m.commit(next)
	if next.Status == game.Finished {
		m.setStatus(fmt.Sprintf("%s was dealt a 13-card straight and wins instantly! Press n for a new game",
			next.Player(next.Winner).Name))
	} else {
		m.setStatus(fmt.Sprintf("New game, %s opens", next.CurrentPlayer().Name))
	}
	return cmd
}

// commit installs a new engine state and schedules the next bot turn
func (m *Model) commit(next *game.State) tea.Cmd {
	m.state = next
	m.generation++
	m.selected = make(map[string]bool)
	if human := next.Player(m.humanID); m.cursor >= len(human.Hand) && m.cursor > 0 {
		m.cursor = len(human.Hand) - 1
	}

	if next.Status == game.Finished && next.Winner != "" {
		m.setStatus(fmt.Sprintf("%s wins! Press n for a new game", next.Player(next.Winner).Name))
		return nil
	}

	current := next.CurrentPlayer()
	if next.Status != game.Playing || current == nil || !current.IsAI {
		return nil
	}

	seatID := current.ID
	gen := m.generation
	return tea.Tick(m.thinkDelay, func(time.Time) tea.Msg {
		return botTurnMsg{seatID: seatID, generation: gen}
	})
}

func (m *Model) applyBotTurn(msg botTurnMsg) tea.Cmd {
	if msg.generation != m.generation ||
		m.state.Status != game.Playing ||
		m.state.CurrentPlayerID != msg.seatID {
		return nil
	}

	seat := m.state.Player(msg.seatID)
	cards, ok := m.policy.ChooseMove(m.state, msg.seatID)

	var next *game.State
	var err error
	if ok {
		next, err = m.state.ApplyPlay(msg.seatID, cards)
	} else {
		next, err = m.state.ApplyPass(msg.seatID)
	}
	if err != nil {
		next, err = m.state.ApplyPass(msg.seatID)
		if err != nil {
			m.setError(err)
			return nil
		}
		ok = false
	}

	if ok {
		m.setStatus(fmt.Sprintf("%s played %s", seat.Name, renderCardsPlain(cards)))
	} else {
		m.setStatus(fmt.Sprintf("%s passed", seat.Name))
	}
	return m.commit(next)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Card Chomp Champions"))
	b.WriteString("\n\n")

	for _, p := range m.state.Players {
		if p.ID == m.humanID {
			continue
		}
		b.WriteString(m.renderSeat(p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n\n")

	if m.status != "" {
		style := m.styles.Info
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderHand())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(
		"←/→ move · space select · enter play · p pass · n new game · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderSeat(p *game.Player) string {
	style := m.styles.Seat
	marker := "  "
	if p.ID == m.state.CurrentPlayerID && m.state.Status == game.Playing {
		style = m.styles.SeatTurn
		marker = "▶ "
	}
	passed := ""
	if p.HasPassed {
		passed = " (passed)"
	}
	return style.Render(fmt.Sprintf("%s%s: %d cards, %d won%s",
		marker, p.Name, len(p.Hand), p.GamesWon, passed))
}

func (m *Model) renderTable() string {
	content := "open table"
	if lp := m.state.LastPlay; lp != nil {
		who := "?"
		if p := m.state.Player(lp.PlayerID); p != nil {
			who = p.Name
		}
		content = fmt.Sprintf("%s: %s  %s", who, lp.Type, m.renderCards(lp.Cards))
	}
	return m.styles.Table.Render(content)
}

func (m *Model) renderHand() string {
	human := m.state.Player(m.humanID)
	if len(human.Hand) == 0 {
		return m.styles.Info.Render("(no cards)")
	}

	parts := make([]string, len(human.Hand))
	for i, c := range human.Hand {
		style := m.styles.Card
		if c.IsRed() {
			style = m.styles.RedCard
		}
		if m.selected[c.ID()] {
			style = m.styles.Selected
		}
		s := style.Render(c.String())
		if i == m.cursor {
			s = m.styles.Cursor.Render(c.String())
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := m.styles.Card
		if c.IsRed() {
			style = m.styles.RedCard
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}

func renderCardsPlain(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
