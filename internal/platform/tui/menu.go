package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// onlineGameID is the game offered in the online lobby.
const onlineGameID = "tictactoe"

// MenuItem represents a selectable entry in the launcher.
type MenuItem struct {
	GameID string
	Title  string
	Online bool
}

// MenuModel is the game picker. It is a component of the launcher.
type MenuModel struct {
	items     []MenuItem
	best      map[string]int
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper

	selected   *MenuItem
	scoreboard bool
	quitting   bool
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewMenuModel lists every registered game, plus online tic-tac-toe when
// online is set. Best scores are read from store when it is not nil.
func NewMenuModel(store *storage.Store, width, height int, online bool) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+1)
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	if online && registry.Exists(onlineGameID) {
		items = append(items, MenuItem{
			GameID: onlineGameID,
			Title:  registry.Title(onlineGameID) + " Online",
			Online: true,
		})
	}

	best := make(map[string]int)
	if store != nil {
		if stats, err := store.GetAllGamesStats(); err == nil {
			for id, st := range stats {
				best[id] = st.HighScore
			}
		}
	}

	return MenuModel{
		items:     items,
		best:      best,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Update handles keys and resizes.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
			}
		case MenuActionScoreboard:
			m.scoreboard = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("A R C A D E   C L A S S I C S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if best := m.best[item.GameID]; best > 0 && !item.Online {
			line += fmt.Sprintf("  (best %d)", best)
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Items returns the menu entries in display order.
func (m MenuModel) Items() []MenuItem { return m.items }

// Selected returns the chosen entry, or nil.
func (m MenuModel) Selected() *MenuItem { return m.selected }

// WantsScoreboard reports a Tab press.
func (m MenuModel) WantsScoreboard() bool { return m.scoreboard }

// IsQuitting reports a quit request.
func (m MenuModel) IsQuitting() bool { return m.quitting }
