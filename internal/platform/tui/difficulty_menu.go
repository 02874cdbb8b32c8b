package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
)

// DifficultyModel picks the Minesweeper board before a game starts.
type DifficultyModel struct {
	presets   []minesweeper.Difficulty
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper

	chosen   *minesweeper.Difficulty
	back     bool
	quitting bool
}

// NewDifficultyModel starts with the configured default board highlighted.
func NewDifficultyModel(width, height int) DifficultyModel {
	presets, def := minesweeper.Presets()
	m := DifficultyModel{
		presets:   presets,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, d := range presets {
		if d.Name == def {
			m.cursor = i
		}
	}
	return m
}

// Update handles keys and resizes.
func (m DifficultyModel) Update(msg tea.Msg) (DifficultyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d, ok := m.shortcut(msg.String()); ok {
			m.chosen = &d
			return m, nil
		}
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			d := m.presets[m.cursor]
			m.chosen = &d
		case MenuActionBack:
			m.back = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// shortcut maps 1, 2, 3 onto the first three boards.
func (m DifficultyModel) shortcut(key string) (minesweeper.Difficulty, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return minesweeper.Difficulty{}, false
	}
	i := int(key[0] - '1')
	if i >= len(m.presets) {
		return minesweeper.Difficulty{}, false
	}
	return m.presets[i], true
}

// View renders the board list.
func (m DifficultyModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M I N E S W E E P E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, d := range m.presets {
		line := fmt.Sprintf("  %d. %-8s %2dx%-2d  %3d mines", i+1, d.Name, d.Cols, d.Rows, d.Mines)
		if i == m.cursor {
			line = menuCursorStyle.Render(">" + line[1:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Chosen returns the selected board, or nil while still choosing.
func (m DifficultyModel) Chosen() *minesweeper.Difficulty { return m.chosen }

// WantsBack reports an Esc press.
func (m DifficultyModel) WantsBack() bool { return m.back }

// IsQuitting reports a quit request.
func (m DifficultyModel) IsQuitting() bool { return m.quitting }
