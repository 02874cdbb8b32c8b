package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"w", core.ActionUp, false},
		{"up", core.ActionUp, false},
		{"s", core.ActionDown, false},
		{"a", core.ActionLeft, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{" ", core.ActionJump, false},
		{"enter", core.ActionConfirm, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"n", core.ActionNewGame, false},
		{"f", core.ActionFlag, false},
		{"1", core.ActionSelect1, false},
		{"3", core.ActionSelect3, false},
		{"b", core.ActionBack, false},
		{"z", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMultiFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewMultiInputFrame()

	if km.MapKeyToMultiFrame(keyMsg("left"), core.Player2, &frame) {
		t.Error("left should not quit")
	}
	if !frame.Player(core.Player2).Has(core.ActionLeft) {
		t.Error("Player2 frame should hold Left")
	}
	if frame.Player(core.Player1).Has(core.ActionLeft) {
		t.Error("Player1 frame should be untouched")
	}
	if !km.MapKeyToMultiFrame(keyMsg("q"), core.Player1, &frame) {
		t.Error("q should report quit")
	}
	if frame.Player(core.Player1).Has(core.ActionQuit) {
		t.Error("quit is not forwarded as an action")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want core.Pointer
		ok   bool
	}{
		{"left press", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.Pointer{X: 4, Y: 7, Button: core.PointerLeft}, true},
		{"right press", tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, core.Pointer{X: 1, Y: 2, Button: core.PointerRight}, true},
		{"release", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, core.Pointer{}, false},
		{"motion", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion}, core.Pointer{}, false},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, core.Pointer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.MapMouse(tt.msg)
			if got != tt.want || ok != tt.ok {
				t.Errorf("MapMouse() = %+v, %v, expected %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"k":     MenuActionUp,
		"down":  MenuActionDown,
		"enter": MenuActionSelect,
		" ":     MenuActionSelect,
		"esc":   MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for key, expected := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", key, got, expected)
		}
	}
}
