package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game input.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var keyActions = map[string]core.Action{
	"w":     core.ActionUp,
	"up":    core.ActionUp,
	"s":     core.ActionDown,
	"down":  core.ActionDown,
	"a":     core.ActionLeft,
	"left":  core.ActionLeft,
	"d":     core.ActionRight,
	"right": core.ActionRight,
	" ":     core.ActionJump,
	"enter": core.ActionConfirm,
	"p":     core.ActionPause,
	"esc":   core.ActionPause,
	"r":     core.ActionRestart,
	"n":     core.ActionNewGame,
	"f":     core.ActionFlag,
	"1":     core.ActionSelect1,
	"2":     core.ActionSelect2,
	"3":     core.ActionSelect3,
	"b":     core.ActionBack,
}

// MapKey translates a key message to an action.
// isQuit is set for q and ctrl+c.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}
	if a, ok := keyActions[msg.String()]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame adds the key's action to frame. It reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMultiFrame adds the key's action to one player's frame.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, player core.PlayerID, frame *core.MultiInputFrame) bool {
	p := frame.Player(player)
	isQuit := km.MapKeyToFrame(msg, &p)
	frame.SetPlayer(player, p)
	return isQuit
}

// MapMouse converts a button press into a pointer event. Motion, release
// and wheel events are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Pointer, bool) {
	if msg.Action != tea.MouseActionPress {
		return core.Pointer{}, false
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return core.Pointer{X: msg.X, Y: msg.Y, Button: core.PointerLeft}, true
	case tea.MouseButtonRight:
		return core.Pointer{X: msg.X, Y: msg.Y, Button: core.PointerRight}, true
	}
	return core.Pointer{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
