package core

// Action is a semantic game input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - primary action (fire, hard drop, reveal)
	ActionDuck           // secondary action
	ActionConfirm        // Enter
	ActionBack           // B, Escape - back to menu
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionFlag           // F - minesweeper flag cycle
	ActionNewGame        // N - abandon the current round
	ActionSelect1        // 1
	ActionSelect2        // 2
	ActionSelect3        // 3
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionDuck:    "Duck",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionFlag:    "Flag",
	ActionNewGame: "NewGame",
	ActionSelect1: "Select1",
	ActionSelect2: "Select2",
	ActionSelect3: "Select3",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// PointerButton identifies which mouse button produced a pointer event.
type PointerButton int

const (
	PointerLeft PointerButton = iota
	PointerRight
)

// Pointer is a mouse press in screen cell coordinates.
type Pointer struct {
	X, Y   int
	Button PointerButton
}

// InputFrame holds the input for a single player during one simulation tick.
type InputFrame struct {
	Actions  map[Action]bool
	pointers []Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// AddPointer records a pointer press for this frame.
func (f *InputFrame) AddPointer(p Pointer) {
	f.pointers = append(f.pointers, p)
}

// Pointers returns the pointer presses in arrival order.
func (f InputFrame) Pointers() []Pointer {
	return f.pointers
}

// Empty reports whether nothing was pressed this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.pointers) == 0
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.pointers = f.pointers[:0]
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.pointers) > 0 {
		clone.pointers = append([]Pointer(nil), f.pointers...)
	}
	return clone
}

// PlayerID identifies a seat in a two-player game.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns "P1" or "P2".
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// Other returns the opposing seat.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// MultiInputFrame contains input from all players for a single tick.
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a player, or an empty frame.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id, frame := range m.ByPlayer {
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}
