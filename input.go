package vtable

// Key represents a keyboard key that scrolls a table.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyCount
)

// InputState holds the scroll-relevant input for the current frame.
// It is populated by a backend (GLFW, terminal) and consumed by
// Table.HandleInput.
type InputState struct {
	// Mouse position, used to route the wheel to the table under the cursor.
	MouseX, MouseY float32

	// Vertical mouse wheel in notches; positive scrolls up.
	MouseWheelY float32

	// ScrollbarY is an absolute scroll position requested by a scrollbar
	// drag this frame, or -1 when there was none.
	ScrollbarY int

	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool // True on the frame key was pressed (or repeated)
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{ScrollbarY: -1}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before collecting input.
func (s *InputState) Reset() {
	for i := range s.keyPressed {
		s.keyPressed[i] = false
	}
	s.MouseWheelY = 0
	s.ScrollbarY = -1
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// SetMouseWheel accumulates a vertical wheel delta. Several wheel events
// can arrive within one frame.
func (s *InputState) SetMouseWheel(y float32) {
	s.MouseWheelY += y
}

// SetKey sets key state. A press while the key is already down counts as
// a repeat and registers as pressed again.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	if down {
		s.keyPressed[key] = true
	}
	s.keyDown[key] = down
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was pressed or repeated this frame.
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	switch k {
	case KeyNone:
		return "--"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyPageUp:
		return "PgUp"
	case KeyPageDown:
		return "PgDn"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	default:
		return "?"
	}
}
