package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vtable"
)

// GLFWInputAdapter adapts GLFW input to vtable.InputState. Dragging with the
// left button inside a table's scrollbar track becomes InputState.ScrollbarY.
type GLFWInputAdapter struct {
	window   *glfw.Window
	input    *vtable.InputState
	dragging bool
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  vtable.NewInputState(),
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Update prepares the input state for a new frame.
// Call this at the start of each frame, before glfw.PollEvents.
func (a *GLFWInputAdapter) Update() *vtable.InputState {
	a.input.Reset()
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))
	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *vtable.InputState {
	return a.input
}

// Drag resolves a held scrollbar drag against t's last drawn scrollbar.
// Call it after glfw.PollEvents and before t.HandleInput.
func (a *GLFWInputAdapter) Drag(t *vtable.Table) {
	if !a.dragging {
		return
	}
	if pos, ok := t.ScrollbarPosition(a.input.MouseX, a.input.MouseY); ok {
		a.input.ScrollbarY = pos
	}
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k := glfwKeyToKey(key)
	if k == vtable.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	a.dragging = action == glfw.Press
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

// glfwKeyToKey maps GLFW keys to table scroll keys.
func glfwKeyToKey(key glfw.Key) vtable.Key {
	switch key {
	case glfw.KeyUp:
		return vtable.KeyUp
	case glfw.KeyDown:
		return vtable.KeyDown
	case glfw.KeyPageUp:
		return vtable.KeyPageUp
	case glfw.KeyPageDown:
		return vtable.KeyPageDown
	case glfw.KeyHome:
		return vtable.KeyHome
	case glfw.KeyEnd:
		return vtable.KeyEnd
	default:
		return vtable.KeyNone
	}
}
