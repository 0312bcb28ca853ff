package vtable_test

import (
	"testing"

	"github.com/go-theft-auto/vtable"
)

func TestInputStateWheelAccumulates(t *testing.T) {
	in := vtable.NewInputState()
	in.SetMouseWheel(1)
	in.SetMouseWheel(-3)
	if in.MouseWheelY != -2 {
		t.Errorf("MouseWheelY = %v, want -2", in.MouseWheelY)
	}
	in.ScrollbarY = 40
	in.Reset()
	if in.MouseWheelY != 0 || in.ScrollbarY != -1 {
		t.Errorf("after Reset: wheel %v, scrollbar %d", in.MouseWheelY, in.ScrollbarY)
	}
}
