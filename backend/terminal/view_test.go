package terminal_test

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/backend/terminal"
)

// newScreen returns an initialized simulation screen of w x h cells.
func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// newView shows 100 one-line rows in a 20x12 frame: a header line and a
// nine-line body.
func newView(opts ...terminal.ViewOption) *terminal.View {
	table := vtable.NewTable(vtable.TableConfig{
		RowsCount:    100,
		RowHeight:    1,
		Width:        20,
		Height:       12,
		HeaderHeight: 1,
	})
	columns := []terminal.Column{{Label: "Name"}}
	return terminal.NewView(table, columns, func(row, col int) string {
		return fmt.Sprintf("row %d", row)
	}, opts...)
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestViewDrawFrame(t *testing.T) {
	s := newScreen(t, 30, 20)
	v := newView()
	defer v.Table().Close()
	v.Draw(s)

	checks := []struct {
		x, y int
		want rune
	}{
		{0, 0, '┌'},
		{19, 0, '┐'},
		{0, 11, '└'},
		{19, 11, '┘'},
		{19, 5, '│'},
		{1, 1, 'N'}, // Header
		{1, 2, 'r'}, // First row
		{5, 2, '0'},
		{5, 3, '1'},
		{5, 10, '8'}, // Last body line
		{18, 2, '█'}, // Thumb at the top
		{18, 3, '░'},
	}
	for _, c := range checks {
		if got := runeAt(s, c.x, c.y); got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestViewKeys(t *testing.T) {
	s := newScreen(t, 30, 20)
	v := newView()
	table := v.Table()
	defer table.Close()

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)) {
		t.Fatal("KeyDown did not scroll")
	}
	if got := table.State().Position; got != 1 {
		t.Errorf("position = %d, want 1", got)
	}
	v.Draw(s)
	if got := runeAt(s, 5, 2); got != '1' {
		t.Errorf("first body line shows %q, want row 1", got)
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone))
	if got := table.State().Position; got != table.MaxScrollY() {
		t.Errorf("G scrolled to %d, want %d", got, table.MaxScrollY())
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone))
	if got := table.State().Position; got != table.MaxScrollY()-9 {
		t.Errorf("PgUp scrolled to %d, want %d", got, table.MaxScrollY()-9)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone))
	if got := table.State().Position; got != 0 {
		t.Errorf("g scrolled to %d, want 0", got)
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("unbound key reported a scroll")
	}
}

func TestViewMouseWheel(t *testing.T) {
	v := newView()
	table := v.Table()
	defer table.Close()

	if !v.HandleEvent(tcell.NewEventMouse(5, 5, tcell.WheelDown, tcell.ModNone)) {
		t.Fatal("wheel inside the view did not scroll")
	}
	if got := table.State().Position; got != vtable.DefaultWheelRows {
		t.Errorf("position = %d, want %d", got, vtable.DefaultWheelRows)
	}
	if v.HandleEvent(tcell.NewEventMouse(25, 5, tcell.WheelDown, tcell.ModNone)) {
		t.Error("wheel outside the view scrolled it")
	}
	v.HandleEvent(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))
	if got := table.State().Position; got != 0 {
		t.Errorf("position after WheelUp = %d, want 0", got)
	}
}

func TestViewScrollbarDrag(t *testing.T) {
	v := newView()
	table := v.Table()
	defer table.Close()

	// Track is column 18, lines 2..10, with a one-line thumb.
	v.HandleEvent(tcell.NewEventMouse(18, 10, tcell.Button1, tcell.ModNone))
	if got := table.State().Position; got != table.MaxScrollY() {
		t.Errorf("click at track bottom = %d, want %d", got, table.MaxScrollY())
	}
	// Dragging off the track keeps following the pointer.
	v.HandleEvent(tcell.NewEventMouse(10, 6, tcell.Button1, tcell.ModNone))
	if got := table.State().Position; got != 46 {
		t.Errorf("drag to middle = %d, want 46", got)
	}
	v.HandleEvent(tcell.NewEventMouse(10, 6, tcell.ButtonNone, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(10, 2, tcell.Button1, tcell.ModNone))
	if got := table.State().Position; got != 46 {
		t.Errorf("click off the track after release moved to %d", got)
	}
}

func TestViewResize(t *testing.T) {
	v := newView()
	defer v.Table().Close()
	if v.HandleEvent(tcell.NewEventResize(40, 30)) {
		t.Error("view without fill handled a resize")
	}

	v = newView(terminal.WithFill())
	table := v.Table()
	defer table.Close()
	v.SetOrigin(0, 2)
	if !v.HandleEvent(tcell.NewEventResize(40, 30)) {
		t.Fatal("resize not handled")
	}
	if cfg := table.Config(); cfg.Width != 40 || cfg.Height != 28 {
		t.Errorf("config = %dx%d, want 40x28", cfg.Width, cfg.Height)
	}
	if table.BodyHeight() != 25 {
		t.Errorf("BodyHeight() = %d, want 25", table.BodyHeight())
	}
}

func TestViewMultiLineRows(t *testing.T) {
	s := newScreen(t, 30, 20)
	table := vtable.NewTable(vtable.TableConfig{
		RowsCount: 10,
		RowHeight: 2,
		Width:     20,
		Height:    8,
	})
	defer table.Close()
	v := terminal.NewView(table, []terminal.Column{{}}, func(row, col int) string {
		return fmt.Sprintf("top %d\nbottom %d", row, row)
	})
	v.Draw(s)

	// No header: the body starts on line 1.
	if got := runeAt(s, 1, 1); got != 't' {
		t.Errorf("line 1 = %q, want the first line of row 0", got)
	}
	if got := runeAt(s, 1, 2); got != 'b' {
		t.Errorf("line 2 = %q, want the second line of row 0", got)
	}
	if got := runeAt(s, 5, 3); got != '1' {
		t.Errorf("line 3 = %q, want row 1", got)
	}
}

func TestViewTruncatesCells(t *testing.T) {
	s := newScreen(t, 30, 20)
	table := vtable.NewTable(vtable.TableConfig{RowsCount: 1, RowHeight: 1, Width: 12, MaxHeight: 10})
	defer table.Close()
	v := terminal.NewView(table, []terminal.Column{{}}, func(row, col int) string {
		return "abcdefghijklmnop"
	})
	v.Draw(s)

	// Ten inner cells, one reserved for the separator.
	if got := runeAt(s, 1, 1); got != 'a' {
		t.Errorf("first cell = %q, want 'a'", got)
	}
	if got := runeAt(s, 8, 1); got != 'h' {
		t.Errorf("cell 8 = %q, want 'h'", got)
	}
	if got := runeAt(s, 10, 1); got == 'j' {
		t.Error("text ran past the column")
	}
	if got := runeAt(s, 11, 1); got != '│' {
		t.Errorf("right border = %q, want '│'", got)
	}
}
