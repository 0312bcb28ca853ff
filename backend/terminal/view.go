// Package terminal draws a vtable.Table on a tcell screen and feeds tcell
// key and mouse events into it.
//
// One terminal line is one table pixel: a row of height 2 occupies two
// lines. Cell text containing '\n' is split across the lines of its row.
package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/vtable"
)

// Column describes one terminal column.
type Column struct {
	Label  string
	Footer string
	Width  int // Cells; 0 = share the remaining width equally
}

// Styles are the tcell styles used by View.
type Styles struct {
	Border    tcell.Style
	Header    tcell.Style
	Row       tcell.Style
	RowAlt    tcell.Style
	Footer    tcell.Style
	Track     tcell.Style
	Thumb     tcell.Style
	Separator rune // Drawn between columns; 0 = none
}

// DefaultStyles returns styles matching vtable.GTAStyle.
func DefaultStyles() Styles {
	return Styles{
		Border:    tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 100, 150)),
		Header:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(0, 80, 120)).Bold(true),
		Row:       tcell.StyleDefault,
		RowAlt:    tcell.StyleDefault.Background(tcell.NewRGBColor(20, 30, 40)),
		Footer:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(0, 80, 120)),
		Track:     tcell.StyleDefault.Foreground(tcell.ColorGray),
		Thumb:     tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 150, 200)),
		Separator: '│',
	}
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithStyles sets the view styles.
func WithStyles(s Styles) ViewOption {
	return func(v *View) { v.styles = s }
}

// WithFill makes the view resize the table to the screen on EventResize,
// keeping its origin.
func WithFill() ViewOption {
	return func(v *View) { v.fill = true }
}

// View renders a table in a rectangle of a tcell screen.
type View struct {
	table   *vtable.Table
	columns []Column
	cell    vtable.CellFunc
	styles  Styles
	fill    bool

	x, y  int
	input *vtable.InputState
	drag  bool
}

// NewView creates a view at the screen origin. The table's Width and
// Height are in cells and lines.
func NewView(t *vtable.Table, columns []Column, cell vtable.CellFunc, opts ...ViewOption) *View {
	v := &View{
		table:   t,
		columns: columns,
		cell:    cell,
		styles:  DefaultStyles(),
		input:   vtable.NewInputState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetOrigin moves the view's top-left corner.
func (v *View) SetOrigin(x, y int) {
	v.x, v.y = x, y
}

// Table returns the table shown by the view.
func (v *View) Table() *vtable.Table { return v.table }

// layout is the line and column geometry of one frame.
type layout struct {
	width     int
	groupTop  int
	headerTop int
	bodyTop   int
	bodyH     int
	footerTop int
	bottom    int // Bottom border line
	scrollbar bool
	innerW    int // Width available to columns
}

func (v *View) layout() layout {
	t := v.table
	cfg := t.Config()
	l := layout{width: max(cfg.Width, 2)}
	l.groupTop = v.y + vtable.BorderHeight
	l.headerTop = l.groupTop + cfg.GroupHeaderHeight
	l.bodyTop = l.headerTop + cfg.HeaderHeight
	l.bodyH = t.BodyHeight()
	l.footerTop = l.bodyTop + l.bodyH
	l.bottom = l.footerTop + cfg.FooterHeight
	l.scrollbar = t.MaxScrollY() > 0
	l.innerW = l.width - 2
	if l.scrollbar {
		l.innerW--
	}
	return l
}

func (l layout) contains(x, y, ox int) bool {
	return x >= ox && x < ox+l.width && y >= l.groupTop-1 && y <= l.bottom
}

// HandleEvent applies a tcell event to the table. It returns true when the
// table scrolled or was resized and the view needs redrawing.
func (v *View) HandleEvent(ev tcell.Event) bool {
	v.input.Reset()
	l := v.layout()

	switch ev := ev.(type) {
	case *tcell.EventResize:
		if !v.fill {
			return false
		}
		w, h := ev.Size()
		cfg := v.table.Config()
		cfg.Width = max(w-v.x, 0)
		cfg.Height = max(h-v.y, 0)
		v.table.SetConfig(cfg)
		return true

	case *tcell.EventKey:
		k := keyOf(ev)
		if k == vtable.KeyNone {
			return false
		}
		v.input.SetKey(k, true)
		scrolled := v.table.HandleInput(v.input)
		v.input.SetKey(k, false) // Terminals report no key release.
		return scrolled

	case *tcell.EventMouse:
		mx, my := ev.Position()
		v.input.SetMousePos(float32(mx), float32(my))
		buttons := ev.Buttons()
		if buttons&tcell.WheelUp != 0 {
			v.input.SetMouseWheel(1)
		}
		if buttons&tcell.WheelDown != 0 {
			v.input.SetMouseWheel(-1)
		}
		if !l.contains(mx, my, v.x) {
			v.input.MouseWheelY = 0
		}

		onScrollbar := l.scrollbar && mx == v.x+l.width-2 && my >= l.bodyTop && my < l.footerTop
		switch {
		case buttons&tcell.Button1 == 0:
			v.drag = false
		case onScrollbar || v.drag:
			v.drag = true
			v.input.ScrollbarY = v.scrollbarPosition(l, my)
		}
		return v.table.HandleInput(v.input)
	}
	return false
}

// scrollbarPosition maps a line of the scrollbar track to a scroll position.
func (v *View) scrollbarPosition(l layout, y int) int {
	maxY := v.table.MaxScrollY()
	_, thumbH := v.thumb(l)
	span := l.bodyH - thumbH
	if span <= 0 {
		return 0
	}
	rel := min(max(y-l.bodyTop-thumbH/2, 0), span)
	return (rel*maxY + span/2) / span
}

// thumb returns the scrollbar thumb offset and height in lines.
func (v *View) thumb(l layout) (top, height int) {
	content := v.table.ContentHeight()
	if content <= 0 || l.bodyH <= 0 {
		return 0, 0
	}
	height = min(max(l.bodyH*l.bodyH/content, 1), l.bodyH)
	if maxY := v.table.MaxScrollY(); maxY > 0 {
		top = (l.bodyH - height) * v.table.State().Position / maxY
	}
	return top, height
}

func keyOf(ev *tcell.EventKey) vtable.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return vtable.KeyUp
	case tcell.KeyDown:
		return vtable.KeyDown
	case tcell.KeyPgUp:
		return vtable.KeyPageUp
	case tcell.KeyPgDn:
		return vtable.KeyPageDown
	case tcell.KeyHome:
		return vtable.KeyHome
	case tcell.KeyEnd:
		return vtable.KeyEnd
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return vtable.KeyUp
		case 'j':
			return vtable.KeyDown
		case 'g':
			return vtable.KeyHome
		case 'G':
			return vtable.KeyEnd
		}
	}
	return vtable.KeyNone
}

// Draw renders the table. It does not call Show.
func (v *View) Draw(s tcell.Screen) {
	t := v.table
	cfg := t.Config()
	l := v.layout()
	st := v.styles
	widths := columnWidths(v.columns, l.innerW)
	left := v.x + 1

	fill(s, v.x, v.y, l.width, l.bottom-v.y+1, st.Row)
	drawFrame(s, v.x, v.y, l.width, l.bottom-v.y+1, st.Border)

	for y := l.groupTop; y < l.headerTop; y++ {
		fill(s, left, y, l.innerW, 1, st.Header)
	}
	if cfg.HeaderHeight > 0 {
		fill(s, left, l.headerTop, l.innerW, cfg.HeaderHeight, st.Header)
		v.drawCells(s, left, l.headerTop, widths, st.Header, func(col int) string { return v.columns[col].Label })
	}

	for _, p := range t.Layout() {
		style := st.Row
		if p.Row%2 == 1 {
			style = st.RowAlt
		}
		lines := make([][]string, len(widths))
		if v.cell != nil {
			for col := range widths {
				lines[col] = strings.Split(v.cell(p.Row, col), "\n")
			}
		}
		for line := 0; line < p.Height; line++ {
			y := p.Top + line
			if y < 0 || y >= l.bodyH {
				continue
			}
			fill(s, left, l.bodyTop+y, l.innerW, 1, style)
			v.drawCells(s, left, l.bodyTop+y, widths, style, func(col int) string {
				if line < len(lines[col]) {
					return lines[col][line]
				}
				return ""
			})
		}
	}

	if cfg.FooterHeight > 0 {
		fill(s, left, l.footerTop, l.innerW, cfg.FooterHeight, st.Footer)
		v.drawCells(s, left, l.footerTop, widths, st.Footer, func(col int) string { return v.columns[col].Footer })
	}

	if l.scrollbar {
		x := v.x + l.width - 2
		top, height := v.thumb(l)
		for y := 0; y < l.bodyH; y++ {
			if y >= top && y < top+height {
				s.SetContent(x, l.bodyTop+y, '█', nil, st.Thumb)
			} else {
				s.SetContent(x, l.bodyTop+y, '░', nil, st.Track)
			}
		}
	}
}

func (v *View) drawCells(s tcell.Screen, x, y int, widths []int, style tcell.Style, text func(col int) string) {
	for col, w := range widths {
		putString(s, x, y, w, text(col), style)
		x += w
		if v.styles.Separator != 0 && col < len(widths)-1 {
			s.SetContent(x-1, y, v.styles.Separator, nil, style)
		}
	}
}

// putString writes str into at most width cells, truncating with an
// ellipsis by display width.
func putString(s tcell.Screen, x, y, width int, str string, style tcell.Style) {
	if width <= 0 {
		return
	}
	limit := width - 1 // Leave room for the column separator.
	if limit <= 0 {
		return
	}
	str = runewidth.Truncate(str, limit, "…")
	col := 0
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
}

func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

func drawFrame(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	for col := x + 1; col < right; col++ {
		s.SetContent(col, y, '─', nil, style)
		s.SetContent(col, bottom, '─', nil, style)
	}
	for row := y + 1; row < bottom; row++ {
		s.SetContent(x, row, '│', nil, style)
		s.SetContent(right, row, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(right, y, '┐', nil, style)
	s.SetContent(x, bottom, '└', nil, style)
	s.SetContent(right, bottom, '┘', nil, style)
}

func columnWidths(columns []Column, total int) []int {
	widths := make([]int, len(columns))
	fixed, flex := 0, 0
	for i, c := range columns {
		if c.Width > 0 {
			widths[i] = c.Width
			fixed += c.Width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return widths
	}
	rest := max(total-fixed, 0)
	share := rest / flex
	extra := rest - share*flex
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = share
			if extra > 0 {
				widths[i]++
				extra--
			}
		}
	}
	return widths
}
