// Terminal scrolls a large virtualized table in a terminal.
//
//	go run ./example/terminal/ -rows 1000000
//
// Keys: arrows or j/k, PgUp/PgDn, Home/End or g/G, q to quit. The mouse
// wheel and dragging the scrollbar also scroll.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/backend/terminal"
)

func main() {
	rows := flag.Int("rows", 100000, "number of rows")
	verbose := flag.Bool("v", false, "verbose logging (to stderr)")
	flag.Parse()

	vtable.SetVerbose(*verbose)
	if err := run(*rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(rows int) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	w, h := screen.Size()
	var (
		mode  = "settled"
		table *vtable.Table
	)
	table = vtable.NewTable(vtable.TableConfig{
		RowsCount:    rows,
		RowHeight:    1,
		Width:        w,
		Height:       h,
		HeaderHeight: 1,
		FooterHeight: 1,
	},
		// Every tenth row wraps onto a second line.
		vtable.WithRowHeightGetter(func(i int) int {
			if i%10 == 9 {
				return 2
			}
			return 1
		}),
		vtable.WithOnScrollStart(func(vtable.ScrollState) { mode = "scrolling" }),
		vtable.WithOnScrollEnd(func(vtable.ScrollState) { mode = "settled" }),
	)
	defer table.Close()

	columns := []terminal.Column{
		{Label: "Row", Width: 10},
		{Label: "Name", Width: 16},
		{Label: "Description"},
	}
	view := terminal.NewView(table, columns, func(row, col int) string {
		switch col {
		case 0:
			return fmt.Sprintf("%d", row)
		case 1:
			return fmt.Sprintf("item-%06d", row)
		default:
			if row%10 == 9 {
				return "a row two lines tall\nwith a second line"
			}
			return "一覧 of virtualized rows"
		}
	}, terminal.WithFill())

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC ||
					(key.Key() == tcell.KeyRune && key.Rune() == 'q') {
					return nil
				}
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			view.HandleEvent(ev)
		case now := <-ticker.C:
			table.Advance(now.Sub(last))
			last = now
		}

		st := table.State()
		win := table.Window()
		columns[0].Footer = fmt.Sprintf("%d+%d", st.Index, st.Offset)
		columns[1].Footer = mode
		columns[2].Footer = fmt.Sprintf("rows %d-%d of %d", win.Start, win.End, rows)
		view.Draw(screen)
		screen.Show()
	}
}
