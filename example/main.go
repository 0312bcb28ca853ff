// Example scrolls a large virtualized table in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Rows have variable heights. The footer shows the current scroll state and
// whether the table is scrolling or settled. Use the wheel, the scrollbar,
// arrows, PgUp/PgDn and Home/End.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "vtable example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	rows := flag.Int("rows", 100000, "number of rows")
	rowHeight := flag.Int("row-height", 20, "default row height in pixels")
	variable := flag.Bool("variable", true, "use variable row heights")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	vtable.SetVerbose(*verbose)
	if err := run(*rows, *rowHeight, *variable); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rowHeightOf gives every seventh row double height and every thirteenth
// row 1.5x height.
func rowHeightOf(base int) vtable.RowHeightGetter {
	return func(i int) int {
		switch {
		case i%7 == 3:
			return base * 2
		case i%13 == 5:
			return base * 3 / 2
		default:
			return base
		}
	}
}

func run(rows, rowHeight int, variable bool) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("table renderer: %w", err)
	}
	defer renderer.Delete()

	inputAdapter := opengl.NewGLFWInputAdapter(window)

	var opts []vtable.TableOption
	if variable {
		opts = append(opts, vtable.WithRowHeightGetter(rowHeightOf(rowHeight)))
	}
	table := vtable.NewTable(vtable.TableConfig{
		RowsCount:    rows,
		RowHeight:    rowHeight,
		Width:        windowWidth - 40,
		Height:       windowHeight - 40,
		HeaderHeight: 24,
		FooterHeight: 24,
	}, opts...)
	defer table.Close()

	style := vtable.GTAStyle()
	style.FontTexture = renderer.FontTextureID()

	columns := []vtable.Column{
		{Label: "Row", Width: 100},
		{Label: "Height", Width: 80},
		{Label: "Name"},
	}

	last := time.Now()
	for !window.ShouldClose() {
		in := inputAdapter.Update()
		glfw.PollEvents()
		inputAdapter.Drag(table)

		now := time.Now()
		table.Advance(now.Sub(last))
		last = now
		table.HandleInput(in)

		w, h := window.GetFramebufferSize()
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		st := table.State()
		win := table.Window()
		mode := "settled"
		if table.IsScrolling() {
			mode = "scrolling"
		}
		columns[0].Footer = fmt.Sprintf("row %d+%d", st.Index, st.Offset)
		columns[1].Footer = mode
		columns[2].Footer = fmt.Sprintf("rows %d-%d of %d", win.Start, win.End, rows)

		dl := vtable.AcquireDrawList()
		table.Draw(dl, 20, 20, columns, style, func(row, col int) string {
			switch col {
			case 0:
				return fmt.Sprintf("%d", row)
			case 1:
				return fmt.Sprintf("%dpx", table.Mapper().RowHeight(row))
			default:
				return fmt.Sprintf("item-%06d", row)
			}
		})
		err := renderer.Render(dl)
		vtable.ReleaseDrawList(dl)
		if err != nil {
			return fmt.Errorf("table render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
