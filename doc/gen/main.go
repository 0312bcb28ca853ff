// Command gen renders tables in known scroll states, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// The footer shows the materialized window, so the screenshots compare the
// tight window while scrolling with the padded window once settled.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vtable"
	"github.com/go-theft-auto/vtable/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single table screenshot to capture.
type screenshot struct {
	name   string                    // filename without extension
	width  int                       // viewport width
	height int                       // viewport height
	cfg    vtable.TableConfig        // table config; Width/Height default to the viewport
	opts   []vtable.TableOption      // extra table options
	setup  func(t *vtable.Table)     // drives the table into the captured state
	style  func(s *vtable.Style)     // optional style tweaks
	cell   func(row, col int) string // cell text; nil = row numbers
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("table renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection. The hidden window stays at
	// 800x600, larger than every screenshot.
	renderer.Resize(s.width, s.height)

	cfg := s.cfg
	if cfg.Width == 0 {
		cfg.Width = s.width - 24
	}
	if cfg.Height == 0 && cfg.MaxHeight == 0 {
		cfg.Height = s.height - 24
	}
	table := vtable.NewTable(cfg, s.opts...)
	defer table.Close()
	if s.setup != nil {
		s.setup(table)
	}

	style := vtable.GTAStyle()
	style.FontTexture = renderer.FontTextureID()
	if s.style != nil {
		s.style(&style)
	}
	cell := s.cell
	if cell == nil {
		cell = func(row, col int) string {
			if col == 0 {
				return fmt.Sprintf("%d", row)
			}
			return fmt.Sprintf("%dpx", table.Mapper().RowHeight(row))
		}
	}
	win := table.Window()
	mode := "settled"
	if table.IsScrolling() {
		mode = "scrolling"
	}
	columns := []vtable.Column{
		{Label: "Row", Width: 120, Footer: mode},
		{Label: "Height", Footer: fmt.Sprintf("rows %d-%d", win.Start, win.End)},
	}

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := vtable.AcquireDrawList()
	table.Draw(dl, 12, 12, columns, style, cell)
	err := renderer.Render(dl)
	vtable.ReleaseDrawList(dl)
	if err != nil {
		return err
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	flipRows(pixels, s.width*4, s.height)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// flipRows flips an image vertically (OpenGL origin is bottom-left).
func flipRows(pixels []byte, rowLen, rows int) {
	tmp := make([]byte, rowLen)
	for y := 0; y < rows/2; y++ {
		top := y * rowLen
		bot := (rows - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}
}

func variableHeights(i int) int {
	if i%5 == 2 {
		return 44
	}
	return 22
}

// buildScreenshots returns the list of screenshots to generate.
func buildScreenshots() []screenshot {
	base := vtable.TableConfig{RowsCount: 10000, RowHeight: 22, HeaderHeight: 24, FooterHeight: 24}

	shrink := vtable.TableConfig{RowsCount: 6, RowHeight: 22, HeaderHeight: 24, MaxHeight: 400}

	return []screenshot{
		{
			name: "tight_window", width: 400, height: 300, cfg: base,
			setup: func(t *vtable.Table) {
				t.ScrollBy(22*40 + 7) // Mid-scroll: only the viewport rows exist.
			},
		},
		{
			name: "settled_window", width: 400, height: 300, cfg: base,
			setup: func(t *vtable.Table) {
				t.ScrollBy(22*40 + 7)
				t.Advance(vtable.DefaultSettleDelay)
			},
		},
		{
			name: "variable_heights", width: 400, height: 300, cfg: base,
			opts: []vtable.TableOption{vtable.WithRowHeightGetter(variableHeights)},
			setup: func(t *vtable.Table) {
				t.ScrollToRow(500)
			},
		},
		{
			name: "scroll_to_row_end", width: 400, height: 300, cfg: base,
			setup: func(t *vtable.Table) {
				t.ScrollToRow(base.RowsCount - 1)
			},
		},
		{
			name: "shrink_to_fit", width: 400, height: 300, cfg: shrink,
			setup: func(t *vtable.Table) {
				t.Advance(time.Second)
			},
		},
		{
			name: "light_style", width: 400, height: 300, cfg: base,
			style: func(s *vtable.Style) {
				font := s.FontTexture
				*s = vtable.LightStyle()
				s.FontTexture = font
			},
		},
	}
}
