package vtable_test

import (
	"testing"

	"github.com/go-theft-auto/vtable"
)

func TestDrawListBatching(t *testing.T) {
	dl := vtable.AcquireDrawList()
	defer vtable.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, vtable.ColorWhite)
	dl.AddRect(10, 0, 10, 10, vtable.ColorGray)
	dl.SetTexture(7)
	dl.AddText(0, 20, "hi", vtable.ColorWhite, 1, 8, 8)
	dl.SetTexture(7)
	dl.PushClipRect(0, 0, 50, 50)
	dl.AddRect(0, 0, 5, 5, vtable.ColorWhite)
	dl.PopClipRect()
	dl.Finalize()

	if len(dl.VtxBuffer) != 20 || len(dl.IdxBuffer) != 30 {
		t.Fatalf("buffers = %d vertices, %d indices; want 20, 30", len(dl.VtxBuffer), len(dl.IdxBuffer))
	}
	// Rects, text, clipped rect. The empty command after PopClipRect is dropped.
	want := []struct {
		elems, texture uint32
	}{
		{12, 0},
		{12, 7},
		{6, 7},
	}
	if len(dl.CmdBuffer) != len(want) {
		t.Fatalf("got %d commands, want %d", len(dl.CmdBuffer), len(want))
	}
	for i, w := range want {
		cmd := dl.CmdBuffer[i]
		if cmd.ElemCount != w.elems || cmd.TextureID != w.texture {
			t.Errorf("command %d = %d elements, texture %d; want %d, %d", i, cmd.ElemCount, cmd.TextureID, w.elems, w.texture)
		}
	}
	clipped := dl.CmdBuffer[2]
	if clipped.ClipRect != [4]float32{0, 0, 50, 50} {
		t.Errorf("clipped command = %+v", clipped)
	}
}

func TestDrawListClipIntersects(t *testing.T) {
	dl := vtable.AcquireDrawList()
	defer vtable.ReleaseDrawList(dl)

	dl.PushClipRect(0, 0, 100, 100)
	dl.PushClipRect(50, -20, 200, 80)
	if got := dl.ClipRect(); got != [4]float32{50, 0, 100, 80} {
		t.Errorf("nested clip = %v, want [50 0 100 80]", got)
	}
	dl.PopClipRect()
	if got := dl.ClipRect(); got != [4]float32{0, 0, 100, 100} {
		t.Errorf("restored clip = %v", got)
	}
	dl.PopClipRect()
	dl.PopClipRect() // Extra pops are ignored.
}

func TestDrawListSkipsInvisible(t *testing.T) {
	dl := vtable.AcquireDrawList()
	defer vtable.ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, vtable.ColorTransparent)
	dl.AddRect(0, 0, 0, 10, vtable.ColorWhite)
	dl.AddText(0, 0, "", vtable.ColorWhite, 1, 8, 8)
	dl.Finalize()
	if len(dl.VtxBuffer) != 0 || len(dl.CmdBuffer) != 0 {
		t.Errorf("invisible primitives produced %d vertices and %d commands", len(dl.VtxBuffer), len(dl.CmdBuffer))
	}
}

func TestDrawListSplitsLargeCommands(t *testing.T) {
	dl := vtable.AcquireDrawList()
	defer vtable.ReleaseDrawList(dl)

	const quads = 20000 // 80000 vertices, more than a uint16 index can reach
	for i := range quads {
		dl.AddRect(float32(i), 0, 1, 1, vtable.ColorWhite)
	}
	dl.Finalize()

	if len(dl.CmdBuffer) < 2 {
		t.Fatalf("got %d commands, want the quads split across several", len(dl.CmdBuffer))
	}
	total := uint32(0)
	for _, cmd := range dl.CmdBuffer {
		total += cmd.ElemCount
		end := int(cmd.IndexOffset + cmd.ElemCount)
		for _, idx := range dl.IdxBuffer[cmd.IndexOffset:end] {
			if int(cmd.VertexOffset)+int(idx) >= len(dl.VtxBuffer) {
				t.Fatalf("index %d past the vertex buffer", idx)
			}
		}
	}
	if total != quads*6 {
		t.Errorf("total elements = %d, want %d", total, quads*6)
	}
}
