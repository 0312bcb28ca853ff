package vtable_test

import (
	"testing"

	"github.com/go-theft-auto/vtable"
)

func TestRowBufferTightWindow(t *testing.T) {
	tests := []struct {
		name          string
		rows          int
		viewport      int
		getter        vtable.RowHeightGetter
		first, offset int
		want          vtable.RenderWindow
	}{
		{"covers viewport", 100, 50, nil, 0, 0, vtable.RenderWindow{Start: 0, End: 3}},
		{"exact fit", 100, 60, nil, 0, 0, vtable.RenderWindow{Start: 0, End: 3}},
		{"offset counts against viewport", 100, 50, nil, 0, 15, vtable.RenderWindow{Start: 0, End: 4}},
		{"mid list", 100, 50, nil, 40, 0, vtable.RenderWindow{Start: 40, End: 43}},
		{"runs out of rows", 5, 200, nil, 2, 0, vtable.RenderWindow{Start: 2, End: 5}},
		{"zero viewport", 100, 0, nil, 7, 0, vtable.RenderWindow{Start: 7, End: 8}},
		{"negative viewport", 100, -30, nil, 7, 3, vtable.RenderWindow{Start: 7, End: 8}},
		{"first clamped", 10, 50, nil, 50, 0, vtable.RenderWindow{Start: 9, End: 10}},
		{"variable heights", 10, 50, heightsGetter([]int{10, 20, 30, 40, 10, 10, 10, 10, 10, 10}), 0, 0, vtable.RenderWindow{Start: 0, End: 3}},
		{"empty list", 0, 50, nil, 0, 0, vtable.RenderWindow{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := vtable.NewRowBuffer(tt.rows, 20, tt.viewport, tt.getter)
			if got := b.Rows(tt.first, tt.offset); got != tt.want {
				t.Errorf("Rows(%d, %d) = %+v, want %+v", tt.first, tt.offset, got, tt.want)
			}
		})
	}
}

func TestRowBufferTightWindowIndices(t *testing.T) {
	b := vtable.NewRowBuffer(100, 20, 50, nil)
	got := b.Rows(0, 0).Indices()
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("Indices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Indices() = %v, want %v", got, want)
		}
	}
}

func TestRowBufferSettledWindow(t *testing.T) {
	b := vtable.NewRowBuffer(100, 20, 50, nil, vtable.WithBufferRows(4))
	tight := b.Rows(40, 5)
	settled := b.RowsWithUpdatedBuffer()

	if want := (vtable.RenderWindow{Start: 36, End: 47}); settled != want {
		t.Errorf("RowsWithUpdatedBuffer() = %+v, want %+v", settled, want)
	}
	if !settled.ContainsWindow(tight) {
		t.Errorf("settled %+v is not a superset of tight %+v", settled, tight)
	}
	if again := b.RowsWithUpdatedBuffer(); again != settled {
		t.Errorf("second call = %+v, want %+v", again, settled)
	}
	if b.Tight() != tight {
		t.Errorf("Tight() = %+v, want %+v", b.Tight(), tight)
	}
}

func TestRowBufferSettledWindowSupersetEverywhere(t *testing.T) {
	b := vtable.NewRowBuffer(60, 20, 90, cyclicHeights)
	m := vtable.NewPositionMapper(60, 20, 90, cyclicHeights)
	for pos := 0; pos <= m.MaxScrollPosition(); pos += 7 {
		s := m.ScrollTo(pos)
		tight := b.Rows(s.Index, s.Offset)
		settled := b.RowsWithUpdatedBuffer()
		if !settled.ContainsWindow(tight) {
			t.Fatalf("pos %d: settled %+v does not contain tight %+v", pos, settled, tight)
		}
		if settled.Start < 0 || settled.End > 60 {
			t.Fatalf("pos %d: settled %+v out of range", pos, settled)
		}
		if again := b.RowsWithUpdatedBuffer(); again != settled {
			t.Fatalf("pos %d: not idempotent: %+v then %+v", pos, settled, again)
		}
	}
}

func TestRowBufferPaddingClampsAtEdges(t *testing.T) {
	b := vtable.NewRowBuffer(10, 20, 50, nil, vtable.WithBufferRows(5))

	b.Rows(0, 0)
	if got := b.RowsWithUpdatedBuffer(); got != (vtable.RenderWindow{Start: 0, End: 8}) {
		t.Errorf("at top: %+v, want [0,8)", got)
	}
	b.Rows(7, 0)
	if got := b.RowsWithUpdatedBuffer(); got != (vtable.RenderWindow{Start: 2, End: 10}) {
		t.Errorf("at bottom: %+v, want [2,10)", got)
	}
}

func TestRowBufferDefaultPadding(t *testing.T) {
	if got := vtable.NewRowBuffer(100, 20, 50, nil).BufferRows(); got != vtable.MinBufferRows {
		t.Errorf("small viewport padding = %d, want %d", got, vtable.MinBufferRows)
	}
	if got := vtable.NewRowBuffer(100, 20, 2000, nil).BufferRows(); got != vtable.MaxBufferRows {
		t.Errorf("large viewport padding = %d, want %d", got, vtable.MaxBufferRows)
	}
	if got := vtable.NewRowBuffer(100, 20, 50, nil, vtable.WithBufferRows(-2)).BufferRows(); got != 0 {
		t.Errorf("negative padding = %d, want 0", got)
	}
}

func TestRenderWindowDiff(t *testing.T) {
	from := vtable.RenderWindow{Start: 2, End: 6}
	to := vtable.RenderWindow{Start: 4, End: 8}
	mount, unmount := from.Diff(to)
	if len(mount) != 2 || mount[0] != 6 || mount[1] != 7 {
		t.Errorf("mount = %v, want [6 7]", mount)
	}
	if len(unmount) != 2 || unmount[0] != 2 || unmount[1] != 3 {
		t.Errorf("unmount = %v, want [2 3]", unmount)
	}

	mount, unmount = from.Diff(from)
	if len(mount) != 0 || len(unmount) != 0 {
		t.Errorf("diff with itself = %v, %v", mount, unmount)
	}
	if !(vtable.RenderWindow{Start: 0, End: 10}).ContainsWindow(vtable.RenderWindow{}) {
		t.Error("every window contains the empty window")
	}
}
