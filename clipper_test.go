package vtable_test

import (
	"testing"

	"github.com/go-theft-auto/vtable"
)

func TestListClipper(t *testing.T) {
	m := vtable.NewPositionMapper(100, 20, 50, nil)
	m.ScrollTo(45)

	c := vtable.NewListClipper(vtable.RenderWindow{Start: 2, End: 5}, m)
	if c.StartIdx != 2 || c.EndIdx != 5 || c.TotalItems != 100 {
		t.Fatalf("clipper = [%d,%d) of %d", c.StartIdx, c.EndIdx, c.TotalItems)
	}
	if c.VisibleCount() != 3 {
		t.Errorf("VisibleCount() = %d, want 3", c.VisibleCount())
	}
	if !c.ShouldRender(2) || !c.ShouldRender(4) || c.ShouldRender(5) || c.ShouldRender(1) {
		t.Error("ShouldRender disagrees with [2,5)")
	}
	// Row 2 starts at 40, five pixels above the top.
	if got := c.ItemY(2, 100); got != 95 {
		t.Errorf("ItemY(2) = %v, want 95", got)
	}
	if got := c.ItemY(3, 100); got != 115 {
		t.Errorf("ItemY(3) = %v, want 115", got)
	}
	if c.ItemHeight(3) != 20 {
		t.Errorf("ItemHeight(3) = %v, want 20", c.ItemHeight(3))
	}
	if c.ContentHeight() != 2000 || c.MaxScroll() != 1950 {
		t.Errorf("ContentHeight/MaxScroll = %v/%v", c.ContentHeight(), c.MaxScroll())
	}
}

func TestListClipperClampsWindow(t *testing.T) {
	m := vtable.NewPositionMapper(10, 20, 50, nil)

	c := vtable.NewListClipper(vtable.RenderWindow{Start: -3, End: 40}, m)
	if c.StartIdx != 0 || c.EndIdx != 10 {
		t.Errorf("clipper = [%d,%d), want [0,10)", c.StartIdx, c.EndIdx)
	}

	c = vtable.NewListClipper(vtable.RenderWindow{Start: 30, End: 40}, m)
	if c.VisibleCount() != 0 {
		t.Errorf("window past the end renders %d rows", c.VisibleCount())
	}
}

func TestListClipperVariableHeights(t *testing.T) {
	m := vtable.NewPositionMapper(4, 20, 50, heightsGetter([]int{10, 20, 30, 40}))
	m.ScrollTo(15)
	c := vtable.NewListClipper(vtable.RenderWindow{Start: 0, End: 4}, m)

	want := []float32{-15, -5, 15, 45}
	for i, y := range want {
		if got := c.ItemY(i, 0); got != y {
			t.Errorf("ItemY(%d) = %v, want %v", i, got, y)
		}
	}
}
