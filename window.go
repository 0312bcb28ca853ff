package vtable

// RenderWindow is the contiguous, half-open range [Start, End) of row
// indices that should currently be materialized.
type RenderWindow struct {
	Start int // First row (inclusive)
	End   int // Last row (exclusive)
}

// Len returns the number of rows in the window.
func (w RenderWindow) Len() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// Empty reports whether the window holds no rows.
func (w RenderWindow) Empty() bool { return w.Len() == 0 }

// Contains reports whether row is inside the window.
func (w RenderWindow) Contains(row int) bool {
	return row >= w.Start && row < w.End
}

// ContainsWindow reports whether other is a subset of w.
func (w RenderWindow) ContainsWindow(other RenderWindow) bool {
	if other.Empty() {
		return true
	}
	return other.Start >= w.Start && other.End <= w.End
}

// Indices returns the rows of the window in increasing order.
func (w RenderWindow) Indices() []int {
	rows := make([]int, 0, w.Len())
	for i := w.Start; i < w.End; i++ {
		rows = append(rows, i)
	}
	return rows
}

// Diff returns the rows that must be mounted and unmounted to go from w
// to next. Both results are in increasing order.
func (w RenderWindow) Diff(next RenderWindow) (mount, unmount []int) {
	for i := next.Start; i < next.End; i++ {
		if !w.Contains(i) {
			mount = append(mount, i)
		}
	}
	for i := w.Start; i < w.End; i++ {
		if !next.Contains(i) {
			unmount = append(unmount, i)
		}
	}
	return mount, unmount
}
