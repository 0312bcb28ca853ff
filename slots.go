package vtable

import "sort"

// RowSlot pairs a materialized row with the render slot that hosts it.
type RowSlot struct {
	Row  int
	Slot int
}

// SlotAssigner keeps row-to-slot assignments stable across window changes.
//
// A row that stays in the window keeps its slot. A row entering the window
// takes the slot of a row that left, or a fresh slot when none is free.
// Hosts that keep one render object per slot therefore only re-bind the
// objects whose row actually changed.
type SlotAssigner struct {
	rowToSlot map[int]int
	free      []int
	slots     int
}

// NewSlotAssigner creates an empty assigner.
func NewSlotAssigner() *SlotAssigner {
	return &SlotAssigner{rowToSlot: make(map[int]int)}
}

// Slots returns the number of slots ever allocated. It never shrinks, so
// it is the size a host needs for its pool of render objects.
func (a *SlotAssigner) Slots() int { return a.slots }

// SlotOf returns the slot currently assigned to row.
func (a *SlotAssigner) SlotOf(row int) (int, bool) {
	s, ok := a.rowToSlot[row]
	return s, ok
}

// Assign updates the assignments for w and returns them ordered by row.
func (a *SlotAssigner) Assign(w RenderWindow) []RowSlot {
	var released []int
	for row, slot := range a.rowToSlot {
		if !w.Contains(row) {
			delete(a.rowToSlot, row)
			released = append(released, slot)
		}
	}
	// Map iteration order is random; keep reuse deterministic.
	sort.Sort(sort.Reverse(sort.IntSlice(released)))
	a.free = append(a.free, released...)

	out := make([]RowSlot, 0, w.Len())
	for row := w.Start; row < w.End; row++ {
		slot, ok := a.rowToSlot[row]
		if !ok {
			slot = a.take()
			a.rowToSlot[row] = slot
		}
		out = append(out, RowSlot{Row: row, Slot: slot})
	}
	return out
}

// Reset drops every assignment. Slot numbering restarts at zero.
func (a *SlotAssigner) Reset() {
	clear(a.rowToSlot)
	a.free = a.free[:0]
	a.slots = 0
}

func (a *SlotAssigner) take() int {
	if n := len(a.free); n > 0 {
		s := a.free[n-1]
		a.free = a.free[:n-1]
		return s
	}
	s := a.slots
	a.slots++
	return s
}
