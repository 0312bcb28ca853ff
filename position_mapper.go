package vtable

// syncRowsAbove is how many rows above the first visible row are re-read
// from the getter after every scroll, so reflowed rows just above the
// viewport are picked up before the user scrolls back into them.
const syncRowsAbove = 5

// heightResolver resolves the height of a row from either the uniform
// default or the getter. It is shared by PositionMapper and RowBuffer so
// both see the same heights.
type heightResolver struct {
	defaultHeight int
	getter        RowHeightGetter
}

func newHeightResolver(defaultHeight int, getter RowHeightGetter) heightResolver {
	if defaultHeight <= 0 {
		logger.Warn("non-positive default row height, using 1", "height", defaultHeight)
		defaultHeight = 1
	}
	return heightResolver{defaultHeight: defaultHeight, getter: getter}
}

// height returns the height of row i. A getter result <= 0 is replaced by
// the default height.
func (r heightResolver) height(i int) int {
	if r.getter == nil {
		return r.defaultHeight
	}
	h := r.getter(i)
	if h <= 0 {
		if verbose() {
			logger.Debug("row height getter returned non-positive height, using default",
				"row", i, "height", h, "default", r.defaultHeight)
		}
		return r.defaultHeight
	}
	return h
}

// uniform reports whether every row has the default height.
func (r heightResolver) uniform() bool { return r.getter == nil }

// PositionMapper translates between absolute scroll pixels and
// {row index, intra-row offset} for a list of rows whose heights are
// either uniform or supplied by a RowHeightGetter.
//
// Uniform lists use plain arithmetic. Variable lists keep a per-instance
// Fenwick tree of heights, so lookups are O(log n) and agree exactly with
// a linear cumulative sum over the getter's heights.
//
// PositionMapper is not safe for concurrent use.
type PositionMapper struct {
	rowCount       int
	viewportHeight int
	heights        heightResolver
	tree           *heightTree // nil in uniform mode
	position       int
}

// NewPositionMapper creates a mapper positioned at the top of the list.
// Negative counts and viewport heights are treated as zero.
func NewPositionMapper(rowCount, defaultRowHeight, viewportHeight int, getter RowHeightGetter) *PositionMapper {
	m := &PositionMapper{
		rowCount:       max(rowCount, 0),
		viewportHeight: max(viewportHeight, 0),
		heights:        newHeightResolver(defaultRowHeight, getter),
	}
	m.rebuild()
	return m
}

// rebuild re-reads every row height from the getter.
func (m *PositionMapper) rebuild() {
	if m.heights.uniform() {
		m.tree = nil
		return
	}
	m.tree = newHeightTree(m.rowCount, m.heights.height)
}

// RowCount returns the number of rows.
func (m *PositionMapper) RowCount() int { return m.rowCount }

// DefaultRowHeight returns the uniform row height.
func (m *PositionMapper) DefaultRowHeight() int { return m.heights.defaultHeight }

// ViewportHeight returns the viewport height used for clamping.
func (m *PositionMapper) ViewportHeight() int { return m.viewportHeight }

// Position returns the current absolute scroll position.
func (m *PositionMapper) Position() int { return m.position }

// ContentHeight returns the sum of all row heights.
func (m *PositionMapper) ContentHeight() int {
	if m.tree == nil {
		return m.rowCount * m.heights.defaultHeight
	}
	return m.tree.Total()
}

// MaxScrollPosition returns max(0, ContentHeight() - ViewportHeight()).
func (m *PositionMapper) MaxScrollPosition() int {
	return max(0, m.ContentHeight()-m.viewportHeight)
}

// RowHeight returns the height of the row at index, clamped into range.
// Returns 0 for an empty list.
func (m *PositionMapper) RowHeight(index int) int {
	if m.rowCount == 0 {
		return 0
	}
	index = clampInt(index, 0, m.rowCount-1)
	if m.tree == nil {
		return m.heights.defaultHeight
	}
	return m.tree.Get(index)
}

// RowPosition returns the pixel offset of the top of row index, i.e. the
// sum of the heights of rows [0, index). The index is clamped into range.
func (m *PositionMapper) RowPosition(index int) int {
	if m.rowCount == 0 {
		return 0
	}
	index = clampInt(index, 0, m.rowCount-1)
	if m.tree == nil {
		return index * m.heights.defaultHeight
	}
	return m.tree.SumUntil(index)
}

// State returns the ScrollState for the current position without moving.
func (m *PositionMapper) State() ScrollState {
	return m.stateAt(m.position)
}

// stateAt resolves the row containing pos.
func (m *PositionMapper) stateAt(pos int) ScrollState {
	if m.rowCount == 0 {
		return ScrollState{}
	}
	var index int
	if m.tree == nil {
		index = pos / m.heights.defaultHeight
	} else {
		index = m.tree.RowAt(pos)
	}
	// pos == ContentHeight is reachable with a zero-height viewport; it
	// resolves to the bottom edge of the last row.
	index = clampInt(index, 0, m.rowCount-1)
	return ScrollState{
		Index:         index,
		Offset:        pos - m.RowPosition(index),
		Position:      pos,
		ContentHeight: m.ContentHeight(),
	}
}

// ScrollTo moves to the given absolute position, clamped to
// [0, MaxScrollPosition()].
func (m *PositionMapper) ScrollTo(position int) ScrollState {
	if m.rowCount == 0 {
		m.position = 0
		return ScrollState{}
	}
	m.position = clampInt(position, 0, m.MaxScrollPosition())
	if m.tree != nil {
		m.syncAroundViewport()
	}
	return m.State()
}

// ScrollBy moves by delta pixels; negative deltas scroll up.
func (m *PositionMapper) ScrollBy(delta int) ScrollState {
	return m.ScrollTo(m.position + delta)
}

// ScrollToRow makes index the first visible row, scrolled offsetWithinRow
// pixels into it. Both arguments are clamped; the resulting position is
// clamped like ScrollTo.
func (m *PositionMapper) ScrollToRow(index, offsetWithinRow int) ScrollState {
	if m.rowCount == 0 {
		return m.ScrollTo(0)
	}
	index = clampInt(index, 0, m.rowCount-1)
	offsetWithinRow = clampInt(offsetWithinRow, 0, m.RowHeight(index))
	return m.ScrollTo(m.RowPosition(index) + offsetWithinRow)
}

// ScrollRowIntoView scrolls the minimum distance needed to show row index
// entirely. A row above the viewport is aligned to the top, a row below it
// is aligned to the bottom, and a fully visible row leaves the position
// unchanged.
func (m *PositionMapper) ScrollRowIntoView(index int) ScrollState {
	if m.rowCount == 0 {
		return m.ScrollTo(0)
	}
	index = clampInt(index, 0, m.rowCount-1)
	if index == 0 {
		return m.ScrollToRow(0, 0)
	}
	m.SyncRowHeight(index)
	top := m.RowPosition(index)
	bottom := top + m.RowHeight(index)
	switch {
	case top < m.position:
		return m.ScrollTo(top)
	case bottom > m.position+m.viewportHeight:
		return m.ScrollTo(bottom - m.viewportHeight)
	default:
		return m.ScrollTo(m.position)
	}
}

// SetViewportHeight updates the viewport height and re-clamps the current
// position. Negative heights are treated as zero.
func (m *PositionMapper) SetViewportHeight(height int) {
	m.viewportHeight = max(height, 0)
	m.position = clampInt(m.position, 0, m.MaxScrollPosition())
}

// SetRowHeightGetter swaps the height getter. The current first row and
// intra-row offset are kept and the pixel position is re-derived from
// them using the new heights.
func (m *PositionMapper) SetRowHeightGetter(getter RowHeightGetter) {
	prev := m.State()
	m.heights.getter = getter
	m.rebuild()
	m.restore(prev)
}

// Resync re-reads every row height from the getter, keeping the current
// first row and offset. Call it after a bulk reflow.
func (m *PositionMapper) Resync() {
	if m.heights.uniform() {
		return
	}
	prev := m.State()
	m.rebuild()
	m.restore(prev)
}

func (m *PositionMapper) restore(prev ScrollState) {
	if m.rowCount == 0 {
		m.position = 0
		return
	}
	offset := clampInt(prev.Offset, 0, m.RowHeight(prev.Index))
	m.position = clampInt(m.RowPosition(prev.Index)+offset, 0, m.MaxScrollPosition())
}

// SyncRowHeight re-reads the height of one row and returns the change in
// pixels. When the row lies above the first visible row the position is
// shifted by the same amount so the visible content does not jump.
func (m *PositionMapper) SyncRowHeight(index int) int {
	if m.tree == nil || index < 0 || index >= m.rowCount {
		return 0
	}
	first := m.State().Index
	delta := m.syncRow(index)
	if delta != 0 && index < first {
		m.position = clampInt(m.position+delta, 0, m.MaxScrollPosition())
	}
	return delta
}

func (m *PositionMapper) syncRow(index int) int {
	return m.tree.Set(index, m.heights.height(index))
}

// syncAroundViewport re-reads the heights of the rows currently on screen
// and a few rows above them. Changes above the first row shift the
// position so the first row stays put.
func (m *PositionMapper) syncAroundViewport() {
	s := m.State()
	shift := 0
	for i := s.Index - 1; i >= 0 && i >= s.Index-syncRowsAbove; i-- {
		shift += m.syncRow(i)
	}
	top := -s.Offset
	for i := s.Index; i < m.rowCount && top <= m.viewportHeight; i++ {
		m.syncRow(i)
		top += m.tree.Get(i)
	}
	m.position = clampInt(m.position+shift, 0, m.MaxScrollPosition())
}
