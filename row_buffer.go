package vtable

// Bounds for the automatic settled-buffer padding.
const (
	MinBufferRows = 3
	MaxBufferRows = 6
)

// BufferOption configures a RowBuffer.
type BufferOption func(*RowBuffer)

// WithBufferRows sets the number of extra rows materialized above and
// below the tight window once scrolling settles. Negative values are
// treated as zero.
func WithBufferRows(n int) BufferOption {
	return func(b *RowBuffer) { b.bufferRows = max(n, 0) }
}

// RowBuffer decides which rows are materialized.
//
// While scrolling, Rows returns the tight window: the minimal run of rows
// starting at the first visible row that covers the viewport. Once
// scrolling settles, RowsWithUpdatedBuffer pads that window on both sides
// so small scroll jitters do not mount or unmount rows.
//
// A RowBuffer is bound to one rowCount, default height, viewport height
// and getter. Build a new one when any of them changes.
type RowBuffer struct {
	rowCount       int
	viewportHeight int
	heights        heightResolver
	bufferRows     int

	firstIndex  int
	firstOffset int
	tight       RenderWindow
}

// NewRowBuffer creates a buffer for rowCount rows shown in a viewport of
// viewportHeight pixels.
func NewRowBuffer(rowCount, defaultRowHeight, viewportHeight int, getter RowHeightGetter, opts ...BufferOption) *RowBuffer {
	b := &RowBuffer{
		rowCount:       max(rowCount, 0),
		viewportHeight: viewportHeight,
		heights:        newHeightResolver(defaultRowHeight, getter),
	}
	b.bufferRows = defaultBufferRows(viewportHeight, b.heights.defaultHeight)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// defaultBufferRows derives the padding from how many default-height rows
// fit in the viewport: half of them, bounded to [MinBufferRows, MaxBufferRows].
func defaultBufferRows(viewportHeight, defaultHeight int) int {
	visible := 1
	if viewportHeight > 0 {
		visible = (viewportHeight+defaultHeight-1)/defaultHeight + 1
	}
	return clampInt(visible/2, MinBufferRows, MaxBufferRows)
}

// BufferRows returns the padding applied by RowsWithUpdatedBuffer.
func (b *RowBuffer) BufferRows() int { return b.bufferRows }

// RowCount returns the number of rows the buffer was built for.
func (b *RowBuffer) RowCount() int { return b.rowCount }

// ViewportHeight returns the viewport height the buffer was built for.
func (b *RowBuffer) ViewportHeight() int { return b.viewportHeight }

// Rows records {firstRowIndex, firstRowOffset} as the current first row
// and returns the tight window for it.
//
// Rows are accumulated from firstRowIndex, counting the scrolled-off
// part of the first row against the viewport, until the viewport is
// covered or the rows run out. A viewport of zero or less yields just the
// first row.
func (b *RowBuffer) Rows(firstRowIndex, firstRowOffset int) RenderWindow {
	if b.rowCount == 0 {
		b.firstIndex, b.firstOffset = 0, 0
		b.tight = RenderWindow{}
		return b.tight
	}
	first := clampInt(firstRowIndex, 0, b.rowCount-1)
	b.firstIndex, b.firstOffset = first, max(firstRowOffset, 0)

	covered := -b.firstOffset
	end := first
	for end < b.rowCount {
		covered += b.heights.height(end)
		end++
		if covered >= b.viewportHeight {
			break
		}
	}
	b.tight = RenderWindow{Start: first, End: end}
	return b.tight
}

// RowsWithUpdatedBuffer recomputes the tight window for the last first row
// passed to Rows and pads it by BufferRows() on each side, clamped to the
// list. Calling it repeatedly without an intervening Rows call returns the
// same window.
func (b *RowBuffer) RowsWithUpdatedBuffer() RenderWindow {
	tight := b.Rows(b.firstIndex, b.firstOffset)
	if tight.Empty() {
		return tight
	}
	return RenderWindow{
		Start: max(tight.Start-b.bufferRows, 0),
		End:   min(tight.End+b.bufferRows, b.rowCount),
	}
}

// Tight returns the tight window computed by the last Rows call.
func (b *RowBuffer) Tight() RenderWindow { return b.tight }
