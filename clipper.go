package vtable

// ListClipper gives an immediate-mode draw loop the rows it should emit
// for the current frame and where each one goes.
//
// Usage:
//
//	clipper := vtable.NewListClipper(table.Window(), table.Mapper())
//	for i := clipper.StartIdx; i < clipper.EndIdx; i++ {
//	    y := clipper.ItemY(i, baseY)
//	    // Draw row i at y
//	}
type ListClipper struct {
	StartIdx   int // First materialized row (inclusive)
	EndIdx     int // Last materialized row (exclusive)
	TotalItems int // Total number of rows in the list

	mapper *PositionMapper
	scroll int
}

// NewListClipper snapshots a render window against the mapper's current
// scroll position.
func NewListClipper(w RenderWindow, mapper *PositionMapper) *ListClipper {
	end := min(w.End, mapper.RowCount())
	start := min(max(w.Start, 0), end)
	return &ListClipper{
		StartIdx:   start,
		EndIdx:     end,
		TotalItems: mapper.RowCount(),
		mapper:     mapper,
		scroll:     mapper.Position(),
	}
}

// ShouldRender returns true if the row at idx is materialized.
// Use this when iterating through all rows to skip the others.
func (c *ListClipper) ShouldRender(idx int) bool {
	return idx >= c.StartIdx && idx < c.EndIdx
}

// ItemY returns the y position of row idx for a list whose top edge is at
// baseY. Rows scrolled above the top get a y smaller than baseY.
func (c *ListClipper) ItemY(idx int, baseY float32) float32 {
	return baseY + float32(c.mapper.RowPosition(idx)-c.scroll)
}

// ItemHeight returns the height of row idx.
func (c *ListClipper) ItemHeight(idx int) float32 {
	return float32(c.mapper.RowHeight(idx))
}

// VisibleCount returns the number of rows that should be rendered.
func (c *ListClipper) VisibleCount() int {
	return c.EndIdx - c.StartIdx
}

// ContentHeight returns the total content height (for scrollbar calculations).
func (c *ListClipper) ContentHeight() float32 {
	return float32(c.mapper.ContentHeight())
}

// MaxScroll returns the maximum valid scroll offset.
func (c *ListClipper) MaxScroll() float32 {
	return float32(c.mapper.MaxScrollPosition())
}
