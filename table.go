package vtable

import (
	"math"
	"sync/atomic"
	"time"
)

const (
	// BorderHeight is the height of the top and bottom table borders.
	BorderHeight = 1

	// DefaultPrebufferDelay is how long after construction the table
	// switches from the tight window to the settled window on its own.
	DefaultPrebufferDelay = time.Second

	// DefaultWheelRows is how many default-height rows one wheel notch scrolls.
	DefaultWheelRows = 3
)

// TableConfig holds the structural configuration of a Table. Passing a
// changed config to SetConfig rebuilds whatever depends on the changed
// fields.
type TableConfig struct {
	RowsCount int // Number of rows
	RowHeight int // Default row height in pixels

	Width     int // Outer width in pixels, used by Draw
	Height    int // Outer height; 0 means use MaxHeight and shrink to fit
	MaxHeight int // Upper bound on the outer height when Height is 0

	HeaderHeight      int
	FooterHeight      int
	GroupHeaderHeight int

	// OwnerHeight is the height of the visible part of the table when it
	// sits in a smaller scrolling container (0 = fully visible).
	OwnerHeight int

	// ScrollTop is a controlled scroll position. It is applied when the
	// table is created and whenever it changes between configs.
	ScrollTop int
}

// RowPlacement tells the host where to draw one materialized row.
type RowPlacement struct {
	Row    int // Row index
	Slot   int // Stable render slot, see SlotAssigner
	Top    int // Pixels from the top of the body; negative when scrolled partly off
	Height int // Row height in pixels
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithRowHeightGetter sets a per-row height getter.
func WithRowHeightGetter(fn RowHeightGetter) TableOption {
	return func(t *Table) { t.getter = fn }
}

// WithBufferRowCount fixes the settled-window padding instead of deriving
// it from the viewport.
func WithBufferRowCount(n int) TableOption {
	return func(t *Table) {
		t.bufferRows = max(n, 0)
		t.bufferRowsSet = true
	}
}

// WithSettleDelay sets the scroll quiet period (default DefaultSettleDelay).
func WithSettleDelay(d time.Duration) TableOption {
	return func(t *Table) { t.settleDelay = d }
}

// WithPrebufferDelay sets the delay before the initial settled window
// (default DefaultPrebufferDelay).
func WithPrebufferDelay(d time.Duration) TableOption {
	return func(t *Table) { t.prebufferDelay = d }
}

// WithTableClock sets the clock driving the settle and pre-buffer timers.
// By default the table owns a ManualClock advanced by Table.Advance.
// Timers of any clock only mark work as due; the work itself runs in the
// next Advance, on the host's goroutine.
func WithTableClock(c Clock) TableOption {
	return func(t *Table) { t.clock = c }
}

// WithWheelRows sets how many default-height rows a wheel notch scrolls.
func WithWheelRows(n int) TableOption {
	return func(t *Table) { t.wheelRows = max(n, 1) }
}

// WithOnScrollStart is called once when a burst of scrolling begins.
func WithOnScrollStart(fn func(ScrollState)) TableOption {
	return func(t *Table) { t.onScrollStart = fn }
}

// WithOnScrollEnd is called once when a burst of scrolling settles.
func WithOnScrollEnd(fn func(ScrollState)) TableOption {
	return func(t *Table) { t.onScrollEnd = fn }
}

// WithOnVerticalScroll is consulted before a user scroll is applied.
// Returning false rejects the scroll and keeps the previous position.
func WithOnVerticalScroll(fn func(position, offset int) bool) TableOption {
	return func(t *Table) { t.onVerticalScroll = fn }
}

// WithOnContentHeightChange is called whenever the reported content
// height differs from the last report, including the first one.
func WithOnContentHeightChange(fn func(contentHeight int)) TableOption {
	return func(t *Table) { t.onContentHeightChange = fn }
}

// bufferKey identifies the inputs a RowBuffer was built from.
type bufferKey struct {
	rows, rowHeight, viewport int
	getterGen                 int
}

// Table owns one PositionMapper, one RowBuffer and the settle Debouncer
// for a single table, and turns scroll intents into ScrollState and
// RenderWindow updates.
//
// While the user scrolls, Window is the tight window. DefaultSettleDelay
// after the last scroll event it is replaced by the padded window.
//
// Table is not safe for concurrent use. Timer callbacks never touch the
// table directly, so with any clock every callback runs inside a Table
// method or Advance on the caller's goroutine.
type Table struct {
	cfg    TableConfig
	getter RowHeightGetter

	mapper        *PositionMapper
	buffer        *RowBuffer
	bufKey        bufferKey
	getterGen     int
	bufferRows    int
	bufferRowsSet bool
	slots         *SlotAssigner

	clock          Clock
	ownClock       *ManualClock
	settleDelay    time.Duration
	prebufferDelay time.Duration
	settle         *Debouncer
	prebuffer      Timer

	// Set from timer callbacks, which may run on another goroutine.
	settleDue    atomic.Bool
	prebufferDue atomic.Bool

	state     ScrollState
	window    RenderWindow
	scrolling bool
	closed    bool

	height         int
	bodyHeight     int
	reservedHeight int
	maxScrollY     int
	reported       int
	hasReported    bool

	wheelRows int
	bounds    Rect // Last area passed to Draw
	scrollbar scrollbarGeom

	onScrollStart         func(ScrollState)
	onScrollEnd           func(ScrollState)
	onVerticalScroll      func(position, offset int) bool
	onContentHeightChange func(int)
}

// NewTable creates a table positioned at cfg.ScrollTop.
func NewTable(cfg TableConfig, opts ...TableOption) *Table {
	t := &Table{
		cfg:            normalizeConfig(cfg),
		settleDelay:    DefaultSettleDelay,
		prebufferDelay: DefaultPrebufferDelay,
		wheelRows:      DefaultWheelRows,
		slots:          NewSlotAssigner(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.ownClock = NewManualClock()
		t.clock = t.ownClock
	}

	viewport := outerHeight(t.cfg) - t.cfg.HeaderHeight - t.cfg.FooterHeight - t.cfg.GroupHeaderHeight
	t.mapper = NewPositionMapper(t.cfg.RowsCount, t.cfg.RowHeight, viewport, t.getter)
	if t.cfg.ScrollTop != 0 {
		t.mapper.ScrollTo(t.cfg.ScrollTop)
	}
	t.settle = NewDebouncer(t.settleDelay, func() { t.settleDue.Store(true) }, WithClock(t.clock))
	t.recalculate()
	t.prebuffer = t.clock.AfterFunc(t.prebufferDelay, func() { t.prebufferDue.Store(true) })
	return t
}

func normalizeConfig(cfg TableConfig) TableConfig {
	cfg.RowsCount = max(cfg.RowsCount, 0)
	if cfg.RowHeight <= 0 {
		logger.Warn("non-positive table row height, using 1", "height", cfg.RowHeight)
		cfg.RowHeight = 1
	}
	cfg.HeaderHeight = max(cfg.HeaderHeight, 0)
	cfg.FooterHeight = max(cfg.FooterHeight, 0)
	cfg.GroupHeaderHeight = max(cfg.GroupHeaderHeight, 0)
	return cfg
}

func outerHeight(cfg TableConfig) int {
	if cfg.Height > 0 {
		return cfg.Height
	}
	return max(cfg.MaxHeight, 0)
}

// SetConfig applies a new configuration.
//
// A changed row count or default row height rebuilds the mapper from the
// current first row and offset, so the visible rows stay put. A changed
// ScrollTop or OwnerHeight counts as a controlled scroll. Any pending
// settle is cancelled and the table settles immediately.
func (t *Table) SetConfig(cfg TableConfig) {
	cfg = normalizeConfig(cfg)
	prev := t.cfg

	if cfg.OwnerHeight != prev.OwnerHeight || cfg.ScrollTop != prev.ScrollTop {
		t.scrollStart()
	}
	t.cfg = cfg
	if cfg.ScrollTop != prev.ScrollTop {
		t.mapper.ScrollTo(cfg.ScrollTop)
	}
	if cfg.RowsCount != prev.RowsCount || cfg.RowHeight != prev.RowHeight {
		first := t.mapper.State()
		t.mapper = NewPositionMapper(cfg.RowsCount, cfg.RowHeight, t.mapper.ViewportHeight(), t.getter)
		t.mapper.ScrollToRow(first.Index, first.Offset)
		logger.Debug("table rows rebuilt",
			"rows", cfg.RowsCount, "rowHeight", cfg.RowHeight,
			"firstRow", first.Index, "offset", first.Offset)
	}
	t.recalculate()
	t.cancelSettle()
	t.settleSync()
}

// Config returns the current configuration.
func (t *Table) Config() TableConfig { return t.cfg }

// SetRowHeightGetter swaps the row height getter without moving the first
// visible row, then settles immediately.
func (t *Table) SetRowHeightGetter(fn RowHeightGetter) {
	t.getter = fn
	t.getterGen++
	t.mapper.SetRowHeightGetter(fn)
	t.recalculate()
	t.cancelSettle()
	t.settleSync()
}

// Resync re-reads every row height from the getter. Call it after the data
// behind the getter reflowed.
func (t *Table) Resync() {
	t.mapper.Resync()
	t.recalculate()
}

// recalculate derives the layout from the config and the mapper, rebuilds
// the row buffer if its inputs changed and refreshes the tight window.
func (t *Table) recalculate() {
	cfg := t.cfg
	useMaxHeight := cfg.Height <= 0
	height := outerHeight(cfg)
	reserved := cfg.HeaderHeight + cfg.FooterHeight + cfg.GroupHeaderHeight + 2*BorderHeight
	body := max(height-reserved, 0)
	content := t.mapper.ContentHeight()

	if content <= body {
		// No vertical scrolling needed; shrink the body to the content.
		if useMaxHeight {
			height = content + reserved
		}
		body = content
	}
	t.height = height
	t.bodyHeight = body
	t.reservedHeight = reserved
	t.maxScrollY = max(0, content-body)
	t.mapper.SetViewportHeight(body)
	t.state = t.mapper.State()

	key := bufferKey{rows: cfg.RowsCount, rowHeight: cfg.RowHeight, viewport: body, getterGen: t.getterGen}
	if t.buffer == nil || key != t.bufKey {
		var opts []BufferOption
		if t.bufferRowsSet {
			opts = append(opts, WithBufferRows(t.bufferRows))
		}
		t.buffer = NewRowBuffer(cfg.RowsCount, cfg.RowHeight, body, t.getter, opts...)
		t.bufKey = key
		logger.Debug("row buffer rebuilt", "rows", cfg.RowsCount, "viewport", body, "bufferRows", t.buffer.BufferRows())
	}
	t.window = t.buffer.Rows(t.state.Index, t.state.Offset)
	t.reportContentHeight()
}

// ScrollBy scrolls by delta pixels (wheel or touch). Negative scrolls up.
func (t *Table) ScrollBy(delta int) ScrollState {
	if delta == 0 {
		return t.state
	}
	t.scrollStart()
	t.apply(t.mapper.ScrollBy(delta))
	t.settle.Schedule()
	return t.state
}

// ScrollTo scrolls to an absolute position (scrollbar drag).
func (t *Table) ScrollTo(position int) ScrollState {
	if position == t.state.Position {
		return t.state
	}
	t.scrollStart()
	t.apply(t.mapper.ScrollTo(position))
	t.settle.Schedule()
	return t.state
}

// ScrollToRow scrolls row index into view and settles immediately.
func (t *Table) ScrollToRow(index int) ScrollState {
	t.state = t.mapper.ScrollRowIntoView(index)
	t.maxScrollY = max(0, t.state.ContentHeight-t.bodyHeight)
	t.window = t.buffer.Rows(t.state.Index, t.state.Offset)
	t.reportContentHeight()
	t.cancelSettle()
	t.settleSync()
	return t.state
}

// apply commits a ScrollState unless the vertical scroll callback rejects it.
func (t *Table) apply(s ScrollState) bool {
	if t.onVerticalScroll != nil && !t.onVerticalScroll(s.Position, s.Offset) {
		t.mapper.ScrollTo(t.state.Position)
		return false
	}
	t.state = s
	t.maxScrollY = max(0, s.ContentHeight-t.bodyHeight)
	t.window = t.buffer.Rows(s.Index, s.Offset)
	t.reportContentHeight()
	return true
}

// HandleInput applies wheel, scrollbar and key input for this frame.
// Wheel input is ignored while the mouse is outside the area last passed
// to Draw. Returns true if any input scrolled the table.
func (t *Table) HandleInput(in *InputState) bool {
	if in == nil {
		return false
	}
	before := t.state.Position
	if in.ScrollbarY >= 0 {
		t.ScrollTo(in.ScrollbarY)
	}
	if in.MouseWheelY != 0 && t.mouseOver(in) {
		step := float64(in.MouseWheelY) * float64(t.wheelRows*t.cfg.RowHeight)
		t.ScrollBy(-int(math.Round(step)))
	}
	switch {
	case in.KeyPressed(KeyUp):
		t.ScrollBy(-t.cfg.RowHeight)
	case in.KeyPressed(KeyDown):
		t.ScrollBy(t.cfg.RowHeight)
	case in.KeyPressed(KeyPageUp):
		t.ScrollBy(-max(t.bodyHeight, 1))
	case in.KeyPressed(KeyPageDown):
		t.ScrollBy(max(t.bodyHeight, 1))
	case in.KeyPressed(KeyHome):
		t.ScrollTo(0)
	case in.KeyPressed(KeyEnd):
		t.ScrollTo(t.maxScrollY)
	}
	return t.state.Position != before
}

func (t *Table) mouseOver(in *InputState) bool {
	if t.bounds.W <= 0 || t.bounds.H <= 0 {
		return true
	}
	return t.bounds.Contains(Vec2{X: in.MouseX, Y: in.MouseY})
}

// Advance moves the table's own clock forward and runs a settle or
// pre-buffer that became due. With an external clock dt is ignored and
// Advance only runs what that clock's timers marked due, so hosts must
// keep calling it.
func (t *Table) Advance(dt time.Duration) {
	if t.ownClock != nil {
		t.ownClock.Advance(dt)
	}
	// A settle marked due is stale if a scroll rescheduled it since.
	if t.settleDue.Swap(false) && !t.settle.Pending() {
		t.settleSync()
	}
	if t.prebufferDue.Swap(false) {
		t.applyBuffer()
	}
}

// Close cancels pending timers and settles synchronously. Call it when the
// table is torn down so OnScrollEnd still fires for an unfinished scroll.
func (t *Table) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.prebuffer != nil {
		t.prebuffer.Stop()
	}
	t.prebufferDue.Store(false)
	t.cancelSettle()
	t.settleSync()
}

// cancelSettle drops a pending or already due settle.
func (t *Table) cancelSettle() {
	t.settle.Reset()
	t.settleDue.Store(false)
}

func (t *Table) scrollStart() {
	if t.scrolling {
		return
	}
	t.scrolling = true
	if t.onScrollStart != nil {
		t.onScrollStart(t.state)
	}
}

// settleSync ends a scroll burst: the window grows to the padded window and
// OnScrollEnd fires if a scroll was in progress.
func (t *Table) settleSync() {
	wasScrolling := t.scrolling
	t.scrolling = false
	t.window = t.buffer.RowsWithUpdatedBuffer()
	if verbose() {
		logger.Debug("table settled", "position", t.state.Position,
			"start", t.window.Start, "end", t.window.End, "wasScrolling", wasScrolling)
	}
	if wasScrolling && t.onScrollEnd != nil {
		t.onScrollEnd(t.state)
	}
}

func (t *Table) applyBuffer() {
	if t.closed {
		return
	}
	t.window = t.buffer.RowsWithUpdatedBuffer()
}

func (t *Table) reportContentHeight() {
	content := t.mapper.ContentHeight()
	if t.hasReported && content == t.reported {
		return
	}
	t.reported = content
	t.hasReported = true
	if t.onContentHeightChange != nil {
		t.onContentHeightChange(content)
	}
}

// State returns the current scroll state.
func (t *Table) State() ScrollState { return t.state }

// Window returns the rows currently materialized.
func (t *Table) Window() RenderWindow { return t.window }

// Mapper returns the table's position mapper. Use it for read-only queries;
// scrolling through it directly bypasses the table's window and settle
// handling.
func (t *Table) Mapper() *PositionMapper { return t.mapper }

// IsScrolling reports whether a scroll burst is in progress.
func (t *Table) IsScrolling() bool { return t.scrolling }

// Height returns the outer height after shrink-to-fit.
func (t *Table) Height() int { return t.height }

// BodyHeight returns the height available to rows.
func (t *Table) BodyHeight() int { return t.bodyHeight }

// VisibleBodyHeight returns the part of the body inside the owner when
// OwnerHeight clips the table, otherwise BodyHeight.
func (t *Table) VisibleBodyHeight() int {
	owner := t.cfg.OwnerHeight
	if owner <= 0 || owner >= t.height {
		return t.bodyHeight
	}
	return max(t.bodyHeight-(t.height-owner), 0)
}

// MaxScrollY returns the largest valid scroll position.
func (t *Table) MaxScrollY() int { return t.maxScrollY }

// ContentHeight returns the sum of all row heights.
func (t *Table) ContentHeight() int { return t.mapper.ContentHeight() }

// BufferRows returns the settled-window padding in use.
func (t *Table) BufferRows() int { return t.buffer.BufferRows() }

// Layout returns placement and slot for every materialized row, ordered
// by row index.
func (t *Table) Layout() []RowPlacement {
	slots := t.slots.Assign(t.window)
	out := make([]RowPlacement, len(slots))
	for i, rs := range slots {
		out[i] = RowPlacement{
			Row:    rs.Row,
			Slot:   rs.Slot,
			Top:    t.mapper.RowPosition(rs.Row) - t.state.Position,
			Height: t.mapper.RowHeight(rs.Row),
		}
	}
	return out
}

// Slots returns the size of the render-slot pool Layout has used so far.
func (t *Table) Slots() int { return t.slots.Slots() }
