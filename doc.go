/*
Package vtable provides the scroll engine of a virtualized table: it maps a
scroll position in pixels onto rows of possibly different heights and
decides which rows must exist at any moment.

# Overview

A table with millions of rows only materializes the rows near the
viewport. Three pieces cooperate:

  - PositionMapper converts between an absolute scroll position and
    (first visible row, offset into it). Row heights come from an optional
    RowHeightGetter and are kept in a prefix-sum tree, so every query is
    O(log n).
  - RowBuffer computes the RenderWindow for a first row and offset: the
    tight window covering exactly the viewport, or the padded window with
    a few extra rows on each side.
  - Debouncer coalesces bursts of scroll events. While the user scrolls
    the table renders the tight window; DefaultSettleDelay after the last
    event it switches to the padded window.

Table wires these together the way a host widget needs them, and adds
layout (header, footer, borders, shrink-to-fit), scroll callbacks and
input handling.

# Quick Start

	table := vtable.NewTable(vtable.TableConfig{
	    RowsCount:    1_000_000,
	    RowHeight:    20,
	    Width:        600,
	    Height:       400,
	    HeaderHeight: 24,
	}, vtable.WithRowHeightGetter(func(i int) int {
	    if i%10 == 0 {
	        return 40
	    }
	    return 20
	}))
	defer table.Close()

	// Frame loop
	for !window.ShouldClose() {
	    table.Advance(frameTime) // Fires the settle timer when due
	    table.HandleInput(input)

	    dl := vtable.AcquireDrawList()
	    table.Draw(dl, 20, 20, columns, style, cellText)
	    renderer.Render(dl)
	    vtable.ReleaseDrawList(dl)
	}

Hosts that draw rows themselves use Table.Layout, which returns every
materialized row with its top offset, height and a stable render slot, or
ListClipper for a classic immediate-mode loop.

# Scrolling and Settling

Every scroll-affecting call returns a ScrollState. Position is always
RowPosition(Index) + Offset and stays within [0, MaxScrollPosition].

	Wheel            Scroll DefaultWheelRows default-height rows per notch
	Up / Down        Scroll one default-height row
	PgUp / PgDn      Scroll one body height
	Home / End       Jump to the top or bottom
	Scrollbar drag   Scroll to the dragged position

User scrolls are debounced: OnScrollStart fires on the first event of a
burst, OnScrollEnd once the burst settles. ScrollToRow, SetConfig and
SetRowHeightGetter settle immediately.

# Threading

Table and its parts are not safe for concurrent use. By default a Table
owns a ManualClock that only advances in Table.Advance. With
WithTableClock(SystemClock{}) the timers run on their own goroutines, but
they only mark a settle or pre-buffer as due; Table.Advance runs it. Either
way every callback runs on the goroutine that calls Advance, and a host
using real timers calls Advance once per frame or tick.

# Backends

backend/opengl renders a DrawList with OpenGL 4.1 and maps GLFW input.
backend/terminal draws a Table on a tcell screen, one line per pixel.

# Logging

Diagnostics go to a log/slog logger on stderr. SetVerbose(true) enables
debug output such as buffer rebuilds and settle events.
*/
package vtable
