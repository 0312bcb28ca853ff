package vtable

import "unicode/utf8"

// Column describes one drawn column.
type Column struct {
	Label  string
	Footer string
	Width  float32 // 0 = share the remaining width equally
}

// CellFunc returns the text of a cell.
type CellFunc func(row, col int) string

// scrollbarGeom is the scrollbar layout from the last Draw.
type scrollbarGeom struct {
	track Rect
	grabH float32
}

// Draw emits the table at (x, y) into dl: borders, group header, header,
// every materialized row, footer and a vertical scrollbar when the
// content overflows. It also records the area used to route wheel input.
func (t *Table) Draw(dl *DrawList, x, y float32, columns []Column, style Style, cell CellFunc) {
	width := float32(t.cfg.Width)
	if width <= 0 {
		for _, c := range columns {
			width += max(c.Width, style.CharWidth*8)
		}
		width += style.ScrollbarSize + 2*BorderHeight
	}
	height := float32(t.height)
	t.bounds = Rect{X: x, Y: y, W: width, H: height}

	border := float32(BorderHeight)
	groupTop := y + border
	headerTop := groupTop + float32(t.cfg.GroupHeaderHeight)
	bodyTop := headerTop + float32(t.cfg.HeaderHeight)
	bodyH := float32(t.bodyHeight)
	footerTop := bodyTop + bodyH

	innerX := x + border
	innerW := width - 2*border
	hasScrollbar := t.maxScrollY > 0
	if hasScrollbar {
		innerW -= style.ScrollbarSize
	}
	widths := columnWidths(columns, innerW)
	rows := t.Layout()

	// Untextured pass
	dl.SetTexture(0)
	dl.AddRect(x, y, width, height, style.BgColor)
	dl.AddRect(innerX, groupTop, innerW, float32(t.cfg.GroupHeaderHeight), style.HeaderBgColor)
	dl.AddRect(innerX, headerTop, innerW, float32(t.cfg.HeaderHeight), style.HeaderBgColor)
	footerBg := style.FooterBgColor
	if footerBg == 0 {
		footerBg = style.HeaderBgColor
	}
	dl.AddRect(innerX, footerTop, innerW, float32(t.cfg.FooterHeight), footerBg)

	dl.PushClipRect(innerX, bodyTop, innerX+innerW, footerTop)
	for _, p := range rows {
		rowY := bodyTop + float32(p.Top)
		if p.Row%2 == 1 {
			dl.AddRect(innerX, rowY, innerW, float32(p.Height), style.RowBgAltColor)
		}
	}
	dl.PopClipRect()

	t.scrollbar = scrollbarGeom{}
	if hasScrollbar {
		track := Rect{X: innerX + innerW, Y: bodyTop, W: style.ScrollbarSize, H: bodyH}
		content := float32(t.mapper.ContentHeight())
		grabH := min(max(bodyH*bodyH/content, style.ScrollbarMinGrab), bodyH)
		grabY := track.Y + (track.H-grabH)*float32(t.state.Position)/float32(t.maxScrollY)
		dl.AddRect(track.X, track.Y, track.W, track.H, style.ScrollbarBgColor)
		dl.AddRect(track.X, grabY, track.W, grabH, style.ScrollbarGrabColor)
		t.scrollbar = scrollbarGeom{track: track, grabH: grabH}
	}
	if style.BorderSize > 0 {
		dl.AddRectOutline(x, y, width, height, style.BorderColor, style.BorderSize)
	}

	// Text pass
	if cell == nil && len(columns) == 0 {
		return
	}
	dl.SetTexture(style.FontTexture)
	cw := style.CharWidth * style.FontScale
	ch := style.CharHeight * style.FontScale
	headerColor := style.HeaderTextColor
	if headerColor == 0 {
		headerColor = style.TextColor
	}

	drawCells := func(top, h float32, color uint32, text func(col int) string) {
		cx := innerX
		for col, w := range widths {
			s := fitText(text(col), w-2*style.CellPadding, cw)
			dl.AddText(cx+style.CellPadding, top+(h-ch)/2, s, color, style.FontScale, style.CharWidth, style.CharHeight)
			cx += w
		}
	}

	if t.cfg.HeaderHeight > 0 {
		dl.PushClipRect(innerX, headerTop, innerX+innerW, bodyTop)
		drawCells(headerTop, float32(t.cfg.HeaderHeight), headerColor, func(col int) string { return columns[col].Label })
		dl.PopClipRect()
	}
	if cell != nil {
		dl.PushClipRect(innerX, bodyTop, innerX+innerW, footerTop)
		for _, p := range rows {
			row := p.Row
			drawCells(bodyTop+float32(p.Top), float32(p.Height), style.TextColor, func(col int) string { return cell(row, col) })
		}
		dl.PopClipRect()
	}
	if t.cfg.FooterHeight > 0 {
		dl.PushClipRect(innerX, footerTop, innerX+innerW, footerTop+float32(t.cfg.FooterHeight))
		drawCells(footerTop, float32(t.cfg.FooterHeight), headerColor, func(col int) string { return columns[col].Footer })
		dl.PopClipRect()
	}
	dl.SetTexture(0)
}

// ScrollbarPosition maps a mouse y inside the scrollbar track from the last
// Draw to a scroll position, centering the grab on the cursor. It returns
// false when there is no scrollbar or y is outside the track.
func (t *Table) ScrollbarPosition(mouseX, mouseY float32) (int, bool) {
	sb := t.scrollbar
	if sb.track.H <= 0 || !sb.track.Contains(Vec2{X: mouseX, Y: mouseY}) {
		return 0, false
	}
	span := sb.track.H - sb.grabH
	if span <= 0 {
		return 0, true
	}
	frac := (mouseY - sb.track.Y - sb.grabH/2) / span
	frac = min(max(frac, 0), 1)
	return int(frac*float32(t.maxScrollY) + 0.5), true
}

// Bounds returns the area used by the last Draw.
func (t *Table) Bounds() Rect { return t.bounds }

func columnWidths(columns []Column, total float32) []float32 {
	widths := make([]float32, len(columns))
	fixed := float32(0)
	flex := 0
	for i, c := range columns {
		if c.Width > 0 {
			widths[i] = c.Width
			fixed += c.Width
		} else {
			flex++
		}
	}
	if flex > 0 {
		share := max(total-fixed, 0) / float32(flex)
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

// fitText truncates s to the runes that fit in width, ending with '~' when
// something was cut.
func fitText(s string, width, charWidth float32) string {
	if charWidth <= 0 {
		return s
	}
	maxChars := int(width / charWidth)
	if maxChars <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars-1]) + "~"
}
