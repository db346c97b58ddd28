package view

// Screen geometry shared by the renderer and the controller's mouse
// hit-testing. Every panel is a bordered box whose first inner row is its
// title; list rows start on the row below.

const (
	headerHeight  = 3
	footerHeight  = 4
	detailsHeight = 11

	minLeftWidth = 24
	leftPercent  = 35

	modalHeight   = 11
	modalMinWidth = 30
	modalPercent  = 60
	buttonHeight  = 3
	titleRows     = 1

	// MinWidth and MinHeight are the smallest terminal the dashboard draws in.
	MinWidth  = 50
	MinHeight = 18
)

// Rect is a cell rectangle with its origin at the top-left.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inner is r without its one-cell border.
func (r Rect) Inner() Rect {
	in := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	if in.W < 0 {
		in.W = 0
	}
	if in.H < 0 {
		in.H = 0
	}
	return in
}

// content is the inner area below the title row.
func (r Rect) content() Rect {
	in := r.Inner()
	in.Y += titleRows
	in.H -= titleRows
	if in.H < 0 {
		in.H = 0
	}
	return in
}

// Layout is the geometry of one frame.
type Layout struct {
	Width, Height int

	Header  Rect
	Jails   Rect
	Details Rect
	Bans    Rect
	Footer  Rect

	// JailsContent and BansContent are the list row areas.
	JailsContent Rect
	BansContent  Rect

	Modal         Rect
	ConfirmButton Rect
	CancelButton  Rect
}

// TooSmall reports whether the terminal is below the drawable minimum.
func (l Layout) TooSmall() bool {
	return l.Width < MinWidth || l.Height < MinHeight
}

// ComputeLayout splits a width x height terminal into panels.
func ComputeLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}

	l.Header = Rect{X: 0, Y: 0, W: width, H: headerHeight}
	l.Footer = Rect{X: 0, Y: height - footerHeight, W: width, H: footerHeight}

	bodyY := headerHeight
	bodyH := height - headerHeight - footerHeight
	if bodyH < 0 {
		bodyH = 0
	}

	leftW := width * leftPercent / 100
	if leftW < minLeftWidth {
		leftW = minLeftWidth
	}
	if leftW > width {
		leftW = width
	}

	detailsH := detailsHeight
	if bodyH < 2*detailsHeight {
		detailsH = bodyH / 2
	}
	jailsH := bodyH - detailsH

	l.Jails = Rect{X: 0, Y: bodyY, W: leftW, H: jailsH}
	l.Details = Rect{X: 0, Y: bodyY + jailsH, W: leftW, H: detailsH}
	l.Bans = Rect{X: leftW, Y: bodyY, W: width - leftW, H: bodyH}
	l.JailsContent = l.Jails.content()
	l.BansContent = l.Bans.content()

	modalW := width * modalPercent / 100
	if modalW < modalMinWidth {
		modalW = modalMinWidth
	}
	if modalW > width {
		modalW = width
	}
	modalH := modalHeight
	if modalH > height {
		modalH = height
	}
	l.Modal = Rect{X: (width - modalW) / 2, Y: (height - modalH) / 2, W: modalW, H: modalH}

	inner := l.Modal.Inner()
	buttonsY := inner.Y + inner.H - buttonHeight
	half := inner.W / 2
	l.ConfirmButton = Rect{X: inner.X, Y: buttonsY, W: half, H: buttonHeight}
	l.CancelButton = Rect{X: inner.X + half, Y: buttonsY, W: inner.W - half, H: buttonHeight}

	return l
}

// ListOffset is the first visible index of a list of which row selected
// must be visible in a window of visible rows.
func ListOffset(selected, visible int) int {
	if visible <= 0 || selected < visible {
		return 0
	}
	return selected - visible + 1
}

// RowAt maps a press at screen row y inside area to a list index, given the
// selected index that determines scrolling. ok is false outside the list.
func RowAt(area Rect, y, selected, length int) (int, bool) {
	if y < area.Y || y >= area.Y+area.H {
		return 0, false
	}
	idx := ListOffset(selected, area.H) + (y - area.Y)
	if idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}
