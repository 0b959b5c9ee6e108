package views

// Scroller keeps a cursor inside a window of rows that slides as the cursor moves
type Scroller struct {
	height int
	offset int
	cursor int
	total  int
}

// NewScroller creates a scroller showing height rows at a time
func NewScroller(height int) *Scroller {
	if height <= 0 {
		height = 10
	}
	return &Scroller{height: height}
}

// SetHeight changes the number of visible rows
func (s *Scroller) SetHeight(height int) {
	if height <= 0 {
		height = 1
	}
	s.height = height
	s.follow()
}

// SetTotal sets the number of rows and clamps the cursor
func (s *Scroller) SetTotal(total int) {
	s.total = total
	s.SetCursor(s.cursor)
}

// Cursor returns the absolute cursor position
func (s *Scroller) Cursor() int {
	return s.cursor
}

// SetCursor moves the cursor, clamped to the rows
func (s *Scroller) SetCursor(pos int) {
	s.cursor = max(0, min(pos, s.total-1))
	s.follow()
}

// Move shifts the cursor by delta rows and reports whether it moved
func (s *Scroller) Move(delta int) bool {
	before := s.cursor
	s.SetCursor(s.cursor + delta)
	return s.cursor != before
}

// PageDown moves the cursor one window down
func (s *Scroller) PageDown() bool {
	return s.Move(s.height)
}

// PageUp moves the cursor one window up
func (s *Scroller) PageUp() bool {
	return s.Move(-s.height)
}

// VisibleRange returns the start and end indices of the rows on screen
func (s *Scroller) VisibleRange() (start, end int) {
	return s.offset, min(s.offset+s.height, s.total)
}

// follow slides the window so the cursor stays visible
func (s *Scroller) follow() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.height {
		s.offset = s.cursor - s.height + 1
	}
	s.offset = max(0, min(s.offset, s.total-s.height))
}
