package devtalk

// ScrollState is the auto-scroll policy of a transcript view. Offsets and
// the threshold are measured in terminal rows; bottom is the offset at which
// the newest line is visible.
//
// While pinned, content growth keeps the view at the bottom. A user who
// scrolls up to read is left alone until they scroll back near the bottom or
// jump there explicitly.
type ScrollState struct {
	Pinned    bool
	Offset    int
	Threshold int
}

// NewScrollState returns a pinned state. A negative threshold is treated as
// zero.
func NewScrollState(threshold int) ScrollState {
	return ScrollState{Pinned: true, Threshold: max(threshold, 0)}
}

// Grow records that content grew so the bottom is now at bottom.
func (s ScrollState) Grow(bottom int) ScrollState {
	if s.Pinned {
		s.Offset = max(bottom, 0)
	}
	return s
}

// UserScroll records a user scroll gesture that ended at offset. Scrolling
// up unpins. Scrolling down, or staying put, within Threshold rows of bottom
// re-pins.
func (s ScrollState) UserScroll(offset, bottom int) ScrollState {
	switch {
	case offset < s.Offset:
		s.Pinned = false
	case bottom-offset <= s.Threshold:
		s.Pinned = true
	}
	s.Offset = offset
	return s
}

// JumpToBottom re-pins and moves to bottom.
func (s ScrollState) JumpToBottom(bottom int) ScrollState {
	s.Pinned = true
	s.Offset = max(bottom, 0)
	return s
}

// Reset returns a pinned state at the top, for a freshly opened session.
func (s ScrollState) Reset() ScrollState {
	return NewScrollState(s.Threshold)
}
