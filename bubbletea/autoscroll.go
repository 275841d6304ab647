package bubbletea

import "github.com/charmbracelet/bubbles/viewport"

// bottomOffset is the viewport offset at which the last line is visible.
func bottomOffset(vp viewport.Model) int {
	return max(vp.TotalLineCount()-vp.Height, 0)
}

// refresh re-renders the transcript and applies the auto-scroll policy to
// the new content height.
func (m Chat) refresh() Chat {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	m.scroll = m.scroll.Grow(bottomOffset(m.Viewport))
	if m.scroll.Pinned {
		m.Viewport.GotoBottom()
	} else {
		// The viewport clamps its offset when content shrinks.
		m.scroll.Offset = m.Viewport.YOffset
	}
	return m
}

// userScrolled records a scroll gesture the viewport has already applied.
func (m Chat) userScrolled() Chat {
	m.scroll = m.scroll.UserScroll(m.Viewport.YOffset, bottomOffset(m.Viewport))
	return m
}

func (m Chat) jumpToBottom() Chat {
	if !m.ready {
		return m
	}
	m.Viewport.GotoBottom()
	m.scroll = m.scroll.JumpToBottom(bottomOffset(m.Viewport))
	return m
}
