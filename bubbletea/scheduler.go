package bubbletea

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
)

var schedulerIDs atomic.Uint64

// typingTickMsg is one beat of a Scheduler. id identifies the scheduler and
// gen the arming that produced it.
type typingTickMsg struct {
	id  uint64
	gen uint64
}

// Scheduler paces the reveal of queued reply fragments. At most one tick is
// outstanding at any time; Armed is the single source of truth for that.
type Scheduler struct {
	id       uint64
	interval time.Duration
	gen      uint64
	armed    bool
}

// NewScheduler creates a Scheduler firing every interval. A non-positive
// interval falls back to devtalk.DefaultTickInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = devtalk.DefaultTickInterval
	}
	return &Scheduler{id: schedulerIDs.Add(1), interval: interval}
}

// Arm returns a command delivering the next tick. It returns nil when a tick
// is already pending.
func (s *Scheduler) Arm() tea.Cmd {
	if s.armed {
		return nil
	}
	s.armed = true
	id, gen := s.id, s.gen
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return typingTickMsg{id: id, gen: gen}
	})
}

// Fire accepts a delivered tick. It reports false for ticks of another
// scheduler, ticks issued before the last Stop, and duplicates.
func (s *Scheduler) Fire(msg typingTickMsg) bool {
	if !s.armed || msg.id != s.id || msg.gen != s.gen {
		return false
	}
	s.armed = false
	return true
}

// Stop invalidates any pending tick.
func (s *Scheduler) Stop() {
	s.gen++
	s.armed = false
}

// Armed reports whether a tick is pending.
func (s *Scheduler) Armed() bool { return s.armed }
