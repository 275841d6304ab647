package bubbletea

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
)

// controllerIDs numbers controllers. Seq restarts at 1 in every controller,
// so messages carry the controller id too.
var controllerIDs atomic.Uint64

// streamEventMsg delivers a stream event tagged with the controller and the
// Seq of the stream that produced it.
type streamEventMsg struct {
	ctrl  uint64
	seq   uint64
	event devtalk.Event
}

// reconcileMsg carries the result of the post-stream transcript fetch.
type reconcileMsg struct {
	ctrl     uint64
	seq      uint64
	messages []devtalk.Message
	err      error
}

// Controller drives one chat view's reply streams. It feeds inputs through
// devtalk.Step and runs the resulting effects: the stream connection, the
// typing scheduler and the reconciliation fetch. Effects that change what is
// displayed are handed back to the caller.
//
// A Controller is used from the Bubble Tea update loop only and needs no
// locking.
type Controller struct {
	id             uint64
	generator      devtalk.Generator
	transcript     devtalk.TranscriptService
	logger         *slog.Logger
	chunkSize      int
	requestTimeout time.Duration

	state     devtalk.StreamState
	scheduler *Scheduler
	handle    devtalk.StreamHandle
	sink      *streamSink
}

// NewController creates a Controller using cfg for pacing and timeouts.
func NewController(gen devtalk.Generator, transcript devtalk.TranscriptService, cfg devtalk.Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = devtalk.DefaultRequestTimeout
	}
	return &Controller{
		id:             controllerIDs.Add(1),
		generator:      gen,
		transcript:     transcript,
		logger:         logger,
		chunkSize:      cfg.ChunkSize,
		requestTimeout: timeout,
		scheduler:      NewScheduler(cfg.TickInterval),
	}
}

// State returns the current stream state.
func (c *Controller) State() devtalk.StreamState { return c.state }

// Open starts streaming the reply to the persisted message replyTo. It is
// ignored while a stream is live.
func (c *Controller) Open(sessionID, replyTo string) (tea.Cmd, []devtalk.Effect) {
	return c.apply(devtalk.InputOpen{
		SessionID:       sessionID,
		TargetMessageID: replyTo,
		ChunkSize:       c.chunkSize,
	})
}

// Cancel stops the live stream, keeping what has been revealed so far.
func (c *Controller) Cancel() (tea.Cmd, []devtalk.Effect) {
	return c.apply(devtalk.InputCancel{})
}

// Update applies one of the controller's own messages. ok is false when msg
// belongs to someone else.
func (c *Controller) Update(msg tea.Msg) (cmd tea.Cmd, view []devtalk.Effect, ok bool) {
	switch msg := msg.(type) {
	case streamEventMsg:
		if msg.ctrl != c.id || msg.seq != c.state.Seq || c.sink == nil {
			c.logger.Debug("dropping stale stream event", "seq", msg.seq, "current", c.state.Seq)
			return nil, nil, true
		}
		cmd, view = c.apply(msg.event)
		if c.sink != nil {
			cmd = tea.Batch(cmd, c.sink.listen())
		}
		return cmd, view, true

	case typingTickMsg:
		if !c.scheduler.Fire(msg) {
			return nil, nil, true
		}
		cmd, view = c.apply(devtalk.InputTick{})
		return cmd, view, true

	case reconcileMsg:
		if msg.ctrl != c.id || msg.seq != c.state.Seq {
			return nil, nil, true
		}
		if msg.err != nil {
			c.logger.Warn("transcript reconciliation failed", "session", c.state.SessionID, "error", msg.err)
			cmd, view = c.apply(devtalk.InputReconcileFailed{Err: msg.err})
			return cmd, view, true
		}
		cmd, view = c.apply(devtalk.InputReconciled{Messages: msg.messages})
		return cmd, view, true
	}
	return nil, nil, false
}

// Close cancels a live stream and releases its resources. Display effects
// are discarded.
func (c *Controller) Close() {
	c.apply(devtalk.InputCancel{})
	c.closeStream()
	c.scheduler.Stop()
}

func (c *Controller) apply(in devtalk.Input) (tea.Cmd, []devtalk.Effect) {
	prev := c.state.Phase
	next, effects := devtalk.Step(c.state, in)
	c.state = next
	if next.Phase != prev {
		c.logger.Debug("stream phase", "from", prev, "to", next.Phase, "seq", next.Seq)
	}

	var cmds []tea.Cmd
	var view []devtalk.Effect
	for _, e := range effects {
		switch e := e.(type) {
		case devtalk.EffectOpenStream:
			cmds = append(cmds, c.openStream(e.Request))
		case devtalk.EffectCloseStream:
			c.closeStream()
		case devtalk.EffectArmTicker:
			cmds = append(cmds, c.scheduler.Arm())
		case devtalk.EffectStopTicker:
			c.scheduler.Stop()
		case devtalk.EffectReconcile:
			cmds = append(cmds, c.reconcile(e.SessionID))
		default:
			view = append(view, e)
		}
	}
	return tea.Batch(cmds...), view
}

func (c *Controller) openStream(req devtalk.GenerateRequest) tea.Cmd {
	c.closeStream()
	c.logger.Debug("opening stream", "session", req.SessionID, "replyTo", req.ReplyTo, "seq", c.state.Seq)
	c.sink = newStreamSink(c.id, c.state.Seq)
	c.handle = c.generator.Open(req, devtalk.EventFunc(c.sink.send))
	return c.sink.listen()
}

// closeStream stops the sink before closing the handle: the stream may be
// blocked delivering an event, and Close waits for that delivery.
func (c *Controller) closeStream() {
	if c.sink != nil {
		c.sink.stop()
		c.sink = nil
	}
	if c.handle != nil {
		if err := c.handle.Close(); err != nil {
			c.logger.Warn("closing stream", "error", err)
		}
		c.handle = nil
		c.logger.Debug("stream closed", "seq", c.state.Seq)
	}
}

func (c *Controller) reconcile(sessionID string) tea.Cmd {
	id, seq := c.id, c.state.Seq
	transcript := c.transcript
	timeout := c.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		messages, err := transcript.ListMessages(ctx, sessionID)
		return reconcileMsg{ctrl: id, seq: seq, messages: messages, err: err}
	}
}

// streamSink moves events from the stream goroutine into the update loop.
type streamSink struct {
	ctrl   uint64
	seq    uint64
	events chan devtalk.Event
	quit   chan struct{}
	once   sync.Once
}

func newStreamSink(ctrl, seq uint64) *streamSink {
	return &streamSink{
		ctrl:   ctrl,
		seq:    seq,
		events: make(chan devtalk.Event, 64),
		quit:   make(chan struct{}),
	}
}

func (s *streamSink) send(e devtalk.Event) {
	select {
	case s.events <- e:
	case <-s.quit:
	}
}

func (s *streamSink) stop() {
	s.once.Do(func() { close(s.quit) })
}

// listen waits for the next event. It yields nil once the sink is stopped.
func (s *streamSink) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-s.events:
			return streamEventMsg{ctrl: s.ctrl, seq: s.seq, event: e}
		case <-s.quit:
			return nil
		}
	}
}
