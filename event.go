package devtalk

// Input is a sealed interface for everything that can drive a StreamState
// transition: stream events, scheduler ticks, user actions and reconciliation
// results. The unexported marker method prevents external implementations.
type Input interface {
	input()
}

// Event is the subset of inputs produced by a generation stream.
type Event interface {
	Input
	event()
}

// EventStart signals that the generator accepted the request.
type EventStart struct{}

func (EventStart) input() {}
func (EventStart) event() {}

// EventDelta carries a text fragment to append to the reply.
type EventDelta struct {
	Text string
}

func (EventDelta) input() {}
func (EventDelta) event() {}

// EventDone signals that the generator produced its last delta.
type EventDone struct {
	Done Done
}

func (EventDone) input() {}
func (EventDone) event() {}

// EventError signals a transport or generator failure.
type EventError struct {
	Err error
}

func (EventError) input() {}
func (EventError) event() {}

// InputOpen requests a new stream replying to TargetMessageID.
type InputOpen struct {
	SessionID       string
	TargetMessageID string
	ChunkSize       int
}

func (InputOpen) input() {}

// InputTick is one beat of the typing scheduler.
type InputTick struct{}

func (InputTick) input() {}

// InputCancel is the user's stop action.
type InputCancel struct{}

func (InputCancel) input() {}

// InputReconciled carries the canonical transcript fetched after a stream.
type InputReconciled struct {
	Messages []Message
}

func (InputReconciled) input() {}

// InputReconcileFailed reports that the canonical transcript fetch failed.
type InputReconcileFailed struct {
	Err error
}

func (InputReconcileFailed) input() {}

// Interface compliance checks.
var (
	_ Event = EventStart{}
	_ Event = EventDelta{}
	_ Event = EventDone{}
	_ Event = EventError{}

	_ Input = InputOpen{}
	_ Input = InputTick{}
	_ Input = InputCancel{}
	_ Input = InputReconciled{}
	_ Input = InputReconcileFailed{}
)
