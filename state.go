package devtalk

// Phase is the lifecycle stage of a reply stream.
type Phase int

const (
	// PhaseIdle means no stream has been opened.
	PhaseIdle Phase = iota
	// PhaseAwaitingFirstByte means the stream is open but has not started.
	PhaseAwaitingFirstByte
	// PhaseStreaming means deltas are arriving.
	PhaseStreaming
	// PhaseDraining means the server is done and queued chunks are still
	// being revealed.
	PhaseDraining
	// PhaseFinalizing means the queue is empty and the canonical transcript
	// is being fetched.
	PhaseFinalizing
	// PhaseCompleted means the reply was reconciled or kept locally.
	PhaseCompleted
	// PhaseCancelled means the user stopped the stream.
	PhaseCancelled
	// PhaseFailed means the stream failed.
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseIdle:              "idle",
	PhaseAwaitingFirstByte: "awaiting-first-byte",
	PhaseStreaming:         "streaming",
	PhaseDraining:          "draining",
	PhaseFinalizing:        "finalizing",
	PhaseCompleted:         "completed",
	PhaseCancelled:         "cancelled",
	PhaseFailed:            "failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Live reports whether a stream in this phase still owns resources or
// pending work and can be cancelled.
func (p Phase) Live() bool {
	switch p {
	case PhaseAwaitingFirstByte, PhaseStreaming, PhaseDraining, PhaseFinalizing:
		return true
	}
	return false
}

// Terminal reports whether the phase is a final one.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseCompleted, PhaseCancelled, PhaseFailed:
		return true
	}
	return false
}

// StreamState is the state of one reply stream in a chat view. It is a plain
// value advanced only by Step.
type StreamState struct {
	// Seq is the generation of the stream. It increases on every open so
	// results addressed to an earlier stream can be recognized.
	Seq uint64

	Phase           Phase
	SessionID       string
	TargetMessageID string

	// Buffer is the text revealed so far. It grows only by chunks popped
	// from Pending.
	Buffer  string
	Pending ChunkQueue

	// ChunkSize is the reveal granularity in grapheme clusters.
	ChunkSize int

	// Done is the server's done payload, set once the done event arrives.
	Done *Done

	// Err is the failure cause when Phase is PhaseFailed.
	Err error
}
