package devtalk

// Effect is a side effect requested by Step. Effects are executed by the
// caller in the order returned.
type Effect interface {
	effect()
}

// EffectOpenStream opens a generation stream for Request.
type EffectOpenStream struct {
	Request GenerateRequest
}

// EffectCloseStream releases the current stream connection.
type EffectCloseStream struct{}

// EffectArmTicker schedules the next typing tick if none is pending.
type EffectArmTicker struct{}

// EffectStopTicker cancels any pending typing tick.
type EffectStopTicker struct{}

// EffectReconcile fetches the canonical transcript of SessionID.
type EffectReconcile struct {
	SessionID string
}

// EffectReplaceTranscript replaces the displayed transcript with Messages.
type EffectReplaceTranscript struct {
	Messages []Message
}

// EffectSynthesizeReply appends a locally built AI reply to the transcript.
// MessageID is the server id of the reply when known.
type EffectSynthesizeReply struct {
	Content   string
	MessageID string
}

// EffectNotifyFailure shows a non-blocking failure notice.
type EffectNotifyFailure struct {
	Err error
}

func (EffectOpenStream) effect()        {}
func (EffectCloseStream) effect()       {}
func (EffectArmTicker) effect()         {}
func (EffectStopTicker) effect()        {}
func (EffectReconcile) effect()         {}
func (EffectReplaceTranscript) effect() {}
func (EffectSynthesizeReply) effect()   {}
func (EffectNotifyFailure) effect()     {}

// Interface compliance checks.
var (
	_ Effect = EffectOpenStream{}
	_ Effect = EffectCloseStream{}
	_ Effect = EffectArmTicker{}
	_ Effect = EffectStopTicker{}
	_ Effect = EffectReconcile{}
	_ Effect = EffectReplaceTranscript{}
	_ Effect = EffectSynthesizeReply{}
	_ Effect = EffectNotifyFailure{}
)
