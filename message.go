package devtalk

import "time"

// Status is the delivery status of a persisted message.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Marker is an optional user-assigned tag on a message.
type Marker string

const (
	MarkerNone     Marker = ""
	MarkerQuestion Marker = "QUESTION"
	MarkerInsight  Marker = "INSIGHT"
	MarkerAttempt  Marker = "ATTEMPT"
	MarkerKeyPoint Marker = "KEY_POINT"
	MarkerRef      Marker = "REFERENCE"
)

// Message is a single entry of a session transcript. Messages are owned by the
// transcript service; the client only ever adds Local ones, synthesized from a
// partially streamed reply.
type Message struct {
	ID        string
	Role      Role
	Status    Status
	Content   string
	Marker    Marker
	CreatedAt time.Time

	// Local is true for messages the client synthesized itself. They are
	// dropped by the next reconciliation.
	Local bool
}

// Failed reports whether the message is a failed AI reply.
func (m Message) Failed() bool {
	return m.Status == StatusFailed
}
