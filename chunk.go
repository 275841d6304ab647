package devtalk

import (
	"slices"
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultChunkSize is the number of grapheme clusters revealed per tick.
const DefaultChunkSize = 5

// Chunk splits text into fragments of size grapheme clusters. The last
// fragment may be shorter. Joining the fragments yields text unchanged.
// Grapheme clusters are never split, so emoji and combining sequences reveal
// as a whole. A non-positive size falls back to DefaultChunkSize.
func Chunk(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	var (
		chunks []string
		start  int
		end    int
		count  int
		state  = -1
		rest   = text
	)
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		end += len(cluster)
		count++
		if count == size {
			chunks = append(chunks, text[start:end])
			start, count = end, 0
		}
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}

// ChunkQueue is a FIFO of display fragments waiting to be revealed.
//
// The zero value is an empty queue. ChunkQueue is a value type: a copy taken
// before Push is not affected by it.
type ChunkQueue struct {
	chunks []string
}

// Push splits text with Chunk and appends the fragments in order. It returns
// the number of fragments appended.
func (q *ChunkQueue) Push(text string, size int) int {
	parts := Chunk(text, size)
	if len(parts) == 0 {
		return 0
	}
	// Clip so append never writes into an array shared with an older copy.
	q.chunks = append(slices.Clip(q.chunks), parts...)
	return len(parts)
}

// Pop removes and returns the oldest fragment.
func (q *ChunkQueue) Pop() (string, bool) {
	if len(q.chunks) == 0 {
		return "", false
	}
	c := q.chunks[0]
	q.chunks = q.chunks[1:]
	return c, true
}

// Clear discards all pending fragments.
func (q *ChunkQueue) Clear() {
	q.chunks = nil
}

// Len returns the number of pending fragments.
func (q ChunkQueue) Len() int { return len(q.chunks) }

// Empty reports whether no fragment is pending.
func (q ChunkQueue) Empty() bool { return len(q.chunks) == 0 }

// String returns the pending text in queue order.
func (q ChunkQueue) String() string {
	return strings.Join(q.chunks, "")
}
