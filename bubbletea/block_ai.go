package bubbletea

import (
	"strings"

	"github.com/devtalk/devtalk/goldmark"
)

var _ MessageBlock = (*AIMessageBlock)(nil)

// AIMessageBlock renders an AI reply with markdown formatting. It serves both
// persisted replies and the reply being revealed.
//
// Finalized paragraphs (separated by a blank line) are rendered once per
// width and cached; only the trailing text is re-rendered as it grows.
type AIMessageBlock struct {
	content  strings.Builder
	renderer *goldmark.Renderer
	styles   Styles

	failed bool
	local  bool
	cursor bool

	// finalizedRaw is the stable prefix ending at the last blank line.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewAIMessageBlock creates an empty AIMessageBlock.
func NewAIMessageBlock(renderer *goldmark.Renderer, styles Styles) *AIMessageBlock {
	return &AIMessageBlock{
		renderer:         renderer,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// Append adds revealed text.
func (b *AIMessageBlock) Append(text string) {
	b.content.WriteString(text)
	b.promoteFinalized()
}

// Sync makes the block display text. Growth of the current content is
// appended; anything else replaces it.
func (b *AIMessageBlock) Sync(text string) {
	current := b.content.String()
	if strings.HasPrefix(text, current) {
		b.Append(text[len(current):])
		return
	}
	b.content.Reset()
	b.finalizedRaw = ""
	clear(b.finalizedByWidth)
	b.Append(text)
}

// Content returns the raw markdown displayed by the block.
func (b *AIMessageBlock) Content() string { return b.content.String() }

// SetCursor shows or hides the typing cursor after the text.
func (b *AIMessageBlock) SetCursor(on bool) { b.cursor = on }

func (b *AIMessageBlock) View(width int) string {
	body := b.body(width)
	if b.cursor {
		body += b.styles.Cursor.Render("▍")
	}
	if b.failed {
		banner := b.styles.Error.Render("✗ AI reply failed")
		if body == "" {
			return banner
		}
		return banner + "\n" + body
	}
	if b.local {
		body += "\n" + b.styles.Muted.Render("(not synced)")
	}
	return body
}

func (b *AIMessageBlock) body(width int) string {
	finalizedRendered := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close the fence only for rendering so partial replies display safely.
		trailing += "\n```"
	}
	if trailing == "" {
		return finalizedRendered
	}
	trailingRendered := b.renderer.Render(trailing, width)
	if strings.TrimSpace(trailingRendered) == "" {
		return finalizedRendered
	}
	if finalizedRendered == "" {
		return trailingRendered
	}
	// Independently rendered fragments are rejoined with a single blank line
	// to match the full-document output.
	return strings.TrimRight(finalizedRendered, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
}

// promoteFinalized moves the finalized prefix to the last blank line that
// is not inside an open code fence.
func (b *AIMessageBlock) promoteFinalized() {
	raw := b.content.String()
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *AIMessageBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := b.renderer.Render(b.finalizedRaw, width)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *AIMessageBlock) trailingRaw() string {
	raw := b.content.String()
	if b.finalizedRaw == "" {
		return raw
	}
	return strings.TrimPrefix(raw, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence reports an odd number of "```" in s. Triple backticks
// inside inline code spans are miscounted.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
