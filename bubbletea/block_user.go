package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devtalk/devtalk"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message with a "> " prefix and its marker,
// if any.
type UserMessageBlock struct {
	text   string
	marker devtalk.Marker
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(msg devtalk.Message, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: msg.Content, marker: msg.Marker, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	content := b.styles.User.Render("> ") + b.text
	if b.marker != devtalk.MarkerNone {
		content += " " + b.styles.Muted.Render("["+strings.ToLower(string(b.marker))+"]")
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
