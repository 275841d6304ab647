package bubbletea

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders a non-blocking failure notice.
type ErrorBlock struct {
	title  string
	err    error
	styles Styles
}

// NewErrorBlock creates an ErrorBlock rendered as "title: err".
func NewErrorBlock(title string, err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{title: title, err: err, styles: styles}
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Error.Render(fmt.Sprintf("%s: %v", b.title, b.err))
	return lipgloss.NewStyle().Width(width).Render(content)
}
