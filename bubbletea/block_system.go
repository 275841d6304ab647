package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ MessageBlock = (*SystemMessageBlock)(nil)

// SystemMessageBlock renders a service notice, such as a resolve toggle.
type SystemMessageBlock struct {
	text   string
	styles Styles
}

// NewSystemMessageBlock creates a SystemMessageBlock.
func NewSystemMessageBlock(text string, styles Styles) *SystemMessageBlock {
	return &SystemMessageBlock{text: text, styles: styles}
}

func (b *SystemMessageBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Render(b.styles.System.Render("· " + b.text))
}
