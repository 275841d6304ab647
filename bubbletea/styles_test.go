package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/devtalk/devtalk"
	bt "github.com/devtalk/devtalk/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(devtalk.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.User.GetForeground())
	assert.True(t, styles.User.GetBold())

	assert.Equal(t, lipgloss.Color("6"), styles.AI.GetForeground())
	assert.True(t, styles.AI.GetBold())

	assert.Equal(t, lipgloss.Color("3"), styles.System.GetForeground())
	assert.True(t, styles.System.GetItalic())

	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), styles.Success.GetForeground())

	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())

	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
	assert.True(t, styles.Accent.GetBold())
	assert.Equal(t, lipgloss.Color("5"), styles.Header.GetForeground())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(devtalk.Theme{User: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.User.GetForeground())
}
