package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/devtalk/devtalk"
	bt "github.com/devtalk/devtalk/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(devtalk.DefaultTheme())

	t.Run("renders text with prompt prefix", func(t *testing.T) {
		t.Parallel()
		block := bt.NewUserMessageBlock(devtalk.Message{Content: "hello world"}, styles)
		assert.Contains(t, block.View(80), "> hello world")
	})

	t.Run("pads each line to full width", func(t *testing.T) {
		t.Parallel()
		block := bt.NewUserMessageBlock(devtalk.Message{Content: "test"}, styles)
		for _, line := range strings.Split(block.View(40), "\n") {
			assert.Equal(t, 40, lipgloss.Width(line))
		}
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		block := bt.NewUserMessageBlock(devtalk.Message{
			Content: "short words that keep going and going beyond the viewport width easily",
		}, styles)
		view := block.View(30)
		assert.Contains(t, view, "easily")
		assert.Greater(t, len(strings.Split(view, "\n")), 1)
	})

	t.Run("shows marker", func(t *testing.T) {
		t.Parallel()
		block := bt.NewUserMessageBlock(devtalk.Message{Content: "why?", Marker: devtalk.MarkerQuestion}, styles)
		assert.Contains(t, block.View(80), "[question]")
	})
}
