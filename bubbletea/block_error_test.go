package bubbletea_test

import (
	"errors"
	"testing"

	"github.com/devtalk/devtalk"
	bt "github.com/devtalk/devtalk/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestErrorBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(devtalk.DefaultTheme())
	block := bt.NewErrorBlock("AI reply failed", errors.New("something broke"), styles)

	assert.Contains(t, block.View(80), "AI reply failed: something broke")
}

func TestSystemMessageBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(devtalk.DefaultTheme())
	block := bt.NewSystemMessageBlock("Session marked as resolved", styles)

	assert.Contains(t, block.View(80), "· Session marked as resolved")
}

func TestBlockSeparator(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(devtalk.DefaultTheme())
	system := bt.NewSystemMessageBlock("resolved", styles)
	user := bt.NewUserMessageBlock(devtalk.Message{Content: "hi"}, styles)
	ai := newAIBlock()

	tests := []struct {
		name       string
		prev, curr bt.MessageBlock
		want       string
	}{
		{"system then system", system, system, "\n"},
		{"user then ai", user, ai, "\n\n"},
		{"system then user", system, user, "\n\n"},
		{"ai then system", ai, system, "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bt.BlockSeparator(tt.prev, tt.curr))
		})
	}
}
