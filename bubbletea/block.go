package bubbletea

import (
	"github.com/devtalk/devtalk"
	"github.com/devtalk/devtalk/goldmark"
)

// MessageBlock is a renderable element in the transcript.
// View takes a width parameter so the chat model controls layout and blocks
// are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// blockFor builds the block displaying a transcript message.
func blockFor(msg devtalk.Message, md *goldmark.Renderer, styles Styles) MessageBlock {
	switch msg.Role {
	case devtalk.RoleUser:
		return NewUserMessageBlock(msg, styles)
	case devtalk.RoleSystem:
		return NewSystemMessageBlock(msg.Content, styles)
	default:
		b := NewAIMessageBlock(md, styles)
		b.Append(msg.Content)
		b.failed = msg.Failed()
		b.local = msg.Local
		return b
	}
}

// blockSeparator returns the spacing between two consecutive blocks.
// Consecutive system notices stay together; everything else is separated by
// a blank line.
func blockSeparator(prev, curr MessageBlock) string {
	_, prevSystem := prev.(*SystemMessageBlock)
	_, currSystem := curr.(*SystemMessageBlock)
	if prevSystem && currSystem {
		return "\n"
	}
	return "\n\n"
}
