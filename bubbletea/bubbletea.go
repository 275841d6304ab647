// Package bubbletea provides the Bubble Tea TUI of the DevTalk client: the
// session list, the chat view and the controller that reveals streamed AI
// replies.
package bubbletea

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
)

// Options holds the services and settings shared by the TUI models.
type Options struct {
	Sessions   devtalk.SessionService
	Transcript devtalk.TranscriptService
	Generator  devtalk.Generator
	Config     devtalk.Config
	Theme      devtalk.Theme
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Config == (devtalk.Config{}) {
		o.Config = devtalk.DefaultConfig()
	}
	if o.Config.RequestTimeout <= 0 {
		o.Config.RequestTimeout = devtalk.DefaultRequestTimeout
	}
	if o.Theme == (devtalk.Theme{}) {
		o.Theme = devtalk.DefaultTheme()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled the program quits. A final model that
// implements io.Closer is closed so no stream outlives the program.
func Run(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if c, ok := final.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
