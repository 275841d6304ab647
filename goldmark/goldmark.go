// Package goldmark renders chat replies written in markdown to ANSI-styled
// terminal output using goldmark for parsing and lipgloss for styling.
package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devtalk/devtalk"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// defaultWidth is used when the caller has no width yet.
const defaultWidth = 80

// Renderer renders markdown with a fixed theme. It is safe for concurrent
// use.
type Renderer struct {
	parser parser.Parser
	styles styles
}

type styles struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	strike    lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
	code      lipgloss.Style
}

// New creates a [Renderer] using theme colors.
func New(theme devtalk.Theme) *Renderer {
	md := goldmark.New(goldmark.WithExtensions(
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	))
	return &Renderer{
		parser: md.Parser(),
		styles: styles{
			bold:      lipgloss.NewStyle().Bold(true),
			italic:    lipgloss.NewStyle().Italic(true),
			strike:    lipgloss.NewStyle().Strikethrough(true),
			heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
			muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
			underline: lipgloss.NewStyle().Underline(true),
			code:      lipgloss.NewStyle().Foreground(ansiColor(theme.AI)).Background(ansiColor(theme.CodeBg)),
		},
	}
}

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// keep their lines as written.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	src := []byte(source)
	doc := r.parser.Parse(text.NewReader(src))
	w := &writer{styles: &r.styles, src: src}
	return strings.TrimRight(w.blocks(doc, width), "\n")
}

// Render is a convenience wrapper around New(theme).Render.
func Render(source string, width int, theme devtalk.Theme) string {
	return New(theme).Render(source, width)
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
