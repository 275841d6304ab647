package goldmark

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// minWrapWidth keeps deeply nested content readable on narrow terminals.
const minWrapWidth = 10

// writer renders one parsed document.
type writer struct {
	styles *styles
	src    []byte
}

// blocks renders the block children of node separated by blank lines.
func (w *writer) blocks(node ast.Node, width int) string {
	var parts []string
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if s := w.block(c, width); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (w *writer) block(node ast.Node, width int) string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(w.inlines(n), width)
	case *ast.Heading:
		return wrap(w.styles.heading.Render(w.inlines(n)), width)
	case *ast.FencedCodeBlock:
		return w.code(n, string(n.Language(w.src)))
	case *ast.CodeBlock:
		return w.code(n, "")
	case *ast.Blockquote:
		return w.quote(n, width)
	case *ast.List:
		return w.list(n, width, 0)
	case *ast.ThematicBreak:
		return w.styles.muted.Render(strings.Repeat("─", min(width, 40)))
	case *ast.HTMLBlock:
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(w.src))
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		return w.blocks(node, width)
	}
}

// code renders a code block line by line behind a gutter, without reflow.
func (w *writer) code(n ast.Node, lang string) string {
	var out []string
	if lang != "" {
		out = append(out, w.styles.muted.Render(lang))
	}
	gutter := w.styles.muted.Render("│") + " "
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(w.src)), "\r\n")
		out = append(out, gutter+w.styles.code.Render(line))
	}
	return strings.Join(out, "\n")
}

func (w *writer) quote(n *ast.Blockquote, width int) string {
	inner := w.blocks(n, max(width-2, minWrapWidth))
	bar := w.styles.muted.Render("▌") + " "
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = bar + line
	}
	return strings.Join(lines, "\n")
}

func (w *writer) list(n *ast.List, width, depth int) string {
	var out []string
	indent := strings.Repeat("  ", depth)
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if n.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		prefix := indent + marker
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if sub, ok := ic.(*ast.List); ok {
				out = append(out, w.list(sub, width, depth+1))
				continue
			}
			content := w.block(ic, max(width-lipgloss.Width(prefix), minWrapWidth))
			out = append(out, hang(prefix, content))
			// Only the first block of an item carries the marker.
			prefix = strings.Repeat(" ", lipgloss.Width(prefix))
		}
	}
	return strings.Join(out, "\n")
}

// hang prefixes the first line with prefix and indents the rest to match.
func hang(prefix, content string) string {
	pad := strings.Repeat(" ", lipgloss.Width(prefix))
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + line
		} else {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// inlines renders the inline children of node.
func (w *writer) inlines(node ast.Node) string {
	var b strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		w.inline(c, &b)
	}
	return b.String()
}

func (w *writer) inline(node ast.Node, b *strings.Builder) {
	switch n := node.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(w.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level == 1 {
			b.WriteString(w.styles.italic.Render(w.inlines(n)))
		} else {
			b.WriteString(w.styles.bold.Render(w.inlines(n)))
		}
	case *extast.Strikethrough:
		b.WriteString(w.styles.strike.Render(w.inlines(n)))
	case *ast.CodeSpan:
		b.WriteString(w.styles.code.Render(w.inlines(n)))
	case *ast.Link:
		label := w.inlines(n)
		dest := string(n.Destination)
		b.WriteString(w.styles.underline.Render(label))
		if dest != "" && dest != label {
			b.WriteString(" " + w.styles.muted.Render("("+dest+")"))
		}
	case *ast.AutoLink:
		b.WriteString(w.styles.underline.Render(string(n.URL(w.src))))
	case *ast.Image:
		b.WriteString(w.styles.underline.Render(w.inlines(n)))
		b.WriteString(" " + w.styles.muted.Render("("+string(n.Destination)+")"))
	case *extast.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.src))
		}
	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.inline(c, b)
		}
	}
}
