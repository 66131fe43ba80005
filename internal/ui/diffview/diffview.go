// Package diffview renders snapshot comparisons as a scrollable,
// colorized unified diff pane.
package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/kijko/kijko/internal/diff"
	"github.com/kijko/kijko/internal/ui/styles"
)

// Model holds the diff pane state.
type Model struct {
	viewport viewport.Model
	data     diff.Data
	hasData  bool
}

// New creates an empty diff pane.
func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

// SetSize resizes the pane.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	if m.hasData {
		m.viewport.SetContent(renderData(m.data))
	}
}

// SetData loads a comparison into the pane and scrolls to the top.
func (m *Model) SetData(data diff.Data) {
	m.data = data
	m.hasData = true
	m.viewport.SetContent(renderData(data))
	m.viewport.GotoTop()
}

// Clear empties the pane.
func (m *Model) Clear() {
	m.hasData = false
	m.viewport.SetContent("")
}

// HasData reports whether a comparison is loaded.
func (m Model) HasData() bool { return m.hasData }

// ScrollUp scrolls the pane up by n lines.
func (m *Model) ScrollUp(n int) { m.viewport.ScrollUp(n) }

// ScrollDown scrolls the pane down by n lines.
func (m *Model) ScrollDown(n int) { m.viewport.ScrollDown(n) }

// View renders the pane.
func (m Model) View() string {
	if !m.hasData {
		return styles.StatusBarStyle.Render("no comparison loaded - press d to diff the latest snapshots")
	}
	return m.viewport.View()
}

// renderData formats a comparison with per-file headers, language tags
// and colored hunk lines.
func renderData(data diff.Data) string {
	var b strings.Builder

	// Version zero on both sides means an unanchored diff, such as the
	// working tree against HEAD.
	source := fmt.Sprintf("v%d → v%d", data.FromVersion, data.ToVersion)
	if data.FromVersion == 0 && data.ToVersion == 0 {
		source = "working tree"
	}
	summary := fmt.Sprintf("%s  %d files  +%d -%d",
		source, len(data.Files),
		data.TotalAdditions(), data.TotalDeletions())
	b.WriteString(styles.DiffHeaderStyle.Render(summary))
	b.WriteString("\n\n")

	for _, f := range data.Files {
		b.WriteString(renderFile(f))
		b.WriteString("\n")
	}

	return b.String()
}

func renderFile(f diff.File) string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s", statusGlyph(f.Status), f.Path)
	b.WriteString(styles.DiffHeaderStyle.Render(header))
	b.WriteString(" ")
	b.WriteString(styles.DiffLangStyle.Render(diff.DetectLanguage(f.Path)))
	b.WriteString("\n")

	for _, h := range f.Hunks {
		b.WriteString(styles.DiffHunkStyle.Render(
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)))
		b.WriteString("\n")
		for _, line := range h.Lines {
			b.WriteString(renderLine(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderLine(line diff.Line) string {
	switch line.Type {
	case diff.LineAddition:
		return styles.DiffAddStyle.Render("+" + line.Content)
	case diff.LineDeletion:
		return styles.DiffDelStyle.Render("-" + line.Content)
	default:
		return " " + line.Content
	}
}

func statusGlyph(s diff.Status) string {
	switch s {
	case diff.StatusAdded:
		return "A"
	case diff.StatusRemoved:
		return "D"
	default:
		return "M"
	}
}
