// Package mapview renders the worktree/branch map as styled terminal
// boxes. The pixel layout drives ordering and grouping; box drawing is
// delegated to lipgloss.
package mapview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kijko/kijko/internal/layout"
	"github.com/kijko/kijko/internal/ui/styles"
)

// Model holds the map state.
type Model struct {
	worktrees   []layout.Worktree
	selected    int
	width       int
	showPaths   bool
	showCommits bool
}

// New creates a map view for the given worktrees.
func New(worktrees []layout.Worktree, showPaths, showCommits bool) Model {
	return Model{
		worktrees:   worktrees,
		showPaths:   showPaths,
		showCommits: showCommits,
	}
}

// SetWorktrees replaces the map contents, clamping the selection.
func (m *Model) SetWorktrees(worktrees []layout.Worktree) {
	m.worktrees = worktrees
	if m.selected >= len(worktrees) {
		m.selected = len(worktrees) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// SetWidth sets the available render width.
func (m *Model) SetWidth(width int) { m.width = width }

// MoveUp selects the previous worktree.
func (m *Model) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown selects the next worktree.
func (m *Model) MoveDown() {
	if m.selected < len(m.worktrees)-1 {
		m.selected++
	}
}

// Selected returns the currently selected worktree, or nil when the
// map is empty.
func (m Model) Selected() *layout.Worktree {
	if len(m.worktrees) == 0 {
		return nil
	}
	wt := m.worktrees[m.selected]
	return &wt
}

// Worktrees returns the current map contents.
func (m Model) Worktrees() []layout.Worktree {
	return m.worktrees
}

// View renders the map. Worktrees stack vertically, each with its
// branch column to the right, matching the diagram geometry.
func (m Model) View() string {
	if len(m.worktrees) == 0 {
		return styles.StatusBarStyle.Render("no worktrees found")
	}

	var rows []string
	for i, wt := range m.worktrees {
		row := lipgloss.JoinHorizontal(
			lipgloss.Center,
			m.renderWorktree(wt, i == m.selected),
			styles.ConnectorStyle.Render("──"),
			m.renderBranchColumn(wt.Branches),
		)
		rows = append(rows, row)
		if i < len(m.worktrees)-1 {
			rows = append(rows, styles.ConnectorStyle.Render("  │"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderWorktree(wt layout.Worktree, selected bool) string {
	var b strings.Builder
	b.WriteString(styles.WorktreeNameStyle.Render(wt.Name))
	if m.showPaths && wt.Path != "" {
		b.WriteString("\n")
		b.WriteString(styles.WorktreePathStyle.Render(wt.Path))
	}

	box := styles.WorktreeBoxStyle
	if wt.Active || selected {
		box = styles.ActiveWorktreeBoxStyle
	}
	return box.Render(b.String())
}

func (m Model) renderBranchColumn(branches []layout.Branch) string {
	if len(branches) == 0 {
		return ""
	}

	nodes := make([]string, 0, len(branches))
	for _, br := range branches {
		nodes = append(nodes, m.renderBranch(br))
	}
	return lipgloss.JoinVertical(lipgloss.Left, nodes...)
}

func (m Model) renderBranch(br layout.Branch) string {
	var b strings.Builder
	name := br.Name
	if br.IsCurrent {
		name = "* " + name
	}
	b.WriteString(name)
	if m.showCommits && br.LastCommit != "" {
		b.WriteString("\n")
		b.WriteString(styles.BranchCommitStyle.Render(truncate(br.LastCommit, 40)))
	}

	style := styles.BranchStyle
	switch {
	case br.IsCurrent:
		style = styles.CurrentBranchStyle
	case br.IsDefault:
		style = styles.DefaultBranchStyle
	}
	return style.Render(b.String())
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
