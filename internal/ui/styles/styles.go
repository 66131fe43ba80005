// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Paths, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderActiveColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // Active worktree border

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Branch node colors
	BranchCurrentColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // Checked-out branch
	BranchDefaultColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#A6E3A1"} // Default branch accent

	// Diff colors
	DiffAddColor    = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffDelColor    = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	DiffHunkColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	DiffHeaderColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}

	// Worktree box styles
	WorktreeBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderDefaultColor).
				Padding(0, 1)

	ActiveWorktreeBoxStyle = WorktreeBoxStyle.
				BorderForeground(BorderActiveColor)

	WorktreeNameStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	WorktreePathStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	// Branch node styles
	BranchStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	CurrentBranchStyle = BranchStyle.
				BorderForeground(BranchCurrentColor).
				Bold(true)

	DefaultBranchStyle = BranchStyle.
				BorderForeground(BranchDefaultColor)

	BranchCommitStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Connector glyphs between worktree boxes and branch columns
	ConnectorStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Diff pane styles
	DiffAddStyle    = lipgloss.NewStyle().Foreground(DiffAddColor)
	DiffDelStyle    = lipgloss.NewStyle().Foreground(DiffDelColor)
	DiffHunkStyle   = lipgloss.NewStyle().Foreground(DiffHunkColor)
	DiffHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(DiffHeaderColor)
	DiffLangStyle   = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	// Status bar
	StatusBarStyle  = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusInfoStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusErrStyle  = lipgloss.NewStyle().Foreground(StatusErrorColor)

	// Help footer
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
