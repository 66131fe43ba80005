package testutil

import (
	"fmt"

	"github.com/kijko/kijko/internal/layout"
)

// WorktreeBuilder accumulates worktree fixtures for layout and UI tests.
type WorktreeBuilder struct {
	worktrees []layout.Worktree
}

// NewWorktreeBuilder creates an empty builder.
func NewWorktreeBuilder() *WorktreeBuilder {
	return &WorktreeBuilder{}
}

// WithWorktree appends a worktree; the first one added is active.
func (b *WorktreeBuilder) WithWorktree(name string, branches ...string) *WorktreeBuilder {
	wt := layout.Worktree{
		ID:     fmt.Sprintf("wt-%d", len(b.worktrees)+1),
		Name:   name,
		Path:   "/tmp/" + name,
		Active: len(b.worktrees) == 0,
	}
	for i, branch := range branches {
		wt.Branches = append(wt.Branches, layout.Branch{
			Name:      branch,
			IsCurrent: i == 0,
		})
	}
	b.worktrees = append(b.worktrees, wt)
	return b
}

// Build returns the accumulated worktrees.
func (b *WorktreeBuilder) Build() []layout.Worktree {
	return b.worktrees
}
