package git

import (
	"fmt"
	"path/filepath"

	"github.com/kijko/kijko/internal/layout"
	"github.com/kijko/kijko/internal/log"
)

// CollectWorktrees gathers the repository's worktrees and their
// branches into the layout engine's input form. The main working tree
// keeps the entry order git reports, main tree first. Worktrees with
// unreadable branch lists are kept with an empty branch column rather
// than dropped, so the map still shows them.
func CollectWorktrees(exec Executor) ([]layout.Worktree, error) {
	if !exec.IsGitRepo() {
		return nil, ErrNotGitRepo
	}

	infos, err := exec.ListWorktrees()
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}

	defaultBranch, err := exec.DefaultBranch()
	if err != nil {
		defaultBranch = "main"
	}

	worktrees := make([]layout.Worktree, 0, len(infos))
	for i, info := range infos {
		wt := layout.Worktree{
			ID:     info.Path,
			Name:   filepath.Base(info.Path),
			Path:   info.Path,
			Active: i == 0,
		}

		branches, err := exec.ListBranches(info.Path)
		if err != nil {
			log.Warn(log.CatGit, "skipping branches for worktree", "path", info.Path, "error", err)
		}
		for _, b := range branchesFor(info, branches, i == 0) {
			wt.Branches = append(wt.Branches, layout.Branch{
				Name:       b.Name,
				IsCurrent:  b.IsCurrent,
				IsDefault:  b.Name == defaultBranch,
				LastCommit: b.CommitSubject,
			})
		}

		worktrees = append(worktrees, wt)
	}

	return worktrees, nil
}

// branchesFor picks the branches shown next to a worktree. The main
// working tree carries the full local branch list; a linked worktree
// shows only its checked-out branch, since the other branches already
// appear on the main tree.
func branchesFor(info WorktreeInfo, branches []BranchInfo, isMain bool) []BranchInfo {
	if isMain {
		return branches
	}
	if info.Detached || info.Branch == "" {
		return nil
	}
	for _, b := range branches {
		if b.Name == info.Branch {
			b.IsCurrent = true
			return []BranchInfo{b}
		}
	}
	return []BranchInfo{{Name: info.Branch, IsCurrent: true}}
}
