package git

// WorktreeInfo describes one entry of `git worktree list`.
type WorktreeInfo struct {
	Path     string
	Branch   string // empty when HEAD is detached
	HEAD     string
	Bare     bool
	Detached bool
}

// BranchInfo describes a local branch within a worktree.
type BranchInfo struct {
	Name          string
	IsCurrent     bool
	CommitSubject string // first line of the tip commit message
}

// Executor defines the read-only git surface the mapper needs.
// The abstraction keeps the collection pipeline testable without a
// real repository.
type Executor interface {
	IsGitRepo() bool
	// RepoRoot returns the top-level directory of the main working tree.
	RepoRoot() (string, error)
	// ListWorktrees returns all worktrees of the repository, main
	// working tree first, as reported by `git worktree list --porcelain`.
	ListWorktrees() ([]WorktreeInfo, error)
	// ListBranches returns the local branches visible from the worktree
	// at dir, current branch first then alphabetical.
	ListBranches(dir string) ([]BranchInfo, error)
	// DefaultBranch resolves the repository's default branch name.
	DefaultBranch() (string, error)

	// Snapshot support.
	// ListFiles returns the tracked file paths of the worktree at dir.
	ListFiles(dir string) ([]string, error)
	// FileContent reads a tracked file from the worktree at dir.
	FileContent(dir, path string) (string, error)
	// WorkingDirDiff returns the unified diff of uncommitted changes
	// (staged and unstaged) in the worktree at dir.
	WorkingDirDiff(dir string) (string, error)
}
