package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeExecutor returns canned worktree and branch data for builder tests.
type fakeExecutor struct {
	isRepo    bool
	worktrees []WorktreeInfo
	branches  map[string][]BranchInfo
	defBranch string
}

func (f *fakeExecutor) IsGitRepo() bool                    { return f.isRepo }
func (f *fakeExecutor) RepoRoot() (string, error)          { return "/repo", nil }
func (f *fakeExecutor) ListWorktrees() ([]WorktreeInfo, error) {
	return f.worktrees, nil
}
func (f *fakeExecutor) ListBranches(dir string) ([]BranchInfo, error) {
	return f.branches[dir], nil
}
func (f *fakeExecutor) DefaultBranch() (string, error) { return f.defBranch, nil }
func (f *fakeExecutor) ListFiles(string) ([]string, error) {
	return nil, nil
}
func (f *fakeExecutor) FileContent(string, string) (string, error) { return "", nil }
func (f *fakeExecutor) WorkingDirDiff(string) (string, error)      { return "", nil }

func TestCollectWorktrees(t *testing.T) {
	exec := &fakeExecutor{
		isRepo:    true,
		defBranch: "main",
		worktrees: []WorktreeInfo{
			{Path: "/home/dev/kijko", Branch: "main"},
			{Path: "/home/dev/kijko-feature", Branch: "feature/map"},
		},
		branches: map[string][]BranchInfo{
			"/home/dev/kijko": {
				{Name: "main", IsCurrent: true, CommitSubject: "initial commit"},
				{Name: "feature/map", CommitSubject: "draw the map"},
				{Name: "fix/crash", CommitSubject: "guard nil layout"},
			},
			"/home/dev/kijko-feature": {
				{Name: "main", CommitSubject: "initial commit"},
				{Name: "feature/map", CommitSubject: "draw the map"},
			},
		},
	}

	worktrees, err := CollectWorktrees(exec)
	require.NoError(t, err)
	require.Len(t, worktrees, 2)

	main := worktrees[0]
	require.Equal(t, "kijko", main.Name)
	require.Equal(t, "/home/dev/kijko", main.Path)
	require.True(t, main.Active)
	require.Len(t, main.Branches, 3)
	require.True(t, main.Branches[0].IsCurrent)
	require.True(t, main.Branches[0].IsDefault)
	require.Equal(t, "initial commit", main.Branches[0].LastCommit)

	linked := worktrees[1]
	require.Equal(t, "kijko-feature", linked.Name)
	require.False(t, linked.Active)
	// A linked worktree shows only its checked-out branch.
	require.Len(t, linked.Branches, 1)
	require.Equal(t, "feature/map", linked.Branches[0].Name)
	require.True(t, linked.Branches[0].IsCurrent)
	require.False(t, linked.Branches[0].IsDefault)
	require.Equal(t, "draw the map", linked.Branches[0].LastCommit)
}

func TestCollectWorktrees_NotARepo(t *testing.T) {
	_, err := CollectWorktrees(&fakeExecutor{isRepo: false})
	require.ErrorIs(t, err, ErrNotGitRepo)
}

func TestCollectWorktrees_DetachedLinkedWorktree(t *testing.T) {
	exec := &fakeExecutor{
		isRepo:    true,
		defBranch: "main",
		worktrees: []WorktreeInfo{
			{Path: "/repo", Branch: "main"},
			{Path: "/repo-detached", Detached: true},
		},
		branches: map[string][]BranchInfo{
			"/repo": {{Name: "main", IsCurrent: true}},
		},
	}

	worktrees, err := CollectWorktrees(exec)
	require.NoError(t, err)
	require.Len(t, worktrees, 2)
	require.Empty(t, worktrees[1].Branches)
}

func TestCollectWorktrees_LinkedBranchMissingFromList(t *testing.T) {
	exec := &fakeExecutor{
		isRepo:    true,
		defBranch: "main",
		worktrees: []WorktreeInfo{
			{Path: "/repo", Branch: "main"},
			{Path: "/repo-wip", Branch: "wip/spike"},
		},
		branches: map[string][]BranchInfo{
			"/repo": {{Name: "main", IsCurrent: true}},
		},
	}

	worktrees, err := CollectWorktrees(exec)
	require.NoError(t, err)
	// The checked-out branch still shows even when the branch listing
	// for that worktree came back empty.
	require.Len(t, worktrees[1].Branches, 1)
	require.Equal(t, "wip/spike", worktrees[1].Branches[0].Name)
}
