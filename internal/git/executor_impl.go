package git

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kijko/kijko/internal/log"
)

var (
	// ErrNotGitRepo indicates the directory is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrPathOutsideWorktree indicates a file path escapes the worktree.
	ErrPathOutsideWorktree = errors.New("path outside worktree")

	// ErrUnknownRevision indicates a revision could not be resolved.
	ErrUnknownRevision = errors.New("unknown revision")
)

// Compile-time check that RealExecutor implements Executor.
var _ Executor = (*RealExecutor)(nil)

// RealExecutor implements Executor by shelling out to git.
type RealExecutor struct {
	workDir string
}

// NewRealExecutor creates an executor rooted at workDir. An empty
// workDir uses the process working directory.
func NewRealExecutor(workDir string) *RealExecutor {
	return &RealExecutor{workDir: workDir}
}

// runGit executes a git command in dir and returns trimmed stdout.
// An empty dir falls back to the executor's work directory.
func (e *RealExecutor) runGit(dir string, args ...string) (string, error) {
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.Command("git", args...)
	if dir == "" {
		dir = e.workDir
	}
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		log.Debug(log.CatGit, "git command failed", "args", strings.Join(args, " "), "stderr", stderrStr)
		if stderrStr != "" {
			return "", parseGitError(stderrStr, err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// parseGitError converts git stderr messages to typed errors.
func parseGitError(stderr string, originalErr error) error {
	stderrLower := strings.ToLower(stderr)

	if strings.Contains(stderrLower, "not a git repository") {
		return fmt.Errorf("%w: %s", ErrNotGitRepo, stderr)
	}
	if strings.Contains(stderrLower, "unknown revision") ||
		strings.Contains(stderrLower, "bad revision") {
		return fmt.Errorf("%w: %s", ErrUnknownRevision, stderr)
	}
	if strings.Contains(stderrLower, "is outside repository") {
		return fmt.Errorf("%w: %s", ErrPathOutsideWorktree, stderr)
	}

	return fmt.Errorf("git error: %s: %w", stderr, originalErr)
}

// IsGitRepo reports whether the work directory is inside a git repository.
func (e *RealExecutor) IsGitRepo() bool {
	_, err := e.runGit("", "rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the top-level directory of the main working tree.
func (e *RealExecutor) RepoRoot() (string, error) {
	return e.runGit("", "rev-parse", "--show-toplevel")
}

// ListWorktrees returns all worktrees reported by git, main tree first.
func (e *RealExecutor) ListWorktrees() ([]WorktreeInfo, error) {
	output, err := e.runGit("", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktreeList(output), nil
}

// parseWorktreeList parses `git worktree list --porcelain` output.
// Entries are blank-line separated:
//
//	worktree /path/to/tree
//	HEAD <sha>
//	branch refs/heads/name
func parseWorktreeList(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	flush := func() {
		if current.Path != "" {
			worktrees = append(worktrees, current)
		}
		current = WorktreeInfo{}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			flush()
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			current.Path = value
		case "HEAD":
			current.HEAD = value
		case "branch":
			current.Branch = strings.TrimPrefix(value, "refs/heads/")
		case "bare":
			current.Bare = true
		case "detached":
			current.Detached = true
		}
	}
	flush()

	return worktrees
}

// ListBranches returns the local branches visible from dir, current
// branch first then alphabetical. The tip commit subject rides along
// for display.
func (e *RealExecutor) ListBranches(dir string) ([]BranchInfo, error) {
	output, err := e.runGit(dir, "branch", "--format=%(HEAD)%(refname:short)\x1f%(contents:subject)")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if output == "" {
		return nil, nil
	}

	var branches []BranchInfo
	var current *BranchInfo

	for line := range strings.SplitSeq(output, "\n") {
		if line == "" {
			continue
		}

		marker, rest := line[0], line[1:]
		name, subject, _ := strings.Cut(rest, "\x1f")

		branch := BranchInfo{
			Name:          name,
			IsCurrent:     marker == '*',
			CommitSubject: subject,
		}
		if branch.IsCurrent {
			current = &branch
		} else {
			branches = append(branches, branch)
		}
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})
	if current != nil {
		branches = append([]BranchInfo{*current}, branches...)
	}

	return branches, nil
}

// DefaultBranch resolves the default branch name.
// Order: remote HEAD, then main/master existence, then "main".
func (e *RealExecutor) DefaultBranch() (string, error) {
	if ref, err := e.runGit("", "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil && ref != "" {
		parts := strings.Split(ref, "/")
		return parts[len(parts)-1], nil
	}

	for _, name := range []string{"main", "master"} {
		if _, err := e.runGit("", "show-ref", "--verify", "--quiet", "refs/heads/"+name); err == nil {
			return name, nil
		}
	}

	return "main", nil
}

// ListFiles returns the tracked file paths of the worktree at dir.
func (e *RealExecutor) ListFiles(dir string) ([]string, error) {
	output, err := e.runGit(dir, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	if output == "" {
		return nil, nil
	}

	var files []string
	for _, f := range strings.Split(output, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}

// FileContent reads a tracked file from the worktree at dir. The path
// must stay inside the worktree.
func (e *RealExecutor) FileContent(dir, path string) (string, error) {
	full := filepath.Join(dir, path)
	rel, err := filepath.Rel(dir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideWorktree, path)
	}

	//nolint:gosec // G304: path is validated against the worktree root
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WorkingDirDiff returns the diff of uncommitted changes in the
// worktree at dir, staged and unstaged combined.
func (e *RealExecutor) WorkingDirDiff(dir string) (string, error) {
	return e.runGit(dir, "diff", "HEAD")
}
