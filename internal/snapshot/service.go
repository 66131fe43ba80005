// Package snapshot captures versioned copies of a repository's tracked
// files and compares them.
package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kijko/kijko/internal/cachemanager"
	"github.com/kijko/kijko/internal/diff"
	"github.com/kijko/kijko/internal/git"
	"github.com/kijko/kijko/internal/log"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

const snapshotCacheTTL = 15 * time.Minute

// Service creates, lists and compares snapshots.
type Service struct {
	repo  Repository
	exec  git.Executor
	clock Clock
	cache cachemanager.CacheManager[*Snapshot]
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithoutCache disables the in-memory snapshot cache; every comparison
// reads from the store.
func WithoutCache() ServiceOption {
	return func(s *Service) { s.cache = nil }
}

// NewService wires a snapshot service. A nil clock uses the system
// clock.
func NewService(repo Repository, exec git.Executor, clock Clock, opts ...ServiceOption) *Service {
	if clock == nil {
		clock = RealClock{}
	}
	s := &Service{
		repo:  repo,
		exec:  exec,
		clock: clock,
		cache: cachemanager.NewInMemoryCacheManager[*Snapshot](
			"snapshots", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture records the tracked files of the worktree at dir as the next
// version of project.
func (s *Service) Capture(ctx context.Context, project, dir string) (*Snapshot, error) {
	files, err := s.exec.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}

	latest, err := s.repo.LatestVersion(project)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		GUID:      uuid.NewString(),
		Project:   project,
		Version:   latest + 1,
		CreatedAt: s.clock.Now().UTC().Truncate(time.Second),
	}

	sort.Strings(files)
	for _, path := range files {
		content, err := s.exec.FileContent(dir, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		snap.Files = append(snap.Files, FileRecord{
			Path:    path,
			Content: content,
			Size:    int64(len(content)),
		})
	}

	if err := s.repo.Save(snap); err != nil {
		return nil, err
	}

	log.Info(log.CatSnapshot, "captured snapshot",
		"project", project, "version", snap.Version, "files", len(snap.Files))
	return snap, nil
}

// List returns snapshot metadata for a project, newest first.
func (s *Service) List(project string) ([]*Snapshot, error) {
	return s.repo.List(project)
}

// Latest returns the highest stored version, zero when none exist.
func (s *Service) Latest(project string) (int, error) {
	return s.repo.LatestVersion(project)
}

// load fetches a snapshot version through the cache.
func (s *Service) load(ctx context.Context, project string, version int) (*Snapshot, error) {
	if s.cache == nil {
		return s.repo.FindByVersion(project, version)
	}
	key := fmt.Sprintf("%s/v%d", project, version)
	return s.cache.GetOrLoad(ctx, key, snapshotCacheTTL, func(context.Context) (*Snapshot, error) {
		return s.repo.FindByVersion(project, version)
	})
}

// Compare diffs two snapshot versions of a project. Files only present
// in the newer version show as added, files only in the older as
// removed, files with differing content as modified. Unchanged files
// are omitted.
func (s *Service) Compare(ctx context.Context, project string, from, to int) (diff.Data, error) {
	older, err := s.load(ctx, project, from)
	if err != nil {
		return diff.Data{}, err
	}
	newer, err := s.load(ctx, project, to)
	if err != nil {
		return diff.Data{}, err
	}

	data := diff.Data{FromVersion: from, ToVersion: to}

	oldFiles := make(map[string]string, len(older.Files))
	for _, f := range older.Files {
		oldFiles[f.Path] = f.Content
	}

	seen := make(map[string]bool, len(newer.Files))
	for _, f := range newer.Files {
		seen[f.Path] = true
		oldContent, existed := oldFiles[f.Path]
		switch {
		case !existed:
			data.Files = append(data.Files, diff.AddedFile(f.Path, f.Content))
		case oldContent != f.Content:
			data.Files = append(data.Files, diff.ModifiedFile(f.Path, oldContent, f.Content))
		}
	}

	for _, f := range older.Files {
		if !seen[f.Path] {
			data.Files = append(data.Files, diff.RemovedFile(f.Path, f.Content))
		}
	}

	// Older.Files and newer.Files are path-ordered, but the two loops
	// interleave; restore a stable order for output.
	sort.Slice(data.Files, func(i, j int) bool {
		return data.Files[i].Path < data.Files[j].Path
	})

	return data, nil
}

// Delete removes a snapshot version and evicts it from the cache.
func (s *Service) Delete(ctx context.Context, project string, version int) error {
	if err := s.repo.Delete(project, version); err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, fmt.Sprintf("%s/v%d", project, version))
}
