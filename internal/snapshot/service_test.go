package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kijko/kijko/internal/diff"
	"github.com/kijko/kijko/internal/git"
)

// memoryRepo is an in-memory Repository for service tests.
type memoryRepo struct {
	snaps  []*Snapshot
	nextID int64
	finds  int
}

func (r *memoryRepo) Save(snap *Snapshot) error {
	r.nextID++
	snap.ID = r.nextID
	r.snaps = append(r.snaps, snap)
	return nil
}

func (r *memoryRepo) FindByVersion(project string, version int) (*Snapshot, error) {
	r.finds++
	for _, s := range r.snaps {
		if s.Project == project && s.Version == version {
			return s, nil
		}
	}
	return nil, &NotFoundError{Project: project, Version: version}
}

func (r *memoryRepo) LatestVersion(project string) (int, error) {
	latest := 0
	for _, s := range r.snaps {
		if s.Project == project && s.Version > latest {
			latest = s.Version
		}
	}
	return latest, nil
}

func (r *memoryRepo) List(project string) ([]*Snapshot, error) {
	var out []*Snapshot
	for _, s := range r.snaps {
		if s.Project == project {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) Delete(project string, version int) error {
	for i, s := range r.snaps {
		if s.Project == project && s.Version == version {
			r.snaps = append(r.snaps[:i], r.snaps[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Project: project, Version: version}
}

// fileExecutor serves canned file listings per directory.
type fileExecutor struct {
	git.Executor
	files map[string]map[string]string
}

func (f *fileExecutor) ListFiles(dir string) ([]string, error) {
	var paths []string
	for p := range f.files[dir] {
		paths = append(paths, p)
	}
	return paths, nil
}

func (f *fileExecutor) FileContent(dir, path string) (string, error) {
	return f.files[dir][path], nil
}

type tickClock struct{ t time.Time }

func (c *tickClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService(files map[string]map[string]string) (*Service, *memoryRepo) {
	repo := &memoryRepo{}
	exec := &fileExecutor{files: files}
	clock := &tickClock{t: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)}
	return NewService(repo, exec, clock), repo
}

func TestService_Capture(t *testing.T) {
	svc, _ := newTestService(map[string]map[string]string{
		"/repo": {
			"b.go": "package b\n",
			"a.go": "package a\n",
		},
	})

	snap, err := svc.Capture(context.Background(), "demo", "/repo")
	require.NoError(t, err)
	require.Equal(t, 1, snap.Version)
	require.NotEmpty(t, snap.GUID)
	require.NotZero(t, snap.ID)
	require.Len(t, snap.Files, 2)
	require.Equal(t, "a.go", snap.Files[0].Path, "files are captured path-ordered")
	require.Equal(t, int64(10), snap.Files[0].Size)
}

func TestService_Capture_VersionsIncrease(t *testing.T) {
	svc, _ := newTestService(map[string]map[string]string{
		"/repo": {"a.go": "package a\n"},
	})
	ctx := context.Background()

	first, err := svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)
	second, err := svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)

	require.Equal(t, 1, first.Version)
	require.Equal(t, 2, second.Version)
	require.NotEqual(t, first.GUID, second.GUID)
}

func TestService_Compare(t *testing.T) {
	files := map[string]map[string]string{
		"/repo": {
			"kept.go":    "unchanged\n",
			"changed.go": "x\n",
			"gone.go":    "old\n",
		},
	}
	svc, _ := newTestService(files)
	ctx := context.Background()

	_, err := svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)

	files["/repo"] = map[string]string{
		"kept.go":    "unchanged\n",
		"changed.go": "x\ny\n",
		"new.go":     "fresh\n",
	}
	_, err = svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)

	data, err := svc.Compare(ctx, "demo", 1, 2)
	require.NoError(t, err)
	require.Equal(t, 1, data.FromVersion)
	require.Equal(t, 2, data.ToVersion)

	// kept.go is unchanged and omitted; the rest sort by path.
	require.Len(t, data.Files, 3)
	require.Equal(t, "changed.go", data.Files[0].Path)
	require.Equal(t, diff.StatusModified, data.Files[0].Status)
	require.Equal(t, "gone.go", data.Files[1].Path)
	require.Equal(t, diff.StatusRemoved, data.Files[1].Status)
	require.Equal(t, "new.go", data.Files[2].Path)
	require.Equal(t, diff.StatusAdded, data.Files[2].Status)
}

func TestService_Compare_MissingVersion(t *testing.T) {
	svc, _ := newTestService(map[string]map[string]string{
		"/repo": {"a.go": "package a\n"},
	})

	_, err := svc.Compare(context.Background(), "demo", 1, 2)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestService_Compare_UsesCache(t *testing.T) {
	svc, repo := newTestService(map[string]map[string]string{
		"/repo": {"a.go": "package a\n"},
	})
	ctx := context.Background()

	_, err := svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)
	_, err = svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)

	_, err = svc.Compare(ctx, "demo", 1, 2)
	require.NoError(t, err)
	loadsAfterFirst := repo.finds

	_, err = svc.Compare(ctx, "demo", 1, 2)
	require.NoError(t, err)
	require.Equal(t, loadsAfterFirst, repo.finds, "repeat comparison loads from cache")
}

func TestService_WithoutCacheHitsStore(t *testing.T) {
	repo := &memoryRepo{}
	exec := &fileExecutor{files: map[string]map[string]string{
		"/repo": {"a.go": "package a\n"},
	}}
	clock := &tickClock{t: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)}
	svc := NewService(repo, exec, clock, WithoutCache())
	ctx := context.Background()

	_, err := svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)
	_, err = svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)

	_, err = svc.Compare(ctx, "demo", 1, 2)
	require.NoError(t, err)
	loadsAfterFirst := repo.finds

	_, err = svc.Compare(ctx, "demo", 1, 2)
	require.NoError(t, err)
	require.Equal(t, loadsAfterFirst+2, repo.finds, "every comparison reads from the store")
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService(map[string]map[string]string{
		"/repo": {"a.go": "package a\n"},
	})
	ctx := context.Background()

	_, err := svc.Capture(ctx, "demo", "/repo")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "demo", 1))

	var notFound *NotFoundError
	err = svc.Delete(ctx, "demo", 1)
	require.ErrorAs(t, err, &notFound)
}
