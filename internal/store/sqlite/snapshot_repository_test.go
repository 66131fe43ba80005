package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kijko/kijko/internal/snapshot"
)

func newTestRepo(t *testing.T) snapshot.Repository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.SnapshotRepository()
}

func testSnapshot(project string, version int) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		GUID:      project + "-v" + string(rune('0'+version)),
		Project:   project,
		Version:   version,
		CreatedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Files: []snapshot.FileRecord{
			{Path: "main.go", Content: "package main\n", Size: 13},
			{Path: "go.mod", Content: "module demo\n", Size: 12},
		},
	}
}

func TestSnapshotRepository_SaveAndFind(t *testing.T) {
	repo := newTestRepo(t)

	snap := testSnapshot("demo", 1)
	require.NoError(t, repo.Save(snap))
	require.NotZero(t, snap.ID, "Save should set the snapshot ID")

	found, err := repo.FindByVersion("demo", 1)
	require.NoError(t, err)
	require.Equal(t, snap.GUID, found.GUID)
	require.Equal(t, 1, found.Version)
	require.Equal(t, snap.CreatedAt, found.CreatedAt)
	require.Len(t, found.Files, 2)
	// Files come back path-ordered.
	require.Equal(t, "go.mod", found.Files[0].Path)
	require.Equal(t, "module demo\n", found.Files[0].Content)
}

func TestSnapshotRepository_FindMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByVersion("demo", 99)
	var notFound *snapshot.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, 99, notFound.Version)
}

func TestSnapshotRepository_LatestVersion(t *testing.T) {
	repo := newTestRepo(t)

	latest, err := repo.LatestVersion("demo")
	require.NoError(t, err)
	require.Zero(t, latest, "empty project has version zero")

	require.NoError(t, repo.Save(testSnapshot("demo", 1)))
	require.NoError(t, repo.Save(testSnapshot("demo", 2)))
	require.NoError(t, repo.Save(testSnapshot("other", 7)))

	latest, err = repo.LatestVersion("demo")
	require.NoError(t, err)
	require.Equal(t, 2, latest)
}

func TestSnapshotRepository_List(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(testSnapshot("demo", 1)))
	require.NoError(t, repo.Save(testSnapshot("demo", 2)))

	snaps, err := repo.List("demo")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, 2, snaps[0].Version, "newest first")
	require.Empty(t, snaps[0].Files, "List omits file contents")
}

func TestSnapshotRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(testSnapshot("demo", 1)))
	require.NoError(t, repo.Delete("demo", 1))

	_, err := repo.FindByVersion("demo", 1)
	var notFound *snapshot.NotFoundError
	require.ErrorAs(t, err, &notFound)

	err = repo.Delete("demo", 1)
	require.ErrorAs(t, err, &notFound)
}

func TestSnapshotRepository_DuplicateVersionRejected(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(testSnapshot("demo", 1)))

	dup := testSnapshot("demo", 1)
	dup.GUID = "different-guid"
	require.Error(t, repo.Save(dup), "project+version is unique")
}
