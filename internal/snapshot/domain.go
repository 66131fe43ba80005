package snapshot

import (
	"fmt"
	"time"
)

// Snapshot is one captured version of a project's tracked files.
// Versions start at 1 and increase monotonically per project.
type Snapshot struct {
	ID        int64
	GUID      string
	Project   string
	Version   int
	CreatedAt time.Time
	Files     []FileRecord
}

// FileRecord is one file captured in a snapshot.
type FileRecord struct {
	Path    string
	Content string
	Size    int64
}

// Repository persists snapshots.
type Repository interface {
	// Save stores a snapshot and its files, setting the snapshot ID.
	Save(snap *Snapshot) error
	// FindByVersion loads a snapshot with its files.
	// Returns NotFoundError when the version does not exist.
	FindByVersion(project string, version int) (*Snapshot, error)
	// LatestVersion returns the highest stored version for a project,
	// zero when the project has no snapshots.
	LatestVersion(project string) (int, error)
	// List returns snapshot metadata for a project, newest first,
	// without file contents.
	List(project string) ([]*Snapshot, error)
	// Delete removes a snapshot and its files.
	Delete(project string, version int) error
}

// NotFoundError indicates a snapshot version that does not exist.
type NotFoundError struct {
	Project string
	Version int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("snapshot version %d not found for project %q", e.Version, e.Project)
}
