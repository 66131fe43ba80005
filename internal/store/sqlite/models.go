package sqlite

import (
	"time"

	"github.com/kijko/kijko/internal/snapshot"
)

// SnapshotModel maps a row of the snapshots table. Timestamps are
// stored as Unix seconds.
type SnapshotModel struct {
	ID        int64
	GUID      string
	Project   string
	Version   int
	CreatedAt int64
}

func (m *SnapshotModel) toDomain() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        m.ID,
		GUID:      m.GUID,
		Project:   m.Project,
		Version:   m.Version,
		CreatedAt: time.Unix(m.CreatedAt, 0).UTC(),
	}
}

func toSnapshotModel(s *snapshot.Snapshot) *SnapshotModel {
	return &SnapshotModel{
		ID:        s.ID,
		GUID:      s.GUID,
		Project:   s.Project,
		Version:   s.Version,
		CreatedAt: s.CreatedAt.Unix(),
	}
}

// SnapshotFileModel maps a row of the snapshot_files table.
type SnapshotFileModel struct {
	ID         int64
	SnapshotID int64
	Path       string
	Content    string
	Size       int64
}

func (m *SnapshotFileModel) toDomain() snapshot.FileRecord {
	return snapshot.FileRecord{
		Path:    m.Path,
		Content: m.Content,
		Size:    m.Size,
	}
}
