package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kijko/kijko/internal/snapshot"
)

const snapshotColumns = `id, guid, project, version, created_at`

// snapshotRepository implements snapshot.Repository using SQLite.
type snapshotRepository struct {
	db *sql.DB
}

func newSnapshotRepository(db *sql.DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

// Ensure snapshotRepository implements snapshot.Repository.
var _ snapshot.Repository = (*snapshotRepository)(nil)

func scanSnapshot(scanner interface{ Scan(...any) error }) (*SnapshotModel, error) {
	var model SnapshotModel
	err := scanner.Scan(&model.ID, &model.GUID, &model.Project, &model.Version, &model.CreatedAt)
	return &model, err
}

// Save stores a snapshot and its files in one transaction and sets the
// snapshot ID.
func (r *snapshotRepository) Save(snap *snapshot.Snapshot) error {
	model := toSnapshotModel(snap)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(
		`INSERT INTO snapshots (guid, project, version, created_at) VALUES (?, ?, ?, ?)`,
		model.GUID, model.Project, model.Version, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	for _, f := range snap.Files {
		if _, err := tx.Exec(
			`INSERT INTO snapshot_files (snapshot_id, path, content, size) VALUES (?, ?, ?, ?)`,
			id, f.Path, f.Content, f.Size,
		); err != nil {
			return fmt.Errorf("failed to insert snapshot file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	snap.ID = id
	return nil
}

// FindByVersion loads a snapshot and its files.
func (r *snapshotRepository) FindByVersion(project string, version int) (*snapshot.Snapshot, error) {
	row := r.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM snapshots WHERE project = ? AND version = ?`,
		project, version,
	)
	model, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &snapshot.NotFoundError{Project: project, Version: version}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}

	snap := model.toDomain()

	rows, err := r.db.Query(
		`SELECT id, snapshot_id, path, content, size FROM snapshot_files WHERE snapshot_id = ? ORDER BY path`,
		model.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var fm SnapshotFileModel
		if err := rows.Scan(&fm.ID, &fm.SnapshotID, &fm.Path, &fm.Content, &fm.Size); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot file row: %w", err)
		}
		snap.Files = append(snap.Files, fm.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot file rows: %w", err)
	}

	return snap, nil
}

// LatestVersion returns the highest version for a project, zero when
// none exist.
func (r *snapshotRepository) LatestVersion(project string) (int, error) {
	var version sql.NullInt64
	err := r.db.QueryRow(
		`SELECT MAX(version) FROM snapshots WHERE project = ?`,
		project,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest version: %w", err)
	}
	return int(version.Int64), nil
}

// List returns snapshot metadata newest first, without file contents.
func (r *snapshotRepository) List(project string) ([]*snapshot.Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT `+snapshotColumns+` FROM snapshots WHERE project = ? ORDER BY version DESC`,
		project,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []*snapshot.Snapshot
	for rows.Next() {
		model, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snaps = append(snaps, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	return snaps, nil
}

// Delete removes a snapshot; files cascade.
func (r *snapshotRepository) Delete(project string, version int) error {
	result, err := r.db.Exec(
		`DELETE FROM snapshots WHERE project = ? AND version = ?`,
		project, version,
	)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &snapshot.NotFoundError{Project: project, Version: version}
	}
	return nil
}
