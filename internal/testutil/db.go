// Package testutil provides shared helpers for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kijko/kijko/internal/store/sqlite"
)

// NewTestDB opens a migrated database in a temp directory and closes
// it when the test ends.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "kijko-test.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	return db
}
