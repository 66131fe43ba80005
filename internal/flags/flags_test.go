package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	r := New(map[string]bool{
		FlagWatchRefresh:  true,
		FlagSnapshotCache: false,
	})

	require.True(t, r.Enabled(FlagWatchRefresh))
	require.False(t, r.Enabled(FlagSnapshotCache))
	require.False(t, r.Enabled("unknown-flag"), "unknown flags default to disabled")
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	require.False(t, r.Enabled(FlagWatchRefresh))
	require.Empty(t, r.All())

	r = New(nil)
	require.False(t, r.Enabled(FlagWatchRefresh))
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := New(map[string]bool{FlagWatchRefresh: true})

	all := r.All()
	all[FlagWatchRefresh] = false

	require.True(t, r.Enabled(FlagWatchRefresh), "mutating the copy must not affect the registry")
}
