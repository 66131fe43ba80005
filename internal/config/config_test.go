package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kijko/kijko/internal/layout"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoRefresh)
	require.True(t, cfg.UI.ShowPaths)
	require.True(t, cfg.UI.ShowStatusBar)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.NoError(t, cfg.Validate())
}

func TestValidateMap(t *testing.T) {
	require.NoError(t, ValidateMap(MapConfig{}))
	require.NoError(t, ValidateMap(MapConfig{WorktreeWidth: 200, BranchGap: 8}))

	err := ValidateMap(MapConfig{ColumnGap: -1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "map.column_gap")
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5}))
	require.NoError(t, ValidateTracing(TracingConfig{Exporter: "otlp", OTLPEndpoint: "localhost:4317", SampleRate: 1.0}))

	require.Error(t, ValidateTracing(TracingConfig{SampleRate: 1.5}))
	require.Error(t, ValidateTracing(TracingConfig{Exporter: "jaeger"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "file"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1.0}))
}

func TestMapConfig_LayoutOptions(t *testing.T) {
	opts := MapConfig{WorktreeWidth: 300, BranchGap: 24}.LayoutOptions()

	l := layout.Build([]layout.Worktree{{ID: "a", Name: "a"}}, opts...)
	require.Len(t, l.Worktrees, 1)
	require.Equal(t, 300.0, l.Worktrees[0].Width)

	// Unset fields keep defaults.
	require.Equal(t, layout.DefaultGeometry().WorktreeHeight, l.Worktrees[0].Height)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kijko.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "auto_refresh: true")
	require.Contains(t, string(data), "# Kijko Configuration")
}

func TestSaveMap_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kijko.yaml")
	initial := `# My config comment
auto_refresh: false

ui:
  show_paths: false
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0644))

	require.NoError(t, SaveMap(path, MapConfig{WorktreeWidth: 200, ColumnGap: 120}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	require.Contains(t, content, "# My config comment")
	require.Contains(t, content, "auto_refresh: false")
	require.Contains(t, content, "worktree_width: 200")
	require.Contains(t, content, "column_gap: 120")
	require.NotContains(t, content, "branch_width", "zero fields are omitted")
}

func TestSaveMap_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kijko.yaml")

	require.NoError(t, SaveMap(path, MapConfig{BranchGap: 8}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "branch_gap: 8"))
}

func TestSaveMap_ReplacesExistingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kijko.yaml")
	initial := "map:\n  worktree_width: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(initial), 0644))

	require.NoError(t, SaveMap(path, MapConfig{WorktreeWidth: 250}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "worktree_width: 250")
	require.NotContains(t, string(data), "worktree_width: 100")
}
