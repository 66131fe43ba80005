// Package config provides configuration types and defaults for kijko.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kijko/kijko/internal/log"
)

// Config holds all configuration options for kijko.
type Config struct {
	RepoDir     string          `mapstructure:"repo_dir"`
	AutoRefresh bool            `mapstructure:"auto_refresh"`
	UI          UIConfig        `mapstructure:"ui"`
	Map         MapConfig       `mapstructure:"map"`
	Snapshots   SnapshotsConfig `mapstructure:"snapshots"`
	Tracing     TracingConfig   `mapstructure:"tracing"`
	Flags       map[string]bool `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowPaths     bool `mapstructure:"show_paths"`      // Show worktree paths under names
	ShowCommits   bool `mapstructure:"show_commits"`    // Show tip commit subjects on branches
	ShowStatusBar bool `mapstructure:"show_status_bar"` // Show status bar at bottom
}

// MapConfig overrides the diagram geometry. Zero values keep the
// built-in defaults.
type MapConfig struct {
	WorktreeWidth  float64 `mapstructure:"worktree_width"`
	WorktreeHeight float64 `mapstructure:"worktree_height"`
	BranchWidth    float64 `mapstructure:"branch_width"`
	BranchHeight   float64 `mapstructure:"branch_height"`
	ColumnGap      float64 `mapstructure:"column_gap"`
	BranchGap      float64 `mapstructure:"branch_gap"`
	WorktreeGap    float64 `mapstructure:"worktree_gap"`
}

// SnapshotsConfig holds snapshot storage configuration.
type SnapshotsConfig struct {
	// DBPath is the snapshot database location.
	// Default: ~/.kijko/kijko.db
	DBPath string `mapstructure:"db_path"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp". Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/kijko/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0). Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDBPath returns the default snapshot database location, or
// empty string if the home dir is unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kijko", "kijko.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kijko", "traces", "traces.jsonl")
}

// ValidateMap checks the geometry overrides. Zero means "use default";
// negative values are rejected.
func ValidateMap(m MapConfig) error {
	fields := map[string]float64{
		"map.worktree_width":  m.WorktreeWidth,
		"map.worktree_height": m.WorktreeHeight,
		"map.branch_width":    m.BranchWidth,
		"map.branch_height":   m.BranchHeight,
		"map.column_gap":      m.ColumnGap,
		"map.branch_gap":      m.BranchGap,
		"map.worktree_gap":    m.WorktreeGap,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateMap(c.Map); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoRefresh: true,
		UI: UIConfig{
			ShowPaths:     true,
			ShowCommits:   true,
			ShowStatusBar: true,
		},
		Snapshots: SnapshotsConfig{
			DBPath: DefaultDBPath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{
			"watch-refresh":  true,
			"snapshot-cache": true,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Kijko Configuration

# Path to the repository to map (default: current directory)
# repo_dir: /path/to/project

# Auto-refresh the map when branches or worktrees change
auto_refresh: true

# UI settings
ui:
  show_paths: true       # Show worktree paths under names
  show_commits: true     # Show tip commit subjects on branch nodes
  show_status_bar: true  # Show status bar at bottom

# Map geometry overrides (pixels, used by the svg export too)
# Omitted values keep the built-in defaults.
# map:
#   worktree_width: 180
#   worktree_height: 72
#   branch_width: 150
#   branch_height: 36
#   column_gap: 90
#   branch_gap: 16
#   worktree_gap: 48

# Snapshot storage
# snapshots:
#   db_path: ~/.kijko/kijko.db

# Distributed tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/kijko/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Feature flags
flags:
  watch-refresh: true   # Auto-refresh requires this flag in addition to auto_refresh
  snapshot-cache: true  # Cache loaded snapshots in memory between comparisons
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
