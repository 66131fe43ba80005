// Package cmd contains the kijko CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kijko/kijko/internal/app"
	"github.com/kijko/kijko/internal/config"
	"github.com/kijko/kijko/internal/flags"
	"github.com/kijko/kijko/internal/git"
	"github.com/kijko/kijko/internal/log"
	"github.com/kijko/kijko/internal/snapshot"
	"github.com/kijko/kijko/internal/store/sqlite"
	"github.com/kijko/kijko/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "kijko",
	Short:   "A terminal map of your git worktrees and branches",
	Long:    `Kijko draws a live diagram of a repository's worktrees and branches, captures versioned snapshots of the tracked files, and diffs snapshots against each other.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .kijko.yaml, then ~/.config/kijko/config.yaml)")
	rootCmd.PersistentFlags().StringP("repo", "p", "",
		"path to the repository to map (default: current directory)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log to .kijko.log")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic map refresh when git metadata changes")

	_ = viper.BindPFlag("repo_dir", rootCmd.PersistentFlags().Lookup("repo"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("ui.show_paths", defaults.UI.ShowPaths)
	viper.SetDefault("ui.show_commits", defaults.UI.ShowCommits)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("snapshots.db_path", defaults.Snapshots.DBPath)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("flags", defaults.Flags)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .kijko.yaml (current directory)
		// 2. ~/.config/kijko/config.yaml (user config)
		if _, err := os.Stat(".kijko.yaml"); err == nil {
			viper.SetConfigFile(".kijko.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "kijko"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default at
		// ~/.config/kijko/config.yaml.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "kijko", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setupLogging enables the debug log when --debug or KIJKO_DEBUG asks
// for it. Returns a cleanup function, never nil.
func setupLogging(cmd *cobra.Command) func() {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug && os.Getenv("KIJKO_DEBUG") == "" {
		return func() {}
	}

	cleanup, err := log.Init(".kijko.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug log unavailable: %v\n", err)
		return func() {}
	}
	return cleanup
}

// setupTracing builds the trace provider from config. Returns the
// provider and a cleanup that flushes pending spans.
func setupTracing() (*tracing.Provider, func()) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: tracing disabled: %v\n", err)
		provider, _ = tracing.NewProvider(config.TracingConfig{})
	}
	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}
}

// repoExecutor resolves the repository directory and returns an
// executor bound to it along with the repo root and project name.
func repoExecutor() (*git.RealExecutor, string, string, error) {
	dir := cfg.RepoDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, "", "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	exec := git.NewRealExecutor(dir)
	if !exec.IsGitRepo() {
		return nil, "", "", fmt.Errorf("%s is not inside a git repository", dir)
	}

	root, err := exec.RepoRoot()
	if err != nil {
		return nil, "", "", err
	}
	return exec, root, filepath.Base(root), nil
}

// openSnapshots opens the snapshot store and builds the service.
// Callers own closing the returned DB.
func openSnapshots(exec git.Executor, registry *flags.Registry) (*sqlite.DB, *snapshot.Service, error) {
	dbPath := cfg.Snapshots.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if dbPath == "" {
		return nil, nil, fmt.Errorf("no snapshot database path configured")
	}

	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return nil, nil, err
	}

	var opts []snapshot.ServiceOption
	if !registry.Enabled(flags.FlagSnapshotCache) {
		opts = append(opts, snapshot.WithoutCache())
	}
	return db, snapshot.NewService(db.SnapshotRepository(), exec, nil, opts...), nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cleanupLog := setupLogging(cmd)
	defer cleanupLog()
	_, cleanupTracing := setupTracing()
	defer cleanupTracing()

	exec, root, project, err := repoExecutor()
	if err != nil {
		return err
	}

	registry := flags.New(cfg.Flags)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}
	if !registry.Enabled(flags.FlagWatchRefresh) {
		cfg.AutoRefresh = false
	}

	// The TUI stays usable without the snapshot store; the snapshot and
	// diff keys then report the error.
	db, service, err := openSnapshots(exec, registry)
	if err != nil {
		log.ErrorErr(log.CatStore, "snapshot store unavailable", err)
	} else {
		defer func() { _ = db.Close() }()
	}

	model := app.New(cfg, exec, service, project, filepath.Join(root, ".git"))
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
