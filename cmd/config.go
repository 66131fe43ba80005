package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kijko/kijko/internal/config"
	"github.com/kijko/kijko/internal/log"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the kijko configuration",
}

var configSetMapCmd = &cobra.Command{
	Use:   "set-map key=value [key=value ...]",
	Short: "Persist map geometry overrides to the config file",
	Long: `Update the map section of the config file. Keys match the config
file names; values are positive numbers. Comments and formatting in
other sections are preserved.

Example:
  kijko config set-map worktree_width=200 branch_gap=24`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigSetMap,
}

func init() {
	configCmd.AddCommand(configSetMapCmd)
	rootCmd.AddCommand(configCmd)
}

// parseMapArgs overlays key=value geometry arguments onto base.
func parseMapArgs(args []string, base config.MapConfig) (config.MapConfig, error) {
	fields := map[string]*float64{
		"worktree_width":  &base.WorktreeWidth,
		"worktree_height": &base.WorktreeHeight,
		"branch_width":    &base.BranchWidth,
		"branch_height":   &base.BranchHeight,
		"column_gap":      &base.ColumnGap,
		"branch_gap":      &base.BranchGap,
		"worktree_gap":    &base.WorktreeGap,
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return base, fmt.Errorf("invalid argument %q, expected key=value", arg)
		}
		field, known := fields[key]
		if !known {
			return base, fmt.Errorf("unknown map key %q", key)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return base, fmt.Errorf("invalid value for %s: %q", key, value)
		}
		*field = f
	}

	return base, nil
}

// configFilePath returns the config file the geometry should be saved
// to: the loaded one, or the default user config location.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kijko.yaml"
	}
	return filepath.Join(home, ".config", "kijko", "config.yaml")
}

func runConfigSetMap(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging(cmd)
	defer cleanupLog()

	mapCfg, err := parseMapArgs(args, cfg.Map)
	if err != nil {
		return err
	}
	if err := config.ValidateMap(mapCfg); err != nil {
		return err
	}

	path := configFilePath()
	if err := config.SaveMap(path, mapCfg); err != nil {
		return err
	}

	log.Info(log.CatConfig, "saved map geometry", "path", path)
	cmd.Printf("updated map geometry in %s\n", path)
	return nil
}
