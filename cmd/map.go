package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kijko/kijko/internal/git"
	"github.com/kijko/kijko/internal/layout"
	"github.com/kijko/kijko/internal/log"
	"github.com/kijko/kijko/internal/svg"
	"github.com/kijko/kijko/internal/tracing"
)

var mapOutput string

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Render the worktree map to an SVG file",
	Long: `Collect the repository's worktrees and branches, lay them out as a
diagram and write it as a standalone SVG document.

Example:
  kijko map                  # Writes kijko-map.svg
  kijko map -o docs/map.svg  # Custom output path`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().StringVarP(&mapOutput, "output", "o", "kijko-map.svg",
		"output file for the rendered map")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging(cmd)
	defer cleanupLog()
	provider, cleanupTracing := setupTracing()
	defer cleanupTracing()

	exec, root, _, err := repoExecutor()
	if err != nil {
		return err
	}

	ctx, span := provider.Tracer().Start(context.Background(), tracing.SpanCollectWorktrees)
	span.SetAttributes(attribute.String(tracing.AttrRepoRoot, root))
	worktrees, err := git.CollectWorktrees(exec)
	if err != nil {
		span.End()
		return err
	}
	span.SetAttributes(attribute.Int(tracing.AttrWorktreeCount, len(worktrees)))
	span.End()

	_, span = provider.Tracer().Start(ctx, tracing.SpanBuildLayout)
	l := layout.Build(worktrees, cfg.Map.LayoutOptions()...)
	span.SetAttributes(
		attribute.Float64(tracing.AttrLayoutWidth, l.Width),
		attribute.Float64(tracing.AttrLayoutHeight, l.Height),
	)
	span.End()

	_, span = provider.Tracer().Start(ctx, tracing.SpanRenderSVG)
	span.SetAttributes(attribute.String(tracing.AttrOutputPath, mapOutput))
	doc := svg.NewRenderer().Render(l)
	err = os.WriteFile(mapOutput, []byte(doc), 0644)
	span.End()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", mapOutput, err)
	}

	log.Info(log.CatSVG, "rendered map", "path", mapOutput, "worktrees", len(worktrees))
	cmd.Printf("wrote %s (%d worktrees, %.0fx%.0f)\n", mapOutput, len(worktrees), l.Width, l.Height)
	return nil
}
