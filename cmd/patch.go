package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kijko/kijko/internal/diff"
	"github.com/kijko/kijko/internal/flags"
	"github.com/kijko/kijko/internal/log"
	"github.com/kijko/kijko/internal/tracing"
)

var (
	patchFrom   int
	patchTo     int
	patchOutput string
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Write a unified diff between two snapshot versions",
	Long: `Compare two stored snapshot versions and write the result as a
unified diff patch file.

Example:
  kijko patch --from 3 --to 4            # Writes diff_v3_to_v4.patch
  kijko patch --from 3 --to 4 -o out.patch`,
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().IntVar(&patchFrom, "from", 0, "older snapshot version")
	patchCmd.Flags().IntVar(&patchTo, "to", 0, "newer snapshot version")
	patchCmd.Flags().StringVarP(&patchOutput, "output", "o", "",
		"output file (default: diff_v<from>_to_v<to>.patch)")
	_ = patchCmd.MarkFlagRequired("from")
	_ = patchCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(patchCmd)
}

func runPatch(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging(cmd)
	defer cleanupLog()
	provider, cleanupTracing := setupTracing()
	defer cleanupTracing()

	exec, _, project, err := repoExecutor()
	if err != nil {
		return err
	}

	db, service, err := openSnapshots(exec, flags.New(cfg.Flags))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, span := provider.Tracer().Start(context.Background(), tracing.SpanSnapshotCompare)
	span.SetAttributes(
		attribute.String(tracing.AttrProject, project),
		attribute.Int(tracing.AttrDiffFrom, patchFrom),
		attribute.Int(tracing.AttrDiffTo, patchTo),
	)
	data, err := service.Compare(ctx, project, patchFrom, patchTo)
	if err != nil {
		span.End()
		return err
	}
	span.SetAttributes(attribute.Int(tracing.AttrDiffFileCount, len(data.Files)))
	span.End()

	_, span = provider.Tracer().Start(ctx, tracing.SpanGeneratePatch)
	patch := diff.GeneratePatch(data)
	span.End()

	output := patchOutput
	if output == "" {
		output = data.PatchFileName()
	}
	if err := os.WriteFile(output, []byte(patch), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	log.Info(log.CatDiff, "wrote patch",
		"path", output, "from", patchFrom, "to", patchTo, "files", len(data.Files))
	cmd.Printf("wrote %s (%d files, +%d -%d)\n",
		output, len(data.Files), data.TotalAdditions(), data.TotalDeletions())
	return nil
}
