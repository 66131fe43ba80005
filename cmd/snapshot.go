package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kijko/kijko/internal/flags"
	"github.com/kijko/kijko/internal/tracing"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a snapshot of the repository's tracked files",
	Long: `Store the current content of every tracked file as the next snapshot
version. Snapshots are diffed against each other with 'kijko patch'.`,
	RunE: runSnapshot,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE:  runSnapshotList,
}

func init() {
	snapshotCmd.AddCommand(snapshotListCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging(cmd)
	defer cleanupLog()
	provider, cleanupTracing := setupTracing()
	defer cleanupTracing()

	exec, root, project, err := repoExecutor()
	if err != nil {
		return err
	}

	db, service, err := openSnapshots(exec, flags.New(cfg.Flags))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, span := provider.Tracer().Start(context.Background(), tracing.SpanSnapshotCapture)
	span.SetAttributes(attribute.String(tracing.AttrProject, project))
	snap, err := service.Capture(ctx, project, root)
	if err != nil {
		span.End()
		return err
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrSnapshotVersion, snap.Version),
		attribute.Int(tracing.AttrSnapshotFiles, len(snap.Files)),
	)
	span.End()

	cmd.Printf("captured %s v%d (%d files)\n", project, snap.Version, len(snap.Files))
	return nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	cleanupLog := setupLogging(cmd)
	defer cleanupLog()

	exec, _, project, err := repoExecutor()
	if err != nil {
		return err
	}

	db, service, err := openSnapshots(exec, flags.New(cfg.Flags))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	snaps, err := service.List(project)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		cmd.Printf("no snapshots for %s\n", project)
		return nil
	}

	for _, s := range snaps {
		cmd.Printf("v%-4d %s  %s\n",
			s.Version, s.CreatedAt.Format("2006-01-02 15:04:05"), s.GUID)
	}
	return nil
}
