package tracing

// Span attribute keys. These constants define the semantic conventions
// for span attributes across the pipeline.
const (
	// Repository attributes
	AttrRepoRoot      = "repo.root"
	AttrWorktreeCount = "repo.worktree_count"
	AttrBranchCount   = "repo.branch_count"

	// Snapshot attributes
	AttrProject         = "snapshot.project"
	AttrSnapshotVersion = "snapshot.version"
	AttrSnapshotFiles   = "snapshot.file_count"
	AttrDiffFrom        = "diff.from_version"
	AttrDiffTo          = "diff.to_version"
	AttrDiffFileCount   = "diff.file_count"

	// Render attributes
	AttrLayoutWidth  = "layout.width"
	AttrLayoutHeight = "layout.height"
	AttrOutputPath   = "render.output_path"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span names for the pipeline operations.
const (
	SpanCollectWorktrees = "git.collect_worktrees"
	SpanBuildLayout      = "layout.build"
	SpanRenderSVG        = "svg.render"
	SpanSnapshotCapture  = "snapshot.capture"
	SpanSnapshotCompare  = "snapshot.compare"
	SpanGeneratePatch    = "diff.generate_patch"
)
