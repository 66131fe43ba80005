package layout

// Geometry holds the fixed dimensions and spacing used to position diagram
// nodes. All values are in abstract units (pixels for the SVG sink, scaled
// to cells by the TUI).
type Geometry struct {
	// WorktreeWidth and WorktreeHeight size the folder-shaped worktree box.
	WorktreeWidth  float64
	WorktreeHeight float64

	// BranchWidth and BranchHeight size the rounded-rect branch box.
	BranchWidth  float64
	BranchHeight float64

	// ColumnGap is the horizontal distance between a worktree's right edge
	// and the left edge of its branch column.
	ColumnGap float64

	// BranchGap is the vertical clearance between consecutive branch boxes
	// within one worktree.
	BranchGap float64

	// WorktreeGap is the vertical clearance between consecutive worktree
	// boxes.
	WorktreeGap float64

	// MarginX and MarginY pad the whole diagram.
	MarginX float64
	MarginY float64
}

// DefaultGeometry returns the stock diagram dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		WorktreeWidth:  180,
		WorktreeHeight: 72,
		BranchWidth:    150,
		BranchHeight:   36,
		ColumnGap:      90,
		BranchGap:      16,
		WorktreeGap:    48,
		MarginX:        40,
		MarginY:        40,
	}
}

// Option customizes the geometry used by Build.
type Option func(*Geometry)

// WithWorktreeSize overrides the worktree box dimensions.
func WithWorktreeSize(w, h float64) Option {
	return func(g *Geometry) {
		g.WorktreeWidth = w
		g.WorktreeHeight = h
	}
}

// WithBranchSize overrides the branch box dimensions.
func WithBranchSize(w, h float64) Option {
	return func(g *Geometry) {
		g.BranchWidth = w
		g.BranchHeight = h
	}
}

// WithGaps overrides the three spacing constants: worktree-to-branch-column
// horizontal gap, branch-to-branch vertical gap, and worktree-to-worktree
// vertical gap.
func WithGaps(column, branch, worktree float64) Option {
	return func(g *Geometry) {
		g.ColumnGap = column
		g.BranchGap = branch
		g.WorktreeGap = worktree
	}
}

// WithMargins overrides the canvas margins.
func WithMargins(x, y float64) Option {
	return func(g *Geometry) {
		g.MarginX = x
		g.MarginY = y
	}
}

// WithGeometry replaces the full geometry. Useful when the dimensions come
// from configuration rather than individual overrides.
func WithGeometry(geom Geometry) Option {
	return func(g *Geometry) {
		*g = geom
	}
}
