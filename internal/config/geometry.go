package config

import "github.com/kijko/kijko/internal/layout"

// LayoutOptions converts the geometry overrides into layout options.
// Zero-valued fields produce no option so the engine defaults apply.
func (m MapConfig) LayoutOptions() []layout.Option {
	geom := layout.DefaultGeometry()

	if m.WorktreeWidth > 0 {
		geom.WorktreeWidth = m.WorktreeWidth
	}
	if m.WorktreeHeight > 0 {
		geom.WorktreeHeight = m.WorktreeHeight
	}
	if m.BranchWidth > 0 {
		geom.BranchWidth = m.BranchWidth
	}
	if m.BranchHeight > 0 {
		geom.BranchHeight = m.BranchHeight
	}
	if m.ColumnGap > 0 {
		geom.ColumnGap = m.ColumnGap
	}
	if m.BranchGap > 0 {
		geom.BranchGap = m.BranchGap
	}
	if m.WorktreeGap > 0 {
		geom.WorktreeGap = m.WorktreeGap
	}

	return []layout.Option{layout.WithGeometry(geom)}
}
