// Package svg renders a computed worktree layout into a standalone SVG
// document. Coordinates come straight from the layout engine; this
// package only decides stroke, fill and typography.
package svg

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/kijko/kijko/internal/layout"
)

// Palette controls the document's colors. Zero values fall back to
// DefaultPalette.
type Palette struct {
	Background     string
	WorktreeFill   string
	WorktreeStroke string
	ActiveStroke   string
	BranchFill     string
	BranchStroke   string
	CurrentFill    string
	DefaultStroke  string
	ConnectorColor string
	LinkColor      string
	TextColor      string
	MutedTextColor string
}

// DefaultPalette is a dark scheme matching the TUI styling.
func DefaultPalette() Palette {
	return Palette{
		Background:     "#1e1e2e",
		WorktreeFill:   "#313244",
		WorktreeStroke: "#585b70",
		ActiveStroke:   "#89b4fa",
		BranchFill:     "#45475a",
		BranchStroke:   "#6c7086",
		CurrentFill:    "#89b4fa",
		DefaultStroke:  "#a6e3a1",
		ConnectorColor: "#6c7086",
		LinkColor:      "#585b70",
		TextColor:      "#cdd6f4",
		MutedTextColor: "#a6adc8",
	}
}

// Renderer turns layouts into SVG documents.
type Renderer struct {
	palette Palette
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette overrides the default colors.
func WithPalette(p Palette) Option {
	return func(r *Renderer) { r.palette = p }
}

// NewRenderer creates a Renderer with the default palette.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{palette: DefaultPalette()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces a complete SVG document for the layout.
func (r *Renderer) Render(l layout.Layout) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.palette.Background)

	// Links go first so boxes paint over their endpoints.
	for _, link := range l.Links {
		fmt.Fprintf(&b, `  <line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="2" stroke-dasharray="4 3"/>`+"\n",
			link.X, link.Y1, link.X, link.Y2, r.palette.LinkColor)
	}

	for _, wt := range l.Worktrees {
		for _, node := range wt.Nodes {
			fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
				node.Connector.Path(), r.palette.ConnectorColor)
		}
		r.renderWorktree(&b, wt)
		for _, node := range wt.Nodes {
			r.renderBranch(&b, node)
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// renderWorktree draws a folder-shaped box with the worktree name and
// path inside.
func (r *Renderer) renderWorktree(b *strings.Builder, wt layout.WorktreeNode) {
	stroke := r.palette.WorktreeStroke
	if wt.Active {
		stroke = r.palette.ActiveStroke
	}

	fmt.Fprintf(b, `  <path d="%s" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		folderPath(wt.X, wt.Y, wt.Width, wt.Height), r.palette.WorktreeFill, stroke)

	fmt.Fprintf(b, `  <text x="%g" y="%g" fill="%s" font-family="monospace" font-size="14" font-weight="bold">%s</text>`+"\n",
		wt.X+12, wt.Y+30, r.palette.TextColor, escape(wt.Name))
	fmt.Fprintf(b, `  <text x="%g" y="%g" fill="%s" font-family="monospace" font-size="10">%s</text>`+"\n",
		wt.X+12, wt.Y+48, r.palette.MutedTextColor, escape(wt.Path))
}

// folderPath builds a folder silhouette: a rectangle with a tab across
// the top-left quarter.
func folderPath(x, y, w, h float64) string {
	tabW := w * 0.35
	tabH := 10.0
	return fmt.Sprintf("M %g %g h %g l %g %g h %g v %g h %g Z",
		x, y, tabW, tabH, tabH, w-tabW-tabH, h-tabH, -w)
}

func (r *Renderer) renderBranch(b *strings.Builder, node layout.BranchNode) {
	fill := r.palette.BranchFill
	textColor := r.palette.TextColor
	if node.IsCurrent {
		fill = r.palette.CurrentFill
		textColor = r.palette.Background
	}
	stroke := r.palette.BranchStroke
	if node.IsDefault {
		stroke = r.palette.DefaultStroke
	}

	fmt.Fprintf(b, `  <rect x="%g" y="%g" width="%g" height="%g" rx="6" fill="%s" stroke="%s"/>`+"\n",
		node.X, node.Y, node.Width, node.Height, fill, stroke)
	fmt.Fprintf(b, `  <text x="%g" y="%g" fill="%s" font-family="monospace" font-size="12">%s</text>`+"\n",
		node.X+10, node.Y+node.Height/2+4, textColor, escape(node.Name))
}

// escape makes a string safe for SVG text content.
func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return ""
	}
	return b.String()
}
