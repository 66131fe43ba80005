// Package layout computes 2-D coordinates for the worktree/branch diagram.
//
// Given an ordered list of worktrees, each with an ordered list of branches,
// Build produces a Layout with positioned boxes, bezier connectors from each
// worktree to its branches, vertical links between consecutive worktrees,
// and the total bounding size needed to render the diagram.
//
// The computation is a pure function of its input and the geometry
// constants: identical input yields bit-identical coordinates, so repeated
// renders of unchanged data never jitter.
package layout

import "fmt"

// Branch is a named line of development within a worktree.
type Branch struct {
	Name       string
	IsCurrent  bool
	IsDefault  bool
	LastCommit string // subject of the branch tip commit, may be empty
}

// Worktree is a checked-out working copy with its branches, as modeled for
// display purposes.
type Worktree struct {
	ID       string
	Name     string
	Path     string
	Active   bool
	Branches []Branch
}

// Connector describes a cubic bezier from a worktree's right-edge midpoint
// to a branch's left-edge midpoint. Control points sit horizontally halfway
// between the endpoints and vertically pinned to each endpoint, giving the
// familiar S-curve.
type Connector struct {
	X1, Y1   float64 // start: worktree right-edge midpoint
	C1X, C1Y float64
	C2X, C2Y float64
	X2, Y2   float64 // end: branch left-edge midpoint
}

// Path returns the connector as an SVG path description.
func (c Connector) Path() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		c.X1, c.Y1, c.C1X, c.C1Y, c.C2X, c.C2Y, c.X2, c.Y2)
}

// BranchNode is a branch with its computed position and connector.
type BranchNode struct {
	Branch
	X, Y          float64
	Width, Height float64
	Connector     Connector
}

// WorktreeNode is a worktree with its computed position and branch column.
type WorktreeNode struct {
	Worktree
	X, Y          float64
	Width, Height float64
	Nodes         []BranchNode
}

// Link is a straight vertical line joining the bottom-center of one
// worktree box to the top-center of the next.
type Link struct {
	X, Y1, Y2 float64
}

// Layout is the full positioned diagram plus its bounding size.
type Layout struct {
	Worktrees []WorktreeNode
	Links     []Link
	Width     float64
	Height    float64
}

// Build positions the given worktrees and their branches.
//
// Worktrees stack top-to-bottom in input order, each occupying a full
// vertical slot even when it has no branches, so the links between them
// stay evenly spaced. Branches form a column to the right of their
// worktree, vertically centered on the worktree's center.
//
// Build is total: any input, including an empty slice, yields a valid
// Layout. Zero worktrees produce a margins-only bounding box.
func Build(worktrees []Worktree, opts ...Option) Layout {
	geom := DefaultGeometry()
	for _, opt := range opts {
		opt(&geom)
	}

	if len(worktrees) == 0 {
		return Layout{
			Width:  2 * geom.MarginX,
			Height: 2 * geom.MarginY,
		}
	}

	branchX := geom.MarginX + geom.WorktreeWidth + geom.ColumnGap
	// Vertical step between branch tops. The gap constant is clearance
	// between boxes, so consecutive y-ranges stay at least BranchGap apart.
	branchStep := geom.BranchHeight + geom.BranchGap

	result := Layout{
		Worktrees: make([]WorktreeNode, 0, len(worktrees)),
	}

	maxRight := geom.MarginX + geom.WorktreeWidth
	maxBottom := 0.0

	for i, wt := range worktrees {
		y := geom.MarginY + float64(i)*(geom.WorktreeHeight+geom.WorktreeGap)
		node := WorktreeNode{
			Worktree: wt,
			X:        geom.MarginX,
			Y:        y,
			Width:    geom.WorktreeWidth,
			Height:   geom.WorktreeHeight,
		}
		centerY := y + geom.WorktreeHeight/2

		if n := len(wt.Branches); n > 0 {
			blockHeight := float64(n-1)*branchStep + geom.BranchHeight
			firstY := centerY - blockHeight/2
			startX := geom.MarginX + geom.WorktreeWidth
			midX := (startX + branchX) / 2

			node.Nodes = make([]BranchNode, 0, n)
			for j, br := range wt.Branches {
				by := firstY + float64(j)*branchStep
				branchCenterY := by + geom.BranchHeight/2
				node.Nodes = append(node.Nodes, BranchNode{
					Branch: br,
					X:      branchX,
					Y:      by,
					Width:  geom.BranchWidth,
					Height: geom.BranchHeight,
					Connector: Connector{
						X1: startX, Y1: centerY,
						C1X: midX, C1Y: centerY,
						C2X: midX, C2Y: branchCenterY,
						X2: branchX, Y2: branchCenterY,
					},
				})
			}

			maxRight = max(maxRight, branchX+geom.BranchWidth)
			maxBottom = max(maxBottom, firstY+blockHeight)
		}

		maxBottom = max(maxBottom, y+geom.WorktreeHeight)
		result.Worktrees = append(result.Worktrees, node)
	}

	// Straight vertical links between consecutive worktree boxes.
	linkX := geom.MarginX + geom.WorktreeWidth/2
	for i := 0; i+1 < len(result.Worktrees); i++ {
		result.Links = append(result.Links, Link{
			X:  linkX,
			Y1: result.Worktrees[i].Y + geom.WorktreeHeight,
			Y2: result.Worktrees[i+1].Y,
		})
	}

	result.Width = maxRight + geom.MarginX
	result.Height = maxBottom + geom.MarginY
	return result
}
