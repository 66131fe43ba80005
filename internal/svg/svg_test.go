package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kijko/kijko/internal/layout"
)

func testLayout(t *testing.T) layout.Layout {
	t.Helper()
	return layout.Build([]layout.Worktree{
		{
			ID: "wt-1", Name: "kijko", Path: "/home/dev/kijko", Active: true,
			Branches: []layout.Branch{
				{Name: "main", IsCurrent: true, IsDefault: true},
				{Name: "feature/map"},
			},
		},
		{ID: "wt-2", Name: "kijko-hotfix", Path: "/home/dev/kijko-hotfix"},
	})
}

func TestRender_Document(t *testing.T) {
	out := NewRenderer().Render(testLayout(t))

	require.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	require.True(t, strings.HasSuffix(out, "</svg>\n"))
	require.Contains(t, out, `viewBox="0 0 `)
}

func TestRender_NodesAndConnectors(t *testing.T) {
	out := NewRenderer().Render(testLayout(t))

	require.Contains(t, out, ">kijko</text>")
	require.Contains(t, out, ">kijko-hotfix</text>")
	require.Contains(t, out, ">main</text>")
	require.Contains(t, out, ">feature/map</text>")

	// Two branches means two bezier connectors; two worktrees means one
	// vertical link.
	require.Equal(t, 2, strings.Count(out, `fill="none"`))
	require.Equal(t, 1, strings.Count(out, "<line "))
}

func TestRender_ActiveWorktreeStroke(t *testing.T) {
	p := DefaultPalette()
	out := NewRenderer().Render(testLayout(t))

	require.Contains(t, out, p.ActiveStroke)
	require.Contains(t, out, p.CurrentFill)
	require.Contains(t, out, p.DefaultStroke)
}

func TestRender_CustomPalette(t *testing.T) {
	p := DefaultPalette()
	p.Background = "#ffffff"

	out := NewRenderer(WithPalette(p)).Render(testLayout(t))
	require.Contains(t, out, `fill="#ffffff"`)
}

func TestRender_EmptyLayout(t *testing.T) {
	out := NewRenderer().Render(layout.Build(nil))

	require.Contains(t, out, "<svg ")
	require.NotContains(t, out, "<rect x=")
	require.NotContains(t, out, "<line ")
}

func TestEscape(t *testing.T) {
	require.Equal(t, "a&lt;b&gt;c", escape("a<b>c"))
	require.Equal(t, "x &amp; y", escape("x & y"))
}
