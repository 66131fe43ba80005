package diffview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kijko/kijko/internal/diff"
)

func testData() diff.Data {
	return diff.Data{
		FromVersion: 1,
		ToVersion:   2,
		Files: []diff.File{
			{
				Path:      "app.ts",
				Status:    diff.StatusModified,
				Additions: 1,
				Hunks: []diff.Hunk{{
					OldStart: 1, OldLines: 1, NewStart: 1, NewLines: 2,
					Lines: []diff.Line{
						{Type: diff.LineContext, Content: "x"},
						{Type: diff.LineAddition, Content: "y"},
					},
				}},
			},
			diff.RemovedFile("old.go", "gone\n"),
		},
	}
}

func TestView_Empty(t *testing.T) {
	m := New(80, 24)
	require.False(t, m.HasData())
	require.Contains(t, m.View(), "no comparison loaded")
}

func TestSetData_RendersSummaryAndFiles(t *testing.T) {
	m := New(80, 24)
	m.SetData(testData())
	require.True(t, m.HasData())

	out := m.View()
	require.Contains(t, out, "v1 → v2")
	require.Contains(t, out, "M app.ts")
	require.Contains(t, out, "typescript")
	require.Contains(t, out, "D old.go")
	require.Contains(t, out, "@@ -1,1 +1,2 @@")
	require.Contains(t, out, "+y")
	require.Contains(t, out, "-gone")
}

func TestSetData_WorkingTreeSummary(t *testing.T) {
	m := New(80, 24)
	data := testData()
	data.FromVersion = 0
	data.ToVersion = 0
	m.SetData(data)

	out := m.View()
	require.Contains(t, out, "working tree")
	require.NotContains(t, out, "v0 → v0")
}

func TestClear(t *testing.T) {
	m := New(80, 24)
	m.SetData(testData())
	m.Clear()

	require.False(t, m.HasData())
	require.Contains(t, m.View(), "no comparison loaded")
}

func TestStatusGlyph(t *testing.T) {
	require.Equal(t, "A", statusGlyph(diff.StatusAdded))
	require.Equal(t, "D", statusGlyph(diff.StatusRemoved))
	require.Equal(t, "M", statusGlyph(diff.StatusModified))
}
