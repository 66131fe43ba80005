package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const modifiedDiff = `diff --git a/internal/app/app.go b/internal/app/app.go
index 1234567..89abcde 100644
--- a/internal/app/app.go
+++ b/internal/app/app.go
@@ -10,3 +10,5 @@ func run() {
 	ctx := context.Background()
-	setup(ctx)
+	if err := setup(ctx); err != nil {
+		return err
+	}
 	return nil
`

func TestParse_ModifiedFile(t *testing.T) {
	data, err := Parse(modifiedDiff)
	require.NoError(t, err)
	require.Len(t, data.Files, 1)

	f := data.Files[0]
	require.Equal(t, "internal/app/app.go", f.Path)
	require.Equal(t, StatusModified, f.Status)
	require.Equal(t, 3, f.Additions)
	require.Equal(t, 1, f.Deletions)
	require.Len(t, f.Hunks, 1)

	h := f.Hunks[0]
	require.Equal(t, 10, h.OldStart)
	require.Equal(t, 3, h.OldLines)
	require.Equal(t, 10, h.NewStart)
	require.Equal(t, 5, h.NewLines)
	require.Len(t, h.Lines, 6)
	require.Equal(t, LineDeletion, h.Lines[1].Type)
	require.Equal(t, LineAddition, h.Lines[2].Type)
}

func TestParse_AddedFile(t *testing.T) {
	input := `diff --git a/notes.md b/notes.md
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/notes.md
@@ -0,0 +1,2 @@
+# Notes
+hello
`
	data, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, data.Files, 1)

	f := data.Files[0]
	require.Equal(t, "notes.md", f.Path)
	require.Equal(t, StatusAdded, f.Status)
	require.Equal(t, 2, f.Additions)
	require.Equal(t, 0, f.Hunks[0].OldStart)
	require.Equal(t, 0, f.Hunks[0].OldLines)
}

func TestParse_DeletedFile(t *testing.T) {
	input := `diff --git a/old.txt b/old.txt
deleted file mode 100644
index e69de29..0000000
--- a/old.txt
+++ /dev/null
@@ -1,1 +0,0 @@
-goodbye
`
	data, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, data.Files, 1)
	require.Equal(t, StatusRemoved, data.Files[0].Status)
	require.Equal(t, 1, data.Files[0].Deletions)
}

func TestParse_MultipleFiles(t *testing.T) {
	input := `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1 +1 @@
-old
+new
diff --git a/b.go b/b.go
--- a/b.go
+++ b/b.go
@@ -1 +1,2 @@
 keep
+add
`
	data, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, data.Files, 2)
	require.Equal(t, "a.go", data.Files[0].Path)
	require.Equal(t, "b.go", data.Files[1].Path)

	// A bare hunk range without a count defaults to one line.
	require.Equal(t, 1, data.Files[0].Hunks[0].OldLines)
	require.Equal(t, 2, data.Files[1].Hunks[0].NewLines)
}

func TestParse_NoNewlineMarkerSkipped(t *testing.T) {
	input := `diff --git a/x b/x
--- a/x
+++ b/x
@@ -1 +1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file
`
	data, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, data.Files[0].Hunks[0].Lines, 2)
}

func TestParse_Empty(t *testing.T) {
	data, err := Parse("")
	require.NoError(t, err)
	require.Empty(t, data.Files)
}

func TestParse_BinaryFileHasNoHunks(t *testing.T) {
	input := `diff --git a/logo.png b/logo.png
index 1234567..89abcde 100644
Binary files a/logo.png and b/logo.png differ
`
	data, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, data.Files, 1)
	require.Empty(t, data.Files[0].Hunks)
}
