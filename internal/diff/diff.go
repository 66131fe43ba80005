// Package diff models structured diffs between snapshot versions and
// renders them as unified-diff patch text.
//
// A Data value is assembled either by comparing two snapshot versions
// (Compare in the snapshot package) or by parsing raw git diff output
// (Parse). It is transient: constructed by a caller, consumed once, never
// mutated here.
package diff

// Status classifies a file's change within a diff.
type Status string

const (
	StatusAdded    Status = "added"
	StatusRemoved  Status = "removed"
	StatusModified Status = "modified"
)

// LineType represents the type of a diff line.
type LineType int

const (
	LineContext  LineType = iota // ' ' prefix - unchanged line
	LineAddition                 // '+' prefix - added line
	LineDeletion                 // '-' prefix - deleted line
)

// Line is a single line in a diff hunk. Content carries no +/- prefix.
type Line struct {
	Type    LineType
	Content string
}

// Hunk is a contiguous block of changed and contextual lines, anchored to
// old and new line ranges.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// File is a single file's changes.
type File struct {
	Path      string
	Status    Status
	Additions int
	Deletions int
	Hunks     []Hunk
}

// Data is a full diff between two snapshot versions.
type Data struct {
	FromVersion int
	ToVersion   int
	Files       []File
}

// TotalAdditions sums added line counts across all files.
func (d Data) TotalAdditions() int {
	total := 0
	for _, f := range d.Files {
		total += f.Additions
	}
	return total
}

// TotalDeletions sums deleted line counts across all files.
func (d Data) TotalDeletions() int {
	total := 0
	for _, f := range d.Files {
		total += f.Deletions
	}
	return total
}

// PatchFileName returns the conventional download name for this diff,
// e.g. "diff_v3_to_v4.patch".
func (d Data) PatchFileName() string {
	return patchFileName(d.FromVersion, d.ToVersion)
}
