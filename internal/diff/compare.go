package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// hunkContext is the number of unchanged lines kept around each change,
// matching git's default.
const hunkContext = 3

// AddedFile builds a File for content that exists only in the new version.
func AddedFile(path, content string) File {
	lines := splitLines(content)
	f := File{Path: path, Status: StatusAdded}
	if len(lines) == 0 {
		return f
	}
	hunk := Hunk{OldStart: 0, OldLines: 0, NewStart: 1, NewLines: len(lines)}
	for _, l := range lines {
		hunk.Lines = append(hunk.Lines, Line{Type: LineAddition, Content: l})
	}
	f.Additions = len(lines)
	f.Hunks = []Hunk{hunk}
	return f
}

// RemovedFile builds a File for content that exists only in the old version.
func RemovedFile(path, content string) File {
	lines := splitLines(content)
	f := File{Path: path, Status: StatusRemoved}
	if len(lines) == 0 {
		return f
	}
	hunk := Hunk{OldStart: 1, OldLines: len(lines), NewStart: 0, NewLines: 0}
	for _, l := range lines {
		hunk.Lines = append(hunk.Lines, Line{Type: LineDeletion, Content: l})
	}
	f.Deletions = len(lines)
	f.Hunks = []Hunk{hunk}
	return f
}

// ModifiedFile builds a File by line-diffing the old and new content and
// grouping the changes into hunks with surrounding context.
func ModifiedFile(path, oldContent, newContent string) File {
	recs := lineDiff(oldContent, newContent)
	hunks, additions, deletions := buildHunks(recs)
	return File{
		Path:      path,
		Status:    StatusModified,
		Additions: additions,
		Deletions: deletions,
		Hunks:     hunks,
	}
}

// lineRec is one line of the flattened diff along with the number of
// old/new lines consumed before it, used to anchor hunk ranges.
type lineRec struct {
	typ     LineType
	content string
	oldPos  int
	newPos  int
}

// lineDiff produces a line-granular diff via diffmatchpatch's
// lines-to-chars optimization.
func lineDiff(oldText, newText string) []lineRec {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var recs []lineRec
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		var typ LineType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = LineAddition
		case diffmatchpatch.DiffDelete:
			typ = LineDeletion
		default:
			typ = LineContext
		}
		for _, line := range splitLines(d.Text) {
			recs = append(recs, lineRec{typ: typ, content: line, oldPos: oldPos, newPos: newPos})
			switch typ {
			case LineAddition:
				newPos++
			case LineDeletion:
				oldPos++
			default:
				oldPos++
				newPos++
			}
		}
	}
	return recs
}

// buildHunks groups changed lines into hunks, keeping hunkContext lines of
// context and merging changes whose context regions would touch.
func buildHunks(recs []lineRec) (hunks []Hunk, additions, deletions int) {
	for _, r := range recs {
		switch r.typ {
		case LineAddition:
			additions++
		case LineDeletion:
			deletions++
		}
	}
	if additions == 0 && deletions == 0 {
		return nil, 0, 0
	}

	// Index ranges of change groups separated by more than 2*context
	// unchanged lines.
	type span struct{ start, end int }
	var spans []span
	lastChange := -1
	for i, r := range recs {
		if r.typ == LineContext {
			continue
		}
		if len(spans) > 0 && lastChange >= 0 && i-lastChange <= 2*hunkContext {
			spans[len(spans)-1].end = i
		} else {
			spans = append(spans, span{start: i, end: i})
		}
		lastChange = i
	}

	for _, s := range spans {
		start := max(0, s.start-hunkContext)
		end := min(len(recs)-1, s.end+hunkContext)

		hunk := Hunk{}
		for i := start; i <= end; i++ {
			r := recs[i]
			hunk.Lines = append(hunk.Lines, Line{Type: r.typ, Content: r.content})
			switch r.typ {
			case LineAddition:
				hunk.NewLines++
			case LineDeletion:
				hunk.OldLines++
			default:
				hunk.OldLines++
				hunk.NewLines++
			}
		}

		first := recs[start]
		// Unified-diff convention: a zero-length range anchors to the
		// line before the change.
		hunk.OldStart = first.oldPos
		if hunk.OldLines > 0 {
			hunk.OldStart++
		}
		hunk.NewStart = first.newPos
		if hunk.NewLines > 0 {
			hunk.NewStart++
		}

		hunks = append(hunks, hunk)
	}
	return hunks, additions, deletions
}

// splitLines splits content into lines without the trailing newline,
// returning nil for empty content.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
