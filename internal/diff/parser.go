package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	diffHeaderRegex      = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRegex      = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)
	oldFileNullRegex     = regexp.MustCompile(`^--- /dev/null$`)
	newFileNullRegex     = regexp.MustCompile(`^\+\+\+ /dev/null$`)
	newFileModeRegex     = regexp.MustCompile(`^new file mode (\d+)$`)
	deletedFileModeRegex = regexp.MustCompile(`^deleted file mode (\d+)$`)
	fileHeaderRegex      = regexp.MustCompile(`^(?:---|\+\+\+) [ab]/(.+)$`)
)

// Parse converts raw `git diff` output into structured Data.
// Versions are left zero; the caller sets them when the diff is anchored to
// snapshot versions. Binary file blocks produce a File with no hunks.
func Parse(output string) (Data, error) {
	var data Data
	if output == "" {
		return data, nil
	}

	var current *File
	var hunk *Hunk

	flushHunk := func() {
		if current != nil && hunk != nil {
			current.Hunks = append(current.Hunks, *hunk)
			hunk = nil
		}
	}
	flushFile := func() {
		flushHunk()
		if current != nil {
			data.Files = append(data.Files, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		if m := diffHeaderRegex.FindStringSubmatch(line); m != nil {
			flushFile()
			current = &File{Path: m[2], Status: StatusModified}
			continue
		}
		if current == nil {
			continue
		}

		if oldFileNullRegex.MatchString(line) || newFileModeRegex.MatchString(line) {
			current.Status = StatusAdded
			continue
		}
		if newFileNullRegex.MatchString(line) || deletedFileModeRegex.MatchString(line) {
			current.Status = StatusRemoved
			continue
		}
		if hunk == nil && fileHeaderRegex.MatchString(line) {
			continue
		}

		if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
			flushHunk()
			h := Hunk{OldLines: 1, NewLines: 1}
			var err error
			if h.OldStart, err = strconv.Atoi(m[1]); err != nil {
				return Data{}, fmt.Errorf("invalid old start in hunk header: %s", line)
			}
			if m[2] != "" {
				if h.OldLines, err = strconv.Atoi(m[2]); err != nil {
					return Data{}, fmt.Errorf("invalid old count in hunk header: %s", line)
				}
			}
			if h.NewStart, err = strconv.Atoi(m[3]); err != nil {
				return Data{}, fmt.Errorf("invalid new start in hunk header: %s", line)
			}
			if m[4] != "" {
				if h.NewLines, err = strconv.Atoi(m[4]); err != nil {
					return Data{}, fmt.Errorf("invalid new count in hunk header: %s", line)
				}
			}
			hunk = &h
			continue
		}

		if hunk == nil {
			// Mode changes, index lines, binary markers and similar
			// metadata are not needed for display.
			continue
		}

		if line == "" {
			hunk.Lines = append(hunk.Lines, Line{Type: LineContext})
			continue
		}
		content := line[1:]
		switch line[0] {
		case ' ':
			hunk.Lines = append(hunk.Lines, Line{Type: LineContext, Content: content})
		case '-':
			hunk.Lines = append(hunk.Lines, Line{Type: LineDeletion, Content: content})
			current.Deletions++
		case '+':
			hunk.Lines = append(hunk.Lines, Line{Type: LineAddition, Content: content})
			current.Additions++
		case '\\':
			// "\ No newline at end of file" - skip but don't error.
		default:
			// Unknown prefix - end of hunk or malformed input; skip.
		}
	}

	flushFile()
	return data, nil
}
