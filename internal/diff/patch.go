package diff

import (
	"fmt"
	"strings"
	"time"
)

// Clock provides the current time. Use RealClock in production and a fixed
// clock in tests so patch output is reproducible.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// Formatter renders Data values as unified-diff patch text.
type Formatter struct {
	clock Clock
}

// NewFormatter creates a Formatter using the given clock.
// A nil clock falls back to RealClock.
func NewFormatter(clock Clock) *Formatter {
	if clock == nil {
		clock = RealClock{}
	}
	return &Formatter{clock: clock}
}

// GeneratePatch renders the diff with the default wall clock.
func GeneratePatch(data Data) string {
	return NewFormatter(nil).GeneratePatch(data)
}

// GeneratePatch renders the diff as unified-diff text.
//
// The output starts with a two-line comment header naming the version pair
// and the generation time. Each file block begins with a status-dependent
// file-pair header, followed by its hunks; file blocks are separated by a
// blank line. Line content is emitted verbatim after its one-character
// prefix - no escaping, mirroring plain-text patch conventions.
//
// Apart from the timestamp line, identical input yields identical output.
func (f *Formatter) GeneratePatch(data Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Diff between version %d and version %d\n", data.FromVersion, data.ToVersion)
	fmt.Fprintf(&b, "# Generated at %s\n", f.clock.Now().Format(time.RFC3339))

	for _, file := range data.Files {
		switch file.Status {
		case StatusAdded:
			b.WriteString("new file mode 100644\n")
			b.WriteString("--- /dev/null\n")
			fmt.Fprintf(&b, "+++ b/%s\n", file.Path)
		case StatusRemoved:
			b.WriteString("deleted file mode 100644\n")
			fmt.Fprintf(&b, "--- a/%s\n", file.Path)
			b.WriteString("+++ /dev/null\n")
		default:
			fmt.Fprintf(&b, "--- a/%s\n", file.Path)
			fmt.Fprintf(&b, "+++ b/%s\n", file.Path)
		}

		for _, hunk := range file.Hunks {
			fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
				hunk.OldStart, hunk.OldLines, hunk.NewStart, hunk.NewLines)
			for _, line := range hunk.Lines {
				b.WriteString(linePrefix(line.Type))
				b.WriteString(line.Content)
				b.WriteByte('\n')
			}
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func linePrefix(t LineType) string {
	switch t {
	case LineAddition:
		return "+"
	case LineDeletion:
		return "-"
	default:
		return " "
	}
}

func patchFileName(from, to int) string {
	return fmt.Sprintf("diff_v%d_to_v%d.patch", from, to)
}
