package app

import (
	"fmt"
	"os"

	"github.com/kijko/kijko/internal/layout"
	"github.com/kijko/kijko/internal/log"
	"github.com/kijko/kijko/internal/svg"
)

// exportSVG lays out the worktrees and writes the rendered map next to
// the working directory. Returns the written path.
func exportSVG(worktrees []layout.Worktree, opts []layout.Option) (string, error) {
	l := layout.Build(worktrees, opts...)
	doc := svg.NewRenderer().Render(l)

	if err := os.WriteFile(ExportFileName, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ExportFileName, err)
	}

	log.Info(log.CatSVG, "exported map",
		"path", ExportFileName, "worktrees", len(worktrees),
		"width", l.Width, "height", l.Height)
	return ExportFileName, nil
}
