// Package app contains the root application model.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kijko/kijko/internal/config"
	"github.com/kijko/kijko/internal/diff"
	"github.com/kijko/kijko/internal/git"
	"github.com/kijko/kijko/internal/keys"
	"github.com/kijko/kijko/internal/layout"
	"github.com/kijko/kijko/internal/log"
	"github.com/kijko/kijko/internal/pubsub"
	"github.com/kijko/kijko/internal/snapshot"
	"github.com/kijko/kijko/internal/ui/diffview"
	"github.com/kijko/kijko/internal/ui/mapview"
	"github.com/kijko/kijko/internal/ui/styles"
	"github.com/kijko/kijko/internal/watcher"
)

// pane identifies which side of the split has focus.
type pane int

const (
	paneMap pane = iota
	paneDiff
)

// ExportFileName is where the map export lands, relative to the
// working directory.
const ExportFileName = "kijko-map.svg"

// Model is the root application state.
type Model struct {
	cfg       config.Config
	keys      keys.KeyMap
	exec      git.Executor
	snapshots *snapshot.Service
	clipboard Clipboard
	project   string

	mapPane  mapview.Model
	diffPane diffview.Model
	focus    pane

	width  int
	height int

	showStatus bool
	showHelp   bool
	status     string
	statusErr  bool

	// File watcher for auto-refresh (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.ChangeEvent]
}

// New creates the root model. snapshots may be nil when the snapshot
// store could not be opened; the related keys then report an error
// instead of acting. gitDir is the repository's .git directory, used
// for auto-refresh when enabled.
func New(cfg config.Config, exec git.Executor, snapshots *snapshot.Service, project, gitDir string) Model {
	var (
		watcherHandle   *watcher.Watcher
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[watcher.ChangeEvent]
	)

	if cfg.AutoRefresh && gitDir != "" {
		w, err := watcher.New(watcher.DefaultConfig(gitDir))
		if err == nil {
			if _, err := w.Start(); err == nil {
				watcherHandle = w
				var ctx context.Context
				ctx, watcherCancel = context.WithCancel(context.Background())
				watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// Silently ignore watcher init errors - the app works fine
		// without auto-refresh.
	}

	return Model{
		cfg:             cfg,
		keys:            keys.DefaultKeyMap(),
		exec:            exec,
		snapshots:       snapshots,
		clipboard:       SystemClipboard{},
		project:         project,
		mapPane:         mapview.New(nil, cfg.UI.ShowPaths, cfg.UI.ShowCommits),
		diffPane:        diffview.New(0, 0),
		showStatus:      cfg.UI.ShowStatusBar,
		watcherHandle:   watcherHandle,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}
}

// WithClipboard replaces the clipboard implementation, for tests.
func (m Model) WithClipboard(c Clipboard) Model {
	m.clipboard = c
	return m
}

// Messages produced by the async commands.

type worktreesMsg struct {
	worktrees []layout.Worktree
	err       error
}

type snapshotMsg struct {
	version int
	files   int
	err     error
}

type diffMsg struct {
	from, to int
	files    int
	err      error
	set      func(*diffview.Model)
}

type workingDiffMsg struct {
	data diff.Data
	err  error
}

type exportMsg struct {
	path string
	err  error
}

// Init implements tea.Model. It kicks off the first map refresh and
// starts the watcher listener when auto-refresh is on.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshCmd()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mapPane.SetWidth(msg.Width / 2)
		m.diffPane.SetSize(msg.Width-msg.Width/2-1, max(msg.Height-2, 1))
		return m, nil

	case worktreesMsg:
		if msg.err != nil {
			m = m.withError(fmt.Sprintf("refresh failed: %v", msg.err))
			return m, nil
		}
		m.mapPane.SetWorktrees(msg.worktrees)
		m = m.withStatus(fmt.Sprintf("%d worktrees", len(msg.worktrees)))
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m = m.withError(fmt.Sprintf("snapshot failed: %v", msg.err))
			return m, nil
		}
		m = m.withStatus(fmt.Sprintf("captured snapshot v%d (%d files)", msg.version, msg.files))
		return m, nil

	case diffMsg:
		if msg.err != nil {
			m = m.withError(fmt.Sprintf("diff failed: %v", msg.err))
			return m, nil
		}
		msg.set(&m.diffPane)
		m.focus = paneDiff
		m = m.withStatus(fmt.Sprintf("diff v%d → v%d (%d files)", msg.from, msg.to, msg.files))
		return m, nil

	case workingDiffMsg:
		if msg.err != nil {
			m = m.withError(fmt.Sprintf("working diff failed: %v", msg.err))
			return m, nil
		}
		if len(msg.data.Files) == 0 {
			m = m.withStatus("working tree clean")
			return m, nil
		}
		m.diffPane.SetData(msg.data)
		m.focus = paneDiff
		m = m.withStatus(fmt.Sprintf("working diff (%d files)", len(msg.data.Files)))
		return m, nil

	case exportMsg:
		if msg.err != nil {
			m = m.withError(fmt.Sprintf("export failed: %v", msg.err))
			return m, nil
		}
		m = m.withStatus("exported map to " + msg.path)
		return m, nil

	case pubsub.Event[watcher.ChangeEvent]:
		switch msg.Payload.Kind {
		case watcher.RepoChanged:
			log.Debug(log.CatWatcher, "repository changed, refreshing map")
			return m, tea.Batch(m.refreshCmd(), m.watcherListener.Listen())
		case watcher.WatchError:
			log.Warn(log.CatWatcher, "watcher error received", "error", msg.Payload.Err)
			return m, m.watcherListener.Listen()
		}
		return m, m.watcherListener.Listen()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.focus == paneDiff:
			m.focus = paneMap
		default:
			m.diffPane.Clear()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus == paneDiff {
			m.diffPane.ScrollUp(1)
		} else {
			m.mapPane.MoveUp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus == paneDiff {
			m.diffPane.ScrollDown(1)
		} else {
			m.mapPane.MoveDown()
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.focus = paneMap
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.diffPane.HasData() {
			m.focus = paneDiff
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Snapshot):
		return m, m.captureCmd()

	case key.Matches(msg, m.keys.Diff):
		return m, m.compareCmd()

	case key.Matches(msg, m.keys.WorkingDiff):
		return m, m.workingDiffCmd()

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.Yank):
		selected := m.mapPane.Selected()
		if selected == nil {
			return m, nil
		}
		if err := m.clipboard.Copy(selected.Path); err != nil {
			m = m.withError(fmt.Sprintf("copy failed: %v", err))
		} else {
			m = m.withStatus("copied " + selected.Path)
		}
		return m, nil
	}

	return m, nil
}

// shutdown releases the watcher resources before quitting.
func (m Model) shutdown() {
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
	}
}

func (m Model) withStatus(s string) Model {
	m.status = s
	m.statusErr = false
	return m
}

func (m Model) withError(s string) Model {
	m.status = s
	m.statusErr = true
	return m
}

// refreshCmd reloads the worktree map from git.
func (m Model) refreshCmd() tea.Cmd {
	exec := m.exec
	return func() tea.Msg {
		worktrees, err := git.CollectWorktrees(exec)
		return worktreesMsg{worktrees: worktrees, err: err}
	}
}

// captureCmd snapshots the selected worktree's tracked files.
func (m Model) captureCmd() tea.Cmd {
	if m.snapshots == nil {
		return func() tea.Msg {
			return snapshotMsg{err: fmt.Errorf("snapshot store unavailable")}
		}
	}
	selected := m.mapPane.Selected()
	if selected == nil {
		return func() tea.Msg {
			return snapshotMsg{err: fmt.Errorf("no worktree selected")}
		}
	}

	service, project, dir := m.snapshots, m.project, selected.Path
	return func() tea.Msg {
		snap, err := service.Capture(context.Background(), project, dir)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{version: snap.Version, files: len(snap.Files)}
	}
}

// compareCmd diffs the two most recent snapshots.
func (m Model) compareCmd() tea.Cmd {
	if m.snapshots == nil {
		return func() tea.Msg {
			return diffMsg{err: fmt.Errorf("snapshot store unavailable")}
		}
	}

	service, project := m.snapshots, m.project
	return func() tea.Msg {
		latest, err := service.Latest(project)
		if err != nil {
			return diffMsg{err: err}
		}
		if latest < 2 {
			return diffMsg{err: fmt.Errorf("need at least two snapshots, have %d", latest)}
		}

		data, err := service.Compare(context.Background(), project, latest-1, latest)
		if err != nil {
			return diffMsg{err: err}
		}
		return diffMsg{
			from:  data.FromVersion,
			to:    data.ToVersion,
			files: len(data.Files),
			set:   func(pane *diffview.Model) { pane.SetData(data) },
		}
	}
}

// workingDiffCmd shows the uncommitted changes of the selected
// worktree in the diff pane.
func (m Model) workingDiffCmd() tea.Cmd {
	selected := m.mapPane.Selected()
	if selected == nil {
		return func() tea.Msg {
			return workingDiffMsg{err: fmt.Errorf("no worktree selected")}
		}
	}

	exec, dir := m.exec, selected.Path
	return func() tea.Msg {
		raw, err := exec.WorkingDirDiff(dir)
		if err != nil {
			return workingDiffMsg{err: err}
		}
		data, err := diff.Parse(raw)
		if err != nil {
			return workingDiffMsg{err: err}
		}
		return workingDiffMsg{data: data}
	}
}

// exportCmd renders the current map to an SVG file.
func (m Model) exportCmd() tea.Cmd {
	worktrees := m.mapPane.Worktrees()
	opts := m.cfg.Map.LayoutOptions()
	return func() tea.Msg {
		path, err := exportSVG(worktrees, opts)
		return exportMsg{path: path, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.mapPane.View(),
		" ",
		m.diffPane.View(),
	)

	sections := []string{content}
	if m.showHelp {
		sections = append(sections, styles.HelpStyle.Render(m.helpLine()))
	}
	if m.showStatus {
		sections = append(sections, m.statusLine())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusLine() string {
	if m.status == "" {
		return styles.StatusBarStyle.Render("? for help")
	}
	if m.statusErr {
		return styles.StatusErrStyle.Render(m.status)
	}
	return styles.StatusInfoStyle.Render(m.status)
}

// helpLine lists the action keybindings in one row.
func (m Model) helpLine() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down,
		m.keys.Refresh, m.keys.Snapshot, m.keys.Diff,
		m.keys.WorkingDiff, m.keys.Export, m.keys.Yank,
		m.keys.ToggleStatus, m.keys.Quit,
	}

	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += "  "
		}
		line += b.Help().Key + " " + b.Help().Desc
	}
	return line
}
