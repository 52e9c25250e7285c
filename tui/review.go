package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"changeview/config"
	"changeview/diff"
	"changeview/eventlog"
	"changeview/review"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	bucketStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	newFileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	editedFileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E8B339"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 0)
)

type viewMode int

const (
	viewPanel viewMode = iota
	viewDiff
)

// reloadMsg carries a fresh log snapshot from the watcher goroutine.
type reloadMsg struct {
	snapshot eventlog.Snapshot
}

type model struct {
	cfg      *config.Config
	reviewer *review.Reviewer
	snapshot eventlog.Snapshot
	records  []review.FileChangeRecord
	haveRecs bool
	newFiles []review.FileChangeRecord
	edited   []review.FileChangeRecord

	cursor      int
	currentView viewMode
	viewport    viewport.Model
	diffPath    string
	openFile    func(path string) error
	status      string
	width       int
	height      int
	ready       bool
}

func newModel(snapshot eventlog.Snapshot, cfg *config.Config, openFile func(string) error) model {
	m := model{
		cfg:      cfg,
		reviewer: review.NewReviewer(),
		openFile: openFile,
	}
	m.applySnapshot(snapshot)
	return m
}

// applySnapshot re-runs the aggregation for a (possibly unchanged) snapshot.
// The reviewer cache makes this identity-stable, so a watcher that fires
// without real changes does not produce new state.
func (m *model) applySnapshot(snapshot eventlog.Snapshot) {
	m.snapshot = snapshot
	records := m.reviewer.Review(snapshot.Version, snapshot.Events)
	if m.haveRecs && sameRecords(records, m.records) {
		return
	}
	m.records = records
	m.haveRecs = true
	m.newFiles, m.edited = review.Buckets(records)
	if max := len(m.newFiles) + len(m.edited) - 1; m.cursor > max && max >= 0 {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// sameRecords reports whether two record slices are the same backing slice,
// which is what the reviewer cache returns for an unchanged log.
func sameRecords(a, b []review.FileChangeRecord) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// entries flattens the buckets in display order: new files first.
func (m model) entries() []review.FileChangeRecord {
	entries := make([]review.FileChangeRecord, 0, len(m.newFiles)+len(m.edited))
	entries = append(entries, m.newFiles...)
	entries = append(entries, m.edited...)
	return entries
}

func (m model) selected() (review.FileChangeRecord, bool) {
	entries := m.entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return review.FileChangeRecord{}, false
	}
	return entries[m.cursor], true
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		return m, nil

	case reloadMsg:
		m.applySnapshot(msg.snapshot)
		if m.currentView == viewDiff {
			if rec, ok := m.findRecord(m.diffPath); ok && rec.CanDiff() {
				m.setDiffContent(rec)
			} else {
				m.currentView = viewPanel
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.currentView == viewDiff {
			return m.updateDiffView(msg)
		}
		return m.updatePanel(msg)
	}

	return m, nil
}

func (m model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries())-1 {
			m.cursor++
		}
	case "enter":
		rec, ok := m.selected()
		if !ok {
			break
		}
		if !rec.CanDiff() {
			m.status = fmt.Sprintf("No diff available for %s", rec.FilePath)
			break
		}
		if !m.ready {
			break
		}
		m.setDiffContent(rec)
		m.currentView = viewDiff
		m.status = ""
	case "o":
		rec, ok := m.selected()
		if !ok {
			break
		}
		if m.openFile == nil {
			m.status = "File opening is not available here"
			break
		}
		if err := m.openFile(rec.FilePath); err != nil {
			m.status = fmt.Sprintf("Could not open %s: %v", rec.FilePath, err)
		} else {
			m.status = fmt.Sprintf("Opened %s", rec.FilePath)
		}
	}
	return m, nil
}

func (m model) updateDiffView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.currentView = viewPanel
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) setDiffContent(rec review.FileChangeRecord) {
	lines := diff.Render(*rec.FirstOriginalContent, *rec.LastNewContent)
	m.viewport.SetContent(RenderDiff(lines, m.cfg.TabWidth))
	m.viewport.GotoTop()
	m.diffPath = rec.FilePath
}

func (m model) findRecord(path string) (review.FileChangeRecord, bool) {
	for _, rec := range m.entries() {
		if rec.FilePath == path {
			return rec, true
		}
	}
	return review.FileChangeRecord{}, false
}

func (m model) View() string {
	// An empty log renders nothing at all, not an empty-state placeholder.
	if len(m.newFiles)+len(m.edited) == 0 {
		return ""
	}

	if m.currentView == viewDiff {
		return m.diffView()
	}
	return m.panelView()
}

func (m model) panelView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("File Changes"))
	b.WriteString("\n\n")

	row := 0
	if len(m.newFiles) > 0 {
		b.WriteString(bucketStyle.Render(fmt.Sprintf("New Files (%d)", len(m.newFiles))))
		b.WriteString("\n")
		for _, rec := range m.newFiles {
			b.WriteString(m.fileRow(rec, row, newFileStyle, "+"))
			row++
		}
		b.WriteString("\n")
	}
	if len(m.edited) > 0 {
		b.WriteString(bucketStyle.Render(fmt.Sprintf("Edited Files (%d)", len(m.edited))))
		b.WriteString("\n")
		for _, rec := range m.edited {
			b.WriteString(m.fileRow(rec, row, editedFileStyle, "~"))
			row++
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("up/down: select   enter: view diff   o: open file   q: quit"))
	return b.String()
}

func (m model) fileRow(rec review.FileChangeRecord, row int, style lipgloss.Style, marker string) string {
	prefix := "  "
	if row == m.cursor {
		prefix = selectedStyle.Render("> ")
	}

	line := style.Render(fmt.Sprintf("%s %s", marker, rec.FilePath))
	if rec.Classification == review.ClassEdited && !rec.CanDiff() {
		line += dimStyle.Render(" (no diff available)")
	}
	return prefix + line + "\n"
}

func (m model) diffView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.diffPath))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: scroll   esc: back   ctrl+c: quit"))
	return b.String()
}

// StartReview opens the review panel for a task log snapshot. When logPath is
// non-empty and watching is enabled, the panel refreshes as the log file
// grows. The openFile callback hands a selected path to the host editor; nil
// disables the affordance.
func StartReview(snapshot eventlog.Snapshot, logPath string, cfg *config.Config, openFile func(string) error) error {
	p := tea.NewProgram(newModel(snapshot, cfg, openFile), tea.WithAltScreen())

	if cfg.Watch && logPath != "" {
		watcher, err := eventlog.WatchTaskLog(logPath, func(snap eventlog.Snapshot) {
			p.Send(reloadMsg{snapshot: snap})
		})
		if err != nil {
			fmt.Printf("Warning: could not watch task log: %v\n", err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run review panel: %w", err)
	}
	return nil
}
