package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cohort/internal/conflict"
	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/registry"
	"github.com/Iron-Ham/cohort/internal/tui/styles"
	"github.com/Iron-Ham/cohort/internal/util"
)

// snapshot is one consistent-enough view of the coordination state. Each
// field is read independently, so a writer racing the load can skew one
// panel against another for a single frame; the next refresh heals it.
type snapshot struct {
	Sessions  []registry.Session
	Conflicts []conflict.FileConflict
	Goal      *goal.Goal
	Tasks     ledger.Lists
	Err       error
	At        time.Time
}

// Model is the dashboard's Bubbletea model.
type Model struct {
	reg     *registry.Registry
	tracker *goal.Tracker
	tasks   *ledger.Ledger

	pollInterval time.Duration
	spinner      spinner.Model
	width        int
	height       int
	loading      bool
	snap         snapshot
}

// NewModel creates a dashboard model over the given state accessors.
func NewModel(reg *registry.Registry, tracker *goal.Tracker, tasks *ledger.Ledger, pollInterval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	return Model{
		reg:          reg,
		tracker:      tracker,
		tasks:        tasks,
		pollInterval: pollInterval,
		spinner:      sp,
		loading:      true,
	}
}

// Init starts the spinner, the first load, and the poll timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), tick(m.pollInterval))
}

// load reads the full coordination state off the UI goroutine.
func (m Model) load() tea.Cmd {
	reg, tracker, tasks := m.reg, m.tracker, m.tasks
	return func() tea.Msg {
		snap := snapshot{At: time.Now()}

		sessions, err := reg.List()
		if err != nil {
			snap.Err = err
			return snapshotMsg(snap)
		}
		snap.Sessions = sessions
		snap.Conflicts = conflict.Detect(sessions)

		if snap.Goal, err = tracker.Current(); err != nil {
			snap.Err = err
			return snapshotMsg(snap)
		}
		lists, err := tasks.List()
		if err != nil {
			snap.Err = err
			return snapshotMsg(snap)
		}
		snap.Tasks = *lists
		return snapshotMsg(snap)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.load()
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.load(), tick(m.pollInterval))

	case refreshMsg:
		return m, m.load()

	case snapshotMsg:
		m.loading = false
		m.snap = snapshot(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render("cohort dashboard"))
	b.WriteString("\n")

	if m.loading && m.snap.At.IsZero() {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.Muted.Render(" loading coordination state..."))
		b.WriteString("\n")
		return b.String()
	}

	if m.snap.Err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("error: %v", m.snap.Err)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderGoalPanel(width))
	b.WriteString("\n")
	b.WriteString(m.renderSessionsPanel(width))
	b.WriteString("\n")
	b.WriteString(m.renderConflictsPanel(width))
	b.WriteString("\n")
	b.WriteString(m.renderTasksPanel(width))
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderGoalPanel(width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Goal"))
	b.WriteString("\n")
	if m.snap.Goal == nil {
		b.WriteString(styles.Muted.Render("no goal set"))
	} else {
		b.WriteString(util.TruncateANSI(m.snap.Goal.Text, width-8))
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("set via %s, %s",
			m.snap.Goal.Source, util.FormatAge(m.snap.Goal.UpdatedAt))))
	}
	return styles.ContentBox.Width(width - 2).Render(b.String())
}

func (m Model) renderSessionsPanel(width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Sessions (%d)", len(m.snap.Sessions))))
	b.WriteString("\n")

	if len(m.snap.Sessions) == 0 {
		b.WriteString(styles.Muted.Render("no live sessions"))
		return styles.ContentBox.Width(width - 2).Render(b.String())
	}

	for i, s := range m.snap.Sessions {
		if i > 0 {
			b.WriteString("\n")
		}
		badge := styles.StatusBadge.
			Background(styles.SessionStatusColor(string(s.Status))).
			Foreground(lipgloss.Color("#000000")).
			Render(string(s.Status))
		line := badge + styles.Text.Bold(true).Render(s.Name)
		if s.CurrentTask != "" {
			line += styles.Muted.Render("  " + util.TruncateString(s.CurrentTask, 40))
		}
		b.WriteString(util.TruncateANSI(line, width-8))
		b.WriteString("\n")

		detail := fmt.Sprintf("  %d file(s) held, last active %s",
			len(s.ActiveFiles), util.FormatAge(s.LastActive))
		b.WriteString(styles.Muted.Render(detail))
		b.WriteString("\n")
	}
	return styles.ContentBox.Width(width - 2).Render(b.String())
}

func (m Model) renderConflictsPanel(width int) string {
	var b strings.Builder
	title := fmt.Sprintf("Conflicts (%d)", len(m.snap.Conflicts))
	if len(m.snap.Conflicts) > 0 {
		b.WriteString(styles.Warning.Bold(true).Render(title))
	} else {
		b.WriteString(styles.Title.Render(title))
	}
	b.WriteString("\n")

	if len(m.snap.Conflicts) == 0 {
		b.WriteString(styles.Secondary.Render("no overlapping files"))
		return styles.ContentBox.Width(width - 2).Render(b.String())
	}

	for _, c := range m.snap.Conflicts {
		line := fmt.Sprintf("%s  held by %s",
			styles.Warning.Render(c.File), strings.Join(c.Sessions, ", "))
		b.WriteString(util.TruncateANSI(line, width-8))
		b.WriteString("\n")
	}
	return styles.ContentBox.Width(width - 2).Render(b.String())
}

func (m Model) renderTasksPanel(width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Tasks (%d pending, %d done)",
		len(m.snap.Tasks.Pending), len(m.snap.Tasks.Completed))))
	b.WriteString("\n")

	if len(m.snap.Tasks.Pending) == 0 {
		b.WriteString(styles.Muted.Render("backlog is empty"))
		return styles.ContentBox.Width(width - 2).Render(b.String())
	}

	for _, task := range m.snap.Tasks.Pending {
		line := fmt.Sprintf("[%s] %s", priorityStyle(task.Priority).Render(string(task.Priority)), task.Title)
		b.WriteString(util.TruncateANSI(line, width-8))
		b.WriteString("\n")
	}
	return styles.ContentBox.Width(width - 2).Render(b.String())
}

func (m Model) renderHelpBar() string {
	keys := []string{
		styles.HelpKey.Render("r") + styles.Muted.Render(" refresh"),
		styles.HelpKey.Render("q") + styles.Muted.Render(" quit"),
	}
	status := styles.Muted.Render("updated " + util.FormatAge(m.snap.At))
	return styles.HelpBar.Render(strings.Join(keys, "  ") + "  " + status)
}

func priorityStyle(p ledger.Priority) lipgloss.Style {
	switch p {
	case ledger.PriorityHigh:
		return styles.Error
	case ledger.PriorityLow:
		return styles.Muted
	default:
		return styles.Warning
	}
}
