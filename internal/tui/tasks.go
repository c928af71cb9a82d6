package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daytask/internal/export"
	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

var errInvalidDate = errors.New("use YYYY-MM-DD")

// tasksModel is the main screen: status and date filters over the
// collection, newest first, with a summary line and a detail pane.
type tasksModel struct {
	tasks  *store.TaskStore
	now    store.Clock
	width  int
	height int

	opts    view.Options
	visible []store.Task
	summary view.Summary
	cursor  int
	detail  bool

	dateInput lineInput
}

func newTasksModel(ts *store.TaskStore, now store.Clock, status view.StatusFilter) tasksModel {
	m := tasksModel{
		tasks:     ts,
		now:       now,
		opts:      view.Options{Status: status, Sort: view.SortDateDesc},
		dateInput: newLineInput("Date: ", "YYYY-MM-DD, empty to clear", validDateOrEmpty),
	}
	m.refresh()
	return m
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) today() string {
	return view.Today(m.now())
}

func (m *tasksModel) refresh() {
	all := m.tasks.Tasks()
	m.visible = view.Apply(all, m.opts, m.today())
	m.summary = view.Summarize(all, m.today())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m tasksModel) selected() (store.Task, bool) {
	if m.cursor < len(m.visible) {
		return m.visible[m.cursor], true
	}
	return store.Task{}, false
}

func (m tasksModel) inputActive() bool {
	return m.dateInput.active
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.dateInput.active {
		var cmd tea.Cmd
		var value string
		var submitted bool
		m.dateInput, cmd, value, submitted = m.dateInput.update(msg)
		if submitted {
			m.opts.Date = value
			m.cursor = 0
			m.refresh()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tasksChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.detail {
			return m.updateDetail(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.visible) > 0 {
				m.detail = true
			}
		case key.Matches(msg, keys.Status):
			m.opts.Status = nextStatus(m.opts.Status)
			m.cursor = 0
			m.refresh()
		case key.Matches(msg, keys.DateFilter):
			cmd := m.dateInput.focus(m.opts.Date)
			return m, cmd
		case key.Matches(msg, keys.Clear):
			m.opts.Date = ""
			m.opts.Status = view.StatusAll
			m.refresh()
		case key.Matches(msg, keys.New):
			return m, openForm(nil)
		case key.Matches(msg, keys.Edit):
			if t, ok := m.selected(); ok {
				return m, openForm(&t)
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				return m, deleteTask(m.tasks, t)
			}
		}
	}
	return m, nil
}

func (m tasksModel) updateDetail(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	t, ok := m.selected()
	switch {
	case !ok, key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		m.detail = false
	case key.Matches(msg, keys.Edit):
		m.detail = false
		return m, openForm(&t)
	case key.Matches(msg, keys.Delete):
		m.detail = false
		return m, deleteTask(m.tasks, t)
	}
	return m, nil
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.detail {
		if t, ok := m.selected(); ok {
			hint := dimStyle.Render("e: edit  d: delete  esc: back")
			return focusBoxStyle.Width(w).Render(renderDetail(t, m.today()) + "\n\n" + hint)
		}
	}

	cards := m.renderCards()

	title := statusFilterTitle(m.opts.Status)
	if m.opts.Date != "" {
		title += " - " + export.FormatDate(m.opts.Date)
	}

	var filters []string
	for _, f := range view.StatusFilters {
		name := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == m.opts.Status {
			filters = append(filters, tabOnStyle.Render(name))
		} else {
			filters = append(filters, tabOffStyle.Render(name))
		}
	}
	filterRow := lipgloss.JoinHorizontal(lipgloss.Bottom, filters...)

	rows := []string{headingStyle.Render(title), filterRow}
	if m.dateInput.active {
		rows = append(rows, m.dateInput.view())
	}
	rows = append(rows, "")

	if len(m.visible) == 0 {
		rows = append(rows, dimStyle.Render("No tasks found. Press n to add one."))
	} else {
		rows = append(rows, renderTaskRows(m.visible, m.cursor, m.today(), w-6)...)
	}
	rows = append(rows, "")
	rows = append(rows, dimStyle.Render("  n: new  e: edit  d: delete  s: status  f: date  c: clear  enter: details"))

	return lipgloss.JoinVertical(lipgloss.Left, cards, boxStyle.Width(w).Render(strings.Join(rows, "\n")))
}

func (m tasksModel) renderCards() string {
	card := func(label string, n int, style lipgloss.Style) string {
		return cardStyle.Render(style.Render(fmt.Sprintf("%d", n)) + "\n" + dimStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", m.summary.Total, valueStyle),
		card("Today", m.summary.Today, todayBadgeStyle),
		card("Upcoming", m.summary.Upcoming, upcomingBadgeStyle),
		card("Overdue", m.summary.Overdue, overdueBadgeStyle),
	)
}

func openForm(t *store.Task) tea.Cmd {
	return func() tea.Msg { return openFormMsg{task: t} }
}

func deleteTask(ts *store.TaskStore, t store.Task) tea.Cmd {
	if err := ts.Remove(t.ID); err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Delete failed: %v", err), isError: true}
		}
	}
	return tea.Batch(
		func() tea.Msg { return tasksChangedMsg{} },
		func() tea.Msg { return statusMsg{text: "Task deleted successfully!"} },
	)
}
