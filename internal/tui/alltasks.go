package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/daytask/internal/export"
	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

// allTasksModel lists every task with free-text search, a date filter and a
// selectable sort order.
type allTasksModel struct {
	tasks  *store.TaskStore
	now    store.Clock
	width  int
	height int

	opts    view.Options
	visible []store.Task
	cursor  int
	detail  bool

	searchInput  lineInput
	searchBefore string
	dateInput    lineInput
}

func newAllTasksModel(ts *store.TaskStore, now store.Clock, sort view.SortOrder) allTasksModel {
	m := allTasksModel{
		tasks:       ts,
		now:         now,
		opts:        view.Options{Status: view.StatusAll, Sort: sort},
		searchInput: newLineInput("Search: ", "title or detail", nil),
		dateInput:   newLineInput("Date: ", "YYYY-MM-DD, empty to clear", validDateOrEmpty),
	}
	m.refresh()
	return m
}

func (m *allTasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m allTasksModel) today() string {
	return view.Today(m.now())
}

func (m *allTasksModel) refresh() {
	m.visible = view.Apply(m.tasks.Tasks(), m.opts, m.today())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m allTasksModel) selected() (store.Task, bool) {
	if m.cursor < len(m.visible) {
		return m.visible[m.cursor], true
	}
	return store.Task{}, false
}

func (m allTasksModel) inputActive() bool {
	return m.searchInput.active || m.dateInput.active
}

func (m allTasksModel) update(msg tea.Msg) (allTasksModel, tea.Cmd) {
	if m.searchInput.active {
		var cmd tea.Cmd
		var submitted bool
		m.searchInput, cmd, _, submitted = m.searchInput.update(msg)
		if !m.searchInput.active && !submitted {
			// esc puts back the search that was active before typing.
			m.opts.Search = m.searchBefore
		} else {
			// Search narrows the list as the user types.
			m.opts.Search = m.searchInput.input.Value()
		}
		m.refresh()
		return m, cmd
	}
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
		case key.Matches(msg, keys.Search):
			m.cursor = 0
			m.searchBefore = m.opts.Search
			cmd := m.searchInput.focus(m.opts.Search)
			return m, cmd
		case key.Matches(msg, keys.DateFilter):
			cmd := m.dateInput.focus(m.opts.Date)
			return m, cmd
		case key.Matches(msg, keys.Sort):
			m.opts.Sort = nextSort(m.opts.Sort)
			m.refresh()
		case key.Matches(msg, keys.Clear):
			m.opts.Search = ""
			m.opts.Date = ""
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

func (m allTasksModel) view() string {
	w := m.width - 4

	if m.detail {
		if t, ok := m.selected(); ok {
			hint := dimStyle.Render("e: edit  d: delete  esc: back")
			return focusBoxStyle.Width(w).Render(renderDetail(t, m.today()) + "\n\n" + hint)
		}
	}

	rows := []string{headingStyle.Render("All Tasks") + "  " + dimStyle.Render("View and manage all your tasks in one place")}

	var filters []string
	if m.opts.Search != "" {
		filters = append(filters, "search: "+valueStyle.Render(m.opts.Search))
	}
	if m.opts.Date != "" {
		filters = append(filters, "date: "+valueStyle.Render(export.FormatDate(m.opts.Date)))
	}
	filters = append(filters, "sort: "+valueStyle.Render(m.opts.Sort.Label()))
	rows = append(rows, dimStyle.Render(strings.Join(filters, "  ")))

	if m.searchInput.active {
		rows = append(rows, m.searchInput.view())
	}
	if m.dateInput.active {
		rows = append(rows, m.dateInput.view())
	}
	rows = append(rows, "")

	if len(m.visible) == 0 {
		if m.tasks.Len() == 0 {
			rows = append(rows, dimStyle.Render("No tasks yet. Press n to add one."))
		} else {
			rows = append(rows, dimStyle.Render("No tasks match your filters."))
		}
	} else {
		rows = append(rows, renderTaskRows(m.visible, m.cursor, m.today(), w-6)...)
	}
	rows = append(rows, "")
	rows = append(rows, dimStyle.Render("  /: search  f: date  o: sort  c: clear  e: edit  d: delete  enter: details"))

	return boxStyle.Width(w).Render(strings.Join(rows, "\n"))
}
