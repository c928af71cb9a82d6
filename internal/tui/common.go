package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/daytask/internal/export"
	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

// viewState represents the currently active screen.
type viewState int

const (
	viewTasks viewState = iota
	viewAllTasks
	viewStats
	viewLogin
)

// Tab names for the screens reachable after login, indexed by viewState.
var viewNames = []string{"Tasks", "All Tasks", "Stats"}

// overlay is drawn on top of the active screen and captures input.
type overlay int

const (
	overlayNone overlay = iota
	overlayForm
	overlayExport
	overlayConfirm
)

// confirmation is a destructive action waiting for y/n.
type confirmation struct {
	prompt string
	run    func() tea.Cmd
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type loggedInMsg struct {
	user string
}

type tasksChangedMsg struct{}

type openFormMsg struct {
	task *store.Task // nil for a new task
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusBadge(s view.Status) string {
	switch s {
	case view.Overdue:
		return overdueBadgeStyle.Render("overdue")
	case view.DueToday:
		return todayBadgeStyle.Render("today")
	}
	return upcomingBadgeStyle.Render("upcoming")
}

// timeSpan renders "09:00" or "09:00 - 10:30".
func timeSpan(t store.Task) string {
	if t.StopTime == "" {
		return t.StartTime
	}
	return t.StartTime + " - " + t.StopTime
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// renderTaskRows draws a cursor list of tasks.
func renderTaskRows(tasks []store.Task, cursor int, today string, width int) []string {
	titleWidth := max(10, width-42)
	var rows []string
	rows = append(rows, dimStyle.Render(fmt.Sprintf("  %-10s %-13s %-*s %s", "Date", "Time", titleWidth, "Title", "Status")))
	for i, t := range tasks {
		prefix := "  "
		style := rowStyle
		if i == cursor {
			prefix = "> "
			style = cursorRowStyle
		}
		line := style.Render(fmt.Sprintf("%s%-10s %-13s %-*s", prefix,
			export.FormatDate(t.Date), timeSpan(t), titleWidth, truncate(t.Title, titleWidth)))
		rows = append(rows, line+" "+statusBadge(view.Classify(t, today)))
	}
	return rows
}

// renderDetail draws every field of a task.
func renderDetail(t store.Task, today string) string {
	rows := []string{
		headingStyle.Render(t.Title) + "  " + statusBadge(view.Classify(t, today)),
		"",
		dimStyle.Render("Date:  ") + export.FormatDate(t.Date),
		dimStyle.Render("Start: ") + t.StartTime,
	}
	if t.StopTime != "" {
		rows = append(rows, dimStyle.Render("Stop:  ")+t.StopTime)
	}
	if t.TaskDetail != "" {
		rows = append(rows, "", t.TaskDetail)
	}
	return strings.Join(rows, "\n")
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	return max(0, cursor)
}

func nextStatus(f view.StatusFilter) view.StatusFilter {
	for i, s := range view.StatusFilters {
		if s == f {
			return view.StatusFilters[(i+1)%len(view.StatusFilters)]
		}
	}
	return view.StatusAll
}

func nextSort(o view.SortOrder) view.SortOrder {
	for i, s := range view.SortOrders {
		if s == o {
			return view.SortOrders[(i+1)%len(view.SortOrders)]
		}
	}
	return view.SortDateDesc
}

func statusFilterTitle(f view.StatusFilter) string {
	switch f {
	case view.StatusToday:
		return "Today's Tasks"
	case view.StatusUpcoming:
		return "Upcoming Tasks"
	}
	return "All Tasks"
}
