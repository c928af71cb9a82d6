package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

const statsDays = 7

type statsModel struct {
	tasks  *store.TaskStore
	now    store.Clock
	width  int
	height int

	summary view.Summary
	dates   []string
	counts  map[string]int
	offset  int // weeks ahead of today (0 = the coming seven days)

	chart barchart.Model
}

func newStatsModel(ts *store.TaskStore, now store.Clock) statsModel {
	m := statsModel{
		tasks: ts,
		now:   now,
		chart: barchart.New(60, 12),
	}
	m.refresh()
	return m
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

// dateRange returns the dates shown in the chart, starting today plus offset weeks.
func (m statsModel) dateRange() []time.Time {
	now := m.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, statsDays*m.offset)
	days := make([]time.Time, statsDays)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

func (m *statsModel) refresh() {
	all := m.tasks.Tasks()
	m.summary = view.Summarize(all, view.Today(m.now()))
	m.dates = nil
	for _, d := range m.dateRange() {
		m.dates = append(m.dates, d.Format(store.DateLayout))
	}
	m.counts = view.CountByDate(all, m.dates)
	m.buildChart()
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
				m.refresh()
			}
		case key.Matches(msg, keys.Down):
			m.offset++
			m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := max(20, m.width-8)
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}
	m.chart = barchart.New(chartWidth, chartHeight)

	today := view.Today(m.now())
	var bars []barchart.BarData
	for _, d := range m.dateRange() {
		date := d.Format(store.DateLayout)
		color := colorUpcoming
		if date == today {
			color = colorToday
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  date,
				Value: float64(m.counts[date]),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	days := m.dateRange()
	dateLabel := dimStyle.Render(fmt.Sprintf("%s - %s", days[0].Format("Jan 02"), days[len(days)-1].Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, headingStyle.Render("Stats"), "  ", dateLabel)

	summary := fmt.Sprintf("  %s %d   %s %d   %s %d   %s %d",
		dimStyle.Render("Total"), m.summary.Total,
		todayBadgeStyle.Render("Today"), m.summary.Today,
		upcomingBadgeStyle.Render("Upcoming"), m.summary.Upcoming,
		overdueBadgeStyle.Render("Overdue"), m.summary.Overdue,
	)

	nav := dimStyle.Render("  ↑/↓: previous/next week")

	return boxStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", summary, "", m.chart.View(), "", m.renderTable(w), "", nav,
		),
	)
}

func (m statsModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, dimStyle.Render(fmt.Sprintf("  %-12s %6s", "Date", "Tasks")))
	rows = append(rows, dimStyle.Render("  "+strings.Repeat("─", min(w-6, 19))))
	for _, d := range m.dates {
		rows = append(rows, fmt.Sprintf("  %-12s %6d", d, m.counts[d]))
	}
	return strings.Join(rows, "\n")
}
