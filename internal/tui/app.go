package tui

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daytask/internal/config"
	"github.com/sadopc/daytask/internal/export"
	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

// App is the root Bubble Tea model.
type App struct {
	tasks   *store.TaskStore
	session *store.Session
	cfg     config.Config
	now     store.Clock
	width   int
	height  int

	user         string
	activeView   viewState
	overlay      overlay
	exportCursor int
	confirm      confirmation
	showHelp     bool

	login    loginModel
	taskList tasksModel
	allTasks allTasksModel
	stats    statsModel
	form     taskFormModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(ts *store.TaskStore, sess *store.Session, cfg config.Config, now store.Clock) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		tasks:      ts,
		session:    sess,
		cfg:        cfg,
		now:        now,
		activeView: viewLogin,
		login:      newLoginModel(sess),
		taskList:   newTasksModel(ts, now, cfg.Status()),
		allTasks:   newAllTasksModel(ts, now, cfg.Sort()),
		stats:      newStatsModel(ts, now),
		form:       newTaskFormModel(ts),
		help:       h,
	}
	if user, ok := sess.Restore(); ok {
		a.user = user
		a.activeView = viewTasks
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.activeView == viewLogin {
		return a.login.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, a.height)
		a.taskList.setSize(a.width, contentHeight)
		a.allTasks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.form.width = a.width
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case loggedInMsg:
		a.user = msg.user
		a.activeView = viewTasks
		a.status = "Welcome, " + msg.user
		a.statusErr = false
		a.refreshAll()
		return a, nil

	case tasksChangedMsg:
		a.refreshAll()
		return a, nil

	case openFormMsg:
		a.overlay = overlayForm
		var cmd tea.Cmd
		a.form, cmd = a.form.open(msg.task, view.Today(a.now()))
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	if a.activeView == viewLogin {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}

	if a.overlay == overlayForm {
		var cmd tea.Cmd
		var done bool
		a.form, cmd, done = a.form.update(msg)
		if done {
			a.overlay = overlayNone
		}
		return a, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.updateActiveView(msg)
	}

	switch a.overlay {
	case overlayExport:
		return a.updateExportPicker(km)
	case overlayConfirm:
		return a.updateConfirm(km)
	}

	// If a child view is capturing input (e.g. search), delegate first.
	if a.inputActive() {
		return a.updateActiveView(msg)
	}

	switch {
	case key.Matches(km, keys.Export):
		a.overlay = overlayExport
		a.exportCursor = 0
		return a, nil
	case key.Matches(km, keys.Restore):
		return a.askRestore()
	case key.Matches(km, keys.ClearAll):
		return a.askClearAll()
	case key.Matches(km, keys.Logout):
		return a.logout()
	case key.Matches(km, keys.Quit):
		return a, tea.Quit
	case key.Matches(km, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(km, keys.Tab1):
		return a.switchTo(viewTasks), nil
	case key.Matches(km, keys.Tab2):
		return a.switchTo(viewAllTasks), nil
	case key.Matches(km, keys.Tab3):
		return a.switchTo(viewStats), nil
	case key.Matches(km, keys.Tab):
		return a.switchTo((a.activeView + 1) % viewState(len(viewNames))), nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) App {
	a.activeView = v
	a.refreshAll()
	return a
}

// refreshAll recomputes every screen from the task store. "Today" may have
// moved since the last refresh.
func (a *App) refreshAll() {
	a.taskList.refresh()
	a.allTasks.refresh()
	a.stats.refresh()
}

func (a App) logout() (tea.Model, tea.Cmd) {
	if err := a.session.Logout(); err != nil {
		log.Printf("logout: %v", err)
		a.status = fmt.Sprintf("Logout failed: %v", err)
		a.statusErr = true
		return a, nil
	}
	a.user = ""
	a.activeView = viewLogin
	a.overlay = overlayNone
	a.status = ""
	var cmd tea.Cmd
	a.login, cmd = a.login.reset(false)
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.taskList, cmd = a.taskList.update(msg)
	case viewAllTasks:
		a.allTasks, cmd = a.allTasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) inputActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.taskList.inputActive()
	case viewAllTasks:
		return a.allTasks.inputActive()
	}
	return false
}

// visibleTasks is what the export picker writes: the rows on screen, or the
// whole collection from the stats screen.
func (a App) visibleTasks() []store.Task {
	switch a.activeView {
	case viewTasks:
		return a.taskList.visible
	case viewAllTasks:
		return a.allTasks.visible
	}
	return a.tasks.Tasks()
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.activeView == viewLogin {
		return a.login.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTasks:
		content = a.taskList.view()
	case viewAllTasks:
		content = a.allTasks.view()
	case viewStats:
		content = a.stats.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	switch a.overlay {
	case overlayForm:
		content = a.form.view()
	case overlayExport:
		content = a.renderExportPicker()
	case overlayConfirm:
		content = a.renderConfirm()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, tabOnStyle.Render(name))
		} else {
			tabs = append(tabs, tabOffStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := brandStyle.Render("daytask")
	if a.user != "" {
		title += dimStyle.Render("  " + a.user)
	}
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return topBarStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	left := bottomBarStyle.Render(a.help.View(keys))

	right := ""
	if a.status != "" {
		style := okStyle
		if a.statusErr {
			style = errStyle
		}
		right = style.Render(" " + a.status)
	}

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, headingStyle.Render("Export Format"))
	rows = append(rows, dimStyle.Render(fmt.Sprintf("%d tasks to %s", len(a.visibleTasks()), a.cfg.ExportDir)))
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := rowStyle
		if i == a.exportCursor {
			cursor = "> "
			style = cursorRowStyle
		}
		rows = append(rows, style.Render(cursor+f.String()))
	}
	rows = append(rows, "")
	rows = append(rows, dimStyle.Render("  enter: export  esc: cancel"))

	return focusBoxStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.overlay = overlayNone
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.overlay = overlayNone
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	tasks := a.visibleTasks()
	dir := a.cfg.ExportDir
	now := a.now()
	return func() tea.Msg {
		path, err := export.ToFile(f, dir, tasks, now)
		if err != nil {
			log.Printf("export %s: %v", f, err)
			return statusMsg{text: fmt.Sprintf("%s export failed: %v", f, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

// askRestore offers to replace the collection with the newest JSON backup in
// the export directory.
func (a App) askRestore() (tea.Model, tea.Cmd) {
	path, err := export.LatestBackup(a.cfg.ExportDir)
	if err != nil {
		a.status = fmt.Sprintf("Restore failed: %v", err)
		a.statusErr = true
		return a, nil
	}
	ts := a.tasks
	a.overlay = overlayConfirm
	a.confirm = confirmation{
		prompt: fmt.Sprintf("Replace all %d tasks with %s?", ts.Len(), filepath.Base(path)),
		run:    func() tea.Cmd { return restoreBackup(ts, path) },
	}
	return a, nil
}

func (a App) askClearAll() (tea.Model, tea.Cmd) {
	ts := a.tasks
	a.overlay = overlayConfirm
	a.confirm = confirmation{
		prompt: fmt.Sprintf("Delete all %d tasks? This cannot be undone.", ts.Len()),
		run:    func() tea.Cmd { return clearTasks(ts) },
	}
	return a, nil
}

func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		run := a.confirm.run
		a.overlay = overlayNone
		a.confirm = confirmation{}
		return a, run()
	case key.Matches(msg, keys.No), key.Matches(msg, keys.Back):
		a.overlay = overlayNone
		a.confirm = confirmation{}
	}
	return a, nil
}

func (a App) renderConfirm() string {
	rows := []string{
		headingStyle.Render("Are you sure?"),
		"",
		a.confirm.prompt,
		"",
		dimStyle.Render("  y: confirm  n/esc: cancel"),
	}
	return focusBoxStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func restoreBackup(ts *store.TaskStore, path string) tea.Cmd {
	tasks, err := export.ReadJSONFile(path)
	if err == nil {
		err = ts.Replace(tasks)
	}
	if err != nil {
		log.Printf("restore %s: %v", path, err)
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Restore failed: %v", err), isError: true}
		}
	}
	text := fmt.Sprintf("Restored %d tasks from %s", len(tasks), filepath.Base(path))
	return tea.Batch(
		func() tea.Msg { return tasksChangedMsg{} },
		func() tea.Msg { return statusMsg{text: text} },
	)
}

func clearTasks(ts *store.TaskStore) tea.Cmd {
	if err := ts.Clear(); err != nil {
		log.Printf("clear tasks: %v", err)
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Clear failed: %v", err), isError: true}
		}
	}
	return tea.Batch(
		func() tea.Msg { return tasksChangedMsg{} },
		func() tea.Msg { return statusMsg{text: "All tasks cleared"} },
	)
}
