package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/daytask/internal/config"
	"github.com/sadopc/daytask/internal/export"
	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

const testToday = "2024-06-15"

func fixedClock() store.Clock {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newSeededTasks returns a task store holding one overdue, one today and
// two upcoming tasks.
func newSeededTasks(t *testing.T) (*store.TaskStore, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	ts := store.NewTaskStore(s, fixedClock())
	for _, in := range []store.TaskInput{
		{Date: "2024-06-14", StartTime: "08:00", Title: "Pay rent"},
		{Date: testToday, StartTime: "10:00", StopTime: "11:00", Title: "Standup", TaskDetail: "team sync"},
		{Date: "2024-06-16", StartTime: "09:00", Title: "Buy bananas"},
		{Date: "2024-06-20", StartTime: "14:00", Title: "Dentist"},
	} {
		if _, err := ts.Add(in); err != nil {
			t.Fatalf("seed %q: %v", in.Title, err)
		}
	}
	return ts, s
}

func newTestApp(t *testing.T) (App, *store.TaskStore, *store.Session) {
	t.Helper()
	ts, s := newSeededTasks(t)
	sess := store.NewSession(s)
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	app := NewApp(ts, sess, cfg, fixedClock())
	app.width = 120
	app.height = 40
	return app, ts, sess
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
)

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func titles(tasks []store.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

// ============================================================
// Helpers
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 6, "trunc…"},
		{"ab", 1, "…"},
		{"line\nbreak", 20, "line break"},
		{"héllo wörld", 5, "héll…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestTimeSpan(t *testing.T) {
	if got := timeSpan(store.Task{StartTime: "09:00"}); got != "09:00" {
		t.Fatalf("got %q", got)
	}
	if got := timeSpan(store.Task{StartTime: "09:00", StopTime: "10:30"}); got != "09:00 - 10:30" {
		t.Fatalf("got %q", got)
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct{ cursor, n, want int }{
		{0, 0, 0},
		{3, 0, 0},
		{2, 5, 2},
		{5, 5, 4},
		{9, 3, 2},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cursor, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cursor, tt.n, got, tt.want)
		}
	}
}

func TestNextStatusCycles(t *testing.T) {
	f := view.StatusAll
	var seen []view.StatusFilter
	for range view.StatusFilters {
		f = nextStatus(f)
		seen = append(seen, f)
	}
	want := []view.StatusFilter{view.StatusToday, view.StatusUpcoming, view.StatusAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
	if nextStatus("bogus") != view.StatusAll {
		t.Fatal("unknown filter should reset to all")
	}
}

func TestNextSortCycles(t *testing.T) {
	if got := nextSort(view.SortDateDesc); got != view.SortDateAsc {
		t.Fatalf("after date-desc got %q", got)
	}
	if got := nextSort(view.SortDateAsc); got != view.SortTitle {
		t.Fatalf("after date-asc got %q", got)
	}
	if got := nextSort(view.SortTitle); got != view.SortDateDesc {
		t.Fatalf("after title got %q", got)
	}
}

func TestStatusFilterTitle(t *testing.T) {
	if statusFilterTitle(view.StatusToday) != "Today's Tasks" {
		t.Fatal("today title")
	}
	if statusFilterTitle(view.StatusUpcoming) != "Upcoming Tasks" {
		t.Fatal("upcoming title")
	}
	if statusFilterTitle(view.StatusAll) != "All Tasks" {
		t.Fatal("all title")
	}
}

func TestStatusBadge(t *testing.T) {
	for s, want := range map[view.Status]string{
		view.Overdue:  "overdue",
		view.DueToday: "today",
		view.Upcoming: "upcoming",
	} {
		if got := statusBadge(s); !strings.Contains(got, want) {
			t.Errorf("statusBadge(%v) = %q, want it to contain %q", s, got, want)
		}
	}
}

func TestRenderDetailOptionalFields(t *testing.T) {
	full := renderDetail(store.Task{Date: testToday, StartTime: "10:00", StopTime: "11:00", Title: "Standup", TaskDetail: "team sync"}, testToday)
	for _, want := range []string{"Standup", "15/06/2024", "10:00", "11:00", "team sync"} {
		if !strings.Contains(full, want) {
			t.Errorf("detail missing %q", want)
		}
	}
	bare := renderDetail(store.Task{Date: testToday, StartTime: "10:00", Title: "Standup"}, testToday)
	if strings.Contains(bare, "Stop:") {
		t.Error("detail should omit an empty stop time")
	}
}

func TestValidDateOrEmpty(t *testing.T) {
	if validDateOrEmpty("") != nil || validDateOrEmpty("2024-02-29") != nil {
		t.Fatal("empty and valid dates should pass")
	}
	if !errors.Is(validDateOrEmpty("15/06/2024"), errInvalidDate) {
		t.Fatal("wrong layout should fail")
	}
}

// ============================================================
// Login
// ============================================================

func TestLoginSuccess(t *testing.T) {
	sess := store.NewSession(newTestStore(t))
	m := newLoginModel(sess)
	*m.username = store.Username
	*m.password = store.Password

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("successful login should emit a command")
	}
	if m.err != "" {
		t.Fatalf("unexpected error %q", m.err)
	}
	if user, ok := sess.Restore(); !ok || user != store.Username {
		t.Fatalf("session not stored: %q %v", user, ok)
	}
	if *m.username != "" || *m.password != "" {
		t.Fatal("form should be cleared after login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	sess := store.NewSession(newTestStore(t))
	m := newLoginModel(sess)
	*m.username = store.Username
	*m.password = "nope"

	m, _ = m.submit()
	if m.err != "Invalid username or password" {
		t.Fatalf("err = %q", m.err)
	}
	if _, ok := sess.Restore(); ok {
		t.Fatal("failed login must not create a session")
	}
	if *m.username != store.Username {
		t.Fatal("username should survive a failed attempt")
	}
	if *m.password != "" {
		t.Fatal("password should be cleared")
	}
}

func TestLoginBlankFields(t *testing.T) {
	sess := store.NewSession(newTestStore(t))
	m := newLoginModel(sess)
	*m.username = "   "
	*m.password = store.Password

	m, _ = m.submit()
	if m.err != "Please enter both username and password" {
		t.Fatalf("err = %q", m.err)
	}
	if _, ok := sess.Restore(); ok {
		t.Fatal("blank login must not create a session")
	}
}

func TestLoginViewRenders(t *testing.T) {
	m := newLoginModel(store.NewSession(newTestStore(t)))
	m.setSize(100, 30)
	if !strings.Contains(m.view(), "Daily Task Master") {
		t.Fatal("login view missing title")
	}
}

// ============================================================
// Task form
// ============================================================

func TestTaskFormNewDefaultsToToday(t *testing.T) {
	ts, _ := newSeededTasks(t)
	f := newTaskFormModel(ts)
	f, _ = f.open(nil, testToday)

	if *f.date != testToday {
		t.Fatalf("date = %q, want today", *f.date)
	}
	if f.editingID != 0 {
		t.Fatal("new form should not carry an id")
	}
}

func TestTaskFormAdd(t *testing.T) {
	ts, _ := newSeededTasks(t)
	f := newTaskFormModel(ts)
	f, _ = f.open(nil, testToday)
	*f.start = "16:00"
	*f.title = "Review PRs"

	task, err := f.save()
	if err != nil {
		t.Fatal(err)
	}
	if task.Date != testToday || task.Title != "Review PRs" {
		t.Fatalf("unexpected task %+v", task)
	}
	if ts.Len() != 5 {
		t.Fatalf("expected 5 tasks, got %d", ts.Len())
	}
}

func TestTaskFormEdit(t *testing.T) {
	ts, _ := newSeededTasks(t)
	orig := ts.Tasks()[0]

	f := newTaskFormModel(ts)
	f, _ = f.open(&orig, testToday)
	if *f.title != orig.Title || *f.date != orig.Date || f.editingID != orig.ID {
		t.Fatal("edit form should be prefilled")
	}
	*f.title = "Pay rent (done)"

	if _, err := f.save(); err != nil {
		t.Fatal(err)
	}
	got, ok := ts.Get(orig.ID)
	if !ok || got.Title != "Pay rent (done)" {
		t.Fatalf("update not applied: %+v", got)
	}
	if ts.Len() != 4 {
		t.Fatal("edit should not add a task")
	}
}

func TestTaskFormInvalidLeavesStoreUntouched(t *testing.T) {
	ts, _ := newSeededTasks(t)
	f := newTaskFormModel(ts)
	f, _ = f.open(nil, testToday)
	*f.start = "09:00"
	*f.title = "   "

	if _, err := f.save(); !errors.Is(err, store.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if ts.Len() != 4 {
		t.Fatal("invalid input must not mutate the store")
	}
}

func TestTaskFormEscCancels(t *testing.T) {
	ts, _ := newSeededTasks(t)
	f := newTaskFormModel(ts)
	f, _ = f.open(nil, testToday)

	f, _, done := f.update(escKey)
	if !done {
		t.Fatal("esc should close the form")
	}
	if f.form != nil {
		t.Fatal("form should be discarded")
	}
}

func TestFieldValidators(t *testing.T) {
	req := requiredLayout(store.TimeLayout, "start time")
	if req("") == nil || req("9am") == nil {
		t.Fatal("required time should reject empty and malformed input")
	}
	if req("09:15") != nil {
		t.Fatal("required time should accept HH:MM")
	}
	opt := optionalLayout(store.TimeLayout)
	if opt("") != nil || opt("23:59") != nil {
		t.Fatal("optional time should accept empty and HH:MM")
	}
	if opt("24:00") == nil {
		t.Fatal("optional time should reject 24:00")
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestTasksViewNewestFirst(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newTasksModel(ts, fixedClock(), view.StatusAll)

	got := titles(m.visible)
	want := []string{"Dentist", "Buy bananas", "Standup", "Pay rent"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if m.summary != (view.Summary{Total: 4, Overdue: 1, Today: 1, Upcoming: 2}) {
		t.Fatalf("summary = %+v", m.summary)
	}
}

func TestTasksViewStatusCycle(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newTasksModel(ts, fixedClock(), view.StatusAll)

	m, _ = m.update(runeKey("s"))
	if m.opts.Status != view.StatusToday || len(m.visible) != 1 || m.visible[0].Title != "Standup" {
		t.Fatalf("today filter: %v", titles(m.visible))
	}

	m, _ = m.update(runeKey("s"))
	if m.opts.Status != view.StatusUpcoming || len(m.visible) != 2 {
		t.Fatalf("upcoming filter: %v", titles(m.visible))
	}

	m, _ = m.update(runeKey("c"))
	if m.opts.Status != view.StatusAll || len(m.visible) != 4 {
		t.Fatal("clear should reset filters")
	}
}

func TestTasksViewDateFilter(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newTasksModel(ts, fixedClock(), view.StatusAll)

	m, _ = m.update(runeKey("f"))
	if !m.inputActive() {
		t.Fatal("f should open the date input")
	}

	m, _ = m.update(runeKey("16/06"))
	m, _ = m.update(enterKey)
	if !m.inputActive() || m.dateInput.err == "" {
		t.Fatal("malformed date should keep the input open with an error")
	}

	m.dateInput.input.SetValue("2024-06-16")
	m, _ = m.update(enterKey)
	if m.inputActive() {
		t.Fatal("valid date should close the input")
	}
	if m.opts.Date != "2024-06-16" || len(m.visible) != 1 || m.visible[0].Title != "Buy bananas" {
		t.Fatalf("date filter: %v", titles(m.visible))
	}
}

func TestTasksViewDelete(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newTasksModel(ts, fixedClock(), view.StatusAll)

	m, _ = m.update(downKey)
	target := m.visible[1]
	m, cmd := m.update(runeKey("d"))

	if _, ok := ts.Get(target.ID); ok {
		t.Fatal("task should be removed from the store")
	}
	var changed, status bool
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case tasksChangedMsg:
			changed = true
		case statusMsg:
			status = msg.text == "Task deleted successfully!" && !msg.isError
		}
	}
	if !changed || !status {
		t.Fatal("delete should announce the change and a status line")
	}

	m, _ = m.update(tasksChangedMsg{})
	if len(m.visible) != 3 {
		t.Fatalf("expected 3 visible tasks, got %d", len(m.visible))
	}
}

func TestTasksViewDetailPane(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newTasksModel(ts, fixedClock(), view.StatusAll)
	m.setSize(120, 30)

	m, _ = m.update(enterKey)
	if !m.detail {
		t.Fatal("enter should open the detail pane")
	}
	if !strings.Contains(m.view(), "Dentist") {
		t.Fatal("detail pane should show the selected task")
	}

	_, cmd := m.update(runeKey("e"))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	open, ok := msgs[0].(openFormMsg)
	if !ok || open.task == nil || open.task.Title != "Dentist" {
		t.Fatalf("edit should open the form for the selected task: %#v", msgs[0])
	}
}

func TestTasksViewEmpty(t *testing.T) {
	ts := store.NewTaskStore(newTestStore(t), fixedClock())
	m := newTasksModel(ts, fixedClock(), view.StatusAll)
	m.setSize(120, 30)

	if !strings.Contains(m.view(), "No tasks found") {
		t.Fatal("empty view should say so")
	}
	if _, cmd := m.update(runeKey("d")); cmd != nil {
		t.Fatal("delete on an empty list should do nothing")
	}
}

// ============================================================
// All Tasks view
// ============================================================

func TestAllTasksSearchIsLive(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newAllTasksModel(ts, fixedClock(), view.SortDateDesc)

	m, _ = m.update(runeKey("/"))
	if !m.inputActive() {
		t.Fatal("/ should open the search input")
	}
	m, _ = m.update(runeKey("SYNC"))
	if len(m.visible) != 1 || m.visible[0].Title != "Standup" {
		t.Fatalf("search should match details case-insensitively: %v", titles(m.visible))
	}

	m, _ = m.update(enterKey)
	if m.inputActive() || m.opts.Search != "SYNC" {
		t.Fatal("enter should keep the search and close the input")
	}

	m, _ = m.update(runeKey("c"))
	if m.opts.Search != "" || len(m.visible) != 4 {
		t.Fatal("clear should drop the search")
	}
}

func TestAllTasksSearchEscRestoresPrevious(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newAllTasksModel(ts, fixedClock(), view.SortDateDesc)

	m, _ = m.update(runeKey("/"))
	m, _ = m.update(runeKey("ban"))
	m, _ = m.update(enterKey)

	m, _ = m.update(runeKey("/"))
	m, _ = m.update(runeKey("x"))
	if m.opts.Search != "banx" || len(m.visible) != 0 {
		t.Fatalf("typing should narrow live: %q %v", m.opts.Search, titles(m.visible))
	}

	m, _ = m.update(escKey)
	if m.inputActive() {
		t.Fatal("esc should close the search input")
	}
	if m.opts.Search != "ban" || len(m.visible) != 1 || m.visible[0].Title != "Buy bananas" {
		t.Fatalf("esc should restore the previous search: %q %v", m.opts.Search, titles(m.visible))
	}
}

func TestAllTasksSortCycle(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newAllTasksModel(ts, fixedClock(), view.SortDateDesc)

	m, _ = m.update(runeKey("o"))
	if m.opts.Sort != view.SortDateAsc || m.visible[0].Title != "Pay rent" {
		t.Fatalf("date-asc: %v", titles(m.visible))
	}

	m, _ = m.update(runeKey("o"))
	want := []string{"Buy bananas", "Dentist", "Pay rent", "Standup"}
	if m.opts.Sort != view.SortTitle || strings.Join(titles(m.visible), ",") != strings.Join(want, ",") {
		t.Fatalf("title sort: %v", titles(m.visible))
	}
}

func TestAllTasksViewRenders(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newAllTasksModel(ts, fixedClock(), view.SortDateDesc)
	m.setSize(120, 30)

	out := m.view()
	for _, title := range []string{"Pay rent", "Dentist"} {
		if !strings.Contains(out, title) {
			t.Errorf("view missing %q", title)
		}
	}
}

// ============================================================
// Stats view
// ============================================================

func TestStatsNextSevenDays(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newStatsModel(ts, fixedClock())

	if len(m.dates) != statsDays {
		t.Fatalf("expected %d days, got %d", statsDays, len(m.dates))
	}
	if m.dates[0] != testToday || m.dates[6] != "2024-06-21" {
		t.Fatalf("range = %s..%s", m.dates[0], m.dates[6])
	}
	if m.counts[testToday] != 1 || m.counts["2024-06-16"] != 1 || m.counts["2024-06-20"] != 1 {
		t.Fatalf("counts = %v", m.counts)
	}
	if _, ok := m.counts["2024-06-14"]; ok {
		t.Fatal("past dates should not be charted")
	}
}

func TestStatsWeekNavigation(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newStatsModel(ts, fixedClock())

	m, _ = m.update(downKey)
	if m.dates[0] != "2024-06-22" {
		t.Fatalf("next week starts %s", m.dates[0])
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyUp})
	if m.offset != 0 || m.dates[0] != testToday {
		t.Fatal("cannot navigate before the current week")
	}
}

func TestStatsRefreshOnChange(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newStatsModel(ts, fixedClock())

	if _, err := ts.Add(store.TaskInput{Date: testToday, StartTime: "18:00", Title: "Gym"}); err != nil {
		t.Fatal(err)
	}
	m, _ = m.update(tasksChangedMsg{})
	if m.counts[testToday] != 2 || m.summary.Today != 2 {
		t.Fatalf("stats not refreshed: %v %+v", m.counts, m.summary)
	}
}

func TestStatsViewRenders(t *testing.T) {
	ts, _ := newSeededTasks(t)
	m := newStatsModel(ts, fixedClock())
	m.setSize(120, 40)

	out := m.view()
	if !strings.Contains(out, "Stats") || !strings.Contains(out, testToday) {
		t.Fatal("stats view missing header or table")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewAppStartsAtLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.activeView != viewLogin {
		t.Fatal("without a session the app should start at login")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.overlay != overlayNone {
		t.Fatal("no overlay should be open by default")
	}
}

func TestNewAppRestoresSession(t *testing.T) {
	ts, s := newSeededTasks(t)
	sess := store.NewSession(s)
	if err := sess.Login(store.Username, store.Password); err != nil {
		t.Fatal(err)
	}

	app := NewApp(ts, sess, config.Default(), fixedClock())
	if app.activeView != viewTasks {
		t.Fatal("a stored session should skip the login screen")
	}
	if app.user != store.Username {
		t.Fatalf("user = %q", app.user)
	}
}

func TestAppLoggedInAndLogout(t *testing.T) {
	app, _, sess := newTestApp(t)

	model, _ := app.Update(loggedInMsg{user: store.Username})
	app = model.(App)
	if app.activeView != viewTasks || app.user != store.Username {
		t.Fatal("login should switch to the tasks view")
	}

	if err := sess.Login(store.Username, store.Password); err != nil {
		t.Fatal(err)
	}
	model, _ = app.Update(runeKey("L"))
	app = model.(App)
	if app.activeView != viewLogin || app.user != "" {
		t.Fatal("logout should return to the login screen")
	}
	if _, ok := sess.Restore(); ok {
		t.Fatal("logout should clear the session")
	}
}

func TestAppLoginScreenSwallowsShortcuts(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, k := range []string{"q", "x", "2", "L"} {
		model, _ := app.Update(runeKey(k))
		app = model.(App)
		if app.activeView != viewLogin || app.overlay != overlayNone {
			t.Fatalf("%q on the login screen should be typed into the form", k)
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.activeView = viewTasks

	model, _ := app.Update(runeKey("2"))
	app = model.(App)
	if app.activeView != viewAllTasks {
		t.Fatal("2 should open all tasks")
	}
	model, _ = app.Update(runeKey("3"))
	app = model.(App)
	if app.activeView != viewStats {
		t.Fatal("3 should open stats")
	}
	model, _ = app.Update(tabKey)
	app = model.(App)
	if app.activeView != viewTasks {
		t.Fatal("tab should wrap around to tasks")
	}
}

func TestAppOpenFormAndChange(t *testing.T) {
	app, ts, _ := newTestApp(t)
	app.activeView = viewTasks

	model, _ := app.Update(openFormMsg{})
	app = model.(App)
	if app.overlay != overlayForm {
		t.Fatal("openFormMsg should show the form")
	}
	if *app.form.date != testToday {
		t.Fatal("new task should default to today")
	}

	model, _ = app.Update(escKey)
	app = model.(App)
	if app.overlay != overlayNone {
		t.Fatal("esc should close the form")
	}

	if _, err := ts.Add(store.TaskInput{Date: testToday, StartTime: "18:00", Title: "Gym"}); err != nil {
		t.Fatal(err)
	}
	model, _ = app.Update(tasksChangedMsg{})
	app = model.(App)
	if len(app.taskList.visible) != 5 || len(app.allTasks.visible) != 5 || app.stats.summary.Total != 5 {
		t.Fatal("every view should refresh on change")
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.activeView = viewTasks

	model, _ := app.Update(runeKey("x"))
	app = model.(App)
	if app.overlay != overlayExport {
		t.Fatal("x should open the export picker")
	}

	model, _ = app.Update(downKey)
	app = model.(App)
	model, cmd := app.Update(enterKey)
	app = model.(App)
	if app.overlay != overlayNone {
		t.Fatal("enter should close the picker")
	}

	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	done, ok := msgs[0].(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msgs[0])
	}
	if !strings.HasSuffix(done.path, "tasks_2024-06-15.xlsx") {
		t.Fatalf("path = %q", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatal(err)
	}

	model, _ = app.Update(done)
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "Exported to") {
		t.Fatal("footer should report the export path")
	}
}

func TestAppExportFailureIsReported(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.cfg.ExportDir = filepath.Join(t.TempDir(), "missing")

	msgs := collect(app.doExport(export.JSON))
	status, ok := msgs[0].(statusMsg)
	if !ok || !status.isError {
		t.Fatalf("expected an error status, got %#v", msgs[0])
	}
}

func TestAppExportUsesVisibleTasks(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.activeView = viewTasks
	app.taskList.opts.Status = view.StatusUpcoming
	app.taskList.refresh()

	if got := len(app.visibleTasks()); got != 2 {
		t.Fatalf("tasks view exports %d, want 2", got)
	}
	app.activeView = viewStats
	if got := len(app.visibleTasks()); got != 4 {
		t.Fatalf("stats view exports %d, want 4", got)
	}
}

func TestAppViewStates(t *testing.T) {
	app, _, _ := newTestApp(t)

	// Test all views render without panic
	for _, v := range []viewState{viewLogin, viewTasks, viewAllTasks, viewStats} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.activeView = viewTasks

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 0
	if got := app.View(); got != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", got)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _, _ := newTestApp(t)
	model, _ := app.Update(statusMsg{text: "test status"})
	app = model.(App)

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppRestoreBackup(t *testing.T) {
	app, ts, _ := newTestApp(t)
	app.activeView = viewTasks

	backup := ts.Tasks()[:2]
	if _, err := export.ToFile(export.JSON, app.cfg.ExportDir, backup, fixedClock()()); err != nil {
		t.Fatal(err)
	}

	model, _ := app.Update(runeKey("R"))
	app = model.(App)
	if app.overlay != overlayConfirm {
		t.Fatal("R should ask before restoring")
	}
	if !strings.Contains(app.View(), "tasks-backup-2024-06-15.json") {
		t.Fatal("confirmation should name the backup file")
	}

	model, cmd := app.Update(runeKey("y"))
	app = model.(App)
	if app.overlay != overlayNone {
		t.Fatal("y should close the confirmation")
	}
	if ts.Len() != 2 {
		t.Fatalf("expected 2 restored tasks, got %d", ts.Len())
	}
	var changed bool
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case tasksChangedMsg:
			changed = true
		case statusMsg:
			if msg.isError || !strings.HasPrefix(msg.text, "Restored 2 tasks") {
				t.Fatalf("status = %+v", msg)
			}
		}
	}
	if !changed {
		t.Fatal("restore should announce the change")
	}

	model, _ = app.Update(tasksChangedMsg{})
	app = model.(App)
	if len(app.taskList.visible) != 2 {
		t.Fatalf("tasks view shows %d after restore", len(app.taskList.visible))
	}
}

func TestAppRestoreWithoutBackup(t *testing.T) {
	app, ts, _ := newTestApp(t)
	app.activeView = viewTasks

	model, _ := app.Update(runeKey("R"))
	app = model.(App)
	if app.overlay != overlayNone || !app.statusErr {
		t.Fatal("a missing backup should be reported, not confirmed")
	}
	if ts.Len() != 4 {
		t.Fatal("store must be untouched")
	}
}

func TestAppClearAllNeedsConfirmation(t *testing.T) {
	ts, s := newSeededTasks(t)
	app := NewApp(ts, store.NewSession(s), config.Default(), fixedClock())
	app.width, app.height = 120, 40
	app.activeView = viewAllTasks

	model, _ := app.Update(runeKey("X"))
	app = model.(App)
	if app.overlay != overlayConfirm {
		t.Fatal("X should ask before clearing")
	}
	model, _ = app.Update(runeKey("n"))
	app = model.(App)
	if app.overlay != overlayNone || ts.Len() != 4 {
		t.Fatal("n should cancel without clearing")
	}

	model, _ = app.Update(runeKey("X"))
	app = model.(App)
	model, cmd := app.Update(runeKey("y"))
	app = model.(App)
	if ts.Len() != 0 {
		t.Fatalf("expected an empty store, got %d", ts.Len())
	}
	if _, ok, _ := s.GetBlob(store.TasksKey); ok {
		t.Fatal("clear should delete the persisted blob")
	}
	for _, msg := range collect(cmd) {
		if status, ok := msg.(statusMsg); ok && status.text != "All tasks cleared" {
			t.Fatalf("status = %q", status.text)
		}
	}

	model, _ = app.Update(tasksChangedMsg{})
	app = model.(App)
	if len(app.allTasks.visible) != 0 || app.stats.summary.Total != 0 {
		t.Fatal("views should be empty after clear")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"brand", func() string { return brandStyle.Render("test") }},
		{"tabOn", func() string { return tabOnStyle.Render("test") }},
		{"tabOff", func() string { return tabOffStyle.Render("test") }},
		{"box", func() string { return boxStyle.Render("test") }},
		{"focusBox", func() string { return focusBoxStyle.Render("test") }},
		{"card", func() string { return cardStyle.Render("test") }},
		{"overdue", func() string { return overdueBadgeStyle.Render("test") }},
		{"today", func() string { return todayBadgeStyle.Render("test") }},
		{"upcoming", func() string { return upcomingBadgeStyle.Render("test") }},
		{"heading", func() string { return headingStyle.Render("test") }},
		{"tagline", func() string { return taglineStyle.Render("test") }},
		{"value", func() string { return valueStyle.Render("test") }},
		{"ok", func() string { return okStyle.Render("test") }},
		{"err", func() string { return errStyle.Render("test") }},
		{"dim", func() string { return dimStyle.Render("test") }},
		{"topBar", func() string { return topBarStyle.Render("test") }},
		{"bottomBar", func() string { return bottomBarStyle.Render("test") }},
		{"cursorRow", func() string { return cursorRowStyle.Render("test") }},
		{"row", func() string { return rowStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
