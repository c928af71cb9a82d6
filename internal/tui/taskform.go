package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daytask/internal/store"
)

// taskFormModel adds or edits a task.
type taskFormModel struct {
	tasks *store.TaskStore
	width int

	form      *huh.Form
	editingID int64 // 0 while adding
	err       string

	// Form field pointers (survive value copies)
	date   *string
	start  *string
	stop   *string
	title  *string
	detail *string
}

func newTaskFormModel(ts *store.TaskStore) taskFormModel {
	date, start, stop, title, detail := "", "", "", "", ""
	return taskFormModel{
		tasks:  ts,
		date:   &date,
		start:  &start,
		stop:   &stop,
		title:  &title,
		detail: &detail,
	}
}

// open prepares the form for t, or for a new task dated today when t is nil.
func (f taskFormModel) open(t *store.Task, today string) (taskFormModel, tea.Cmd) {
	f.err = ""
	if t == nil {
		f.editingID = 0
		*f.date = today
		*f.start = ""
		*f.stop = ""
		*f.title = ""
		*f.detail = ""
	} else {
		f.editingID = t.ID
		*f.date = t.Date
		*f.start = t.StartTime
		*f.stop = t.StopTime
		*f.title = t.Title
		*f.detail = t.TaskDetail
	}
	f.form = f.build()
	return f, f.form.Init()
}

func (f taskFormModel) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(f.date).Validate(requiredLayout(store.DateLayout, "date")),
			huh.NewInput().Title("Start Time").Placeholder("HH:MM").Value(f.start).Validate(requiredLayout(store.TimeLayout, "start time")),
			huh.NewInput().Title("Stop Time (optional)").Placeholder("HH:MM").Value(f.stop).Validate(optionalLayout(store.TimeLayout)),
			huh.NewInput().Title("Title").Value(f.title).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("title is required")
				}
				return nil
			}),
			huh.NewText().Title("Task Detail (optional)").Value(f.detail),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func requiredLayout(layout, name string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		if _, err := time.Parse(layout, s); err != nil {
			return fmt.Errorf("use %s", placeholderFor(layout))
		}
		return nil
	}
}

func optionalLayout(layout string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := time.Parse(layout, s); err != nil {
			return fmt.Errorf("use %s", placeholderFor(layout))
		}
		return nil
	}
}

func placeholderFor(layout string) string {
	if layout == store.TimeLayout {
		return "HH:MM"
	}
	return "YYYY-MM-DD"
}

func (f taskFormModel) input() store.TaskInput {
	return store.TaskInput{
		Date:       *f.date,
		StartTime:  *f.start,
		StopTime:   *f.stop,
		Title:      *f.title,
		TaskDetail: *f.detail,
	}
}

// save writes the form values through the task store.
func (f taskFormModel) save() (store.Task, error) {
	if f.editingID == 0 {
		return f.tasks.Add(f.input())
	}
	return f.tasks.Update(f.editingID, f.input())
}

// update returns done=true once the form was saved or cancelled.
func (f taskFormModel) update(msg tea.Msg) (taskFormModel, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.form = nil
			return f, nil, true
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		_, err := f.save()
		if err != nil {
			// Keep the entered values and let the user fix them.
			f.err = err.Error()
			f.form = f.build()
			return f, f.form.Init(), false
		}
		text := "Task added successfully!"
		if f.editingID != 0 {
			text = "Task updated successfully!"
		}
		f.form = nil
		return f, tea.Batch(
			func() tea.Msg { return tasksChangedMsg{} },
			func() tea.Msg { return statusMsg{text: text} },
		), true
	}

	return f, cmd, false
}

func (f taskFormModel) view() string {
	title := headingStyle.Render("Add New Task")
	if f.editingID != 0 {
		title = headingStyle.Render("Edit Task")
	}
	parts := []string{title, ""}
	if f.err != "" {
		parts = append(parts, errStyle.Render(f.err), "")
	}
	if f.form != nil {
		parts = append(parts, f.form.View())
	}
	return boxStyle.Width(f.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
