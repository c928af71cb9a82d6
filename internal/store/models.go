package store

import (
	"errors"
	"time"
)

var (
	ErrInvalid  = errors.New("invalid task")
	ErrNotFound = errors.New("task not found")
	ErrAuth     = errors.New("invalid username or password")
)

// Layouts used for the persisted date and time-of-day strings.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time

// Task is a single dated, timed to-do item. The JSON names match the
// persisted blob format.
type Task struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	StopTime   string `json:"stopTime,omitempty"`
	Title      string `json:"title"`
	TaskDetail string `json:"taskDetail,omitempty"`
}

// TaskInput carries every user-editable field of a Task.
type TaskInput struct {
	Date       string
	StartTime  string
	StopTime   string
	Title      string
	TaskDetail string
}

// Input returns the editable fields of t.
func (t Task) Input() TaskInput {
	return TaskInput{
		Date:       t.Date,
		StartTime:  t.StartTime,
		StopTime:   t.StopTime,
		Title:      t.Title,
		TaskDetail: t.TaskDetail,
	}
}
