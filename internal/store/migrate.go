package store

import (
	"encoding/json"
	"fmt"
)

// storedTask is the on-disk record. Older builds wrote time/description
// instead of startTime/taskDetail; both shapes decode into it.
type storedTask struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	Time        string `json:"time"`
	StopTime    string `json:"stopTime"`
	Title       string `json:"title"`
	TaskDetail  string `json:"taskDetail"`
	Description string `json:"description"`
}

// upgrade converts a stored record to the canonical shape. Canonical fields
// win when both are present.
func (s storedTask) upgrade() Task {
	t := Task{
		ID:         s.ID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		StopTime:   s.StopTime,
		Title:      s.Title,
		TaskDetail: s.TaskDetail,
	}
	if t.StartTime == "" {
		t.StartTime = s.Time
	}
	if t.TaskDetail == "" {
		t.TaskDetail = s.Description
	}
	return t
}

// DecodeTasks parses a JSON task array, upgrading legacy records.
func DecodeTasks(data []byte) ([]Task, error) {
	var stored []storedTask
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks := make([]Task, 0, len(stored))
	for _, st := range stored {
		tasks = append(tasks, st.upgrade())
	}
	return tasks, nil
}

// EncodeTasks serializes tasks in the canonical shape.
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}
