package store

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"
)

// TaskStore owns the task collection. The whole collection is re-serialized
// to the blob store after every mutation.
type TaskStore struct {
	blobs *Store
	now   Clock
	tasks []Task
}

// NewTaskStore loads the persisted collection. A nil clock means time.Now.
func NewTaskStore(blobs *Store, now Clock) *TaskStore {
	if now == nil {
		now = time.Now
	}
	ts := &TaskStore{blobs: blobs, now: now}
	ts.tasks = ts.LoadAll()
	return ts
}

// LoadAll reads the persisted collection. A missing or corrupt blob yields an
// empty collection.
func (ts *TaskStore) LoadAll() []Task {
	raw, ok, err := ts.blobs.GetBlob(TasksKey)
	if err != nil {
		log.Printf("load tasks: %v", err)
		return []Task{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Task{}
	}
	tasks, err := DecodeTasks([]byte(raw))
	if err != nil {
		log.Printf("load tasks: discarding unreadable blob: %v", err)
		return []Task{}
	}
	return tasks
}

// Tasks returns a copy of the collection in insertion order.
func (ts *TaskStore) Tasks() []Task {
	return slices.Clone(ts.tasks)
}

func (ts *TaskStore) Len() int { return len(ts.tasks) }

func (ts *TaskStore) Get(id int64) (Task, bool) {
	i := ts.index(id)
	if i < 0 {
		return Task{}, false
	}
	return ts.tasks[i], true
}

func (ts *TaskStore) Add(in TaskInput) (Task, error) {
	in = normalize(in)
	if err := Validate(in); err != nil {
		return Task{}, err
	}
	t := Task{
		ID:         ts.nextID(),
		Date:       in.Date,
		StartTime:  in.StartTime,
		StopTime:   in.StopTime,
		Title:      in.Title,
		TaskDetail: in.TaskDetail,
	}
	prev := ts.tasks
	ts.tasks = append(slices.Clone(prev), t)
	if err := ts.persist(); err != nil {
		ts.tasks = prev
		return Task{}, err
	}
	return t, nil
}

func (ts *TaskStore) Update(id int64, in TaskInput) (Task, error) {
	i := ts.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("update task %d: %w", id, ErrNotFound)
	}
	in = normalize(in)
	if err := Validate(in); err != nil {
		return Task{}, err
	}
	t := Task{
		ID:         id,
		Date:       in.Date,
		StartTime:  in.StartTime,
		StopTime:   in.StopTime,
		Title:      in.Title,
		TaskDetail: in.TaskDetail,
	}
	prev := ts.tasks
	ts.tasks = slices.Clone(prev)
	ts.tasks[i] = t
	if err := ts.persist(); err != nil {
		ts.tasks = prev
		return Task{}, err
	}
	return t, nil
}

// Remove deletes the task with id. Removing a missing id is a no-op.
func (ts *TaskStore) Remove(id int64) error {
	prev := ts.tasks
	ts.tasks = slices.DeleteFunc(slices.Clone(prev), func(t Task) bool { return t.ID == id })
	if err := ts.persist(); err != nil {
		ts.tasks = prev
		return err
	}
	return nil
}

// Replace swaps in a restored collection. Duplicate or zero ids get fresh ones.
func (ts *TaskStore) Replace(tasks []Task) error {
	next := make([]Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	var maxID int64
	for _, t := range tasks {
		maxID = max(maxID, t.ID)
	}
	for _, t := range tasks {
		if t.ID == 0 || seen[t.ID] {
			maxID++
			t.ID = maxID
		}
		seen[t.ID] = true
		next = append(next, t)
	}

	prev := ts.tasks
	ts.tasks = next
	if err := ts.persist(); err != nil {
		ts.tasks = prev
		return err
	}
	return nil
}

// Clear drops every task and the persisted blob.
func (ts *TaskStore) Clear() error {
	if err := ts.blobs.DeleteBlob(TasksKey); err != nil {
		return err
	}
	ts.tasks = []Task{}
	return nil
}

func (ts *TaskStore) persist() error {
	data, err := EncodeTasks(ts.tasks)
	if err != nil {
		return err
	}
	if err := ts.blobs.SetBlob(TasksKey, string(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (ts *TaskStore) index(id int64) int {
	return slices.IndexFunc(ts.tasks, func(t Task) bool { return t.ID == id })
}

// nextID is timestamp-derived, bumped past the largest existing id.
func (ts *TaskStore) nextID() int64 {
	id := ts.now().UnixMilli()
	for _, t := range ts.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func normalize(in TaskInput) TaskInput {
	in.Date = strings.TrimSpace(in.Date)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.StopTime = strings.TrimSpace(in.StopTime)
	return in
}

// Validate checks the required fields and the date/time formats. A stop time
// earlier than the start time is allowed.
func Validate(in TaskInput) error {
	switch {
	case in.Date == "":
		return fmt.Errorf("%w: date is required", ErrInvalid)
	case in.StartTime == "":
		return fmt.Errorf("%w: start time is required", ErrInvalid)
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, in.Date)
	}
	if _, err := time.Parse(TimeLayout, in.StartTime); err != nil {
		return fmt.Errorf("%w: start time %q is not HH:MM", ErrInvalid, in.StartTime)
	}
	if in.StopTime != "" {
		if _, err := time.Parse(TimeLayout, in.StopTime); err != nil {
			return fmt.Errorf("%w: stop time %q is not HH:MM", ErrInvalid, in.StopTime)
		}
	}
	return nil
}
