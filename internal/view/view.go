// Package view derives the displayed subset and order of tasks from the full
// collection. Every function here is pure.
package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sadopc/daytask/internal/store"
)

// StatusFilter restricts the view relative to today.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusToday    StatusFilter = "today"
	StatusUpcoming StatusFilter = "upcoming"
)

var StatusFilters = []StatusFilter{StatusAll, StatusToday, StatusUpcoming}

func ParseStatusFilter(s string) (StatusFilter, error) {
	for _, f := range StatusFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// SortOrder selects how the view is ordered.
type SortOrder string

const (
	SortDateAsc  SortOrder = "date-asc"
	SortDateDesc SortOrder = "date-desc"
	SortTitle    SortOrder = "title"
)

var SortOrders = []SortOrder{SortDateDesc, SortDateAsc, SortTitle}

func ParseSortOrder(s string) (SortOrder, error) {
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

func (o SortOrder) Label() string {
	switch o {
	case SortDateAsc:
		return "Date (oldest first)"
	case SortDateDesc:
		return "Date (newest first)"
	case SortTitle:
		return "Title (A-Z)"
	}
	return string(o)
}

// Options is the ephemeral filter/sort state of a view.
type Options struct {
	Search string
	Date   string // YYYY-MM-DD, empty for none
	Status StatusFilter
	Sort   SortOrder
}

// Today returns the local calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(store.DateLayout)
}

// Apply filters and sorts tasks. The input slice is never modified.
func Apply(tasks []store.Task, opts Options, today string) []store.Task {
	search := strings.ToLower(opts.Search)
	out := make([]store.Task, 0, len(tasks))
	for _, t := range tasks {
		if opts.Date != "" && t.Date != opts.Date {
			continue
		}
		if !matchStatus(t, opts.Status, today) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.TaskDetail), search) {
			continue
		}
		out = append(out, t)
	}
	sortInPlace(out, opts.Sort)
	return out
}

func matchStatus(t store.Task, f StatusFilter, today string) bool {
	switch f {
	case StatusToday:
		return t.Date == today
	case StatusUpcoming:
		return t.Date > today
	}
	return true
}

// SortTasks returns a sorted copy of tasks.
func SortTasks(tasks []store.Task, order SortOrder) []store.Task {
	out := slices.Clone(tasks)
	sortInPlace(out, order)
	return out
}

func sortInPlace(tasks []store.Task, order SortOrder) {
	switch order {
	case SortDateAsc:
		slices.SortStableFunc(tasks, func(a, b store.Task) int {
			return strings.Compare(sortKey(a), sortKey(b))
		})
	case SortDateDesc:
		slices.SortStableFunc(tasks, func(a, b store.Task) int {
			return strings.Compare(sortKey(b), sortKey(a))
		})
	case SortTitle:
		// Collators keep internal buffers, so each sort gets its own.
		c := collate.New(language.English)
		slices.SortStableFunc(tasks, func(a, b store.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

// sortKey combines date and start time. A missing start time sorts as midnight.
func sortKey(t store.Task) string {
	start := t.StartTime
	if start == "" {
		start = "00:00"
	}
	return t.Date + "T" + start
}
