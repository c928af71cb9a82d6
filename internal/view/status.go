package view

import "github.com/sadopc/daytask/internal/store"

// Status is the per-task display label. It is a three-way classification,
// separate from the two-way StatusFilter.
type Status int

const (
	Overdue Status = iota
	DueToday
	Upcoming
)

func (s Status) String() string {
	switch s {
	case Overdue:
		return "overdue"
	case DueToday:
		return "today"
	case Upcoming:
		return "upcoming"
	}
	return "unknown"
}

func Classify(t store.Task, today string) Status {
	switch {
	case t.Date < today:
		return Overdue
	case t.Date == today:
		return DueToday
	}
	return Upcoming
}

// Summary counts tasks per status.
type Summary struct {
	Total    int
	Overdue  int
	Today    int
	Upcoming int
}

func Summarize(tasks []store.Task, today string) Summary {
	sum := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch Classify(t, today) {
		case Overdue:
			sum.Overdue++
		case DueToday:
			sum.Today++
		case Upcoming:
			sum.Upcoming++
		}
	}
	return sum
}

// CountByDate returns how many tasks fall on each of the given dates.
func CountByDate(tasks []store.Task, dates []string) map[string]int {
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		counts[d] = 0
	}
	for _, t := range tasks {
		if _, ok := counts[t.Date]; ok {
			counts[t.Date]++
		}
	}
	return counts
}
