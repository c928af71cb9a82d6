package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/sadopc/daytask/internal/store"
)

var csvHeader = []string{"Date", "Start Time", "Stop Time", "Title", "Task Detail"}

// WriteCSV writes one row per task, oldest first. Title and detail are always
// quoted; date and time columns never are.
func WriteCSV(w io.Writer, tasks []store.Task) error {
	lines := []string{strings.Join(csvHeader, ",")}
	for _, t := range sortAscending(tasks) {
		lines = append(lines, strings.Join([]string{
			FormatDate(t.Date),
			t.StartTime,
			t.StopTime,
			quote(t.Title),
			quote(t.TaskDetail),
		}, ","))
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
