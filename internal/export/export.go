// Package export turns a task collection into downloadable artifacts.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

type Format int

const (
	CSV Format = iota
	XLSX
	PDF
	JSON
)

var Formats = []Format{CSV, XLSX, PDF, JSON}

func (f Format) String() string {
	switch f {
	case CSV:
		return "CSV"
	case XLSX:
		return "Excel"
	case PDF:
		return "PDF"
	case JSON:
		return "JSON"
	}
	return "unknown"
}

// Filename is the download name for an export generated at now.
func (f Format) Filename(now time.Time) string {
	date := now.Format(store.DateLayout)
	switch f {
	case XLSX:
		return "tasks_" + date + ".xlsx"
	case PDF:
		return "tasks_" + date + ".pdf"
	case JSON:
		return "tasks-backup-" + date + ".json"
	}
	return "tasks_" + date + ".csv"
}

// Write renders tasks in format f to w.
func Write(w io.Writer, f Format, tasks []store.Task, now time.Time) error {
	switch f {
	case CSV:
		return WriteCSV(w, tasks)
	case XLSX:
		return WriteXLSX(w, tasks)
	case PDF:
		return WritePDF(w, tasks, now)
	case JSON:
		return WriteJSON(w, tasks)
	}
	return fmt.Errorf("unknown export format %d", f)
}

// ToFile writes the export into dir under its standard filename and returns
// the full path.
func ToFile(f Format, dir string, tasks []store.Task, now time.Time) (string, error) {
	path := filepath.Join(dir, f.Filename(now))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s file: %w", f, err)
	}
	if err := Write(file, f, tasks, now); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s file: %w", f, err)
	}
	return path, nil
}

// FormatDate renders an ISO date as DD/MM/YYYY. Anything else is returned as is.
func FormatDate(date string) string {
	d, err := time.Parse(store.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}

func sortAscending(tasks []store.Task) []store.Task {
	return view.SortTasks(tasks, view.SortDateAsc)
}
