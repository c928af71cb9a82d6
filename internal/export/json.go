package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/sadopc/daytask/internal/store"
)

// WriteJSON writes the raw collection as an indented backup, in collection order.
func WriteJSON(w io.Writer, tasks []store.Task) error {
	if tasks == nil {
		tasks = []store.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ReadJSON parses a backup written by WriteJSON or by an older build.
func ReadJSON(r io.Reader) ([]store.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return store.DecodeTasks(data)
}

// ErrNoBackup is returned by LatestBackup when a directory holds no backup.
var ErrNoBackup = errors.New("no backup found")

// LatestBackup returns the newest tasks-backup-<date>.json in dir.
func LatestBackup(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "tasks-backup-*.json"))
	if err != nil {
		return "", fmt.Errorf("find backup: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoBackup, dir)
	}
	slices.Sort(matches)
	return matches[len(matches)-1], nil
}

// ReadJSONFile parses the backup at path.
func ReadJSONFile(path string) ([]store.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()
	return ReadJSON(f)
}
