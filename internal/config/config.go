package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/view"
)

const (
	DefaultConfigFileName = "config.toml"
	EnvConfigPath         = "DAYTASK_CONFIG"
)

type Config struct {
	DBPath        string `toml:"db_path"`
	ExportDir     string `toml:"export_dir"`
	DefaultSort   string `toml:"default_sort"`
	DefaultStatus string `toml:"default_status"`
	LogFile       string `toml:"log_file"`
}

// ResolveConfigPath returns $DAYTASK_CONFIG, or config.toml in the user
// config directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "daytask", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// it does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = Default().ExportDir
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := view.ParseSortOrder(c.DefaultSort); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if _, err := view.ParseStatusFilter(c.DefaultStatus); err != nil {
		return fmt.Errorf("default_status: %w", err)
	}
	return nil
}

// Sort and Status return the validated defaults, falling back to the built-in
// ones for values Validate would reject.
func (c Config) Sort() view.SortOrder {
	o, err := view.ParseSortOrder(c.DefaultSort)
	if err != nil {
		return view.SortDateDesc
	}
	return o
}

func (c Config) Status() view.StatusFilter {
	f, err := view.ParseStatusFilter(c.DefaultStatus)
	if err != nil {
		return view.StatusAll
	}
	return f
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		dbPath = "daytask.db"
	}
	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}
	return Config{
		DBPath:        dbPath,
		ExportDir:     exportDir,
		DefaultSort:   string(view.SortDateDesc),
		DefaultStatus: string(view.StatusAll),
	}
}
