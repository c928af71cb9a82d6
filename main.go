package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/daytask/internal/config"
	"github.com/sadopc/daytask/internal/store"
	"github.com/sadopc/daytask/internal/tui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config %s: %v\n", configPath, err)
		os.Exit(1)
	}

	// stdout belongs to the TUI.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "daytask")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	tasks := store.NewTaskStore(s, time.Now)
	log.Printf("loaded %d tasks from %s", tasks.Len(), cfg.DBPath)

	app := tui.NewApp(tasks, store.NewSession(s), cfg, time.Now)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
