package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
	"github.com/taskdeck/taskdeck/internal/workspace"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("taskdeck %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	adapter, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer adapter.Close()

	notifTTL := time.Duration(cfg.Display.NotificationTTLSec) * time.Second
	store := state.New(adapter, notifTTL)

	authSvc := auth.NewService(adapter, store, cfg.Auth.RememberMe)
	taskSvc := task.NewService(store)
	wsSvc := workspace.NewService(store)

	authSvc.SeedDemoUser()
	authSvc.Resume()

	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}

	root := app.New(app.Deps{
		State:      store,
		Auth:       authSvc,
		Tasks:      taskSvc,
		Workspaces: wsSvc,
		ExportDir:  exportDir,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
