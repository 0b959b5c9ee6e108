package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"launchtree/internal/adapters/editor"
	"launchtree/internal/adapters/filesystem"
	"launchtree/internal/adapters/launcher"
	"launchtree/internal/adapters/sqlite"
	"launchtree/internal/adapters/tui"
	"launchtree/internal/application"
	"launchtree/internal/config"
	"launchtree/internal/logging"
	"launchtree/internal/ports"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default ~/.config/launchtree/config.yaml)")
	flag.Parse()

	if err := run(*cfgFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so only the log file gets records
	logger, closer, err := logging.New(logging.Options{File: cfg.LogPath(), Level: cfg.SlogLevel()})
	if err != nil {
		return err
	}
	defer closer.Close()

	// Initialize adapters
	repo := filesystem.NewRepository(cfg.TreePath(), cfg.UserStatePath(),
		filesystem.WithBackupKeep(cfg.BackupKeep),
		filesystem.WithLogger(logger),
	)
	session := application.NewSession(repo, repo, application.WithLogger(logger))

	var history ports.LaunchHistory
	if path := cfg.HistoryPath(); path != "" {
		h, err := sqlite.OpenHistory(path)
		if err != nil {
			logger.Warn("launch history disabled", "path", path, "error", err)
		} else {
			defer h.Close()
			history = h
		}
	}

	// Create and run TUI app
	app := tui.NewApp(session, tui.Options{
		Launcher: launcher.NewOpener(),
		History:  history,
		Importer: filesystem.NewDropImporter(),
		Editor:   editor.NewOpener(cfg.Editor),
		TreePath: repo.Path(),
	})

	logger.Info("starting", "tree", repo.Path(), "config", cfg.ConfigFile)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
