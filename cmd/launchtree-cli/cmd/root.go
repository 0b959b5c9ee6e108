package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"launchtree/internal/adapters/filesystem"
	"launchtree/internal/adapters/launcher"
	"launchtree/internal/adapters/sqlite"
	"launchtree/internal/application"
	"launchtree/internal/config"
	"launchtree/internal/logging"
	"launchtree/internal/ports"
)

var (
	cfgFile string
	verbose bool

	cfg       *config.Config
	repo      *filesystem.Repository
	session   *application.Session
	history   *sqlite.History
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "launchtree-cli",
	Short: "CLI for managing a launcher tree",
	Long: `launchtree-cli is a command-line interface for a tree of launchers:
groups of file paths and URLs that open with the operating system.

It provides commands to list, add, edit, move, delete, search, favorite
and launch entries, and to inspect backups and launch history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/launchtree/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")
}

func setup() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	opts := logging.Options{File: cfg.LogPath(), Level: cfg.SlogLevel()}
	if verbose {
		opts.Console = os.Stderr
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return err
	}
	logCloser = closer

	repo = filesystem.NewRepository(cfg.TreePath(), cfg.UserStatePath(),
		filesystem.WithBackupKeep(cfg.BackupKeep),
		filesystem.WithLogger(logger),
	)
	session = application.NewSession(repo, repo, application.WithLogger(logger))

	if path := cfg.HistoryPath(); path != "" {
		history, err = sqlite.OpenHistory(path)
		if err != nil {
			// History is optional, launching still works without it
			logger.Warn("launch history disabled", "path", path, "error", err)
			history = nil
		}
	}
	return nil
}

func teardown() error {
	if history != nil {
		if err := history.Close(); err != nil {
			return err
		}
	}
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// GetSession returns the initialized session
func GetSession() *application.Session {
	return session
}

// GetHistory returns the launch history, or nil when it is disabled
func GetHistory() ports.LaunchHistory {
	if history == nil {
		return nil
	}
	return history
}

// GetLauncher returns the OS launcher
func GetLauncher() ports.Launcher {
	return launcher.NewOpener()
}
