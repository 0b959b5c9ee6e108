package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultTreeFile      = "launcher.json"
	DefaultUserStateFile = "user_state.json"
	DefaultHistoryDB     = "history.db"
	DefaultBackupKeep    = 50
	DefaultLogLevel      = "info"
)

// Config holds the resolved settings for every entry point
type Config struct {
	DataDir       string `validate:"required"`
	TreeFile      string `validate:"required"`
	UserStateFile string `validate:"required"`
	// HistoryDB may be empty to disable launch history
	HistoryDB  string
	BackupKeep int    `validate:"min=1"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	Editor     string

	// ConfigFile is the file the values were read from, if any
	ConfigFile string
}

var validate = validator.New()

// DefaultDataDir returns ~/.local/share/launchtree, honoring $XDG_DATA_HOME
func DefaultDataDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "launchtree")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "launchtree")
}

// Load reads configuration from cfgFile, or ~/.config/launchtree/config.yaml
// when cfgFile is empty, then from LAUNCHTREE_* environment variables.
// A missing default config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(expandHome(cfgFile))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "launchtree"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LAUNCHTREE")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("tree_file", DefaultTreeFile)
	v.SetDefault("user_state_file", DefaultUserStateFile)
	v.SetDefault("history_db", DefaultHistoryDB)
	v.SetDefault("backup_keep", DefaultBackupKeep)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("editor", os.Getenv("EDITOR"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DataDir:       expandHome(v.GetString("data_dir")),
		TreeFile:      v.GetString("tree_file"),
		UserStateFile: v.GetString("user_state_file"),
		HistoryDB:     v.GetString("history_db"),
		BackupKeep:    v.GetInt("backup_keep"),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		Editor:        v.GetString("editor"),
		ConfigFile:    v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TreePath returns the primary tree file
func (c *Config) TreePath() string {
	return c.resolve(c.TreeFile)
}

// UserStatePath returns the user-state file
func (c *Config) UserStatePath() string {
	return c.resolve(c.UserStateFile)
}

// HistoryPath returns the history database, or "" when disabled
func (c *Config) HistoryPath() string {
	if c.HistoryDB == "" {
		return ""
	}
	return c.resolve(c.HistoryDB)
}

// LogPath returns the application log file
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "logs", "app.log")
}

// SlogLevel converts LogLevel for log/slog
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// resolve places relative file names under DataDir
func (c *Config) resolve(name string) string {
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func expandHome(path string) string {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
