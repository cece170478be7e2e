package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"pwm/internal/constants"
	apperrors "pwm/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Window WindowConfig `json:"window"`
	Theme  ThemeConfig  `json:"theme"`
	Store  StoreConfig  `json:"store"`
	UI     UIConfig     `json:"ui"`
	Backup BackupConfig `json:"backup"`
}

// WindowConfig represents window-related settings
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThemeConfig represents theme-related settings
type ThemeConfig struct {
	Dark     bool   `json:"dark"`
	FontSize int    `json:"fontSize"`
	FontPath string `json:"fontPath"`
}

// StoreConfig locates the credentials file
type StoreConfig struct {
	Path string `json:"path"` // Absolute path, or relative to the config directory
}

// UIConfig represents UI-related settings
type UIConfig struct {
	MaskPasswords *bool               `json:"maskPasswords"`
	ServiceFilter ServiceFilterConfig `json:"serviceFilter"`
}

// FilterEntry represents a single filter pattern with metadata
type FilterEntry struct {
	Pattern  string    `json:"pattern"`  // Substring or doublestar glob
	LastUsed time.Time `json:"lastUsed"` // Last usage timestamp
	UseCount int       `json:"useCount"` // Usage frequency counter
}

// ServiceFilterConfig represents the service list filter settings
type ServiceFilterConfig struct {
	MaxEntries int           `json:"maxEntries"` // Maximum number of filter patterns to remember
	Entries    []FilterEntry `json:"entries"`    // Filter history (most recent first)
	Current    string        `json:"current"`    // Currently applied pattern, empty for none
}

// BackupConfig represents archive backup settings
type BackupConfig struct {
	Dir    string `json:"dir"`    // Backup directory, empty for <configDir>/backups
	Format string `json:"format"` // "tar.gz" or "zip"
	Keep   int    `json:"keep"`   // Number of archives retained
}

// Masked reports whether passwords are hidden in the details panel.
func (u UIConfig) Masked() bool {
	return u.MaskPasswords == nil || *u.MaskPasswords
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
	}
}

// NewManagerAt creates a configuration manager for an explicit config file.
func NewManagerAt(path string) *Manager {
	return &Manager{configPath: path}
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}

// Dir returns the directory holding the configuration file
func (m *Manager) Dir() string {
	return filepath.Dir(m.configPath)
}

// Load loads configuration from file and merges with defaults
func (m *Manager) Load() (*Config, error) {
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		slog.Debug("config file not found, using defaults", "path", m.configPath, "error", err)
		return config, nil
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, apperrors.NewConfigError("load", "error parsing config file "+m.configPath, err)
	}

	mergeConfigs(config, &fileConfig)
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return apperrors.NewConfigError("save", "error creating config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return apperrors.NewConfigError("save", "error marshaling config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return apperrors.NewConfigError("save", "error writing config file", err)
	}

	return nil
}

// StorePath resolves the credentials file path against the config directory
func (m *Manager) StorePath(config *Config) string {
	return m.resolve(config.Store.Path, constants.StoreFileName)
}

// BackupDir resolves the backup directory against the config directory
func (m *Manager) BackupDir(config *Config) string {
	return m.resolve(config.Backup.Dir, constants.BackupDirName)
}

func (m *Manager) resolve(path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir(), path)
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
		},
		Theme: ThemeConfig{
			Dark:     constants.DarkThemeDefault,
			FontSize: constants.DefaultFontSize,
			FontPath: "",
		},
		Store: StoreConfig{
			Path: "",
		},
		UI: UIConfig{
			MaskPasswords: nil,
			ServiceFilter: ServiceFilterConfig{
				MaxEntries: constants.DefaultFilterHistory,
				Entries:    make([]FilterEntry, 0),
				Current:    "",
			},
		},
		Backup: BackupConfig{
			Dir:    "",
			Format: constants.DefaultBackupFormat,
			Keep:   constants.DefaultBackupKeep,
		},
	}
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\pwm\config.json
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, constants.ApplicationName)

	case "darwin":
		// macOS: ~/Library/Application Support/pwm/config.json
		home, err := os.UserHomeDir()
		if err != nil {
			return constants.ConfigFileName
		}
		configDir = filepath.Join(home, "Library", "Application Support", constants.ApplicationName)

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/pwm/config.json or ~/.config/pwm/config.json
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return constants.ConfigFileName
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, constants.ApplicationName)
	}

	return filepath.Join(configDir, constants.ConfigFileName)
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	if fileConfig.Window.Width != 0 {
		defaultConfig.Window.Width = fileConfig.Window.Width
	}
	if fileConfig.Window.Height != 0 {
		defaultConfig.Window.Height = fileConfig.Window.Height
	}

	// Note: for bool values, we can't distinguish between false and unset, so we always use file value
	defaultConfig.Theme.Dark = fileConfig.Theme.Dark
	if fileConfig.Theme.FontSize != 0 {
		defaultConfig.Theme.FontSize = fileConfig.Theme.FontSize
	}
	if fileConfig.Theme.FontPath != "" {
		defaultConfig.Theme.FontPath = fileConfig.Theme.FontPath
	}

	if fileConfig.Store.Path != "" {
		defaultConfig.Store.Path = fileConfig.Store.Path
	}

	if fileConfig.UI.MaskPasswords != nil {
		defaultConfig.UI.MaskPasswords = fileConfig.UI.MaskPasswords
	}
	if fileConfig.UI.ServiceFilter.MaxEntries != 0 {
		defaultConfig.UI.ServiceFilter.MaxEntries = fileConfig.UI.ServiceFilter.MaxEntries
	}
	if fileConfig.UI.ServiceFilter.Entries != nil {
		defaultConfig.UI.ServiceFilter.Entries = fileConfig.UI.ServiceFilter.Entries
	}
	defaultConfig.UI.ServiceFilter.Current = fileConfig.UI.ServiceFilter.Current

	if fileConfig.Backup.Dir != "" {
		defaultConfig.Backup.Dir = fileConfig.Backup.Dir
	}
	if fileConfig.Backup.Format != "" {
		defaultConfig.Backup.Format = fileConfig.Backup.Format
	}
	if fileConfig.Backup.Keep != 0 {
		defaultConfig.Backup.Keep = fileConfig.Backup.Keep
	}
}
