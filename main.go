package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"pwm/internal/backup"
	"pwm/internal/config"
	"pwm/internal/constants"
	"pwm/internal/store"
	customtheme "pwm/internal/theme"
)

// Global flags
var (
	debugMode  bool
	storeFlag  string
	configFlag string
)

// debugPrint logs formatted debug messages only when debug mode is enabled
func debugPrint(format string, args ...interface{}) {
	if debugMode {
		slog.Debug(fmt.Sprintf(format, args...))
	}
}

// setupLogging installs the process-wide slog handler on stderr
func setupLogging() {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// environment is the configuration and store shared by the GUI and CLI
type environment struct {
	configManager *config.Manager
	config        *config.Config
	store         *store.Store
}

func loadEnvironment() (*environment, error) {
	configManager := config.NewManager()
	if configFlag != "" {
		configManager = config.NewManagerAt(configFlag)
	}

	cfg, err := configManager.Load()
	if err != nil {
		return nil, err
	}

	storePath := configManager.StorePath(cfg)
	if storeFlag != "" {
		storePath = storeFlag
		if abs, err := filepath.Abs(storeFlag); err == nil {
			storePath = abs
		}
	}
	debugPrint("config: %s, store: %s", configManager.Path(), storePath)

	return &environment{
		configManager: configManager,
		config:        cfg,
		store:         store.New(storePath, store.WithLogger(slog.Default())),
	}, nil
}

func (e *environment) backups() *backup.Manager {
	return backup.NewManager(
		e.configManager.BackupDir(e.config),
		e.config.Backup.Format,
		e.config.Backup.Keep,
		debugPrint,
	)
}

var rootCmd = &cobra.Command{
	Use:   constants.ApplicationName,
	Short: "Keep service credentials in a local JSON file",
	Long: "Keep service credentials (service, username, password) in a local JSON file.\n" +
		"Run without a subcommand to open the graphical interface.\n\n" +
		"The file is stored in plain text. Do not use it for anything that matters.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Credentials file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file (default: OS config directory)")
}

func runGUI() error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	a := app.NewWithID(constants.ApplicationID)
	a.Settings().SetTheme(customtheme.NewCustomTheme(env.config))

	pm := NewPasswordManager(a, env)
	pm.window.ShowAndRun()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if cause := errors.Unwrap(err); cause != nil {
			fmt.Fprintln(os.Stderr, "  cause:", cause)
		}
		os.Exit(1)
	}
}
