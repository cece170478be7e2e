package constants

import "time"

// Application constants
const (
	ApplicationName  = "pwm"
	ApplicationID    = "io.github.pwm"
	ApplicationTitle = "Password Manager"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600

	// Service list panel
	ServiceListWidth = 220

	// Dialog dimensions
	AccountDialogWidth  = 420
	AccountDialogHeight = 220
	FilterDialogWidth   = 480
	FilterDialogHeight  = 360

	// Masked password placeholder
	PasswordMask = "••••••••"
)

// Header colors (RGBA values)
var (
	HeaderBackgroundColor = [4]uint8{38, 50, 56, 255}    // Blue grey
	HeaderTextColor       = [4]uint8{255, 255, 255, 255} // White
)

// Theme constants
const (
	DefaultFontSize  = 14
	DarkThemeDefault = true
)

// Store watcher constants
const (
	WatcherDebounce = 250 * time.Millisecond
)

// Configuration constants
const (
	ConfigFileName       = "config.json"
	StoreFileName        = "passwords.json"
	BackupDirName        = "backups"
	BackupEntryName      = "passwords.json"
	DefaultBackupFormat  = "tar.gz"
	DefaultBackupKeep    = 10
	DefaultFilterHistory = 30
)
