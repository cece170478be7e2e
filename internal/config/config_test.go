package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "pwm/internal/errors"
)

func TestGetDefaultConfig(t *testing.T) {
	config := getDefaultConfig()

	if config.Window.Width != 800 {
		t.Errorf("Expected default window width 800, got %d", config.Window.Width)
	}
	if config.Window.Height != 600 {
		t.Errorf("Expected default window height 600, got %d", config.Window.Height)
	}

	if !config.Theme.Dark {
		t.Error("Expected dark theme to be true by default")
	}
	if config.Theme.FontSize != 14 {
		t.Errorf("Expected default font size 14, got %d", config.Theme.FontSize)
	}

	if config.Store.Path != "" {
		t.Errorf("Expected empty store path, got '%s'", config.Store.Path)
	}

	if !config.UI.Masked() {
		t.Error("Expected passwords to be masked by default")
	}
	if config.UI.ServiceFilter.MaxEntries != 30 {
		t.Errorf("Expected default filter max entries 30, got %d", config.UI.ServiceFilter.MaxEntries)
	}
	if config.UI.ServiceFilter.Entries == nil {
		t.Error("Expected filter entries to be initialized")
	}

	if config.Backup.Format != "tar.gz" {
		t.Errorf("Expected default backup format 'tar.gz', got '%s'", config.Backup.Format)
	}
	if config.Backup.Keep != 10 {
		t.Errorf("Expected default backup keep 10, got %d", config.Backup.Keep)
	}
}

func TestMergeConfigs(t *testing.T) {
	defaultConfig := getDefaultConfig()
	unmasked := false
	fileConfig := &Config{
		Window: WindowConfig{Width: 1024, Height: 768},
		Theme:  ThemeConfig{Dark: false, FontSize: 16, FontPath: "/path/to/font.ttf"},
		Store:  StoreConfig{Path: "/srv/pw.json"},
		UI: UIConfig{
			MaskPasswords: &unmasked,
			ServiceFilter: ServiceFilterConfig{MaxEntries: 5, Current: "git*"},
		},
		Backup: BackupConfig{Format: "zip", Keep: 3},
	}

	mergeConfigs(defaultConfig, fileConfig)

	if defaultConfig.Window.Width != 1024 {
		t.Errorf("Expected merged window width 1024, got %d", defaultConfig.Window.Width)
	}
	if defaultConfig.Window.Height != 768 {
		t.Errorf("Expected merged window height 768, got %d", defaultConfig.Window.Height)
	}
	if defaultConfig.Theme.Dark {
		t.Error("Expected merged theme to be light (false)")
	}
	if defaultConfig.Theme.FontPath != "/path/to/font.ttf" {
		t.Errorf("Expected merged font path, got '%s'", defaultConfig.Theme.FontPath)
	}
	if defaultConfig.Store.Path != "/srv/pw.json" {
		t.Errorf("Expected merged store path, got '%s'", defaultConfig.Store.Path)
	}
	if defaultConfig.UI.Masked() {
		t.Error("Expected merged maskPasswords to be false")
	}
	if defaultConfig.UI.ServiceFilter.MaxEntries != 5 {
		t.Errorf("Expected merged filter max entries 5, got %d", defaultConfig.UI.ServiceFilter.MaxEntries)
	}
	if defaultConfig.UI.ServiceFilter.Entries == nil {
		t.Error("Expected default filter entries to survive a nil file value")
	}
	if defaultConfig.UI.ServiceFilter.Current != "git*" {
		t.Errorf("Expected merged current filter 'git*', got '%s'", defaultConfig.UI.ServiceFilter.Current)
	}
	if defaultConfig.Backup.Format != "zip" || defaultConfig.Backup.Keep != 3 {
		t.Errorf("Expected merged backup zip/3, got %s/%d", defaultConfig.Backup.Format, defaultConfig.Backup.Keep)
	}
	if defaultConfig.Backup.Dir != "" {
		t.Errorf("Expected default backup dir to survive, got '%s'", defaultConfig.Backup.Dir)
	}
}

func TestManagerInterface(t *testing.T) {
	var manager ManagerInterface = &Manager{configPath: "/tmp/test_config.json"}
	if manager == nil {
		t.Error("Manager should implement ManagerInterface")
	}
}

func TestConfigSerialization(t *testing.T) {
	config := getDefaultConfig()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	var unmarshaledConfig Config
	if err := json.Unmarshal(data, &unmarshaledConfig); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if config.Window.Width != unmarshaledConfig.Window.Width {
		t.Errorf("Window width not preserved: expected %d, got %d",
			config.Window.Width, unmarshaledConfig.Window.Width)
	}
	if unmarshaledConfig.UI.MaskPasswords != nil {
		t.Error("Unset maskPasswords should serialize as null")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := getConfigPath()

	if path == "" {
		t.Error("Config path should not be empty")
	}
	if !strings.HasSuffix(path, "config.json") {
		t.Errorf("Config path should end with 'config.json', got '%s'", path)
	}
}

func TestManagerLoadNonExistentFile(t *testing.T) {
	manager := &Manager{configPath: "/non/existent/path/config.json"}

	config, err := manager.Load()
	if err != nil {
		t.Errorf("Load should not return error for non-existent file, got: %v", err)
	}
	if config == nil {
		t.Fatal("Load should return default config for non-existent file")
	}
	if config.Window.Width != 800 {
		t.Errorf("Should return default config with width 800, got %d", config.Window.Width)
	}
}

func TestManagerLoadMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewManagerAt(configPath).Load()
	if err == nil {
		t.Fatal("Load should fail for a malformed config file")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "test_config.json")
	manager := NewManagerAt(configPath)

	testConfig := &Config{
		Window: WindowConfig{Width: 1200, Height: 800},
		Theme:  ThemeConfig{Dark: false, FontSize: 18},
		Store:  StoreConfig{Path: "vault.json"},
	}

	if err := manager.Save(testConfig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedConfig, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loadedConfig.Window.Width != 1200 {
		t.Errorf("Expected loaded width 1200, got %d", loadedConfig.Window.Width)
	}
	if loadedConfig.Theme.FontSize != 18 {
		t.Errorf("Expected loaded font size 18, got %d", loadedConfig.Theme.FontSize)
	}
	if loadedConfig.Store.Path != "vault.json" {
		t.Errorf("Expected loaded store path 'vault.json', got '%s'", loadedConfig.Store.Path)
	}
	// Fields absent from the file fall back to defaults
	if loadedConfig.Backup.Keep != 10 {
		t.Errorf("Expected default backup keep 10, got %d", loadedConfig.Backup.Keep)
	}
}

func TestStorePathResolution(t *testing.T) {
	dir := t.TempDir()
	manager := NewManagerAt(filepath.Join(dir, "config.json"))
	config := getDefaultConfig()

	if got := manager.StorePath(config); got != filepath.Join(dir, "passwords.json") {
		t.Errorf("Expected default store path next to config, got '%s'", got)
	}

	config.Store.Path = "vault/pw.json"
	if got := manager.StorePath(config); got != filepath.Join(dir, "vault", "pw.json") {
		t.Errorf("Expected relative store path resolved against config dir, got '%s'", got)
	}

	abs := filepath.Join(t.TempDir(), "abs.json")
	config.Store.Path = abs
	if got := manager.StorePath(config); got != abs {
		t.Errorf("Expected absolute store path unchanged, got '%s'", got)
	}

	if got := manager.BackupDir(config); got != filepath.Join(dir, "backups") {
		t.Errorf("Expected default backup dir, got '%s'", got)
	}
}

func TestRememberFilter(t *testing.T) {
	config := getDefaultConfig()
	config.UI.ServiceFilter.MaxEntries = 2

	config.RememberFilter("git*")
	config.RememberFilter("mail")
	config.RememberFilter("git*")

	entries := config.UI.ServiceFilter.Entries
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Pattern != "git*" || entries[0].UseCount != 2 {
		t.Errorf("Expected git* first with count 2, got %+v", entries[0])
	}
	if config.UI.ServiceFilter.Current != "git*" {
		t.Errorf("Expected current filter 'git*', got '%s'", config.UI.ServiceFilter.Current)
	}

	config.RememberFilter("bank")
	if len(config.UI.ServiceFilter.Entries) != 2 {
		t.Fatalf("Expected history capped at 2, got %d", len(config.UI.ServiceFilter.Entries))
	}
	if config.UI.ServiceFilter.Entries[1].Pattern != "git*" {
		t.Errorf("Expected oldest entry 'mail' evicted, got %+v", config.UI.ServiceFilter.Entries)
	}

	config.RememberFilter("  ")
	if config.UI.ServiceFilter.Current != "" {
		t.Error("Blank pattern should clear the current filter")
	}
	if len(config.UI.ServiceFilter.Entries) != 2 {
		t.Error("Blank pattern should not be recorded")
	}
}

func TestRankedFilters(t *testing.T) {
	now := time.Now()
	config := getDefaultConfig()
	config.UI.ServiceFilter.Entries = []FilterEntry{
		{Pattern: "recent", LastUsed: now, UseCount: 1},
		{Pattern: "frequent", LastUsed: now.Add(-time.Hour), UseCount: 5},
		{Pattern: "older", LastUsed: now.Add(-2 * time.Hour), UseCount: 1},
	}

	ranked := config.RankedFilters()
	got := []string{ranked[0].Pattern, ranked[1].Pattern, ranked[2].Pattern}
	want := []string{"frequent", "recent", "older"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
	if config.UI.ServiceFilter.Entries[0].Pattern != "recent" {
		t.Error("RankedFilters should not reorder the stored history")
	}
}
