package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pwm/internal/errors"
	"pwm/internal/store"
)

// runCLI executes the root command against a private config and store
func runCLI(t *testing.T, dir string, args ...string) error {
	t.Helper()
	full := append([]string{
		"--config", filepath.Join(dir, "config.json"),
		"--store", filepath.Join(dir, "passwords.json"),
	}, args...)
	rootCmd.SetArgs(full)
	return rootCmd.Execute()
}

func TestCLI_AddListDelete(t *testing.T) {
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "passwords.json"))

	require.NoError(t, runCLI(t, dir, "add", "github", "alice", "--password", "p1"))
	require.NoError(t, runCLI(t, dir, "add", "github", "bob", "--password", "p2"))
	assert.Equal(t, []store.Account{
		{Username: "alice", Password: "p1"},
		{Username: "bob", Password: "p2"},
	}, st.GetAccounts("github"))

	require.NoError(t, runCLI(t, dir, "list"))
	require.NoError(t, runCLI(t, dir, "show", "github"))

	require.NoError(t, runCLI(t, dir, "delete", "github", "alice"))
	assert.Equal(t, []store.Account{{Username: "bob", Password: "p2"}}, st.GetAccounts("github"))

	require.NoError(t, runCLI(t, dir, "delete", "github", "bob"))
	assert.Empty(t, st.Services())
}

func TestCLI_AddRejectsBlankFields(t *testing.T) {
	dir := t.TempDir()

	err := runCLI(t, dir, "add", "github", "  ", "--password", "p1")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "passwords.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCLI_CorruptStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passwords.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	err := runCLI(t, dir, "verify")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStore))

	// add must not overwrite a file it cannot parse
	require.Error(t, runCLI(t, dir, "add", "github", "alice", "--password", "p1"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestCLI_BackupRestore(t *testing.T) {
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "passwords.json"))

	require.NoError(t, runCLI(t, dir, "add", "email", "carol", "--password", "secret"))
	require.NoError(t, runCLI(t, dir, "backup"))

	archives, err := filepath.Glob(filepath.Join(dir, "backups", "passwords-*.tar.gz"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	require.NoError(t, runCLI(t, dir, "delete", "email", "carol"))
	assert.Empty(t, st.Services())

	require.NoError(t, runCLI(t, dir, "restore", archives[0]))
	assert.Equal(t, []store.Account{{Username: "carol", Password: "secret"}}, st.GetAccounts("email"))
}

func TestCLI_BackupListNamesDirectory(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, runCLI(t, dir, "backup", "--list"))
	assert.Contains(t, out.String(), "No backups found in "+filepath.Join(dir, "backups"))

	require.NoError(t, runCLI(t, dir, "add", "github", "alice", "--password", "p1"))
	require.NoError(t, runCLI(t, dir, "backup"))
	out.Reset()
	require.NoError(t, runCLI(t, dir, "backup", "--list"))
	assert.Contains(t, out.String(), filepath.Join(dir, "backups", "passwords-"))
}

func TestCLI_ListRejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runCLI(t, dir, "add", "github", "alice", "--password", "p1"))

	assert.Error(t, runCLI(t, dir, "list", "[unclosed"))
}
