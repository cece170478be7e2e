package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mholt/archives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pwm/internal/errors"
	"pwm/internal/store"
)

func dummyDebug(format string, args ...interface{}) {}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "passwords.json"))
	st.AddAccount("github", "alice", "p@ss")
	st.AddAccount("email", "bob", "hunter2")
	return st
}

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func TestCreateAndRestore_Formats(t *testing.T) {
	for _, format := range []string{FormatTarGz, FormatZip} {
		t.Run(format, func(t *testing.T) {
			ctx := context.Background()
			st := seededStore(t)
			want := st.Load()

			m := NewManager(t.TempDir(), format, 0, dummyDebug)
			archivePath, err := m.Create(ctx, st.Path())
			require.NoError(t, err)
			assert.FileExists(t, archivePath)
			assert.True(t, filepath.Ext(archivePath) == ".gz" || filepath.Ext(archivePath) == ".zip")

			// Clobber the store, then restore it
			st.Save(store.Credentials{"other": {{Username: "x", Password: "y"}}})

			restored, err := Restore(ctx, archivePath, st)
			require.NoError(t, err)
			assert.Equal(t, want, restored)
			assert.Equal(t, want, st.Load())
		})
	}
}

func TestCreate_MissingStoreFile(t *testing.T) {
	m := NewManager(t.TempDir(), FormatTarGz, 0, dummyDebug)

	_, err := m.Create(context.Background(), filepath.Join(t.TempDir(), "passwords.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeBackup))
}

func TestList_NewestFirstAndPrune(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)

	m := NewManager(t.TempDir(), FormatTarGz, 2, dummyDebug)
	m.now = fixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	var created []string
	for i := 0; i < 3; i++ {
		p, err := m.Create(ctx, st.Path())
		require.NoError(t, err)
		created = append(created, p)
	}

	list, err := m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{created[2], created[1]}, list)
	assert.NoFileExists(t, created[0])
}

func TestList_MissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "none"), FormatZip, 0, dummyDebug)

	list, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "passwords-x.rar"), []byte("x"), 0o600))

	list, err := NewManager(dir, FormatZip, 0, dummyDebug).List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRestore_BadArchiveLeavesStore(t *testing.T) {
	st := seededStore(t)
	want := st.Load()

	bogus := filepath.Join(t.TempDir(), "passwords-bogus.zip")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not an archive"), 0o600))

	_, err := Restore(context.Background(), bogus, st)
	require.Error(t, err)
	assert.Equal(t, want, st.Load())
}

func TestRead_MalformedEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	notJSON := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notJSON, []byte("hello"), 0o600))

	archivePath, err := NewManager(dir, FormatTarGz, 0, dummyDebug).Create(ctx, notJSON)
	require.NoError(t, err)

	_, err = Read(ctx, archivePath)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeBackup))
}

func TestRead_ArchiveWithoutEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o600))

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{other: "notes.txt"})
	require.NoError(t, err)

	archivePath := filepath.Join(dir, "passwords-manual.zip")
	out, err := os.Create(archivePath)
	require.NoError(t, err)
	require.NoError(t, archives.Zip{}.Archive(ctx, out, files))
	require.NoError(t, out.Close())

	_, err = Read(ctx, archivePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no passwords.json entry")
}

func TestRead_MissingArchive(t *testing.T) {
	_, err := Read(context.Background(), filepath.Join(t.TempDir(), "missing.tar.gz"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeBackup))
}
