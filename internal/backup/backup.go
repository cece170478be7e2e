// Package backup archives the credentials file and restores it from an archive.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mholt/archives"

	"pwm/internal/constants"
	apperrors "pwm/internal/errors"
	"pwm/internal/store"
)

const (
	FormatTarGz = "tar.gz"
	FormatZip   = "zip"

	filePrefix = "passwords-"
	timeLayout = "20060102-150405"
)

// Manager creates, lists and restores backup archives in one directory.
type Manager struct {
	dir        string
	format     string
	keep       int
	now        func() time.Time
	debugPrint func(format string, args ...interface{})
}

// NewManager creates a backup manager. An unknown format falls back to tar.gz;
// keep <= 0 disables pruning.
func NewManager(dir, format string, keep int, debugPrint func(format string, args ...interface{})) *Manager {
	if format != FormatZip {
		format = FormatTarGz
	}
	return &Manager{
		dir:        dir,
		format:     format,
		keep:       keep,
		now:        time.Now,
		debugPrint: debugPrint,
	}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string { return m.dir }

func (m *Manager) archiver() archives.Archiver {
	if m.format == FormatZip {
		return archives.Zip{}
	}
	return archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
}

// Create writes a timestamped archive holding the credentials file at
// storePath and returns its path. Older archives beyond the keep limit are
// removed.
func (m *Manager) Create(ctx context.Context, storePath string) (string, error) {
	if _, err := os.Stat(storePath); err != nil {
		return "", apperrors.NewBackupError("create", storePath, "credentials file not found", err)
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return "", apperrors.NewBackupError("create", m.dir, "cannot create backup directory", err)
	}

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		storePath: constants.BackupEntryName,
	})
	if err != nil {
		return "", apperrors.NewBackupError("create", storePath, "cannot collect credentials file", err)
	}

	name := filePrefix + m.now().Format(timeLayout) + "." + m.format
	archivePath := filepath.Join(m.dir, name)

	out, err := os.OpenFile(archivePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, store.FileMode)
	if err != nil {
		return "", apperrors.NewBackupError("create", archivePath, "cannot create archive", err)
	}
	if err := m.archiver().Archive(ctx, out, files); err != nil {
		_ = out.Close()
		_ = os.Remove(archivePath)
		return "", apperrors.NewBackupError("create", archivePath, "cannot write archive", err)
	}
	if err := out.Close(); err != nil {
		return "", apperrors.NewBackupError("create", archivePath, "cannot finish archive", err)
	}

	m.debugPrint("Backup: created %s", archivePath)
	m.prune()
	return archivePath, nil
}

// List returns existing backup archives, newest first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewBackupError("list", m.dir, "cannot read backup directory", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	// Timestamped names sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(m.dir, n)
	}
	return paths, nil
}

func isBackupName(name string) bool {
	if !strings.HasPrefix(name, filePrefix) {
		return false
	}
	return strings.HasSuffix(name, "."+FormatTarGz) || strings.HasSuffix(name, "."+FormatZip)
}

func (m *Manager) prune() {
	if m.keep <= 0 {
		return
	}
	paths, err := m.List()
	if err != nil || len(paths) <= m.keep {
		return
	}
	for _, p := range paths[m.keep:] {
		if err := os.Remove(p); err != nil {
			m.debugPrint("Backup: cannot prune %s: %v", p, err)
			continue
		}
		m.debugPrint("Backup: pruned %s", p)
	}
}

// Read extracts and decodes the credentials entry of the archive at archivePath.
func Read(ctx context.Context, archivePath string) (store.Credentials, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, apperrors.NewBackupError("restore", archivePath, "cannot open archive", err)
	}
	defer f.Close()

	format, stream, err := archives.Identify(ctx, archivePath, f)
	if err != nil {
		return nil, apperrors.NewBackupError("restore", archivePath, "unrecognized archive format", err)
	}
	ex, ok := format.(archives.Extractor)
	if !ok {
		return nil, apperrors.NewBackupError("restore", archivePath, "archive format cannot be extracted", nil)
	}

	var data []byte
	found := false
	err = ex.Extract(ctx, stream, func(ctx context.Context, info archives.FileInfo) error {
		if found || info.IsDir() || filepath.Base(info.NameInArchive) != constants.BackupEntryName {
			return nil
		}
		rc, err := info.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, apperrors.NewBackupError("restore", archivePath, "cannot extract archive", err)
	}
	if !found {
		return nil, apperrors.NewBackupError("restore", archivePath,
			fmt.Sprintf("archive has no %s entry", constants.BackupEntryName), nil)
	}

	var creds store.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, apperrors.NewBackupError("restore", archivePath, "malformed credentials in archive", err)
	}
	if creds == nil {
		creds = store.Credentials{}
	}
	return creds, nil
}

// Restore replaces the contents of st with the credentials held in the
// archive. The store is left untouched when the archive cannot be read.
func Restore(ctx context.Context, archivePath string, st *store.Store) (store.Credentials, error) {
	creds, err := Read(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	if err := st.SaveStrict(creds); err != nil {
		return nil, err
	}
	return creds, nil
}
