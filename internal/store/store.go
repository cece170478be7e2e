package store

import (
	"encoding/json"
	"log/slog"
	"os"

	apperrors "pwm/internal/errors"
)

// FileMode is the permission applied to the credentials file on every write.
const FileMode os.FileMode = 0o600

// Store reads and writes the credentials file at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store backed by the file at path. The file is not touched
// until the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the credentials file path.
func (s *Store) Path() string { return s.path }

// LoadStrict reads the credentials file. A missing file is an empty store,
// not an error; unreadable or malformed files return a store AppError.
func (s *Store) LoadStrict() (Credentials, error) {
	data, err := readFile(s.path)
	if err != nil {
		return Credentials{}, apperrors.NewStoreError("load", s.path, "cannot read credentials file", err)
	}
	if data == nil {
		return Credentials{}, nil
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, apperrors.NewStoreError("load", s.path, "malformed credentials file", err)
	}
	if creds == nil {
		creds = Credentials{}
	}
	// A present service always has accounts, even after a hand edit
	for service, accounts := range creds {
		if len(accounts) == 0 {
			delete(creds, service)
		}
	}
	return creds, nil
}

// SaveStrict overwrites the credentials file with creds.
func (s *Store) SaveStrict(creds Credentials) error {
	if creds == nil {
		creds = Credentials{}
	}
	if err := writeJSON(s.path, creds, FileMode); err != nil {
		return apperrors.NewStoreError("save", s.path, "cannot write credentials file", err)
	}
	return nil
}

// Load returns the persisted credentials. Read and parse failures are
// logged and yield an empty store.
func (s *Store) Load() Credentials {
	creds, err := s.LoadStrict()
	if err != nil {
		s.logger.Warn("error loading passwords", "path", s.path, "error", err)
		return Credentials{}
	}
	return creds
}

// Save overwrites the persisted credentials. Write failures are logged and
// otherwise ignored.
func (s *Store) Save(creds Credentials) {
	if err := s.SaveStrict(creds); err != nil {
		s.logger.Error("error saving passwords", "path", s.path, "error", err)
	}
}

// AddAccount appends an account to service, creating the service if needed.
// Duplicate usernames are allowed.
func (s *Store) AddAccount(service, username, password string) {
	creds := s.Load()
	creds[service] = append(creds[service], Account{Username: username, Password: password})
	s.Save(creds)
	s.logger.Debug("password added", "service", service, "username", username)
}

// GetAccounts returns the accounts stored under service, or an empty slice.
func (s *Store) GetAccounts(service string) []Account {
	accounts, ok := s.Load()[service]
	if !ok {
		return []Account{}
	}
	return accounts
}

// DeleteAccount removes every account under service whose username matches
// and drops the service once it has no accounts left. It returns how many
// accounts were removed. Unknown services leave the file untouched.
func (s *Store) DeleteAccount(service, username string) int {
	creds := s.Load()
	accounts, ok := creds[service]
	if !ok {
		return 0
	}

	kept := accounts[:0:0]
	for _, acc := range accounts {
		if acc.Username != username {
			kept = append(kept, acc)
		}
	}
	removed := len(accounts) - len(kept)

	if len(kept) == 0 {
		delete(creds, service)
	} else {
		creds[service] = kept
	}
	s.Save(creds)
	s.logger.Debug("password deleted", "service", service, "username", username, "removed", removed)
	return removed
}

// Services returns the stored service names in sorted order.
func (s *Store) Services() []string {
	return s.Load().Services()
}
