package errors

import (
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType int

const (
	ErrorTypeConfig ErrorType = iota
	ErrorTypeStore
	ErrorTypeUI
	ErrorTypeWatcher
	ErrorTypeTheme
	ErrorTypeBackup
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeStore:
		return "store"
	case ErrorTypeUI:
		return "ui"
	case ErrorTypeWatcher:
		return "watcher"
	case ErrorTypeTheme:
		return "theme"
	case ErrorTypeBackup:
		return "backup"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, et ErrorType) bool {
	for err != nil {
		if ae, ok := err.(*AppError); ok && ae.Type == et {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewStoreError creates a new credential store error
func NewStoreError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeStore,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewUIError creates a new UI error
func NewUIError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeUI,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewWatcherError creates a new watcher error
func NewWatcherError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeWatcher,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// NewThemeError creates a new theme error
func NewThemeError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeTheme,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewBackupError creates a new backup/restore error
func NewBackupError(operation, path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeBackup,
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}
