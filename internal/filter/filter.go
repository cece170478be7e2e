// Package filter narrows the service list by substring or glob pattern.
package filter

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// slash stands in for '/' while globbing. Service names are flat labels such
// as "github/work", so '*' must match across a slash.
const slash = "\x00"

func flatten(s string) string {
	return strings.ReplaceAll(s, "/", slash)
}

// HasMeta reports whether pattern contains glob metacharacters.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{\\")
}

// Validate returns an error when pattern is not a well-formed glob.
func Validate(pattern string) error {
	if !HasMeta(pattern) {
		return nil
	}
	if !doublestar.ValidatePattern(flatten(strings.ToLower(pattern))) {
		return doublestar.ErrBadPattern
	}
	return nil
}

// Match reports whether service passes pattern. An empty pattern matches
// everything; a plain pattern is a case-insensitive substring test; a glob is
// matched case-insensitively against the whole name, with '/' treated as an
// ordinary character.
func Match(service, pattern string) (bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return true, nil
	}

	name := strings.ToLower(service)
	pattern = strings.ToLower(pattern)

	if !HasMeta(pattern) {
		return strings.Contains(name, pattern), nil
	}
	return doublestar.Match(flatten(pattern), flatten(name))
}

// Apply returns the services that match pattern, preserving order. A
// malformed glob returns the error and no services.
func Apply(services []string, pattern string) ([]string, error) {
	if err := Validate(strings.TrimSpace(pattern)); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(services))
	for _, s := range services {
		ok, err := Match(s, pattern)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}
