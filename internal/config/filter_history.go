package config

import (
	"sort"
	"strings"
	"time"
)

// RememberFilter records pattern as the current service filter and bumps its
// history entry. An empty pattern clears the current filter only.
func (c *Config) RememberFilter(pattern string) {
	pattern = strings.TrimSpace(pattern)
	c.UI.ServiceFilter.Current = pattern
	if pattern == "" {
		return
	}

	now := time.Now()
	history := &c.UI.ServiceFilter

	entry := FilterEntry{Pattern: pattern, LastUsed: now, UseCount: 1}
	for i, e := range history.Entries {
		if e.Pattern == pattern {
			entry.UseCount = e.UseCount + 1
			history.Entries = append(history.Entries[:i], history.Entries[i+1:]...)
			break
		}
	}

	// Newest first
	history.Entries = append([]FilterEntry{entry}, history.Entries...)

	if history.MaxEntries > 0 && len(history.Entries) > history.MaxEntries {
		history.Entries = history.Entries[:history.MaxEntries]
	}
}

// RankedFilters returns the filter history sorted by use count, then recency.
func (c *Config) RankedFilters() []FilterEntry {
	ranked := make([]FilterEntry, len(c.UI.ServiceFilter.Entries))
	copy(ranked, c.UI.ServiceFilter.Entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].UseCount != ranked[j].UseCount {
			return ranked[i].UseCount > ranked[j].UseCount
		}
		return ranked[i].LastUsed.After(ranked[j].LastUsed)
	})
	return ranked
}
