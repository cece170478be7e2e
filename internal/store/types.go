package store

import "sort"

// Account is a single username/password pair stored under a service.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials is the full persisted mapping of service name to accounts.
type Credentials map[string][]Account

// Services returns the service names in sorted order.
func (c Credentials) Services() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
