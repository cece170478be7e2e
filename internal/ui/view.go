package ui

import (
	"errors"
	"strings"

	"pwm/internal/constants"
	"pwm/internal/filter"
	"pwm/internal/store"
)

// ErrMissingField is returned when a required account field is blank.
var ErrMissingField = errors.New("please enter Service, Username, and Password")

// AccountSource provides the persisted credentials to render.
type AccountSource interface {
	Load() store.Credentials
}

// ViewState is everything the main window renders. It is rebuilt from the
// store on every refresh and never mutated by widgets.
type ViewState struct {
	Services      []string        // Services passing the filter, sorted
	Total         int             // Number of services before filtering
	Selected      string          // Selected service, empty for none
	Accounts      []store.Account // Accounts of Selected
	Filter        string          // Applied filter pattern
	MaskPasswords bool
}

// BuildViewState loads the store once and derives the view from it. A
// selection that no longer exists or is filtered out is cleared. A bad
// filter pattern is reported and the unfiltered list is returned.
func BuildViewState(src AccountSource, selected, pattern string, mask bool) (ViewState, error) {
	creds := src.Load()
	all := creds.Services()

	state := ViewState{
		Services:      all,
		Total:         len(all),
		Filter:        pattern,
		MaskPasswords: mask,
	}

	filtered, err := filter.Apply(all, pattern)
	if err != nil {
		state.Filter = ""
	} else {
		state.Services = filtered
	}

	for _, s := range state.Services {
		if s == selected {
			state.Selected = selected
			state.Accounts = creds[selected]
			break
		}
	}
	return state, err
}

// IndexOf returns the position of service in the rendered list, or -1.
func (s ViewState) IndexOf(service string) int {
	for i, name := range s.Services {
		if name == service {
			return i
		}
	}
	return -1
}

// DisplayPassword returns the password as it should appear on screen.
func (s ViewState) DisplayPassword(acc store.Account) string {
	if s.MaskPasswords {
		return constants.PasswordMask
	}
	return acc.Password
}

// AccountInput is the raw content of the add form.
type AccountInput struct {
	Service  string
	Username string
	Password string
}

// ValidateAccountInput checks that every field has non-blank content. Values
// are passed to the store untrimmed.
func ValidateAccountInput(in AccountInput) error {
	if strings.TrimSpace(in.Service) == "" ||
		strings.TrimSpace(in.Username) == "" ||
		strings.TrimSpace(in.Password) == "" {
		return ErrMissingField
	}
	return nil
}
