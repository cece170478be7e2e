package ui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwm/internal/constants"
	"pwm/internal/store"
)

type staticSource store.Credentials

func (s staticSource) Load() store.Credentials { return store.Credentials(s) }

func sample() staticSource {
	return staticSource{
		"github": {{Username: "alice", Password: "p@ss"}, {Username: "bob", Password: "x"}},
		"gitlab": {{Username: "carol", Password: "y"}},
		"email":  {{Username: "bob", Password: "hunter2"}},
	}
}

func TestBuildViewState_NoSelection(t *testing.T) {
	state, err := BuildViewState(sample(), "", "", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "github", "gitlab"}, state.Services)
	assert.Equal(t, 3, state.Total)
	assert.Empty(t, state.Selected)
	assert.Empty(t, state.Accounts)
}

func TestBuildViewState_Selection(t *testing.T) {
	state, err := BuildViewState(sample(), "github", "", false)
	require.NoError(t, err)

	assert.Equal(t, "github", state.Selected)
	assert.Equal(t, []store.Account{{Username: "alice", Password: "p@ss"}, {Username: "bob", Password: "x"}}, state.Accounts)
	assert.Equal(t, 1, state.IndexOf("github"))
}

func TestBuildViewState_FilterClearsHiddenSelection(t *testing.T) {
	state, err := BuildViewState(sample(), "email", "git*", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"github", "gitlab"}, state.Services)
	assert.Equal(t, 3, state.Total)
	assert.Empty(t, state.Selected)
	assert.Equal(t, -1, state.IndexOf("email"))
}

func TestBuildViewState_DeletedSelection(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "passwords.json"))
	st.AddAccount("email", "bob", "hunter2")

	state, err := BuildViewState(st, "email", "", true)
	require.NoError(t, err)
	assert.Equal(t, "email", state.Selected)

	st.DeleteAccount("email", "bob")

	state, err = BuildViewState(st, "email", "", true)
	require.NoError(t, err)
	assert.Empty(t, state.Selected)
	assert.Empty(t, state.Services)
}

func TestBuildViewState_BadFilter(t *testing.T) {
	state, err := BuildViewState(sample(), "github", "git[", true)
	require.Error(t, err)

	assert.Equal(t, []string{"email", "github", "gitlab"}, state.Services)
	assert.Empty(t, state.Filter)
	assert.Equal(t, "github", state.Selected)
}

func TestDisplayPassword(t *testing.T) {
	acc := store.Account{Username: "alice", Password: "p@ss"}

	assert.Equal(t, constants.PasswordMask, ViewState{MaskPasswords: true}.DisplayPassword(acc))
	assert.Equal(t, "p@ss", ViewState{MaskPasswords: false}.DisplayPassword(acc))
}

func TestValidateAccountInput(t *testing.T) {
	testCases := []struct {
		name  string
		in    AccountInput
		valid bool
	}{
		{"complete", AccountInput{"github", "alice", "p@ss"}, true},
		{"padded values are kept", AccountInput{" github ", "alice", " p@ss"}, true},
		{"blank service", AccountInput{"  ", "alice", "p@ss"}, false},
		{"empty username", AccountInput{"github", "", "p@ss"}, false},
		{"whitespace password", AccountInput{"github", "alice", "\t"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAccountInput(tc.in)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMissingField)
			}
		})
	}
}
