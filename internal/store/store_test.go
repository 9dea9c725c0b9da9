package store

import (
	"os"
	"path/filepath"
	"testing"

	"farmer-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) CredentialStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "users.json"), zap.NewNop())
}

func seedFarmer(s CredentialStore) {
	s.Put(domain.Account{Username: "farmer", Password: "Pass123!", Email: "farm@hub.com"})
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		email    string
		wantErr  error
	}{
		{"valid registration", "bobby", "Secret1@", "bob@x.com", nil},
		{"empty username", "", "Secret1@", "bob@x.com", ErrFieldsRequired},
		{"empty password", "bobby", "", "bob@x.com", ErrFieldsRequired},
		{"empty email", "bobby", "Secret1@", "", ErrFieldsRequired},
		{"blank username trims to empty", "   ", "Secret1@", "bob@x.com", ErrFieldsRequired},
		{"empty field beats short username", "bob", "", "bob@x.com", ErrFieldsRequired},
		{"username too short", "bob", "Secret1@", "bob@x.com", ErrUsernameTooShort},
		{"username padded with spaces still too short", "  bob  ", "Secret1@", "bob@x.com", ErrUsernameTooShort},
		{"short username beats bad email", "bob", "Secret1@", "not-an-email", ErrUsernameTooShort},
		{"email missing at sign", "bobby", "Secret1@", "bobx.com", ErrInvalidEmail},
		{"email missing domain dot", "bobby", "Secret1@", "bob@xcom", ErrInvalidEmail},
		{"email tld too short", "bobby", "Secret1@", "bob@x.c", ErrInvalidEmail},
		{"email tld too long", "bobby", "Secret1@", "bob@x.abcdefg", ErrInvalidEmail},
		{"bad email beats weak password", "bobby", "weak", "bobx.com", ErrInvalidEmail},
		{"password too short", "bobby", "Se1@", "bob@x.com", ErrWeakPassword},
		{"password missing uppercase", "bobby", "secret1@pass", "bob@x.com", ErrWeakPassword},
		{"password missing digit", "bobby", "Secret@pass", "bob@x.com", ErrWeakPassword},
		{"password missing special", "bobby", "Secret1pass", "bob@x.com", ErrWeakPassword},
		{"exclamation mark is not in the special set", "bobby", "Secret1!pass", "bob@x.com", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)

			account, err := s.Register(tt.username, tt.password, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, account)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, account)
			assert.Equal(t, "bobby", account.Username)
			assert.Equal(t, 1, s.Count())
		})
	}
}

func TestRegisterDuplicateUsernameIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register("bobby", "Secret1@", "bob@x.com")
	require.NoError(t, err)

	_, err = s.Register("BOBBY", "Other2#pass", "other@x.com")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = s.Register("Bobby", "Other2#pass", "other@x.com")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, 1, s.Count())
}

func TestRegisterKeepsDisplayCasing(t *testing.T) {
	s := newTestStore(t)

	account, err := s.Register("FarmGirl", "Secret1@", "girl@farm.com")
	require.NoError(t, err)
	assert.Equal(t, "FarmGirl", account.Username)

	// Lookup goes through the lower-cased key.
	found, err := s.Authenticate("farmgirl", "Secret1@")
	require.NoError(t, err)
	assert.Equal(t, "FarmGirl", found.Username)
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	seedFarmer(s)

	t.Run("case-insensitive identifier", func(t *testing.T) {
		account, err := s.Authenticate("FARMER", "Pass123!")
		require.NoError(t, err)
		assert.Equal(t, "farm@hub.com", account.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Authenticate("nobody", "Pass123!")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Authenticate("farmer", "pass123!")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})
}

func TestResolveForReset(t *testing.T) {
	s := newTestStore(t)
	seedFarmer(s)

	t.Run("by username", func(t *testing.T) {
		account, found := s.ResolveForReset("Farmer")
		require.True(t, found)
		assert.Equal(t, "farmer", account.Username)
	})

	t.Run("by email fallback scan", func(t *testing.T) {
		account, found := s.ResolveForReset("FARM@HUB.COM")
		require.True(t, found)
		assert.Equal(t, "farmer", account.Username)
	})

	t.Run("no match", func(t *testing.T) {
		account, found := s.ResolveForReset("stranger@nowhere.com")
		assert.False(t, found)
		assert.Nil(t, account)
	})
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"), zap.NewNop())

	s.Load()
	assert.Equal(t, 0, s.Count())
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0o600))

	s := NewFileStore(path, zap.NewNop())
	s.Load()
	assert.Equal(t, 0, s.Count())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	first := NewFileStore(path, zap.NewNop())
	seedFarmer(first)
	_, err := first.Register("FarmGirl", "Secret1@", "girl@farm.com")
	require.NoError(t, err)
	require.NoError(t, first.Save())

	second := NewFileStore(path, zap.NewNop())
	second.Load()
	require.Equal(t, 2, second.Count())

	account, err := second.Authenticate("farmer", "Pass123!")
	require.NoError(t, err)
	assert.Equal(t, "farm@hub.com", account.Email)

	// Display casing survives the round trip.
	account, err = second.Authenticate("FARMGIRL", "Secret1@")
	require.NoError(t, err)
	assert.Equal(t, "FarmGirl", account.Username)
}
