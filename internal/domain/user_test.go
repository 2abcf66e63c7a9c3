package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("Ada Lovelace", "ada@example.com", "hashed-password")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "hashed-password", user.HashedPassword)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	})

	t.Run("normalizes email to lower case", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("Ada", "  Ada@Example.COM ", "hash")
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("trims name whitespace", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("  Ada  ", "ada@example.com", "hash")
		require.NoError(t, err)

		assert.Equal(t, "Ada", user.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("   ", "ada@example.com", "hash")
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("Ada", "", "hash")
		assert.ErrorIs(t, err, domain.ErrEmptyEmail)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()

		for _, email := range []string{"no-at-sign", "@example.com", "ada@", "ada@nodot", "ada@example."} {
			_, err := domain.NewUser("Ada", email, "hash")
			assert.ErrorIs(t, err, domain.ErrInvalidEmail, "email: %q", email)
		}
	})

	t.Run("rejects empty hashed password", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("Ada", "ada@example.com", "")
		assert.ErrorIs(t, err, domain.ErrEmptyHashedPassword)
	})
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "minimum length accepted", password: "abcdef", wantErr: nil},
		{name: "typical password accepted", password: "correct horse battery", wantErr: nil},
		{name: "too short rejected", password: "abcde", wantErr: domain.ErrPasswordTooShort},
		{name: "empty rejected", password: "", wantErr: domain.ErrPasswordTooShort},
		{name: "maximum length accepted", password: strings.Repeat("a", 72), wantErr: nil},
		{name: "over maximum rejected", password: strings.Repeat("a", 73), wantErr: domain.ErrPasswordTooLong},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := domain.ValidatePassword(tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ada@example.com", domain.NormalizeEmail("Ada@Example.Com"))
	assert.Equal(t, "ada@example.com", domain.NormalizeEmail("  ada@example.com  "))
	assert.Equal(t, "", domain.NormalizeEmail("   "))
}
