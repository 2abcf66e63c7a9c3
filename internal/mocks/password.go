package mocks

import (
	"errors"

	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// It "hashes" by prefixing, which keeps test fixtures readable.
type MockPasswordHasher struct {
	Err error
}

// Ensure MockPasswordHasher implements auth.PasswordHasher interface
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	// ShouldSucceed makes Compare succeed regardless of input.
	ShouldSucceed bool
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier interface
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the PasswordVerifier interface. When ShouldSucceed is
// false it matches against the MockPasswordHasher prefixing scheme.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.ShouldSucceed {
		return nil
	}
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}
