package login

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPassword is returned when the password does not match the account.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAccountNotFound is returned when the account does not exist and auto-create is off.
	ErrAccountNotFound = errors.New("account not found")
)

// CredentialStore verifies user credentials.
// Used by the login task worker; implemented by db.AccountStore and MemoryStore.
type CredentialStore interface {
	// Authenticate returns nil when userID/password are valid.
	// Unknown accounts are created when the store auto-creates accounts.
	Authenticate(ctx context.Context, userID, password string) error
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
