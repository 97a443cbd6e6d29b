package login

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryStore keeps accounts in process memory.
// Used when no database is configured and in tests.
type MemoryStore struct {
	autoCreate bool

	mu       sync.RWMutex
	accounts map[string]string // userID → bcrypt hash
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(autoCreate bool) *MemoryStore {
	return &MemoryStore{
		autoCreate: autoCreate,
		accounts:   make(map[string]string),
	}
}

// AddAccount registers userID with password.
func (s *MemoryStore) AddAccount(userID, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[userID] = hash
	return nil
}

// Authenticate implements CredentialStore.
func (s *MemoryStore) Authenticate(ctx context.Context, userID, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	hash, ok := s.accounts[userID]
	s.mu.RUnlock()

	if !ok {
		if !s.autoCreate {
			return ErrAccountNotFound
		}
		if err := s.AddAccount(userID, password); err != nil {
			return err
		}
		slog.Info("auto-created account", "userID", userID)
		return nil
	}

	if !CheckPassword(password, hash) {
		return ErrInvalidPassword
	}
	return nil
}
