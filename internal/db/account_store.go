package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/udisondev/roomserver/internal/login"
)

// AccountStore implements login.CredentialStore on top of the accounts table.
type AccountStore struct {
	db         *DB
	autoCreate bool
}

var _ login.CredentialStore = (*AccountStore)(nil)

// NewAccountStore creates an account store.
// With autoCreate the first login of an unknown user registers the account.
func NewAccountStore(db *DB, autoCreate bool) *AccountStore {
	return &AccountStore{db: db, autoCreate: autoCreate}
}

// Authenticate verifies userID/password against the stored bcrypt hash.
func (s *AccountStore) Authenticate(ctx context.Context, userID, password string) error {
	hash, err := s.passwordHash(ctx, userID)
	if errors.Is(err, login.ErrAccountNotFound) {
		if !s.autoCreate {
			return err
		}
		return s.create(ctx, userID, password)
	}
	if err != nil {
		return err
	}

	if !login.CheckPassword(password, hash) {
		return login.ErrInvalidPassword
	}
	return s.touch(ctx, userID)
}

func (s *AccountStore) passwordHash(ctx context.Context, userID string) (string, error) {
	var hash string
	err := s.db.pool.QueryRow(ctx,
		`SELECT password_hash FROM accounts WHERE user_id = $1`, userID,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", login.ErrAccountNotFound
		}
		return "", fmt.Errorf("querying account %q: %w", userID, err)
	}
	return hash, nil
}

func (s *AccountStore) create(ctx context.Context, userID, password string) error {
	hash, err := login.HashPassword(password)
	if err != nil {
		return err
	}

	// Две параллельные попытки создать один аккаунт: выигрывает первая,
	// вторая проверяет пароль по уже записанному хэшу.
	tag, err := s.db.pool.Exec(ctx,
		`INSERT INTO accounts (user_id, password_hash, last_active)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, hash, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("creating account %q: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		stored, err := s.passwordHash(ctx, userID)
		if err != nil {
			return err
		}
		if !login.CheckPassword(password, stored) {
			return login.ErrInvalidPassword
		}
		return nil
	}

	slog.Info("auto-created account", "userID", userID)
	return nil
}

func (s *AccountStore) touch(ctx context.Context, userID string) error {
	_, err := s.db.pool.Exec(ctx,
		`UPDATE accounts SET last_active = $1 WHERE user_id = $2`,
		time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("updating last login for %q: %w", userID, err)
	}
	return nil
}
