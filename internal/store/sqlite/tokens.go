package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

const actionTokenColumns = `id, user_id, purpose, token_hash, expires_at, used_at, created_at`

func scanActionToken(scanner interface{ Scan(dest ...any) error }) (*domain.ActionToken, error) {
	var t domain.ActionToken
	var purpose, expiresAt, createdAt string
	var usedAt sql.NullString

	err := scanner.Scan(&t.ID, &t.UserID, &purpose, &t.TokenHash, &expiresAt, &usedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	t.Purpose = domain.TokenPurpose(purpose)
	if t.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}
	if t.UsedAt, err = parseNullableTime(usedAt); err != nil {
		return nil, fmt.Errorf("parse used_at: %w", err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &t, nil
}

// CreateActionToken inserts a new single-use token record.
func (s *Store) CreateActionToken(ctx context.Context, token *domain.ActionToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_tokens (id, user_id, purpose, token_hash, expires_at, used_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		token.ID, token.UserID, string(token.Purpose), token.TokenHash,
		formatTime(token.ExpiresAt), nullTimeString(token.UsedAt), formatTime(token.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert action token: %w", err)
	}
	return nil
}

// GetActionTokenByHash retrieves a token by its stored digest.
func (s *Store) GetActionTokenByHash(ctx context.Context, hash string) (*domain.ActionToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+actionTokenColumns+` FROM action_tokens WHERE token_hash = ?`, hash)

	token, err := scanActionToken(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("get action token: %w", err)
	}
	return token, nil
}

// ConsumeActionToken marks the token as used. The used_at IS NULL guard makes
// the update atomic: of two concurrent consumers, exactly one succeeds.
func (s *Store) ConsumeActionToken(ctx context.Context, tokenID string, usedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE action_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		formatTime(usedAt), tokenID)
	if err != nil {
		return fmt.Errorf("consume action token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrInvalidToken
	}
	return nil
}
