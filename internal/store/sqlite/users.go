package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, status, created_at, updated_at, activated_at`

// scanUser scans a user row from a *sql.Row or *sql.Rows.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	var status, createdAt, updatedAt string
	var activatedAt sql.NullString

	err := scanner.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &status,
		&createdAt, &updatedAt, &activatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Status = domain.UserStatus(status)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if u.ActivatedAt, err = parseNullableTime(activatedAt); err != nil {
		return nil, fmt.Errorf("parse activated_at: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user record.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, email_lower, password_hash, first_name, last_name, status, created_at, updated_at, activated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, strings.ToLower(user.Email),
		user.PasswordHash, user.FirstName, user.LastName, string(user.Status),
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt), nullTimeString(user.ActivatedAt),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users.username"):
			return store.ErrAlreadyExists.WithMessage("this username is already taken")
		case isUniqueViolation(err, "users.email_lower"):
			return store.ErrAlreadyExists.WithMessage("an account with this email already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by case-insensitive email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, strings.ToLower(email))

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// UpdateUser performs a full row update of the user record.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET username = ?, email = ?, email_lower = ?, password_hash = ?,
		    first_name = ?, last_name = ?, status = ?,
		    updated_at = ?, activated_at = ?
		WHERE id = ?`,
		user.Username, user.Email, strings.ToLower(user.Email), user.PasswordHash,
		user.FirstName, user.LastName, string(user.Status),
		formatTime(user.UpdatedAt), nullTimeString(user.ActivatedAt),
		user.ID,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users.username"):
			return store.ErrAlreadyExists.WithMessage("this username is already taken")
		case isUniqueViolation(err, "users.email_lower"):
			return store.ErrAlreadyExists.WithMessage("an account with this email already exists")
		}
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("user not found")
	}
	return nil
}
