package domain

import "time"

// TokenPurpose identifies the action an ActionToken authorizes.
type TokenPurpose string

const (
	// TokenPurposeConfirm authorizes email confirmation after signup.
	TokenPurposeConfirm TokenPurpose = "confirm"
	// TokenPurposeReset authorizes setting a new password.
	TokenPurposeReset TokenPurpose = "reset"
)

// ActionToken is a single-use, time-bound credential binding an action
// (email confirmation or password reset) to one user. Only the SHA-256
// digest of the opaque token is stored.
type ActionToken struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Purpose   TokenPurpose `json:"purpose"`
	TokenHash string       `json:"-"` // Digest only, never the raw token
	ExpiresAt time.Time    `json:"expires_at"`
	UsedAt    *time.Time   `json:"used_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// IsUsed returns true if the token has already been consumed.
func (t *ActionToken) IsUsed() bool {
	return t.UsedAt != nil
}

// IsExpired returns true if the token has passed its expiration time.
func (t *ActionToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid returns true if the token can still be consumed.
func (t *ActionToken) IsValid() bool {
	return !t.IsUsed() && !t.IsExpired()
}
