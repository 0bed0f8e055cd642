package domain

import "time"

// UserStatus represents the account's lifecycle state.
type UserStatus string

const (
	// UserStatusPending indicates the account was created but the email
	// address has not been confirmed yet. Sign-in is not permitted.
	UserStatusPending UserStatus = "pending"
	// UserStatusActive indicates the email address was confirmed.
	UserStatusActive UserStatus = "active"
)

// User represents a registered account.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never serialized
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
}

// IsActive returns true if the account's email has been confirmed.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsPending returns true if the account is awaiting email confirmation.
func (u *User) IsPending() bool {
	return u.Status == UserStatusPending
}

// Activate transitions the account from pending to active.
// Calling it on an already-active account is a no-op.
func (u *User) Activate() {
	if u.IsActive() {
		return
	}
	now := time.Now()
	u.Status = UserStatusActive
	u.ActivatedAt = &now
	u.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp to the current time.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
// Call this when creating a new user.
func (u *User) InitTimestamps() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}

// FullName returns the user's full name, or the username when no name is set.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
