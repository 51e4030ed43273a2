package user

import "time"

// User is the login identity. Portal data hangs off the linked staff profile.
type User struct {
	ID           string
	Email        string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
