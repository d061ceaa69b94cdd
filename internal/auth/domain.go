package auth

import "time"

// User is the stored account record. The password hash never leaves this
// package; anything returned to callers is an Identity.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated view of a user handed past the auth
// boundary. It deliberately has no hash field.
type Identity struct {
	ID    int64
	Name  string
	Email string
}

// Identity strips the credential material from a user record.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}
