package domain

import "time"

// GuestIdentity is the sentinel identity key used to scope library data
// while nobody is logged in. Guest data is shared by all logged-out use and
// survives login/logout cycles.
const GuestIdentity = "guest"

// Account is a locally registered user. Accounts exist only to namespace
// library data per identity; this is not a security-grade account system.
// Passwords are nevertheless stored as argon2id hashes, never plaintext.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`    // unique
	Username     string    `json:"username"` // unique
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the single current-session pointer. Logging out deletes the
// session; the account itself is untouched.
type Session struct {
	AccountID  string    `json:"account_id"`
	LoggedInAt time.Time `json:"logged_in_at"`
}
