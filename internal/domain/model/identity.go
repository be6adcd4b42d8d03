package model

import "time"

// Account is a locally registered email/password identity.
type Account struct {
	UID          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the authenticated principal behind a session.
type Identity struct {
	UID   string
	Email string
}

// Session is built once per request from the session cookie.
type Session struct {
	Token    string
	Identity *Identity
}

// Authenticated reports whether the session carries a verified identity.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}
