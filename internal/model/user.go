package model

import "time"

// Avatar is the rendered identity badge for a user: up to two initials
// plus a palette color chosen at registration.
type Avatar struct {
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

// User is a registered account in the local user directory.
// PasswordHash holds a bcrypt hash; the plaintext password is never stored.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash"`
	Avatar       Avatar     `json:"avatar"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// Session is the logged-in projection of a User held in application state
// and persisted as the current-session pointer. It never carries the
// password hash.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar Avatar `json:"avatar"`
}

// Active reports whether the session refers to a logged-in user.
func (s Session) Active() bool {
	return s.ID != ""
}

// NewSession builds the session projection for a user.
func NewSession(u User) Session {
	return Session{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
