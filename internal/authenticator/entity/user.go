package entity

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session backs a bearer token. Its ID is the token's jti.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active reports whether the session is still usable at now.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
