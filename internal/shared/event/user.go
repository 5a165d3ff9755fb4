package event

import "time"

const (
	UserRegisteredSubject    string = "user.registered"
	UserPasswordResetSubject string = "user.password_reset"
)

type UserRegisteredMessage struct {
	UserID     int64     `json:"user_id,string"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserPasswordResetMessage struct {
	UserID          int64     `json:"user_id,string"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	RevokedSessions int64     `json:"revoked_sessions"`
	OccurredAt      time.Time `json:"occurred_at"`
}
