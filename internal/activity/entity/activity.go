package entity

import (
	"time"

	"github.com/h7ml/denoAuthenticator/internal/pkg/valueobject"
)

type Action string

const (
	ActionUserRegistered    Action = "user.registered"
	ActionUserPasswordReset Action = "user.password_reset"
	ActionEntryCreated      Action = "entry.created"
	ActionEntryDeleted      Action = "entry.deleted"
)

func (a Action) String() string { return string(a) }

// Notifiable reports whether the action warrants a security notice email.
func (a Action) Notifiable() bool {
	return a == ActionUserRegistered || a == ActionUserPasswordReset
}

type Activity struct {
	ID            int64
	UserID        int64
	Action        Action
	Metadata      valueobject.JSONMap
	CorrelationID string
	OccurredAt    time.Time
	CreatedAt     time.Time
}
