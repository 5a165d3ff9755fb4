package event

import "time"

const (
	EntryCreatedSubject string = "entry.created"
	EntryDeletedSubject string = "entry.deleted"
)

type EntryCreatedMessage struct {
	UserID     int64     `json:"user_id,string"`
	EntryID    int64     `json:"entry_id,string"`
	Name       string    `json:"name"`
	Issuer     string    `json:"issuer"`
	Method     string    `json:"method"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EntryDeletedMessage struct {
	UserID     int64     `json:"user_id,string"`
	EntryID    int64     `json:"entry_id,string"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
