package entity

import "time"

const (
	DefaultDigits   = 6
	DefaultTimeStep = 30
)

// EntryMethod is how an entry was provisioned.
type EntryMethod string

const (
	EntryMethodURL    EntryMethod = "url"
	EntryMethodManual EntryMethod = "manual"
)

func (m EntryMethod) String() string { return string(m) }

// Entry is one authenticator account. Secret holds the base32 seed only in
// memory; SealedSecret is what gets persisted.
type Entry struct {
	ID           int64
	UserID       int64
	Name         string
	Issuer       string
	AccountName  string
	Secret       string
	SealedSecret []byte
	Digits       int
	TimeStep     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EntryPatch holds the editable fields of an entry.
type EntryPatch struct {
	ID          int64
	UserID      int64
	Name        string
	Issuer      string
	AccountName string
	UpdatedAt   time.Time
}
