package uid

import "github.com/google/uuid"

// UUID generates time-ordered UUID v7 strings. Session IDs and JWT IDs use it.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate implements StringID. It falls back to v4 if the v7 clock source
// fails.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
