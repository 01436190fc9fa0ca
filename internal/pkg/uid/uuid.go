package uid

import "github.com/google/uuid"

// UUID hands out UUIDv7 strings. They sort by creation time, which keeps
// auth_users inserts append-only on the primary key index.
type UUID struct{}

func NewUUID() *UUID { return &UUID{} }

func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	// NewString panics if the random source is broken.
	return uuid.NewString()
}
