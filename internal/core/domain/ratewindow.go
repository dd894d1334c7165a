package domain

import (
	"time"

	"github.com/google/uuid"
)

// RateWindow is a single (credential, 1-minute bucket) counter row, upserted
// on every request under that credential.
type RateWindow struct {
	CredentialID uuid.UUID `json:"credential_id"`
	WindowStart  time.Time `json:"window_start"`
	RequestCount int       `json:"request_count"`
}

// WindowStart truncates a timestamp to its containing 1-minute bucket.
func WindowStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
