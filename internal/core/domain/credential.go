package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a tenant-scoped bearer API key. The raw secret is returned
// once at creation and never stored; only its memory-hard hash and a short
// lookup prefix persist.
type Credential struct {
	ID                uuid.UUID  `json:"id"`
	BusinessID        uuid.UUID  `json:"business_id"`
	KeyHash           string     `json:"-"`
	KeyPrefix         string     `json:"key_prefix"`
	RateLimitPerMinute int       `json:"rate_limit_per_minute"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	RevokedAt         *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt        *time.Time `json:"last_used_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// IsValid reports whether the credential may still authenticate a request:
// not revoked, and not expired.
func (c *Credential) IsValid(now time.Time) bool {
	if c.RevokedAt != nil {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}

// CredentialTag is the fixed tag every raw credential starts with; the
// lookup prefix is taken from the characters that follow it.
const CredentialTag = "payx_"

// DefaultRateLimitPerMinute is the per-minute budget assigned to a
// credential minted through business onboarding.
const DefaultRateLimitPerMinute = 600
