package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"payx-ledger/internal/core/domain"
	"payx-ledger/internal/core/ports"
	"payx-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

const credentialPrefixLen = 12
const touchLastUsedTimeout = 2 * time.Second

// AuthGateServiceImpl implements ports.AuthGateService: bearer credential
// resolution against the prefix index, memory-hard verification, and the
// fixed-window rate check.
type AuthGateServiceImpl struct {
	credentialRepo ports.CredentialRepository
	businessRepo   ports.BusinessRepository
	rateWindowRepo ports.RateWindowRepository
	hashSvc        ports.HashService
	log            zerolog.Logger
}

// NewAuthGateService creates a new AuthGateServiceImpl.
func NewAuthGateService(
	credentialRepo ports.CredentialRepository,
	businessRepo ports.BusinessRepository,
	rateWindowRepo ports.RateWindowRepository,
	hashSvc ports.HashService,
	log zerolog.Logger,
) *AuthGateServiceImpl {
	return &AuthGateServiceImpl{
		credentialRepo: credentialRepo,
		businessRepo:   businessRepo,
		rateWindowRepo: rateWindowRepo,
		hashSvc:        hashSvc,
		log:            log,
	}
}

// Authenticate resolves a raw "payx_..." bearer credential to its owning
// business.
func (s *AuthGateServiceImpl) Authenticate(ctx context.Context, rawKey string) (*ports.AuthResult, error) {
	if !strings.HasPrefix(rawKey, domain.CredentialTag) {
		return nil, apperror.ErrInvalidAPIKey()
	}
	tail := strings.TrimPrefix(rawKey, domain.CredentialTag)
	if len(tail) < credentialPrefixLen {
		return nil, apperror.ErrInvalidAPIKey()
	}
	prefix := tail[:credentialPrefixLen]

	candidate, err := s.credentialRepo.FindByPrefix(ctx, prefix)
	if err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("lookup credential by prefix: %w", err))
	}
	if candidate == nil || !candidate.IsValid(time.Now()) {
		return nil, apperror.ErrInvalidAPIKey()
	}

	match, err := s.hashSvc.Verify(rawKey, candidate.KeyHash)
	if err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("verify credential: %w", err))
	}
	if !match {
		return nil, apperror.ErrInvalidAPIKey()
	}

	business, err := s.businessRepo.GetByID(ctx, candidate.BusinessID)
	if err != nil {
		return nil, apperror.ErrDatabase(fmt.Errorf("load business: %w", err))
	}
	if business == nil {
		return nil, apperror.ErrInvalidAPIKey()
	}

	credentialID := candidate.ID
	fireAndForget(s.log, "touch_last_used", touchLastUsedTimeout, func(ctx context.Context) error {
		return s.credentialRepo.TouchLastUsed(ctx, credentialID, time.Now())
	})

	return &ports.AuthResult{Credential: candidate, Business: business}, nil
}

// CheckRateLimit increments and evaluates the current 1-minute window for
// the given credential.
func (s *AuthGateServiceImpl) CheckRateLimit(ctx context.Context, credential *domain.Credential, now time.Time) error {
	windowStart := domain.WindowStart(now)
	count, err := s.rateWindowRepo.CheckAndIncrement(ctx, credential.ID, windowStart)
	if err != nil {
		return apperror.ErrDatabase(fmt.Errorf("increment rate window: %w", err))
	}
	if count > credential.RateLimitPerMinute {
		return apperror.ErrRateLimitExceeded()
	}
	return nil
}

// GenerateCredential produces a new raw bearer credential of the form
// "payx_<base64url 32-byte random>" along with its lookup prefix.
func GenerateCredential() (raw, prefix string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating credential: %w", err)
	}
	tail := base64.RawURLEncoding.EncodeToString(buf)
	raw = domain.CredentialTag + tail
	if len(tail) < credentialPrefixLen {
		return "", "", fmt.Errorf("generated credential shorter than prefix length")
	}
	prefix = tail[:credentialPrefixLen]
	return raw, prefix, nil
}
