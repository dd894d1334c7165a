package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCredential_IsValid(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		cred Credential
		want bool
	}{
		{"no expiry no revocation", Credential{}, true},
		{"revoked", Credential{RevokedAt: &past}, false},
		{"expired", Credential{ExpiresAt: &past}, false},
		{"not yet expired", Credential{ExpiresAt: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.IsValid(now))
		})
	}
}

func TestTransaction_LockSet(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	t.Run("credit locks destination only", func(t *testing.T) {
		txn := Transaction{Type: TransactionTypeCredit, DestinationAccountID: &a}
		assert.Equal(t, []uuid.UUID{a}, txn.LockSet())
	})

	t.Run("debit locks source only", func(t *testing.T) {
		txn := Transaction{Type: TransactionTypeDebit, SourceAccountID: &a}
		assert.Equal(t, []uuid.UUID{a}, txn.LockSet())
	})

	t.Run("transfer locks both in a stable order regardless of request order", func(t *testing.T) {
		forward := Transaction{Type: TransactionTypeTransfer, SourceAccountID: &a, DestinationAccountID: &b}
		reverse := Transaction{Type: TransactionTypeTransfer, SourceAccountID: &b, DestinationAccountID: &a}
		assert.Equal(t, forward.LockSet(), reverse.LockSet())
	})
}

func TestWindowStart_TruncatesToMinute(t *testing.T) {
	ts := time.Date(2026, 3, 4, 10, 15, 42, 123, time.UTC)
	got := WindowStart(ts)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 15, 0, 0, time.UTC), got)
}
