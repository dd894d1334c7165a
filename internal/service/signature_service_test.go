package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()
	secret := "wh_secret_abc123"
	payload := []byte(`{"event_type":"transaction.completed","transaction_id":"t1"}`)

	signature := svc.Sign(payload, secret)

	assert.Regexp(t, `^[0-9a-f]{64}$`, signature, "signature should be 64-char lowercase hex (SHA-256)")
	assert.True(t, svc.Verify(payload, secret, signature))
}

func TestHMACSignatureService_VerifyFails_WrongSecret(t *testing.T) {
	svc := NewHMACSignatureService()
	payload := []byte("test payload")

	signature := svc.Sign(payload, "correct-secret")
	assert.False(t, svc.Verify(payload, "wrong-secret", signature))
}

func TestHMACSignatureService_VerifyFails_TamperedPayload(t *testing.T) {
	svc := NewHMACSignatureService()
	secret := "my-secret"

	signature := svc.Sign([]byte("original payload"), secret)
	assert.False(t, svc.Verify([]byte("tampered payload"), secret, signature))
}

func TestHMACSignatureService_VerifyFails_InvalidSignature(t *testing.T) {
	svc := NewHMACSignatureService()
	assert.False(t, svc.Verify([]byte("payload"), "secret", "not-a-valid-signature"))
}

func TestHMACSignatureService_DeterministicSign(t *testing.T) {
	svc := NewHMACSignatureService()

	sig1 := svc.Sign([]byte("data"), "key")
	sig2 := svc.Sign([]byte("data"), "key")

	assert.Equal(t, sig1, sig2, "same key+payload should produce same signature")
}
