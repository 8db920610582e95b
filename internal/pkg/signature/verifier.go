package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
)

// Verifier checks payment confirmations signed by the gateway with a shared
// secret. Anyone holding the secret can forge signatures, so it lives only
// in server-side configuration.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier around the gateway key secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify recomputes the HMAC-SHA256 hex signature over
// "<orderID>|<paymentID>" and compares it to the supplied one in constant
// time. The comparison is case-sensitive.
func (v *Verifier) Verify(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return domainErrors.ErrMissingParameter
	}

	expected := v.sign(orderID + "|" + paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domainErrors.ErrPaymentVerificationFailed
	}
	return nil
}

func (v *Verifier) sign(payload string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign exposes the raw signing primitive for tests and tooling.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
