// Package webhook verifies that inbound request bodies were produced by the
// claimed sender. Verification runs before any body field is interpreted;
// a failure is terminal for the request.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const signaturePrefix = "sha256="

// ErrUnauthorized is returned for any missing, malformed or mismatched
// signature or token. Callers translate it into a 401 without touching
// the store.
var ErrUnauthorized = errors.New("webhook verification failed")

// Signature checks a GitHub-style x-hub-signature-256 header against the
// raw, unparsed body. The header carries "sha256=<hex>"; the expected value
// is HMAC-SHA256 over body with secret. Lengths are compared before
// content, and content comparison is constant-time.
func Signature(body []byte, secret, header string) error {
	if secret == "" || !strings.HasPrefix(header, signaturePrefix) {
		return ErrUnauthorized
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := signaturePrefix + hex.EncodeToString(mac.Sum(nil))

	if len(header) != len(expected) {
		return ErrUnauthorized
	}
	if !hmac.Equal([]byte(header), []byte(expected)) {
		return ErrUnauthorized
	}
	return nil
}

// Token checks a shared-secret header (x-telegram-bot-api-secret-token)
// against the configured value. Both must be present and byte-equal; the
// comparison is constant-time after the length gate.
func Token(got, want string) error {
	if got == "" || want == "" {
		return ErrUnauthorized
	}
	if len(got) != len(want) {
		return ErrUnauthorized
	}
	if !hmac.Equal([]byte(got), []byte(want)) {
		return ErrUnauthorized
	}
	return nil
}
