package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestSignatureAcceptsValid(t *testing.T) {
	body := []byte(`{"commits":[{"message":"Acquiring lock"}]}`)
	if err := Signature(body, "s3cret", sign(body, "s3cret")); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestSignatureRejectsMutations(t *testing.T) {
	body := []byte(`{"commits":[{"message":"Acquiring lock"}]}`)
	header := sign(body, "s3cret")

	// Single-bit body mutation.
	mutated := append([]byte(nil), body...)
	mutated[0] ^= 0x01
	if err := Signature(mutated, "s3cret", header); err == nil {
		t.Fatal("mutated body accepted")
	}

	// Wrong secret.
	if err := Signature(body, "s3cre7", header); err == nil {
		t.Fatal("wrong secret accepted")
	}

	// Mutated signature hex digit (same length, wrong content).
	bad := []byte(header)
	if bad[len(bad)-1] == 'a' {
		bad[len(bad)-1] = 'b'
	} else {
		bad[len(bad)-1] = 'a'
	}
	if err := Signature(body, "s3cret", string(bad)); err == nil {
		t.Fatal("mutated signature accepted")
	}
}

func TestSignatureRejectsMalformedHeader(t *testing.T) {
	body := []byte("{}")
	for _, header := range []string{
		"",
		"sha1=deadbeef",
		"deadbeef",
		"sha256=",
		"sha256=short",
	} {
		if err := Signature(body, "s3cret", header); err == nil {
			t.Fatalf("malformed header %q accepted", header)
		}
	}
}

func TestSignatureRejectsEmptySecret(t *testing.T) {
	body := []byte("{}")
	if err := Signature(body, "", sign(body, "")); err == nil {
		t.Fatal("empty secret accepted")
	}
}

func TestToken(t *testing.T) {
	cases := []struct {
		name     string
		got, want string
		ok       bool
	}{
		{"match", "tok-123", "tok-123", true},
		{"mismatch same length", "tok-124", "tok-123", false},
		{"length mismatch", "tok-1234", "tok-123", false},
		{"missing header", "", "tok-123", false},
		{"unconfigured", "tok-123", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Token(tc.got, tc.want)
			if tc.ok && err != nil {
				t.Fatalf("expected accept, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected reject")
			}
		})
	}
}
