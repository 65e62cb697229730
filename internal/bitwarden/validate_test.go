package bitwarden

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
)

func buildChallenge(macKey, iv, payload []byte) string {
	h := hmac.New(sha256.New, macKey)
	h.Write(iv)
	h.Write(payload)
	return fmt.Sprintf("0.%s|%s|%s",
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(payload),
		base64.StdEncoding.EncodeToString(h.Sum(nil)))
}

func TestVerifyPassword(t *testing.T) {
	macKey := []byte("0123456789abcdef0123456789abcdef")
	challenge := buildChallenge(macKey, []byte("iv-bytes"), []byte("payload"))

	if err := verifyPassword(macKey, challenge); err != nil {
		t.Fatalf("Verification should pass for the matching key: %v", err)
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	macKey := []byte("0123456789abcdef0123456789abcdef")
	otherKey := []byte("0123456789abcdef0123456789abcdeg")
	challenge := buildChallenge(macKey, []byte("iv-bytes"), []byte("payload"))

	err := verifyPassword(otherKey, challenge)
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
	if errors.Is(err, ErrDecryptionFailed) {
		t.Error("A MAC mismatch must never surface as a decryption failure")
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	macKey := []byte("0123456789abcdef0123456789abcdef")
	if err := verifyPassword(macKey, "no-separators"); !errors.Is(err, ErrMalformedChallenge) {
		t.Errorf("Expected ErrMalformedChallenge, got %v", err)
	}
}
