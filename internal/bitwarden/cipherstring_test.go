package bitwarden

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
)

func TestDecodeCipherString(t *testing.T) {
	iv := []byte("0123456789abcdef")
	payload := []byte("payload-bytes")
	mac := []byte("mac-bytes")
	field := fmt.Sprintf("2.%s|%s|%s",
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(payload),
		base64.StdEncoding.EncodeToString(mac))

	parts, err := decodeCipherString(field, 3, ErrMalformedChallenge)
	if err != nil {
		t.Fatalf("Failed to decode valid field: %v", err)
	}
	if !bytes.Equal(parts.iv, iv) || !bytes.Equal(parts.payload, payload) || !bytes.Equal(parts.mac, mac) {
		t.Error("Decoded components do not match the encoded input")
	}
}

func TestDecodeCipherStringTwoParts(t *testing.T) {
	field := fmt.Sprintf("2.%s|%s",
		base64.StdEncoding.EncodeToString([]byte("iv")),
		base64.StdEncoding.EncodeToString([]byte("ct")))

	parts, err := decodeCipherString(field, 2, ErrMalformedCipherField)
	if err != nil {
		t.Fatalf("Failed to decode valid field: %v", err)
	}
	if parts.mac != nil {
		t.Error("Two-part decode should leave mac unset")
	}
}

func TestDecodeCipherStringArity(t *testing.T) {
	cases := []struct {
		name  string
		field string
	}{
		{"no header separator", "just-one-segment"},
		{"too few components", "2.aXY=|cGF5bG9hZA=="},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeCipherString(tc.field, 3, ErrMalformedChallenge); !errors.Is(err, ErrMalformedChallenge) {
				t.Errorf("Expected ErrMalformedChallenge, got %v", err)
			}
		})
	}
}

func TestDecodeCipherStringBadBase64(t *testing.T) {
	field := "2.!!!not-base64!!!|cGF5bG9hZA==|bWFj"
	if _, err := decodeCipherString(field, 3, ErrMalformedChallenge); !errors.Is(err, ErrMalformedChallenge) {
		t.Errorf("Expected ErrMalformedChallenge, got %v", err)
	}

	if _, err := decodeCipherString("2.aXY=|???", 2, ErrMalformedCipherField); !errors.Is(err, ErrMalformedCipherField) {
		t.Errorf("Expected ErrMalformedCipherField, got %v", err)
	}
}
