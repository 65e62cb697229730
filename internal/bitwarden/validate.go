package bitwarden

import (
	"crypto/hmac"
	"crypto/sha256"
)

// verifyPassword checks the keyed validation challenge. It is the sole
// password-correctness gate and must pass before any ciphertext is touched;
// a MAC mismatch means the password is wrong, nothing else.
func verifyPassword(macKey []byte, validation string) error {
	parts, err := decodeCipherString(validation, 3, ErrMalformedChallenge)
	if err != nil {
		return err
	}

	mac := hmac.New(sha256.New, macKey)
	mac.Write(parts.iv)
	mac.Write(parts.payload)
	if !hmac.Equal(mac.Sum(nil), parts.mac) {
		return ErrWrongPassword
	}
	return nil
}
