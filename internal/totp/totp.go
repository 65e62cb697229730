// Package totp implements otpauth provisioning URIs and RFC 6238 code
// generation for imported one-time-password settings.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAlgorithm = "SHA1"
	DefaultDigits    = 6
	DefaultPeriod    = 30
)

var ErrInvalidURI = errors.New("totp: invalid otpauth uri")

// Settings holds the parameters of one TOTP credential.
type Settings struct {
	Secret      string `json:"secret"`
	Issuer      string `json:"issuer,omitempty"`
	AccountName string `json:"account,omitempty"`
	Algorithm   string `json:"algorithm"`
	Digits      int    `json:"digits"`
	Period      int    `json:"period"`
}

// ParseURI parses an otpauth://totp/ provisioning URI into Settings.
// Missing query parameters fall back to SHA1, 6 digits, 30 seconds.
func ParseURI(raw string) (*Settings, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme != "otpauth" || u.Host != "totp" {
		return nil, fmt.Errorf("%w: scheme %q host %q", ErrInvalidURI, u.Scheme, u.Host)
	}

	q := u.Query()
	s := &Settings{
		Secret:    q.Get("secret"),
		Issuer:    q.Get("issuer"),
		Algorithm: DefaultAlgorithm,
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
	}
	if s.Secret == "" {
		return nil, fmt.Errorf("%w: missing secret", ErrInvalidURI)
	}

	// Label is "issuer:account" or just "account".
	label := strings.TrimPrefix(u.Path, "/")
	if issuer, account, ok := strings.Cut(label, ":"); ok {
		if s.Issuer == "" {
			s.Issuer = issuer
		}
		s.AccountName = account
	} else {
		s.AccountName = label
	}

	if alg := q.Get("algorithm"); alg != "" {
		s.Algorithm = strings.ToUpper(alg)
	}
	if d, err := strconv.Atoi(q.Get("digits")); err == nil && d > 0 {
		s.Digits = d
	}
	if p, err := strconv.Atoi(q.Get("period")); err == nil && p > 0 {
		s.Period = p
	}
	return s, nil
}

// ProvisionURI renders the settings back into a canonical otpauth URI.
func (s *Settings) ProvisionURI() string {
	label := url.PathEscape(s.AccountName)
	if s.Issuer != "" {
		label = url.PathEscape(s.Issuer) + ":" + label
	}
	q := url.Values{}
	q.Set("secret", s.Secret)
	if s.Issuer != "" {
		q.Set("issuer", s.Issuer)
	}
	q.Set("algorithm", s.Algorithm)
	q.Set("digits", strconv.Itoa(s.Digits))
	q.Set("period", strconv.Itoa(s.Period))
	return fmt.Sprintf("otpauth://totp/%s?%s", label, q.Encode())
}

// GenerateCode computes the code for the step containing the given time.
func (s *Settings) GenerateCode(when time.Time) (string, error) {
	secret, err := decodeSecret(s.Secret)
	if err != nil {
		return "", fmt.Errorf("totp: bad secret: %w", err)
	}
	defer zero(secret)

	period := s.Period
	if period <= 0 {
		period = DefaultPeriod
	}
	digits := s.Digits
	if digits <= 0 {
		digits = DefaultDigits
	}

	var newHash func() hash.Hash
	switch s.Algorithm {
	case "", "SHA1":
		newHash = sha1.New
	case "SHA256":
		newHash = sha256.New
	case "SHA512":
		newHash = sha512.New
	default:
		return "", fmt.Errorf("totp: unsupported algorithm %q", s.Algorithm)
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(when.Unix()/int64(period)))

	mac := hmac.New(newHash, secret)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	trunc := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", digits, trunc%mod), nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	secret = strings.TrimRight(secret, "=")
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
