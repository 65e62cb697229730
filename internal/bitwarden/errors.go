package bitwarden

import "errors"

// Error kinds surfaced by a conversion. Callers match with errors.Is; every
// error returned by Convert wraps exactly one of these.
var (
	// ErrSourceUnavailable is returned when the export file cannot be read.
	ErrSourceUnavailable = errors.New("cannot read export file")
	// ErrMalformedContainer is returned when the top-level document does not parse.
	ErrMalformedContainer = errors.New("cannot parse export file")
	// ErrUnprotectedExport is returned when the encrypted flag is set but the
	// KDF fields are missing; the export was not password-protected.
	ErrUnprotectedExport = errors.New("unsupported format, ensure the export is password-protected")
	// ErrInvalidKdfParams is returned for non-positive KDF cost parameters.
	ErrInvalidKdfParams = errors.New("invalid KDF parameters")
	// ErrUnsupportedKdf is returned for a kdfType outside PBKDF2 and Argon2id.
	ErrUnsupportedKdf = errors.New("only PBKDF2 and Argon2 are supported")
	// ErrMalformedChallenge is returned when the key-validation field does not
	// split into header, iv, payload and mac.
	ErrMalformedChallenge = errors.New("invalid key validation field")
	// ErrMalformedCipherField is returned when the data field does not split
	// into header, iv and ciphertext.
	ErrMalformedCipherField = errors.New("invalid encrypted data field")
	// ErrWrongPassword is returned when the MAC over the validation challenge
	// does not match; the only error that means the password is wrong.
	ErrWrongPassword = errors.New("wrong password")
	// ErrDecryptionFailed is returned for cipher or padding failures on the
	// data blob.
	ErrDecryptionFailed = errors.New("cannot decrypt data")
	// ErrPostDecryptParse is returned when decryption succeeds but the
	// plaintext is not a valid document.
	ErrPostDecryptParse = errors.New("cannot parse decrypted data")
)
