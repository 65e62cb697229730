// Package store persists a converted credential tree into a local vault
// file. Entry bodies are sealed with AES-256-GCM under a key derived from
// the destination passphrase; group names and entry titles stay readable
// for listing.
package store

import "errors"

var (
	// ErrVaultExists is returned when creating a vault at an existing path.
	ErrVaultExists = errors.New("vault already exists")
	// ErrVaultNotFound is returned when opening a vault that does not exist.
	ErrVaultNotFound = errors.New("vault not found")
	// ErrWrongPassphrase is returned when the passphrase check fails on open.
	ErrWrongPassphrase = errors.New("wrong vault passphrase")
	// ErrVaultCorrupted is returned when required metadata is missing.
	ErrVaultCorrupted = errors.New("vault data is corrupted")
	// ErrEntryNotFound is returned when the requested entry does not exist.
	ErrEntryNotFound = errors.New("entry not found")
)

// KDFParams are the Argon2id cost parameters for the destination vault key.
type KDFParams struct {
	Memory      uint32 `json:"memory"`
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism"`
}

// DefaultKDFParams returns costs tuned for an interactive unlock.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
	}
}

// Summary is the listable, unencrypted view of a stored entry.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Group string `json:"group"`
}
