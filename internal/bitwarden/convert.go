// Package bitwarden converts a Bitwarden vault export, plaintext or
// password-protected, into the normalized credential tree. The pipeline is
// synchronous and all-or-nothing: on any error the caller gets no tree.
package bitwarden

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/vault-cli/bwimport/internal/domain"
)

// ConvertFile reads an export file and converts it.
func ConvertFile(path, password string) (*domain.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return Convert(data, password)
}

// IsEncrypted reports whether the raw export bytes form an encrypted
// container, so callers can decide whether a password is needed at all.
func IsEncrypted(data []byte) (bool, error) {
	parsed, err := parseContainer(data)
	if err != nil {
		return false, err
	}
	return parsed.env != nil, nil
}

// Convert parses the container, decrypts it when it is an encrypted
// envelope, and maps the vault document into a credential tree. The
// password is only consulted for encrypted containers; derived keys do not
// outlive the call.
func Convert(data []byte, password string) (*domain.Tree, error) {
	parsed, err := parseContainer(data)
	if err != nil {
		return nil, err
	}

	vault := parsed.tree
	if parsed.env != nil {
		env := parsed.env
		log.Debug().
			Int("kdfType", env.kdf).
			Int("iterations", env.iterations).
			Msg("decrypting export container")

		keys, err := deriveKeys([]byte(password), env)
		if err != nil {
			return nil, err
		}
		defer keys.zero()

		// The validation challenge is the sole password gate; a wrong
		// password never reaches the decryptor.
		if err := verifyPassword(keys.mac, env.validation); err != nil {
			return nil, err
		}

		plaintext, err := decryptPayload(keys.enc, env.data)
		if err != nil {
			return nil, err
		}

		var raw map[string]any
		if err := json.Unmarshal(plaintext, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPostDecryptParse, err)
		}
		vault = object(raw)
	}

	return buildTree(vault), nil
}
