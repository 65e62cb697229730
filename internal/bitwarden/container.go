package bitwarden

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Supported kdfType values in the export format.
const (
	kdfPBKDF2   = 0
	kdfArgon2id = 1
)

// envelope holds the encryption parameters read from an encrypted container.
type envelope struct {
	kdf         int
	iterations  int
	memoryMiB   int
	parallelism int
	salt        []byte
	validation  string
	data        string
}

// container is the parsed top-level document: either an already-plaintext
// vault tree, or an envelope that must be decrypted first.
type container struct {
	tree object
	env  *envelope
}

// parseContainer parses the raw export bytes and detects the envelope. The
// byte offset of a syntax error is reported when the parser provides one.
func parseContainer(data []byte) (*container, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v at position %d", ErrMalformedContainer, err, syntaxErr.Offset)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	doc := object(raw)
	if !doc.boolean("encrypted") {
		return &container{tree: doc}, nil
	}

	if !doc.has("kdfType") || !doc.has("salt") {
		return nil, ErrUnprotectedExport
	}

	return &container{env: &envelope{
		kdf:         doc.integer("kdfType"),
		iterations:  doc.integer("kdfIterations"),
		memoryMiB:   doc.integer("kdfMemory"),
		parallelism: doc.integer("kdfParallelism"),
		salt:        []byte(doc.str("salt")),
		validation:  doc.str("encKeyValidation_DO_NOT_EDIT"),
		data:        doc.str("data"),
	}}, nil
}
