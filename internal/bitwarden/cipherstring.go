package bitwarden

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// cipherParts is one decoded "header.iv|payload|mac" field. mac is nil when
// the field was decoded with wantParts 2 (the data field ignores its mac).
type cipherParts struct {
	iv      []byte
	payload []byte
	mac     []byte
}

// decodeCipherString splits a two-level encoded field: first on "." (the
// header/version segment is ignored), then the second segment on "|" into
// base64 components. Arity or base64 failures return kindErr wrapped with
// the offending detail.
func decodeCipherString(field string, wantParts int, kindErr error) (*cipherParts, error) {
	segments := strings.Split(field, ".")
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: expected header and cipher segments, got %d", kindErr, len(segments))
	}

	components := strings.Split(segments[1], "|")
	if len(components) < wantParts {
		return nil, fmt.Errorf("%w: expected %d cipher components, got %d", kindErr, wantParts, len(components))
	}

	decoded := make([][]byte, wantParts)
	for i := 0; i < wantParts; i++ {
		b, err := base64.StdEncoding.DecodeString(components[i])
		if err != nil {
			return nil, fmt.Errorf("%w: component %d is not valid base64", kindErr, i)
		}
		decoded[i] = b
	}

	parts := &cipherParts{iv: decoded[0], payload: decoded[1]}
	if wantParts >= 3 {
		parts.mac = decoded[2]
	}
	return parts, nil
}
