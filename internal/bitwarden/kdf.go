package bitwarden

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

const derivedKeySize = 32

// derivedKeys holds the two independent keys stretched from the master key.
// Both are zeroed when the conversion attempt ends.
type derivedKeys struct {
	mac []byte
	enc []byte
}

func (k *derivedKeys) zero() {
	zeroBytes(k.mac)
	zeroBytes(k.enc)
}

// deriveKeys turns the password and envelope parameters into the MAC and
// encryption keys. The master key never leaves this function.
func deriveKeys(password []byte, env *envelope) (*derivedKeys, error) {
	var master []byte

	switch env.kdf {
	case kdfPBKDF2:
		if env.iterations <= 0 {
			return nil, fmt.Errorf("%w: iteration count %d", ErrInvalidKdfParams, env.iterations)
		}
		master = pbkdf2.Key(password, env.salt, env.iterations, derivedKeySize, sha256.New)

	case kdfArgon2id:
		if env.iterations <= 0 || env.memoryMiB <= 0 || env.parallelism <= 0 {
			return nil, fmt.Errorf("%w: iterations=%d memory=%d parallelism=%d",
				ErrInvalidKdfParams, env.iterations, env.memoryMiB, env.parallelism)
		}
		// The parameters come from the container, so they must fit the
		// argon2 argument types exactly; silent narrowing would either
		// panic or derive under a weaker cost than the envelope declares.
		if env.parallelism > math.MaxUint8 ||
			int64(env.iterations) > math.MaxUint32 ||
			int64(env.memoryMiB) > math.MaxUint32/1024 {
			return nil, fmt.Errorf("%w: iterations=%d memory=%d parallelism=%d out of range",
				ErrInvalidKdfParams, env.iterations, env.memoryMiB, env.parallelism)
		}
		// The export format hashes the salt before the Argon2id branch only.
		hashedSalt := sha256.Sum256(env.salt)
		master = argon2.IDKey(password, hashedSalt[:],
			uint32(env.iterations), uint32(env.memoryMiB)*1024, uint8(env.parallelism), derivedKeySize)

	default:
		return nil, fmt.Errorf("%w: kdfType %d", ErrUnsupportedKdf, env.kdf)
	}
	defer zeroBytes(master)

	// The master key is already high-entropy, so it is used directly as the
	// pseudorandom key for HKDF-Expand; there is no extract step.
	macKey, err := hkdfExpand(master, "mac")
	if err != nil {
		return nil, err
	}
	encKey, err := hkdfExpand(master, "enc")
	if err != nil {
		zeroBytes(macKey)
		return nil, err
	}
	return &derivedKeys{mac: macKey, enc: encKey}, nil
}

func hkdfExpand(prk []byte, info string) ([]byte, error) {
	out := make([]byte, derivedKeySize)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("hkdf expand %q: %w", info, err)
	}
	return out, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
