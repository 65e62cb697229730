package bitwarden

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// decryptPayload decrypts the data field with AES-256-CBC and strips the
// PKCS#7 padding. The field's trailing mac component is not checked here;
// password correctness was already established against the validation
// challenge.
func decryptPayload(encKey []byte, dataField string) ([]byte, error) {
	parts, err := decodeCipherString(dataField, 2, ErrMalformedCipherField)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if len(parts.iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv length %d", ErrDecryptionFailed, len(parts.iv))
	}
	if len(parts.payload) == 0 || len(parts.payload)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d", ErrDecryptionFailed, len(parts.payload))
	}

	plaintext := make([]byte, len(parts.payload))
	cipher.NewCBCDecrypter(block, parts.iv).CryptBlocks(plaintext, parts.payload)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecryptionFailed)
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryptionFailed)
		}
	}
	return data[:len(data)-pad], nil
}
