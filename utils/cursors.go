package utils

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/xxtea/xxtea-go/xxtea"
)

// EncryptPageToken serializes token to JSON, encrypts it with XXTEA and
// encodes the result as base58 so it is safe to put in a query string.
func EncryptPageToken(token any, key string) (string, error) {
	jsonData, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("error encoding page token: %w", err)
	}

	encryptedBytes := xxtea.Encrypt(jsonData, []byte(key))
	if encryptedBytes == nil {
		return "", fmt.Errorf("error encrypting page token")
	}

	return base58.Encode(encryptedBytes), nil
}

// DecryptPageToken reverses EncryptPageToken into out. Any failure, including
// a token encrypted with another key, is reported as ErrInvalidPageToken.
func DecryptPageToken(input string, key string, out any) error {
	decoded := base58.Decode(input)
	if len(decoded) == 0 {
		return ErrInvalidPageToken
	}

	decryptedBytes := xxtea.Decrypt(decoded, []byte(key))
	if decryptedBytes == nil {
		return ErrInvalidPageToken
	}

	if err := json.Unmarshal(decryptedBytes, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}

	return nil
}
