package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const base62Chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateKey returns prefix followed by length random base62 characters,
// drawn from crypto/rand. Used for API key tokens and session ids.
func GenerateKey(prefix string, length int) (string, error) {
	var sb strings.Builder
	sb.WriteString(prefix)

	for range length {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(base62Chars[num.Int64()])
	}

	return sb.String(), nil
}
