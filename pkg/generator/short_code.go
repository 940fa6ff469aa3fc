// Package generator produces random aliases for synthetic data.
package generator

import (
	"crypto/rand"
	"math/big"
)

const (
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	codeLength  = 7
)

func GenerateShortCode() (string, error) {
	return GenerateShortCodeN(codeLength)
}

// GenerateShortCodeN returns n random base62 characters. The output always
// satisfies the alias charset rule.
func GenerateShortCodeN(n int) (string, error) {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}

		b[i] = base62Chars[idx.Int64()]
	}

	return string(b), nil
}
