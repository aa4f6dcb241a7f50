package utils

import (
	"crypto/rand"
	"fmt"
)

// TokenLampiranLength is the length of the opaque token grouping a letter's
// attachments.
const TokenLampiranLength = 40

const tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RandomToken returns n alphanumeric characters from crypto/rand. Tokens are
// generated once per surat at creation time and never reused.
func RandomToken(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}

	out := make([]byte, n)
	for i, b := range raw {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out), nil
}
