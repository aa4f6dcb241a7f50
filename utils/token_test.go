package utils

import (
	"strings"
	"testing"
)

func TestRandomTokenLength(t *testing.T) {
	token, err := RandomToken(TokenLampiranLength)
	if err != nil {
		t.Fatalf("RandomToken: %v", err)
	}
	if len(token) != TokenLampiranLength {
		t.Fatalf("len = %d, want %d", len(token), TokenLampiranLength)
	}
}

func TestRandomTokenAlphabet(t *testing.T) {
	token, err := RandomToken(200)
	if err != nil {
		t.Fatalf("RandomToken: %v", err)
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token contains %q outside the alphabet", r)
		}
	}
}

func TestRandomTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := RandomToken(TokenLampiranLength)
		if err != nil {
			t.Fatalf("RandomToken: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q after %d draws", token, i)
		}
		seen[token] = true
	}
}
