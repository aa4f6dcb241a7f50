package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword membuat hash bcrypt untuk disimpan di kolom password_hash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword mencocokkan password login dengan hash tersimpan.
func CheckPassword(hashed, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
