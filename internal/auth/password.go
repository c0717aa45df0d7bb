package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 10

// HashPassword returns a salted bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches hash. The comparison is constant time.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ResolvePasswordHash returns the hash to store when plain is submitted as a new password.
// When plain already matches existingHash the existing hash is kept and changed is false.
func ResolvePasswordHash(existingHash, plain string) (hash string, changed bool, err error) {
	if existingHash != "" && CheckPassword(existingHash, plain) {
		return existingHash, false, nil
	}
	hash, err = HashPassword(plain)
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}
