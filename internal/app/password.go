package app

import "golang.org/x/crypto/bcrypt"

// hashPassword returns a salted bcrypt hash of the plaintext. Every call
// salts freshly, so two hashes of the same password differ; callers must
// go through verifyPassword, never compare hashes directly.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword reports whether plaintext matches the stored hash. A
// malformed hash verifies false rather than erroring out.
func verifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
