// ABOUTME: Salted password hashing for bouncer user credentials
// ABOUTME: SHA-256 over password+salt with a fresh random salt per call

package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// saltLength is the number of salt characters generated per credential.
const saltLength = 20

// saltAlphabet covers the printable ASCII range used for salts.
const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!?.,:;/*-+_()"

// HashPassword hashes a plaintext user password with a fresh random salt.
// The result is hex(sha256(password + salt)). User credentials use this
// scheme so the stored form stays portable across bouncer versions; admin
// credentials use bcrypt instead (see the auth package).
func (e *Engine) HashPassword(password string) (hash, salt string) {
	salt = generateSalt()
	return saltedHash(password, salt), salt
}

// VerifyPassword checks a plaintext password against a stored hash and salt
// in constant time.
func VerifyPassword(password, hash, salt string) bool {
	computed := saltedHash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func saltedHash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func generateSalt() string {
	buf := make([]byte, saltLength)
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(buf)

	out := make([]byte, saltLength)
	for i, b := range buf {
		out[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(out)
}
