package domain

import (
	"crypto/sha512"
	"encoding/base64"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt embeds the cost in each hash, so raising this later leaves
// existing hashes verifiable.
const bcryptCost = 14

const specialChars = "@#$%^&+="

// PasswordIsValid reports whether p satisfies the account password policy:
// length in [8, 100) characters with at least one lowercase letter, one
// uppercase letter, one digit, and one of @#$%^&+=.
func PasswordIsValid(p string) bool {
	n := utf8.RuneCountInString(p)
	if n < 8 || n >= 100 {
		return false
	}

	var lower, upper, digit, special bool
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			for _, s := range specialChars {
				if c == s {
					special = true
					break
				}
			}
		}
	}
	return lower && upper && digit && special
}

// prehash digests p with SHA-384 and base64-encodes the result. bcrypt only
// reads the first 72 bytes of its input, so the policy's 99-character ceiling
// would otherwise exceed it; the 64-byte encoded digest always fits.
func prehash(p string) []byte {
	sum := sha512.Sum384([]byte(p))
	buf := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(buf, sum[:])
	return buf
}

// HashPassword returns the salted bcrypt hash of the SHA-384 prehash of p.
// The raw password is never stored or logged.
func HashPassword(p string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(p), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether p matches the stored hash. bcrypt's compare
// is constant-time with respect to the candidate password.
func VerifyPassword(p, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(p)) == nil
}
