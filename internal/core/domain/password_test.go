package domain

import (
	"strings"
	"testing"
)

func TestPasswordIsValid(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdef1@", true},
		{"valid with all specials", "aA1@#$%^&+=", true},
		{"too short", "Abc1@aa", false},
		{"exactly at upper bound", "Aa1@" + strings.Repeat("x", 96), false},
		{"just under upper bound", "Aa1@" + strings.Repeat("x", 95), true},
		{"empty", "", false},
		{"missing lowercase", "ABCDEF1@", false},
		{"missing uppercase", "abcdef1@", false},
		{"missing digit", "Abcdefg@", false},
		{"missing special", "Abcdefg1", false},
		{"special not in set", "Abcdef1!", false},
		{"multibyte under upper bound", "Aa1@" + strings.Repeat("ñ", 95), true},
		{"multibyte at upper bound", "Aa1@" + strings.Repeat("ñ", 96), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PasswordIsValid(tc.password); got != tc.want {
				t.Fatalf("PasswordIsValid(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1@")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Abcdef1@" {
		t.Fatalf("hash equals the raw password")
	}

	if !VerifyPassword("Abcdef1@", hash) {
		t.Fatalf("correct password did not verify")
	}
	if VerifyPassword("Abcdef1#", hash) {
		t.Fatalf("wrong password verified")
	}
	if VerifyPassword("Abcdef1@", "not-a-hash") {
		t.Fatalf("garbage hash verified")
	}
}

// Every policy-valid password must round-trip through hash and verify, in
// particular those longer than bcrypt's 72-byte input limit.
func TestHashAndVerifyLongPassword(t *testing.T) {
	password := "Aa1@" + strings.Repeat("x", 95)
	if !PasswordIsValid(password) {
		t.Fatalf("expected %d-char password to satisfy the policy", len(password))
	}

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(password, hash) {
		t.Fatalf("correct password did not verify")
	}
	if VerifyPassword("Aa1@"+strings.Repeat("y", 95), hash) {
		t.Fatalf("wrong password verified")
	}
}
