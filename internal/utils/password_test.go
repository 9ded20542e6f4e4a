package utils

import (
	"strconv"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("s3cret-pass", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("correct password should verify")
	}

	ok, err = VerifyPassword("wrong-pass", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("expected 6 digits, got %q", otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("OTP must be numeric, got %q", otp)
			}
		}
		n, err := strconv.Atoi(otp)
		if err != nil || n < 0 || n >= 1000000 {
			t.Fatalf("OTP out of range: %q", otp)
		}
	}
}

func TestOTPMatches(t *testing.T) {
	if !OTPMatches("123456", "123456") {
		t.Fatal("identical codes should match")
	}
	if OTPMatches("123456", "654321") {
		t.Fatal("different codes must not match")
	}
	// Un code vide en base (jamais demandé ou déjà consommé) ne doit
	// jamais matcher, même contre une soumission vide.
	if OTPMatches("", "") {
		t.Fatal("empty stored code must never match")
	}
	if OTPMatches("123456", "") {
		t.Fatal("empty submission must not match")
	}
}
