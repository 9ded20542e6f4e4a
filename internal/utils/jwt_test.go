package utils

import (
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret-for-tests")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret-for-tests")

	token, err := GenerateAccessToken("64f000000000000000000001", "user@test.com", "USER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseToken(token, "access-secret-for-tests")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims["user_id"] != "64f000000000000000000001" {
		t.Fatalf("user_id claim: %v", claims["user_id"])
	}
	if claims["email"] != "user@test.com" {
		t.Fatalf("email claim: %v", claims["email"])
	}
	if claims["role"] != "USER" {
		t.Fatalf("role claim: %v", claims["role"])
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret-for-tests")

	token, err := GenerateAccessToken("64f000000000000000000001", "user@test.com", "USER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ParseToken(token, "another-secret"); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestRefreshTokenUsesRefreshSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access-secret-for-tests")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret-for-tests")

	token, err := GenerateRefreshToken("64f000000000000000000001")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := ParseToken(token, "access-secret-for-tests"); err == nil {
		t.Fatal("refresh token must not validate against the access secret")
	}
	claims, err := ParseToken(token, "refresh-secret-for-tests")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims["user_id"] != "64f000000000000000000001" {
		t.Fatalf("user_id claim: %v", claims["user_id"])
	}
}
