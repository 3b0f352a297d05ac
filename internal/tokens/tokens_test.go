package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, "sess-123", "ada@x.test", "Ada Lovelace", 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(testSecret, tokenStr)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if SessionID(claims) != "sess-123" {
		t.Fatalf("unexpected sid claim: got=%v want=%v", claims["sid"], "sess-123")
	}
	if claims["email"] != "ada@x.test" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
}

func TestGenerateAccessToken_Expiry(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, "s", "x@x", "X", 1*time.Second)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	// wait for expiry
	time.Sleep(2 * time.Second)
	if _, err := ParseAccessToken(testSecret, tokenStr); err == nil {
		t.Fatalf("expected token parse to fail after expiry")
	}
}

func TestParseToken_WrongSecretFails(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, "s", "bob@example.com", "Bob", 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := ParseAccessToken("different-secret-xxxxxxxxxxxxxxxx", tokenStr); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	if _, err := ParseAccessToken("x", "not.a.jwt"); err == nil {
		t.Fatalf("expected parse to fail for malformed token")
	}
}

// Rejected when alg=none (unsigned token)
func TestParseToken_AlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sid":"s-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := ParseAccessToken("x", tok); err == nil {
		t.Fatalf("expected parse to reject alg=none token")
	}
}

// Tampering with payload must fail signature verification
func TestParseToken_TamperedPayload(t *testing.T) {
	tokenStr, err := GenerateAccessToken(testSecret, "sess-t", "t@example.com", "Tamper", 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	payloadStr := strings.Replace(string(payloadBytes), "sess-t", "attacker", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	tampered := strings.Join(parts, ".")
	if _, err := ParseAccessToken(testSecret, tampered); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
