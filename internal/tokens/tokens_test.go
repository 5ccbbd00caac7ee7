package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerateServiceToken_ValidAndClaims(t *testing.T) {
	tokenStr, err := GenerateServiceToken(testSecret, "standupctl", 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken error: %v", err)
	}

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if !parsed.Valid {
		t.Fatalf("token should be valid")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type assertion failed")
	}
	if claims["sub"] != "standupctl" {
		t.Fatalf("unexpected sub claim: got=%v want=standupctl", claims["sub"])
	}
}

func TestGenerateServiceToken_Expiry(t *testing.T) {
	tokenStr, err := GenerateServiceToken(testSecret, "svc", -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken error: %v", err)
	}
	_, err = jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	if err == nil {
		t.Fatalf("expected token parse to fail after expiry")
	}
}

func TestGenerateServiceToken_WrongSecretFails(t *testing.T) {
	tokenStr, err := GenerateServiceToken(testSecret, "svc", 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken error: %v", err)
	}
	_, err = jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) { return []byte("different-secret-xxxxxxxxxxxxxxxx"), nil })
	if err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

// Tampering with payload must fail signature verification
func TestGenerateServiceToken_TamperedPayload(t *testing.T) {
	tokenStr, err := GenerateServiceToken(testSecret, "svc-a", 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateServiceToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payloadBytes), "svc-a", "attacker", 1)))
	tampered := strings.Join(parts, ".")
	_, err = jwt.Parse(tampered, func(token *jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	if err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
