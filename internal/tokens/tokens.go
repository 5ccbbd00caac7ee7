package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateServiceToken creates a signed HS256 JWT for API clients (the CLI,
// cron jobs, chat integrations). Subject names the caller for rate limiting
// and audit logs.
func GenerateServiceToken(secret, subject string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}
