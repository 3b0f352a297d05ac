package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed JWT bound to one server-side session.
// The sid claim is the session token; the middleware resolves it against the
// session store, so logout invalidates outstanding JWTs immediately.
func GenerateAccessToken(secret, sessionToken, email, name string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sessionToken,
		"email": email,
		"name":  name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// ParseAccessToken verifies the signature and returns the claims.
func ParseAccessToken(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SessionID extracts the sid claim.
func SessionID(claims jwt.MapClaims) string {
	sid, _ := claims["sid"].(string)
	return sid
}
