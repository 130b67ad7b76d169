package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the Shuul backend signs into its bearer tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var ErrNoExpiry = errors.New("token carries no expiry claim")

// DecodeToken extracts the claims from a bearer token without verifying the
// signature. The console never issues tokens and holds no signing key; the
// backend rejects tampered tokens on every API call, so the console only
// needs the claims to derive role and expiry, exactly like the browser
// client it replaces.
func DecodeToken(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return nil, ErrNoExpiry
	}

	return claims, nil
}

// Expiry returns the instant the token stops being valid.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Remaining returns the time left before expiry, which may be negative.
func (c *Claims) Remaining(now time.Time) time.Duration {
	return c.Expiry().Sub(now)
}

func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}
