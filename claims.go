package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the claim set carried by issued bearer tokens. The uid claim
// always holds the user's id; sub and email are set only when the user has
// an email address. jti is freshly generated per issuance so a future
// revocation or refresh scheme can key off it.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserID returns the uid claim, falling back to sub.
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Expires returns the exp claim as a time, zero when absent.
func (c *JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenID returns the jti claim.
func (c *JWTClaims) TokenID() string {
	return c.RegisteredClaims.ID
}
