package auth

import "github.com/golang-jwt/jwt/v5"

// AdminRole is the role claim that unlocks admin mode.
const AdminRole = "admin"

// AdminClaims are the claims carried by an admin token.
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AdminVerifier checks the token presented when switching to admin mode.
// This abstraction lets the gate use a shared secret or a JWKS endpoint
// without the handlers knowing which.
type AdminVerifier interface {
	// VerifyToken validates a token string and returns its claims.
	// Any failure is domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*AdminClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
