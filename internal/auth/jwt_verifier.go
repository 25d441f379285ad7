package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"helpcenter/internal/config"
	"helpcenter/internal/domain"
)

// NewVerifier picks the verifier the configuration asks for. A nil verifier
// means the admin toggle is open, as on a local single-user install.
func NewVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (AdminVerifier, error) {
	switch {
	case cfg.AdminJWKSURL != "":
		return NewJWKSVerifier(ctx, cfg.AdminJWKSURL, logger)
	case cfg.AdminJWTSecret != "":
		return NewHMACVerifier(cfg.AdminJWTSecret, logger)
	default:
		logger.Warn("admin gate disabled: no ADMIN_JWT_SECRET or ADMIN_JWKS_URL configured")
		return nil, nil
	}
}

// JWKSVerifier verifies asymmetric tokens against keys from a JWKS endpoint.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewJWKSVerifier fetches public keys from jwksURL.
// keyfunc caches them and refreshes them in the background until Close.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *slog.Logger) (AdminVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(ctx)
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("admin verifier initialized", "mode", "jwks", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		cancel: cancel,
		logger: logger,
	}, nil
}

func (v *JWKSVerifier) VerifyToken(tokenString string) (*AdminClaims, error) {
	return verify(tokenString, v.jwks.Keyfunc, []string{"RS256", "ES256"}, v.logger)
}

// Close stops the background key refresh.
func (v *JWKSVerifier) Close() error {
	v.cancel()
	v.logger.Info("admin verifier closed")
	return nil
}

// HMACVerifier verifies HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
	logger *slog.Logger
}

func NewHMACVerifier(secret string, logger *slog.Logger) (AdminVerifier, error) {
	if secret == "" {
		return nil, errors.New("HMAC secret cannot be empty")
	}
	logger.Info("admin verifier initialized", "mode", "hmac")
	return &HMACVerifier{secret: []byte(secret), logger: logger}, nil
}

func (v *HMACVerifier) VerifyToken(tokenString string) (*AdminClaims, error) {
	keyFunc := func(*jwt.Token) (interface{}, error) { return v.secret, nil }
	return verify(tokenString, keyFunc, []string{"HS256"}, v.logger)
}

func (v *HMACVerifier) Close() error {
	return nil
}

// verify parses the token, pins the algorithm and requires an admin subject.
func verify(tokenString string, keyFunc jwt.Keyfunc, algs []string, logger *slog.Logger) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, keyFunc,
		jwt.WithValidMethods(algs),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		logger.Debug("admin token rejected", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		logger.Error("failed to extract claims from admin token")
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		logger.Debug("admin token missing subject claim")
		return nil, domain.ErrUnauthorized
	}
	if claims.Role != AdminRole {
		logger.Warn("admin token has wrong role", "role", claims.Role, "subject", claims.Subject)
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// SignAdminToken issues an HS256 admin token, used by cmd/seed to hand out
// tokens for a configured secret.
func SignAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: AdminRole,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}
