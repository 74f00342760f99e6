// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/receitas/internal/config"
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// DefaultTokenTTL is the lifetime of tokens minted by GenerateToken.
const DefaultTokenTTL = 24 * time.Hour

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	secret  []byte
	timeout time.Duration
	leeway  time.Duration
}

// NewJWTManager creates a token manager for the shared HS256 secret.
//
// Returns an error when the secret is shorter than MinSecretLength.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	}

	return &JWTManager{
		secret:  []byte(secret),
		timeout: DefaultTokenTTL,
		leeway:  30 * time.Second,
	}, nil
}

// GenerateToken signs a token for subjectID. Production tokens come from the
// identity service; this is used by tooling and tests.
func (m *JWTManager) GenerateToken(subjectID, username, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken checks signature, algorithm, expiry and not-before, and
// returns the claims.
//
// Expired tokens wrap ErrExpiredCredentials; everything else wraps
// ErrInvalidCredentials.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
	)

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %v", ErrExpiredCredentials, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse token: %v", ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidCredentials)
	}
	if claims.Subject == "" && claims.Username == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidCredentials)
	}

	return claims, nil
}
