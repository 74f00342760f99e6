// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package auth

import (
	"context"
	"errors"
	"slices"
	"time"
)

// AuthMode represents the authentication strategy.
type AuthMode string

const (
	// AuthModeNone injects a development identity
	AuthModeNone AuthMode = "none"

	// AuthModeJWT uses JWT Bearer tokens
	AuthModeJWT AuthMode = "jwt"
)

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ParseAuthMode converts a string to AuthMode.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "none":
		return AuthModeNone, nil
	case "jwt", "":
		return AuthModeJWT, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

// String returns the string representation of AuthMode.
func (m AuthMode) String() string {
	return string(m)
}

// Standard authentication errors
var (
	// ErrNoCredentials indicates no credentials were provided.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials indicates credentials have expired.
	ErrExpiredCredentials = errors.New("credentials expired")
)

// AuthSubject is the authenticated caller.
type AuthSubject struct {
	// ID keys ratings, comments, favorites and submissions.
	ID string `json:"id"`

	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`

	AuthMethod AuthMode `json:"auth_method"`
	IssuedAt   int64    `json:"issued_at,omitempty"`
	ExpiresAt  int64    `json:"expires_at,omitempty"`
}

// HasRole checks if the subject has a specific role. Admins hold every role.
func (s *AuthSubject) HasRole(role string) bool {
	if s == nil || role == "" {
		return false
	}
	return slices.Contains(s.Roles, role) || slices.Contains(s.Roles, RoleAdmin)
}

// IsAdmin reports whether the subject may moderate.
func (s *AuthSubject) IsAdmin() bool {
	return s != nil && slices.Contains(s.Roles, RoleAdmin)
}

// IsExpired checks if the authentication has expired.
func (s *AuthSubject) IsExpired() bool {
	if s.ExpiresAt == 0 {
		return false // No expiry set
	}
	return time.Now().Unix() > s.ExpiresAt
}

// DevSubject is the identity injected in AuthModeNone.
func DevSubject() *AuthSubject {
	return &AuthSubject{
		ID:         "dev",
		Username:   "dev",
		Roles:      []string{RoleUser, RoleAdmin},
		AuthMethod: AuthModeNone,
	}
}

// AuthSubjectFromClaims builds the subject for verified claims. The "sub"
// claim wins over the username; a missing role means RoleUser.
func AuthSubjectFromClaims(claims *Claims) *AuthSubject {
	if claims == nil {
		return nil
	}

	subject := &AuthSubject{
		ID:         claims.Subject,
		Username:   claims.Username,
		AuthMethod: AuthModeJWT,
		Roles:      []string{RoleUser},
	}
	if subject.ID == "" {
		subject.ID = claims.Username
	}
	if subject.Username == "" {
		subject.Username = subject.ID
	}
	if claims.Role != "" {
		subject.Roles = []string{claims.Role}
	}

	if claims.ExpiresAt != nil {
		subject.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		subject.IssuedAt = claims.IssuedAt.Unix()
	}
	return subject
}

type contextKey string

// AuthSubjectContextKey is the context key for AuthSubject.
const AuthSubjectContextKey contextKey = "auth_subject"

// ContextWithSubject attaches s to ctx.
func ContextWithSubject(ctx context.Context, s *AuthSubject) context.Context {
	return context.WithValue(ctx, AuthSubjectContextKey, s)
}

// GetAuthSubject retrieves the AuthSubject from the request context.
func GetAuthSubject(ctx context.Context) *AuthSubject {
	subject, ok := ctx.Value(AuthSubjectContextKey).(*AuthSubject)
	if !ok {
		return nil
	}
	return subject
}
