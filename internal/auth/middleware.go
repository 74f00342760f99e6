// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/receitas/internal/logging"
)

// Error codes written by the middleware. They match the API error envelope.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

// Middleware provides authentication middleware
type Middleware struct {
	jwtManager *JWTManager
	authMode   AuthMode
}

// NewMiddleware creates a new authentication middleware. jwtManager may be
// nil in AuthModeNone.
func NewMiddleware(jwtManager *JWTManager, authMode AuthMode) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		authMode:   authMode,
	}
}

// Mode returns the configured auth mode.
func (m *Middleware) Mode() AuthMode {
	return m.authMode
}

// Authenticate is middleware that enforces authentication
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := m.subject(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Authentication failed")
			writeAuthError(w, r, http.StatusUnauthorized, CodeUnauthorized, unauthorizedMessage(err))
			return
		}
		next(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
	}
}

// Optional attaches the subject when the request carries valid credentials
// and serves the request anonymously otherwise.
func (m *Middleware) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, err := m.subject(r)
		if err != nil {
			if !errors.Is(err, ErrNoCredentials) {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid credentials on optional route")
			}
			next(w, r)
			return
		}
		next(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
	}
}

// RequireRole is middleware that enforces a specific role
func (m *Middleware) RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		subject := GetAuthSubject(r.Context())
		if !subject.HasRole(role) {
			logging.Ctx(r.Context()).Warn().
				Str("subject", subject.ID).
				Str("required_role", role).
				Msg("Forbidden: insufficient permissions")
			writeAuthError(w, r, http.StatusForbidden, CodeForbidden, "Forbidden: insufficient permissions")
			return
		}
		next(w, r)
	})
}

func (m *Middleware) subject(r *http.Request) (*AuthSubject, error) {
	if m.authMode == AuthModeNone {
		return DevSubject(), nil
	}

	token, err := extractJWTToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return AuthSubjectFromClaims(claims), nil
}

// extractJWTToken extracts JWT token from Authorization header or cookie
func extractJWTToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value == "" {
			return "", ErrNoCredentials
		}
		return cookie.Value, nil
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidCredentials
	}
	return strings.TrimSpace(token), nil
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return "Unauthorized: missing token"
	case errors.Is(err, ErrExpiredCredentials):
		return "Unauthorized: token expired"
	default:
		return "Unauthorized: invalid token"
	}
}

type authErrorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var body authErrorBody
	body.Error.Code = code
	body.Error.Message = message
	body.Error.RequestID = logging.RequestIDFromContext(r.Context())

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="receitas"`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write auth error")
	}
}
