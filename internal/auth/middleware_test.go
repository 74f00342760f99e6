// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// subjectEcho writes the subject ID, or "anonymous".
func subjectEcho(w http.ResponseWriter, r *http.Request) {
	if s := GetAuthSubject(r.Context()); s != nil {
		_, _ = w.Write([]byte(s.ID))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
}

func serve(h http.HandlerFunc, setup func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func bearer(token string) func(r *http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestAuthenticate(t *testing.T) {
	jm := newTestManager(t)
	m := NewMiddleware(jm, AuthModeJWT)
	token, err := jm.GenerateToken("user-1", "ana", RoleUser)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{"bearer", bearer(token), http.StatusOK, "user-1"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token}) }, http.StatusOK, "user-1"},
		{"missing", nil, http.StatusUnauthorized, "missing token"},
		{"bad scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized, "invalid token"},
		{"tampered", bearer(token + "x"), http.StatusUnauthorized, "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(m.Authenticate(subjectEcho), tt.setup)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthenticate_ErrorEnvelope(t *testing.T) {
	m := NewMiddleware(newTestManager(t), AuthModeJWT)
	rec := serve(m.Authenticate(subjectEcho), nil)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("missing WWW-Authenticate header")
	}

	var body authErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error.Code != CodeUnauthorized {
		t.Errorf("body = %+v", body)
	}
}

func TestOptional(t *testing.T) {
	jm := newTestManager(t)
	m := NewMiddleware(jm, AuthModeJWT)
	token, _ := jm.GenerateToken("user-1", "ana", RoleUser)

	if got := serve(m.Optional(subjectEcho), bearer(token)).Body.String(); got != "user-1" {
		t.Errorf("valid token: got %q", got)
	}
	if got := serve(m.Optional(subjectEcho), nil).Body.String(); got != "anonymous" {
		t.Errorf("no token: got %q", got)
	}
	rec := serve(m.Optional(subjectEcho), bearer("garbage"))
	if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Errorf("invalid token: %d %q", rec.Code, rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	jm := newTestManager(t)
	m := NewMiddleware(jm, AuthModeJWT)
	userToken, _ := jm.GenerateToken("user-1", "ana", RoleUser)
	adminToken, _ := jm.GenerateToken("admin-1", "root", RoleAdmin)

	h := m.RequireRole(RoleAdmin, subjectEcho)

	if rec := serve(h, bearer(userToken)); rec.Code != http.StatusForbidden {
		t.Errorf("user: status %d, want 403", rec.Code)
	}
	if rec := serve(h, bearer(adminToken)); rec.Code != http.StatusOK || rec.Body.String() != "admin-1" {
		t.Errorf("admin: %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(h, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status %d, want 401", rec.Code)
	}

	// Admins satisfy user-only routes.
	if rec := serve(m.RequireRole(RoleUser, subjectEcho), bearer(adminToken)); rec.Code != http.StatusOK {
		t.Errorf("admin on user route: status %d", rec.Code)
	}
}

func TestModeNone(t *testing.T) {
	m := NewMiddleware(nil, AuthModeNone)

	if got := serve(m.Authenticate(subjectEcho), nil).Body.String(); got != "dev" {
		t.Errorf("Authenticate: got %q", got)
	}
	if rec := serve(m.RequireRole(RoleAdmin, subjectEcho), nil); rec.Code != http.StatusOK {
		t.Errorf("RequireRole: status %d", rec.Code)
	}
	if m.Mode() != AuthModeNone {
		t.Errorf("Mode() = %v", m.Mode())
	}
}
