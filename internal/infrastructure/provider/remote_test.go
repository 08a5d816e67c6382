package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/chat-backend/pkg/logger"
	pkgprovider "github.com/hugohenrick/chat-backend/pkg/provider"
)

const testSecret = "test-secret"

func signSession(t *testing.T, subject string, expiresIn time.Duration, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func newTestProvider(t *testing.T, baseURL string) *RemoteProvider {
	t.Helper()
	p, err := NewRemoteProvider(Config{
		Secret:  testSecret,
		BaseURL: baseURL,
		APIKey:  "server-key",
		Timeout: time.Second,
	}, logger.NewLogger())
	if err != nil {
		t.Fatalf("NewRemoteProvider failed: %v", err)
	}
	return p
}

func TestVerifySessionBearerToken(t *testing.T) {
	p := newTestProvider(t, "http://unused")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, "ext-1", time.Hour, testSecret))

	principal, err := p.VerifySession(req)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if principal.ID != "ext-1" {
		t.Errorf("expected principal ext-1, got %s", principal.ID)
	}
}

func TestVerifySessionCookie(t *testing.T) {
	p := newTestProvider(t, "http://unused")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signSession(t, "ext-2", time.Hour, testSecret)})

	principal, err := p.VerifySession(req)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if principal.ID != "ext-2" {
		t.Errorf("expected principal ext-2, got %s", principal.ID)
	}
}

func TestVerifySessionRejections(t *testing.T) {
	p := newTestProvider(t, "http://unused")

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing token", func(r *http.Request) {}},
		{"wrong scheme", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic abc")
		}},
		{"expired token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signSession(t, "ext-1", -time.Hour, testSecret))
		}},
		{"wrong secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signSession(t, "ext-1", time.Hour, "other-secret"))
		}},
		{"garbage token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not-a-jwt")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)

			_, err := p.VerifySession(req)
			if !errors.Is(err, pkgprovider.ErrNoSession) {
				t.Errorf("expected ErrNoSession, got %v", err)
			}
		})
	}
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/ext-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer server-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"first_name": "Maria",
			"last_name":  "Silva",
			"image_url":  "https://img/maria",
			"email_addresses": []map[string]string{
				{"email_address": "maria@example.com"},
			},
		})
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	profile, err := p.FetchProfile(context.Background(), "ext-1")
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}
	if profile.GivenName != "Maria" || profile.FamilyName != "Silva" {
		t.Errorf("unexpected name: %q %q", profile.GivenName, profile.FamilyName)
	}
	if profile.Email != "maria@example.com" {
		t.Errorf("unexpected email: %q", profile.Email)
	}
	if profile.Avatar != "https://img/maria" {
		t.Errorf("unexpected avatar: %q", profile.Avatar)
	}
}

func TestFetchProfileUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	_, err := p.FetchProfile(context.Background(), "ext-ghost")
	if !errors.Is(err, pkgprovider.ErrProfileUnavailable) {
		t.Errorf("expected ErrProfileUnavailable, got %v", err)
	}
}
