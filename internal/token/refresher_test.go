package token_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"yeargrid/config"
	"yeargrid/internal/model"
	"yeargrid/internal/token"
	"yeargrid/pkg/log"
)

func newRefresher(t *testing.T, handler http.HandlerFunc) token.Refresher {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := config.OAuthClientConfig{ClientID: "id", ClientSecret: "secret", TokenURL: ts.URL + "/token"}
	return token.NewRefresher(cfg, cfg, log.NewNop())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
			if err := req.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if got := req.Form.Get("grant_type"); got != "refresh_token" {
				t.Errorf("grant_type = %q", got)
			}
			if got := req.Form.Get("refresh_token"); got != "rt-1" {
				t.Errorf("refresh_token = %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "at-new",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		})

		tok, err := r.Refresh(ctx, model.ProviderGoogle, "rt-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.AccessToken != "at-new" {
			t.Errorf("access token = %q", tok.AccessToken)
		}
		// Provider did not rotate the refresh token: result must not echo it.
		if tok.RefreshToken != "" {
			t.Errorf("refresh token = %q, want empty", tok.RefreshToken)
		}
		if tok.ExpiresAt.IsZero() {
			t.Errorf("expected non-zero expiry")
		}
	})

	t.Run("Rotated Refresh Token", func(t *testing.T) {
		r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "at-new",
				"refresh_token": "rt-2",
				"token_type":    "Bearer",
				"expires_in":    3600,
			})
		})

		tok, err := r.Refresh(ctx, model.ProviderMicrosoft, "rt-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.RefreshToken != "rt-2" {
			t.Errorf("refresh token = %q, want rt-2", tok.RefreshToken)
		}
	})

	t.Run("Endpoint Rejects", func(t *testing.T) {
		r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
		})

		_, err := r.Refresh(ctx, model.ProviderGoogle, "rt-revoked")
		var authErr *token.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Provider != model.ProviderGoogle {
			t.Errorf("provider = %q", authErr.Provider)
		}
	})

	t.Run("Missing Refresh Token", func(t *testing.T) {
		r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
			t.Error("endpoint must not be called")
		})

		_, err := r.Refresh(ctx, model.ProviderGoogle, "")
		var authErr *token.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})

	t.Run("Unknown Provider", func(t *testing.T) {
		r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
			t.Error("endpoint must not be called")
		})

		var authErr *token.AuthError
		if _, err := r.Refresh(ctx, model.Provider("caldav"), "rt"); !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
	})
}

func TestRefreshSingleflight(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})

	r := newRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-shared",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	ctx := context.Background()
	const concurrent = 5
	done := make(chan error, concurrent)
	for i := 0; i < concurrent; i++ {
		go func() {
			_, err := r.Refresh(ctx, model.ProviderGoogle, "rt-shared")
			done <- err
		}()
	}

	// Give the goroutines time to pile onto the in-flight call, then let the
	// single upstream request complete.
	for calls.Load() == 0 {
	}
	close(release)

	for i := 0; i < concurrent; i++ {
		if err := <-done; err != nil {
			t.Fatalf("refresh %d failed: %v", i, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("token endpoint called %d times, want 1", got)
	}
}
