package token

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
	"golang.org/x/sync/singleflight"

	"yeargrid/config"
	"yeargrid/internal/model"
	"yeargrid/pkg/log"
)

type implRefresher struct {
	google    oauth2.Config
	microsoft oauth2.Config
	group     singleflight.Group
	l         log.Logger
}

// NewRefresher builds a Refresher from the provider OAuth client configs.
// Token endpoints default to the real Google / Microsoft (tenant-scoped v2)
// endpoints and can be overridden per provider for tests.
func NewRefresher(googleCfg, microsoftCfg config.OAuthClientConfig, l log.Logger) Refresher {
	googleTokenURL := googleCfg.TokenURL
	if googleTokenURL == "" {
		googleTokenURL = google.Endpoint.TokenURL
	}

	tenant := microsoftCfg.Tenant
	if tenant == "" {
		tenant = "common"
	}
	microsoftTokenURL := microsoftCfg.TokenURL
	if microsoftTokenURL == "" {
		microsoftTokenURL = microsoft.AzureADEndpoint(tenant).TokenURL
	}

	return &implRefresher{
		google: oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: googleTokenURL, AuthStyle: oauth2.AuthStyleInParams},
		},
		microsoft: oauth2.Config{
			ClientID:     microsoftCfg.ClientID,
			ClientSecret: microsoftCfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: microsoftTokenURL, AuthStyle: oauth2.AuthStyleInParams},
		},
		l: l,
	}
}

// Refresh posts grant_type=refresh_token to the provider endpoint.
// Concurrent refreshes of the same token are collapsed into one upstream
// call so racing requests holding the same stale token do not hammer the
// token endpoint.
func (r *implRefresher) Refresh(ctx context.Context, provider model.Provider, refreshToken string) (Token, error) {
	if refreshToken == "" {
		return Token{}, &AuthError{Provider: provider, Reason: "missing refresh token"}
	}

	var cfg *oauth2.Config
	switch provider {
	case model.ProviderGoogle:
		cfg = &r.google
	case model.ProviderMicrosoft:
		cfg = &r.microsoft
	default:
		return Token{}, &AuthError{Provider: provider, Reason: "unknown provider"}
	}

	key := string(provider) + "/" + refreshToken
	result, err, _ := r.group.Do(key, func() (any, error) {
		src := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
		tok, err := src.Token()
		if err != nil {
			var retrieveErr *oauth2.RetrieveError
			if errors.As(err, &retrieveErr) {
				r.l.Warnf(ctx, "token.Refresh %s: endpoint returned %d", provider, retrieveErr.Response.StatusCode)
				return nil, &AuthError{Provider: provider, Reason: retrieveErr.Error()}
			}
			return nil, &AuthError{Provider: provider, Reason: err.Error()}
		}

		refreshed := Token{
			AccessToken: tok.AccessToken,
			ExpiresAt:   tok.Expiry,
		}
		// Only report a rotated refresh token; same-token echoes are noise.
		if tok.RefreshToken != "" && tok.RefreshToken != refreshToken {
			refreshed.RefreshToken = tok.RefreshToken
		}
		if refreshed.ExpiresAt.IsZero() {
			refreshed.ExpiresAt = time.Now().Add(time.Hour)
		}
		return refreshed, nil
	})
	if err != nil {
		return Token{}, err
	}
	return result.(Token), nil
}
