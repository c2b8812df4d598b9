package token

import (
	"context"
	"time"

	"yeargrid/internal/model"
)

// Token is the result of a successful refresh. RefreshToken is empty when
// the provider did not rotate it; callers must keep the one they already
// hold in that case.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Refresher exchanges a refresh token for a fresh access token at the
// provider's OAuth token endpoint.
type Refresher interface {
	Refresh(ctx context.Context, provider model.Provider, refreshToken string) (Token, error)
}
