package http

import (
	"time"

	"yeargrid/internal/model"
	pkgErrors "yeargrid/pkg/errors"
)

// --- Request DTOs ---

// upsertReq is the identity-layer callback payload persisted after a
// provider sign-in.
type upsertReq struct {
	Provider     string `json:"provider"     binding:"required"`
	AccountID    string `json:"accountId"    binding:"required"`
	Email        string `json:"email"        binding:"required"`
	AccessToken  string `json:"accessToken"  binding:"required"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

func (r upsertReq) validate() error {
	if !model.Provider(r.Provider).Valid() {
		return pkgErrors.NewHTTPErrorf(400, "unknown provider: %s", r.Provider)
	}
	return nil
}

func (r upsertReq) toAccount(now time.Time) model.LinkedAccount {
	acct := model.LinkedAccount{
		Provider:     model.Provider(r.Provider),
		AccountID:    r.AccountID,
		Email:        r.Email,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
	if r.ExpiresIn > 0 {
		acct.AccessTokenExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return acct
}

// ---

type disconnectReq struct {
	AccountID string `json:"accountId" binding:"required"`
}
