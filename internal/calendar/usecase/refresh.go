package usecase

import (
	"context"
	"net/http"

	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
)

// withRefreshRetry runs fn with the account's access token. On a 401 it
// refreshes the token once, persists the result, and retries fn exactly once.
// The account is updated in place so subsequent units reuse the fresh token.
func (uc *implUseCase) withRefreshRetry(ctx context.Context, sc model.Scope, acct *model.LinkedAccount, fn func(accessToken string) error) error {
	err := fn(acct.AccessToken)
	if provider.StatusOf(err) != http.StatusUnauthorized || acct.RefreshToken == "" {
		return err
	}

	refreshed, rerr := uc.refresher.Refresh(ctx, acct.Provider, acct.RefreshToken)
	if rerr != nil {
		uc.l.Warnf(ctx, "calendar.usecase.withRefreshRetry.Refresh (%s/%s): %v", acct.Provider, acct.AccountID, rerr)
		return err
	}

	acct.AccessToken = refreshed.AccessToken
	if refreshed.RefreshToken != "" {
		acct.RefreshToken = refreshed.RefreshToken
	}
	acct.AccessTokenExpiresAt = refreshed.ExpiresAt

	if perr := uc.store.SaveRefreshedToken(ctx, sc, acct.Provider, acct.AccountID, refreshed.AccessToken, refreshed.RefreshToken, refreshed.ExpiresAt); perr != nil {
		uc.l.Errorf(ctx, "calendar.usecase.withRefreshRetry.SaveRefreshedToken (%s/%s): %v", acct.Provider, acct.AccountID, perr)
	}

	return fn(acct.AccessToken)
}

// resolveAccount finds a linked account by ID within the scope's merged view.
func (uc *implUseCase) resolveAccount(ctx context.Context, sc model.Scope, accountID string) (model.LinkedAccount, error) {
	accounts, err := uc.store.List(ctx, sc)
	if err != nil {
		return model.LinkedAccount{}, err
	}
	for _, acct := range accounts {
		if acct.AccountID == accountID {
			return acct, nil
		}
	}
	return model.LinkedAccount{}, calendar.ErrAccountNotFound
}
