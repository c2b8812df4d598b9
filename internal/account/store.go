package account

import (
	"context"
	"sort"
	"time"

	"yeargrid/internal/account/cache"
	"yeargrid/internal/account/repository"
	"yeargrid/internal/model"
	"yeargrid/pkg/log"
)

type implStore struct {
	repo  repository.Repository
	cache *cache.Cache
	l     log.Logger
}

// NewStore creates the merged credential store over a durable repository and
// the session cache.
func NewStore(repo repository.Repository, c *cache.Cache, l log.Logger) Store {
	return &implStore{repo: repo, cache: c, l: l}
}

func (s *implStore) List(ctx context.Context, scope model.Scope) ([]model.LinkedAccount, error) {
	return s.list(ctx, scope, "")
}

func (s *implStore) ListProvider(ctx context.Context, scope model.Scope, provider model.Provider) ([]model.LinkedAccount, error) {
	return s.list(ctx, scope, provider)
}

// list merges durable rows with session entries. Durable ordering is kept;
// session entries replace matching rows in place (fresher tokens) and
// session-only accounts are appended.
func (s *implStore) list(ctx context.Context, scope model.Scope, provider model.Provider) ([]model.LinkedAccount, error) {
	if !scope.Authenticated() {
		return nil, nil
	}

	durable, err := s.repo.ListAccounts(ctx, repository.ListAccountsOptions{
		UserID:   scope.UserID,
		Provider: provider,
	})
	if err != nil {
		s.l.Errorf(ctx, "account.List ListAccounts: %v", err)
		return nil, err
	}

	sessionEntries := s.cache.List(scope.UserID)
	if len(sessionEntries) == 0 {
		return durable, nil
	}

	byKey := make(map[string]model.LinkedAccount, len(sessionEntries))
	for _, acct := range sessionEntries {
		if provider != "" && acct.Provider != provider {
			continue
		}
		byKey[string(acct.Provider)+"/"+acct.AccountID] = acct
	}

	merged := make([]model.LinkedAccount, 0, len(durable)+len(byKey))
	for _, acct := range durable {
		k := string(acct.Provider) + "/" + acct.AccountID
		if fresh, ok := byKey[k]; ok {
			merged = append(merged, fresh)
			delete(byKey, k)
			continue
		}
		merged = append(merged, acct)
	}

	sessionOnly := make([]model.LinkedAccount, 0, len(byKey))
	for _, acct := range byKey {
		sessionOnly = append(sessionOnly, acct)
	}
	sort.Slice(sessionOnly, func(i, j int) bool {
		return sessionOnly[i].AccountID < sessionOnly[j].AccountID
	})
	return append(merged, sessionOnly...), nil
}

func (s *implStore) Upsert(ctx context.Context, scope model.Scope, acct model.LinkedAccount) error {
	if !scope.Authenticated() || !acct.Provider.Valid() || acct.AccountID == "" || acct.AccessToken == "" {
		return ErrInvalidAccount
	}

	// Cache first so the account is usable this session even if the durable
	// write fails below.
	s.cache.Put(scope.UserID, acct)

	if err := s.repo.UpsertAccount(ctx, repository.UpsertAccountOptions{
		UserID:  scope.UserID,
		Account: acct,
	}); err != nil {
		s.l.Errorf(ctx, "account.Upsert UpsertAccount: %v", err)
		return err
	}
	return nil
}

func (s *implStore) SaveRefreshedToken(ctx context.Context, scope model.Scope, provider model.Provider, accountID, accessToken, refreshToken string, expiresAt time.Time) error {
	if !scope.Authenticated() {
		return ErrInvalidAccount
	}

	if _, err := s.repo.UpdateTokens(ctx, repository.UpdateTokensOptions{
		UserID:       scope.UserID,
		Provider:     provider,
		AccountID:    accountID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}); err != nil {
		s.l.Errorf(ctx, "account.SaveRefreshedToken UpdateTokens: %v", err)
		return err
	}

	// Keep the session view consistent with the refreshed tokens.
	for _, acct := range s.cache.List(scope.UserID) {
		if acct.Provider == provider && acct.AccountID == accountID {
			acct.AccessToken = accessToken
			if refreshToken != "" {
				acct.RefreshToken = refreshToken
			}
			acct.AccessTokenExpiresAt = expiresAt
			s.cache.Put(scope.UserID, acct)
			break
		}
	}
	return nil
}

func (s *implStore) Disconnect(ctx context.Context, scope model.Scope, accountID string) (int, error) {
	if !scope.Authenticated() {
		return 0, ErrInvalidAccount
	}

	deleted, err := s.repo.DeleteAccounts(ctx, repository.DeleteAccountsOptions{
		UserID:    scope.UserID,
		AccountID: accountID,
	})
	if err != nil {
		s.l.Errorf(ctx, "account.Disconnect DeleteAccounts: %v", err)
		return 0, err
	}
	s.cache.Remove(scope.UserID, accountID)
	return deleted, nil
}
