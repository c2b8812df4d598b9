package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"yeargrid/internal/account/cache"
	"yeargrid/internal/account/repository"
	"yeargrid/internal/model"
	"yeargrid/pkg/log"
)

type fakeRepository struct {
	accounts map[string][]model.LinkedAccount // by userID
	updates  []repository.UpdateTokensOptions
	listErr  error
}

func (r *fakeRepository) ListAccounts(ctx context.Context, opt repository.ListAccountsOptions) ([]model.LinkedAccount, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.LinkedAccount
	for _, acct := range r.accounts[opt.UserID] {
		if opt.Provider != "" && acct.Provider != opt.Provider {
			continue
		}
		out = append(out, acct)
	}
	return out, nil
}

func (r *fakeRepository) UpsertAccount(ctx context.Context, opt repository.UpsertAccountOptions) error {
	if r.accounts == nil {
		r.accounts = make(map[string][]model.LinkedAccount)
	}
	for i, acct := range r.accounts[opt.UserID] {
		if acct.Provider == opt.Account.Provider && acct.AccountID == opt.Account.AccountID {
			r.accounts[opt.UserID][i] = opt.Account
			return nil
		}
	}
	r.accounts[opt.UserID] = append(r.accounts[opt.UserID], opt.Account)
	return nil
}

func (r *fakeRepository) UpdateTokens(ctx context.Context, opt repository.UpdateTokensOptions) (int, error) {
	r.updates = append(r.updates, opt)
	return 1, nil
}

func (r *fakeRepository) DeleteAccounts(ctx context.Context, opt repository.DeleteAccountsOptions) (int, error) {
	if r.accounts == nil {
		r.accounts = make(map[string][]model.LinkedAccount)
	}
	var kept []model.LinkedAccount
	deleted := 0
	for _, acct := range r.accounts[opt.UserID] {
		if acct.AccountID == opt.AccountID {
			deleted++
			continue
		}
		kept = append(kept, acct)
	}
	r.accounts[opt.UserID] = kept
	return deleted, nil
}

var _ repository.Repository = &fakeRepository{}

func acct(p model.Provider, id, accessToken string) model.LinkedAccount {
	return model.LinkedAccount{
		Provider:    p,
		AccountID:   id,
		Email:       id + "@example.com",
		AccessToken: accessToken,
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("anonymous scope lists nothing", func(t *testing.T) {
		repo := &fakeRepository{accounts: map[string][]model.LinkedAccount{
			"user-1": {acct(model.ProviderGoogle, "g-1", "tok")},
		}}
		store := NewStore(repo, cache.New(8, time.Minute), log.NewNop())

		accounts, err := store.List(ctx, model.Scope{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 0 {
			t.Errorf("expected no accounts for anonymous scope, got %d", len(accounts))
		}
	})

	t.Run("session entries win over durable rows", func(t *testing.T) {
		repo := &fakeRepository{accounts: map[string][]model.LinkedAccount{
			"user-1": {
				acct(model.ProviderGoogle, "g-1", "stale"),
				acct(model.ProviderMicrosoft, "m-1", "tok-m"),
			},
		}}
		c := cache.New(8, time.Minute)
		c.Put("user-1", acct(model.ProviderGoogle, "g-1", "fresh"))
		store := NewStore(repo, c, log.NewNop())

		accounts, err := store.List(ctx, sc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("expected deduplicated view of 2 accounts, got %d", len(accounts))
		}
		if accounts[0].AccountID != "g-1" || accounts[0].AccessToken != "fresh" {
			t.Errorf("expected session token to win in place, got %+v", accounts[0])
		}
	})

	t.Run("session-only accounts are appended", func(t *testing.T) {
		repo := &fakeRepository{accounts: map[string][]model.LinkedAccount{
			"user-1": {acct(model.ProviderGoogle, "g-1", "tok")},
		}}
		c := cache.New(8, time.Minute)
		c.Put("user-1", acct(model.ProviderMicrosoft, "m-b", "tok-b"))
		c.Put("user-1", acct(model.ProviderMicrosoft, "m-a", "tok-a"))
		store := NewStore(repo, c, log.NewNop())

		accounts, err := store.List(ctx, sc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 3 {
			t.Fatalf("expected 3 accounts, got %d", len(accounts))
		}
		if accounts[0].AccountID != "g-1" {
			t.Errorf("expected durable row first, got %s", accounts[0].AccountID)
		}
		if accounts[1].AccountID != "m-a" || accounts[2].AccountID != "m-b" {
			t.Errorf("expected session-only accounts sorted by id, got %s then %s", accounts[1].AccountID, accounts[2].AccountID)
		}
	})

	t.Run("provider filter applies to both layers", func(t *testing.T) {
		repo := &fakeRepository{accounts: map[string][]model.LinkedAccount{
			"user-1": {acct(model.ProviderGoogle, "g-1", "tok")},
		}}
		c := cache.New(8, time.Minute)
		c.Put("user-1", acct(model.ProviderMicrosoft, "m-1", "tok"))
		store := NewStore(repo, c, log.NewNop())

		accounts, err := store.ListProvider(ctx, sc, model.ProviderGoogle)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(accounts) != 1 || accounts[0].AccountID != "g-1" {
			t.Errorf("expected only the google account, got %+v", accounts)
		}
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		repo := &fakeRepository{listErr: repository.ErrFailedToQuery}
		store := NewStore(repo, cache.New(8, time.Minute), log.NewNop())
		if _, err := store.List(ctx, sc); !errors.Is(err, repository.ErrFailedToQuery) {
			t.Errorf("expected query error, got %v", err)
		}
	})
}

func TestStoreUpsert(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("caches and persists", func(t *testing.T) {
		repo := &fakeRepository{}
		c := cache.New(8, time.Minute)
		store := NewStore(repo, c, log.NewNop())

		if err := store.Upsert(ctx, sc, acct(model.ProviderGoogle, "g-1", "tok")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.accounts["user-1"]) != 1 {
			t.Errorf("expected durable write")
		}
		if len(c.List("user-1")) != 1 {
			t.Errorf("expected session cache write-through")
		}
	})

	t.Run("rejects invalid accounts", func(t *testing.T) {
		store := NewStore(&fakeRepository{}, cache.New(8, time.Minute), log.NewNop())
		invalid := []model.LinkedAccount{
			{Provider: "yahoo", AccountID: "y-1", AccessToken: "tok"},
			{Provider: model.ProviderGoogle, AccessToken: "tok"},
			{Provider: model.ProviderGoogle, AccountID: "g-1"},
		}
		for _, a := range invalid {
			if err := store.Upsert(ctx, sc, a); !errors.Is(err, ErrInvalidAccount) {
				t.Errorf("expected ErrInvalidAccount for %+v, got %v", a, err)
			}
		}
		if err := store.Upsert(ctx, model.Scope{}, acct(model.ProviderGoogle, "g-1", "tok")); !errors.Is(err, ErrInvalidAccount) {
			t.Errorf("expected ErrInvalidAccount for anonymous scope, got %v", err)
		}
	})
}

func TestStoreSaveRefreshedToken(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("updates repository and session view", func(t *testing.T) {
		repo := &fakeRepository{}
		c := cache.New(8, time.Minute)
		old := acct(model.ProviderGoogle, "g-1", "stale")
		old.RefreshToken = "keep-me"
		c.Put("user-1", old)
		store := NewStore(repo, c, log.NewNop())

		expires := time.Now().Add(time.Hour)
		if err := store.SaveRefreshedToken(ctx, sc, model.ProviderGoogle, "g-1", "fresh", "", expires); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.updates) != 1 || repo.updates[0].AccessToken != "fresh" {
			t.Errorf("expected durable token update, got %+v", repo.updates)
		}
		cached := c.List("user-1")
		if len(cached) != 1 || cached[0].AccessToken != "fresh" {
			t.Errorf("expected refreshed session entry, got %+v", cached)
		}
		if cached[0].RefreshToken != "keep-me" {
			t.Errorf("expected empty refresh token to preserve the stored one, got %q", cached[0].RefreshToken)
		}
	})
}

func TestStoreDisconnect(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("removes both layers and reports count", func(t *testing.T) {
		repo := &fakeRepository{accounts: map[string][]model.LinkedAccount{
			"user-1": {acct(model.ProviderGoogle, "g-1", "tok")},
			"user-2": {acct(model.ProviderGoogle, "g-1", "tok")},
		}}
		c := cache.New(8, time.Minute)
		c.Put("user-1", acct(model.ProviderGoogle, "g-1", "tok"))
		store := NewStore(repo, c, log.NewNop())

		deleted, err := store.Disconnect(ctx, sc, "g-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deletion, got %d", deleted)
		}
		if len(c.List("user-1")) != 0 {
			t.Errorf("expected session entry removed")
		}
		if len(repo.accounts["user-2"]) != 1 {
			t.Errorf("expected other users untouched")
		}
	})

	t.Run("zero matches is not an error", func(t *testing.T) {
		store := NewStore(&fakeRepository{}, cache.New(8, time.Minute), log.NewNop())
		deleted, err := store.Disconnect(ctx, sc, "ghost")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 0 {
			t.Errorf("expected 0 deletions, got %d", deleted)
		}
	})
}
