package usecase

import (
	"context"
	"sync"
	"time"

	"yeargrid/internal/account"
	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/internal/token"
	"yeargrid/pkg/log"
)

// Fake credential store backed by a slice.
type fakeStore struct {
	mu       sync.Mutex
	accounts []model.LinkedAccount
	saved    []savedToken
	listErr  error
}

type savedToken struct {
	provider     model.Provider
	accountID    string
	accessToken  string
	refreshToken string
}

func (s *fakeStore) List(ctx context.Context, sc model.Scope) ([]model.LinkedAccount, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if !sc.Authenticated() {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LinkedAccount, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *fakeStore) ListProvider(ctx context.Context, sc model.Scope, p model.Provider) ([]model.LinkedAccount, error) {
	all, err := s.List(ctx, sc)
	if err != nil {
		return nil, err
	}
	var out []model.LinkedAccount
	for _, acct := range all {
		if acct.Provider == p {
			out = append(out, acct)
		}
	}
	return out, nil
}

func (s *fakeStore) Upsert(ctx context.Context, sc model.Scope, acct model.LinkedAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, acct)
	return nil
}

func (s *fakeStore) SaveRefreshedToken(ctx context.Context, sc model.Scope, p model.Provider, accountID, accessToken, refreshToken string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, savedToken{provider: p, accountID: accountID, accessToken: accessToken, refreshToken: refreshToken})
	return nil
}

func (s *fakeStore) Disconnect(ctx context.Context, sc model.Scope, accountID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []model.LinkedAccount
	deleted := 0
	for _, acct := range s.accounts {
		if acct.AccountID == accountID {
			deleted++
			continue
		}
		kept = append(kept, acct)
	}
	s.accounts = kept
	return deleted, nil
}

var _ account.Store = &fakeStore{}

// Fake refresher returning a canned token.
type fakeRefresher struct {
	mu    sync.Mutex
	tok   token.Token
	err   error
	calls int
}

func (r *fakeRefresher) Refresh(ctx context.Context, p model.Provider, refreshToken string) (token.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return token.Token{}, r.err
	}
	return r.tok, nil
}

// Fake provider adapter with pluggable per-method behavior.
type fakeAdapter struct {
	provider model.Provider

	listCalendarsFn func(accessToken string) ([]provider.Calendar, error)
	listEventsFn    func(accessToken, calendarID string, year int) ([]provider.Event, error)
	createFn        func(accessToken, calendarID string, draft provider.EventDraft) (provider.Event, error)
	updateFn        func(accessToken, calendarID, eventID string, draft provider.EventDraft) (provider.Event, error)
	deleteFn        func(accessToken, calendarID, eventID string) error
}

func (a *fakeAdapter) Provider() model.Provider {
	return a.provider
}

func (a *fakeAdapter) ListCalendars(ctx context.Context, accessToken string) ([]provider.Calendar, error) {
	return a.listCalendarsFn(accessToken)
}

func (a *fakeAdapter) ListAllDayEvents(ctx context.Context, accessToken, calendarID string, year int) ([]provider.Event, error) {
	return a.listEventsFn(accessToken, calendarID, year)
}

func (a *fakeAdapter) CreateEvent(ctx context.Context, accessToken, calendarID string, draft provider.EventDraft) (provider.Event, error) {
	return a.createFn(accessToken, calendarID, draft)
}

func (a *fakeAdapter) UpdateEvent(ctx context.Context, accessToken, calendarID, eventID string, draft provider.EventDraft) (provider.Event, error) {
	return a.updateFn(accessToken, calendarID, eventID, draft)
}

func (a *fakeAdapter) DeleteEvent(ctx context.Context, accessToken, calendarID, eventID string) error {
	return a.deleteFn(accessToken, calendarID, eventID)
}

var _ provider.Adapter = &fakeAdapter{}

func googleAccount(id, email, accessToken string) model.LinkedAccount {
	return model.LinkedAccount{
		Provider:     model.ProviderGoogle,
		AccountID:    id,
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: "refresh-" + id,
	}
}

func microsoftAccount(id, email, accessToken string) model.LinkedAccount {
	return model.LinkedAccount{
		Provider:     model.ProviderMicrosoft,
		AccountID:    id,
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: "refresh-" + id,
	}
}

func tokenWith(accessToken, refreshToken string) token.Token {
	return token.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func newTestUseCase(store *fakeStore, refresher *fakeRefresher, adapters map[model.Provider]provider.Adapter) calendar.UseCase {
	return New(log.NewNop(), store, refresher, adapters, Config{RateLimitBackoff: time.Millisecond})
}
