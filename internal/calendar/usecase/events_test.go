package usecase

import (
	"context"
	"sync/atomic"
	"testing"

	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
)

func TestListEvents(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "user-1"}

	t.Run("defaults to primary calendars", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			googleAccount("g-1", "g@example.com", "tok-g"),
			microsoftAccount("m-1", "m@example.com", "tok-m"),
		}}
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderGoogle: &fakeAdapter{
				provider: model.ProviderGoogle,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					if calendarID != provider.PrimaryCalendarID {
						t.Errorf("expected primary calendar, got %s", calendarID)
					}
					if year != 2025 {
						t.Errorf("expected year 2025, got %d", year)
					}
					return []provider.Event{{ID: "ev-1", Summary: "Trip", StartDate: "2025-03-01", EndDate: "2025-03-04"}}, nil
				},
			},
			model.ProviderMicrosoft: &fakeAdapter{
				provider: model.ProviderMicrosoft,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					return []provider.Event{{ID: "AAMkEv", Summary: "Holiday", StartDate: "2025-12-24", EndDate: "2025-12-27"}}, nil
				},
			},
		}

		out, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, calendar.ListEventsInput{Year: 2025})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(out.Events))
		}
		if out.Events[0].ID != "g-1|primary:ev-1" {
			t.Errorf("expected composite event id, got %s", out.Events[0].ID)
		}
		if out.Events[0].CalendarID != "g-1|primary" {
			t.Errorf("expected composite calendar id, got %s", out.Events[0].CalendarID)
		}
		if out.Events[1].ID != "m-1|primary:AAMkEv" {
			t.Errorf("expected composite event id, got %s", out.Events[1].ID)
		}
		if len(out.Outcomes) != 2 {
			t.Fatalf("expected 2 outcomes, got %d", len(out.Outcomes))
		}
	})

	t.Run("explicit selection drops invalid and unknown ids", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			googleAccount("g-1", "g@example.com", "tok"),
		}}
		var fetched []string
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderGoogle: &fakeAdapter{
				provider: model.ProviderGoogle,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					fetched = append(fetched, calendarID)
					return nil, nil
				},
			},
		}

		input := calendar.ListEventsInput{
			Year: 2025,
			CalendarIDs: []string{
				"g-1|cal-a",
				"g-1|cal-b",
				"not-composite",
				"ghost|cal-x",
			},
		}
		out, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fetched) != 2 || fetched[0] != "cal-a" || fetched[1] != "cal-b" {
			t.Errorf("expected fetches for cal-a and cal-b, got %v", fetched)
		}
		if len(out.Outcomes) != 2 {
			t.Errorf("expected 2 outcomes, got %d", len(out.Outcomes))
		}
	})

	t.Run("selection for other accounts yields no units", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			googleAccount("g-1", "g@example.com", "tok"),
		}}
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderGoogle: &fakeAdapter{
				provider: model.ProviderGoogle,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					t.Errorf("unexpected fetch for %s", calendarID)
					return nil, nil
				},
			},
		}
		out, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, calendar.ListEventsInput{
			Year:        2025,
			CalendarIDs: []string{"other|cal"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Events) != 0 || len(out.Outcomes) != 0 {
			t.Errorf("expected empty result, got %d events %d outcomes", len(out.Events), len(out.Outcomes))
		}
	})

	t.Run("failed unit keeps other events", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			googleAccount("g-bad", "bad@example.com", "tok-bad"),
			googleAccount("g-ok", "ok@example.com", "tok-ok"),
		}}
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderGoogle: &fakeAdapter{
				provider: model.ProviderGoogle,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					if accessToken == "tok-bad" {
						return nil, &provider.CallError{Status: 404, Message: "Not Found"}
					}
					return []provider.Event{{ID: "ev", Summary: "OK", StartDate: "2025-01-01", EndDate: "2025-01-02"}}, nil
				},
			},
		}

		out, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, calendar.ListEventsInput{Year: 2025})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Events) != 1 {
			t.Fatalf("expected 1 event from the healthy unit, got %d", len(out.Events))
		}
		if !out.Outcomes[0].Failed() || out.Outcomes[0].Status != 404 {
			t.Errorf("expected 404 outcome, got %+v", out.Outcomes[0])
		}
		if out.Outcomes[1].Failed() {
			t.Errorf("expected healthy outcome, got %+v", out.Outcomes[1])
		}
	})

	t.Run("retries throttled microsoft fetches", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			microsoftAccount("m-1", "m@example.com", "tok"),
		}}
		var calls atomic.Int32
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderMicrosoft: &fakeAdapter{
				provider: model.ProviderMicrosoft,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					if calls.Add(1) <= 2 {
						return nil, &provider.CallError{Status: 429, Message: "TooManyRequests"}
					}
					return []provider.Event{{ID: "ev", Summary: "After backoff", StartDate: "2025-06-01", EndDate: "2025-06-02"}}, nil
				},
			},
		}

		out, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, calendar.ListEventsInput{Year: 2025})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Events) != 1 {
			t.Fatalf("expected recovery after throttling, got %+v", out.Outcomes)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("expected 3 upstream calls, got %d", got)
		}
	})

	t.Run("gives up after three throttled retries", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			microsoftAccount("m-1", "m@example.com", "tok"),
		}}
		var calls atomic.Int32
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderMicrosoft: &fakeAdapter{
				provider: model.ProviderMicrosoft,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					calls.Add(1)
					return nil, &provider.CallError{Status: 429, Message: "TooManyRequests"}
				},
			},
		}

		out, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, calendar.ListEventsInput{Year: 2025})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := calls.Load(); got != 4 {
			t.Errorf("expected initial call plus 3 retries, got %d", got)
		}
		if out.Outcomes[0].Status != 429 {
			t.Errorf("expected 429 outcome, got %+v", out.Outcomes[0])
		}
	})

	t.Run("google throttling is not retried", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			googleAccount("g-1", "g@example.com", "tok"),
		}}
		var calls atomic.Int32
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderGoogle: &fakeAdapter{
				provider: model.ProviderGoogle,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					calls.Add(1)
					return nil, &provider.CallError{Status: 429, Message: "rateLimitExceeded"}
				},
			},
		}

		if _, err := newTestUseCase(store, &fakeRefresher{}, adapters).ListEvents(ctx, sc, calendar.ListEventsInput{Year: 2025}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("expected a single call, got %d", got)
		}
	})

	t.Run("refreshed token carries over to later units", func(t *testing.T) {
		store := &fakeStore{accounts: []model.LinkedAccount{
			googleAccount("g-1", "g@example.com", "stale"),
		}}
		refresher := &fakeRefresher{tok: tokenWith("fresh", "")}
		var tokensSeen []string
		adapters := map[model.Provider]provider.Adapter{
			model.ProviderGoogle: &fakeAdapter{
				provider: model.ProviderGoogle,
				listEventsFn: func(accessToken, calendarID string, year int) ([]provider.Event, error) {
					tokensSeen = append(tokensSeen, accessToken)
					if accessToken == "stale" {
						return nil, &provider.CallError{Status: 401, Message: "Invalid Credentials"}
					}
					return nil, nil
				},
			},
		}

		input := calendar.ListEventsInput{
			Year:        2025,
			CalendarIDs: []string{"g-1|cal-a", "g-1|cal-b"},
		}
		if _, err := newTestUseCase(store, refresher, adapters).ListEvents(ctx, sc, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"stale", "fresh", "fresh"}
		if len(tokensSeen) != len(want) {
			t.Fatalf("expected calls %v, got %v", want, tokensSeen)
		}
		for i := range want {
			if tokensSeen[i] != want[i] {
				t.Errorf("call %d: expected token %s, got %s", i, want[i], tokensSeen[i])
			}
		}
		if refresher.calls != 1 {
			t.Errorf("expected one refresh shared across units, got %d", refresher.calls)
		}
	})
}
