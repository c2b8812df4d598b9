package usecase

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/pkg/compositekey"
)

const msRateLimitRetries = 3

type fetchUnit struct {
	acct       *model.LinkedAccount
	calendarID string
}

// ListEvents fetches all-day events for the requested year, one
// (account, calendar) unit at a time with a fixed inter-request delay.
// Without an explicit calendar selection each account contributes its
// primary calendar.
func (uc *implUseCase) ListEvents(ctx context.Context, sc model.Scope, input calendar.ListEventsInput) (calendar.ListEventsOutput, error) {
	accounts, err := uc.store.List(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.ListEvents.store.List: %v", err)
		return calendar.ListEventsOutput{}, err
	}

	output := calendar.ListEventsOutput{Events: []model.Event{}}
	if len(accounts) == 0 {
		return output, nil
	}

	units := buildFetchUnits(accounts, input.CalendarIDs)
	limiter := rate.NewLimiter(rate.Every(uc.cfg.FetchDelay), 1)

	for _, unit := range units {
		if err := limiter.Wait(ctx); err != nil {
			return output, err
		}
		outcome := uc.fetchUnitEvents(ctx, sc, unit, input.Year)
		output.Events = append(output.Events, outcome.Events...)
		output.Outcomes = append(output.Outcomes, outcome)
	}

	return output, nil
}

// buildFetchUnits maps the composite calendar selection onto the linked
// accounts. Selections that decode to an unknown account are dropped.
func buildFetchUnits(accounts []model.LinkedAccount, calendarIDs []string) []fetchUnit {
	byAccount := make(map[string][]string)
	for _, id := range calendarIDs {
		accountID, calendarID, err := compositekey.DecodeCalendar(id)
		if err != nil {
			continue
		}
		byAccount[accountID] = append(byAccount[accountID], calendarID)
	}

	var units []fetchUnit
	for i := range accounts {
		acct := &accounts[i]
		if len(byAccount) == 0 {
			units = append(units, fetchUnit{acct: acct, calendarID: provider.PrimaryCalendarID})
			continue
		}
		for _, calID := range byAccount[acct.AccountID] {
			units = append(units, fetchUnit{acct: acct, calendarID: calID})
		}
	}
	return units
}

func (uc *implUseCase) fetchUnitEvents(ctx context.Context, sc model.Scope, unit fetchUnit, year int) model.FetchOutcome {
	acct := unit.acct
	outcome := model.FetchOutcome{
		AccountID:  acct.AccountID,
		Email:      acct.Email,
		CalendarID: unit.calendarID,
	}

	if acct.AccessToken == "" && acct.RefreshToken == "" {
		outcome.Error = "missing access token"
		return outcome
	}

	adapter, ok := uc.adapters[acct.Provider]
	if !ok {
		outcome.Error = "unknown provider: " + string(acct.Provider)
		return outcome
	}

	var events []provider.Event
	fetch := func(accessToken string) error {
		var ferr error
		events, ferr = adapter.ListAllDayEvents(ctx, accessToken, unit.calendarID, year)
		return ferr
	}

	err := uc.withRefreshRetry(ctx, sc, acct, fetch)
	if acct.Provider == model.ProviderMicrosoft {
		err = uc.retryRateLimited(ctx, acct, err, fetch)
	}
	if err != nil {
		uc.l.Warnf(ctx, "calendar.usecase.fetchUnitEvents (%s/%s/%s): %v", acct.Provider, acct.AccountID, unit.calendarID, err)
		outcome.Status = provider.StatusOf(err)
		outcome.Error = provider.MessageOf(err)
		return outcome
	}

	outcome.Status = 200
	outcome.Events = make([]model.Event, 0, len(events))
	for _, ev := range events {
		outcome.Events = append(outcome.Events, model.Event{
			ID:         compositekey.Encode(acct.AccountID, unit.calendarID, ev.ID),
			CalendarID: compositekey.EncodeCalendar(acct.AccountID, unit.calendarID),
			Summary:    ev.Summary,
			StartDate:  ev.StartDate,
			EndDate:    ev.EndDate,
		})
	}
	return outcome
}

// retryRateLimited retries a throttled fetch up to msRateLimitRetries times
// with exponential backoff (base*2, base*4, base*8).
func (uc *implUseCase) retryRateLimited(ctx context.Context, acct *model.LinkedAccount, err error, fetch func(accessToken string) error) error {
	for attempt := 1; attempt <= msRateLimitRetries && provider.StatusOf(err) == http.StatusTooManyRequests; attempt++ {
		delay := uc.cfg.RateLimitBackoff * (1 << attempt)
		uc.l.Warnf(ctx, "calendar.usecase.retryRateLimited (%s): attempt %d in %s", acct.AccountID, attempt, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		err = fetch(acct.AccessToken)
	}
	return err
}
