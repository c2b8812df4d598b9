package usecase

import (
	"context"
	"sync"

	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/pkg/compositekey"
)

type accountCalendars struct {
	calendars []provider.Calendar
	status    model.AccountStatus
}

// ListCalendars fans out to every linked account concurrently and merges the
// per-account results in account order. A failing account contributes an
// error status instead of failing the whole response.
func (uc *implUseCase) ListCalendars(ctx context.Context, sc model.Scope, input calendar.ListCalendarsInput) (calendar.ListCalendarsOutput, error) {
	accounts, err := uc.store.List(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.ListCalendars.store.List: %v", err)
		return calendar.ListCalendarsOutput{}, err
	}

	output := calendar.ListCalendarsOutput{
		Calendars: []model.Calendar{},
		Accounts:  []model.AccountStatus{},
	}
	if len(accounts) == 0 {
		return output, nil
	}

	results := make([]accountCalendars, len(accounts))
	var wg sync.WaitGroup
	for i := range accounts {
		wg.Add(1)
		go func(i int, acct model.LinkedAccount) {
			defer wg.Done()
			results[i] = uc.fetchAccountCalendars(ctx, sc, acct)
		}(i, accounts[i])
	}
	wg.Wait()

	for i, res := range results {
		acct := accounts[i]
		for _, cal := range res.calendars {
			output.Calendars = append(output.Calendars, model.Calendar{
				ID:              compositekey.EncodeCalendar(acct.AccountID, cal.ID),
				OriginalID:      cal.ID,
				AccountID:       acct.AccountID,
				AccountEmail:    acct.Email,
				Summary:         cal.Summary,
				Primary:         cal.Primary,
				BackgroundColor: cal.BackgroundColor,
				AccessRole:      cal.AccessRole,
			})
		}
		output.Accounts = append(output.Accounts, res.status)
		if input.Debug {
			output.Debug = append(output.Debug, res.status)
		}
	}

	return output, nil
}

func (uc *implUseCase) fetchAccountCalendars(ctx context.Context, sc model.Scope, acct model.LinkedAccount) accountCalendars {
	status := model.AccountStatus{
		AccountID: acct.AccountID,
		Email:     acct.Email,
	}

	if acct.AccessToken == "" && acct.RefreshToken == "" {
		status.Error = "missing access token"
		return accountCalendars{status: status}
	}

	adapter, ok := uc.adapters[acct.Provider]
	if !ok {
		status.Error = "unknown provider: " + string(acct.Provider)
		return accountCalendars{status: status}
	}

	var calendars []provider.Calendar
	err := uc.withRefreshRetry(ctx, sc, &acct, func(accessToken string) error {
		var ferr error
		calendars, ferr = adapter.ListCalendars(ctx, accessToken)
		return ferr
	})
	if err != nil {
		uc.l.Warnf(ctx, "calendar.usecase.fetchAccountCalendars (%s/%s): %v", acct.Provider, acct.AccountID, err)
		status.Status = provider.StatusOf(err)
		status.Error = provider.MessageOf(err)
		return accountCalendars{status: status}
	}

	status.Status = 200
	return accountCalendars{calendars: calendars, status: status}
}
