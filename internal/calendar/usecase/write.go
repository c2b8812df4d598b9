package usecase

import (
	"context"
	"errors"

	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/pkg/compositekey"
	"yeargrid/pkg/dateutil"
)

// CreateEvent writes a single all-day event to the target calendar. The
// inclusive wire dates are converted to the exclusive internal convention
// before the provider call.
func (uc *implUseCase) CreateEvent(ctx context.Context, sc model.Scope, input calendar.CreateEventInput) (calendar.EventOutput, error) {
	accountID, calendarID, err := compositekey.DecodeCalendar(input.CalendarID)
	if err != nil {
		return calendar.EventOutput{}, calendar.NewValidationError("invalid calendar ID: %s", input.CalendarID)
	}

	acct, err := uc.resolveAccount(ctx, sc, accountID)
	if err != nil {
		return calendar.EventOutput{}, err
	}

	draft, err := buildDraft(input.Title, input.StartDate, input.EndDate)
	if err != nil {
		return calendar.EventOutput{}, err
	}

	created, err := uc.writeEvent(ctx, sc, &acct, func(adapter provider.Adapter, accessToken string) (provider.Event, error) {
		return adapter.CreateEvent(ctx, accessToken, calendarID, draft)
	})
	if err != nil {
		uc.l.Warnf(ctx, "calendar.usecase.CreateEvent (%s/%s): %v", acct.Provider, calendarID, err)
		return calendar.EventOutput{}, err
	}

	return calendar.EventOutput{Event: toModelEvent(acct.AccountID, calendarID, created)}, nil
}

// UpdateEvent edits an event in place, or moves it when the target calendar
// differs from the source. A move is delete-then-create; if the create fails
// the event is already gone from the source and the error says so.
func (uc *implUseCase) UpdateEvent(ctx context.Context, sc model.Scope, input calendar.UpdateEventInput) (calendar.EventOutput, error) {
	key, err := compositekey.Decode(input.ID)
	if err != nil {
		return calendar.EventOutput{}, calendar.NewValidationError("invalid event ID: %s", input.ID)
	}
	targetAccountID, targetCalendarID, err := compositekey.DecodeCalendar(input.CalendarID)
	if err != nil {
		return calendar.EventOutput{}, calendar.NewValidationError("invalid calendar ID: %s", input.CalendarID)
	}

	srcAcct, err := uc.resolveAccount(ctx, sc, key.AccountID)
	if err != nil {
		return calendar.EventOutput{}, err
	}

	draft, err := buildDraft(input.Title, input.StartDate, input.EndDate)
	if err != nil {
		return calendar.EventOutput{}, err
	}

	moving := targetAccountID != key.AccountID || targetCalendarID != key.CalendarID
	if !moving {
		updated, err := uc.writeEvent(ctx, sc, &srcAcct, func(adapter provider.Adapter, accessToken string) (provider.Event, error) {
			return adapter.UpdateEvent(ctx, accessToken, key.CalendarID, key.EventID, draft)
		})
		if err != nil {
			uc.l.Warnf(ctx, "calendar.usecase.UpdateEvent (%s/%s): %v", srcAcct.Provider, key.CalendarID, err)
			return calendar.EventOutput{}, err
		}
		return calendar.EventOutput{Event: toModelEvent(srcAcct.AccountID, key.CalendarID, updated)}, nil
	}

	dstAcct, err := uc.resolveAccount(ctx, sc, targetAccountID)
	if err != nil {
		if errors.Is(err, calendar.ErrAccountNotFound) {
			return calendar.EventOutput{}, calendar.ErrNewAccountNotFound
		}
		return calendar.EventOutput{}, err
	}

	if _, err := uc.writeEvent(ctx, sc, &srcAcct, func(adapter provider.Adapter, accessToken string) (provider.Event, error) {
		return provider.Event{}, adapter.DeleteEvent(ctx, accessToken, key.CalendarID, key.EventID)
	}); err != nil {
		uc.l.Warnf(ctx, "calendar.usecase.UpdateEvent.delete (%s/%s): %v", srcAcct.Provider, key.CalendarID, err)
		return calendar.EventOutput{}, err
	}

	created, err := uc.writeEvent(ctx, sc, &dstAcct, func(adapter provider.Adapter, accessToken string) (provider.Event, error) {
		return adapter.CreateEvent(ctx, accessToken, targetCalendarID, draft)
	})
	if err != nil {
		uc.l.Errorf(ctx, "calendar.usecase.UpdateEvent.create after delete (%s/%s): %v", dstAcct.Provider, targetCalendarID, err)
		var ue *calendar.UpstreamError
		if errors.As(err, &ue) {
			ue.SourceDeleted = true
			ue.Message = "failed to create event in new calendar, original event was removed: " + ue.Message
			return calendar.EventOutput{}, ue
		}
		return calendar.EventOutput{}, err
	}

	return calendar.EventOutput{Event: toModelEvent(dstAcct.AccountID, targetCalendarID, created)}, nil
}

func (uc *implUseCase) DeleteEvent(ctx context.Context, sc model.Scope, input calendar.DeleteEventInput) error {
	key, err := compositekey.Decode(input.ID)
	if err != nil {
		return calendar.NewValidationError("invalid event ID: %s", input.ID)
	}

	acct, err := uc.resolveAccount(ctx, sc, key.AccountID)
	if err != nil {
		return err
	}

	if _, err := uc.writeEvent(ctx, sc, &acct, func(adapter provider.Adapter, accessToken string) (provider.Event, error) {
		return provider.Event{}, adapter.DeleteEvent(ctx, accessToken, key.CalendarID, key.EventID)
	}); err != nil {
		uc.l.Warnf(ctx, "calendar.usecase.DeleteEvent (%s/%s): %v", acct.Provider, key.CalendarID, err)
		return err
	}
	return nil
}

// writeEvent routes one write through the provider adapter with the shared
// refresh-retry behavior, translating provider failures into domain errors.
func (uc *implUseCase) writeEvent(ctx context.Context, sc model.Scope, acct *model.LinkedAccount, op func(adapter provider.Adapter, accessToken string) (provider.Event, error)) (provider.Event, error) {
	adapter, ok := uc.adapters[acct.Provider]
	if !ok {
		return provider.Event{}, calendar.NewValidationError("unknown provider: %s", acct.Provider)
	}

	var result provider.Event
	err := uc.withRefreshRetry(ctx, sc, acct, func(accessToken string) error {
		var oerr error
		result, oerr = op(adapter, accessToken)
		return oerr
	})
	if err != nil {
		if errors.Is(err, provider.ErrWriteNotSupported) {
			return provider.Event{}, err
		}
		return provider.Event{}, &calendar.UpstreamError{
			Status:  provider.StatusOf(err),
			Message: provider.MessageOf(err),
		}
	}
	return result, nil
}

// buildDraft validates the wire dates and converts the inclusive end to the
// exclusive internal form. An empty end means a single-day event.
func buildDraft(title, startDate, endDate string) (provider.EventDraft, error) {
	if !dateutil.IsDateOnly(startDate) {
		return provider.EventDraft{}, calendar.NewValidationError("invalid start date: %s", startDate)
	}
	if endDate == "" {
		endDate = startDate
	}
	if !dateutil.IsDateOnly(endDate) {
		return provider.EventDraft{}, calendar.NewValidationError("invalid end date: %s", endDate)
	}
	if endDate < startDate {
		return provider.EventDraft{}, calendar.NewValidationError("end date %s is before start date %s", endDate, startDate)
	}
	return provider.EventDraft{
		Summary:   title,
		StartDate: startDate,
		EndDate:   dateutil.InclusiveToExclusive(endDate),
	}, nil
}

func toModelEvent(accountID, calendarID string, ev provider.Event) model.Event {
	return model.Event{
		ID:         compositekey.Encode(accountID, calendarID, ev.ID),
		CalendarID: compositekey.EncodeCalendar(accountID, calendarID),
		Summary:    ev.Summary,
		StartDate:  ev.StartDate,
		EndDate:    ev.EndDate,
	}
}
