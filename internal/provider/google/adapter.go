// Package google adapts the Google Calendar v3 API to the canonical
// provider interface.
package google

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/pkg/dateutil"
	"yeargrid/pkg/log"
)

const (
	maxCalendars = 250
	maxEvents    = 2500

	untitled = "(Untitled)"
)

// Adapter implements provider.Adapter against the Google Calendar API.
type Adapter struct {
	endpoint string
	l        log.Logger
}

// New creates a Google adapter against the real API.
func New(l log.Logger) *Adapter {
	return &Adapter{l: l}
}

// NewWithEndpoint creates an adapter whose API base URL is overridden.
// Tests point this at an httptest server.
func NewWithEndpoint(endpoint string, l log.Logger) *Adapter {
	return &Adapter{endpoint: endpoint, l: l}
}

var _ provider.Adapter = (*Adapter)(nil)

func (a *Adapter) Provider() model.Provider {
	return model.ProviderGoogle
}

// service builds a calendar service bound to one access token. The token is
// per-account and per-call; nothing is cached across requests.
func (a *Adapter) service(ctx context.Context, accessToken string) (*calendar.Service, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})),
	}
	if a.endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.endpoint))
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return svc, nil
}

// mapError turns googleapi errors into tagged CallErrors so the aggregator
// can react to the status without seeing provider shapes.
func (a *Adapter) mapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fmt.Sprintf("google api returned status %d", apiErr.Code)
		}
		return &provider.CallError{Status: apiErr.Code, Message: msg}
	}
	return err
}

func (a *Adapter) ListCalendars(ctx context.Context, accessToken string) ([]provider.Calendar, error) {
	svc, err := a.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	list, err := svc.CalendarList.List().
		MinAccessRole("reader").
		MaxResults(maxCalendars).
		Context(ctx).Do()
	if err != nil {
		return nil, a.mapError(err)
	}

	calendars := make([]provider.Calendar, 0, len(list.Items))
	for _, item := range list.Items {
		summary := item.Summary
		if summary == "" {
			summary = untitled
		}
		calendars = append(calendars, provider.Calendar{
			ID:              item.Id,
			Summary:         summary,
			Primary:         item.Primary,
			BackgroundColor: item.BackgroundColor,
			AccessRole:      item.AccessRole,
		})
	}
	return calendars, nil
}

// ListAllDayEvents queries a single year window with server-side expansion
// of recurring events, then keeps only date-only (all-day) items.
func (a *Adapter) ListAllDayEvents(ctx context.Context, accessToken, calendarID string, year int) ([]provider.Event, error) {
	svc, err := a.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	list, err := svc.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(dateutil.StartOfYearUTC(year).Format("2006-01-02T15:04:05Z")).
		TimeMax(dateutil.EndOfYearUTC(year).Format("2006-01-02T15:04:05Z")).
		MaxResults(maxEvents).
		Context(ctx).Do()
	if err != nil {
		return nil, a.mapError(err)
	}

	events := make([]provider.Event, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Status == "cancelled" {
			continue
		}
		// Timed events carry DateTime instead of Date; only all-day events
		// belong in the grid.
		if item.Start == nil || item.Start.Date == "" || item.End == nil || item.End.Date == "" {
			continue
		}
		summary := item.Summary
		if summary == "" {
			summary = untitled
		}
		events = append(events, provider.Event{
			ID:        item.Id,
			Summary:   summary,
			StartDate: item.Start.Date,
			EndDate:   item.End.Date,
		})
	}
	return events, nil
}

func (a *Adapter) CreateEvent(ctx context.Context, accessToken, calendarID string, draft provider.EventDraft) (provider.Event, error) {
	svc, err := a.service(ctx, accessToken)
	if err != nil {
		return provider.Event{}, err
	}

	created, err := svc.Events.Insert(calendarID, draftToEvent(draft)).Context(ctx).Do()
	if err != nil {
		return provider.Event{}, a.mapError(err)
	}
	return eventFromAPI(created, draft), nil
}

func (a *Adapter) UpdateEvent(ctx context.Context, accessToken, calendarID, eventID string, draft provider.EventDraft) (provider.Event, error) {
	svc, err := a.service(ctx, accessToken)
	if err != nil {
		return provider.Event{}, err
	}

	updated, err := svc.Events.Update(calendarID, eventID, draftToEvent(draft)).Context(ctx).Do()
	if err != nil {
		return provider.Event{}, a.mapError(err)
	}
	return eventFromAPI(updated, draft), nil
}

// DeleteEvent removes an event. Google answers 204 on success; the client
// also accepts 200.
func (a *Adapter) DeleteEvent(ctx context.Context, accessToken, calendarID, eventID string) error {
	svc, err := a.service(ctx, accessToken)
	if err != nil {
		return err
	}

	if err := svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return a.mapError(err)
	}
	return nil
}

func draftToEvent(draft provider.EventDraft) *calendar.Event {
	return &calendar.Event{
		Summary: draft.Summary,
		Start:   &calendar.EventDateTime{Date: draft.StartDate},
		End:     &calendar.EventDateTime{Date: draft.EndDate},
	}
}

func eventFromAPI(item *calendar.Event, draft provider.EventDraft) provider.Event {
	ev := provider.Event{
		ID:        item.Id,
		Summary:   item.Summary,
		StartDate: draft.StartDate,
		EndDate:   draft.EndDate,
	}
	if ev.Summary == "" {
		ev.Summary = draft.Summary
	}
	if item.Start != nil && item.Start.Date != "" {
		ev.StartDate = item.Start.Date
	}
	if item.End != nil && item.End.Date != "" {
		ev.EndDate = item.End.Date
	}
	return ev
}
