// Package provider defines the adapter boundary between the aggregator and
// the upstream calendar APIs. Adapters translate canonical requests into
// provider-specific HTTP calls and normalize the responses; all
// provider-shape knowledge stays behind this interface.
package provider

import (
	"context"

	"yeargrid/internal/model"
)

// PrimaryCalendarID is the sentinel calendar id addressing an account's
// primary/default calendar on either provider.
const PrimaryCalendarID = "primary"

// Calendar is a provider-native calendar, before composite re-keying.
type Calendar struct {
	ID              string
	Summary         string
	Primary         bool
	BackgroundColor string
	AccessRole      string
}

// Event is a provider-native all-day event, before composite re-keying.
// EndDate is exclusive.
type Event struct {
	ID        string
	Summary   string
	StartDate string
	EndDate   string
}

// EventDraft carries the canonical all-day fields for a write. EndDate is
// exclusive.
type EventDraft struct {
	Summary   string
	StartDate string
	EndDate   string
}

// Adapter is one provider's calendar API. Expected upstream failures come
// back as *CallError; adapters never leak raw provider payloads.
type Adapter interface {
	Provider() model.Provider

	ListCalendars(ctx context.Context, accessToken string) ([]Calendar, error)

	// ListAllDayEvents returns the all-day events whose start date falls in
	// the given year, recurring events expanded.
	ListAllDayEvents(ctx context.Context, accessToken, calendarID string, year int) ([]Event, error)

	CreateEvent(ctx context.Context, accessToken, calendarID string, draft EventDraft) (Event, error)
	UpdateEvent(ctx context.Context, accessToken, calendarID, eventID string, draft EventDraft) (Event, error)
	DeleteEvent(ctx context.Context, accessToken, calendarID, eventID string) error
}
