package calendar

import "yeargrid/internal/model"

// --- UseCase Inputs ---

type ListCalendarsInput struct {
	Debug bool
}

type ListEventsInput struct {
	Year int
	// CalendarIDs is the composite "accountID|calendarID" selection. Empty
	// means each account's primary calendar.
	CalendarIDs []string
}

// CreateEventInput carries the wire-format fields: EndDate is INCLUSIVE here
// and converted to the internal exclusive convention before hitting the
// provider. Empty EndDate means a single-day event.
type CreateEventInput struct {
	Title      string
	CalendarID string // composite "accountID|calendarID"
	StartDate  string
	EndDate    string
}

type UpdateEventInput struct {
	ID         string // composite "accountID|calendarID:eventID"
	Title      string
	CalendarID string // composite target calendar; may differ from ID's
	StartDate  string
	EndDate    string // inclusive, optional
}

type DeleteEventInput struct {
	ID string
}

// --- UseCase Outputs ---

type ListCalendarsOutput struct {
	Calendars []model.Calendar
	Accounts  []model.AccountStatus
	// Debug repeats the per-account status/error pairs when requested.
	Debug []model.AccountStatus
}

type ListEventsOutput struct {
	Events []model.Event
	// Outcomes keeps the per-unit diagnostics; failed units contribute no
	// events but stay visible here.
	Outcomes []model.FetchOutcome
}

type EventOutput struct {
	Event model.Event
}
