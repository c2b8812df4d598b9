package http

import (
	"strings"
	"time"

	"yeargrid/internal/calendar"
	"yeargrid/internal/model"
	"yeargrid/pkg/dateutil"
	pkgErrors "yeargrid/pkg/errors"
)

// --- Request DTOs ---

type listCalendarsReq struct {
	Debug string `form:"debug"`
}

func (r listCalendarsReq) toInput() calendar.ListCalendarsInput {
	return calendar.ListCalendarsInput{
		Debug: r.Debug == "1" || r.Debug == "true",
	}
}

// ---

type listEventsReq struct {
	Year        int    `form:"year"`
	CalendarIDs string `form:"calendarIds"`
}

func (r listEventsReq) toInput() calendar.ListEventsInput {
	year := r.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	var ids []string
	for _, id := range strings.Split(r.CalendarIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return calendar.ListEventsInput{
		Year:        year,
		CalendarIDs: ids,
	}
}

// ---

type createEventReq struct {
	Title      string `json:"title"      binding:"required"`
	CalendarID string `json:"calendarId" binding:"required"`
	StartDate  string `json:"startDate"  binding:"required"`
	EndDate    string `json:"endDate"`
}

func (r createEventReq) validate() error {
	return validateDates(r.StartDate, r.EndDate)
}

func (r createEventReq) toInput() calendar.CreateEventInput {
	return calendar.CreateEventInput{
		Title:      r.Title,
		CalendarID: r.CalendarID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

// ---

type updateEventReq struct {
	ID         string `json:"id"         binding:"required"`
	Title      string `json:"title"      binding:"required"`
	CalendarID string `json:"calendarId" binding:"required"`
	StartDate  string `json:"startDate"  binding:"required"`
	EndDate    string `json:"endDate"`
}

func (r updateEventReq) validate() error {
	return validateDates(r.StartDate, r.EndDate)
}

func (r updateEventReq) toInput() calendar.UpdateEventInput {
	return calendar.UpdateEventInput{
		ID:         r.ID,
		Title:      r.Title,
		CalendarID: r.CalendarID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}
}

// ---

type deleteEventReq struct {
	ID string `json:"id" binding:"required"`
}

func (r deleteEventReq) toInput() calendar.DeleteEventInput {
	return calendar.DeleteEventInput{ID: r.ID}
}

// validateDates checks the YYYY-MM-DD wire format and the inclusive range
// ordering before the use case converts to the exclusive convention.
func validateDates(startDate, endDate string) error {
	if !dateutil.IsDateOnly(startDate) {
		return pkgErrors.NewHTTPErrorf(400, "invalid startDate: %s", startDate)
	}
	if endDate != "" {
		if !dateutil.IsDateOnly(endDate) {
			return pkgErrors.NewHTTPErrorf(400, "invalid endDate: %s", endDate)
		}
		if endDate < startDate {
			return pkgErrors.NewHTTPError(400, "endDate must not be before startDate")
		}
	}
	return nil
}

// --- Response DTOs ---

type calendarItem struct {
	ID              string `json:"id"`
	AccountID       string `json:"accountId"`
	AccountEmail    string `json:"accountEmail"`
	Summary         string `json:"summary"`
	Primary         bool   `json:"primary"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	AccessRole      string `json:"accessRole"`
}

type accountStatusItem struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Status    int    `json:"status"`
	Error     string `json:"error,omitempty"`
}

type listCalendarsResp struct {
	Calendars []calendarItem      `json:"calendars"`
	Accounts  []accountStatusItem `json:"accounts"`
	Debug     []accountStatusItem `json:"debug,omitempty"`
}

type eventItem struct {
	ID         string `json:"id"`
	CalendarID string `json:"calendarId"`
	Title      string `json:"title"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

type listEventsResp struct {
	Events []eventItem `json:"events"`
}

type eventResp struct {
	Event eventItem `json:"event"`
}

func (h *handler) newListCalendarsResp(output calendar.ListCalendarsOutput) listCalendarsResp {
	resp := listCalendarsResp{
		Calendars: make([]calendarItem, 0, len(output.Calendars)),
		Accounts:  make([]accountStatusItem, 0, len(output.Accounts)),
	}
	for _, cal := range output.Calendars {
		resp.Calendars = append(resp.Calendars, calendarItem{
			ID:              cal.ID,
			AccountID:       cal.AccountID,
			AccountEmail:    cal.AccountEmail,
			Summary:         cal.Summary,
			Primary:         cal.Primary,
			BackgroundColor: cal.BackgroundColor,
			AccessRole:      cal.AccessRole,
		})
	}
	for _, st := range output.Accounts {
		resp.Accounts = append(resp.Accounts, newAccountStatusItem(st))
	}
	for _, st := range output.Debug {
		resp.Debug = append(resp.Debug, newAccountStatusItem(st))
	}
	return resp
}

func newAccountStatusItem(st model.AccountStatus) accountStatusItem {
	return accountStatusItem{
		AccountID: st.AccountID,
		Email:     st.Email,
		Status:    st.Status,
		Error:     st.Error,
	}
}

func (h *handler) newListEventsResp(output calendar.ListEventsOutput) listEventsResp {
	resp := listEventsResp{Events: make([]eventItem, 0, len(output.Events))}
	for _, ev := range output.Events {
		resp.Events = append(resp.Events, newEventItem(ev))
	}
	return resp
}

func (h *handler) newEventResp(output calendar.EventOutput) eventResp {
	return eventResp{Event: newEventItem(output.Event)}
}

func newEventItem(ev model.Event) eventItem {
	return eventItem{
		ID:         ev.ID,
		CalendarID: ev.CalendarID,
		Title:      ev.Summary,
		StartDate:  ev.StartDate,
		EndDate:    ev.EndDate,
	}
}
