// Package microsoft adapts the Microsoft Graph calendar API to the
// canonical provider interface.
//
// Graph has no single-call year-bounded all-day query with Google's
// semantics, so events go through the calendarView endpoint over a
// three-year window and are filtered client-side: cancelled items dropped,
// timed items dropped (an all-day item reports identical start and end
// time-of-day), and only events starting in the requested year kept.
package microsoft

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	"yeargrid/pkg/log"
)

const (
	defaultBaseURL  = "https://graph.microsoft.com/v1.0"
	maxEventsPerCal = 1000

	// Graph has no primary-calendar concept comparable to Google's; list
	// results use a fixed color and derive the access role from canEdit.
	defaultColor = "#3174ad"

	untitled = "(Untitled)"
)

// Adapter implements provider.Adapter against Microsoft Graph.
type Adapter struct {
	baseURL    string
	httpClient *http.Client
	l          log.Logger
}

// New creates a Graph adapter against the real API.
func New(l log.Logger) *Adapter {
	return NewWithBaseURL(defaultBaseURL, l)
}

// NewWithBaseURL creates an adapter against a custom Graph base URL.
// Tests point this at an httptest server.
func NewWithBaseURL(baseURL string, l log.Logger) *Adapter {
	return &Adapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		l:          l,
	}
}

var _ provider.Adapter = (*Adapter)(nil)

func (a *Adapter) Provider() model.Provider {
	return model.ProviderMicrosoft
}

func (a *Adapter) get(ctx context.Context, accessToken, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Prefer", `outlook.timezone="UTC"`)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call graph API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &provider.CallError{Status: resp.StatusCode, Message: extractErrorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode graph response: %w", err)
	}
	return nil
}

// extractErrorMessage pulls the human-readable message out of Graph's error
// envelope, falling back to a generic message.
func extractErrorMessage(body io.Reader) string {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return "microsoft graph request failed"
}

func (a *Adapter) ListCalendars(ctx context.Context, accessToken string) ([]provider.Calendar, error) {
	var result struct {
		Value []struct {
			ID                string `json:"id"`
			Name              string `json:"name"`
			IsDefaultCalendar bool   `json:"isDefaultCalendar"`
			CanEdit           bool   `json:"canEdit"`
		} `json:"value"`
	}
	if err := a.get(ctx, accessToken, a.baseURL+"/me/calendars", &result); err != nil {
		return nil, err
	}

	calendars := make([]provider.Calendar, 0, len(result.Value))
	for _, cal := range result.Value {
		name := cal.Name
		if name == "" {
			name = untitled
		}
		accessRole := "reader"
		if cal.CanEdit {
			accessRole = "writer"
		}
		calendars = append(calendars, provider.Calendar{
			ID:              cal.ID,
			Summary:         name,
			Primary:         cal.IsDefaultCalendar,
			BackgroundColor: defaultColor,
			AccessRole:      accessRole,
		})
	}
	return calendars, nil
}

type graphEvent struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	IsCancelled bool   `json:"isCancelled"`
	Start       struct {
		DateTime string `json:"dateTime"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
	} `json:"end"`
}

func (a *Adapter) ListAllDayEvents(ctx context.Context, accessToken, calendarID string, year int) ([]provider.Event, error) {
	query := url.Values{}
	query.Set("startDateTime", fmt.Sprintf("%d-01-01T00:00:00Z", year-1))
	query.Set("endDateTime", fmt.Sprintf("%d-01-01T00:00:00Z", year+2))
	query.Set("$orderby", "start/dateTime")
	query.Set("$top", fmt.Sprint(maxEventsPerCal))

	// calendarView expands recurring events server-side. The bare /me form
	// addresses the account's default calendar.
	endpoint := a.baseURL + "/me/calendarView"
	if calendarID != provider.PrimaryCalendarID {
		endpoint = a.baseURL + "/me/calendars/" + url.PathEscape(calendarID) + "/calendarView"
	}

	var result struct {
		Value []graphEvent `json:"value"`
	}
	if err := a.get(ctx, accessToken, endpoint+"?"+query.Encode(), &result); err != nil {
		return nil, err
	}

	yearPrefix := fmt.Sprintf("%d-", year)
	events := make([]provider.Event, 0, len(result.Value))
	for _, item := range result.Value {
		if item.IsCancelled {
			continue
		}
		startDate, startTime, ok := splitDateTime(item.Start.DateTime)
		if !ok {
			continue
		}
		endDate, endTime, ok := splitDateTime(item.End.DateTime)
		if !ok {
			continue
		}
		// A true all-day event spans whole days, so its start and end carry
		// the same time-of-day (midnight). Differing times mean a timed
		// event, which never belongs in the grid.
		if startTime != endTime {
			continue
		}
		if !strings.HasPrefix(startDate, yearPrefix) {
			continue
		}
		summary := item.Subject
		if summary == "" {
			summary = untitled
		}
		events = append(events, provider.Event{
			ID:        item.ID,
			Summary:   summary,
			StartDate: startDate,
			EndDate:   endDate,
		})
	}
	return events, nil
}

// splitDateTime splits Graph's "2006-01-02T15:04:05.0000000" into date and
// time-of-day components.
func splitDateTime(s string) (date, timeOfDay string, ok bool) {
	date, timeOfDay, ok = strings.Cut(s, "T")
	if !ok || date == "" {
		return "", "", false
	}
	return date, timeOfDay, true
}

// Event writes are intentionally not implemented for Microsoft; the product
// only writes through Google calendars.

func (a *Adapter) CreateEvent(ctx context.Context, accessToken, calendarID string, draft provider.EventDraft) (provider.Event, error) {
	return provider.Event{}, provider.ErrWriteNotSupported
}

func (a *Adapter) UpdateEvent(ctx context.Context, accessToken, calendarID, eventID string, draft provider.EventDraft) (provider.Event, error) {
	return provider.Event{}, provider.ErrWriteNotSupported
}

func (a *Adapter) DeleteEvent(ctx context.Context, accessToken, calendarID, eventID string) error {
	return provider.ErrWriteNotSupported
}
