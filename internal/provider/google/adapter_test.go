package google_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"yeargrid/internal/provider"
	"yeargrid/internal/provider/google"
	"yeargrid/pkg/log"
)

func TestListCalendars(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/calendarList", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("minAccessRole"); got != "reader" {
			t.Errorf("minAccessRole = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "primary-cal", "summary": "Personal", "primary": true, "backgroundColor": "#9fe1e7", "accessRole": "owner"},
				{"id": "team-cal", "summary": "Team", "accessRole": "reader"},
			},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	a := google.NewWithEndpoint(ts.URL, log.NewNop())
	calendars, err := a.ListCalendars(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calendars) != 2 {
		t.Fatalf("got %d calendars", len(calendars))
	}
	if !calendars[0].Primary || calendars[0].AccessRole != "owner" || calendars[0].BackgroundColor != "#9fe1e7" {
		t.Errorf("unexpected first calendar: %+v", calendars[0])
	}
	if calendars[1].Primary || calendars[1].ID != "team-cal" {
		t.Errorf("unexpected second calendar: %+v", calendars[1])
	}
}

func TestListAllDayEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/cal-1/events", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("singleEvents"); got != "true" {
			t.Errorf("singleEvents = %q", got)
		}
		if got := q.Get("timeMin"); got != "2025-01-01T00:00:00Z" {
			t.Errorf("timeMin = %q", got)
		}
		if got := q.Get("timeMax"); got != "2026-01-01T00:00:00Z" {
			t.Errorf("timeMax = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id": "ev-1", "summary": "Vacation", "status": "confirmed",
					"start": map[string]string{"date": "2025-03-01"},
					"end":   map[string]string{"date": "2025-03-03"},
				},
				{
					// Timed event: DateTime instead of Date, must be dropped.
					"id": "ev-2", "summary": "Meeting", "status": "confirmed",
					"start": map[string]string{"dateTime": "2025-03-01T09:00:00Z"},
					"end":   map[string]string{"dateTime": "2025-03-01T10:00:00Z"},
				},
				{
					"id": "ev-3", "summary": "Gone", "status": "cancelled",
					"start": map[string]string{"date": "2025-04-01"},
					"end":   map[string]string{"date": "2025-04-02"},
				},
				{
					"id": "ev-4", "status": "confirmed",
					"start": map[string]string{"date": "2025-05-01"},
					"end":   map[string]string{"date": "2025-05-02"},
				},
			},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	a := google.NewWithEndpoint(ts.URL, log.NewNop())
	events, err := a.ListAllDayEvents(context.Background(), "tok-1", "cal-1", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].ID != "ev-1" || events[0].StartDate != "2025-03-01" || events[0].EndDate != "2025-03-03" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Summary != "(Untitled)" {
		t.Errorf("expected untitled fallback, got %q", events[1].Summary)
	}
}

func TestCreateEvent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/cal-1/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body struct {
			Summary string `json:"summary"`
			Start   struct {
				Date string `json:"date"`
			} `json:"start"`
			End struct {
				Date string `json:"date"`
			} `json:"end"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Summary != "Offsite" || body.Start.Date != "2025-03-01" || body.End.Date != "2025-03-03" {
			t.Errorf("unexpected body: %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": "created-1", "summary": "Offsite",
			"start": map[string]string{"date": "2025-03-01"},
			"end":   map[string]string{"date": "2025-03-03"},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	a := google.NewWithEndpoint(ts.URL, log.NewNop())
	created, err := a.CreateEvent(context.Background(), "tok-1", "cal-1", provider.EventDraft{
		Summary: "Offsite", StartDate: "2025-03-01", EndDate: "2025-03-03",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "created-1" || created.EndDate != "2025-03-03" {
		t.Errorf("unexpected event: %+v", created)
	}
}

func TestDeleteEvent(t *testing.T) {
	t.Run("204 No Content", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/calendars/cal-1/events/ev-1", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("method = %s", r.Method)
			}
			w.WriteHeader(http.StatusNoContent)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		a := google.NewWithEndpoint(ts.URL, log.NewNop())
		if err := a.DeleteEvent(context.Background(), "tok-1", "cal-1", "ev-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("200 OK", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/calendars/cal-1/events/ev-1", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		a := google.NewWithEndpoint(ts.URL, log.NewNop())
		if err := a.DeleteEvent(context.Background(), "tok-1", "cal-1", "ev-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestErrorEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/calendarList", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    401,
				"message": "Invalid Credentials",
				"errors":  []map[string]any{{"reason": "authError", "message": "Invalid Credentials"}},
			},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	a := google.NewWithEndpoint(ts.URL, log.NewNop())
	_, err := a.ListCalendars(context.Background(), "tok-stale")

	var callErr *provider.CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("expected CallError, got %v", err)
	}
	if callErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d", callErr.Status)
	}
	if callErr.Message != "Invalid Credentials" {
		t.Errorf("message = %q", callErr.Message)
	}
}
