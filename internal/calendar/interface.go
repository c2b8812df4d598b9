package calendar

import (
	"context"

	"yeargrid/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	ListCalendars(ctx context.Context, sc model.Scope, input ListCalendarsInput) (ListCalendarsOutput, error)
	ListEvents(ctx context.Context, sc model.Scope, input ListEventsInput) (ListEventsOutput, error)
	CreateEvent(ctx context.Context, sc model.Scope, input CreateEventInput) (EventOutput, error)
	UpdateEvent(ctx context.Context, sc model.Scope, input UpdateEventInput) (EventOutput, error)
	DeleteEvent(ctx context.Context, sc model.Scope, input DeleteEventInput) error
}
