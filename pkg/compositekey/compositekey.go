// Package compositekey encodes and decodes the routing keys used to address
// calendars and events across linked accounts.
//
// A calendar key is "accountID|calendarID"; an event key appends the event:
// "accountID|calendarID:eventID". The account/calendar separator is "|" and
// the event separator is ":".
package compositekey

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// SepAccount separates the account id from the calendar id.
	SepAccount = "|"
	// SepEvent separates the calendar key from the event id.
	SepEvent = ":"
)

// ErrInvalid reports a key that is missing a separator or has an empty segment.
var ErrInvalid = errors.New("invalid composite id")

// EventKey is a fully decoded event composite id.
type EventKey struct {
	AccountID  string
	CalendarID string
	EventID    string
}

// CalendarKey returns the calendar portion of the key.
func (k EventKey) CalendarKey() string {
	return EncodeCalendar(k.AccountID, k.CalendarID)
}

// EncodeCalendar builds "accountID|calendarID".
func EncodeCalendar(accountID, calendarID string) string {
	return accountID + SepAccount + calendarID
}

// Encode builds "accountID|calendarID:eventID".
func Encode(accountID, calendarID, eventID string) string {
	return EncodeCalendar(accountID, calendarID) + SepEvent + eventID
}

// DecodeCalendar parses "accountID|calendarID". Fails with ErrInvalid when
// the separator is absent or either segment is empty.
func DecodeCalendar(id string) (accountID, calendarID string, err error) {
	accountID, calendarID, ok := strings.Cut(id, SepAccount)
	if !ok || accountID == "" || calendarID == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalid, id)
	}
	return accountID, calendarID, nil
}

// Decode parses "accountID|calendarID:eventID". The event id is cut at the
// first ":" after the calendar pair; event ids themselves never contain ":"
// for either provider.
func Decode(id string) (EventKey, error) {
	calPart, eventID, ok := strings.Cut(id, SepEvent)
	if !ok || eventID == "" {
		return EventKey{}, fmt.Errorf("%w: %q", ErrInvalid, id)
	}
	accountID, calendarID, err := DecodeCalendar(calPart)
	if err != nil {
		return EventKey{}, fmt.Errorf("%w: %q", ErrInvalid, id)
	}
	return EventKey{AccountID: accountID, CalendarID: calendarID, EventID: eventID}, nil
}
