package model

// Calendar is the canonical, provider-neutral calendar projection. Derived
// per-request from upstream responses; never persisted.
type Calendar struct {
	ID              string // composite "accountID|calendarID"
	OriginalID      string // provider-native calendar id
	AccountID       string
	AccountEmail    string
	Summary         string
	Primary         bool
	BackgroundColor string
	AccessRole      string // reader | writer | owner
}

// Event is the canonical all-day event projection.
//
// StartDate is inclusive and EndDate is exclusive (the day after the last
// covered day), matching the Google all-day convention. EndDate > StartDate
// always holds for a well-formed event.
type Event struct {
	ID         string // composite "accountID|calendarID:eventID"
	CalendarID string // composite "accountID|calendarID"
	Summary    string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD, exclusive
}

// AccountStatus is the per-account diagnostic attached to fan-out reads.
// A failed account keeps its slot here instead of failing the aggregate.
type AccountStatus struct {
	AccountID string
	Email     string
	Status    int
	Error     string
}

// FetchOutcome is the result of one (account, calendar) fetch unit.
type FetchOutcome struct {
	AccountID  string
	Email      string
	CalendarID string
	Events     []Event
	Status     int
	Error      string
}

// Failed reports whether the unit produced an error.
func (o FetchOutcome) Failed() bool {
	return o.Error != ""
}
