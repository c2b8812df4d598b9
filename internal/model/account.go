package model

import "time"

// Provider identifies a calendar provider.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderMicrosoft Provider = "microsoft"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	return p == ProviderGoogle || p == ProviderMicrosoft
}

// Scope is the credential context for a single request. It is passed
// explicitly into every aggregation call; there is no process-wide notion of
// a "current user".
type Scope struct {
	UserID string
}

// Authenticated reports whether the scope carries a signed-in user.
func (s Scope) Authenticated() bool {
	return s.UserID != ""
}

// LinkedAccount is one OAuth-authorized provider identity belonging to a
// user. Identity is (Provider, AccountID) and is stable across token
// refreshes; rows are superseded on refresh and removed only on explicit
// disconnect.
type LinkedAccount struct {
	Provider             Provider
	AccountID            string
	Email                string
	AccessToken          string
	RefreshToken         string
	AccessTokenExpiresAt time.Time
}

// Expired reports whether the access token is expired or about to expire
// within the buffer.
func (a LinkedAccount) Expired(now time.Time, buffer time.Duration) bool {
	if a.AccessTokenExpiresAt.IsZero() {
		return false
	}
	return !a.AccessTokenExpiresAt.After(now.Add(buffer))
}
