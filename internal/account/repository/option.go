package repository

import (
	"time"

	"yeargrid/internal/model"
)

// ListAccountsOptions filters the account listing. UserID is required;
// Provider narrows to one provider when set.
type ListAccountsOptions struct {
	UserID   string
	Provider model.Provider
}

// UpsertAccountOptions holds parameters for inserting or superseding a
// linked account row.
type UpsertAccountOptions struct {
	UserID  string
	Account model.LinkedAccount
}

// UpdateTokensOptions holds parameters for persisting a token refresh.
// RefreshToken is applied only when non-empty.
type UpdateTokensOptions struct {
	UserID       string
	Provider     model.Provider
	AccountID    string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// DeleteAccountsOptions holds parameters for removing a user's account rows.
type DeleteAccountsOptions struct {
	UserID    string
	AccountID string
}
