package repository

import (
	"context"

	"yeargrid/internal/model"
)

// Repository is the durable layer of the credential store. It is the only
// cross-request shared mutable state in the service; every write is keyed by
// (userID, provider, accountID).
type Repository interface {
	ListAccounts(ctx context.Context, opt ListAccountsOptions) ([]model.LinkedAccount, error)
	UpsertAccount(ctx context.Context, opt UpsertAccountOptions) error
	UpdateTokens(ctx context.Context, opt UpdateTokensOptions) (int, error)
	DeleteAccounts(ctx context.Context, opt DeleteAccountsOptions) (int, error)
}
