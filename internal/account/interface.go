package account

import (
	"context"
	"time"

	"yeargrid/internal/model"
)

// Store is the credential store: the merged view over the durable repository
// and the session-scoped cache. All operations are scoped to the calling
// user; nothing here ever touches another user's rows.
type Store interface {
	// List returns every linked account for the user across both providers.
	// Durable rows and session entries are merged, de-duplicated by
	// (provider, accountId); session entries win because they carry the
	// freshest tokens.
	List(ctx context.Context, scope model.Scope) ([]model.LinkedAccount, error)

	// ListProvider is List filtered to one provider.
	ListProvider(ctx context.Context, scope model.Scope, provider model.Provider) ([]model.LinkedAccount, error)

	// Upsert persists a linked account after a sign-in, superseding any
	// existing row with the same (provider, accountId), and write-through
	// caches it for the session.
	Upsert(ctx context.Context, scope model.Scope, acct model.LinkedAccount) error

	// SaveRefreshedToken records the outcome of a token refresh. An empty
	// refreshToken preserves the stored one (providers may omit
	// refresh_token on refresh responses).
	SaveRefreshedToken(ctx context.Context, scope model.Scope, provider model.Provider, accountID, accessToken, refreshToken string, expiresAt time.Time) error

	// Disconnect removes the user's rows matching accountID and returns how
	// many were deleted. Zero matches is not an error.
	Disconnect(ctx context.Context, scope model.Scope, accountID string) (int, error)
}
