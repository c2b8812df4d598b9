package sqlite

import (
	"context"
	"time"

	"yeargrid/internal/account/repository"
	"yeargrid/internal/model"
)

// ListAccounts returns the user's linked account rows, optionally filtered
// by provider. Ordered by creation for stable aggregation output.
func (r *implRepository) ListAccounts(ctx context.Context, opt repository.ListAccountsOptions) ([]model.LinkedAccount, error) {
	query := `
		SELECT provider, account_id, email, access_token, refresh_token, expires_at
		FROM linked_accounts
		WHERE user_id = ?`
	args := []any{opt.UserID}
	if opt.Provider != "" {
		query += ` AND provider = ?`
		args = append(args, string(opt.Provider))
	}
	query += ` ORDER BY created_at, account_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListAccounts"), err)
		return nil, repository.ErrFailedToQuery
	}
	defer rows.Close()

	var accounts []model.LinkedAccount
	for rows.Next() {
		var acct model.LinkedAccount
		var provider string
		var expiresAt int64
		if err := rows.Scan(&provider, &acct.AccountID, &acct.Email, &acct.AccessToken, &acct.RefreshToken, &expiresAt); err != nil {
			r.l.Errorf(ctx, "%s: scan: %v", r.dsn("ListAccounts"), err)
			return nil, repository.ErrFailedToQuery
		}
		acct.Provider = model.Provider(provider)
		if expiresAt > 0 {
			acct.AccessTokenExpiresAt = time.Unix(expiresAt, 0).UTC()
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s: rows: %v", r.dsn("ListAccounts"), err)
		return nil, repository.ErrFailedToQuery
	}
	return accounts, nil
}

// UpsertAccount inserts a linked account or supersedes the existing row with
// the same (provider, account_id). An empty incoming refresh token keeps the
// stored one — providers omit refresh_token on re-auth.
func (r *implRepository) UpsertAccount(ctx context.Context, opt repository.UpsertAccountOptions) error {
	const query = `
		INSERT INTO linked_accounts (user_id, provider, account_id, email, access_token, refresh_token, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider, account_id) DO UPDATE SET
			email         = excluded.email,
			access_token  = excluded.access_token,
			refresh_token = CASE WHEN excluded.refresh_token != '' THEN excluded.refresh_token ELSE linked_accounts.refresh_token END,
			expires_at    = excluded.expires_at,
			updated_at    = CURRENT_TIMESTAMP`

	acct := opt.Account
	var expiresAt int64
	if !acct.AccessTokenExpiresAt.IsZero() {
		expiresAt = acct.AccessTokenExpiresAt.Unix()
	}

	if _, err := r.db.ExecContext(ctx, query,
		opt.UserID, string(acct.Provider), acct.AccountID, acct.Email,
		acct.AccessToken, acct.RefreshToken, expiresAt,
	); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertAccount"), err)
		return repository.ErrFailedToInsert
	}
	return nil
}

// UpdateTokens persists a token refresh, scoped to the owning user.
func (r *implRepository) UpdateTokens(ctx context.Context, opt repository.UpdateTokensOptions) (int, error) {
	const query = `
		UPDATE linked_accounts SET
			access_token  = ?,
			refresh_token = CASE WHEN ? != '' THEN ? ELSE refresh_token END,
			expires_at    = ?,
			updated_at    = CURRENT_TIMESTAMP
		WHERE user_id = ? AND provider = ? AND account_id = ?`

	var expiresAt int64
	if !opt.ExpiresAt.IsZero() {
		expiresAt = opt.ExpiresAt.Unix()
	}

	res, err := r.db.ExecContext(ctx, query,
		opt.AccessToken, opt.RefreshToken, opt.RefreshToken, expiresAt,
		opt.UserID, string(opt.Provider), opt.AccountID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTokens"), err)
		return 0, repository.ErrFailedToUpdate
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s: rows affected: %v", r.dsn("UpdateTokens"), err)
		return 0, repository.ErrFailedToUpdate
	}
	return int(affected), nil
}

// DeleteAccounts removes the user's rows matching the account id. Returns
// how many rows were deleted; zero is not an error.
func (r *implRepository) DeleteAccounts(ctx context.Context, opt repository.DeleteAccountsOptions) (int, error) {
	const query = `DELETE FROM linked_accounts WHERE user_id = ? AND account_id = ?`

	res, err := r.db.ExecContext(ctx, query, opt.UserID, opt.AccountID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteAccounts"), err)
		return 0, repository.ErrFailedToDelete
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s: rows affected: %v", r.dsn("DeleteAccounts"), err)
		return 0, repository.ErrFailedToDelete
	}
	return int(affected), nil
}
