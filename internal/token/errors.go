package token

import (
	"fmt"

	"yeargrid/internal/model"
)

// AuthError reports a failed or impossible token refresh. It is
// account-scoped: the aggregator treats it as that account's failure, never
// the whole request's.
type AuthError struct {
	Provider model.Provider
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s token refresh failed: %s", e.Provider, e.Reason)
}
