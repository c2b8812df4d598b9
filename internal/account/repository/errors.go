package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert account")
	ErrFailedToQuery  = errors.New("failed to query accounts")
	ErrFailedToUpdate = errors.New("failed to update account")
	ErrFailedToDelete = errors.New("failed to delete accounts")
)
