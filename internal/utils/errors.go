package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidPagination = errors.New("INVALID_PAGINATION")
	ErrInvalidFilter     = errors.New("INVALID_FILTER")
	ErrInvalidBatchItem  = errors.New("INVALID_BATCH_ITEM")
)
