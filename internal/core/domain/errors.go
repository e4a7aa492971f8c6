package domain

import "errors"

var (
	ErrNotFound = errors.New("product not found")
	ErrInternal = errors.New("internal failure")

	ErrStockNotFound    = errors.New("stock record not found")
	ErrStockConflict    = errors.New("stock record already exists")
	ErrStockUnavailable = errors.New("stock service unavailable")
)
