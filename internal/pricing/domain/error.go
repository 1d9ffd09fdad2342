package domain

import "errors"

var (
	ErrTierNotFound    = errors.New("pricing tier not found")
	ErrInvalidTierCode = errors.New("invalid tier code")
	ErrDuplicateTier   = errors.New("tier code already exists")
)
