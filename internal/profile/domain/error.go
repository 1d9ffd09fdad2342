package domain

import "errors"

var (
	ErrNotFound           = errors.New("profile not found")
	ErrBusinessNotFound   = errors.New("business profile not found")
	ErrInvalidRoleType    = errors.New("invalid role type")
	ErrInvalidNZBN        = errors.New("nzbn must be 13 digits")
	ErrUnknownServiceArea = errors.New("unknown service area")
	ErrMissingRequired    = errors.New("missing required field")
)
