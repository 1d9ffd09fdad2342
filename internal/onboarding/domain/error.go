package domain

import "errors"

var (
	ErrInvalidStep   = errors.New("invalid onboarding step")
	ErrInvalidRole   = errors.New("role must be personal or business")
	ErrPhotoRequired = errors.New("profile photo is required")
	ErrWrongStep     = errors.New("operation not valid for current step")
)
