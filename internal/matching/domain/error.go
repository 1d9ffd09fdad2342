package domain

import "errors"

var (
	ErrEngineUnavailable = errors.New("matching engine unavailable")
	ErrUnknownComponent  = errors.New("unknown score component")
	ErrInvalidInquiry    = errors.New("inquiry requires a contractor id")
	ErrInquiryRateLimit  = errors.New("too many inquiries, slow down")
)
