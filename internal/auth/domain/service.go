package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// SignupInput carries the fields needed to create an account.
type SignupInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput carries credentials plus request metadata for session records.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is returned on a successful login. Token is the raw session
// token handed to the cookie layer; only its hash is stored.
type LoginResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Service exposes account and session operations.
type Service interface {
	Signup(ctx context.Context, in SignupInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*User, error)
	MarkOnboarded(ctx context.Context, userID snowflake.ID) error
}
