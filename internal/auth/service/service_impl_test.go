package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/auth/domain"
	"github.com/eventcrew/stagecrew/internal/auth/repository"
	"github.com/eventcrew/stagecrew/internal/clock"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	users, sessions := repository.New(db)
	return New(users, sessions, node, clk, zap.NewNop()), clk
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, domain.SignupInput{
		Email:       "Kiri@Example.co.nz",
		Password:    "correct-horse",
		DisplayName: "Kiri",
	})
	require.NoError(t, err)
	assert.Equal(t, "kiri@example.co.nz", user.Email)
	assert.Nil(t, user.OnboardedAt)

	res, err := svc.Login(ctx, domain.LoginInput{
		Email:    "kiri@example.co.nz",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.SignupInput{Email: "a@b.co.nz", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginInput{Email: "a@b.co.nz", Password: "nope-nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginInput{Email: "missing@b.co.nz", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateLifecycle(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)
	res, err := svc.Login(ctx, domain.LoginInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co.nz", user.Email)

	// Expired sessions are rejected.
	clk.Advance(8 * 24 * time.Hour)
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)
	res, err := svc.Login(ctx, domain.LoginInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Token))

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	// Logging out twice is a no-op.
	assert.NoError(t, svc.Logout(ctx, res.Token))
}

func TestMarkOnboarded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, domain.SignupInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkOnboarded(ctx, user.ID))

	res, err := svc.Login(ctx, domain.LoginInput{Email: "a@b.co.nz", Password: "password1"})
	require.NoError(t, err)
	assert.NotNil(t, res.User.OnboardedAt)
}
