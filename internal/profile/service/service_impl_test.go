package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/profile/domain"
	"github.com/eventcrew/stagecrew/internal/profile/repository"
	refdomain "github.com/eventcrew/stagecrew/internal/reference/domain"
)

type stubRegions struct {
	codes map[string]struct{}
	err   error
}

func (s *stubRegions) ListRegions(ctx context.Context) ([]refdomain.Region, error) {
	return nil, s.err
}

func (s *stubRegions) RegionCodes(ctx context.Context) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.codes, nil
}

func newTestService(t *testing.T, regions refdomain.Repository) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Profile{}, &domain.BusinessProfile{}))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(repository.New(db), regions, clk, zap.NewNop())
}

func validInput() domain.ProfileInput {
	return domain.ProfileInput{
		FirstName: "Aroha",
		LastName:  "Ngata",
		Phone:     "+64 21 555 0101",
		Address:   "12 Queen St, Auckland",
	}
}

func TestSaveProfileUpsert(t *testing.T) {
	svc := newTestService(t, &stubRegions{})
	ctx := context.Background()
	userID := snowflake.ID(1001)

	profile, err := svc.SaveProfile(ctx, userID, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Aroha", profile.FirstName)

	in := validInput()
	in.Phone = "+64 21 555 0202"
	profile, err = svc.SaveProfile(ctx, userID, in)
	require.NoError(t, err)
	assert.Equal(t, "+64 21 555 0202", profile.Phone)
}

func TestSaveProfileMissingRequired(t *testing.T) {
	svc := newTestService(t, &stubRegions{})

	in := validInput()
	in.Phone = ""
	_, err := svc.SaveProfile(context.Background(), snowflake.ID(1001), in)
	assert.ErrorIs(t, err, domain.ErrMissingRequired)
}

func TestSetRoleType(t *testing.T) {
	svc := newTestService(t, &stubRegions{})
	ctx := context.Background()
	userID := snowflake.ID(1001)

	_, err := svc.SaveProfile(ctx, userID, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.SetRoleType(ctx, userID, domain.RoleBusiness))

	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBusiness, profile.RoleType)

	assert.ErrorIs(t, svc.SetRoleType(ctx, userID, domain.RoleType("corporate")), domain.ErrInvalidRoleType)
	assert.ErrorIs(t, svc.SetRoleType(ctx, snowflake.ID(9999), domain.RolePersonal), domain.ErrNotFound)
}

func TestSetPhoto(t *testing.T) {
	svc := newTestService(t, &stubRegions{})
	ctx := context.Background()
	userID := snowflake.ID(1001)

	_, err := svc.SaveProfile(ctx, userID, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetPhoto(ctx, userID, ""), domain.ErrMissingRequired)

	require.NoError(t, svc.SetPhoto(ctx, userID, "https://cdn.example/p.jpg"))
	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/p.jpg", profile.PhotoURL)
}

func TestSaveBusinessProfileValidation(t *testing.T) {
	regions := &stubRegions{codes: map[string]struct{}{"auckland": {}, "waikato": {}}}
	svc := newTestService(t, regions)
	ctx := context.Background()
	userID := snowflake.ID(1001)

	in := domain.BusinessProfileInput{
		CompanyName:     "Stage & Sound Ltd",
		BusinessAddress: "5 Victoria St, Hamilton",
		NZBN:            "9429041234567",
		ServiceAreas:    []string{"auckland", "waikato"},
	}
	profile, err := svc.SaveBusinessProfile(ctx, userID, in)
	require.NoError(t, err)
	assert.Equal(t, "Stage & Sound Ltd", profile.CompanyName)

	bad := in
	bad.NZBN = "12345"
	_, err = svc.SaveBusinessProfile(ctx, userID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidNZBN)

	bad = in
	bad.ServiceAreas = []string{"auckland", "atlantis"}
	_, err = svc.SaveBusinessProfile(ctx, userID, bad)
	assert.ErrorIs(t, err, domain.ErrUnknownServiceArea)
}

func TestSaveBusinessProfileRegionLookupFailureIsNonBlocking(t *testing.T) {
	svc := newTestService(t, &stubRegions{err: errors.New("db down")})

	in := domain.BusinessProfileInput{
		CompanyName:     "Stage & Sound Ltd",
		BusinessAddress: "5 Victoria St, Hamilton",
		ServiceAreas:    []string{"auckland"},
	}
	_, err := svc.SaveBusinessProfile(context.Background(), snowflake.ID(1001), in)
	assert.NoError(t, err)
}

func TestGetBusinessProfileNotFound(t *testing.T) {
	svc := newTestService(t, &stubRegions{})

	_, err := svc.GetBusinessProfile(context.Background(), snowflake.ID(404))
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}
