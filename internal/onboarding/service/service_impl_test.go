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

	authdomain "github.com/eventcrew/stagecrew/internal/auth/domain"
	authrepo "github.com/eventcrew/stagecrew/internal/auth/repository"
	authservice "github.com/eventcrew/stagecrew/internal/auth/service"
	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/onboarding/domain"
	"github.com/eventcrew/stagecrew/internal/onboarding/store"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
	profilerepo "github.com/eventcrew/stagecrew/internal/profile/repository"
	profileservice "github.com/eventcrew/stagecrew/internal/profile/service"
	refdomain "github.com/eventcrew/stagecrew/internal/reference/domain"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

type stubTeams struct {
	isMember bool
	err      error
}

func (s *stubTeams) IsTeamMember(ctx context.Context, userID snowflake.ID) (bool, error) {
	return s.isMember, s.err
}

func (s *stubTeams) InviteMembers(ctx context.Context, ownerUserID snowflake.ID, invites []teamdomain.InviteInput) ([]teamdomain.Invitation, error) {
	return nil, nil
}

func (s *stubTeams) AcceptInvite(ctx context.Context, userID snowflake.ID, code string) (*teamdomain.Member, error) {
	return nil, nil
}

func (s *stubTeams) ListMembers(ctx context.Context, ownerUserID snowflake.ID) ([]teamdomain.Member, error) {
	return nil, nil
}

func (s *stubTeams) RemoveMember(ctx context.Context, ownerUserID, memberID snowflake.ID) error {
	return nil
}

func (s *stubTeams) PruneExpiredInvitations(ctx context.Context) (int64, error) {
	return 0, nil
}

type stubRegions struct{}

func (stubRegions) ListRegions(ctx context.Context) ([]refdomain.Region, error) { return nil, nil }

func (stubRegions) RegionCodes(ctx context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{"auckland": {}, "wellington": {}}, nil
}

// failingStore wraps a real store and fails writes on demand.
type failingStore struct {
	domain.Store
	failSet bool
}

func (f *failingStore) Set(ctx context.Context, userID snowflake.ID, key, value string) error {
	if f.failSet {
		return errors.New("store write failed")
	}
	return f.Store.Set(ctx, userID, key, value)
}

type harness struct {
	svc    domain.Service
	store  *store.MemoryStore
	wrap   *failingStore
	teams  *stubTeams
	users  authdomain.Service
	userID snowflake.ID
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{},
		&profiledomain.Profile{}, &profiledomain.BusinessProfile{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	users, sessions := authrepo.New(db)
	authSvc := authservice.New(users, sessions, node, clk, log)
	profileSvc := profileservice.New(profilerepo.New(db), stubRegions{}, clk, log)

	user, err := authSvc.Signup(context.Background(), authdomain.SignupInput{
		Email:    "manager@example.co.nz",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	mem := store.NewMemoryStore(clk, 0)
	wrap := &failingStore{Store: mem}
	teams := &stubTeams{}

	svc := New(wrap, profileSvc, teams, authSvc, nil, nil, clk, log)
	return &harness{
		svc:    svc,
		store:  mem,
		wrap:   wrap,
		teams:  teams,
		users:  authSvc,
		userID: user.ID,
	}
}

func personalInfo() domain.PersonalInfo {
	return domain.PersonalInfo{
		FirstName: "Aroha",
		LastName:  "Ngata",
		Phone:     "+64 21 555 0101",
		Address:   "12 Queen St, Auckland",
	}
}

func TestBusinessFlowVisitsAllSteps(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sess, err := h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)
	assert.Equal(t, domain.StepRoleSelection, sess.CurrentStep)

	sess, err = h.svc.CompleteStep2(ctx, h.userID, profiledomain.RoleBusiness)
	require.NoError(t, err)
	assert.Equal(t, domain.StepBusinessDetails, sess.CurrentStep)

	sess, err = h.svc.CompleteStep3(ctx, h.userID, domain.BusinessInfo{
		CompanyName:     "Stage & Sound Ltd",
		BusinessAddress: "5 Victoria St, Hamilton",
		ServiceAreas:    []string{"auckland"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePhoto, sess.CurrentStep)

	sess, err = h.svc.SubmitPhoto(ctx, h.userID, "https://cdn.example/p.jpg")
	require.NoError(t, err)
	assert.Equal(t, domain.StepTutorial, sess.CurrentStep)

	require.NoError(t, h.svc.Complete(ctx, h.userID))
}

func TestPersonalRoleSkipsBusinessDetails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)

	sess, err := h.svc.CompleteStep2(ctx, h.userID, profiledomain.RolePersonal)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePhoto, sess.CurrentStep)
}

func TestTeamMemberShortCircuit(t *testing.T) {
	h := newHarness(t)
	h.teams.isMember = true
	ctx := context.Background()

	// Mount resolves and caches the membership flag.
	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.True(t, sess.IsTeamMember)

	sess, err = h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePhoto, sess.CurrentStep)
	assert.True(t, sess.IsTeamMember)

	// The role is fixed to personal without showing step 2.
	assert.Equal(t, profiledomain.RolePersonal, sess.Data.RoleType)

	progress, err := h.svc.Progress(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Current: 2, Total: 3}, progress)
}

func TestResumeAtSavedStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)
	_, err = h.svc.CompleteStep2(ctx, h.userID, profiledomain.RoleBusiness)
	require.NoError(t, err)

	// A fresh session over the same store resumes, it does not restart.
	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepBusinessDetails, sess.CurrentStep)
	assert.Equal(t, "Aroha", sess.Data.PersonalInfo.FirstName)
	assert.Equal(t, profiledomain.RoleBusiness, sess.Data.RoleType)
}

func TestEmptyPhotoRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)
	_, err = h.svc.CompleteStep2(ctx, h.userID, profiledomain.RolePersonal)
	require.NoError(t, err)

	_, err = h.svc.SubmitPhoto(ctx, h.userID, "")
	assert.ErrorIs(t, err, domain.ErrPhotoRequired)

	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepProfilePhoto, sess.CurrentStep)
}

func TestCompleteClearsWizardKeys(t *testing.T) {
	h := newHarness(t)
	h.teams.isMember = true
	ctx := context.Background()

	_, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	_, err = h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)
	_, err = h.svc.SubmitPhoto(ctx, h.userID, "https://cdn.example/p.jpg")
	require.NoError(t, err)

	require.NoError(t, h.svc.Complete(ctx, h.userID))

	for _, key := range []string{domain.KeyStep, domain.KeyFromTeamInvitation, domain.KeyProfileCompletion} {
		val, err := h.store.Get(ctx, h.userID, key)
		require.NoError(t, err)
		assert.Empty(t, val, key)
	}
	marker, err := h.store.Get(ctx, h.userID, domain.KeyJustCompleted)
	require.NoError(t, err)
	assert.NotEmpty(t, marker)

	// Completing off the tutorial step is rejected.
	assert.ErrorIs(t, h.svc.Complete(ctx, h.userID), domain.ErrWrongStep)
}

func TestBackNavigation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)
	_, err = h.svc.CompleteStep2(ctx, h.userID, profiledomain.RolePersonal)
	require.NoError(t, err)

	// Non-team personal role decrements to business details even
	// though it was skipped forward.
	sess, err := h.svc.Back(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepBusinessDetails, sess.CurrentStep)
}

func TestBackNavigationTeamMember(t *testing.T) {
	h := newHarness(t)
	h.teams.isMember = true
	ctx := context.Background()

	_, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	_, err = h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	require.NoError(t, err)

	sess, err := h.svc.Back(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPersonalInfo, sess.CurrentStep)
}

func TestStepSaveFailureLeavesStepUnchanged(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.wrap.failSet = true
	_, err := h.svc.CompleteStep1(ctx, h.userID, personalInfo())
	assert.Error(t, err)

	h.wrap.failSet = false
	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPersonalInfo, sess.CurrentStep)
}

func TestMembershipCheckFailureFallsBackToCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.store.Set(ctx, h.userID, domain.KeyFromTeamInvitation, "true"))
	h.teams.err = errors.New("team service down")

	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.True(t, sess.IsTeamMember)
}

func TestExplicitServerFalseClearsStaleFlag(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// A cached true outlives a server false; only server false with no
	// cache yields non-member.
	require.NoError(t, h.store.Set(ctx, h.userID, domain.KeyFromTeamInvitation, "true"))
	h.teams.isMember = false

	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.True(t, sess.IsTeamMember)

	require.NoError(t, h.store.Delete(ctx, h.userID, domain.KeyFromTeamInvitation))
	sess, err = h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.False(t, sess.IsTeamMember)
}

func TestAcceptedInviteSeedsCachedFlag(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// The flag is seeded when the invitation is accepted, so a first
	// wizard load during a team-service outage still resolves the
	// member onto the shortened flow.
	h.svc.RecordInvitationOrigin(ctx, h.userID)
	h.teams.err = errors.New("team service down")

	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.True(t, sess.IsTeamMember)

	progress, err := h.svc.Progress(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Current: 1, Total: 3}, progress)
}

func TestServerFalseScrubsResidualFlagValue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// A stored value other than "true" does not count as a cached
	// flag; an explicit server false removes it.
	require.NoError(t, h.store.Set(ctx, h.userID, domain.KeyFromTeamInvitation, "yes"))
	h.teams.isMember = false

	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.False(t, sess.IsTeamMember)

	raw, err := h.store.Get(ctx, h.userID, domain.KeyFromTeamInvitation)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestHydrationFailureYieldsDefaultedSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// No profile rows exist yet; the session still starts with empty
	// defaults at step 1.
	sess, err := h.svc.StartSession(ctx, h.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPersonalInfo, sess.CurrentStep)
	assert.Equal(t, domain.Data{}, sess.Data)
}

func TestWrongStepRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.CompleteStep2(ctx, h.userID, profiledomain.RoleBusiness)
	assert.ErrorIs(t, err, domain.ErrWrongStep)

	_, err = h.svc.CompleteStep3(ctx, h.userID, domain.BusinessInfo{CompanyName: "X", BusinessAddress: "Y"})
	assert.ErrorIs(t, err, domain.ErrWrongStep)

	_, err = h.svc.SubmitPhoto(ctx, h.userID, "https://cdn.example/p.jpg")
	assert.ErrorIs(t, err, domain.ErrWrongStep)
}
