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

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/team/domain"
	"github.com/eventcrew/stagecrew/internal/team/repository"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Member{}, &domain.Invitation{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(repository.New(db), node, clk, zap.NewNop()), clk
}

func TestInviteAndAccept(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(100)
	joiner := snowflake.ID(200)

	invites, err := svc.InviteMembers(ctx, owner, []domain.InviteInput{
		{Email: "Tane@Example.co.nz", Role: domain.RoleMember},
	})
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "tane@example.co.nz", invites[0].Email)
	assert.NotEmpty(t, invites[0].Code)

	member, err := svc.AcceptInvite(ctx, joiner, invites[0].Code)
	require.NoError(t, err)
	assert.Equal(t, owner, member.OwnerUserID)
	assert.Equal(t, joiner, member.MemberUserID)

	isMember, err := svc.IsTeamMember(ctx, joiner)
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = svc.IsTeamMember(ctx, owner)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestAcceptInviteTwice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	invites, err := svc.InviteMembers(ctx, snowflake.ID(100), []domain.InviteInput{
		{Email: "a@b.co.nz"},
	})
	require.NoError(t, err)

	_, err = svc.AcceptInvite(ctx, snowflake.ID(200), invites[0].Code)
	require.NoError(t, err)

	_, err = svc.AcceptInvite(ctx, snowflake.ID(300), invites[0].Code)
	assert.ErrorIs(t, err, domain.ErrInviteUsed)
}

func TestAcceptExpiredInvite(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	invites, err := svc.InviteMembers(ctx, snowflake.ID(100), []domain.InviteInput{
		{Email: "a@b.co.nz"},
	})
	require.NoError(t, err)

	clk.Advance(15 * 24 * time.Hour)
	_, err = svc.AcceptInvite(ctx, snowflake.ID(200), invites[0].Code)
	assert.ErrorIs(t, err, domain.ErrInviteExpired)
}

func TestInviteValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.InviteMembers(ctx, snowflake.ID(100), []domain.InviteInput{
		{Email: "not-an-email"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInviteEmail)

	_, err = svc.InviteMembers(ctx, snowflake.ID(100), []domain.InviteInput{
		{Email: "a@b.co.nz", Role: domain.RoleOwner},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRemoveMember(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(100)

	invites, err := svc.InviteMembers(ctx, owner, []domain.InviteInput{{Email: "a@b.co.nz"}})
	require.NoError(t, err)
	member, err := svc.AcceptInvite(ctx, snowflake.ID(200), invites[0].Code)
	require.NoError(t, err)

	// Only the owning account may remove members.
	err = svc.RemoveMember(ctx, snowflake.ID(999), member.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.RemoveMember(ctx, owner, member.ID))

	members, err := svc.ListMembers(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestPruneExpiredInvitations(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	_, err := svc.InviteMembers(ctx, snowflake.ID(100), []domain.InviteInput{
		{Email: "a@b.co.nz"},
		{Email: "c@d.co.nz"},
	})
	require.NoError(t, err)

	pruned, err := svc.PruneExpiredInvitations(ctx)
	require.NoError(t, err)
	assert.Zero(t, pruned)

	clk.Advance(15 * 24 * time.Hour)
	pruned, err = svc.PruneExpiredInvitations(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pruned)
}
