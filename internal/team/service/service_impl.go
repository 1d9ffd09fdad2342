package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/team/domain"
	"github.com/eventcrew/stagecrew/pkg/db"
)

const inviteTTL = 14 * 24 * time.Hour

type service struct {
	repo  domain.Repository
	node  *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

// New constructs the team service.
func New(repo domain.Repository, node *snowflake.Node, clk clock.Clock, log *zap.Logger) domain.Service {
	return &service{
		repo:  repo,
		node:  node,
		clock: clk,
		log:   log.Named("team.service"),
	}
}

func (s *service) IsTeamMember(ctx context.Context, userID snowflake.ID) (bool, error) {
	return s.repo.MemberExists(ctx, userID)
}

func (s *service) InviteMembers(ctx context.Context, ownerUserID snowflake.ID, invites []domain.InviteInput) ([]domain.Invitation, error) {
	now := s.clock.Now()
	created := make([]domain.Invitation, 0, len(invites))

	for _, in := range invites {
		email, err := normalizeEmail(in.Email)
		if err != nil {
			return nil, domain.ErrInvalidInviteEmail
		}
		role := in.Role
		if role == "" {
			role = domain.RoleMember
		}
		if !role.Valid() || role == domain.RoleOwner {
			return nil, domain.ErrInvalidRole
		}

		code, err := newInviteCode()
		if err != nil {
			return nil, err
		}

		invite := domain.Invitation{
			ID:          s.node.Generate(),
			OwnerUserID: ownerUserID,
			Email:       email,
			Role:        role,
			Code:        code,
			ExpiresAt:   now.Add(inviteTTL),
			CreatedAt:   now,
		}
		if err := s.repo.CreateInvitation(ctx, &invite); err != nil {
			return nil, err
		}
		s.log.Info("invitation created",
			zap.String("owner_user_id", ownerUserID.String()),
			zap.String("email", email),
		)
		created = append(created, invite)
	}

	return created, nil
}

func (s *service) AcceptInvite(ctx context.Context, userID snowflake.ID, code string) (*domain.Member, error) {
	invite, err := s.repo.FindInvitationByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if invite.AcceptedAt != nil {
		return nil, domain.ErrInviteUsed
	}
	if now.After(invite.ExpiresAt) {
		return nil, domain.ErrInviteExpired
	}

	member := &domain.Member{
		ID:           s.node.Generate(),
		OwnerUserID:  invite.OwnerUserID,
		MemberUserID: userID,
		Role:         invite.Role,
		InvitationID: &invite.ID,
		CreatedAt:    now,
	}
	if err := s.repo.CreateMember(ctx, member); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, err
	}

	if err := s.repo.MarkInvitationAccepted(ctx, invite.ID, now); err != nil {
		s.log.Warn("mark invitation accepted", zap.Error(err))
	}
	return member, nil
}

func (s *service) ListMembers(ctx context.Context, ownerUserID snowflake.ID) ([]domain.Member, error) {
	return s.repo.ListMembers(ctx, ownerUserID)
}

func (s *service) RemoveMember(ctx context.Context, ownerUserID, memberID snowflake.ID) error {
	member, err := s.repo.FindMember(ctx, memberID)
	if err != nil {
		return err
	}
	if member.OwnerUserID != ownerUserID {
		return domain.ErrForbidden
	}
	return s.repo.DeleteMember(ctx, memberID)
}

func (s *service) PruneExpiredInvitations(ctx context.Context) (int64, error) {
	pruned, err := s.repo.DeleteExpiredInvitations(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if pruned > 0 {
		s.log.Info("pruned expired invitations", zap.Int64("count", pruned))
	}
	return pruned, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

func newInviteCode() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
