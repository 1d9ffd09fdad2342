package service

import (
	"context"
	"encoding/json"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/profile/domain"
	refdomain "github.com/eventcrew/stagecrew/internal/reference/domain"
)

type service struct {
	repo    domain.Repository
	regions refdomain.Repository
	clock   clock.Clock
	log     *zap.Logger
}

// New constructs the profile service.
func New(repo domain.Repository, regions refdomain.Repository, clk clock.Clock, log *zap.Logger) domain.Service {
	return &service{
		repo:    repo,
		regions: regions,
		clock:   clk,
		log:     log.Named("profile.service"),
	}
}

func (s *service) GetProfile(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	return s.repo.FindProfile(ctx, userID)
}

func (s *service) SaveProfile(ctx context.Context, userID snowflake.ID, in domain.ProfileInput) (*domain.Profile, error) {
	if in.FirstName == "" || in.LastName == "" || in.Phone == "" || in.Address == "" {
		return nil, domain.ErrMissingRequired
	}

	now := s.clock.Now()
	profile := &domain.Profile{
		UserID:      userID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		Address:     in.Address,
		LinkedinURL: in.LinkedinURL,
		WebsiteURL:  in.WebsiteURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.repo.FindProfile(ctx, userID)
}

func (s *service) SetRoleType(ctx context.Context, userID snowflake.ID, role domain.RoleType) error {
	if !role.Valid() {
		return domain.ErrInvalidRoleType
	}
	return s.repo.UpdateRoleType(ctx, userID, role)
}

func (s *service) SetPhoto(ctx context.Context, userID snowflake.ID, photoURL string) error {
	if photoURL == "" {
		return domain.ErrMissingRequired
	}
	return s.repo.UpdatePhotoURL(ctx, userID, photoURL)
}

func (s *service) GetBusinessProfile(ctx context.Context, userID snowflake.ID) (*domain.BusinessProfile, error) {
	return s.repo.FindBusinessProfile(ctx, userID)
}

func (s *service) SaveBusinessProfile(ctx context.Context, userID snowflake.ID, in domain.BusinessProfileInput) (*domain.BusinessProfile, error) {
	if in.CompanyName == "" || in.BusinessAddress == "" {
		return nil, domain.ErrMissingRequired
	}
	if in.NZBN != "" && !validNZBN(in.NZBN) {
		return nil, domain.ErrInvalidNZBN
	}
	if err := s.validateServiceAreas(ctx, in.ServiceAreas); err != nil {
		return nil, err
	}

	areas, err := json.Marshal(in.ServiceAreas)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	profile := &domain.BusinessProfile{
		UserID:          userID,
		CompanyName:     in.CompanyName,
		Position:        in.Position,
		BusinessAddress: in.BusinessAddress,
		NZBN:            in.NZBN,
		Description:     in.Description,
		ServiceAreas:    datatypes.JSON(areas),
		SocialLinks: datatypes.JSONMap{
			"website":   in.SocialLinks.Website,
			"facebook":  in.SocialLinks.Facebook,
			"instagram": in.SocialLinks.Instagram,
			"linkedin":  in.SocialLinks.Linkedin,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.UpsertBusinessProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.repo.FindBusinessProfile(ctx, userID)
}

func (s *service) validateServiceAreas(ctx context.Context, areas []string) error {
	if len(areas) == 0 {
		return nil
	}
	known, err := s.regions.RegionCodes(ctx)
	if err != nil {
		// Reference-data lookups never block a profile save.
		s.log.Warn("region lookup failed", zap.Error(err))
		return nil
	}
	for _, area := range areas {
		if _, ok := known[area]; !ok {
			return domain.ErrUnknownServiceArea
		}
	}
	return nil
}

func validNZBN(nzbn string) bool {
	if len(nzbn) != 13 {
		return false
	}
	for _, ch := range nzbn {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
