package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	authdomain "github.com/eventcrew/stagecrew/internal/auth/domain"
	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/observability/metrics"
	"github.com/eventcrew/stagecrew/internal/onboarding/domain"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
	"github.com/eventcrew/stagecrew/internal/ratelimit"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

const completeLockTTL = 30 * time.Second

type service struct {
	store    domain.Store
	profiles profiledomain.Service
	teams    teamdomain.Service
	users    authdomain.Service
	locker   *ratelimit.Locker
	metrics  *metrics.Metrics
	clock    clock.Clock
	log      *zap.Logger
}

// New constructs the onboarding wizard service.
func New(
	store domain.Store,
	profiles profiledomain.Service,
	teams teamdomain.Service,
	users authdomain.Service,
	locker *ratelimit.Locker,
	m *metrics.Metrics,
	clk clock.Clock,
	log *zap.Logger,
) domain.Service {
	return &service{
		store:    store,
		profiles: profiles,
		teams:    teams,
		users:    users,
		locker:   locker,
		metrics:  m,
		clock:    clk,
		log:      log.Named("onboarding.service"),
	}
}

func (s *service) StartSession(ctx context.Context, userID snowflake.ID) (*domain.Session, error) {
	step := s.currentStep(ctx, userID)
	isMember := s.reconcileMembership(ctx, userID)
	data := s.hydrateData(ctx, userID)

	return &domain.Session{
		CurrentStep:  step,
		IsTeamMember: isMember,
		Data:         data,
	}, nil
}

func (s *service) RecordInvitationOrigin(ctx context.Context, userID snowflake.ID) {
	if err := s.store.Set(ctx, userID, domain.KeyFromTeamInvitation, "true"); err != nil {
		s.log.Warn("seed membership flag", zap.Error(err))
	}
}

func (s *service) CompleteStep1(ctx context.Context, userID snowflake.ID, in domain.PersonalInfo) (*domain.Session, error) {
	step := s.currentStep(ctx, userID)
	if step != domain.StepPersonalInfo {
		return nil, domain.ErrWrongStep
	}
	isMember := s.cachedMembership(ctx, userID)

	_, err := s.profiles.SaveProfile(ctx, userID, profiledomain.ProfileInput{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		Address:     in.Address,
		LinkedinURL: in.LinkedinURL,
		WebsiteURL:  in.WebsiteURL,
	})
	if err != nil {
		return nil, err
	}

	// Team members never see role selection; the role is fixed to
	// personal as part of this step.
	if isMember {
		if err := s.profiles.SetRoleType(ctx, userID, profiledomain.RolePersonal); err != nil {
			return nil, err
		}
	}

	return s.advance(ctx, userID, step, domain.Advance{IsTeamMember: isMember})
}

func (s *service) CompleteStep2(ctx context.Context, userID snowflake.ID, role profiledomain.RoleType) (*domain.Session, error) {
	step := s.currentStep(ctx, userID)
	if step != domain.StepRoleSelection {
		return nil, domain.ErrWrongStep
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if err := s.profiles.SetRoleType(ctx, userID, role); err != nil {
		return nil, err
	}

	return s.advance(ctx, userID, step, domain.Advance{Role: role})
}

func (s *service) CompleteStep3(ctx context.Context, userID snowflake.ID, in domain.BusinessInfo) (*domain.Session, error) {
	step := s.currentStep(ctx, userID)
	if step != domain.StepBusinessDetails {
		return nil, domain.ErrWrongStep
	}

	_, err := s.profiles.SaveBusinessProfile(ctx, userID, profiledomain.BusinessProfileInput{
		CompanyName:     in.CompanyName,
		Position:        in.Position,
		BusinessAddress: in.BusinessAddress,
		NZBN:            in.NZBN,
		Description:     in.Description,
		ServiceAreas:    in.ServiceAreas,
		SocialLinks:     in.SocialLinks,
	})
	if err != nil {
		return nil, err
	}

	return s.advance(ctx, userID, step, domain.Advance{})
}

func (s *service) SubmitPhoto(ctx context.Context, userID snowflake.ID, photoURL string) (*domain.Session, error) {
	step := s.currentStep(ctx, userID)
	if step != domain.StepProfilePhoto {
		return nil, domain.ErrWrongStep
	}
	if photoURL == "" {
		return nil, domain.ErrPhotoRequired
	}

	if err := s.profiles.SetPhoto(ctx, userID, photoURL); err != nil {
		return nil, err
	}

	return s.advance(ctx, userID, step, domain.Advance{PhotoURL: photoURL})
}

func (s *service) Back(ctx context.Context, userID snowflake.ID) (*domain.Session, error) {
	step := s.currentStep(ctx, userID)
	isMember := s.cachedMembership(ctx, userID)

	prev := domain.Prev(step, isMember)
	if prev != step {
		if err := s.store.Set(ctx, userID, domain.KeyStep, prev.Encode()); err != nil {
			return nil, err
		}
	}

	return &domain.Session{
		CurrentStep:  prev,
		IsTeamMember: isMember,
		Data:         s.hydrateData(ctx, userID),
	}, nil
}

func (s *service) Complete(ctx context.Context, userID snowflake.ID) error {
	step := s.currentStep(ctx, userID)
	if step != domain.StepTutorial {
		return domain.ErrWrongStep
	}

	if s.locker != nil {
		token, ok, err := s.locker.TryLock(ctx, "onboarding:complete:"+userID.String(), completeLockTTL)
		if err == nil {
			if !ok {
				return nil
			}
			defer func() {
				if err := s.locker.Release(ctx, "onboarding:complete:"+userID.String(), token); err != nil {
					s.log.Warn("release completion lock", zap.Error(err))
				}
			}()
		}
	}

	isMember := s.cachedMembership(ctx, userID)

	// Mark the account first; a failure here leaves every wizard key
	// in place so a retry resumes at the tutorial step.
	if err := s.users.MarkOnboarded(ctx, userID); err != nil {
		return err
	}

	for _, key := range []string{domain.KeyStep, domain.KeyFromTeamInvitation, domain.KeyProfileCompletion} {
		if err := s.store.Delete(ctx, userID, key); err != nil {
			s.log.Warn("clear wizard key", zap.String("key", key), zap.Error(err))
		}
	}
	completedAt := s.clock.Now().UTC().Format(time.RFC3339)
	if err := s.store.Set(ctx, userID, domain.KeyJustCompleted, completedAt); err != nil {
		s.log.Warn("set completion marker", zap.Error(err))
	}

	s.metrics.RecordOnboardingCompleted(ctx, isMember)
	s.log.Info("onboarding completed",
		zap.String("user_id", userID.String()),
		zap.Bool("team_member", isMember),
	)
	return nil
}

func (s *service) Progress(ctx context.Context, userID snowflake.ID) (domain.Progress, error) {
	step := s.currentStep(ctx, userID)
	isMember := s.cachedMembership(ctx, userID)
	return domain.DisplayProgress(step, isMember), nil
}

// advance computes the next step and persists it before returning.
// A failed store write surfaces the error and leaves the step
// unchanged so the client retries the same step.
func (s *service) advance(ctx context.Context, userID snowflake.ID, step domain.Step, ev domain.Advance) (*domain.Session, error) {
	next, err := domain.Next(step, ev)
	if err != nil {
		return nil, err
	}
	if next.Valid() {
		if err := s.store.Set(ctx, userID, domain.KeyStep, next.Encode()); err != nil {
			return nil, err
		}
	}

	s.metrics.RecordOnboardingStep(ctx, step.String())

	return &domain.Session{
		CurrentStep:  next,
		IsTeamMember: ev.IsTeamMember || s.cachedMembership(ctx, userID),
		Data:         s.hydrateData(ctx, userID),
	}, nil
}

// currentStep reads the persisted step index. Store failures fall
// back to step 1 rather than blocking the wizard.
func (s *service) currentStep(ctx context.Context, userID snowflake.ID) domain.Step {
	raw, err := s.store.Get(ctx, userID, domain.KeyStep)
	if err != nil {
		s.log.Warn("read step index", zap.Error(err))
		return domain.StepPersonalInfo
	}
	return domain.ParseStep(raw)
}

func (s *service) cachedMembership(ctx context.Context, userID snowflake.ID) bool {
	raw, err := s.store.Get(ctx, userID, domain.KeyFromTeamInvitation)
	if err != nil {
		s.log.Warn("read membership flag", zap.Error(err))
		return false
	}
	return raw == "true"
}

// reconcileMembership runs the membership check against the team
// service, combines it with the cached flag, and re-persists the
// outcome.
func (s *service) reconcileMembership(ctx context.Context, userID snowflake.ID) bool {
	cached := s.cachedMembership(ctx, userID)

	var server *bool
	isMember, err := s.teams.IsTeamMember(ctx, userID)
	if err != nil {
		s.log.Warn("membership check failed", zap.Error(err))
	} else {
		server = &isMember
	}

	resolved := domain.ResolveTeamMembership(server, cached)
	if resolved {
		if err := s.store.Set(ctx, userID, domain.KeyFromTeamInvitation, "true"); err != nil {
			s.log.Warn("persist membership flag", zap.Error(err))
		}
	} else if server != nil && !*server {
		// cached is false whenever resolved is, so this only scrubs a
		// residual store value that did not decode to "true".
		if err := s.store.Delete(ctx, userID, domain.KeyFromTeamInvitation); err != nil {
			s.log.Warn("clear membership flag", zap.Error(err))
		}
	}
	return resolved
}

// hydrateData loads saved form data. Every failure falls back to the
// zero value; onboarding stays usable when prior data cannot load.
func (s *service) hydrateData(ctx context.Context, userID snowflake.ID) domain.Data {
	var data domain.Data

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if err != profiledomain.ErrNotFound {
			s.log.Warn("hydrate profile", zap.Error(err))
		}
	} else {
		data.PersonalInfo = domain.PersonalInfo{
			FirstName:   profile.FirstName,
			LastName:    profile.LastName,
			Phone:       profile.Phone,
			Address:     profile.Address,
			LinkedinURL: profile.LinkedinURL,
			WebsiteURL:  profile.WebsiteURL,
		}
		data.RoleType = profile.RoleType
		data.ProfilePhoto = profile.PhotoURL
	}

	business, err := s.profiles.GetBusinessProfile(ctx, userID)
	if err != nil {
		if err != profiledomain.ErrBusinessNotFound {
			s.log.Warn("hydrate business profile", zap.Error(err))
		}
		return data
	}

	var areas []string
	if len(business.ServiceAreas) > 0 {
		if err := json.Unmarshal(business.ServiceAreas, &areas); err != nil {
			s.log.Warn("decode service areas", zap.Error(err))
		}
	}
	data.BusinessInfo = domain.BusinessInfo{
		CompanyName:     business.CompanyName,
		Position:        business.Position,
		BusinessAddress: business.BusinessAddress,
		NZBN:            business.NZBN,
		Description:     business.Description,
		ServiceAreas:    areas,
		SocialLinks: profiledomain.SocialLinks{
			Website:   stringValue(business.SocialLinks, "website"),
			Facebook:  stringValue(business.SocialLinks, "facebook"),
			Instagram: stringValue(business.SocialLinks, "instagram"),
			Linkedin:  stringValue(business.SocialLinks, "linkedin"),
		},
	}
	return data
}

func stringValue(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
