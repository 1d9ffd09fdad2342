// Package scheduler runs periodic maintenance: pruning expired team
// invitations and sweeping stale onboarding progress.
package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/eventcrew/stagecrew/internal/clock"
	onboardingdomain "github.com/eventcrew/stagecrew/internal/onboarding/domain"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

var ErrInvalidConfig = errors.New("scheduler requires log, team service, store and clock")

// Sweeper is implemented by stores that need an explicit expiry pass.
// The redis store expires keys natively and does not implement it.
type Sweeper interface {
	SweepExpired(ctx context.Context) int
}

// Config controls the scheduler loop.
type Config struct {
	RunInterval time.Duration
	JobTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		RunInterval: time.Hour,
		JobTimeout:  time.Minute,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}

type Params struct {
	fx.In

	Log     *zap.Logger
	TeamSvc teamdomain.Service
	Store   onboardingdomain.Store
	Clock   clock.Clock
	Config  Config `optional:"true"`
}

type Scheduler struct {
	log     *zap.Logger
	cfg     Config
	teamSvc teamdomain.Service
	store   onboardingdomain.Store
	clock   clock.Clock
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.TeamSvc == nil || p.Store == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:     p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:     p.Config.withDefaults(),
		teamSvc: p.TeamSvc,
		store:   p.Store,
		clock:   p.Clock,
	}, nil
}

// RunForever ticks until the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single maintenance pass.
func (s *Scheduler) RunOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	if pruned, err := s.teamSvc.PruneExpiredInvitations(ctx); err != nil {
		s.log.Warn("prune invitations", zap.Error(err))
	} else if pruned > 0 {
		s.log.Info("invitations pruned", zap.Int64("count", pruned))
	}

	if sweeper, ok := s.store.(Sweeper); ok {
		if swept := sweeper.SweepExpired(ctx); swept > 0 {
			s.log.Info("onboarding progress swept", zap.Int("count", swept))
		}
	}
}
