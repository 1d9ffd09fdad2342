package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventcrew/stagecrew/internal/cache"
	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/matching/domain"
	"github.com/eventcrew/stagecrew/internal/matching/repository"
	"github.com/eventcrew/stagecrew/internal/ratelimit"
)

type stubEngine struct {
	scores     map[domain.Component]float64
	scoreCalls int
	inquiryErr error
	err        error
}

func (e *stubEngine) Contractors(ctx context.Context, query url.Values) ([]domain.Contractor, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []domain.Contractor{{ID: "c-1", Name: "Stage & Sound Ltd"}}, nil
}

func (e *stubEngine) Score(ctx context.Context, component domain.Component, contractorID, eventID string) (float64, error) {
	if e.err != nil {
		return 0, e.err
	}
	e.scoreCalls++
	return e.scores[component], nil
}

func (e *stubEngine) Ranking(ctx context.Context, eventID string) ([]domain.RankingEntry, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []domain.RankingEntry{{ContractorID: "c-1", Rank: 1, Score: 0.9}}, nil
}

func (e *stubEngine) SubmitInquiry(ctx context.Context, userID string, in domain.InquiryInput) error {
	return e.inquiryErr
}

func newTestService(t *testing.T, engine *stubEngine) (domain.Service, domain.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Inquiry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.New(db)
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	limiter := &ratelimit.InquiryLimiter{}
	svc := New(engine, repo, cache.NewMatchScoreCache(time.Minute), limiter, node, nil, clk, zap.NewNop())
	return svc, repo
}

func TestComponentScoreBadges(t *testing.T) {
	engine := &stubEngine{scores: map[domain.Component]float64{
		domain.ComponentCompatibility: 0.85,
		domain.ComponentBudget:        0.7,
		domain.ComponentLocation:      0.3,
	}}
	svc, _ := newTestService(t, engine)
	ctx := context.Background()

	score, err := svc.ComponentScore(ctx, domain.ComponentCompatibility, "c-1", "e-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BadgeHigh, score.Badge)
	assert.NotEmpty(t, score.Recommendation)

	score, err = svc.ComponentScore(ctx, domain.ComponentBudget, "c-1", "e-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BadgeMedium, score.Badge)

	score, err = svc.ComponentScore(ctx, domain.ComponentLocation, "c-1", "e-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BadgeLow, score.Badge)
}

func TestComponentScoreCaching(t *testing.T) {
	engine := &stubEngine{scores: map[domain.Component]float64{
		domain.ComponentCompatibility: 0.9,
	}}
	svc, _ := newTestService(t, engine)
	ctx := context.Background()

	first, err := svc.ComponentScore(ctx, domain.ComponentCompatibility, "c-1", "e-1")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.ComponentScore(ctx, domain.ComponentCompatibility, "c-1", "e-1")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, engine.scoreCalls)
}

func TestUnknownComponent(t *testing.T) {
	svc, _ := newTestService(t, &stubEngine{})

	_, err := svc.ComponentScore(context.Background(), domain.Component("vibes"), "c-1", "")
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)
}

func TestEngineUnavailable(t *testing.T) {
	svc, _ := newTestService(t, &stubEngine{err: domain.ErrEngineUnavailable})
	ctx := context.Background()

	_, err := svc.Contractors(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)

	_, err = svc.Ranking(ctx, "e-1")
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestSubmitInquiry(t *testing.T) {
	engine := &stubEngine{}
	svc, repo := newTestService(t, engine)
	ctx := context.Background()
	userID := snowflake.ID(1001)

	_, err := svc.SubmitInquiry(ctx, userID, domain.InquiryInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInquiry)

	inquiry, err := svc.SubmitInquiry(ctx, userID, domain.InquiryInput{
		ContractorID: "c-1",
		Message:      "Are you free on the 14th?",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", inquiry.Status)

	recorded, err := repo.ListInquiries(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestSubmitInquiryEngineDown(t *testing.T) {
	engine := &stubEngine{inquiryErr: domain.ErrEngineUnavailable}
	svc, repo := newTestService(t, engine)
	ctx := context.Background()

	_, err := svc.SubmitInquiry(ctx, snowflake.ID(1001), domain.InquiryInput{ContractorID: "c-1"})
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)

	recorded, err := repo.ListInquiries(ctx, snowflake.ID(1001))
	require.NoError(t, err)
	assert.Empty(t, recorded)
}
