package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	matchingdomain "github.com/eventcrew/stagecrew/internal/matching/domain"
)

func TestComponentScoreEndpoint(t *testing.T) {
	matchingSvc := &fakeMatchingService{
		score: &matchingdomain.Score{
			Component:    matchingdomain.ComponentBudget,
			ContractorID: "c-1",
			Value:        0.91,
			Badge:        matchingdomain.BadgeHigh,
		},
	}
	srv := newTestServer(&fakeAuthService{user: authedUser()}, &fakeOnboardingService{}, &fakeTeamService{}, matchingSvc)

	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/matching/budget?contractor_id=c-1", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body matchingdomain.Score
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Badge != matchingdomain.BadgeHigh {
		t.Fatalf("expected high badge, got %q", body.Badge)
	}
}

func TestComponentScoreRequiresContractorID(t *testing.T) {
	srv := newTestServer(&fakeAuthService{user: authedUser()}, &fakeOnboardingService{}, &fakeTeamService{}, &fakeMatchingService{})

	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/matching/location", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestInquiryRateLimitedReturns429(t *testing.T) {
	matchingSvc := &fakeMatchingService{err: matchingdomain.ErrInquiryRateLimit}
	srv := newTestServer(&fakeAuthService{user: authedUser()}, &fakeOnboardingService{}, &fakeTeamService{}, matchingSvc)

	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/matching/inquiry", `{"contractor_id":"c-1","message":"availability?"}`))

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", resp.Code)
	}
}

func TestEngineDownReturns503(t *testing.T) {
	matchingSvc := &fakeMatchingService{err: matchingdomain.ErrEngineUnavailable}
	srv := newTestServer(&fakeAuthService{user: authedUser()}, &fakeOnboardingService{}, &fakeTeamService{}, matchingSvc)

	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/matching/contractors", ""))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestTeamMembershipCheckPayload(t *testing.T) {
	srv := newTestServer(&fakeAuthService{user: authedUser()}, &fakeOnboardingService{}, &fakeTeamService{isMember: true}, &fakeMatchingService{})

	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/team-members/check", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		IsTeamMember bool `json:"isTeamMember"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.IsTeamMember {
		t.Fatal("expected isTeamMember true")
	}
}
