package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/eventcrew/stagecrew/internal/auth/domain"
	"github.com/eventcrew/stagecrew/internal/auth/session"
	matchingdomain "github.com/eventcrew/stagecrew/internal/matching/domain"
	onboardingdomain "github.com/eventcrew/stagecrew/internal/onboarding/domain"
	profiledomain "github.com/eventcrew/stagecrew/internal/profile/domain"
	teamdomain "github.com/eventcrew/stagecrew/internal/team/domain"
)

const testUserID = snowflake.ID(42)

type fakeAuthService struct {
	user        *authdomain.User
	loginResult *authdomain.LoginResult
	loginCalls  int
	logoutCalls int
	authErr     error
}

func (f *fakeAuthService) Signup(ctx context.Context, in authdomain.SignupInput) (*authdomain.User, error) {
	_ = ctx
	return &authdomain.User{ID: testUserID, Email: in.Email, DisplayName: in.DisplayName}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, in authdomain.LoginInput) (*authdomain.LoginResult, error) {
	f.loginCalls++
	_ = ctx
	_ = in
	if f.loginResult != nil {
		return f.loginResult, nil
	}
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	f.logoutCalls++
	_ = ctx
	_ = token
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (*authdomain.User, error) {
	_ = ctx
	_ = token
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.user, nil
}

func (f *fakeAuthService) MarkOnboarded(ctx context.Context, userID snowflake.ID) error {
	_ = ctx
	_ = userID
	return nil
}

type fakeOnboardingService struct {
	sess          *onboardingdomain.Session
	err           error
	completeCalls int
	originCalls   int
	lastUserID    snowflake.ID
}

func (f *fakeOnboardingService) RecordInvitationOrigin(ctx context.Context, userID snowflake.ID) {
	_ = ctx
	f.originCalls++
	f.lastUserID = userID
}

func (f *fakeOnboardingService) StartSession(ctx context.Context, userID snowflake.ID) (*onboardingdomain.Session, error) {
	_ = ctx
	f.lastUserID = userID
	return f.sess, f.err
}

func (f *fakeOnboardingService) CompleteStep1(ctx context.Context, userID snowflake.ID, in onboardingdomain.PersonalInfo) (*onboardingdomain.Session, error) {
	_ = ctx
	_ = in
	f.lastUserID = userID
	return f.sess, f.err
}

func (f *fakeOnboardingService) CompleteStep2(ctx context.Context, userID snowflake.ID, role profiledomain.RoleType) (*onboardingdomain.Session, error) {
	_ = ctx
	_ = role
	f.lastUserID = userID
	return f.sess, f.err
}

func (f *fakeOnboardingService) CompleteStep3(ctx context.Context, userID snowflake.ID, in onboardingdomain.BusinessInfo) (*onboardingdomain.Session, error) {
	_ = ctx
	_ = in
	f.lastUserID = userID
	return f.sess, f.err
}

func (f *fakeOnboardingService) SubmitPhoto(ctx context.Context, userID snowflake.ID, photoURL string) (*onboardingdomain.Session, error) {
	_ = ctx
	_ = photoURL
	f.lastUserID = userID
	return f.sess, f.err
}

func (f *fakeOnboardingService) Back(ctx context.Context, userID snowflake.ID) (*onboardingdomain.Session, error) {
	_ = ctx
	f.lastUserID = userID
	return f.sess, f.err
}

func (f *fakeOnboardingService) Complete(ctx context.Context, userID snowflake.ID) error {
	_ = ctx
	f.completeCalls++
	f.lastUserID = userID
	return f.err
}

func (f *fakeOnboardingService) Progress(ctx context.Context, userID snowflake.ID) (onboardingdomain.Progress, error) {
	_ = ctx
	f.lastUserID = userID
	return onboardingdomain.Progress{Current: 2, Total: 5}, f.err
}

type fakeTeamService struct {
	isMember bool
	err      error
}

func (f *fakeTeamService) IsTeamMember(ctx context.Context, userID snowflake.ID) (bool, error) {
	_ = ctx
	_ = userID
	return f.isMember, f.err
}

func (f *fakeTeamService) InviteMembers(ctx context.Context, ownerUserID snowflake.ID, invites []teamdomain.InviteInput) ([]teamdomain.Invitation, error) {
	_ = ctx
	_ = ownerUserID
	_ = invites
	return nil, f.err
}

func (f *fakeTeamService) AcceptInvite(ctx context.Context, userID snowflake.ID, code string) (*teamdomain.Member, error) {
	_ = ctx
	_ = userID
	_ = code
	if f.err != nil {
		return nil, f.err
	}
	return &teamdomain.Member{MemberUserID: userID}, nil
}

func (f *fakeTeamService) ListMembers(ctx context.Context, ownerUserID snowflake.ID) ([]teamdomain.Member, error) {
	_ = ctx
	_ = ownerUserID
	return nil, f.err
}

func (f *fakeTeamService) RemoveMember(ctx context.Context, ownerUserID, memberID snowflake.ID) error {
	_ = ctx
	_ = ownerUserID
	_ = memberID
	return f.err
}

func (f *fakeTeamService) PruneExpiredInvitations(ctx context.Context) (int64, error) {
	_ = ctx
	return 0, f.err
}

type fakeMatchingService struct {
	score *matchingdomain.Score
	err   error
}

func (f *fakeMatchingService) Contractors(ctx context.Context, query url.Values) ([]matchingdomain.Contractor, error) {
	_ = ctx
	_ = query
	return nil, f.err
}

func (f *fakeMatchingService) ComponentScore(ctx context.Context, component matchingdomain.Component, contractorID, eventID string) (*matchingdomain.Score, error) {
	_ = ctx
	_ = component
	_ = contractorID
	_ = eventID
	return f.score, f.err
}

func (f *fakeMatchingService) Ranking(ctx context.Context, eventID string) ([]matchingdomain.RankingEntry, error) {
	_ = ctx
	_ = eventID
	return nil, f.err
}

func (f *fakeMatchingService) SubmitInquiry(ctx context.Context, userID snowflake.ID, in matchingdomain.InquiryInput) (*matchingdomain.Inquiry, error) {
	_ = ctx
	if f.err != nil {
		return nil, f.err
	}
	return &matchingdomain.Inquiry{UserID: userID, ContractorID: in.ContractorID}, nil
}

func newTestServer(authsvc authdomain.Service, onboarding onboardingdomain.Service, teamSvc teamdomain.Service, matchingSvc matchingdomain.Service) *Server {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:        r,
		authsvc:       authsvc,
		sessions:      session.NewManager(false),
		onboardingSvc: onboarding,
		teamSvc:       teamSvc,
		matchingSvc:   matchingSvc,
	}
	srv.registerAuthRoutes()
	srv.registerAPIRoutes()
	return srv
}

func newBody(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, newBody(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: "_sid", Value: "session-token"})
	return req
}
