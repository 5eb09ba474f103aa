package cmds

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
	"github.com/judgebase/judgebase-api/cmd/server/internal/session"
	"github.com/judgebase/judgebase-api/cmd/server/internal/testdb"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/config"
	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/otel"
	"github.com/judgebase/judgebase-api/internal/token"
	uploadmock "github.com/judgebase/judgebase-api/internal/upload/mock"
)

const (
	adminUsername = "admin"
	adminPassword = "i am a very secure password"
	cookieName    = "judgebase_session"
)

type ServerTestSuite struct {
	suite.Suite

	config       *config.Config
	db           *gorm.DB
	registry     *prometheus.Registry
	admins       *session.AdminAuthenticator
	photos       *uploadmock.MockUploader
	otelShutdown func(context.Context) error
	server       *httptest.Server
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	logger.InitSlog()

	s.config = &config.Config{
		Admin: &config.AdminConfig{
			Username:   adminUsername,
			Password:   adminPassword,
			SessionTTL: time.Hour,
		},
		Session: &config.SessionConfig{CookieName: cookieName},
		Token: &config.TokenConfig{
			Secret: "0123456789abcdef0123456789abcdef",
			TTL:    time.Hour,
		},
		Mail: &config.MailConfig{AppURL: "https://judgebase.test"},
		CORS: &config.CORSConfig{AllowedOrigins: []string{"https://judgebase.test"}},
	}

	s.db = testdb.New(s.T())

	s.registry = prometheus.NewRegistry()
	metrics.Register(s.registry)

	admins, err := session.NewAdminAuthenticator(adminUsername, adminPassword)
	s.Require().NoError(err, "failed to hash admin password")
	s.admins = admins

	shutdownOTel, err := otel.SetupOTelSDK(s.T().Context(), otel.ExporterNone, "test")
	s.Require().NoError(err, "could not setup otel")
	s.otelShutdown = shutdownOTel
}

func (s *ServerTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(`TRUNCATE judge_application, judge, hackathon,
		invitation, judging_interest, approval_run, admin_session CASCADE`).Error)

	ctrl := gomock.NewController(s.T())
	s.photos = uploadmock.NewMockUploader(ctrl)
	s.photos.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	s.photos.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()
	s.photos.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.photos.EXPECT().PresignedReadURL(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, _ time.Duration) (string, error) {
			return "https://photos.test/" + key, nil
		}).AnyTimes()

	engine, err := workflow.New(s.db, workflow.Deps{
		Photos: s.photos,
		AppURL: s.config.Mail.AppURL,
	})
	s.Require().NoError(err)

	e, err := buildRouter(s.config, routerDeps{
		engine:   engine,
		sessions: session.NewDBStore(s.db),
		admins:   s.admins,
		tokens:   token.NewIssuer(s.config.Token.Secret, s.config.Token.TTL),
		gatherer: s.registry,
	})
	s.Require().NoError(err, "failed to construct router")

	s.server = httptest.NewServer(e)
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServerTestSuite) TearDownSuite() {
	s.Require().NoError(s.otelShutdown(s.T().Context()))
}

type resp struct {
	header http.Header
	body   string
	code   int
}

func doRequest(t *testing.T, req *http.Request) *resp {
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "failed to send http request")
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err, "failed to read body")

	return &resp{header: res.Header, body: string(body), code: res.StatusCode}
}

type requestOption func(*http.Request)

func withCookie(value string) requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	}
}

func withBearer(value string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+value)
	}
}

func (s *ServerTestSuite) call(method, path string, payload any, opts ...requestOption) *resp {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = strings.NewReader(string(raw))
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err, "failed to construct http request")
	req.Header.Add("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	return doRequest(s.T(), req)
}

func decode[T any](s *ServerTestSuite, r *resp) T {
	var out T
	s.Require().NoError(json.Unmarshal([]byte(r.body), &out), "body: %s", r.body)
	return out
}

func unauthorizedBodyTester(t *testing.T, body map[string]any) {
	assert.Contains(t, body, "error", "contains error key")
	assert.Contains(t, body["error"], "Unauthorized")
}

func assertErrorBodyWithFields(t *testing.T, body map[string]any) {
	assert.Contains(t, body, "error", "contains error key")
	assert.Contains(t, body, "fields", "contains fields key")
}

// Logs in as the admin and returns the session cookie value
func (s *ServerTestSuite) adminSession() string {
	r := s.call(http.MethodPost, "/api/admin/login/", map[string]string{
		"username": adminUsername,
		"password": adminPassword,
	})
	s.Require().Equal(http.StatusOK, r.code, r.body)

	for _, c := range (&http.Response{Header: r.header}).Cookies() {
		if c.Name == cookieName {
			return c.Value
		}
	}
	s.FailNow("no session cookie set")
	return ""
}

func applicationPayload(name, email string) map[string]any {
	return map[string]any{
		"name":      name,
		"email":     email,
		"role":      "Staff Engineer",
		"company":   "Acme",
		"expertise": []string{"AI/ML", "Security"},
		"bio":       "Judged a lot of hackathons",
		"format":    "hybrid",
	}
}

func hackathonPayload(email string) map[string]any {
	return map[string]any{
		"organizerName":  "Olive Organizer",
		"organizerEmail": email,
		"organization":   "Hack Club",
		"name":           "Spring Hack",
		"description":    "48 hours of building",
		"startDate":      "2026-03-01T09:00:00Z",
		"endDate":        "2026-03-03T18:00:00Z",
		"platform":       "in_person",
		"domains":        []string{"AI/ML"},
		"judgesNeeded":   3,
	}
}

type approvedJudge struct {
	ID       string
	Slug     string
	Email    string
	Password string
}

// Submits and approves an application over the API
func (s *ServerTestSuite) approveJudge(cookie, name, email string) approvedJudge {
	r := s.call(http.MethodPost, "/api/applications/", applicationPayload(name, email))
	s.Require().Equal(http.StatusCreated, r.code, r.body)
	app := decode[map[string]any](s, r)

	r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/applications/%s/approve/", app["id"]),
		map[string]any{"featured": true, "badges": []string{"Mentor"}}, withCookie(cookie))
	s.Require().Equal(http.StatusOK, r.code, r.body)

	approval := decode[struct {
		Judge struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"judge"`
		GeneratedPassword string `json:"generatedPassword"`
	}](s, r)

	return approvedJudge{
		ID:       approval.Judge.ID,
		Slug:     approval.Judge.Slug,
		Email:    email,
		Password: approval.GeneratedPassword,
	}
}

// Submits and approves a hackathon, returning its id and organizer password
func (s *ServerTestSuite) approveHackathon(cookie, email string) (string, string) {
	r := s.call(http.MethodPost, "/api/hackathons/", hackathonPayload(email))
	s.Require().Equal(http.StatusCreated, r.code, r.body)
	h := decode[map[string]any](s, r)
	s.NotContains(h, "organizerEmail", "public view hides the organizer email")

	r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/hackathons/%s/approve/", h["id"]), nil, withCookie(cookie))
	s.Require().Equal(http.StatusOK, r.code, r.body)
	approval := decode[map[string]any](s, r)

	return h["id"].(string), approval["generatedPassword"].(string)
}

func (s *ServerTestSuite) login(role, email, password string) string {
	r := s.call(http.MethodPost, "/api/auth/"+role+"/", map[string]string{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, r.code, r.body)

	auth := decode[map[string]any](s, r)
	s.Require().Equal(true, auth["authenticated"], r.body)
	return auth["token"].(string)
}

func (s *ServerTestSuite) Test_Health() {
	r := s.call(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, r.code)
}

func (s *ServerTestSuite) Test_AdminSession() {
	tests := []struct {
		name           string
		username       string
		password       string
		expectedStatus int
	}{
		{name: "Valid", username: adminUsername, password: adminPassword, expectedStatus: http.StatusOK},
		{name: "WrongPassword", username: adminUsername, password: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "WrongUsername", username: "root", password: adminPassword, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			r := s.call(http.MethodPost, "/api/admin/login/", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			s.Equal(tt.expectedStatus, r.code, r.body)
		})
	}

	s.Run("MissingFields", func() {
		r := s.call(http.MethodPost, "/api/admin/login/", map[string]string{})
		s.Equal(http.StatusBadRequest, r.code)
		assertErrorBodyWithFields(s.T(), decode[map[string]any](s, r))
	})

	s.Run("CookieAttributes", func() {
		r := s.call(http.MethodPost, "/api/admin/login/", map[string]string{
			"username": adminUsername,
			"password": adminPassword,
		})
		s.Require().Equal(http.StatusOK, r.code)

		cookies := (&http.Response{Header: r.header}).Cookies()
		s.Require().Len(cookies, 1)
		s.True(cookies[0].HttpOnly)
		s.Equal(http.SameSiteLaxMode, cookies[0].SameSite)
		s.Equal(3600, cookies[0].MaxAge)
	})

	s.Run("SessionLifecycle", func() {
		r := s.call(http.MethodGet, "/api/admin/session/", nil)
		s.Equal(map[string]any{"authenticated": false}, decode[map[string]any](s, r))

		cookie := s.adminSession()

		r = s.call(http.MethodGet, "/api/admin/session/", nil, withCookie(cookie))
		s.Equal(map[string]any{"authenticated": true}, decode[map[string]any](s, r))

		r = s.call(http.MethodPost, "/api/admin/logout/", nil, withCookie(cookie))
		s.Equal(http.StatusOK, r.code)

		r = s.call(http.MethodGet, "/api/admin/session/", nil, withCookie(cookie))
		s.Equal(map[string]any{"authenticated": false}, decode[map[string]any](s, r))

		r = s.call(http.MethodGet, "/api/admin/stats/", nil, withCookie(cookie))
		s.Equal(http.StatusUnauthorized, r.code, "logged out cookie is rejected")
	})
}

func (s *ServerTestSuite) Test_AdminRoutesRequireSession() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/applications/"},
		{http.MethodGet, "/api/admin/hackathons/"},
		{http.MethodGet, "/api/admin/judges/"},
		{http.MethodGet, "/api/admin/approvals/incomplete/"},
		{http.MethodGet, "/api/admin/stats/"},
		{http.MethodPost, "/api/admin/applications/00000000-0000-0000-0000-000000000000/approve/"},
	} {
		s.Run(route.path, func() {
			r := s.call(route.method, route.path, nil, withCookie("forged"))
			s.Equal(http.StatusUnauthorized, r.code)
			unauthorizedBodyTester(s.T(), decode[map[string]any](s, r))
		})
	}
}

func (s *ServerTestSuite) Test_SubmitApplication() {
	tests := []struct {
		name           string
		payload        map[string]any
		expectedStatus int
		bodyTester     func(t *testing.T, body map[string]any)
	}{
		{
			name:           "Valid",
			payload:        applicationPayload("Jane Doe", "jane@example.com"),
			expectedStatus: http.StatusCreated,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "pending", body["status"])
				assert.Equal(t, "jane@example.com", body["email"])
			},
		},
		{
			name: "MissingBio",
			payload: func() map[string]any {
				p := applicationPayload("Jane Doe", "jane@example.com")
				delete(p, "bio")
				return p
			}(),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name:           "BadEmail",
			payload:        applicationPayload("Jane Doe", "not-an-email"),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name: "BlankName",
			payload: func() map[string]any {
				p := applicationPayload("   ", "jane@example.com")
				return p
			}(),
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			r := s.call(http.MethodPost, "/api/applications/", tt.payload)
			s.Equal(tt.expectedStatus, r.code, r.body)
			tt.bodyTester(s.T(), decode[map[string]any](s, r))
		})
	}
}

func (s *ServerTestSuite) Test_ApprovalFlow() {
	cookie := s.adminSession()

	judge := s.approveJudge(cookie, "Jane Doe", "jane@example.com")
	s.Equal("janedoe", judge.Slug)
	s.NotEmpty(judge.Password)

	s.Run("ApproveTwiceConflicts", func() {
		r := s.call(http.MethodGet, "/api/admin/applications/?status=approved", nil, withCookie(cookie))
		s.Require().Equal(http.StatusOK, r.code)
		apps := decode[[]map[string]any](s, r)
		s.Require().Len(apps, 1)

		r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/applications/%s/approve/", apps[0]["id"]),
			nil, withCookie(cookie))
		s.Equal(http.StatusConflict, r.code, r.body)
	})

	s.Run("SecondJaneGetsSuffix", func() {
		other := s.approveJudge(cookie, "Jane Doe", "jane.other@example.com")
		s.Equal("janedoe1", other.Slug)
	})

	s.Run("PublicDirectory", func() {
		r := s.call(http.MethodGet, "/api/judges/", nil)
		s.Require().Equal(http.StatusOK, r.code)
		judges := decode[[]map[string]any](s, r)
		s.Len(judges, 2)
		for _, j := range judges {
			s.NotContains(j, "email", "public view hides emails")
		}

		r = s.call(http.MethodGet, "/api/judges/featured/", nil)
		s.Require().Equal(http.StatusOK, r.code)
		s.Len(decode[[]map[string]any](s, r), 2)

		r = s.call(http.MethodGet, "/api/judges/janedoe/", nil)
		s.Require().Equal(http.StatusOK, r.code)
		s.Equal(judge.ID, decode[map[string]any](s, r)["id"])

		r = s.call(http.MethodGet, "/api/judges/nobody/", nil)
		s.Equal(http.StatusNotFound, r.code)

		r = s.call(http.MethodGet, "/api/judges/search/?q=security", nil)
		s.Require().Equal(http.StatusOK, r.code)
		s.Len(decode[[]map[string]any](s, r), 2)
	})

	s.Run("JudgeLogin", func() {
		r := s.call(http.MethodPost, "/api/auth/judge/", map[string]string{
			"email":    judge.Email,
			"password": "wrong password",
		})
		s.Require().Equal(http.StatusOK, r.code)
		s.Equal(map[string]any{"authenticated": false}, decode[map[string]any](s, r))

		bearer := s.login("judge", strings.ToUpper(judge.Email), judge.Password)

		r = s.call(http.MethodGet, "/api/portal/judge/me/", nil, withBearer(bearer))
		s.Require().Equal(http.StatusOK, r.code, r.body)
		s.Equal(judge.Email, decode[map[string]any](s, r)["email"])
	})

	s.Run("Stats", func() {
		r := s.call(http.MethodGet, "/api/admin/stats/", nil, withCookie(cookie))
		s.Require().Equal(http.StatusOK, r.code)
		stats := decode[map[string]any](s, r)
		s.InDelta(2, stats["approvedJudges"], 0)
		s.InDelta(2, stats["featuredJudges"], 0)
		s.InDelta(0, stats["pendingApplications"], 0)
	})
}

func (s *ServerTestSuite) Test_RejectAndReview() {
	cookie := s.adminSession()

	r := s.call(http.MethodPost, "/api/applications/", applicationPayload("Rex", "rex@example.com"))
	s.Require().Equal(http.StatusCreated, r.code)
	id := decode[map[string]any](s, r)["id"]

	r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/applications/%s/reject/", id), nil, withCookie(cookie))
	s.Require().Equal(http.StatusOK, r.code)
	s.Equal("rejected", decode[map[string]any](s, r)["status"])

	r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/applications/%s/review/", id), nil, withCookie(cookie))
	s.Require().Equal(http.StatusOK, r.code)
	s.Equal("pending", decode[map[string]any](s, r)["status"])

	r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/applications/%s/review/", id), nil, withCookie(cookie))
	s.Equal(http.StatusConflict, r.code, "only rejected applications go back to review")

	r = s.call(http.MethodGet, "/api/admin/applications/?status=bogus", nil, withCookie(cookie))
	s.Equal(http.StatusBadRequest, r.code)

	r = s.call(http.MethodGet, "/api/admin/applications/not-a-uuid/", nil, withCookie(cookie))
	s.Equal(http.StatusNotFound, r.code)
}

func (s *ServerTestSuite) Test_InvitationsAndInterest() {
	cookie := s.adminSession()

	judge := s.approveJudge(cookie, "Jane Doe", "jane@example.com")
	hackathonID, organizerPassword := s.approveHackathon(cookie, "olive@example.com")

	r := s.call(http.MethodPost, fmt.Sprintf("/api/admin/hackathons/%s/invite/", hackathonID),
		map[string]any{
			"judgeIds": []string{judge.ID, "not-a-uuid"},
			"message":  "Come judge with us",
		}, withCookie(cookie))
	s.Require().Equal(http.StatusOK, r.code, r.body)
	s.Equal(map[string]any{"successCount": float64(1), "failedCount": float64(0)}, decode[map[string]any](s, r))

	judgeToken := s.login("judge", judge.Email, judge.Password)

	r = s.call(http.MethodGet, "/api/portal/judge/invitations/", nil, withBearer(judgeToken))
	s.Require().Equal(http.StatusOK, r.code)
	invitations := decode[[]map[string]any](s, r)
	s.Require().Len(invitations, 1)
	s.Equal("pending", invitations[0]["status"])
	s.Equal(true, invitations[0]["emailSent"])

	s.Run("RespondToInvitation", func() {
		path := fmt.Sprintf("/api/portal/judge/invitations/%s/respond/", invitations[0]["id"])

		r := s.call(http.MethodPost, path, map[string]string{"status": "pending"}, withBearer(judgeToken))
		s.Equal(http.StatusBadRequest, r.code)

		r = s.call(http.MethodPost, path, map[string]string{"status": "accepted"}, withBearer(judgeToken))
		s.Require().Equal(http.StatusOK, r.code, r.body)
		s.Equal("accepted", decode[map[string]any](s, r)["status"])

		r = s.call(http.MethodPost, path, map[string]string{"status": "rejected"}, withBearer(judgeToken))
		s.Equal(http.StatusConflict, r.code)
	})

	s.Run("ExpressInterest", func() {
		r := s.call(http.MethodPost, "/api/portal/judge/interests/",
			map[string]string{"hackathonId": hackathonID, "message": "Happy to help"},
			withBearer(judgeToken))
		s.Require().Equal(http.StatusCreated, r.code, r.body)

		r = s.call(http.MethodPost, "/api/portal/judge/interests/",
			map[string]string{"hackathonId": hackathonID}, withBearer(judgeToken))
		s.Equal(http.StatusConflict, r.code)
	})

	organizerToken := s.login("organizer", "olive@example.com", organizerPassword)

	s.Run("OrganizerReviewsInterest", func() {
		r := s.call(http.MethodGet, "/api/portal/organizer/interests/", nil, withBearer(organizerToken))
		s.Require().Equal(http.StatusOK, r.code)
		interests := decode[[]map[string]any](s, r)
		s.Require().Len(interests, 1)
		s.Equal(judge.ID, interests[0]["judgeId"])
		s.Contains(interests[0], "judge")

		r = s.call(http.MethodPatch, fmt.Sprintf("/api/portal/organizer/interests/%s/", judge.ID),
			map[string]string{"status": "accepted"}, withBearer(organizerToken))
		s.Require().Equal(http.StatusOK, r.code, r.body)
		s.Equal("accepted", decode[map[string]any](s, r)["status"])
	})

	s.Run("WrongRole", func() {
		r := s.call(http.MethodGet, "/api/portal/organizer/interests/", nil, withBearer(judgeToken))
		s.Equal(http.StatusForbidden, r.code)

		r = s.call(http.MethodGet, "/api/portal/judge/invitations/", nil)
		s.Equal(http.StatusUnauthorized, r.code)
	})
}

func (s *ServerTestSuite) Test_InvitePendingHackathon() {
	cookie := s.adminSession()
	judge := s.approveJudge(cookie, "Jane Doe", "jane@example.com")

	r := s.call(http.MethodPost, "/api/hackathons/", hackathonPayload("olive@example.com"))
	s.Require().Equal(http.StatusCreated, r.code)
	id := decode[map[string]any](s, r)["id"]

	r = s.call(http.MethodPost, fmt.Sprintf("/api/admin/hackathons/%s/invite/", id),
		map[string]any{"judgeIds": []string{judge.ID}}, withCookie(cookie))
	s.Equal(http.StatusConflict, r.code, r.body)

	r = s.call(http.MethodGet, "/api/hackathons/", nil)
	s.Require().Equal(http.StatusOK, r.code)
	s.Empty(decode[[]map[string]any](s, r), "pending hackathons are not public")
}

func (s *ServerTestSuite) Test_ManageJudge() {
	cookie := s.adminSession()
	judge := s.approveJudge(cookie, "Jane Doe", "jane@example.com")
	path := fmt.Sprintf("/api/admin/judges/%s/", judge.ID)

	s.Run("Update", func() {
		r := s.call(http.MethodPatch, path, map[string]any{"name": "Jane Q. Doe", "featured": false},
			withCookie(cookie))
		s.Require().Equal(http.StatusOK, r.code, r.body)
		body := decode[map[string]any](s, r)
		s.Equal("Jane Q. Doe", body["name"])
		s.Equal(false, body["featured"])
		s.Equal("janedoe", body["slug"], "slug is stable")
	})

	s.Run("UpdateValidatesPresentFields", func() {
		for _, payload := range []map[string]any{
			{"name": "   "},
			{"badges": []string{""}},
			{"expertise": []string{}},
			{"status": "archived"},
		} {
			r := s.call(http.MethodPatch, path, payload, withCookie(cookie))
			s.Equal(http.StatusBadRequest, r.code, payload)
			assertErrorBodyWithFields(s.T(), decode[map[string]any](s, r))
		}

		r := s.call(http.MethodGet, "/api/judges/janedoe/", nil)
		s.Require().Equal(http.StatusOK, r.code)
		s.Equal("Jane Q. Doe", decode[map[string]any](s, r)["name"])
	})

	s.Run("FeaturedRequiresApproved", func() {
		r := s.call(http.MethodPatch, path, map[string]any{"status": "rejected", "featured": true},
			withCookie(cookie))
		s.Equal(http.StatusConflict, r.code, r.body)
	})

	s.Run("Photo", func() {
		photo := base64.StdEncoding.EncodeToString([]byte("\x89PNG fake image"))
		r := s.call(http.MethodPut, path+"photo/",
			map[string]string{"photo": photo, "contentType": "image/png"}, withCookie(cookie))
		s.Require().Equal(http.StatusOK, r.code, r.body)
		body := decode[map[string]any](s, r)
		s.Contains(body["key"], "photos/")
		s.Equal("https://photos.test/"+body["key"].(string), body["url"])

		r = s.call(http.MethodGet, "/api/judges/janedoe/", nil)
		s.Require().Equal(http.StatusOK, r.code)
		s.Equal(body["url"], decode[map[string]any](s, r)["photoUrl"])
	})

	s.Run("PhotoTooLarge", func() {
		big := base64.StdEncoding.EncodeToString(make([]byte, 1<<21+100))
		r := s.call(http.MethodPut, path+"photo/",
			map[string]string{"photo": big, "contentType": "image/png"}, withCookie(cookie))
		s.Equal(http.StatusBadRequest, r.code)
		assertErrorBodyWithFields(s.T(), decode[map[string]any](s, r))
	})

	s.Run("Delete", func() {
		r := s.call(http.MethodDelete, path, nil, withCookie(cookie))
		s.Equal(http.StatusNoContent, r.code)

		r = s.call(http.MethodGet, "/api/judges/janedoe/", nil)
		s.Equal(http.StatusNotFound, r.code)

		r = s.call(http.MethodDelete, path, nil, withCookie(cookie))
		s.Equal(http.StatusNotFound, r.code)
	})
}

func (s *ServerTestSuite) Test_Metrics() {
	r := s.call(http.MethodPost, "/api/admin/login/", map[string]string{
		"username": adminUsername,
		"password": "wrong",
	})
	s.Require().Equal(http.StatusUnauthorized, r.code)

	r = s.call(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, r.code)
	s.Contains(r.body, `judgebase_admin_logins_total{outcome="failure"}`)
}

func (s *ServerTestSuite) Test_CORS() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/api/judges/", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "https://judgebase.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	r := doRequest(s.T(), req)
	s.Equal("https://judgebase.test", r.header.Get("Access-Control-Allow-Origin"))
	s.Equal("true", r.header.Get("Access-Control-Allow-Credentials"))
}
