package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canstudy/tracker/internal/ai"
	"github.com/canstudy/tracker/internal/app"
	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/config"
	"github.com/canstudy/tracker/internal/db"
	"github.com/canstudy/tracker/internal/middleware"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/service"
	"github.com/canstudy/tracker/internal/storage"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

func (g *stubGenerator) Chat(context.Context, string, []ai.Message, string) (string, error) {
	return g.reply, g.err
}

type testServer struct {
	app     *app.App
	handler http.Handler
}

func newTestServer(t *testing.T, generator ai.Generator) *testServer {
	t.Helper()

	database, err := db.Open(db.DriverSQLite, ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cat, err := catalog.Load()
	require.NoError(t, err)

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		AppName:        "CanStudy Tracker",
		AppEnv:         "development",
		JWTSecret:      "test-secret",
		MetricsEnabled: true,
	}

	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	applicationRepo := repository.NewApplicationRepository(database)
	documentRepo := repository.NewDocumentRepository(database)
	financeRepo := repository.NewFinanceRepository(database)
	timelineRepo := repository.NewTimelineRepository(database)

	fileService := service.NewFileService(repository.NewFileRepository(database), local)
	documentService := service.NewDocumentService(documentRepo, fileService, cat)
	timelineService := service.NewTimelineService(timelineRepo, profileRepo)

	guides := fstest.MapFS{
		"study-permit.md": {Data: []byte("---\ntitle: Study Permit\norder: 1\n---\n\n# Apply online\n")},
	}

	a := &app.App{
		Cfg:         cfg,
		DB:          database,
		Catalog:     cat,
		AuthLimiter: middleware.NewRateLimiter(100, time.Minute),
		AuthService: service.NewAuthService(
			userRepo, repository.NewTokenRepository(database), documentService,
			cfg.JWTSecret, false, time.Hour, 24*time.Hour,
		),
		UserService:        service.NewUserService(userRepo, fileService),
		ProfileService:     service.NewProfileService(profileRepo),
		FileService:        fileService,
		ApplicationService: service.NewApplicationService(applicationRepo),
		DocumentService:    documentService,
		FinanceService:     service.NewFinanceService(financeRepo),
		TimelineService:    timelineService,
		SchoolService:      service.NewSchoolService(cat),
		GuideService:       service.NewGuideService(guides, false),
		AssistantService:   service.NewAssistantService(generator),
		DashboardService:   service.NewDashboardService(applicationRepo, documentRepo, financeRepo, timelineService),
	}

	return &testServer{app: a, handler: SetupRoutes(a)}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// signIn registers a masters student and returns a bearer token.
func (s *testServer) signIn(t *testing.T, email string) (*model.User, string) {
	t.Helper()
	user, _, err := s.app.AuthService.Register(service.RegisterInput{
		Email:      email,
		Password:   "secret123",
		DegreeType: model.DegreeMasters,
	})
	require.NoError(t, err)

	token, err := s.app.AuthService.GenerateJWT(user)
	require.NoError(t, err)
	return user, token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])

	rec = srv.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityAndRequestIDHeaders(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/schools", nil, "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decode(t, rec)["error"])
}

func TestRegisterLoginVerify(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/register", map[string]any{
		"email":      "Ada@Example.com",
		"password":   "secret123",
		"degreeType": "masters",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEmpty(t, body["userId"])
	verification, _ := body["verificationToken"].(string)
	require.NotEmpty(t, verification)

	t.Run("duplicate email", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/register", map[string]any{
			"email":      "ada@example.com",
			"password":   "secret123",
			"degreeType": "masters",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User already exists", decode(t, rec)["error"])
	})

	t.Run("invalid input", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/register", map[string]any{
			"email":      "not-an-email",
			"password":   "123",
			"degreeType": "diploma",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Invalid input", body["error"])
		details, ok := body["details"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, details, "email")
		assert.Contains(t, details, "password")
		assert.Contains(t, details, "degreeType")
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/login", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])
	})

	t.Run("login sets cookie", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/login", map[string]any{
			"email":    "ada@example.com",
			"password": "secret123",
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["token"])

		var session *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == service.AuthCookieName {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.True(t, session.HttpOnly)
	})

	t.Run("verify email once", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/verify-email?token="+verification, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		user := decode(t, rec)["user"].(map[string]any)
		assert.NotNil(t, user["emailVerifiedAt"])

		rec = srv.do(t, http.MethodGet, "/api/verify-email?token="+verification, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = srv.do(t, http.MethodGet, "/api/verify-email", nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/applications"},
		{http.MethodGet, "/api/documents"},
		{http.MethodGet, "/api/finances"},
		{http.MethodGet, "/api/timeline"},
		{http.MethodPost, "/api/chat"},
		{http.MethodPost, "/api/analyze-document"},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := srv.do(t, tc.method, tc.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	rec := srv.do(t, http.MethodGet, "/api/profile", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieSessionNeedsCSRFToken(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.signIn(t, "ada@example.com")
	session := &http.Cookie{Name: service.AuthCookieName, Value: token}

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	csrfToken := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, csrfToken)
	var csrfCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" {
			csrfCookie = c
		}
	}
	require.NotNil(t, csrfCookie)

	patch := func(header string) int {
		req := httptest.NewRequest(http.MethodPatch, "/api/profile", bytes.NewBufferString(`{"reminderDays":14}`))
		req.AddCookie(session)
		req.AddCookie(csrfCookie)
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, patch(""))
	assert.Equal(t, http.StatusOK, patch(csrfToken))
}

func TestLoginReturnsCSRFToken(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.signIn(t, "ada@example.com")

	rec := srv.do(t, http.MethodPost, "/api/login", map[string]any{
		"email":    "ada@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	csrfToken, _ := decode(t, rec)["csrfToken"].(string)
	require.NotEmpty(t, csrfToken)

	var session, csrfCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case service.AuthCookieName:
			session = c
		case "csrf_token":
			csrfCookie = c
		}
	}
	require.NotNil(t, session)
	require.NotNil(t, csrfCookie)
	assert.Equal(t, csrfCookie.Value, csrfToken)

	req := httptest.NewRequest(http.MethodPatch, "/api/profile", bytes.NewBufferString(`{"reminderDays":10}`))
	req.AddCookie(session)
	req.AddCookie(csrfCookie)
	req.Header.Set("X-CSRF-Token", csrfToken)
	patched := httptest.NewRecorder()
	srv.handler.ServeHTTP(patched, req)
	assert.Equal(t, http.StatusOK, patched.Code, patched.Body.String())
}

func TestProfileEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.signIn(t, "ada@example.com")

	rec := srv.do(t, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "ada", profile["name"])
	assert.Equal(t, "masters", profile["degreeType"])

	rec = srv.do(t, http.MethodPatch, "/api/profile", map[string]any{
		"name":            "Ada Lovelace",
		"defaultCurrency": "NGN",
		"intakeTerm":      "january",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile = decode(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "Ada Lovelace", profile["name"])
	assert.Equal(t, "NGN", profile["defaultCurrency"])

	rec = srv.do(t, http.MethodPatch, "/api/profile", map[string]any{"reminderDays": 90}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	t.Run("password", func(t *testing.T) {
		tests := []struct {
			name   string
			body   map[string]any
			status int
		}{
			{"mismatch", map[string]any{"currentPassword": "secret123", "newPassword": "newsecret1", "confirmPassword": "other1234"}, http.StatusBadRequest},
			{"wrong current", map[string]any{"currentPassword": "nope12345", "newPassword": "newsecret1", "confirmPassword": "newsecret1"}, http.StatusBadRequest},
			{"success", map[string]any{"currentPassword": "secret123", "newPassword": "newsecret1", "confirmPassword": "newsecret1"}, http.StatusOK},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				rec := srv.do(t, http.MethodPost, "/api/profile/password", tc.body, token)
				assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			})
		}
	})

	t.Run("delete account", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/profile", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = srv.do(t, http.MethodGet, "/api/profile", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestApplicationEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	_, ada := srv.signIn(t, "ada@example.com")
	_, bob := srv.signIn(t, "bob@example.com")

	input := map[string]any{
		"institutionName": "University of Toronto",
		"program":         "Computer Science",
		"level":           "masters",
		"city":            "Toronto",
		"province":        "ON",
		"applicationFee":  125,
		"deadline":        "2027-01-15",
	}

	rec := srv.do(t, http.MethodPost, "/api/applications", input, ada)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	application := decode(t, rec)["application"].(map[string]any)
	id := application["id"].(string)
	assert.Equal(t, "not_started", application["status"])

	rec = srv.do(t, http.MethodPost, "/api/applications", input, ada)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/applications/"+id, map[string]any{
		"status":      "submitted",
		"appliedDate": "2026-10-01",
	}, ada)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "submitted", decode(t, rec)["application"].(map[string]any)["status"])

	rec = srv.do(t, http.MethodPatch, "/api/applications/"+id, map[string]any{"status": "lost"}, ada)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/applications/"+id, map[string]any{"appliedDate": "yesterday"}, ada)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/applications/"+id, nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/applications", nil, ada)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["applications"], 1)

	rec = srv.do(t, http.MethodDelete, "/api/applications/"+id, nil, ada)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodDelete, "/api/applications/"+id, nil, ada)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocumentEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.signIn(t, "ada@example.com")

	rec := srv.do(t, http.MethodGet, "/api/documents", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	seeded := decode(t, rec)["documents"].([]any)
	require.NotEmpty(t, seeded)

	rec = srv.do(t, http.MethodPost, "/api/documents", map[string]any{"name": "Scholarship Letter", "category": "financial"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["document"].(map[string]any)["id"].(string)

	rec = srv.do(t, http.MethodPost, "/api/documents", map[string]any{"name": "Scholarship Letter"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	upload := func(filename string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+id+"/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("rejects disguised file", func(t *testing.T) {
		rec := upload("letter.pdf", []byte("just some plain text pretending to be a pdf"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["details"], "file")
	})

	t.Run("stores pdf", func(t *testing.T) {
		content := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")
		rec := upload("letter.pdf", content)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		document := decode(t, rec)["document"].(map[string]any)
		assert.Equal(t, "in_progress", document["status"])
		assert.Equal(t, "/api/documents/"+id+"/file", document["fileUrl"])

		rec = srv.do(t, http.MethodGet, "/api/documents/"+id+"/file", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, content, rec.Body.Bytes())
	})

	rec = srv.do(t, http.MethodPatch, "/api/documents/"+id, map[string]any{"status": "approved"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", decode(t, rec)["document"].(map[string]any)["status"])

	rec = srv.do(t, http.MethodDelete, "/api/documents/"+id, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/documents/"+id+"/file", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinanceEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.signIn(t, "ada@example.com")

	rec := srv.do(t, http.MethodPost, "/api/finances", map[string]any{
		"category":    "visa_fee",
		"description": "Study permit fee",
		"amount":      150,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	finance := decode(t, rec)["finance"].(map[string]any)
	assert.Equal(t, "CAD", finance["currency"])
	id := finance["id"].(string)

	rec = srv.do(t, http.MethodPost, "/api/finances", map[string]any{
		"category":    "tuition",
		"description": "Deposit",
		"amount":      74,
		"currency":    "usd",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/finances", map[string]any{
		"category":    "tuition",
		"description": "Deposit",
		"amount":      10,
		"currency":    "JPY",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/finances/"+id, map[string]any{"paid": true}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["finance"].(map[string]any)["paid"])

	rec = srv.do(t, http.MethodGet, "/api/finances", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["finances"], 2)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, "CAD", totals["currency"])
	assert.InDelta(t, 250.0, totals["total"], 0.001)
	assert.InDelta(t, 150.0, totals["paid"], 0.001)
	assert.InDelta(t, 100.0, totals["outstanding"], 0.001)

	rec = srv.do(t, http.MethodDelete, "/api/finances/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimelineEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	_, token := srv.signIn(t, "ada@example.com")

	rec := srv.do(t, http.MethodGet, "/api/timeline?season=january&year=2030", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "january", body["season"])
	assert.EqualValues(t, 2030, body["year"])
	assert.NotEmpty(t, body["milestones"])
	assert.NotNil(t, body["nextMilestone"])
	assert.EqualValues(t, 0, body["progress"])

	tests := []struct {
		name  string
		query string
	}{
		{"unknown season", "?season=winter"},
		{"non numeric year", "?year=soon"},
		{"year out of range", "?year=1999"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/timeline"+tc.query, nil, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec = srv.do(t, http.MethodPost, "/api/timeline", map[string]any{"title": "Submit University Applications", "completed": true}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	milestone := decode(t, rec)["milestone"].(map[string]any)
	assert.Equal(t, true, milestone["completed"])
	assert.Equal(t, "completed", milestone["status"])

	rec = srv.do(t, http.MethodPost, "/api/timeline", map[string]any{"title": "Learn to skate", "completed": true}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/dashboard", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode(t, rec)
	assert.Greater(t, dashboard["timelineProgress"], 0.0)
}

func TestPublicCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/schools?province=ON&sort=name", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	schools := decode(t, rec)["schools"].([]any)
	require.NotEmpty(t, schools)
	first := schools[0].(map[string]any)
	assert.Equal(t, "ON", first["province"])

	rec = srv.do(t, http.MethodGet, "/api/schools/"+first["id"].(string), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/schools/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/provinces", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/guides", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["guides"], 1)

	rec = srv.do(t, http.MethodGet, "/api/guides/study-permit", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	guide := decode(t, rec)["guide"].(map[string]any)
	assert.Contains(t, guide["html"], "<h1")

	rec = srv.do(t, http.MethodGet, "/api/guides/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/checklists", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "portOfEntry")
}

func TestCurrencyEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/currency", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body, "rates")
	assert.NotContains(t, body, "converted")

	rec = srv.do(t, http.MethodGet, "/api/currency?amount=100&to=usd", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "CAD", body["from"])
	assert.Equal(t, "USD", body["to"])
	assert.InDelta(t, 74.0, body["converted"], 0.001)
	assert.Equal(t, "$74", body["formatted"])

	for _, amount := range []string{"lots", "NaN", "Inf", "-Inf", "1e400"} {
		t.Run("rejects "+amount, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/currency?amount="+amount+"&from=USD&to=CAD", nil, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "amount must be a number", decode(t, rec)["error"])
		})
	}
}

func TestAssistantEndpoints(t *testing.T) {
	sop := "I have wanted to study computer science in Canada since I was twelve years old."

	tests := []struct {
		name      string
		generator ai.Generator
		path      string
		body      map[string]any
		status    int
		check     func(t *testing.T, body map[string]any)
	}{
		{
			name:      "analysis",
			generator: &stubGenerator{reply: "```json\n{\"score\": 140, \"feedback\": \"Strong\", \"strengths\": [\"clear\"]}\n```"},
			path:      "/api/analyze-document",
			body:      map[string]any{"documentText": sop, "documentType": "sop"},
			status:    http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				analysis := body["analysis"].(map[string]any)
				assert.EqualValues(t, 100, analysis["score"])
			},
		},
		{
			name:      "analysis too short",
			generator: &stubGenerator{},
			path:      "/api/analyze-document",
			body:      map[string]any{"documentText": "short", "documentType": "sop"},
			status:    http.StatusBadRequest,
		},
		{
			name:      "chat",
			generator: &stubGenerator{reply: "Book biometrics early."},
			path:      "/api/chat",
			body:      map[string]any{"message": "When should I do biometrics?"},
			status:    http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Book biometrics early.", body["response"])
			},
		},
		{
			name:      "blank message",
			generator: &stubGenerator{},
			path:      "/api/chat",
			body:      map[string]any{"message": "   "},
			status:    http.StatusBadRequest,
		},
		{
			name:      "quota",
			generator: &stubGenerator{err: ai.ErrQuota},
			path:      "/api/chat",
			body:      map[string]any{"message": "Hello"},
			status:    http.StatusTooManyRequests,
		},
		{
			name:   "not configured",
			path:   "/api/chat",
			body:   map[string]any{"message": "Hello"},
			status: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "AI service configuration error. Please contact support.", body["error"])
			},
		},
		{
			name:      "checklist falls back",
			generator: &stubGenerator{reply: "no list today"},
			path:      "/api/assistant/checklist",
			body:      map[string]any{"country": "Nigeria"},
			status:    http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Len(t, body["checklist"], len(service.FallbackChecklist))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.generator)
			_, token := srv.signIn(t, "ada@example.com")

			rec := srv.do(t, http.MethodPost, tc.path, tc.body, token)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.check != nil {
				tc.check(t, decode(t, rec))
			}
		})
	}
}

func TestAuthRateLimit(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.app.AuthLimiter = middleware.NewRateLimiter(2, time.Minute)
	srv.handler = SetupRoutes(srv.app)

	login := map[string]any{"email": "ada@example.com", "password": "secret123"}
	for range 2 {
		rec := srv.do(t, http.MethodPost, "/api/login", login, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := srv.do(t, http.MethodPost, "/api/login", login, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
