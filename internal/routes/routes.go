package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canstudy/tracker/internal/app"
	"github.com/canstudy/tracker/internal/handler"
	"github.com/canstudy/tracker/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	profile := handler.NewProfileHandler(app.ProfileService, app.UserService, app.AuthService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	applications := handler.NewApplicationHandler(app.ApplicationService)
	documents := handler.NewDocumentHandler(app.DocumentService)
	finances := handler.NewFinanceHandler(app.FinanceService)
	timeline := handler.NewTimelineHandler(app.TimelineService)
	schools := handler.NewSchoolHandler(app.SchoolService)
	guides := handler.NewGuideHandler(app.GuideService, app.Catalog)
	assistant := handler.NewAssistantHandler(app.AssistantService)

	mux := http.NewServeMux()

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/schools", schools.Schools)
	mux.HandleFunc("GET /api/schools/{id}", schools.School)
	mux.HandleFunc("GET /api/provinces", schools.Provinces)
	mux.HandleFunc("GET /api/currency", handler.Currency)
	mux.HandleFunc("GET /api/currencies", handler.Currencies)
	mux.HandleFunc("GET /api/guides", guides.Guides)
	mux.HandleFunc("GET /api/guides/{slug}", guides.Guide)
	mux.HandleFunc("GET /api/checklists", guides.Checklists)

	// Auth (rate limited)
	rateLimit := middleware.RateLimit(app.AuthLimiter)

	mux.HandleFunc("POST /api/register", rateLimit(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("POST /api/login", rateLimit(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("GET /api/verify-email", auth.VerifyEmail)
	mux.HandleFunc("POST /api/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("GET /api/dashboard", middleware.RequireAuth(dashboard.Dashboard))

	// Profile & Account
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Profile))
	mux.HandleFunc("PATCH /api/profile", middleware.RequireAuth(profile.UpdateProfile))
	mux.HandleFunc("DELETE /api/profile", middleware.RequireAuth(profile.DeleteAccount))
	mux.HandleFunc("POST /api/profile/password", middleware.RequireAuth(profile.UpdatePassword))

	// Applications
	mux.HandleFunc("GET /api/applications", middleware.RequireAuth(applications.Applications))
	mux.HandleFunc("POST /api/applications", middleware.RequireAuth(applications.CreateApplication))
	mux.HandleFunc("PATCH /api/applications/{id}", middleware.RequireAuth(applications.UpdateApplication))
	mux.HandleFunc("DELETE /api/applications/{id}", middleware.RequireAuth(applications.DeleteApplication))

	// Documents
	mux.HandleFunc("GET /api/documents", middleware.RequireAuth(documents.Documents))
	mux.HandleFunc("POST /api/documents", middleware.RequireAuth(documents.CreateDocument))
	mux.HandleFunc("PATCH /api/documents/{id}", middleware.RequireAuth(documents.UpdateDocument))
	mux.HandleFunc("DELETE /api/documents/{id}", middleware.RequireAuth(documents.DeleteDocument))
	mux.HandleFunc("POST /api/documents/{id}/upload", middleware.RequireAuth(documents.Upload))
	mux.HandleFunc("GET /api/documents/{id}/file", middleware.RequireAuth(documents.File))

	// Finances
	mux.HandleFunc("GET /api/finances", middleware.RequireAuth(finances.Finances))
	mux.HandleFunc("POST /api/finances", middleware.RequireAuth(finances.CreateFinance))
	mux.HandleFunc("PATCH /api/finances/{id}", middleware.RequireAuth(finances.UpdateFinance))
	mux.HandleFunc("DELETE /api/finances/{id}", middleware.RequireAuth(finances.DeleteFinance))

	// Timeline
	mux.HandleFunc("GET /api/timeline", middleware.RequireAuth(timeline.Timeline))
	mux.HandleFunc("POST /api/timeline", middleware.RequireAuth(timeline.SetCompleted))

	// Assistant
	mux.HandleFunc("POST /api/analyze-document", middleware.RequireAuth(assistant.AnalyzeDocument))
	mux.HandleFunc("POST /api/chat", middleware.RequireAuth(assistant.Chat))
	mux.HandleFunc("POST /api/assistant/checklist", middleware.RequireAuth(assistant.Checklist))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for HSTS)
		middleware.RequestID,
		middleware.SecurityHeaders,
		middleware.CSRFProtection, // CSRF protection for cookie-authenticated state changes
		middleware.AuthMiddleware(app.AuthService, app.ProfileService),
		middleware.RequestLogging, // Must wrap the mux directly to see r.Pattern
	)

	return handler
}
