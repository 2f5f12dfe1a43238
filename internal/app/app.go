package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	canstudy "github.com/canstudy/tracker"
	"github.com/canstudy/tracker/internal/ai"
	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/config"
	"github.com/canstudy/tracker/internal/db"
	"github.com/canstudy/tracker/internal/middleware"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/service"
	"github.com/canstudy/tracker/internal/storage"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	Redis              *redis.Client
	Catalog            *catalog.Catalog
	AuthLimiter        middleware.Limiter
	AuthService        *service.AuthService
	UserService        *service.UserService
	ProfileService     *service.ProfileService
	FileService        *service.FileService
	ApplicationService *service.ApplicationService
	DocumentService    *service.DocumentService
	FinanceService     *service.FinanceService
	TimelineService    *service.TimelineService
	SchoolService      *service.SchoolService
	GuideService       *service.GuideService
	AssistantService   *service.AssistantService
	DashboardService   *service.DashboardService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database and run pending migrations
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	fileRepository := repository.NewFileRepository(database)
	applicationRepository := repository.NewApplicationRepository(database)
	documentRepository := repository.NewDocumentRepository(database)
	financeRepository := repository.NewFinanceRepository(database)
	timelineRepository := repository.NewTimelineRepository(database)

	// Storage
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Cfg:     cfg,
		DB:      database,
		Catalog: cat,
	}

	a.AuthLimiter, a.Redis, err = authLimiter(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	// Services
	a.FileService = service.NewFileService(fileRepository, fileStorage)
	a.DocumentService = service.NewDocumentService(documentRepository, a.FileService, cat)
	a.AuthService = service.NewAuthService(
		userRepository,
		tokenRepository,
		a.DocumentService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailVerifyExpiry,
	)
	a.UserService = service.NewUserService(userRepository, a.FileService)
	a.ProfileService = service.NewProfileService(profileRepository)
	a.ApplicationService = service.NewApplicationService(applicationRepository)
	a.FinanceService = service.NewFinanceService(financeRepository)
	a.TimelineService = service.NewTimelineService(timelineRepository, profileRepository)
	a.SchoolService = service.NewSchoolService(cat)
	a.DashboardService = service.NewDashboardService(applicationRepository, documentRepository, financeRepository, a.TimelineService)

	guides, reload, err := guidesFS(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.GuideService = service.NewGuideService(guides, reload)

	a.AssistantService, err = assistant(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

// authLimiter shares counters through Redis when REDIS_URL is set and keeps
// them in memory otherwise.
func authLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, *redis.Client, error) {
	if cfg.RedisURL == "" {
		return middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow), nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	err = rdb.Ping(ctx).Err()
	if err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("rate limiting via redis", "addr", opts.Addr)
	return middleware.NewRedisLimiter(rdb, "auth", cfg.AuthRateLimit, cfg.AuthRateWindow), rdb, nil
}

// guidesFS prefers CONTENT_PATH/guides on disk and falls back to the
// embedded copy.
func guidesFS(cfg *config.Config) (fs.FS, bool, error) {
	dir := filepath.Join(cfg.ContentPath, "guides")
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return os.DirFS(dir), cfg.IsDevelopment(), nil
	}

	sub, err := fs.Sub(canstudy.GuidesFS, "content/guides")
	if err != nil {
		return nil, false, fmt.Errorf("failed to open embedded guides: %w", err)
	}
	return sub, false, nil
}

func assistant(ctx context.Context, cfg *config.Config) (*service.AssistantService, error) {
	client, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if errors.Is(err, ai.ErrNotConfigured) {
		slog.Warn("assistant disabled, GEMINI_API_KEY not set")
		return service.NewAssistantService(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return service.NewAssistantService(client), nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
