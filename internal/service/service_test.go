package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/canstudy/tracker/internal/ai"
	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/db"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/storage"
)

type testEnv struct {
	db       *sqlx.DB
	catalog  *catalog.Catalog
	storage  *storage.LocalStorage
	users    repository.UserRepository
	profiles repository.ProfileRepository

	auth         *AuthService
	accounts     *UserService
	documents    *DocumentService
	applications *ApplicationService
	finances     *FinanceService
	timeline     *TimelineService
	dashboard    *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Open(db.DriverSQLite, ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	c, err := catalog.Load()
	require.NoError(t, err)

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	applicationRepo := repository.NewApplicationRepository(database)
	documentRepo := repository.NewDocumentRepository(database)
	financeRepo := repository.NewFinanceRepository(database)
	timelineRepo := repository.NewTimelineRepository(database)

	fileService := NewFileService(repository.NewFileRepository(database), local)
	documentService := NewDocumentService(documentRepo, fileService, c)
	timelineService := NewTimelineService(timelineRepo, profileRepo)

	return &testEnv{
		db:       database,
		catalog:  c,
		storage:  local,
		users:    userRepo,
		profiles: profileRepo,

		auth:         NewAuthService(userRepo, tokenRepo, documentService, "test-secret", false, time.Hour, 24*time.Hour),
		accounts:     NewUserService(userRepo, fileService),
		documents:    documentService,
		applications: NewApplicationService(applicationRepo),
		finances:     NewFinanceService(financeRepo),
		timeline:     timelineService,
		dashboard:    NewDashboardService(applicationRepo, documentRepo, financeRepo, timelineService),
	}
}

// register creates a masters student with a seeded checklist.
func (e *testEnv) register(t *testing.T, email string) *model.User {
	t.Helper()
	user, _, err := e.auth.Register(RegisterInput{
		Email:      email,
		Password:   "secret123",
		DegreeType: model.DegreeMasters,
	})
	require.NoError(t, err)
	return user
}

type fakeGenerator struct {
	reply       string
	err         error
	prompt      string
	instruction string
	history     []ai.Message
	message     string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func (g *fakeGenerator) Chat(_ context.Context, instruction string, history []ai.Message, message string) (string, error) {
	g.instruction = instruction
	g.history = history
	g.message = message
	return g.reply, g.err
}
