package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "neuroscan-backend/internal/auth"
	"neuroscan-backend/internal/inference"
	"neuroscan-backend/internal/inference/restapi"
	"neuroscan-backend/internal/patients"
	"neuroscan-backend/internal/profiles"
	"neuroscan-backend/internal/providers"
	"neuroscan-backend/internal/reports"
	"neuroscan-backend/internal/scans"
	"neuroscan-backend/internal/screenings"
	"neuroscan-backend/internal/shared/config"
	"neuroscan-backend/internal/shared/server"
	"neuroscan-backend/internal/shared/storage/db"
	"neuroscan-backend/internal/shared/storage/object"
	localstore "neuroscan-backend/internal/shared/storage/object/local"
	s3store "neuroscan-backend/internal/shared/storage/object/s3"
	"neuroscan-backend/internal/usage"
)

// App holds the wired dependency graph.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ProfilesRepo  profiles.Repo
	ProvidersRepo providers.Repo
	PatientsRepo  patients.Repo
	ScansRepo     scans.Repo
	ReportsRepo   reports.Repo

	ProfilesService   *profiles.Service
	ProvidersService  *providers.Service
	PatientsService   *patients.Service
	ScansService      *scans.Service
	ReportsService    *reports.Service
	ScreeningsService *screenings.Service
	UsageService      *usage.Service
	InferenceClient   inference.Client

	PatientsHandler   *patients.Handler
	ScansHandler      *scans.Handler
	ReportsHandler    *reports.Handler
	ScreeningsHandler *screenings.Handler
	MeHandler         *server.MeHandler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares the dependency graph and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(app.Config, server.Deps{
		Profiles:    app.ProfilesService,
		GoogleAuth:  app.GoogleAuth,
		Me:          app.MeHandler,
		Patients:    app.PatientsHandler,
		Scans:       app.ScansHandler,
		Reports:     app.ReportsHandler,
		Screenings:  app.ScreeningsHandler,
		ProviderSvc: app.ProvidersService,
		PatientSvc:  app.PatientsService,
		Store:       app.Store,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.ProvidersRepo = &providers.PGRepo{DB: app.DB}
		app.PatientsRepo = &patients.PGRepo{DB: app.DB}
		app.ScansRepo = &scans.PGRepo{DB: app.DB}
		app.ReportsRepo = &reports.PGRepo{DB: app.DB}
		app.UsageService = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.ProvidersRepo = providers.NewMemoryRepo()
		app.PatientsRepo = patients.NewMemoryRepo()
		app.ScansRepo = scans.NewMemoryRepo()
		app.ReportsRepo = reports.NewMemoryRepo()
		app.UsageService = usage.NewService()
	}

	app.InferenceClient = inference.PlaceholderClient{}
	if app.Config.InferenceBaseURL != "" {
		client, err := restapi.NewClient(app.Config.InferenceBaseURL, app.Config.InferenceModel)
		if err != nil {
			return err
		}
		app.InferenceClient = client
	}

	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.ProvidersService = providers.NewService(app.ProvidersRepo)
	app.PatientsService = patients.NewService(app.PatientsRepo)
	app.ScansService = scans.NewService(app.Store, app.ScansRepo)
	app.ReportsService = reports.NewService(app.ReportsRepo, app.ScansRepo, app.PatientsRepo, app.ProvidersRepo)
	app.ScreeningsService = &screenings.Service{
		Scans:     app.ScansService,
		Reports:   app.ReportsService,
		Inference: app.InferenceClient,
		Usage:     app.UsageService,
		Patients:  app.PatientsRepo,
		Providers: app.ProvidersRepo,
		Store:     app.Store,
	}

	app.PatientsHandler = patients.NewHandler(app.PatientsService, app.ProvidersService)
	app.ScansHandler = scans.NewHandler(app.ScansService, app.ProvidersService, app.PatientsService)
	app.ReportsHandler = reports.NewHandler(app.ReportsService, app.ProvidersService, app.PatientsService)
	app.ScreeningsHandler = screenings.NewHandler(app.ScreeningsService, app.ProvidersService)
	app.MeHandler = &server.MeHandler{
		Profiles:  app.ProfilesService,
		Providers: app.ProvidersService,
		Patients:  app.PatientsService,
	}
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.ProfilesService,
	)

	return nil
}
