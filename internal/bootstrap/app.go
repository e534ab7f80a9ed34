package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/analysis"
	googleauth "github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/auth"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/curriculos"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm/gateway"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/noticias"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/profiles"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/auth"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/config"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/middleware"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/storage/db"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/storage/object"
	localstore "github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/storage/object/local"
	s3store "github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/storage/object/s3"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/telemetry"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/trilhas"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/users"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/vagas"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Tokens *auth.Tokens

	UsersRepo      users.Repo
	ProfilesRepo   profiles.Repo
	CurriculosRepo curriculos.Repo
	NoticiasRepo   noticias.Repo
	VagasRepo      vagas.Repo
	TrilhasRepo    trilhas.Repo

	UsersService      *users.Service
	ProfilesService   *profiles.Service
	CurriculosService *curriculos.Service
	AnalysisService   *analysis.Service
	NoticiasService   *noticias.Service
	VagasService      *vagas.Service
	TrilhasService    *trilhas.Service

	UsersHandler      *users.Handler
	ProfilesHandler   *profiles.Handler
	CurriculosHandler *curriculos.Handler
	AnalysisHandler   *analysis.Handler
	NoticiasHandler   *noticias.Handler
	VagasHandler      *vagas.Handler
	TrilhasHandler    *trilhas.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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
		Tokens: auth.NewTokens(cfg.JWTSecret),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Tokens:            app.Tokens,
		RateLimiter:       middleware.NewRateLimiter(nil),
		UsersHandler:      app.UsersHandler,
		GoogleAuth:        app.GoogleAuth,
		ProfilesHandler:   app.ProfilesHandler,
		CurriculosHandler: app.CurriculosHandler,
		AnalysisHandler:   app.AnalysisHandler,
		NoticiasHandler:   app.NoticiasHandler,
		VagasHandler:      app.VagasHandler,
		TrilhasHandler:    app.TrilhasHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{
				"reason": "DATABASE_URL empty",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.db_connect_failed", map[string]any{
				"error": err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.CurriculosRepo = &curriculos.PGRepo{DB: app.DB}
		app.NoticiasRepo = &noticias.PGRepo{DB: app.DB}
		app.VagasRepo = &vagas.PGRepo{DB: app.DB}
		app.TrilhasRepo = &trilhas.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.CurriculosRepo = curriculos.NewMemoryRepo()
		app.NoticiasRepo = noticias.NewMemoryRepo()
		app.VagasRepo = vagas.NewMemoryRepo()
		app.TrilhasRepo = trilhas.NewMemoryRepo()
	}

	llmClient, err := buildLLM(app.Config)
	if err != nil {
		return err
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Tokens)
	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.CurriculosService = curriculos.NewService(app.CurriculosRepo, app.Store, app.Config.MaxCurriculoBytes)
	app.AnalysisService = analysis.NewService(
		app.CurriculosService,
		app.ProfilesService,
		app.Store,
		llmClient,
		app.Config.AnalysisInput,
		app.Config.MaxCurriculoBytes,
	)
	app.NoticiasService = noticias.NewService(app.NoticiasRepo)
	app.VagasService = vagas.NewService(app.VagasRepo)
	app.TrilhasService = trilhas.NewService(app.TrilhasRepo)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.ProfilesHandler = profiles.NewHandler(app.ProfilesService)
	app.CurriculosHandler = curriculos.NewHandler(app.CurriculosService)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService)
	app.NoticiasHandler = noticias.NewHandler(app.NoticiasService)
	app.VagasHandler = vagas.NewHandler(app.VagasService)
	app.TrilhasHandler = trilhas.NewHandler(app.TrilhasService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	return nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.AIGatewayAPIKey) == "" {
		telemetry.Info("bootstrap.llm_placeholder", map[string]any{
			"reason": "AI_GATEWAY_API_KEY empty",
		})
		return llm.Placeholder{}, nil
	}
	return gateway.NewClient(cfg.AIGatewayURL, cfg.AIGatewayAPIKey, cfg.AIModel)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
