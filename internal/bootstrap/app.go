package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"contract-backend/internal/analysis"
	"contract-backend/internal/consult"
	"contract-backend/internal/documents"
	"contract-backend/internal/llm"
	openaiclient "contract-backend/internal/llm/openai"
	"contract-backend/internal/report"
	"contract-backend/internal/shared/config"
	"contract-backend/internal/shared/server"
	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/storage/db"
	"contract-backend/internal/shared/storage/object"
	localstore "contract-backend/internal/shared/storage/object/local"
	s3store "contract-backend/internal/shared/storage/object/s3"
	"contract-backend/internal/users"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	ConsultRepo   consult.Repo

	LLM             llm.Client
	AnalysisService *analysis.Service
	DocumentService *documents.Service
	ConsultService  *consult.Service
	UsersService    *users.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var client llm.Client
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" && isDevLike(cfg.Env) {
		log.Printf("bootstrap: OPENAI_API_KEY empty; completions will fail until configured")
		client = llm.Unavailable{}
	} else {
		openaiClient, err := openaiclient.NewClient(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		client = openaiClient
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    client,
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.DocumentsRepo = &documents.PGRepo{DB: sqlDB}
		app.ConsultRepo = &consult.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ConsultRepo = consult.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.AnalysisService = &analysis.Service{
		LLM:       app.LLM,
		Template:  analysis.DefaultGuidelineTemplate(),
		Model:     cfg.AnalysisModel,
		TextLimit: cfg.AnalysisTextLimit,
	}
	app.DocumentService = &documents.Service{
		Store:    app.Store,
		Repo:     app.DocumentsRepo,
		Analyzer: app.AnalysisService,
		Renderer: buildRenderer(cfg),
	}
	app.ConsultService = &consult.Service{
		LLM:       app.LLM,
		Repo:      app.ConsultRepo,
		Docs:      app.DocumentService,
		Model:     cfg.ConsultModel,
		TextLimit: cfg.ConsultTextLimit,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		UserHandler:     users.NewHandler(app.UsersService),
		DocumentHandler: documents.NewHandler(app.DocumentService),
		ConsultHandler:  consult.NewHandler(app.ConsultService),
		RateLimiter:     buildRateLimiter(cfg),
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

func buildRenderer(cfg config.Config) report.Renderer {
	if cfg.ReportRenderer == "chrome" {
		return report.NewPDFRenderer()
	}
	return report.NewHTMLRenderer()
}

func buildRateLimiter(cfg config.Config) middleware.Limiter {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return middleware.NewRedisRateLimiter(client, nil)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
