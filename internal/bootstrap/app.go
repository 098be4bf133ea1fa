package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/users"
	"resume-builder/resume/render"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Signer         *auth.Signer
	Health         *health.Service
	ResumesRepo    resumes.Repo
	UsersRepo      users.Repo
	ResumesService *resumes.Service
	UsersService   *users.Service
	ResumesHandler *resumes.Handler
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	ctx := context.Background()

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.Env, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

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
		Signer: signer,
		Health: health.NewService(),
	}
	if sqlDB != nil {
		app.Health.Register("database", sqlDB.PingContext)
	}
	if p, ok := store.(pinger); ok {
		app.Health.Register("storage", p.Ping)
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Tokens:        app.Signer,
		Health:        app.Health,
		ResumeHandler: app.ResumesHandler,
		UserHandler:   app.UsersHandler,
		GoogleAuth:    app.GoogleAuth,
		RateLimiter:   middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
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
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			KMSKeyID:        cfg.SSEKMSKeyID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		store := localstore.New(cfg.LocalStoreDir)
		if err := store.Init(); err != nil {
			return nil, err
		}
		return store, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumeRepo resumes.Repo
	var userRepo users.Repo

	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	resumeSvc := &resumes.Service{
		Repo:     resumeRepo,
		Store:    app.Store,
		Renderer: render.New(),
	}
	userSvc := users.NewService(userRepo)
	secureCookies := app.Config.Env == "production"

	app.ResumesRepo = resumeRepo
	app.UsersRepo = userRepo
	app.ResumesService = resumeSvc
	app.UsersService = userSvc
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.UsersHandler = users.NewHandler(userSvc, app.Signer, secureCookies)
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleOptions{
		ClientID:      app.Config.GoogleClientID,
		ClientSecret:  app.Config.GoogleClientSecret,
		RedirectURL:   app.Config.GoogleRedirectURL,
		UIRedirect:    app.Config.UIRedirectURL,
		Users:         userSvc,
		Tokens:        app.Signer,
		SecureCookies: secureCookies,
	})

	if app.ResumesHandler == nil || app.UsersHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
