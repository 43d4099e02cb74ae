package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "gigmarket/docs"
	"gigmarket/internal/caching"
	"gigmarket/internal/config"
	"gigmarket/internal/handlers"
	"gigmarket/internal/jobs/background"
	"gigmarket/internal/middleware"
	"gigmarket/internal/models"
	"gigmarket/internal/observability"
	"gigmarket/internal/repositories"
	"gigmarket/internal/services"
	"gigmarket/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatalf("gigmarket: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create database connection pool
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer cacheSvc.Close()

	imageStore, err := services.NewImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.GigImageBucket)
	if err != nil {
		return fmt.Errorf("failed to initialize image store: %w", err)
	}
	if err := imageStore.EnsureBucket(ctx); err != nil {
		log.Printf("WARN: bucket %s not available, image uploads will fail: %v", cfg.GigImageBucket, err)
	}

	authenticator, closeAuth, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}
	defer closeAuth()

	// Create repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	skillRepo := repositories.NewSkillRepo(pool)
	gigRepo := repositories.NewGigRepo(pool)
	gigImageRepo := repositories.NewGigImageRepo(pool)

	// Create services
	catalogSvc := services.NewCatalogService(categoryRepo, cacheSvc, catalog, cfg.CatalogCacheTTL,
		observability.NewGlobalTracer(), observability.NewGlobalMetrics())
	userSvc := services.NewUserService(userRepo)
	skillSvc := services.NewSkillService(skillRepo, userRepo)
	gigSvc := services.NewGigService(gigRepo, gigImageRepo, categoryRepo, userRepo, imageStore)

	scheduler, err := background.NewJobScheduler(catalogSvc, cfg.CatalogEnsureInterval)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("WARN: scheduler shutdown: %v", err)
		}
	}()

	e := newServer(routes{
		auth:         authenticator,
		cache:        cacheSvc,
		adminSubject: cfg.AuthAdmins,
		reseedLimit:  cfg.ReseedRateLimit,
		reseedWindow: cfg.ReseedRateWindow,
		categories:   handlers.NewCategoryHandlers(catalogSvc),
		users:        handlers.NewUserHandlers(userSvc),
		skills:       handlers.NewSkillHandlers(skillSvc),
		gigs:         handlers.NewGigHandlers(gigSvc),
		health:       handlers.NewHealthHandlers(pool, cacheSvc, imageStore, version),
		jobs:         handlers.NewJobHandlers(scheduler),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("gigmarket server v%s starting on port %d", version, cfg.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func loadCatalog(filename string) (models.Catalog, error) {
	if filename == "" {
		return config.DefaultCatalog()
	}
	log.Printf("Loading category catalog from %s", filename)
	return config.LoadCatalog(filename)
}

// newAuthenticator prefers the identity provider's JWKS and falls back to a shared HMAC secret.
func newAuthenticator(cfg *config.Config) (*middleware.Authenticator, func(), error) {
	if cfg.JWKSURL != "" {
		jwks, err := middleware.NewJWKS(cfg.JWKSURL, cfg.JWKSRefresh)
		if err != nil {
			return nil, nil, err
		}
		return middleware.NewAuthenticator(jwks.Keyfunc, cfg.AuthIssuer, "RS256", "ES256"), jwks.EndBackground, nil
	}
	return middleware.NewAuthenticator(middleware.NewHMACKeyfunc([]byte(cfg.JWTSecret)), cfg.AuthIssuer, "HS256"), func() {}, nil
}

type routes struct {
	auth         *middleware.Authenticator
	cache        caching.CacheService
	adminSubject []string
	reseedLimit  int
	reseedWindow time.Duration

	categories *handlers.CategoryHandlers
	users      *handlers.UserHandlers
	skills     *handlers.SkillHandlers
	gigs       *handlers.GigHandlers
	health     *handlers.HealthHandlers
	jobs       *handlers.JobHandlers
}

func newServer(r routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.ServerTiming())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", r.health.LivenessCheck)
	e.GET("/health/ready", r.health.ReadinessCheck)
	e.GET("/health/detailed", r.health.DetailedHealthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := r.auth.RequireIdentity()
	optionalAuth := r.auth.OptionalIdentity()

	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	categories := v1.Group("/categories")
	categories.GET("", r.categories.ListCategories)
	categories.GET("/:id/subcategories", r.categories.ListSubcategories)
	categories.POST("/seed", r.categories.SeedCategories)
	categories.POST("/reseed", r.categories.ForceReseed,
		requireAuth,
		middleware.RequireSubject(r.adminSubject),
		middleware.RateLimit(r.cache, "reseed", r.reseedLimit, r.reseedWindow),
	)

	users := v1.Group("/users")
	users.POST("/store", r.users.StoreUser, requireAuth)
	users.GET("/me", r.users.Me, requireAuth)
	users.PUT("/me/profile", r.users.UpdateProfile, requireAuth)
	users.POST("/me/skills", r.skills.AddSkill, requireAuth)
	users.DELETE("/me/skills/:id", r.skills.RemoveSkill, requireAuth)
	users.GET("/:username", r.users.GetUser)
	users.GET("/:username/skills", r.skills.ListSkills, optionalAuth)

	gigs := v1.Group("/gigs")
	gigs.GET("", r.gigs.ListGigs, optionalAuth)
	gigs.POST("", r.gigs.CreateGig, requireAuth)
	gigs.GET("/:id", r.gigs.GetGig, optionalAuth)
	gigs.PUT("/:id", r.gigs.UpdateGig, requireAuth)
	gigs.DELETE("/:id", r.gigs.DeleteGig, requireAuth)
	gigs.POST("/:id/publish", r.gigs.PublishGig, requireAuth)
	gigs.POST("/:id/unpublish", r.gigs.UnpublishGig, requireAuth)
	gigs.POST("/:id/favorite", r.gigs.FavoriteGig, requireAuth)
	gigs.DELETE("/:id/favorite", r.gigs.UnfavoriteGig, requireAuth)
	gigs.POST("/:id/images", r.gigs.UploadGigImage, requireAuth,
		echoMiddleware.BodyLimit(fmt.Sprintf("%dB", services.MaxImageSize+1<<20)))

	v1.GET("/jobs", r.jobs.ListJobs, requireAuth, middleware.RequireSubject(r.adminSubject))
	v1.POST("/jobs/:name/run", r.jobs.RunJob, requireAuth, middleware.RequireSubject(r.adminSubject))

	return e
}
