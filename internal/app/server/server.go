package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hradmin/internal/domain/attendance"
	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/department"
	"hradmin/internal/domain/employee"
	"hradmin/internal/domain/leave"
	"hradmin/internal/domain/performance"
	"hradmin/internal/domain/position"
	"hradmin/internal/platform/config"
	"hradmin/internal/platform/db"
	"hradmin/internal/platform/metrics"
	"hradmin/internal/platform/storage"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/handlers/attendancehandler"
	"hradmin/internal/transport/http/handlers/authhandler"
	"hradmin/internal/transport/http/handlers/departmenthandler"
	"hradmin/internal/transport/http/handlers/employeehandler"
	"hradmin/internal/transport/http/handlers/leavehandler"
	"hradmin/internal/transport/http/handlers/performancehandler"
	"hradmin/internal/transport/http/handlers/positionhandler"
	"hradmin/internal/transport/http/middleware"
	"hradmin/internal/transport/http/page"
)

const shutdownTimeout = 15 * time.Second

// localOperator acts for every request when authentication is disabled.
var localOperator = auth.UserContext{Name: "Local operator", Role: auth.RoleAdmin}

type App struct {
	Config  config.Config
	DB      *db.Pool
	Logger  *zap.Logger
	Storage *storage.ObjectStore
	Metrics *metrics.Collector
	Router  http.Handler
}

// New connects to the database, applies pending migrations and seeds when
// configured, and builds the router.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	files, err := storage.New(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if !files.Configured() {
		logger.Warn("object storage not configured, leave attachments are disabled")
	}

	app := &App{Config: cfg, DB: pool, Logger: logger, Storage: files, Metrics: metrics.New()}
	app.Router = app.routes()
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("hradmin listening", zap.String("addr", a.Config.Addr), zap.Bool("auth", a.Config.AuthEnabled))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type handlerSet interface {
	RegisterRoutes(r chi.Router)
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	perms := auth.StaticPermissions{}
	pages := page.New(cfg.AssetVersion, cfg.AssetURL)

	departments := department.NewService(department.NewStore(a.DB))
	positions := position.NewService(position.NewStore(a.DB))
	employees := employee.NewService(employee.NewStore(a.DB))
	attendances := attendance.NewService(attendance.NewStore(a.DB))
	leaves := leave.NewService(leave.NewStore(a.DB), a.Storage)
	reviews := performance.NewService(performance.NewStore(a.DB))
	accounts := auth.NewService(auth.NewStore(a.DB), cfg.JWTSecret, cfg.TokenTTL, a.Logger)

	// Page handlers render for browsers; the API copies never do.
	build := func(pages *page.Renderer) []handlerSet {
		return []handlerSet{
			departmenthandler.NewHandler(departments, employees.Exists, pages, perms, cfg.DefaultPerPage),
			positionhandler.NewHandler(positions, departments, pages, perms, cfg.DefaultPerPage),
			employeehandler.NewHandler(employees, departments, positions, pages, perms, cfg.DefaultPerPage),
			attendancehandler.NewHandler(attendances, employees, pages, perms, cfg.DefaultPerPage),
			leavehandler.NewHandler(leaves, employees, pages, perms, cfg.DefaultPerPage, cfg.MaxAttachmentBytes),
			performancehandler.NewHandler(reviews, employees, departments, pages, perms, cfg.DefaultPerPage),
		}
	}

	secret := ""
	var fallback *auth.UserContext
	if cfg.AuthEnabled {
		secret = cfg.JWTSecret
	} else {
		operator := localOperator
		fallback = &operator
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(a.Logger))
	router.Use(middleware.Logger(a.Logger, a.Metrics))
	router.Use(middleware.SecureHeaders(cfg.IsProduction(), assetOrigin(cfg.AssetURL)...))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, cfg.MaxAttachmentBytes+64*1024))
	router.Use(middleware.Auth(secret, fallback))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"})
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "Database not ready.")
			return
		}
		api.Success(w, map[string]string{"status": "ready"})
	})
	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, a.Metrics.Snapshot())
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ForceJSON)
		authhandler.NewHandler(accounts).RegisterRoutes(r)
		for _, h := range build(nil) {
			h.RegisterRoutes(r)
		}
	})

	router.Route("/hr", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/hr/employees", http.StatusFound)
		})
		for _, h := range build(pages) {
			h.RegisterRoutes(r)
		}
	})

	return router
}

// assetOrigin returns the origin of an absolute asset URL, which the page
// shell loads its bundle from.
func assetOrigin(assetURL string) []string {
	u, err := url.Parse(assetURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return []string{u.Scheme + "://" + u.Host}
}
