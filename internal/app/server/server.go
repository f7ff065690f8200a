package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/access"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/contract"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/employee"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/importer"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/probation"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/reports"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/config"
	cryptoutil "github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/crypto"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/db"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/metrics"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/api"
	authhandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/auth"
	contractshandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/contracts"
	employeeshandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/employees"
	importshandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/imports"
	permissionshandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/permissions"
	probationshandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/probations"
	reportshandler "github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/handlers/reports"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New connects, migrates, seeds, and builds the router. Run wraps it
// for the binary; tests call it directly.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}

	app := &App{Config: cfg, DB: pool}
	app.Router = app.buildRouter(pool, crypto)
	return app, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("HR follow-up server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func (a *App) buildRouter(pool *pgxpool.Pool, crypto *cryptoutil.Service) http.Handler {
	cfg := a.Config
	collector := metrics.New()

	permStore := access.NewStore(pool)
	employeeStore := employee.NewStore(pool, crypto)
	probationStore := probation.NewStore(pool)
	contractStore := contract.NewStore(pool)
	reportService := reports.NewService(reports.NewStore(pool))
	reconciler := importer.NewReconciler(&importer.DBStore{
		Employees: employeeStore,
		Contracts: contractStore,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.With(middleware.RequireAdmin).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret, permStore)
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).
			Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

			r.Get("/auth/me", authHandler.HandleMe)

			employeeshandler.NewHandler(employeeStore, permStore).RegisterRoutes(r)
			probationshandler.NewHandler(probationStore, permStore).RegisterRoutes(r)
			contractshandler.NewHandler(contractStore, employeeStore, permStore).RegisterRoutes(r)
			permissionshandler.NewHandler(permStore).RegisterRoutes(r)
			importshandler.NewHandler(reconciler, permStore, cfg.MaxImportBytes, cfg.MaxImportRows).RegisterRoutes(r)
			reportshandler.NewHandler(reportService).RegisterRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
