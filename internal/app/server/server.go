package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/domain/employees"
	"staffpanel/internal/domain/leaves"
	"staffpanel/internal/domain/reports"
	"staffpanel/internal/domain/roles"
	"staffpanel/internal/domain/tasks"
	"staffpanel/internal/platform/calendar"
	"staffpanel/internal/platform/config"
	"staffpanel/internal/platform/db"
	"staffpanel/internal/platform/email"
	"staffpanel/internal/platform/metrics"
	"staffpanel/internal/transport/http/api"
	authhandler "staffpanel/internal/transport/http/handlers/auth"
	employeeshandler "staffpanel/internal/transport/http/handlers/employees"
	leaveshandler "staffpanel/internal/transport/http/handlers/leaves"
	reportshandler "staffpanel/internal/transport/http/handlers/reports"
	roleshandler "staffpanel/internal/transport/http/handlers/roles"
	taskshandler "staffpanel/internal/transport/http/handlers/tasks"
	"staffpanel/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	checker := auth.NewChecker(authStore)
	mailer := email.New(cfg)
	cal := calendar.New(cfg.CalendarWebhookURL)

	roleService := roles.NewService(roles.NewStore(pool))
	employeeService := employees.NewService(employees.NewStore(pool), checker)
	taskService := tasks.NewService(tasks.NewStore(pool), checker, mailer, cal)
	leaveService := leaves.NewService(leaves.NewStore(pool), checker, mailer)
	reportService := reports.NewService(roles.NewStore(pool), employees.NewStore(pool))

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Authenticate(cfg.JWTSecret, authStore))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

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

	if collector != nil {
		// Full catalog bits: effectively admin-only.
		router.With(middleware.Require(checker, auth.AllBits())).
			Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL)
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		roleshandler.NewHandler(roleService).RegisterRoutes(r, checker)
		employeeshandler.NewHandler(employeeService).RegisterRoutes(r, checker)
		taskshandler.NewHandler(taskService).RegisterRoutes(r, checker)
		leaveshandler.NewHandler(leaveService).RegisterRoutes(r, checker)
		reportshandler.NewHandler(reportService, checker).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("staffpanel server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
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
