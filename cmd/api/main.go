// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/passport/internal/audit"
	"github.com/dangerclosesec/passport/internal/auth"
	"github.com/dangerclosesec/passport/internal/config"
	"github.com/dangerclosesec/passport/internal/email"
	"github.com/dangerclosesec/passport/internal/handler"
	"github.com/dangerclosesec/passport/internal/middleware"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/search"
	"github.com/dangerclosesec/passport/internal/service"
	"github.com/dangerclosesec/passport/internal/signals"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	// Dedicated pool for the raw-SQL search path
	pool, err := setupPool(cfg)
	if err != nil {
		return fmt.Errorf("setting up search pool: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize auth primitives
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)
	providers := auth.ProviderMap{
		"github":  {Key: "github", Title: "GitHub", AtUsername: false},
		"twitter": {Key: "twitter", Title: "Twitter", AtUsername: true},
	}

	// Initialize the delivery gateway and event bus
	gateway := email.NewService(cfg)
	bus := signals.NewInProcBus()
	audit.NewRecorder(db).Attach(bus)

	// Initialize services
	identityService := service.NewIdentityService(userRepo, orgRepo, passwordHasher, bus)
	orgService := service.NewOrganizationService(orgRepo, userRepo, contactRepo, bus)
	contactService := service.NewContactService(contactRepo, orgRepo, userRepo, gateway, bus)
	mergeService := service.NewMergeService(userRepo, identityService, bus)
	sessionService := service.NewSessionService(sessionRepo, userRepo, identityService, tokenManager, bus)
	searchService := search.New(pool, providers)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(identityService, sessionService, contactService, gateway)
	userHandler := handler.NewUserHandler(identityService, searchService)
	contactHandler := handler.NewContactHandler(contactService)
	orgHandler := handler.NewOrganizationHandler(orgService, identityService)
	mergeHandler := handler.NewMergeHandler(mergeService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			r.Post("/auth/signup", authHandler.SignupHandler)
			r.Post("/auth/login", authHandler.LoginHandler)
			r.Post("/auth/password/forgot", authHandler.ForgotPasswordHandler)
			r.Post("/auth/password/reset", authHandler.ResetPasswordHandler)
		})

		r.Get("/users/autocomplete", userHandler.AutocompleteHandler)
		r.Get("/users/{userid}", userHandler.GetUserHandler)
		r.Get("/users/by-username/{username}", userHandler.GetUserByUsernameHandler)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessionService))

			r.Post("/auth/logout", authHandler.LogoutHandler)
			r.Post("/auth/logout/all", authHandler.LogoutAllHandler)
			r.Post("/auth/password", authHandler.PasswordHandler)

			r.Get("/users", userHandler.ListUsersHandler)

			r.Get("/profile", userHandler.MeHandler)
			r.Put("/profile/username", userHandler.SetUsernameHandler)
			r.Post("/profile/external", userHandler.LinkExternalHandler)
			r.Get("/profile/contacts", contactHandler.ContactSummaryHandler)

			r.Post("/profile/email", contactHandler.ClaimEmailHandler)
			r.Post("/profile/email/{fingerprint}/verify", contactHandler.VerifyEmailHandler)
			r.Delete("/profile/email", contactHandler.RemoveEmailHandler)

			r.Post("/profile/phone", contactHandler.ClaimPhoneHandler)
			r.Post("/profile/phone/{id}/verify", contactHandler.VerifyPhoneHandler)
			r.Delete("/profile/phone", contactHandler.RemovePhoneHandler)

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", orgHandler.ListHandler)
				r.Post("/", orgHandler.CreateHandler)
				r.Put("/{userid}/name", orgHandler.SetNameHandler)
				r.Delete("/{userid}", orgHandler.DeleteHandler)
				r.Get("/{userid}/permissions", orgHandler.PermissionsHandler)
				r.Post("/{userid}/teams", orgHandler.CreateTeamHandler)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Delete("/{userid}", orgHandler.DeleteTeamHandler)
				r.Put("/{userid}/domain", orgHandler.SetTeamDomainHandler)
				r.Post("/{userid}/members", orgHandler.AddTeamMemberHandler)
			})

			// Operator-only; front this group with an authorizing proxy
			r.Post("/admin/merge", mergeHandler.MergeUsersHandler)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func setupPool(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging pool: %w", err)
	}
	return pool, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
