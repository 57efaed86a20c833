package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/auth"
	"github.com/opencivic/civic-reporter/internal/core/events"
	"github.com/opencivic/civic-reporter/internal/departments"
	departmentsPostgres "github.com/opencivic/civic-reporter/internal/departments/postgres"
	"github.com/opencivic/civic-reporter/internal/issues"
	issuesPostgres "github.com/opencivic/civic-reporter/internal/issues/postgres"
	"github.com/opencivic/civic-reporter/internal/notification"
	"github.com/opencivic/civic-reporter/internal/stats"
	"github.com/opencivic/civic-reporter/internal/storage"
	"github.com/opencivic/civic-reporter/internal/transport"
	"github.com/opencivic/civic-reporter/internal/transport/rest"
	"github.com/opencivic/civic-reporter/internal/transport/swagger"
	"github.com/opencivic/civic-reporter/internal/users"
	usersPostgres "github.com/opencivic/civic-reporter/internal/users/postgres"
	"github.com/opencivic/civic-reporter/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	GormDB     *gorm.DB
	Redis      *redis.Client
	Router     *chi.Mux
	Bus        *events.EventBus
	Dispatcher *notification.Dispatcher
	Handlers   rest.Handlers
	Logger     *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.Config, deps.DB.DB, deps.Redis, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Dispatcher.Shutdown()
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				deps.Logger.Error("redis close error", "error", err)
			}
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment, config.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides the sqlx connection so both layers share one pool
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	var redisClient *redis.Client
	if config.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		lg.Info("redis rate limiter enabled",
			"addr", config.Redis.Addr,
			"limit", config.Redis.RateLimitCount,
			"window", config.Redis.RateLimitWindow)
	}

	if err := swagger.ValidateDocument("./api/openapi.yml"); err != nil {
		// docs trouble should not keep the API down
		lg.Warn("openapi document validation failed, swagger UI may be broken", "error", err)
	}

	bus := events.NewEventBus(lg)

	dispatcher := notification.NewDispatcher(notification.Config{
		WebhookURL: config.Notify.WebhookURL,
		MaxWorkers: config.Notify.MaxWorkers,
		QueueSize:  config.Notify.QueueSize,
		JobTimeout: config.Notify.JobTimeout,
	}, lg)
	notification.NewEventHandler(dispatcher, lg).RegisterEventHandlers(bus)

	baseHandler := transport.NewBaseHandler(lg)

	issueRepo := issuesPostgres.NewIssueRepository(gormDB)
	issueService := issues.NewService(issueRepo, bus, lg)
	issueHandler := issues.NewHandler(baseHandler, issueService)

	userRepo := usersPostgres.NewUserRepository(gormDB)
	userService := users.NewService(userRepo, lg)
	userHandler := users.NewHandler(baseHandler, userService)

	departmentRepo := departmentsPostgres.NewDepartmentRepository(gormDB)
	departmentService := departments.NewService(departmentRepo, lg)
	departmentHandler := departments.NewHandler(baseHandler, departmentService)

	// one-time default seeding: no-op whenever the table has rows
	if err := departmentService.SeedDefaults(); err != nil {
		lg.Error("department seeding failed", "error", err)
	}

	statsRepo := stats.NewRepository(db)
	statsService := stats.NewService(statsRepo, lg)
	statsHandler := stats.NewHandler(baseHandler, statsService)

	photoStore, err := initPhotoStore(config.Storage, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	uploadHandler := storage.NewHandler(baseHandler, photoStore, config.Storage.MaxUploadBytes)

	var authHandler *auth.Handler
	if config.Admin.Enabled() {
		tokens := auth.NewJWTTokenGenerator(config.Admin.JWTSecret, config.Admin.AccessTokenDuration)
		authService := auth.NewService(config.Admin.Email, config.Admin.PasswordHash, tokens, lg)
		authHandler = auth.NewHandler(baseHandler, authService)
	} else {
		lg.Warn("admin session disabled: no admin credentials configured")
	}

	return &Dependencies{
		Config:     config,
		DB:         db,
		GormDB:     gormDB,
		Redis:      redisClient,
		Router:     chi.NewRouter(),
		Bus:        bus,
		Dispatcher: dispatcher,
		Logger:     lg,
		Handlers: rest.Handlers{
			Issues:      issueHandler,
			Users:       userHandler,
			Departments: departmentHandler,
			Stats:       statsHandler,
			Upload:      uploadHandler,
			Auth:        authHandler,
		},
	}, nil
}

func initPhotoStore(cfg internal.StorageConfig, lg *slog.Logger) (storage.PhotoStore, error) {
	if cfg.Provider == "b2" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := storage.NewB2Store(ctx, cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket)
		if err != nil {
			return nil, err
		}
		lg.Info("photo storage: backblaze b2", "bucket", cfg.B2Bucket)
		return store, nil
	}

	lg.Info("photo storage: inline data URLs")
	return storage.NewInlineStore(), nil
}

// initDB opens and verifies the shared postgres connection.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
