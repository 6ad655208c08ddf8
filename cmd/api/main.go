package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"retail-mis-console/internal/authclient"
	"retail-mis-console/internal/config"
	"retail-mis-console/internal/handler"
	"retail-mis-console/internal/logger"
	"retail-mis-console/internal/metrics"
	"retail-mis-console/internal/middleware"
	"retail-mis-console/internal/model"
	"retail-mis-console/internal/page"
	"retail-mis-console/internal/repository"
	"retail-mis-console/internal/service"
	"retail-mis-console/internal/ws"
	"retail-mis-console/pkg/database"
	"retail-mis-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	red "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database.DSN(), lg)
	if err != nil {
		lg.Fatal("database unavailable", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.User{}, &model.SessionRecord{}); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		lg.Fatal("failed to get sql.DB", zap.Error(err))
	}

	// 3. Seed one console user per role
	userRepo := repository.NewUserRepo(db)
	if !cfg.IsProduction() && cfg.Auth.SeedPassword != "" {
		created, err := userRepo.SeedDefaults(context.Background(), cfg.Auth.SeedPassword)
		if err != nil {
			lg.Warn("failed to seed users", zap.Error(err))
		} else if created > 0 {
			lg.Info("seed users created", zap.Int("count", created))
		}
	}

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	// 5. Setup WebSocket Hub
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	wsHub := ws.NewHub(lg.Named("ws"))
	go wsHub.Run(ctx)

	// 6. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, tokens, lg.Named("auth"))
	dbStatusService := service.NewDBStatusService(sqlDB, 2*time.Second, lg)

	storage, closeStorage, err := buildSessionStorage(cfg.Session, db)
	if err != nil {
		lg.Fatal("session storage unavailable", zap.Error(err))
	}
	defer closeStorage()

	authBaseURL := cfg.Auth.BaseURL
	if authBaseURL == "" {
		authBaseURL = "http://127.0.0.1:" + cfg.App.Port
	}
	client := authclient.New(authBaseURL, cfg.Auth.Timeout)

	var authenticator service.Authenticator = client
	if cfg.Auth.BaseURL == "" {
		authenticator = service.NewLocalAuthenticator(authService)
	}

	sessions := service.NewSessionManager(storage, authenticator,
		service.WithSessionNotifier(wsHub),
		service.WithSessionLogger(lg.Named("session")),
		service.WithSessionMetrics(recorder),
	)

	table, nav, err := service.NewDefaultAccessModel()
	if err != nil {
		lg.Fatal("invalid access model", zap.Error(err))
	}
	views, err := service.NewViewRegistry(table, page.Pages(page.Deps{Status: client, Access: table}))
	if err != nil {
		lg.Fatal("view registry incomplete", zap.Error(err))
	}
	guard := service.NewAccessGuard(table, nav, lg.Named("guard"), recorder)

	authHandler := handler.NewAuthHandler(authService, dbStatusService)
	roleHandler := handler.NewRoleHandler(table)
	consoleHandler := handler.NewConsoleHandler(sessions, nav, views, lg.Named("console"))

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 8. Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/reset-password", authHandler.ResetPassword)

	userCache := middleware.NewUserCache(1024, 30*time.Second)
	protected := api.Group("", middleware.RequireAuth(tokens, userRepo, userCache))
	protected.Get("/db/status", middleware.RequireRole(model.RoleSuperAdmin), authHandler.DBStatus)
	protected.Get("/roles", roleHandler.GetRoles)

	scoped := middleware.SessionScope(cfg.Session.Cookie, cfg.IsProduction())
	console := app.Group("/console", scoped)
	console.Get("/login", consoleHandler.LoginPage)
	console.Post("/login", consoleHandler.Login)
	console.Post("/logout", consoleHandler.Logout)
	console.Get("/session", consoleHandler.Session)
	console.Get("/nav", consoleHandler.Nav)
	console.Get("/views/:view", middleware.ConsoleGuard(guard, sessions), consoleHandler.View)

	app.Use("/ws/console", scoped, handler.UpgradeConsoleSocket)
	app.Get("/ws/console", handler.ConsoleSocket(wsHub))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			lg.Panic("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	lg.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}
	lg.Info("server exited")
}

// buildSessionStorage picks the console session backend
func buildSessionStorage(cfg config.SessionConfig, db *gorm.DB) (repository.SessionStorage, func(), error) {
	switch cfg.Backend {
	case config.SessionBackendRedis:
		client := red.NewClient(&red.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return repository.NewRedisSessionStorage(client, cfg.RedisPrefix), func() { client.Close() }, nil
	case config.SessionBackendPostgres:
		return repository.NewGormSessionStorage(db), func() {}, nil
	default:
		return repository.NewMemorySessionStorage(), func() {}, nil
	}
}
