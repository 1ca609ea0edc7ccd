package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/config"
	"github.com/HSouheill/barrim_admin/controllers"
	"github.com/HSouheill/barrim_admin/middleware"
	"github.com/HSouheill/barrim_admin/repositories"
	"github.com/HSouheill/barrim_admin/routes"
	"github.com/HSouheill/barrim_admin/services"
	"github.com/HSouheill/barrim_admin/storage"
	"github.com/HSouheill/barrim_admin/utils"
	"github.com/HSouheill/barrim_admin/websocket"
)

// fileURLCacheTTL stays below storage.PresignExpiry so cached S3 links never
// outlive their signature
const fileURLCacheTTL = 50 * time.Minute

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	docStore, closeStore := openDocumentStore(cfg)
	defer closeStore()

	// Redis is optional; without it file URLs are resolved on every read
	var urlCache storage.URLCache
	if rdb := config.ConnectRedis(cfg); rdb != nil {
		defer rdb.Close()
		urlCache = utils.NewRedisURLCache(rdb)
	}

	fileStore, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize file storage: %v", err)
	}
	fileStore = storage.WithURLCache(fileStore, urlCache, fileURLCacheTTL)

	var push services.PushSender
	firebaseApp, err := config.InitFirebase(cfg)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
	}
	if sender, err := services.NewFirebasePushSender(ctx, firebaseApp); err != nil {
		logrus.Errorf("Failed to initialize push notifications: %v", err)
	} else if sender != nil {
		push = sender
	}

	var mailer services.MailSender
	if smtp := services.NewSMTPMailer(cfg); smtp != nil {
		mailer = smtp
	}

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Initialize repositories
	wholesaleRepo := repositories.NewWholesaleRequestRepository(docStore)
	userRepo := repositories.NewUserRepository(docStore)
	bannerRepo := repositories.NewBannerRepository(docStore)
	voucherRepo := repositories.NewVoucherRepository(docStore)
	generalDataRepo := repositories.NewGeneralDataRepository(docStore)
	subscriberRepo := repositories.NewSubscriberRepository(docStore)
	adminRepo := repositories.NewAdminRepository(docStore)

	// Initialize services
	aggregator := services.NewWholesaleAggregator(wholesaleRepo, userRepo, cfg.WholesaleFetchLimit)
	transitions := services.NewWholesaleTransitions(wholesaleRepo, userRepo, aggregator, wsHub, push, cfg.WholesaleStrictMirror)
	resolver := services.NewAttachmentResolver(fileStore)
	authService := services.NewAuthService(adminRepo, cfg.JWTSecret)

	if err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Errorf("Failed to create bootstrap admin: %v", err)
	}

	handlers := routes.Controllers{
		Auth:        controllers.NewAuthController(authService, adminRepo, wsHub),
		Wholesale:   controllers.NewWholesaleRequestController(aggregator, transitions, resolver),
		Banners:     controllers.NewBannerController(services.NewBannerService(bannerRepo, fileStore, wsHub)),
		Vouchers:    controllers.NewVoucherController(services.NewVoucherService(voucherRepo, wsHub)),
		GeneralData: controllers.NewGeneralDataController(services.NewGeneralDataService(generalDataRepo, fileStore, wsHub)),
		Subscribers: controllers.NewSubscriberController(services.NewSubscriberService(subscriberRepo, mailer, wsHub)),
		Files:       controllers.NewFileController(fileStore),
	}

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()
	done := make(chan struct{})
	go rateLimiter.StartCleanup(time.Minute, done)

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.AdminCORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.NewSecurityConfig(cfg)))
	e.Use(middleware.Metrics())
	e.Use(middleware.RequireContentType())

	routes.SetupRoutes(e, handlers, wsHub, cfg.JWTSecret)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	close(done)

	logrus.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server shutdown failed: %v", err)
	}
}

// openDocumentStore connects the configured document store. DOC_STORE=memory
// runs without MongoDB, which is only useful for local development.
func openDocumentStore(cfg *config.Config) (repositories.DocumentStore, func()) {
	if cfg.DocStore == "memory" {
		logrus.Warn("Using in-memory document store; data is lost on restart")
		return repositories.NewMemoryStore(), func() {}
	}

	client, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	return repositories.NewMongoStore(client, cfg.DBName), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logrus.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}
}
