// Package main provides the entry point for the tourvia API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketbase/pocketbase"

	"tourvia/internal/api"
	"tourvia/internal/api/middleware"
	"tourvia/internal/config"
	"tourvia/internal/repository"
	"tourvia/internal/services"

	// Register collection migrations.
	_ "tourvia/migrations"
)

const version = "1.0.0"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := config.AutoLoadEnv("."); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)

	pb := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.GetDataDir(),
	})
	if err := pb.Bootstrap(); err != nil {
		return fmt.Errorf("bootstrap data layer: %w", err)
	}
	if err := pb.RunAllMigrations(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Repositories over the embedded database.
	products := repository.NewPocketBaseProductRepository(pb)
	themes := repository.NewPocketBaseThemeRepository(pb)
	bookings := repository.NewPocketBaseBookingRepository(pb)
	favorites := repository.NewPocketBaseFavoriteRepository(pb)
	notices := repository.NewPocketBaseNoticeRepository(pb)
	inquiries := repository.NewPocketBaseInquiryRepository(pb)
	profiles := repository.NewPocketBaseProfileRepository(pb)
	users := repository.NewPocketBaseUserRepository(pb)
	stats := repository.NewPocketBaseAdminStatsRepository(pb)
	siteSettings := repository.NewPocketBaseSiteSettingsRepository(pb)

	// Services.
	storage := services.NewStorageServiceFromConfig(services.StorageConfig{
		Endpoint:      cfg.GetStorageEndpoint(),
		Region:        cfg.GetStorageRegion(),
		AccessKey:     cfg.GetStorageAccessKey(),
		SecretKey:     cfg.GetStorageSecretKey(),
		PrivateBucket: cfg.GetPrivateBucket(),
		PublicBucket:  cfg.GetPublicBucket(),
		PublicBaseURL: cfg.GetPublicBaseURL(),
	})
	authService := services.NewAuthService(users, cfg)
	catalogService := services.NewCatalogService(products, themes, storage, logger)
	bookingService := services.NewBookingService(bookings, products, storage, logger)
	adminUserService := services.NewAdminUserService(profiles, bookings, favorites, stats)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	handlers := api.Handlers{
		Health:       api.NewHealthHandler(version),
		Auth:         api.NewAuthHandler(authService),
		Catalog:      api.NewCatalogHandler(catalogService),
		Profile:      api.NewProfileHandler(profiles),
		Booking:      api.NewBookingHandler(bookingService),
		Favorite:     api.NewFavoriteHandler(favorites, storage, logger),
		Notice:       api.NewNoticeHandler(notices),
		Inquiry:      api.NewInquiryHandler(inquiries),
		SiteSettings: api.NewSiteSettingsHandler(siteSettings, storage),

		AdminCatalog:      api.NewAdminCatalogHandler(catalogService, themes),
		AdminBooking:      api.NewAdminBookingHandler(bookingService),
		AdminNotice:       api.NewAdminNoticeHandler(notices),
		AdminInquiry:      api.NewAdminInquiryHandler(inquiries),
		AdminUser:         api.NewAdminUserHandler(adminUserService),
		AdminSiteSettings: api.NewAdminSiteSettingsHandler(siteSettings, storage),
		AdminStorage:      api.NewAdminStorageHandler(storage),
	}

	router, rateLimitManager := api.NewRouter(ctx, cfg, authMiddleware, logger, handlers)
	defer rateLimitManager.Shutdown()

	server := &http.Server{
		Addr:         ":" + cfg.GetServerPort(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		IdleTimeout:  cfg.GetIdleTimeout(),
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "environment", cfg.GetEnvironment())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.AppConfig) *slog.Logger {
	var level slog.Level
	switch cfg.GetLogLevel() {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
