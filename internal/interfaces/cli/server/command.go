// Package server boots the HTTP API: config, logger, database,
// migrations, and the full wiring from repositories to handlers.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	deliveryUC "github.com/maida-inc/maida/internal/application/delivery/usecases"
	pricingUC "github.com/maida-inc/maida/internal/application/pricing/usecases"
	subscriptionUC "github.com/maida-inc/maida/internal/application/subscription/usecases"
	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/domain/pricing"
	"github.com/maida-inc/maida/internal/infrastructure/cache"
	"github.com/maida-inc/maida/internal/infrastructure/config"
	"github.com/maida-inc/maida/internal/infrastructure/database"
	"github.com/maida-inc/maida/internal/infrastructure/migration"
	"github.com/maida-inc/maida/internal/infrastructure/repository"
	httpRouter "github.com/maida-inc/maida/internal/interfaces/http"
	"github.com/maida-inc/maida/internal/interfaces/http/handlers"
	"github.com/maida-inc/maida/internal/shared/clock"
	"github.com/maida-inc/maida/internal/shared/db"
	"github.com/maida-inc/maida/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

// expireSweepInterval is how often lapsed subscriptions are swept to
// expired. Expiry is date-granular, so anything more frequent than
// hourly buys nothing.
const expireSweepInterval = time.Hour

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Maida HTTP server with the configured pricing and delivery scheduling services.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production")
		}
		if err := migration.Up(database.Get(), cfg.Database.Driver); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	gormDB := database.Get()

	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	deliveryRepo := repository.NewDeliveryRepository(gormDB, log)
	planCatalogRepo := repository.NewPlanCatalogRepository(gormDB, log)
	promoCodeRepo := repository.NewPromoCodeRepository(gormDB, log)

	var promoTable pricing.PromoTable = promoCodeRepo
	if redisClient != nil {
		promoTable = cache.NewPromoRateCache(redisClient, promoCodeRepo, log)
	}

	engine := pricing.NewEngine(
		pricing.BasePrices{
			MainMeal:  cfg.Pricing.MainMealPrice,
			Breakfast: cfg.Pricing.BreakfastPrice,
			Snack:     cfg.Pricing.SnackPrice,
		},
		planCatalogRepo,
		pricing.NewDiscountResolver(pricing.DefaultDiscountTables(), promoTable),
	)

	clk := clock.System()
	scheduler := delivery.NewScheduleGenerator(clk)
	txManager := db.NewTransactionManager(gormDB)

	createSubscriptionUC := subscriptionUC.NewCreateSubscriptionUseCase(
		subscriptionRepo, deliveryRepo, engine, scheduler, txManager, clk, cfg.Scheduling, log)
	getSubscriptionUC := subscriptionUC.NewGetSubscriptionUseCase(subscriptionRepo, deliveryRepo, log)
	listSubscriptionsUC := subscriptionUC.NewListSubscriptionsUseCase(subscriptionRepo, log)
	pauseSubscriptionUC := subscriptionUC.NewPauseSubscriptionUseCase(
		subscriptionRepo, deliveryRepo, txManager, clk, cfg.Scheduling, log)
	resumeSubscriptionUC := subscriptionUC.NewResumeSubscriptionUseCase(
		subscriptionRepo, deliveryRepo, txManager, clk, cfg.Scheduling, log)
	cancelSubscriptionUC := subscriptionUC.NewCancelSubscriptionUseCase(
		subscriptionRepo, deliveryRepo, txManager, clk, log)
	expireSubscriptionsUC := subscriptionUC.NewExpireSubscriptionsUseCase(
		subscriptionRepo, deliveryRepo, txManager, clk, log)

	listDeliveriesUC := deliveryUC.NewListDeliveriesUseCase(subscriptionRepo, deliveryRepo, log)
	rebuildScheduleUC := deliveryUC.NewRebuildScheduleUseCase(
		subscriptionRepo, deliveryRepo, scheduler, txManager, clk, cfg.Scheduling, log)
	skipDeliveryUC := deliveryUC.NewSkipDeliveryUseCase(deliveryRepo, clk, log)
	markDeliveredUC := deliveryUC.NewMarkDeliveredUseCase(deliveryRepo, log)

	quotePriceUC := pricingUC.NewQuotePriceUseCase(engine, clk, log)

	pricingHandler := handlers.NewPricingHandler(quotePriceUC, planCatalogRepo)
	subscriptionHandler := handlers.NewSubscriptionHandler(
		createSubscriptionUC, getSubscriptionUC, listSubscriptionsUC,
		pauseSubscriptionUC, resumeSubscriptionUC, cancelSubscriptionUC)
	deliveryHandler := handlers.NewDeliveryHandler(
		listDeliveriesUC, rebuildScheduleUC, skipDeliveryUC, markDeliveredUC)

	router := httpRouter.NewRouter(pricingHandler, subscriptionHandler, deliveryHandler, gormDB, log)
	router.SetupRoutes()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runExpireSweep(sweepCtx, expireSubscriptionsUC, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// runExpireSweep periodically flips subscriptions past their renewal
// date to expired and voids their leftover deliveries.
func runExpireSweep(ctx context.Context, uc *subscriptionUC.ExpireSubscriptionsUseCase, log logger.Interface) {
	ticker := time.NewTicker(expireSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := uc.Execute(ctx)
			if err != nil {
				log.Errorw("expire sweep failed", "error", err)
				continue
			}
			if count > 0 {
				log.Infow("expire sweep completed", "expired", count)
			}
		}
	}
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
