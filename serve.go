package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"civicreport-be/catalog"
	"civicreport-be/config"
	"civicreport-be/controllers"
	"civicreport-be/dashboard"
	"civicreport-be/fleet"
	"civicreport-be/intake"
	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/routes"
	"civicreport-be/services"
	"civicreport-be/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

// backends holds the storage and coordination clients chosen by the config.
type backends struct {
	catalog  *catalog.Catalog
	reports  store.ReportStore
	users    store.UserStore
	reserver fleet.Reserver
	counter  middlewares.HitCounter

	db    *mongo.Database
	redis *redis.Client
}

func (b *backends) Close(ctx context.Context) {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.Warn("closing redis", zap.Error(err))
		}
	}
	if b.db != nil {
		if err := config.DisconnectDB(ctx, b.db); err != nil {
			logger.Warn("closing mongo", zap.Error(err))
		}
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	b := &backends{catalog: cat}

	switch cfg.StoreBackend {
	case "memory":
		var seed []models.Report
		if cfg.SeedSampleData {
			seed = catalog.SampleReports(time.Now())
		}
		b.reports = store.NewMemoryReportStore(seed...)
		b.users = store.NewMemoryUserStore()
		logger.Info("using in-memory store", zap.Int("seeded", len(seed)))
	case "mongo":
		db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		b.db = db
		reports, users := store.NewMongoReportStore(db), store.NewMongoUserStore(db)
		if err := reports.EnsureIndexes(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("report indexes: %w", err)
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("user indexes: %w", err)
		}
		b.reports, b.users = reports, users
		logger.Info("MongoDB connection established", zap.String("database", cfg.MongoDatabase))
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.RedisAddress == "" {
		logger.Warn("REDIS_ADDRESS not set, fleet reservations and rate limits are process-local")
		b.reserver = fleet.NewMemoryReserver()
		b.counter = middlewares.NewMemoryCounter(time.Now)
		return b, nil
	}
	client, err := config.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		b.Close(ctx)
		return nil, err
	}
	b.redis = client
	b.reserver = fleet.NewRedisReserver(client, "", cfg.FleetReservationTTL)
	b.counter = middlewares.NewRedisCounter(client)
	logger.Info("Redis connection established", zap.String("address", cfg.RedisAddress))
	return b, nil
}

func newRouter(cfg *config.Config, b *backends) *gin.Engine {
	dispatcher := fleet.NewDispatcher(b.catalog.Fleet, b.reserver)
	reportService := services.NewReportService(b.reports, b.catalog, dispatcher, logger)
	authService := services.NewAuthService(b.users, b.catalog, logger)
	staffService := services.NewStaffService(b.catalog, b.reports)

	authOpts := middlewares.AuthOptions{
		Secret:       cfg.JWTSecret,
		Validator:    authService,
		CookieDomain: cfg.CookieDomain(),
		SecureCookie: cfg.IsProduction(),
		Logger:       logger,
	}
	mw := routes.Middleware{
		Auth:         middlewares.AuthMiddleware(authOpts),
		OptionalAuth: middlewares.OptionalAuth(authOpts),
		ReportLimit:  middlewares.ReportRateLimiter(b.counter, cfg.ReportLimitPrefix, cfg.ReportDailyLimit, logger),
	}
	ctrl := routes.Controllers{
		Auth: controllers.NewAuthController(authService, cfg.JWTSecret, cfg.JWTExpiry, controllers.CookieSettings{
			Domain: cfg.CookieDomain(),
			Secure: cfg.IsProduction(),
		}, logger),
		Reports:   controllers.NewReportController(reportService, intake.New(b.catalog, reportService), logger),
		Dashboard: controllers.NewDashboardController(dashboard.NewBoard(reportService), logger),
		Staff:     controllers.NewStaffController(staffService, logger),
		Catalog:   controllers.NewCatalogController(b.catalog, dispatcher, logger),
	}
	return routes.NewRouter(logger, cfg.CORSOrigins, ctrl, mw)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	flush := config.InitSentry(cfg, logger)
	defer flush()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, b),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
