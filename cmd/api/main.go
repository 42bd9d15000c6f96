package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/conectlink/conectlink-backend/api/routes"
	"github.com/conectlink/conectlink-backend/internal/accounts"
	"github.com/conectlink/conectlink-backend/internal/alerts"
	authsvc "github.com/conectlink/conectlink-backend/internal/auth"
	"github.com/conectlink/conectlink-backend/internal/billing"
	"github.com/conectlink/conectlink-backend/internal/catalog"
	"github.com/conectlink/conectlink-backend/internal/entitlements"
	"github.com/conectlink/conectlink-backend/internal/links"
	"github.com/conectlink/conectlink-backend/internal/organizations"
	"github.com/conectlink/conectlink-backend/internal/plans"
	"github.com/conectlink/conectlink-backend/internal/products"
	"github.com/conectlink/conectlink-backend/internal/profiles"
	"github.com/conectlink/conectlink-backend/internal/qr"
	"github.com/conectlink/conectlink-backend/internal/subscriptions"
	"github.com/conectlink/conectlink-backend/internal/users"
	"github.com/conectlink/conectlink-backend/internal/vcard"
	"github.com/conectlink/conectlink-backend/pkg/auth/session"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/metrics"
	"github.com/conectlink/conectlink-backend/pkg/migrate"
	"github.com/conectlink/conectlink-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		closeClients(logg, dbClient, nil)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		closeClients(logg, dbClient, nil)
		os.Exit(1)
	}
	defer closeClients(logg, dbClient, redisClient)

	svcs, registry, err := buildServices(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		closeClients(logg, dbClient, redisClient)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		closeClients(logg, dbClient, redisClient)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Services, *prometheus.Registry, error) {
	gdb := dbClient.DB()

	registry := prometheus.NewRegistry()
	billingMetrics := metrics.NewBillingMetrics(registry)

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return routes.Services{}, nil, err
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return routes.Services{}, nil, err
	}

	subscriptionsRepo := subscriptions.NewRepository(gdb)
	subscriptionsService, err := subscriptions.NewService(subscriptionsRepo)
	if err != nil {
		return routes.Services{}, nil, err
	}

	plansService, err := plans.NewService(plans.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, nil, err
	}

	entitlementsService, err := entitlements.NewService(entitlements.ServiceParams{
		Repo:          entitlements.NewRepository(gdb),
		Subscriptions: subscriptionsRepo,
		Metrics:       billingMetrics,
	})
	if err != nil {
		return routes.Services{}, nil, err
	}

	organizationsRepo := organizations.NewRepository(gdb)
	organizationsService, err := organizations.NewService(organizationsRepo, entitlementsService)
	if err != nil {
		return routes.Services{}, nil, err
	}

	profilesRepo := profiles.NewRepository(gdb)
	profilesService, err := profiles.NewService(profilesRepo, organizationsRepo, entitlementsService)
	if err != nil {
		return routes.Services{}, nil, err
	}

	linksService, err := links.NewService(links.NewRepository(gdb), profilesRepo, organizationsRepo, entitlementsService, cat)
	if err != nil {
		return routes.Services{}, nil, err
	}

	productsService, err := products.NewService(products.NewRepository(gdb), profilesRepo, organizationsRepo, entitlementsService)
	if err != nil {
		return routes.Services{}, nil, err
	}

	alertsService, err := alerts.NewService(alerts.NewRepository(gdb), profilesRepo, organizationsRepo, entitlementsService, cat)
	if err != nil {
		return routes.Services{}, nil, err
	}

	vcardService, err := vcard.NewService(vcard.NewRepository(gdb), profilesRepo, organizationsRepo)
	if err != nil {
		return routes.Services{}, nil, err
	}

	qrService, err := qr.NewService(qr.NewRepository(gdb), profilesRepo, organizationsRepo, cfg.App.BaseURL)
	if err != nil {
		return routes.Services{}, nil, err
	}

	billingService, err := billing.NewService(billing.ServiceParams{
		Logger:  logg,
		DB:      dbClient,
		Metrics: billingMetrics,
	})
	if err != nil {
		return routes.Services{}, nil, err
	}

	accountsService, err := accounts.NewService(accounts.ServiceParams{
		Logger:         logg,
		DB:             dbClient,
		Users:          users.NewRepository(gdb),
		Billing:        billingService,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, nil, err
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(gdb),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, nil, err
	}

	registerService, err := authsvc.NewRegisterService(authsvc.RegisterServiceParams{
		Accounts:       accountsService,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, nil, err
	}

	return routes.Services{
		Sessions:      sessionManager,
		Auth:          authService,
		Register:      registerService,
		Plans:         plansService,
		Subscriptions: subscriptionsService,
		Entitlements:  entitlementsService,
		Organizations: organizationsService,
		Profiles:      profilesService,
		Links:         linksService,
		Products:      productsService,
		Alerts:        alertsService,
		VCard:         vcardService,
		QR:            qrService,
		Catalog:       cat,
	}, registry, nil
}

func closeClients(logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) {
	var closeErr error
	if dbClient != nil {
		closeErr = multierr.Append(closeErr, dbClient.Close())
	}
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(context.Background(), "error closing clients", closeErr)
	}
}
