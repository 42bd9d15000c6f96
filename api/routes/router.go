package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conectlink/conectlink-backend/api/controllers"
	"github.com/conectlink/conectlink-backend/api/middleware"
	"github.com/conectlink/conectlink-backend/internal/alerts"
	authsvc "github.com/conectlink/conectlink-backend/internal/auth"
	"github.com/conectlink/conectlink-backend/internal/catalog"
	"github.com/conectlink/conectlink-backend/internal/entitlements"
	"github.com/conectlink/conectlink-backend/internal/links"
	"github.com/conectlink/conectlink-backend/internal/organizations"
	"github.com/conectlink/conectlink-backend/internal/plans"
	"github.com/conectlink/conectlink-backend/internal/products"
	"github.com/conectlink/conectlink-backend/internal/profiles"
	"github.com/conectlink/conectlink-backend/internal/qr"
	subscriptionsvc "github.com/conectlink/conectlink-backend/internal/subscriptions"
	"github.com/conectlink/conectlink-backend/internal/vcard"
	"github.com/conectlink/conectlink-backend/pkg/auth/session"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services bundles everything the router wires into handlers.
type Services struct {
	Sessions      sessionManager
	Auth          authsvc.Service
	Register      authsvc.RegisterService
	Plans         plans.Service
	Subscriptions subscriptionsvc.Service
	Entitlements  entitlements.Service
	Organizations organizations.Service
	Profiles      profiles.Service
	Links         links.Service
	Products      products.Service
	Alerts        alerts.Service
	VCard         vcard.Service
	QR            qr.Service
	Catalog       *catalog.Catalog
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/plans", controllers.PublicPlans(svcs.Plans, logg))
		r.Get("/plans/{slug}", controllers.PublicPlanBySlug(svcs.Plans, logg))
		r.Get("/catalog/social-platforms", controllers.SocialPlatforms(svcs.Catalog, logg))
		r.Get("/catalog/alert-types", controllers.AlertTypes(svcs.Catalog, logg))
		r.Get("/profiles/{profileID}/vcard", controllers.PublicVCard(svcs.VCard, logg))
		r.Get("/profiles/{profileID}/qr", controllers.PublicQRPayload(svcs.QR, logg))
		r.Post("/links/{linkID}/click", controllers.LinkClick(svcs.Links, logg))
		r.Get("/p/{orgSlug}", controllers.PublicProfile(svcs.Profiles, svcs.Links, svcs.Products, svcs.Alerts, logg))
		r.Get("/p/{orgSlug}/{profileSlug}", controllers.PublicProfile(svcs.Profiles, svcs.Links, svcs.Products, svcs.Alerts, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Register, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Sessions, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Sessions, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, svcs.Sessions, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/entitlements", controllers.Entitlements(svcs.Entitlements, logg))

		r.Route("/subscription", func(r chi.Router) {
			r.Get("/", controllers.SubscriptionSummary(svcs.Subscriptions, logg))
			r.Get("/history", controllers.SubscriptionHistory(svcs.Subscriptions, logg))
			r.Delete("/", controllers.SubscriptionCancel(svcs.Subscriptions, logg))
		})

		r.Route("/organizations", func(r chi.Router) {
			r.Post("/", controllers.CreateOrganization(svcs.Organizations, logg))
			r.Get("/", controllers.ListOrganizations(svcs.Organizations, logg))
			r.Route("/{orgID}", func(r chi.Router) {
				r.Get("/", controllers.GetOrganization(svcs.Organizations, logg))
				r.Patch("/", controllers.UpdateOrganization(svcs.Organizations, logg))
				r.Delete("/", controllers.DeleteOrganization(svcs.Organizations, logg))
				r.Post("/profiles", controllers.CreateProfile(svcs.Profiles, logg))
				r.Get("/profiles", controllers.ListProfiles(svcs.Profiles, logg))
			})
		})

		r.Route("/profiles/{profileID}", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(svcs.Profiles, logg))
			r.Patch("/", controllers.UpdateProfile(svcs.Profiles, logg))
			r.Delete("/", controllers.DeleteProfile(svcs.Profiles, logg))

			r.Post("/social-links", controllers.CreateSocialLink(svcs.Links, logg))
			r.Get("/social-links", controllers.ListSocialLinks(svcs.Links, logg))
			r.Post("/custom-links", controllers.CreateCustomLink(svcs.Links, logg))
			r.Get("/custom-links", controllers.ListCustomLinks(svcs.Links, logg))

			r.Post("/products", controllers.CreateProduct(svcs.Products, logg))
			r.Get("/products", controllers.ListProducts(svcs.Products, logg))

			r.Post("/alerts", controllers.CreateAlert(svcs.Alerts, logg))
			r.Get("/alerts", controllers.ListAlerts(svcs.Alerts, logg))

			r.Get("/vcard", controllers.GetVCardSettings(svcs.VCard, logg))
			r.Put("/vcard", controllers.PutVCardSettings(svcs.VCard, logg))
			r.Get("/qr", controllers.GetQRSettings(svcs.QR, logg))
			r.Put("/qr", controllers.PutQRSettings(svcs.QR, logg))
		})

		r.Route("/social-links/{linkID}", func(r chi.Router) {
			r.Patch("/", controllers.UpdateSocialLink(svcs.Links, logg))
			r.Delete("/", controllers.DeleteSocialLink(svcs.Links, logg))
		})
		r.Route("/custom-links/{linkID}", func(r chi.Router) {
			r.Patch("/", controllers.UpdateCustomLink(svcs.Links, logg))
			r.Delete("/", controllers.DeleteCustomLink(svcs.Links, logg))
		})
		r.Route("/products/{productID}", func(r chi.Router) {
			r.Get("/", controllers.GetProduct(svcs.Products, logg))
			r.Patch("/", controllers.UpdateProduct(svcs.Products, logg))
			r.Delete("/", controllers.DeleteProduct(svcs.Products, logg))
		})
		r.Route("/alerts/{alertID}", func(r chi.Router) {
			r.Patch("/", controllers.UpdateAlert(svcs.Alerts, logg))
			r.Delete("/", controllers.DeleteAlert(svcs.Alerts, logg))
		})
	})

	return r
}
