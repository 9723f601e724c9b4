package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/controllers"
	webhookcontrollers "github.com/adaezeudoka/hopewell-foundation-backend/api/controllers/webhooks"
	"github.com/adaezeudoka/hopewell-foundation-backend/api/middleware"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/admins"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/audit"
	authsvc "github.com/adaezeudoka/hopewell-foundation-backend/internal/auth"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/content"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/donations"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/rbac"
	paystackwebhook "github.com/adaezeudoka/hopewell-foundation-backend/internal/webhooks/paystack"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/auth/session"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/config"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/metrics"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/paystack"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Optional fields may be nil;
// the endpoints they back respond with a dependency error instead.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.PaymentMetrics
	Prom    prometheus.Gatherer

	Sessions       session.AccessSessionChecker
	Guard          *rbac.Guard
	AuthService    authsvc.Service
	Donations      donations.Service
	Admins         admins.Service
	Audit          audit.Service
	Content        content.Service
	Paystack       *paystack.Client
	WebhookService *paystackwebhook.Service
	WebhookGuard   *paystackwebhook.IdempotencyGuard
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

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

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Prom != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Prom, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/webhooks/paystack", webhookcontrollers.PaystackWebhook(deps.WebhookService, deps.Paystack, deps.WebhookGuard, deps.Metrics, logg))

		r.Post("/donations", controllers.CreateDonation(deps.Donations, logg))
		r.Post("/donations/verify", controllers.VerifyDonation(deps.Donations, logg))

		r.Get("/content", controllers.ListPublicContent(deps.Content, logg))
		r.Get("/team", controllers.ListPublicTeam(deps.Content, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/auth/login", controllers.Login(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.Logout(deps.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(deps.Guard, rbac.CapabilityViewDonations, logg))
				r.Get("/donations", controllers.ListDonations(deps.Donations, logg))
				r.Get("/donations/stats", controllers.DonationStats(deps.Donations, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(deps.Guard, rbac.CapabilityManageAdmins, logg))
				r.Get("/admins", controllers.ListAdmins(deps.Admins, logg))
				r.Patch("/admins/{adminId}/role", controllers.UpdateAdminRole(deps.Admins, logg))
				r.Patch("/admins/{adminId}/active", controllers.SetAdminActive(deps.Admins, logg))
				r.Patch("/admins/{adminId}", controllers.UpdateAdminProfile(deps.Admins, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(deps.Guard, rbac.CapabilityViewAudit, logg))
				r.Get("/audit", controllers.ListAuditLog(deps.Audit, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(deps.Guard, rbac.CapabilityManageContent, logg))
				r.Get("/content", controllers.ListAdminContent(deps.Content, logg))
				r.Post("/content", controllers.CreateContent(deps.Content, logg))
				r.Patch("/content/{contentId}", controllers.UpdateContent(deps.Content, logg))
				r.Delete("/content/{contentId}", controllers.DeleteContent(deps.Content, logg))

				r.Post("/team", controllers.CreateTeamMember(deps.Content, logg))
				r.Patch("/team/{memberId}", controllers.UpdateTeamMember(deps.Content, logg))
				r.Delete("/team/{memberId}", controllers.DeleteTeamMember(deps.Content, logg))

				r.Post("/media/presign", controllers.PresignMediaUpload(deps.Content, logg))
			})
		})
	})

	return r
}
